package analyzer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/service/gateway"
	"github.com/crewmatch/crewmatch/service/store"
)

// stubBackend resolves each analyze call from a scripted queue of outcomes
// and records the requests it saw.
type stubBackend struct {
	mu       sync.Mutex
	outcomes []outcome
	tasks    []gateway.TaskAnalysisRequest
	execs    []gateway.ExecutorAnalysisRequest
	release  chan struct{}
}

type outcome struct {
	assessment *model.Assessment
	err        error
}

func newStubBackend(outcomes ...outcome) *stubBackend {
	return &stubBackend{outcomes: outcomes}
}

func (b *stubBackend) next() outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.outcomes) == 0 {
		return outcome{assessment: &model.Assessment{}}
	}
	head := b.outcomes[0]
	b.outcomes = b.outcomes[1:]
	return head
}

func (b *stubBackend) AnalyzeTask(ctx context.Context, request gateway.TaskAnalysisRequest) (*model.Assessment, error) {
	b.mu.Lock()
	b.tasks = append(b.tasks, request)
	release := b.release
	b.mu.Unlock()
	if release != nil {
		<-release
	}
	head := b.next()
	return head.assessment, head.err
}

func (b *stubBackend) AnalyzeExecutor(ctx context.Context, request gateway.ExecutorAnalysisRequest) (*model.Assessment, error) {
	b.mu.Lock()
	b.execs = append(b.execs, request)
	release := b.release
	b.mu.Unlock()
	if release != nil {
		<-release
	}
	head := b.next()
	return head.assessment, head.err
}

func addTask(t *testing.T, s *store.Service) *model.Task {
	t.Helper()
	task, err := s.AddTask(context.Background(), model.TaskDraft{
		Title: "T1", Description: "build", StartDate: jan(1), EndDate: jan(10),
	})
	require.NoError(t, err)
	return task
}

func TestSubmit_Success(t *testing.T) {
	entityStore := store.New()
	backend := newStubBackend(outcome{assessment: &model.Assessment{Hard: map[string]float64{"go": 0.9}}})
	service, err := New(entityStore, backend, WithProjectDescription(func() string { return "a billing platform" }))
	require.NoError(t, err)

	task := addTask(t, entityStore)
	require.NoError(t, service.Submit(context.Background(), model.KindTask, task.ID))
	service.Wait()

	updated := entityStore.Task(task.ID)
	assert.Equal(t, model.AnalysisStateSucceeded, updated.State)
	assert.Equal(t, 0.9, updated.Assessment.Hard["go"])

	require.Len(t, backend.tasks, 1)
	assert.Equal(t, "a billing platform", backend.tasks[0].ProjectDescription)
	assert.Equal(t, task.Title, backend.tasks[0].Title)
}

func TestSubmit_FailureMarksFailed(t *testing.T) {
	entityStore := store.New()
	backend := newStubBackend(outcome{err: assert.AnError})
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	task := addTask(t, entityStore)
	require.NoError(t, service.Submit(context.Background(), model.KindTask, task.ID))
	service.Wait()

	assert.Equal(t, model.AnalysisStateFailed, entityStore.Task(task.ID).State)
	assert.Len(t, backend.tasks, 1, "exactly one request, no automatic retry")
}

func TestRetry_PendingBeforeResolution(t *testing.T) {
	entityStore := store.New()
	backend := newStubBackend(outcome{err: assert.AnError}, outcome{assessment: &model.Assessment{}})
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	task := addTask(t, entityStore)
	require.NoError(t, service.Submit(context.Background(), model.KindTask, task.ID))
	service.Wait()
	require.Equal(t, model.AnalysisStateFailed, entityStore.Task(task.ID).State)

	// Hold the retry request open: the pending transition must be
	// observable before the response resolves.
	backend.mu.Lock()
	backend.release = make(chan struct{})
	backend.mu.Unlock()

	require.NoError(t, service.Retry(context.Background(), model.KindTask, task.ID))
	assert.Equal(t, model.AnalysisStatePending, entityStore.Task(task.ID).State)
	assert.True(t, service.InFlight(task.ID))

	close(backend.release)
	service.Wait()
	assert.Equal(t, model.AnalysisStateSucceeded, entityStore.Task(task.ID).State)
}

func TestSubmit_RejectsSecondWhileInFlight(t *testing.T) {
	entityStore := store.New()
	backend := newStubBackend(outcome{assessment: &model.Assessment{}})
	backend.release = make(chan struct{})
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	task := addTask(t, entityStore)
	require.NoError(t, service.Submit(context.Background(), model.KindTask, task.ID))
	assert.ErrorIs(t, service.Submit(context.Background(), model.KindTask, task.ID), ErrAnalysisInFlight)

	close(backend.release)
	service.Wait()
	assert.False(t, service.InFlight(task.ID))
}

func TestSubmit_UnknownEntity(t *testing.T) {
	entityStore := store.New()
	service, err := New(entityStore, newStubBackend())
	require.NoError(t, err)

	assert.ErrorIs(t, service.Submit(context.Background(), model.KindTask, "ghost"), ErrNotFound)
	assert.ErrorIs(t, service.Retry(context.Background(), model.KindExecutor, "ghost"), ErrNotFound)
}

func TestCompletionAfterDeleteIsDropped(t *testing.T) {
	entityStore := store.New()
	backend := newStubBackend(outcome{assessment: &model.Assessment{}})
	backend.release = make(chan struct{})
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	task := addTask(t, entityStore)
	require.NoError(t, service.Submit(context.Background(), model.KindTask, task.ID))
	require.NoError(t, entityStore.DeleteTask(context.Background(), task.ID))

	close(backend.release)
	service.Wait()
	assert.Nil(t, entityStore.Task(task.ID), "completion for a deleted entity must not resurrect it")
}

func TestSubmit_Executor(t *testing.T) {
	entityStore := store.New()
	backend := newStubBackend(outcome{assessment: &model.Assessment{Soft: map[string]float64{"communication": 0.7}}})
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	executor, err := entityStore.AddExecutor(context.Background(), model.ExecutorDraft{Name: "Ada", Resume: "cv"})
	require.NoError(t, err)
	require.NoError(t, service.Submit(context.Background(), model.KindExecutor, executor.ID))
	service.Wait()

	updated := entityStore.Executor(executor.ID)
	assert.Equal(t, model.AnalysisStateSucceeded, updated.State)
	require.Len(t, backend.execs, 1)
	assert.Equal(t, "cv", backend.execs[0].Resume)
}
