package matcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/service/store"
)

type stubBackend struct {
	mu       sync.Mutex
	mapping  model.Allocation
	err      error
	requests []*model.AllocationRequest
	release  chan struct{}
}

func (b *stubBackend) Allocate(ctx context.Context, request *model.AllocationRequest) (model.Allocation, error) {
	b.mu.Lock()
	b.requests = append(b.requests, request)
	release := b.release
	b.mu.Unlock()
	if release != nil {
		<-release
	}
	return b.mapping, b.err
}

func seedStore(t *testing.T) (*store.Service, *model.Task, *model.Executor) {
	t.Helper()
	entityStore := store.New()
	task, err := entityStore.AddTask(context.Background(), model.TaskDraft{
		Title: "T1", Description: "build",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	executor, err := entityStore.AddExecutor(context.Background(), model.ExecutorDraft{Name: "Ada", Resume: "cv"})
	require.NoError(t, err)
	return entityStore, task, executor
}

func TestAllocate_StoresMapping(t *testing.T) {
	entityStore, task, executor := seedStore(t)
	backend := &stubBackend{mapping: model.Allocation{}}
	service, err := New(entityStore, backend)
	require.NoError(t, err)
	backend.mapping = model.Allocation{task.ID: executor.ID}

	mapping, err := service.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, executor.ID, mapping[task.ID])
	assert.Equal(t, executor.ID, entityStore.Allocation()[task.ID])
	assert.False(t, service.IsAllocating())
}

func TestAllocate_FailurePreservesPreviousMapping(t *testing.T) {
	entityStore, task, executor := seedStore(t)
	previous := model.Allocation{task.ID: executor.ID}
	entityStore.SetAllocation(context.Background(), previous)

	backend := &stubBackend{err: assert.AnError}
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	_, err = service.Allocate(context.Background())
	require.Error(t, err)
	// Decision: a failed allocation keeps the last good mapping rather
	// than clearing it.
	assert.Equal(t, previous, entityStore.Allocation())
	assert.False(t, service.IsAllocating())
}

func TestAllocate_RejectsConcurrentCall(t *testing.T) {
	entityStore, _, _ := seedStore(t)
	backend := &stubBackend{mapping: model.Allocation{}, release: make(chan struct{})}
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = service.Allocate(context.Background())
	}()

	require.Eventually(t, service.IsAllocating, time.Second, time.Millisecond)
	_, err = service.Allocate(context.Background())
	assert.ErrorIs(t, err, ErrAllocationInFlight)

	close(backend.release)
	<-done
	assert.False(t, service.IsAllocating())
}

func TestAllocate_RequiresBothCollections(t *testing.T) {
	entityStore := store.New()
	service, err := New(entityStore, &stubBackend{})
	require.NoError(t, err)

	_, err = service.Allocate(context.Background())
	assert.ErrorIs(t, err, ErrNothingToAllocate)
}

func TestAllocate_FiltersDeadTasksFromResponse(t *testing.T) {
	entityStore, task, executor := seedStore(t)
	backend := &stubBackend{mapping: model.Allocation{task.ID: executor.ID, "ghost": executor.ID}}
	service, err := New(entityStore, backend)
	require.NoError(t, err)

	mapping, err := service.Allocate(context.Background())
	require.NoError(t, err)
	assert.Len(t, mapping, 1)
	assert.NotContains(t, mapping, "ghost")
}
