package crewmatch

import (
	"context"
	"math/rand"
	"net/http"
	"sync"

	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/progress"
	"github.com/crewmatch/crewmatch/service/analyzer"
	"github.com/crewmatch/crewmatch/service/event"
	"github.com/crewmatch/crewmatch/service/gateway"
	"github.com/crewmatch/crewmatch/service/matcher"
	"github.com/crewmatch/crewmatch/service/messaging"
	"github.com/crewmatch/crewmatch/service/messaging/memory"
	"github.com/crewmatch/crewmatch/service/store"
	"github.com/crewmatch/crewmatch/timeline"
)

// Service is the engine's composition root. It owns the entity store, the
// analysis orchestrator, the allocation controller and the change-event
// publisher, and exposes the operations a presentation layer needs.
type Service struct {
	config        *Config
	httpClient    *http.Client
	queue         messaging.Queue[event.Event[model.Change]]
	paletteColors []string
	paletteRandom *rand.Rand

	store    *store.Service
	gateway  *gateway.Client
	analyzer *analyzer.Service
	matcher  *matcher.Service
	events   *event.Publisher[model.Change]
	tracker  *progress.Tracker

	mu      sync.RWMutex
	project string
}

// New builds a fully wired Service. At minimum the remote service base URL
// must be supplied, either through WithBaseURL or WithConfig.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	s.project = s.config.ProjectDescription
	if s.queue == nil {
		s.queue = memory.NewQueue[event.Event[model.Change]](s.config.queueConfig())
	}
	s.events = event.NewPublisher[model.Change](s.queue)

	httpClient := s.httpClient
	if httpClient == nil && s.config.Gateway.TimeoutMs > 0 {
		httpClient = &http.Client{Timeout: s.config.Gateway.Timeout()}
	}
	client, err := gateway.New(gateway.Config{
		BaseURL:    s.config.Gateway.BaseURL,
		HTTPClient: httpClient,
	})
	if err != nil {
		return err
	}
	s.gateway = client

	var storeOptions []store.Option
	storeOptions = append(storeOptions, store.WithEventPublisher(s.events))
	if len(s.paletteColors) > 0 || s.paletteRandom != nil {
		storeOptions = append(storeOptions, store.WithPalette(s.paletteColors, s.paletteRandom))
	}
	s.store = store.New(storeOptions...)

	s.analyzer, err = analyzer.New(s.store, s.gateway,
		analyzer.WithProjectDescription(s.ProjectDescription))
	if err != nil {
		return err
	}
	s.matcher, err = matcher.New(s.store, s.gateway)
	if err != nil {
		return err
	}
	s.tracker = progress.NewTracker(nil)
	return nil
}

// AddTask validates and stores a task draft, then submits it for analysis.
// The returned task is already in the pending state.
func (s *Service) AddTask(ctx context.Context, draft model.TaskDraft) (*model.Task, error) {
	task, err := s.store.AddTask(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := s.analyzer.Submit(ctx, model.KindTask, task.ID); err != nil {
		return nil, err
	}
	s.refreshProgress()
	return task, nil
}

// AddExecutor validates and stores an executor draft, then submits it for
// analysis.
func (s *Service) AddExecutor(ctx context.Context, draft model.ExecutorDraft) (*model.Executor, error) {
	executor, err := s.store.AddExecutor(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := s.analyzer.Submit(ctx, model.KindExecutor, executor.ID); err != nil {
		return nil, err
	}
	s.refreshProgress()
	return executor, nil
}

// RetryTask re-runs analysis for a task whose previous attempt failed (or
// whose assessment should be recomputed).
func (s *Service) RetryTask(ctx context.Context, id string) error {
	err := s.analyzer.Retry(ctx, model.KindTask, id)
	s.refreshProgress()
	return err
}

// RetryExecutor re-runs analysis for an executor.
func (s *Service) RetryExecutor(ctx context.Context, id string) error {
	err := s.analyzer.Retry(ctx, model.KindExecutor, id)
	s.refreshProgress()
	return err
}

// DeleteTask removes a task; its allocation entry is dropped and any late
// analysis completion is discarded.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.analyzer.Cancel(id)
	err := s.store.DeleteTask(ctx, id)
	s.refreshProgress()
	return err
}

// DeleteExecutor removes an executor and every allocation entry pointing at
// it.
func (s *Service) DeleteExecutor(ctx context.Context, id string) error {
	s.analyzer.Cancel(id)
	err := s.store.DeleteExecutor(ctx, id)
	s.refreshProgress()
	return err
}

// Allocate asks the remote matching service for a fresh task→executor
// mapping and stores it. A failed call leaves the previous mapping intact; a
// call while one is outstanding returns matcher.ErrAllocationInFlight.
func (s *Service) Allocate(ctx context.Context) (model.Allocation, error) {
	return s.matcher.Allocate(ctx)
}

// IsAllocating reports whether an allocation request is outstanding.
func (s *Service) IsAllocating() bool {
	return s.matcher.IsAllocating()
}

// Timeline computes the Gantt layout for the current tasks and allocation.
func (s *Service) Timeline() timeline.Layout {
	return timeline.Compute(s.store.Tasks(), s.store.Allocation())
}

// SetProjectDescription updates the shared context sent with every
// subsequent task analysis request.
func (s *Service) SetProjectDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = text
}

// ProjectDescription returns the current shared project context.
func (s *Service) ProjectDescription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project
}

// Subscribe starts a listener delivering every store change to handler on a
// background goroutine; Stop the returned listener to unsubscribe.
func (s *Service) Subscribe(handler func(*event.Event[model.Change])) *event.Listener[model.Change] {
	listener := event.NewListener(s.events, handler)
	listener.Start()
	return listener
}

// Progress returns the analysis counters recomputed from the current
// entities.
func (s *Service) Progress() progress.Counts {
	return s.refreshProgress()
}

// Tasks returns a snapshot of all tasks in insertion order.
func (s *Service) Tasks() []*model.Task {
	return s.store.Tasks()
}

// Executors returns a snapshot of all executors in insertion order.
func (s *Service) Executors() []*model.Executor {
	return s.store.Executors()
}

// Allocation returns a copy of the current task→executor mapping.
func (s *Service) Allocation() model.Allocation {
	return s.store.Allocation()
}

// Task returns a copy of the task with the given id, or nil.
func (s *Service) Task(id string) *model.Task {
	return s.store.Task(id)
}

// Executor returns a copy of the executor with the given id, or nil.
func (s *Service) Executor(id string) *model.Executor {
	return s.store.Executor(id)
}

// Store exposes the underlying entity store for advanced integrations.
func (s *Service) Store() *store.Service {
	return s.store
}

// Wait blocks until every in-flight analysis goroutine has completed.
// Intended for shutdown and tests.
func (s *Service) Wait() {
	s.analyzer.Wait()
}

func (s *Service) refreshProgress() progress.Counts {
	return s.tracker.Refresh(s.store.Tasks(), s.store.Executors())
}
