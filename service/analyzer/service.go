// Package analyzer drives the asynchronous per-entity analysis lifecycle:
// submit and retry flip the entity to pending synchronously, then exactly one
// outbound request runs on its own goroutine. Completions correlate by entity
// id alone, so out-of-order arrival is safe and a completion for a deleted
// entity is dropped by the store.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/service/gateway"
	"github.com/crewmatch/crewmatch/service/store"
)

// ErrAnalysisInFlight is returned when a submit or retry is issued for an
// entity whose previous request has not completed yet. At most one outbound
// request per entity may be outstanding.
var ErrAnalysisInFlight = errors.New("analyzer: analysis already in flight")

// ErrNotFound is returned when the referenced entity does not exist.
var ErrNotFound = errors.New("analyzer: entity not found")

// Backend is the analysis side of the remote gateway.
type Backend interface {
	AnalyzeTask(ctx context.Context, request gateway.TaskAnalysisRequest) (*model.Assessment, error)
	AnalyzeExecutor(ctx context.Context, request gateway.ExecutorAnalysisRequest) (*model.Assessment, error)
}

// Service orchestrates analysis state machines, one per entity, independent
// across entities.
type Service struct {
	store   *store.Service
	backend Backend

	// projectDescription supplies the shared context sent with every task
	// analysis request, read at request time.
	projectDescription func() string

	mu       sync.Mutex
	inflight map[string]context.CancelFunc
	wg       sync.WaitGroup
}

// Option customises the analyzer service.
type Option func(s *Service)

// WithProjectDescription sets the provider for the shared project context.
func WithProjectDescription(provider func() string) Option {
	return func(s *Service) { s.projectDescription = provider }
}

// New creates an analyzer over the supplied store and backend.
func New(entityStore *store.Service, backend Backend, options ...Option) (*Service, error) {
	if entityStore == nil {
		return nil, fmt.Errorf("analyzer: store is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("analyzer: backend is required")
	}
	s := &Service{
		store:    entityStore,
		backend:  backend,
		inflight: make(map[string]context.CancelFunc),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Submit starts the analysis for a freshly added entity. The entity is moved
// to pending synchronously before any network activity, then a single
// outbound request is issued; no automatic retry follows a failure.
func (s *Service) Submit(ctx context.Context, kind model.EntityKind, id string) error {
	return s.begin(ctx, kind, id)
}

// Retry re-runs the analysis for a failed (or previously succeeded) entity,
// reusing its stored content. Identical sequence to Submit: pending first,
// then one request.
func (s *Service) Retry(ctx context.Context, kind model.EntityKind, id string) error {
	return s.begin(ctx, kind, id)
}

func (s *Service) begin(ctx context.Context, kind model.EntityKind, id string) error {
	var (
		task     *model.Task
		executor *model.Executor
	)
	switch kind {
	case model.KindTask:
		if task = s.store.Task(id); task == nil {
			return ErrNotFound
		}
	case model.KindExecutor:
		if executor = s.store.Executor(id); executor == nil {
			return ErrNotFound
		}
	default:
		return fmt.Errorf("analyzer: unknown entity kind %q", kind)
	}

	s.mu.Lock()
	if _, exists := s.inflight[id]; exists {
		s.mu.Unlock()
		return ErrAnalysisInFlight
	}
	requestCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.inflight[id] = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	// Optimistic transition, observable before the request resolves.
	s.store.UpdateAnalysis(ctx, kind, id, model.AnalysisStatePending, nil)

	go s.run(requestCtx, kind, id, task, executor)
	return nil
}

// run issues the single outbound request and applies the completion. Any
// transport error, non-2xx status or malformed body is classified uniformly
// as a failed analysis.
func (s *Service) run(ctx context.Context, kind model.EntityKind, id string, task *model.Task, executor *model.Executor) {
	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
		s.wg.Done()
	}()

	var (
		assessment *model.Assessment
		err        error
	)
	switch kind {
	case model.KindTask:
		assessment, err = s.backend.AnalyzeTask(ctx, gateway.TaskAnalysisRequest{
			ID:                 task.ID,
			Title:              task.Title,
			Description:        task.Description,
			StartDate:          task.StartDate.Format(time.RFC3339),
			EndDate:            task.EndDate.Format(time.RFC3339),
			ProjectDescription: s.project(),
		})
	case model.KindExecutor:
		assessment, err = s.backend.AnalyzeExecutor(ctx, gateway.ExecutorAnalysisRequest{
			ID:     executor.ID,
			Name:   executor.Name,
			Resume: executor.Resume,
		})
	}

	if err != nil {
		log.Printf("analysis failed for %s %s: %v", kind, id, err)
		s.store.UpdateAnalysis(ctx, kind, id, model.AnalysisStateFailed, nil)
		return
	}
	s.store.UpdateAnalysis(ctx, kind, id, model.AnalysisStateSucceeded, assessment)
}

// InFlight reports whether the entity has an outstanding request.
func (s *Service) InFlight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[id]
	return ok
}

// Cancel aborts the outstanding request for the entity, if any. The entity
// stays pending; the eventual completion for the cancelled context is applied
// as a failure like any other transport error.
func (s *Service) Cancel(id string) bool {
	s.mu.Lock()
	cancel, ok := s.inflight[id]
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Wait blocks until every in-flight analysis has completed. Intended for
// tests and orderly shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) project() string {
	if s.projectDescription == nil {
		return ""
	}
	return s.projectDescription()
}
