package store

import (
	"context"
	"math/rand"
	"sync"

	"github.com/crewmatch/crewmatch/internal/idgen"
	"github.com/crewmatch/crewmatch/internal/palette"
	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/service/event"
)

// Service owns the two ordered entity collections and the current allocation
// mapping. It is the single serialization point for all engine state: every
// mutation happens under one mutex and leaves the allocation invariant intact
// (every allocation key refers to a live task).
type Service struct {
	mu        sync.RWMutex
	tasks     []*model.Task
	executors []*model.Executor
	alloc     model.Allocation

	colors *palette.Assigner
	events *event.Publisher[model.Change]
}

// Option customises a store Service.
type Option func(s *Service)

// WithPalette overrides the color palette and random source used for new
// entities.
func WithPalette(colors []string, random *rand.Rand) Option {
	return func(s *Service) { s.colors = palette.New(colors, random) }
}

// WithEventPublisher sets the change-event publisher. Events are delivered
// best-effort; a full queue never blocks a mutation.
func WithEventPublisher(publisher *event.Publisher[model.Change]) Option {
	return func(s *Service) { s.events = publisher }
}

// New creates an empty store.
func New(options ...Option) *Service {
	s := &Service{alloc: model.Allocation{}}
	for _, opt := range options {
		opt(s)
	}
	if s.colors == nil {
		s.colors = palette.New(nil, nil)
	}
	return s
}

// AddTask validates the draft, assigns id and color, marks the analysis
// pending and appends the task in insertion order. The caller must not
// trigger analysis when an error is returned.
func (s *Service) AddTask(ctx context.Context, draft model.TaskDraft) (*model.Task, error) {
	if draft.Title == "" {
		return nil, newValidationError("title", "must not be empty")
	}
	if draft.Description == "" {
		return nil, newValidationError("description", "must not be empty")
	}
	if draft.StartDate.IsZero() {
		return nil, newValidationError("start_date", "must not be empty")
	}
	if draft.EndDate.IsZero() {
		return nil, newValidationError("end_date", "must not be empty")
	}
	if draft.StartDate.After(draft.EndDate) {
		return nil, newValidationError("start_date", "must not be after end_date")
	}

	task := &model.Task{
		ID:          idgen.New(),
		Title:       draft.Title,
		Description: draft.Description,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		Color:       s.colors.Pick(),
		State:       model.AnalysisStatePending,
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.publish(ctx, model.Change{Type: model.ChangeEntityAdded, EntityKind: model.KindTask, EntityID: task.ID, State: task.State})
	return task.Clone(), nil
}

// AddExecutor validates the draft and appends the executor in insertion
// order with a pending analysis.
func (s *Service) AddExecutor(ctx context.Context, draft model.ExecutorDraft) (*model.Executor, error) {
	if draft.Name == "" {
		return nil, newValidationError("name", "must not be empty")
	}
	if draft.Resume == "" {
		return nil, newValidationError("resume", "must not be empty")
	}

	executor := &model.Executor{
		ID:     idgen.New(),
		Name:   draft.Name,
		Resume: draft.Resume,
		Color:  s.colors.Pick(),
		State:  model.AnalysisStatePending,
	}
	s.mu.Lock()
	s.executors = append(s.executors, executor)
	s.mu.Unlock()

	s.publish(ctx, model.Change{Type: model.ChangeEntityAdded, EntityKind: model.KindExecutor, EntityID: executor.ID, State: executor.State})
	return executor.Clone(), nil
}

// UpdateAnalysis atomically replaces the analysis state of the matching
// entity. The assessment is replaced wholesale only on a succeeded
// transition; pending and failed keep whatever assessment was attached
// before, so a failed retry still shows the last good analysis. An update
// for an entity that no longer exists is silently dropped: a completion
// racing a delete has nothing left to observe.
func (s *Service) UpdateAnalysis(ctx context.Context, kind model.EntityKind, id string, state model.AnalysisState, assessment *model.Assessment) {
	s.mu.Lock()
	applied := false
	switch kind {
	case model.KindTask:
		if task := s.lookupTask(id); task != nil {
			task.State = state
			if state == model.AnalysisStateSucceeded {
				task.Assessment = assessment.Clone()
			}
			applied = true
		}
	case model.KindExecutor:
		if executor := s.lookupExecutor(id); executor != nil {
			executor.State = state
			if state == model.AnalysisStateSucceeded {
				executor.Assessment = assessment.Clone()
			}
			applied = true
		}
	}
	s.mu.Unlock()

	if applied {
		s.publish(ctx, model.Change{Type: model.ChangeEntityUpdated, EntityKind: kind, EntityID: id, State: state})
	}
}

// DeleteTask removes the task and its allocation entry, if any.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	index := -1
	for i, task := range s.tasks {
		if task.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	delete(s.alloc, id)
	s.mu.Unlock()

	s.publish(ctx, model.Change{Type: model.ChangeEntityDeleted, EntityKind: model.KindTask, EntityID: id})
	return nil
}

// DeleteExecutor removes the executor and every allocation entry pointing at
// it; the affected tasks become unassigned by absence, which is distinct from
// the explicit Unassigned sentinel.
func (s *Service) DeleteExecutor(ctx context.Context, id string) error {
	s.mu.Lock()
	index := -1
	for i, executor := range s.executors {
		if executor.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.executors = append(s.executors[:index], s.executors[index+1:]...)
	for taskID, executorID := range s.alloc {
		if executorID == id {
			delete(s.alloc, taskID)
		}
	}
	s.mu.Unlock()

	s.publish(ctx, model.Change{Type: model.ChangeEntityDeleted, EntityKind: model.KindExecutor, EntityID: id})
	return nil
}

// SetAllocation replaces the allocation mapping wholesale. Entries whose task
// no longer exists are discarded to keep the live-task invariant.
func (s *Service) SetAllocation(ctx context.Context, mapping model.Allocation) {
	s.mu.Lock()
	next := model.Allocation{}
	for taskID, executorID := range mapping {
		if s.lookupTask(taskID) != nil {
			next[taskID] = executorID
		}
	}
	s.alloc = next
	s.mu.Unlock()

	s.publish(ctx, model.Change{Type: model.ChangeAllocationReplaced})
}

// Tasks returns a snapshot of the task collection in insertion order.
func (s *Service) Tasks() []*model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task.Clone())
	}
	return out
}

// Executors returns a snapshot of the executor collection in insertion order.
func (s *Service) Executors() []*model.Executor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Executor, 0, len(s.executors))
	for _, executor := range s.executors {
		out = append(out, executor.Clone())
	}
	return out
}

// Allocation returns a copy of the current allocation mapping.
func (s *Service) Allocation() model.Allocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alloc.Clone()
}

// Task returns a snapshot of the task with the given id, or nil.
func (s *Service) Task(id string) *model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupTask(id).Clone()
}

// Executor returns a snapshot of the executor with the given id, or nil.
func (s *Service) Executor(id string) *model.Executor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupExecutor(id).Clone()
}

func (s *Service) lookupTask(id string) *model.Task {
	for _, task := range s.tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

func (s *Service) lookupExecutor(id string) *model.Executor {
	for _, executor := range s.executors {
		if executor.ID == id {
			return executor
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, change model.Change) {
	if s.events == nil {
		return
	}
	s.events.TryPublish(ctx, change)
}
