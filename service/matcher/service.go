// Package matcher prepares allocation requests from store contents and
// drives the single allocation-in-flight operation against the remote
// matching service.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/service/store"
)

// ErrAllocationInFlight is returned when an allocation is requested while a
// previous one has not resolved. Allocation is a single global operation,
// not per-entity.
var ErrAllocationInFlight = errors.New("matcher: allocation already in flight")

// ErrNothingToAllocate is returned when either collection is empty; the
// matching service needs at least one task and one executor.
var ErrNothingToAllocate = errors.New("matcher: at least one task and one executor required")

// Backend is the allocation side of the remote gateway.
type Backend interface {
	Allocate(ctx context.Context, request *model.AllocationRequest) (model.Allocation, error)
}

// Service owns the allocation-in-flight flag and stores successful results.
type Service struct {
	store      *store.Service
	backend    Backend
	allocating atomic.Bool
}

// New creates a matcher over the supplied store and backend.
func New(entityStore *store.Service, backend Backend) (*Service, error) {
	if entityStore == nil {
		return nil, fmt.Errorf("matcher: store is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("matcher: backend is required")
	}
	return &Service{store: entityStore, backend: backend}, nil
}

// Allocate builds a fresh request from the current store snapshot, submits
// it and replaces the stored mapping on success. On failure the previous
// mapping is preserved: an operator keeps the last good assignment while the
// error is reported. A second call while one is outstanding is rejected.
func (s *Service) Allocate(ctx context.Context) (model.Allocation, error) {
	if !s.allocating.CompareAndSwap(false, true) {
		return nil, ErrAllocationInFlight
	}
	defer s.allocating.Store(false)

	tasks := s.store.Tasks()
	executors := s.store.Executors()
	if len(tasks) == 0 || len(executors) == 0 {
		return nil, ErrNothingToAllocate
	}

	mapping, err := s.backend.Allocate(ctx, BuildRequest(tasks, executors))
	if err != nil {
		log.Printf("allocation failed: %v", err)
		return nil, fmt.Errorf("matcher: allocate: %w", err)
	}
	s.store.SetAllocation(ctx, mapping)
	return s.store.Allocation(), nil
}

// IsAllocating reports whether an allocation request is outstanding.
func (s *Service) IsAllocating() bool {
	return s.allocating.Load()
}
