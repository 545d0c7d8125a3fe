// Package progress keeps aggregated analysis counters (pending, succeeded,
// failed) across all entities. Counts are recomputed from store snapshots
// rather than accumulated, so a deleted entity can never leave a counter
// dangling. The tracker feeds the presentation layer's spinners and badges.
package progress

import (
	"sync"

	"github.com/crewmatch/crewmatch/model"
)

// Counts is an aggregate view over both entity collections.
type Counts struct {
	Total     int
	Pending   int
	Succeeded int
	Failed    int
}

// Done reports whether no analysis is outstanding.
func (c Counts) Done() bool { return c.Pending == 0 }

// Count derives the aggregate from entity snapshots.
func Count(tasks []*model.Task, executors []*model.Executor) Counts {
	var counts Counts
	add := func(state model.AnalysisState) {
		counts.Total++
		switch state {
		case model.AnalysisStatePending:
			counts.Pending++
		case model.AnalysisStateSucceeded:
			counts.Succeeded++
		case model.AnalysisStateFailed:
			counts.Failed++
		}
	}
	for _, task := range tasks {
		add(task.State)
	}
	for _, executor := range executors {
		add(executor.State)
	}
	return counts
}

// Tracker holds the latest Counts and notifies an optional callback on every
// refresh. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	counts   Counts
	onChange func(Counts)
}

// NewTracker creates a tracker; onChange may be nil.
func NewTracker(onChange func(Counts)) *Tracker {
	return &Tracker{onChange: onChange}
}

// Refresh recomputes the counts from the supplied snapshots. The callback is
// invoked outside the critical section with a value copy so it can perform
// slow work without blocking engine internals.
func (t *Tracker) Refresh(tasks []*model.Task, executors []*model.Executor) Counts {
	counts := Count(tasks, executors)
	t.mu.Lock()
	t.counts = counts
	cb := t.onChange
	t.mu.Unlock()
	if cb != nil {
		cb(counts)
	}
	return counts
}

// Snapshot returns the most recently refreshed counts.
func (t *Tracker) Snapshot() Counts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts
}
