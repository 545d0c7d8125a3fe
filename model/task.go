package model

import "time"

// Task represents a unit of work competing for an executor.
type Task struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Color       string        `json:"color"`
	State       AnalysisState `json:"state"`
	Assessment  *Assessment   `json:"assessment,omitempty"`
}

// TaskDraft carries operator input for a new task prior to validation.
type TaskDraft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// Tooltip returns the display text for the task's analysis badge. It is a
// pure function of entity state, recomputed on render.
func (t *Task) Tooltip() string {
	return tooltip(t.State, t.Assessment)
}

// Clone returns a copy safe to hand out of the store.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Assessment = t.Assessment.Clone()
	return &clone
}

func tooltip(state AnalysisState, assessment *Assessment) string {
	switch state {
	case AnalysisStatePending:
		return "Analysis in progress..."
	case AnalysisStateFailed:
		return "Analysis failed. Retry to run it again."
	}
	if summary := assessment.Summary(); summary != "" {
		return summary
	}
	return "No analysis data"
}
