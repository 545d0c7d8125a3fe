package model

// Executor represents a candidate worker with a resume to be assessed.
type Executor struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Resume     string        `json:"resume"`
	Color      string        `json:"color"`
	State      AnalysisState `json:"state"`
	Assessment *Assessment   `json:"assessment,omitempty"`
}

// ExecutorDraft carries operator input for a new executor prior to validation.
type ExecutorDraft struct {
	Name   string `json:"name"`
	Resume string `json:"resume"`
}

// Tooltip returns the display text for the executor's analysis badge.
func (e *Executor) Tooltip() string {
	return tooltip(e.State, e.Assessment)
}

// Clone returns a copy safe to hand out of the store.
func (e *Executor) Clone() *Executor {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Assessment = e.Assessment.Clone()
	return &clone
}
