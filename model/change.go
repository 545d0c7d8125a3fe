package model

// EntityKind discriminates the two entity collections.
type EntityKind string

const (
	KindTask     EntityKind = "task"
	KindExecutor EntityKind = "executor"
)

// ChangeType represents the kind of store mutation a Change describes.
type ChangeType string

const (
	ChangeEntityAdded        ChangeType = "entityAdded"
	ChangeEntityUpdated      ChangeType = "entityUpdated"
	ChangeEntityDeleted      ChangeType = "entityDeleted"
	ChangeAllocationReplaced ChangeType = "allocationReplaced"
)

// Change is the event payload emitted after every store mutation so the
// presentation layer can re-render from fresh snapshots instead of polling.
type Change struct {
	Type       ChangeType    `json:"type"`
	EntityKind EntityKind    `json:"entityKind,omitempty"`
	EntityID   string        `json:"entityId,omitempty"`
	State      AnalysisState `json:"state,omitempty"`
}
