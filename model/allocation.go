package model

// Unassigned is the explicit sentinel the allocation service returns for a
// task it could not place. It is distinct from the task having no allocation
// entry at all (e.g. after its executor was deleted).
const Unassigned = "unassigned"

// Allocation maps a task id to the id of its assigned executor, or to
// Unassigned. The store replaces it wholesale on every successful allocation
// response.
type Allocation map[string]string

// Assigned reports whether the task has a concrete executor assignment.
func (a Allocation) Assigned(taskID string) bool {
	executorID, ok := a[taskID]
	return ok && executorID != Unassigned
}

// Clone returns a copy of the mapping.
func (a Allocation) Clone() Allocation {
	if a == nil {
		return nil
	}
	clone := make(Allocation, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}
