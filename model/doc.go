// Package model contains the in-memory representation of tasks, executors,
// skill assessments and the allocation mapping used by the crewmatch engine.
//
// All types here are plain data: lifecycle rules (validation, state
// transitions, cascade deletes) live in the service layer, which hands out
// clones so that callers never observe a mutation in-place.
package model
