// Package crewmatch is an embeddable engine that registers tasks and
// executors, drives asynchronous skill analysis for each of them against a
// remote analysis service, requests task→executor allocations from a remote
// matching service, and computes a proportional Gantt layout for rendering.
//
// The engine holds all state in memory behind an entity store and emits a
// change event after every mutation, so a presentation layer re-renders from
// fresh snapshots instead of polling or patching incrementally.
package crewmatch
