package model

import "time"

// SkillLevel is a single named skill scaled to an integer level 0..10 the
// allocation service expects.
type SkillLevel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// TaskWithSkills is one task entry of an allocation request.
type TaskWithSkills struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	SoftSkills  []SkillLevel `json:"soft_skills"`
	HardSkills  []SkillLevel `json:"hard_skills"`
}

// ExecutorWithSkills is one executor entry of an allocation request.
type ExecutorWithSkills struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	SoftSkills []SkillLevel `json:"soft_skills"`
	HardSkills []SkillLevel `json:"hard_skills"`
}

// AllocationRequest is the normalized payload sent to the allocation
// endpoint. It is derived from store contents on every request, never stored.
// Entry order follows the store's insertion order.
type AllocationRequest struct {
	Tasks     []TaskWithSkills     `json:"tasks"`
	Executors []ExecutorWithSkills `json:"executors"`
}
