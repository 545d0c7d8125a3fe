package model

import (
	"fmt"
	"sort"
	"strings"
)

// AnalysisState represents the current State of an entity's skill analysis
type AnalysisState string

const (
	// AnalysisStatePending indicates the analysis request has been issued and
	// no response has been observed yet.
	AnalysisStatePending AnalysisState = "pending"

	// AnalysisStateSucceeded indicates an assessment has been attached.
	AnalysisStateSucceeded AnalysisState = "succeeded"

	// AnalysisStateFailed indicates the last analysis attempt failed; the
	// entity is eligible for an explicit retry.
	AnalysisStateFailed AnalysisState = "failed"
)

// IsTerminal reports whether the state accepts no further transition other
// than an explicit retry.
func (s AnalysisState) IsTerminal() bool {
	return s == AnalysisStateSucceeded || s == AnalysisStateFailed
}

// Assessment holds the soft/hard skill scores produced by the analysis
// service for a single entity. Scores are normalised to [0,1]. An assessment
// is immutable once attached; a retry replaces it wholesale.
type Assessment struct {
	Soft map[string]float64 `json:"soft,omitempty" yaml:"soft,omitempty"`
	Hard map[string]float64 `json:"hard,omitempty" yaml:"hard,omitempty"`
}

// Summary renders the assessment as human-readable text, one skill per line
// with the score as a percentage. Skills are sorted by name so the output is
// stable across renders.
func (a *Assessment) Summary() string {
	if a == nil {
		return ""
	}
	var parts []string
	if section := formatSkills(a.Soft); section != "" {
		parts = append(parts, "Soft Skills:", section)
	}
	if section := formatSkills(a.Hard); section != "" {
		parts = append(parts, "Hard Skills:", section)
	}
	return strings.Join(parts, "\n")
}

func formatSkills(skills map[string]float64) string {
	if len(skills) == 0 {
		return ""
	}
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %.0f%%", name, skills[name]*100))
	}
	return strings.Join(lines, "\n")
}

// Clone returns a deep copy so that callers can hold a snapshot without
// observing later replacement.
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	clone := &Assessment{}
	if a.Soft != nil {
		clone.Soft = make(map[string]float64, len(a.Soft))
		for k, v := range a.Soft {
			clone.Soft[k] = v
		}
	}
	if a.Hard != nil {
		clone.Hard = make(map[string]float64, len(a.Hard))
		for k, v := range a.Hard {
			clone.Hard[k] = v
		}
	}
	return clone
}
