package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessmentSummary(t *testing.T) {
	assessment := &Assessment{
		Soft: map[string]float64{"teamwork": 0.75, "communication": 0.5},
		Hard: map[string]float64{"go": 1},
	}
	expected := "Soft Skills:\n" +
		"communication: 50%\n" +
		"teamwork: 75%\n" +
		"Hard Skills:\n" +
		"go: 100%"
	assert.Equal(t, expected, assessment.Summary())
}

func TestAssessmentSummary_Empty(t *testing.T) {
	assert.Equal(t, "", (*Assessment)(nil).Summary())
	assert.Equal(t, "", (&Assessment{}).Summary())
}

func TestTooltip(t *testing.T) {
	testCases := []struct {
		description string
		task        Task
		expected    string
	}{
		{
			description: "pending",
			task:        Task{State: AnalysisStatePending},
			expected:    "Analysis in progress...",
		},
		{
			description: "failed",
			task:        Task{State: AnalysisStateFailed},
			expected:    "Analysis failed. Retry to run it again.",
		},
		{
			description: "succeeded without assessment",
			task:        Task{State: AnalysisStateSucceeded},
			expected:    "No analysis data",
		},
		{
			description: "succeeded",
			task: Task{
				State:      AnalysisStateSucceeded,
				Assessment: &Assessment{Hard: map[string]float64{"go": 0.9}},
			},
			expected: "Hard Skills:\ngo: 90%",
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, testCase.task.Tooltip(), testCase.description)
	}
}

func TestAssessmentClone_Isolated(t *testing.T) {
	original := &Assessment{Soft: map[string]float64{"grit": 0.4}}
	clone := original.Clone()
	clone.Soft["grit"] = 1
	assert.InDelta(t, 0.4, original.Soft["grit"], 1e-9)
}

func TestAllocationAssigned(t *testing.T) {
	allocation := Allocation{"t1": "e1", "t2": Unassigned}
	assert.True(t, allocation.Assigned("t1"))
	assert.False(t, allocation.Assigned("t2"))
	assert.False(t, allocation.Assigned("t3"))
}
