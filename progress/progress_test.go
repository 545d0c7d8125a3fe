package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewmatch/crewmatch/model"
)

func TestCount(t *testing.T) {
	tasks := []*model.Task{
		{ID: "t1", State: model.AnalysisStatePending},
		{ID: "t2", State: model.AnalysisStateSucceeded},
	}
	executors := []*model.Executor{
		{ID: "e1", State: model.AnalysisStateFailed},
	}

	counts := Count(tasks, executors)
	assert.Equal(t, Counts{Total: 3, Pending: 1, Succeeded: 1, Failed: 1}, counts)
	assert.False(t, counts.Done())

	assert.True(t, Count(nil, nil).Done())
}

func TestTracker_RefreshNotifies(t *testing.T) {
	var observed []Counts
	tracker := NewTracker(func(c Counts) { observed = append(observed, c) })

	tracker.Refresh([]*model.Task{{State: model.AnalysisStatePending}}, nil)
	tracker.Refresh(nil, nil)

	assert.Equal(t, Counts{Total: 1, Pending: 1}, observed[0])
	assert.Equal(t, Counts{}, observed[1])
	assert.Equal(t, Counts{}, tracker.Snapshot())
}
