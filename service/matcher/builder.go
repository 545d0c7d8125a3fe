package matcher

import (
	"math"
	"sort"

	"github.com/crewmatch/crewmatch/model"
)

// BuildRequest shapes the current store contents into the normalized payload
// the allocation service expects. Entry order follows the store's insertion
// order; the service correlates by id, but a stable order keeps request
// diffs deterministic. Entities whose analysis is still pending or failed
// contribute empty skill lists rather than being excluded, keeping the
// request aligned with what the operator sees.
func BuildRequest(tasks []*model.Task, executors []*model.Executor) *model.AllocationRequest {
	request := &model.AllocationRequest{
		Tasks:     make([]model.TaskWithSkills, 0, len(tasks)),
		Executors: make([]model.ExecutorWithSkills, 0, len(executors)),
	}
	for _, task := range tasks {
		request.Tasks = append(request.Tasks, model.TaskWithSkills{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			StartDate:   task.StartDate,
			EndDate:     task.EndDate,
			SoftSkills:  scaleSkills(softOf(task.Assessment)),
			HardSkills:  scaleSkills(hardOf(task.Assessment)),
		})
	}
	for _, executor := range executors {
		request.Executors = append(request.Executors, model.ExecutorWithSkills{
			ID:         executor.ID,
			Name:       executor.Name,
			SoftSkills: scaleSkills(softOf(executor.Assessment)),
			HardSkills: scaleSkills(hardOf(executor.Assessment)),
		})
	}
	return request
}

// scaleSkills converts [0,1] scores to integer levels 0..10 using half-up
// rounding (0.55 scales to 6), sorted by skill name for stable output.
func scaleSkills(scores map[string]float64) []model.SkillLevel {
	levels := make([]model.SkillLevel, 0, len(scores))
	for name, score := range scores {
		levels = append(levels, model.SkillLevel{
			Name:  name,
			Level: int(math.Round(score * 10)),
		})
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Name < levels[j].Name })
	return levels
}

func softOf(assessment *model.Assessment) map[string]float64 {
	if assessment == nil {
		return nil
	}
	return assessment.Soft
}

func hardOf(assessment *model.Assessment) map[string]float64 {
	if assessment == nil {
		return nil
	}
	return assessment.Hard
}
