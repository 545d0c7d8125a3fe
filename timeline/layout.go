// Package timeline computes the proportional Gantt layout for the current
// tasks and allocation: a month-boundary ruler and per-executor lanes of
// bars, all expressed as percentages of the horizontal extent so rendering
// stays resolution independent.
package timeline

import (
	"time"

	"github.com/crewmatch/crewmatch/model"
)

// Segment is one calendar month of the ruler, clipped to the overall range.
type Segment struct {
	Label     string  `json:"label"`
	OffsetPct float64 `json:"offsetPct"`
	WidthPct  float64 `json:"widthPct"`
}

// Bar is one task bar inside an executor lane.
type Bar struct {
	TaskID    string  `json:"taskId"`
	Title     string  `json:"title"`
	Color     string  `json:"color"`
	OffsetPct float64 `json:"offsetPct"`
	WidthPct  float64 `json:"widthPct"`
}

// Layout is the complete Gantt geometry. Lanes are keyed by executor id;
// tasks with the unassigned sentinel or no allocation entry appear only in
// Unassigned, never in a lane.
type Layout struct {
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	TotalDays  float64          `json:"totalDays"`
	Ruler      []Segment        `json:"ruler"`
	Lanes      map[string][]Bar `json:"lanes"`
	Unassigned []string         `json:"unassigned"`
}

// Compute derives the layout for the supplied tasks and allocation mapping.
// An empty task list yields an empty layout, not an error.
func Compute(tasks []*model.Task, allocation model.Allocation) Layout {
	layout := Layout{Lanes: map[string][]Bar{}}
	if len(tasks) == 0 {
		return layout
	}

	minDate, maxDate := dateRange(tasks)
	totalDays := days(minDate, maxDate)
	if totalDays == 0 {
		// single-day span: avoid division by zero, keep proportions sane
		totalDays = 1
	}
	layout.Start = minDate
	layout.End = maxDate
	layout.TotalDays = totalDays
	layout.Ruler = monthRuler(minDate, maxDate, totalDays)

	for _, task := range tasks {
		executorID, ok := allocation[task.ID]
		if !ok || executorID == model.Unassigned {
			layout.Unassigned = append(layout.Unassigned, task.ID)
			continue
		}
		layout.Lanes[executorID] = append(layout.Lanes[executorID], Bar{
			TaskID:    task.ID,
			Title:     task.Title,
			Color:     task.Color,
			OffsetPct: days(minDate, task.StartDate) / totalDays * 100,
			WidthPct:  days(task.StartDate, task.EndDate) / totalDays * 100,
		})
	}
	return layout
}

// monthRuler yields one segment per calendar month intersecting the range,
// clipped at the range boundaries. Point intersections (a month touching the
// range only at its edge) are dropped; a single-day range still yields the
// containing month at full width.
func monthRuler(minDate, maxDate time.Time, totalDays float64) []Segment {
	if minDate.Equal(maxDate) {
		return []Segment{{Label: monthLabel(minDate), OffsetPct: 0, WidthPct: 100}}
	}
	var ruler []Segment
	for first := monthStart(minDate); first.Before(maxDate); first = first.AddDate(0, 1, 0) {
		segStart := maxTime(first, minDate)
		segEnd := minTime(first.AddDate(0, 1, 0), maxDate)
		if !segEnd.After(segStart) {
			continue
		}
		ruler = append(ruler, Segment{
			Label:     monthLabel(first),
			OffsetPct: days(minDate, segStart) / totalDays * 100,
			WidthPct:  days(segStart, segEnd) / totalDays * 100,
		})
	}
	return ruler
}

func dateRange(tasks []*model.Task) (time.Time, time.Time) {
	minDate, maxDate := tasks[0].StartDate, tasks[0].EndDate
	for _, task := range tasks[1:] {
		if task.StartDate.Before(minDate) {
			minDate = task.StartDate
		}
		if task.EndDate.After(maxDate) {
			maxDate = task.EndDate
		}
	}
	return minDate, maxDate
}

// days measures the span in fractional days so ranges carrying a time of day
// still lay out proportionally.
func days(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
