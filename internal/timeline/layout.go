// Package timeline projects task date ranges onto a month-granularity Gantt
// layout: a contiguous run of calendar-month columns spanning every task,
// and per-task bar geometry expressed as percentages of that span.
package timeline

import (
	"sort"
	"time"

	"worklines-api/internal/models"
)

// MinColumns is the minimum number of month columns; short date ranges are
// padded with trailing months up to this width.
const MinColumns = 6

// MonthColumn is one calendar-month slot of the layout.
type MonthColumn struct {
	Year  int        `json:"year"`
	Month time.Month `json:"-"`
	Label string     `json:"label"`
	Start time.Time  `json:"start"`
}

// Bar is the horizontal geometry of a task bar, as percentages of the full
// timeline span.
type Bar struct {
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
}

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

var dateLayouts = []string{
	"2006-01-02",
	"2 Jan 2006",
	time.RFC3339,
	"02 Jan 2006",
}

// ParseDate parses a task date, trying ISO first and a few lenient layouts
// after. The bool result reports success.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// BuildMonthColumns derives the column run covering every task with parseable
// dates: from the month of the earliest start through the month of the latest
// end, padded to MinColumns. Tasks whose start or end does not parse are
// excluded from the range computation. With no parseable dates at all the
// result is empty and the caller renders an empty state.
func BuildMonthColumns(tasks []models.Task) []MonthColumn {
	var minStart, maxEnd time.Time
	found := false
	for _, t := range tasks {
		start, okS := ParseDate(t.StartDate)
		end, okE := ParseDate(t.EndDate)
		if !okS || !okE {
			continue
		}
		if !found || start.Before(minStart) {
			minStart = start
		}
		if !found || end.After(maxEnd) {
			maxEnd = end
		}
		found = true
	}
	if !found {
		return nil
	}

	cur := monthStart(minStart)
	stop := monthStart(maxEnd).AddDate(0, 1, 0)

	var cols []MonthColumn
	for cur.Before(stop) {
		cols = append(cols, newColumn(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	for len(cols) < MinColumns {
		cols = append(cols, newColumn(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return cols
}

// LayoutBar maps a task's date range onto the timeline span defined by the
// columns. The second result is false when the bar is hidden: unparseable
// dates, or a range that is empty after clamping to the span.
func LayoutBar(task models.Task, cols []MonthColumn) (Bar, bool) {
	if len(cols) == 0 {
		return Bar{}, false
	}
	start, okS := ParseDate(task.StartDate)
	end, okE := ParseDate(task.EndDate)
	if !okS || !okE {
		return Bar{}, false
	}

	timelineStart := cols[0].Start
	timelineEnd := cols[len(cols)-1].Start.AddDate(0, 1, 0)
	total := timelineEnd.Sub(timelineStart)

	if start.Before(timelineStart) {
		start = timelineStart
	}
	if end.After(timelineEnd) {
		end = timelineEnd
	}
	if end.Before(start) {
		return Bar{}, false
	}

	return Bar{
		LeftPercent:  start.Sub(timelineStart).Seconds() / total.Seconds() * 100,
		WidthPercent: end.Sub(start).Seconds() / total.Seconds() * 100,
	}, true
}

// OrderRows returns the Gantt row order: top-level tasks ascending by start
// date, each immediately followed by its subtasks, also ascending by start
// date. Subtasks with no matching parent are dropped.
func OrderRows(tasks []models.Task) []models.Task {
	var parents []models.Task
	children := make(map[string][]models.Task)
	for _, t := range tasks {
		if t.ParentID == "" {
			parents = append(parents, t)
		} else {
			children[t.ParentID] = append(children[t.ParentID], t)
		}
	}

	byStart := func(list []models.Task) {
		sort.SliceStable(list, func(i, j int) bool {
			a, _ := ParseDate(list[i].StartDate)
			b, _ := ParseDate(list[j].StartDate)
			return a.Before(b)
		})
	}
	byStart(parents)

	result := make([]models.Task, 0, len(tasks))
	for _, p := range parents {
		result = append(result, p)
		sub := children[p.ID]
		byStart(sub)
		result = append(result, sub...)
	}
	return result
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func newColumn(start time.Time) MonthColumn {
	return MonthColumn{
		Year:  start.Year(),
		Month: start.Month(),
		Label: spanishMonths[int(start.Month())-1],
		Start: start,
	}
}
