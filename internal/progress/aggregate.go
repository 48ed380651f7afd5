// Package progress derives effective progress values across the two-level
// task hierarchy: subtasks roll up into their parent task, top-level tasks
// roll up into their project.
package progress

import (
	"math"

	"worklines-api/internal/models"
)

// TaskProgress returns the effective progress of a task. A task with
// subtasks reports the rounded mean of its direct children's stored
// progress; its own stored value is ignored. A task without subtasks
// reports its stored value unchanged.
func TaskProgress(task models.Task, all []models.Task) int {
	sum, count := 0, 0
	for _, t := range all {
		if t.ParentID == task.ID {
			sum += t.Progress
			count++
		}
	}
	if count == 0 {
		return task.Progress
	}
	return roundMean(sum, count)
}

// ProjectProgress returns the progress of a project: the rounded mean of
// the effective progress of its top-level tasks, or 0 when the project has
// no top-level tasks. Subtasks contribute only through their parent's
// aggregated value.
func ProjectProgress(projectID string, all []models.Task) int {
	sum, count := 0, 0
	for _, t := range all {
		if t.ProjectID == projectID && t.ParentID == "" {
			sum += TaskProgress(t, all)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return roundMean(sum, count)
}

func roundMean(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
