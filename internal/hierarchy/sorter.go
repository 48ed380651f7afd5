// Package hierarchy orders tasks for tabular display: top-level tasks sorted
// by a caller-chosen field, each immediately followed by its subtasks.
package hierarchy

import (
	"sort"
	"strings"

	"worklines-api/internal/models"
	"worklines-api/internal/progress"
)

// Field selects the top-level sort key.
type Field string

const (
	FieldEndDate     Field = "endDate"
	FieldProgress    Field = "progress"
	FieldProjectName Field = "projectName"
)

// Direction selects ascending or descending order for the top-level sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order returns a flat sequence where every top-level task is immediately
// followed by its subtasks. Top-level tasks are sorted by field/dir (stable;
// unrecognized fields leave the original order untouched). Subtasks are
// always sorted ascending by end date, regardless of dir. Subtasks whose
// parent is not in the input are dropped.
//
// projectName resolves a project id to its display name for the projectName
// sort; it may be nil when that field is not requested.
func Order(tasks []models.Task, projectName func(string) string, filterProjectID string, field Field, dir Direction) []models.Task {
	filtered := tasks
	if filterProjectID != "" {
		filtered = make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ProjectID == filterProjectID {
				filtered = append(filtered, t)
			}
		}
	}

	var parents []models.Task
	children := make(map[string][]models.Task)
	for _, t := range filtered {
		if t.ParentID == "" {
			parents = append(parents, t)
		} else {
			children[t.ParentID] = append(children[t.ParentID], t)
		}
	}

	sortParents(parents, filtered, projectName, field, dir)

	result := make([]models.Task, 0, len(filtered))
	for _, p := range parents {
		result = append(result, p)
		sub := children[p.ID]
		sort.SliceStable(sub, func(i, j int) bool {
			return sub[i].EndDate < sub[j].EndDate
		})
		result = append(result, sub...)
	}
	return result
}

func sortParents(parents, all []models.Task, projectName func(string) string, field Field, dir Direction) {
	var less func(a, b models.Task) bool

	switch field {
	case FieldEndDate:
		less = func(a, b models.Task) bool { return a.EndDate < b.EndDate }
	case FieldProgress:
		less = func(a, b models.Task) bool {
			return progress.TaskProgress(a, all) < progress.TaskProgress(b, all)
		}
	case FieldProjectName:
		if projectName == nil {
			return
		}
		less = func(a, b models.Task) bool {
			return strings.ToLower(projectName(a.ProjectID)) < strings.ToLower(projectName(b.ProjectID))
		}
	default:
		// Unknown field: stable no-op.
		return
	}

	sort.SliceStable(parents, func(i, j int) bool {
		if dir == Desc {
			return less(parents[j], parents[i])
		}
		return less(parents[i], parents[j])
	})
}
