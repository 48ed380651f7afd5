package progress

import (
	"testing"

	"worklines-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestTaskProgress_LeafPassesThrough(t *testing.T) {
	task := models.Task{ID: "t-1", Progress: 40}
	require.Equal(t, 40, TaskProgress(task, []models.Task{task}))
}

func TestTaskProgress_ParentAveragesChildren(t *testing.T) {
	parent := models.Task{ID: "t-1", Progress: 5} // stored value is stale and ignored
	all := []models.Task{
		parent,
		{ID: "t-2", ParentID: "t-1", Progress: 100},
		{ID: "t-3", ParentID: "t-1", Progress: 50},
	}
	require.Equal(t, 75, TaskProgress(parent, all))
}

func TestTaskProgress_RoundsToNearest(t *testing.T) {
	parent := models.Task{ID: "p"}
	all := []models.Task{
		parent,
		{ID: "c1", ParentID: "p", Progress: 10},
		{ID: "c2", ParentID: "p", Progress: 10},
		{ID: "c3", ParentID: "p", Progress: 15},
	}
	// mean 11.66... rounds to 12
	require.Equal(t, 12, TaskProgress(parent, all))
}

func TestProjectProgress_NoTasksIsZero(t *testing.T) {
	require.Equal(t, 0, ProjectProgress("proj-1", nil))
	require.Equal(t, 0, ProjectProgress("proj-1", []models.Task{
		{ID: "t-1", ProjectID: "other", Progress: 90},
	}))
}

func TestProjectProgress_SubtasksOnlyCountThroughParent(t *testing.T) {
	all := []models.Task{
		{ID: "a", ProjectID: "alpha", Progress: 40},
		{ID: "b", ProjectID: "alpha", Progress: 0},
		{ID: "b1", ProjectID: "alpha", ParentID: "b", Progress: 100},
		{ID: "b2", ProjectID: "alpha", ParentID: "b", Progress: 50},
	}
	// effective(b) = 75, project = round((40+75)/2) = 58
	require.Equal(t, 58, ProjectProgress("alpha", all))
}

func TestProjectProgress_IgnoresStaleParentValue(t *testing.T) {
	all := []models.Task{
		{ID: "p", ProjectID: "alpha", Progress: 0},
		{ID: "c", ProjectID: "alpha", ParentID: "p", Progress: 80},
	}
	require.Equal(t, 80, ProjectProgress("alpha", all))
}
