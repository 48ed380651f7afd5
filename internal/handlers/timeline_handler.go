package handlers

import (
	"net/http"

	"worklines-api/internal/database"
	"worklines-api/internal/models"
	"worklines-api/internal/progress"
	"worklines-api/internal/timeline"

	"github.com/gin-gonic/gin"
)

// TimelineRow pairs a task with its bar geometry. Bar is nil when the bar is
// hidden (unparseable dates or fully outside the visible span).
type TimelineRow struct {
	Task models.Task   `json:"task"`
	Bar  *timeline.Bar `json:"bar,omitempty"`
}

// GetTimeline handles GET /api/timeline for the active line.
// Returns the month columns spanning every task plus one row per task in
// Gantt order (top-level by start date, subtasks indented after their
// parent). An empty columns list means there is nothing to draw.
func GetTimeline(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}

	var tasks []models.Task
	if err := database.GetDB().Where("line_id = ?", lineID).Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	cols := timeline.BuildMonthColumns(tasks)

	rows := make([]TimelineRow, 0, len(tasks))
	for _, t := range timeline.OrderRows(tasks) {
		t.Progress = progress.TaskProgress(t, tasks)
		row := TimelineRow{Task: t}
		if bar, ok := timeline.LayoutBar(t, cols); ok {
			row.Bar = &bar
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": cols,
		"rows":    rows,
	})
}
