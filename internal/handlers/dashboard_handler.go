package handlers

import (
	"math"
	"net/http"
	"time"

	"worklines-api/internal/cache"
	"worklines-api/internal/database"
	"worklines-api/internal/models"
	"worklines-api/internal/progress"

	"github.com/gin-gonic/gin"
)

// DashboardStats summarizes one work line for the dashboard view.
type DashboardStats struct {
	TotalProjects       int            `json:"totalProjects"`
	CompletedProjects   int            `json:"completedProjects"`
	AverageProgress     int            `json:"averageProgress"`
	AverageTaskProgress int            `json:"averageTaskProgress"`
	TasksByStatus       map[string]int `json:"tasksByStatus"`
	OpenRisks           int            `json:"openRisks"`
}

const dashboardTTL = 30 * time.Second

var dashboardCache = cache.New[string, DashboardStats]()

// GetDashboard handles GET /api/dashboard for the active line.
// Stats are cached briefly per line; at this scale staleness within the TTL
// is acceptable.
func GetDashboard(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}

	if stats, ok := dashboardCache.Get(lineID); ok {
		c.JSON(http.StatusOK, stats)
		return
	}

	db := database.GetDB()

	var projects []models.Project
	if err := db.Where("line_id = ?", lineID).Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	var tasks []models.Task
	if err := db.Where("line_id = ?", lineID).Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	var risks []models.Risk
	if err := db.Where("line_id = ?", lineID).Find(&risks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risks"})
		return
	}

	stats := buildStats(projects, tasks, risks)
	dashboardCache.Set(lineID, stats, dashboardTTL)

	c.JSON(http.StatusOK, stats)
}

func buildStats(projects []models.Project, tasks []models.Task, risks []models.Risk) DashboardStats {
	stats := DashboardStats{
		TotalProjects: len(projects),
		TasksByStatus: map[string]int{
			string(models.StatusReadyToStart): 0,
			string(models.StatusInProgress):   0,
			string(models.StatusDelayed):      0,
			string(models.StatusCompleted):    0,
		},
	}

	sum := 0
	for _, p := range projects {
		sum += p.Progress
		if p.Status == models.ProjectCompleted {
			stats.CompletedProjects++
		}
	}
	if len(projects) > 0 {
		stats.AverageProgress = int(math.Round(float64(sum) / float64(len(projects))))
	}

	top := 0
	taskSum := 0
	for _, t := range tasks {
		if t.ParentID != "" {
			continue
		}
		stats.TasksByStatus[string(t.Status)]++
		taskSum += progress.TaskProgress(t, tasks)
		top++
	}
	if top > 0 {
		stats.AverageTaskProgress = int(math.Round(float64(taskSum) / float64(top)))
	}

	for _, r := range risks {
		if r.Status == models.RiskOpen || r.Status == models.RiskInProgress {
			stats.OpenRisks++
		}
	}
	return stats
}
