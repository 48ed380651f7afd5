package handlers

import (
	"errors"
	"net/http"

	"worklines-api/internal/database"
	"worklines-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProjectRequest represents the payload for creating a project
type CreateProjectRequest struct {
	Name       string               `json:"name" binding:"required"`
	Objective  string               `json:"objective"`
	Assignee   string               `json:"assignee"`
	Status     models.ProjectStatus `json:"status"`
	Priority   models.Level         `json:"priority"`
	Difficulty models.Level         `json:"difficulty"`
	Budget     string               `json:"budget"`
	StartDate  string               `json:"startDate"`
	EndDate    string               `json:"endDate"`
	NextSteps  []string             `json:"nextSteps"`
	Notes      string               `json:"notes"`
}

// UpdateProjectRequest represents the payload for updating a project.
// Progress is deliberately absent: it is derived from the project's tasks
// and written back only by the task mutation path.
type UpdateProjectRequest struct {
	Name       *string               `json:"name"`
	Objective  *string               `json:"objective"`
	Assignee   *string               `json:"assignee"`
	Status     *models.ProjectStatus `json:"status"`
	Priority   *models.Level         `json:"priority"`
	Difficulty *models.Level         `json:"difficulty"`
	Budget     *string               `json:"budget"`
	StartDate  *string               `json:"startDate"`
	EndDate    *string               `json:"endDate"`
	NextSteps  *[]string             `json:"nextSteps"`
	Notes      *string               `json:"notes"`
}

// GetProjects handles GET /api/projects for the active line.
func GetProjects(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}

	var projects []models.Project
	if err := database.GetDB().Where("line_id = ?", lineID).Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// CreateProject handles POST /api/projects.
func CreateProject(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.ProjectReady
	}
	priority := req.Priority
	if priority == "" {
		priority = models.LevelMedium
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.LevelMedium
	}

	project := models.Project{
		ID:         uuid.NewString(),
		LineID:     lineID,
		Name:       req.Name,
		Objective:  req.Objective,
		Assignee:   req.Assignee,
		Status:     status,
		Priority:   priority,
		Difficulty: difficulty,
		Budget:     req.Budget,
		Progress:   0,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		NextSteps:  req.NextSteps,
		Notes:      req.Notes,
	}
	if err := database.GetDB().Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /api/projects/:id.
func UpdateProject(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	projectID := c.Param("id")
	var project models.Project
	result := database.GetDB().Where("id = ?", projectID).First(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Objective != nil {
		project.Objective = *req.Objective
	}
	if req.Assignee != nil {
		project.Assignee = *req.Assignee
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Priority != nil {
		project.Priority = *req.Priority
	}
	if req.Difficulty != nil {
		project.Difficulty = *req.Difficulty
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
	}
	if req.NextSteps != nil {
		project.NextSteps = *req.NextSteps
	}
	if req.Notes != nil {
		project.Notes = *req.Notes
	}

	if err := database.GetDB().Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id.
// Tasks of the project are not cascade-deleted; they keep a dangling
// projectId that views render as "Sin Proyecto".
func DeleteProject(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	projectID := c.Param("id")
	var project models.Project
	result := database.GetDB().Where("id = ?", projectID).First(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	if err := database.GetDB().Delete(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"id":      projectID,
	})
}
