package handlers

import (
	"errors"
	"net/http"

	"worklines-api/internal/database"
	"worklines-api/internal/hierarchy"
	"worklines-api/internal/models"
	"worklines-api/internal/progress"
	"worklines-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	ProjectID    string                 `json:"projectId"`
	ParentID     string                 `json:"parentId"`
	Title        string                 `json:"title" binding:"required"`
	Assignee     string                 `json:"assignee"`
	StartDate    string                 `json:"startDate"`
	EndDate      string                 `json:"endDate"`
	Priority     models.Level           `json:"priority"`
	Difficulty   models.Level           `json:"difficulty"`
	Progress     int                    `json:"progress"`
	Status       models.TaskStatus      `json:"status"`
	Dependencies string                 `json:"dependencies"`
	Comments     string                 `json:"comments"`
	Checklist    []models.ChecklistItem `json:"checklist"`
	Attachments  []models.Attachment    `json:"attachments"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	ProjectID    *string                 `json:"projectId"`
	ParentID     *string                 `json:"parentId"`
	Title        *string                 `json:"title"`
	Assignee     *string                 `json:"assignee"`
	StartDate    *string                 `json:"startDate"`
	EndDate      *string                 `json:"endDate"`
	Priority     *models.Level           `json:"priority"`
	Difficulty   *models.Level           `json:"difficulty"`
	Progress     *int                    `json:"progress"`
	Status       *models.TaskStatus      `json:"status"`
	Dependencies *string                 `json:"dependencies"`
	Comments     *string                 `json:"comments"`
	Checklist    *[]models.ChecklistItem `json:"checklist"`
	Attachments  *[]models.Attachment    `json:"attachments"`
}

// GetTasks handles GET /api/tasks.
// Returns the line's tasks in hierarchy order: top-level tasks sorted by
// sortField/sortDirection (endDate, progress, projectName), each followed by
// its subtasks. Progress values in the response are effective (subtask
// rollup applied); the stored value of a parent task is never exposed.
// Optional query param: projectId narrows to one project.
func GetTasks(c *gin.Context) {
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

	var projects []models.Project
	if err := database.GetDB().Where("line_id = ?", lineID).Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	nameByID := make(map[string]string, len(projects))
	for _, p := range projects {
		nameByID[p.ID] = p.Name
	}
	projectName := func(id string) string {
		if name, ok := nameByID[id]; ok {
			return name
		}
		return "Sin Proyecto"
	}

	field := hierarchy.Field(c.DefaultQuery("sortField", string(hierarchy.FieldEndDate)))
	dir := hierarchy.Direction(c.DefaultQuery("sortDirection", string(hierarchy.Asc)))

	ordered := hierarchy.Order(tasks, projectName, c.Query("projectId"), field, dir)

	// Replace stored progress with the effective rollup value.
	for i := range ordered {
		ordered[i].Progress = progress.TaskProgress(ordered[i], tasks)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": ordered,
		"count": len(ordered),
	})
}

// GetTaskByID handles GET /api/tasks/:id.
func GetTaskByID(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	taskID := c.Param("id")
	var task models.Task
	result := database.GetDB().Where("id = ?", taskID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	var siblings []models.Task
	if err := database.GetDB().Where("project_id = ?", task.ProjectID).Find(&siblings).Error; err == nil {
		task.Progress = progress.TaskProgress(task, siblings)
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /api/tasks.
// A top-level task must name a project; a subtask must name a top-level
// parent and inherits the parent's project and line. Nesting deeper than one
// level is rejected. The owning project's progress is recomputed and
// persisted before responding.
func CreateTask(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID := req.ProjectID
	if req.ParentID != "" {
		parent, ok := resolveParent(c, req.ParentID)
		if !ok {
			return
		}
		projectID = parent.ProjectID
		lineID = parent.LineID
	} else if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId is required for a top-level task"})
		return
	}

	if req.Progress < 0 || req.Progress > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "progress must be between 0 and 100"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusReadyToStart
	}
	priority := req.Priority
	if priority == "" {
		priority = models.LevelMedium
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.LevelMedium
	}

	task := models.Task{
		ID:           uuid.NewString(),
		LineID:       lineID,
		ProjectID:    projectID,
		ParentID:     req.ParentID,
		Title:        req.Title,
		Assignee:     req.Assignee,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Priority:     priority,
		Difficulty:   difficulty,
		Progress:     req.Progress,
		Status:       status,
		Dependencies: req.Dependencies,
		Comments:     req.Comments,
		Checklist:    req.Checklist,
		Attachments:  req.Attachments,
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	recomputeProjectProgress(task.ProjectID)

	realtime.GetHub().BroadcastEvent(realtime.Event{
		Type:   "task_created",
		TaskID: task.ID,
		LineID: task.LineID,
	})

	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:id.
func UpdateTask(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	taskID := c.Param("id")
	var task models.Task
	result := database.GetDB().Where("id = ?", taskID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	previousProjectID := task.ProjectID

	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	if req.ParentID != nil {
		task.ParentID = *req.ParentID
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Assignee != nil {
		task.Assignee = *req.Assignee
	}
	if req.StartDate != nil {
		task.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		task.EndDate = *req.EndDate
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Difficulty != nil {
		task.Difficulty = *req.Difficulty
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "progress must be between 0 and 100"})
			return
		}
		task.Progress = *req.Progress
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Dependencies != nil {
		task.Dependencies = *req.Dependencies
	}
	if req.Comments != nil {
		task.Comments = *req.Comments
	}
	if req.Checklist != nil {
		task.Checklist = *req.Checklist
	}
	if req.Attachments != nil {
		task.Attachments = *req.Attachments
	}

	// Re-validate linkage against the (possibly updated) parent.
	if task.ParentID != "" {
		parent, ok := resolveParent(c, task.ParentID)
		if !ok {
			return
		}
		task.ProjectID = parent.ProjectID
		task.LineID = parent.LineID
	} else if task.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId is required for a top-level task"})
		return
	}

	if err := database.GetDB().Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	recomputeProjectProgress(task.ProjectID)
	if previousProjectID != task.ProjectID {
		recomputeProjectProgress(previousProjectID)
	}

	realtime.GetHub().BroadcastEvent(realtime.Event{
		Type:   "task_updated",
		TaskID: task.ID,
		LineID: task.LineID,
	})

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id.
// Deleting a parent does not delete or reparent its subtasks: they stay in
// storage as orphans and disappear from hierarchy views only.
func DeleteTask(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	taskID := c.Param("id")
	var task models.Task
	result := database.GetDB().Where("id = ?", taskID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if err := database.GetDB().Delete(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	recomputeProjectProgress(task.ProjectID)

	realtime.GetHub().BroadcastEvent(realtime.Event{
		Type:   "task_deleted",
		TaskID: taskID,
		LineID: task.LineID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// resolveParent loads and validates a subtask's parent: it must exist and
// must itself be top-level (one level of nesting only). Writes the error
// response and returns false on failure.
func resolveParent(c *gin.Context, parentID string) (models.Task, bool) {
	var parent models.Task
	if err := database.GetDB().Where("id = ?", parentID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parentId: parent task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate parentId"})
		}
		return models.Task{}, false
	}
	if parent.IsSubtask() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parentId: a subtask cannot have its own subtasks"})
		return models.Task{}, false
	}
	return parent, true
}

// recomputeProjectProgress recalculates the derived progress of a project
// from its tasks and persists it. Called on every task mutation so the
// cached value on the project record never lags the hierarchy.
func recomputeProjectProgress(projectID string) {
	if projectID == "" {
		return
	}
	db := database.GetDB()

	var tasks []models.Task
	if err := db.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		return
	}
	value := progress.ProjectProgress(projectID, tasks)
	db.Model(&models.Project{}).Where("id = ?", projectID).Update("progress", value)
}
