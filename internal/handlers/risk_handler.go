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

// deletedTaskPlaceholder is rendered when a risk references a task that no
// longer exists. Dangling references are expected, never an error.
const deletedTaskPlaceholder = "Tarea eliminada"

// CreateRiskRequest represents the payload for creating a risk
type CreateRiskRequest struct {
	TaskID         string            `json:"taskId"`
	Description    string            `json:"description" binding:"required"`
	Responsible    string            `json:"responsible"`
	RequiredAction string            `json:"requiredAction"`
	Status         models.RiskStatus `json:"status"`
	Priority       models.Level      `json:"priority"`
	Impact         models.Level      `json:"impact"`
}

// UpdateRiskRequest represents the payload for updating a risk
type UpdateRiskRequest struct {
	TaskID         *string            `json:"taskId"`
	Description    *string            `json:"description"`
	Responsible    *string            `json:"responsible"`
	RequiredAction *string            `json:"requiredAction"`
	Status         *models.RiskStatus `json:"status"`
	Priority       *models.Level      `json:"priority"`
	Impact         *models.Level      `json:"impact"`
}

// GetRisks handles GET /api/risks for the active line.
// Each risk that references a task is enriched with the task title, or with
// a "deleted" placeholder when the reference dangles.
func GetRisks(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}

	var risks []models.Risk
	if err := database.GetDB().Where("line_id = ?", lineID).Find(&risks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risks"})
		return
	}

	var tasks []models.Task
	if err := database.GetDB().Where("line_id = ?", lineID).Find(&tasks).Error; err == nil {
		titleByID := make(map[string]string, len(tasks))
		for _, t := range tasks {
			titleByID[t.ID] = t.Title
		}
		for i := range risks {
			if risks[i].TaskID == "" {
				continue
			}
			if title, ok := titleByID[risks[i].TaskID]; ok {
				risks[i].TaskTitle = title
			} else {
				risks[i].TaskTitle = deletedTaskPlaceholder
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"risks": risks,
		"count": len(risks),
	})
}

// CreateRisk handles POST /api/risks.
// TaskID is accepted without existence checks: it is a weak reference and
// may dangle later anyway.
func CreateRisk(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}

	var req CreateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.RiskOpen
	}
	priority := req.Priority
	if priority == "" {
		priority = models.LevelMedium
	}
	impact := req.Impact
	if impact == "" {
		impact = models.LevelMedium
	}

	risk := models.Risk{
		ID:             uuid.NewString(),
		LineID:         lineID,
		TaskID:         req.TaskID,
		Description:    req.Description,
		Responsible:    req.Responsible,
		RequiredAction: req.RequiredAction,
		Status:         status,
		Priority:       priority,
		Impact:         impact,
	}
	if err := database.GetDB().Create(&risk).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create risk"})
		return
	}

	c.JSON(http.StatusCreated, risk)
}

// UpdateRisk handles PUT /api/risks/:id.
func UpdateRisk(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	riskID := c.Param("id")
	var risk models.Risk
	result := database.GetDB().Where("id = ?", riskID).First(&risk)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risk"})
		}
		return
	}

	var req UpdateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TaskID != nil {
		risk.TaskID = *req.TaskID
	}
	if req.Description != nil {
		risk.Description = *req.Description
	}
	if req.Responsible != nil {
		risk.Responsible = *req.Responsible
	}
	if req.RequiredAction != nil {
		risk.RequiredAction = *req.RequiredAction
	}
	if req.Status != nil {
		risk.Status = *req.Status
	}
	if req.Priority != nil {
		risk.Priority = *req.Priority
	}
	if req.Impact != nil {
		risk.Impact = *req.Impact
	}

	if err := database.GetDB().Save(&risk).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update risk"})
		return
	}

	c.JSON(http.StatusOK, risk)
}

// DeleteRisk handles DELETE /api/risks/:id.
func DeleteRisk(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	riskID := c.Param("id")
	var risk models.Risk
	result := database.GetDB().Where("id = ?", riskID).First(&risk)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risk"})
		}
		return
	}

	if err := database.GetDB().Delete(&risk).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete risk"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Risk deleted successfully",
		"id":      riskID,
	})
}
