package handlers

import (
	"errors"
	"net/http"
	"time"

	"worklines-api/internal/database"
	"worklines-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateLineRequest represents the payload for creating a work line
type CreateLineRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// GetLines handles GET /api/lines.
// Admins see every line; USER accounts see only their assigned line.
func GetLines(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}

	query := database.GetDB().Model(&models.WorkLine{})
	if c.GetString("role") == string(models.RoleUser) {
		query = query.Where("id = ?", c.GetString("assigned_line_id"))
	}

	var lines []models.WorkLine
	if err := query.Find(&lines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch work lines"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"count": len(lines),
	})
}

// CreateLine handles POST /api/lines (admin only).
func CreateLine(c *gin.Context) {
	var req CreateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line := models.WorkLine{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := database.GetDB().Create(&line).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work line"})
		return
	}

	c.JSON(http.StatusCreated, line)
}

// DeleteLine handles DELETE /api/lines/:id (admin only).
// Children of the line are NOT cascade-deleted; projects, tasks and risks
// keep their lineId and simply stop being reachable through line views.
func DeleteLine(c *gin.Context) {
	lineID := c.Param("id")
	if lineID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Line ID is required"})
		return
	}

	var line models.WorkLine
	result := database.GetDB().Where("id = ?", lineID).First(&line)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work line not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch work line"})
		}
		return
	}

	if err := database.GetDB().Delete(&line).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work line"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work line deleted successfully",
		"id":      lineID,
	})
}
