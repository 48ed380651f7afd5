package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"worklines-api/internal/cache"
	"worklines-api/internal/database"
	"worklines-api/internal/models"
	"worklines-api/internal/review"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var reviewService *review.Service

// InitReview wires the review service used by the generate endpoint.
// Called once from route setup.
func InitReview(s *review.Service) {
	reviewService = s
}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

const generatedReviewTTL = 10 * time.Minute

type reviewCacheKey struct {
	LineID string
	Month  string
}

var generatedCache = cache.New[reviewCacheKey, review.Content]()

// SaveReviewRequest represents the payload for saving a review
type SaveReviewRequest struct {
	Summary      string `json:"summary"`
	Achievements string `json:"achievements"`
	Issues       string `json:"issues"`
	NextSteps    string `json:"nextSteps"`
}

// GetReview handles GET /api/reviews/:month for the active line.
func GetReview(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}
	month := c.Param("month")
	if !monthPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	var saved models.MonthlyReview
	result := database.GetDB().Where("line_id = ? AND month = ?", lineID, month).First(&saved)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No saved review for this month"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		}
		return
	}

	c.JSON(http.StatusOK, saved)
}

// SaveReview handles PUT /api/reviews/:month: upserts the saved narrative
// for the line and month.
func SaveReview(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}
	month := c.Param("month")
	if !monthPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	var req SaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var saved models.MonthlyReview
	result := db.Where("line_id = ? AND month = ?", lineID, month).First(&saved)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		return
	}
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		saved = models.MonthlyReview{
			ID:     uuid.NewString(),
			LineID: lineID,
			Month:  month,
		}
	}

	saved.Summary = req.Summary
	saved.Achievements = req.Achievements
	saved.Issues = req.Issues
	saved.NextSteps = req.NextSteps

	if err := db.Save(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GenerateReview handles POST /api/reviews/:month/generate.
// Drafts review text from the line's current data via the LLM; failures are
// absorbed into a fixed fallback payload, reported through "generated".
// Successful drafts are cached per line and month for a few minutes.
func GenerateReview(c *gin.Context) {
	if !requireAuthenticated(c) {
		return
	}
	lineID, ok := effectiveLineID(c)
	if !ok {
		return
	}
	month := c.Param("month")
	if !monthPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	if reviewService == nil {
		c.JSON(http.StatusOK, gin.H{"content": review.Fallback(), "generated": false})
		return
	}

	key := reviewCacheKey{LineID: lineID, Month: month}
	if content, ok := generatedCache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"content": content, "generated": true})
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

	content, generated := reviewService.Generate(c.Request.Context(), month, projects, tasks, risks)
	if generated {
		generatedCache.Set(key, content, generatedReviewTTL)
	}

	c.JSON(http.StatusOK, gin.H{"content": content, "generated": generated})
}
