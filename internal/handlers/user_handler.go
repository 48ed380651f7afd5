package handlers

import (
	"errors"
	"net/http"

	"worklines-api/internal/database"
	"worklines-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUserRequest represents the payload for creating a user
type CreateUserRequest struct {
	Name           string      `json:"name" binding:"required"`
	Email          string      `json:"email" binding:"required,email"`
	Password       string      `json:"password" binding:"required"`
	Role           models.Role `json:"role"`
	AssignedLineID string      `json:"assignedLineId"`
}

// UpdateUserRequest represents the payload for updating a user
type UpdateUserRequest struct {
	Name           *string      `json:"name"`
	Email          *string      `json:"email"`
	Password       *string      `json:"password"`
	Role           *models.Role `json:"role"`
	AssignedLineID *string      `json:"assignedLineId"`
}

// GetAllUsers handles GET /api/users (admin only).
// Password hashes never leave the model's json:"-" tag.
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// CreateUser handles POST /api/users (admin only).
// A USER account must be pinned to a work line; an ADMIN must not.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role == models.RoleUser && req.AssignedLineID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignedLineId is required for USER role"})
		return
	}
	if role == models.RoleAdmin {
		req.AssignedLineID = ""
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Password:       string(hash),
		Role:           role,
		AssignedLineID: req.AssignedLineID,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/users/:id (admin only).
func UpdateUser(c *gin.Context) {
	userID := c.Param("id")
	var user models.User
	result := database.GetDB().Where("id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.Password = string(hash)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.AssignedLineID != nil {
		user.AssignedLineID = *req.AssignedLineID
	}

	if user.Role == models.RoleUser && user.AssignedLineID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignedLineId is required for USER role"})
		return
	}
	if user.Role == models.RoleAdmin {
		user.AssignedLineID = ""
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id (admin only).
func DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the account you are logged in with"})
		return
	}

	var user models.User
	result := database.GetDB().Where("id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	if err := database.GetDB().Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"id":      userID,
	})
}
