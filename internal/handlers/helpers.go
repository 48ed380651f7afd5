package handlers

import (
	"net/http"

	"worklines-api/internal/models"

	"github.com/gin-gonic/gin"
)

// effectiveLineID resolves which work line a request operates on. USER
// tokens are pinned to their assigned line regardless of query params;
// admins must name a line explicitly. Returns false after writing the error
// response.
func effectiveLineID(c *gin.Context) (string, bool) {
	if c.GetString("role") == string(models.RoleUser) {
		lineID := c.GetString("assigned_line_id")
		if lineID == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "No work line assigned to this user"})
			return "", false
		}
		return lineID, true
	}

	lineID := c.Query("lineId")
	if lineID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lineId is required"})
		return "", false
	}
	return lineID, true
}

// requireAuthenticated checks the user id set by the auth middleware is
// present before a handler touches line data.
func requireAuthenticated(c *gin.Context) bool {
	if c.GetString("user_id") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return false
	}
	return true
}
