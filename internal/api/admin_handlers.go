// internal/api/admin_handlers.go
// TO-only account administration handlers

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandlePromoteToTO grants the TO role to a crew account.
func HandlePromoteToTO(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")

		if err := userService.PromoteToTO(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "account promoted to TO"})
	}
}
