// internal/api/game_handlers.go
// Game Lifecycle HTTP handlers.

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleSubmitResult records a game's result, pending -> submitted.
func HandleSubmitResult(gameService *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OwnVP int `json:"own_vp" binding:"min=0"`
			OppVP int `json:"opp_vp" binding:"min=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		submitterID := c.GetString("user_id")
		if err := gameService.Submit(c.Request.Context(), c.Param("id"), submitterID, req.OwnVP, req.OppVP); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "result submitted"})
	}
}

// HandleConfirmResult confirms a submitted result, applying it to standings.
func HandleConfirmResult(gameService *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		confirmerID := c.GetString("user_id")
		isTO := c.GetString("user_role") == "to"
		if err := gameService.Confirm(c.Request.Context(), c.Param("id"), confirmerID, isTO); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "result confirmed"})
	}
}

// HandleDisputeResult surfaces a submitted result to the TO.
func HandleDisputeResult(gameService *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		disputerID := c.GetString("user_id")
		if err := gameService.Dispute(c.Request.Context(), c.Param("id"), disputerID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "result disputed"})
	}
}

// HandleOverrideResult forces a result to complete by TO fiat.
func HandleOverrideResult(gameService *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			P1VP int `json:"p1_vp" binding:"min=0"`
			P2VP int `json:"p2_vp" binding:"min=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := gameService.Override(c.Request.Context(), c.Param("id"), req.P1VP, req.P2VP); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "result overridden"})
	}
}

// HandleAdjustResult corrects a completed game's score, reversing and
// reapplying the standings delta.
func HandleAdjustResult(gameService *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			P1VP int    `json:"p1_vp" binding:"min=0"`
			P2VP int    `json:"p2_vp" binding:"min=0"`
			Note string `json:"note"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		adjustedBy := c.GetString("user_id")
		if err := gameService.Adjust(c.Request.Context(), c.Param("id"), req.P1VP, req.P2VP, req.Note, adjustedBy); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "result adjusted"})
	}
}
