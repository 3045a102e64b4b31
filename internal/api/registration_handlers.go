// internal/api/registration_handlers.go
// Registration Controller HTTP handlers.

package api

import (
	"net/http"
	"time"

	"tournament-planner/internal/models"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleSubmitInterest records a player's interest in an event (Reserve tier).
func HandleSubmitInterest(regService *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID string `json:"player_id" binding:"required"`
			Username string `json:"username" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := regService.SubmitInterest(c.Request.Context(), c.Param("id"), req.PlayerID, req.Username); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "interest recorded"})
	}
}

// HandleSubmitList submits a player's army list for the event (Chop tier).
func HandleSubmitList(svc *services.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerID   string `json:"player_id" binding:"required"`
			Username   string `json:"username" binding:"required"`
			Army       string `json:"army" binding:"required"`
			Detachment string `json:"detachment"`
			ListText   string `json:"list_text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		event, err := svc.Repos.Event.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if event == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		if err := svc.Registration.SubmitList(c.Request.Context(), event, req.PlayerID, req.Username, req.Army, req.Detachment, req.ListText, time.Now()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "list submitted"})
	}
}

// HandleApproveRegistration approves a pending list, promoting it to Confirmed.
func HandleApproveRegistration(svc *services.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := svc.Repos.Event.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if event == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		if err := svc.Registration.Approve(c.Request.Context(), event.ID, c.Param("playerId"), event.MaxPlayers); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "registration approved"})
	}
}

// HandleRelegateRegistration returns a pending (Chop) registration to the reserve queue.
func HandleRelegateRegistration(regService *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := regService.Relegate(c.Request.Context(), c.Param("id"), c.Param("playerId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "registration relegated"})
	}
}

// HandleRejectRegistration rejects a submitted list.
func HandleRejectRegistration(regService *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Reason string `json:"reason"`
		}
		_ = c.ShouldBindJSON(&req)
		if err := regService.Reject(c.Request.Context(), c.Param("id"), c.Param("playerId"), req.Reason); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "registration rejected"})
	}
}

// HandleDropRegistration drops a registered player, promoting the oldest reserve.
func HandleDropRegistration(regService *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := regService.Drop(c.Request.Context(), c.Param("id"), c.Param("playerId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "registration dropped"})
	}
}

// HandleListRegistrations lists an event's registrations, optionally filtered by state.
func HandleListRegistrations(regService *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := models.RegistrationState(c.Query("state"))
		regs, err := regService.List(c.Request.Context(), c.Param("id"), state)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"registrations": regs})
	}
}
