// internal/api/round_handlers.go
// Round Controller HTTP handlers.

package api

import (
	"net/http"
	"time"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleStartRound opens the next round for an event: computes pairings
// for the format and creates Game/TeamRound rows.
func HandleStartRound(svc *services.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DurationMinutes int `json:"duration_minutes"`
		}
		_ = c.ShouldBindJSON(&req)
		duration := time.Duration(req.DurationMinutes) * time.Minute
		if duration <= 0 {
			duration = 3 * time.Hour
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

		round, err := svc.Round.StartRound(c.Request.Context(), event, duration)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"round": round})
	}
}

// HandleRepairRound re-pairs a round that has not yet produced a complete
// game.
func HandleRepairRound(svc *services.Container) gin.HandlerFunc {
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
		round, err := svc.Repos.Round.GetByID(c.Request.Context(), c.Param("roundId"))
		if err != nil {
			respondError(c, err)
			return
		}
		if round == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}
		if err := svc.Round.RepairRound(c.Request.Context(), event, round); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "round repaired"})
	}
}

// HandleCompleteRound closes a round once every game is complete and awards
// the bye's averaged VP.
func HandleCompleteRound(svc *services.Container) gin.HandlerFunc {
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
		round, err := svc.Repos.Round.GetByID(c.Request.Context(), c.Param("roundId"))
		if err != nil {
			respondError(c, err)
			return
		}
		if round == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}
		if err := svc.Round.CompleteRound(c.Request.Context(), event, round); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "round complete"})
	}
}
