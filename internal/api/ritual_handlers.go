// internal/api/ritual_handlers.go
// Ritual Engine HTTP handlers — one per gate in the roll-off/defenders/
// attackers/choice/layout/mission sequence.

package api

import (
	"net/http"

	"tournament-planner/internal/models"
	"tournament-planner/internal/ritual"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

func parseSide(s string) ritual.Side {
	if s == string(ritual.SideB) {
		return ritual.SideB
	}
	return ritual.SideA
}

// HandleSubmitRoll submits one side's roll-off die value.
func HandleSubmitRoll(ritualService *services.RitualService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Side  string `json:"side" binding:"required"`
			Value int    `json:"value" binding:"required,min=1,max=6"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := ritualService.SubmitRoll(c.Request.Context(), c.Param("teamRoundId"), parseSide(req.Side), req.Value); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "roll recorded"})
	}
}

// HandleSubmitDefender submits one side's defender nomination.
func HandleSubmitDefender(ritualService *services.RitualService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Side     string `json:"side" binding:"required"`
			PlayerID string `json:"player_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := ritualService.SubmitDefender(c.Request.Context(), c.Param("teamRoundId"), parseSide(req.Side), req.PlayerID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "defender recorded"})
	}
}

// HandleSubmitAttackers submits the opposing side's attacker nominations.
func HandleSubmitAttackers(ritualService *services.RitualService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Side      string   `json:"side" binding:"required"`
			IDs       []string `json:"ids" binding:"required"`
			Eligible  []string `json:"eligible" binding:"required"`
			WantCount int      `json:"want_count" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := ritualService.SubmitAttackers(c.Request.Context(), c.Param("teamRoundId"), parseSide(req.Side), req.IDs, req.Eligible, req.WantCount); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "attackers recorded"})
	}
}

// HandleSubmitChoice submits one side's defend/attack choice once both
// defender/attacker slates are in.
func HandleSubmitChoice(ritualService *services.RitualService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Side       string `json:"side" binding:"required"`
			Chosen     string `json:"chosen" binding:"required"`
			TeamAID    string `json:"team_a_id" binding:"required"`
			TeamBID    string `json:"team_b_id" binding:"required"`
			Format     string `json:"format" binding:"required"`
			RollWinner string `json:"roll_winner" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		err := ritualService.SubmitChoice(
			c.Request.Context(), c.Param("teamRoundId"), parseSide(req.Side), req.Chosen,
			req.TeamAID, req.TeamBID, models.Format(req.Format), parseSide(req.RollWinner),
		)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "choice recorded"})
	}
}

// HandleSubmitLayoutMission submits a layout or mission pick for one board
// slot of a team-round.
func HandleSubmitLayoutMission(svc *services.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			LayoutNumber *int    `json:"layout_number"`
			MissionCode  *string `json:"mission_code"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		teamRoundID := c.Param("teamRoundId")
		pairings, err := svc.Repos.TeamRound.PairingsByTeamRound(c.Request.Context(), nil, teamRoundID)
		if err != nil {
			respondError(c, err)
			return
		}
		var pairing *models.TeamPairing
		for _, p := range pairings {
			if p.ID == c.Param("pairingId") {
				pairing = p
				break
			}
		}
		if pairing == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "pairing not found"})
			return
		}

		if err := svc.Ritual.SubmitLayoutMission(c.Request.Context(), teamRoundID, pairing, req.LayoutNumber, req.MissionCode); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pick recorded"})
	}
}

// HandleCompleteRitual marks a team-round's ritual complete without checking
// the boards' layout and mission picks. SubmitLayoutMission normally drives
// this itself; this TO-only route forces the transition after a gate stalls
// and is resolved manually.
func HandleCompleteRitual(ritualService *services.RitualService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ritualService.CompleteRitual(c.Request.Context(), c.Param("teamRoundId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ritual completed"})
	}
}
