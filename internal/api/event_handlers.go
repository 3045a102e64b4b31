// internal/api/event_handlers.go
// Event Controller HTTP handlers: create/open/lock/finish the event
// lifecycle.

package api

import (
	"net/http"
	"time"

	"tournament-planner/internal/models"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

type createEventRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=100"`
	PointsLimit int       `json:"points_limit" binding:"required,min=1"`
	MaxPlayers  int       `json:"max_players" binding:"required,min=2"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	Format      string    `json:"format" binding:"required"`
}

// HandleCreateEvent creates a new event in the announced state.
func HandleCreateEvent(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		createdBy := c.GetString("user_id")
		event, err := eventService.CreateEvent(c.Request.Context(), req.Name, req.PointsLimit, req.MaxPlayers, req.StartDate, models.Format(req.Format), createdBy)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"event": event})
	}
}

// HandleGetEvent retrieves a single event by ID.
func HandleGetEvent(svc *services.Container) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

// HandleListActiveEvents lists every event not yet complete.
func HandleListActiveEvents(svc *services.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.Repos.Event.ListActive(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// HandleOpenInterest transitions an event from announced to interest.
func HandleOpenInterest(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := eventService.OpenInterest(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "interest opened"})
	}
}

// HandleOpenRegistration transitions an event from interest to registration.
func HandleOpenRegistration(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := eventService.OpenRegistration(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "registration opened"})
	}
}

// HandleLockLists publishes approved lists and closes registration.
func HandleLockLists(svc *services.Container) gin.HandlerFunc {
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
		if err := svc.Event.LockLists(c.Request.Context(), event); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "lists locked"})
	}
}

// HandleFinishEvent completes the event and returns final standings.
func HandleFinishEvent(svc *services.Container) gin.HandlerFunc {
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
		standings, err := svc.Event.FinishEvent(c.Request.Context(), event)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"standings": standings})
	}
}

// HandleGetStandings returns an event's current standings.
func HandleGetStandings(svc *services.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		standings, err := svc.Repos.Standing.ListByEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"standings": standings})
	}
}
