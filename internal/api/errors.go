// internal/api/errors.go
// Maps the core's closed error taxonomy onto HTTP status codes.

package api

import (
	"net/http"

	"tournament-planner/internal/corerr"

	"github.com/gin-gonic/gin"
)

var kindStatus = map[corerr.Kind]int{
	corerr.NotFound:           http.StatusNotFound,
	corerr.PermissionDenied:   http.StatusForbidden,
	corerr.InvalidState:       http.StatusConflict,
	corerr.RosterFull:         http.StatusUnprocessableEntity,
	corerr.ListsLocked:        http.StatusConflict,
	corerr.AlreadySubmitted:   http.StatusConflict,
	corerr.RitualTimeout:      http.StatusGatewayTimeout,
	corerr.NoEligiblePlayers:  http.StatusUnprocessableEntity,
	corerr.FormatUnsupported:  http.StatusUnprocessableEntity,
	corerr.DuplicateTeamName:  http.StatusConflict,
	corerr.BelowMinimumRoster: http.StatusUnprocessableEntity,
	corerr.RoundIncomplete:    http.StatusConflict,
	corerr.IllegalAdjustment:  http.StatusUnprocessableEntity,
	corerr.StoreConflict:      http.StatusConflict,
}

// respondError writes err to the response, mapping a *corerr.Error to its
// status code and falling back to 500 for anything else.
func respondError(c *gin.Context, err error) {
	if ce, ok := err.(*corerr.Error); ok {
		status, known := kindStatus[ce.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": ce.Message, "kind": ce.Kind})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
