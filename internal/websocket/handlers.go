// internal/websocket/handlers.go
// WebSocket connection handlers

package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, implement proper origin checking
		return true
	},
}

// HandleConnection handles new WebSocket connections
func HandleConnection(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalID, _ := c.Get("user_id")
		principalIDStr := ""
		if principalID != nil {
			principalIDStr = principalID.(string)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}

		client := &Client{
			hub:         hub,
			conn:        conn,
			send:        make(chan []byte, 256),
			principalID: principalIDStr,
			events:      make([]string, 0),
		}

		hub.register <- client

		welcomeMsg := Message{
			Type: "welcome",
			Data: map[string]interface{}{
				"message":      "connected",
				"principal_id": principalIDStr,
			},
		}
		if data, err := json.Marshal(welcomeMsg); err == nil {
			client.send <- data
		}

		go client.writePump()
		go client.readPump()
	}
}

// Message types pushed over the hub, one per Notifier payload kind.
const (
	MessageInterestPrompt    = "interest_prompt"
	MessageListReviewCard    = "list_review_card"
	MessagePairingCard       = "pairing_card"
	MessageRitualPrompt      = "ritual_prompt"
	MessageResultConfirmCard = "result_confirm_card"
	MessageJudgeAlert        = "judge_alert"
	MessageStandingsCard     = "standings_card"
	MessageAuditLogLine      = "audit_log_line"
	MessageExternalRanking   = "external_ranking_submission"
)
