// internal/notifier/websocket_notifier.go
// Default Notifier implementation, wrapping the teacher's websocket.Hub
// broadcast/send-to-principal primitives (generalized from tournament-scoped
// to event-scoped channels).

package notifier

import (
	"context"
	"log"

	"tournament-planner/internal/websocket"
)

// WebSocketNotifier pushes every payload kind over the live websocket hub.
type WebSocketNotifier struct {
	hub    *websocket.Hub
	logger *log.Logger
}

// NewWebSocketNotifier wraps an already-running Hub.
func NewWebSocketNotifier(hub *websocket.Hub, logger *log.Logger) *WebSocketNotifier {
	return &WebSocketNotifier{hub: hub, logger: logger}
}

func (n *WebSocketNotifier) sendToPrincipal(principalID, messageType string, data interface{}) error {
	if principalID == "" {
		return nil
	}
	n.hub.SendToPrincipal(principalID, messageType, data)
	return nil
}

func (n *WebSocketNotifier) NotifyInterestPrompt(ctx context.Context, eventID, playerID string) error {
	if playerID == "" {
		n.hub.BroadcastEventUpdate(eventID, websocket.MessageInterestPrompt, map[string]string{
			"event_id": eventID,
		})
		return nil
	}
	return n.sendToPrincipal(playerID, websocket.MessageInterestPrompt, map[string]string{
		"event_id": eventID,
	})
}

func (n *WebSocketNotifier) NotifyListReviewCard(ctx context.Context, eventID, playerID, status string) error {
	return n.sendToPrincipal(playerID, websocket.MessageListReviewCard, map[string]string{
		"event_id": eventID,
		"status":   status,
	})
}

func (n *WebSocketNotifier) NotifyPairingCard(ctx context.Context, eventID, playerID, opponentID string, table int) error {
	return n.sendToPrincipal(playerID, websocket.MessagePairingCard, map[string]interface{}{
		"event_id":    eventID,
		"opponent_id": opponentID,
		"table":       table,
	})
}

func (n *WebSocketNotifier) NotifyRitualPrompt(ctx context.Context, eventID, teamRoundID string, principal Principal, prompt string) error {
	return n.sendToPrincipal(principal.ID, websocket.MessageRitualPrompt, map[string]interface{}{
		"event_id":       eventID,
		"team_round_id":  teamRoundID,
		"principal_kind": principal.Kind,
		"prompt":         prompt,
	})
}

func (n *WebSocketNotifier) NotifyResultConfirmCard(ctx context.Context, eventID, gameID string, principal Principal) error {
	return n.sendToPrincipal(principal.ID, websocket.MessageResultConfirmCard, map[string]interface{}{
		"event_id": eventID,
		"game_id":  gameID,
	})
}

func (n *WebSocketNotifier) NotifyJudgeAlert(ctx context.Context, eventID, message string) error {
	n.hub.BroadcastEventUpdate(eventID, websocket.MessageJudgeAlert, map[string]string{
		"message": message,
	})
	return nil
}

func (n *WebSocketNotifier) NotifyStandingsCard(ctx context.Context, eventID string) error {
	n.hub.BroadcastEventUpdate(eventID, websocket.MessageStandingsCard, map[string]string{
		"event_id": eventID,
	})
	return nil
}

func (n *WebSocketNotifier) NotifyAuditLogLine(ctx context.Context, eventID, line string) error {
	n.hub.BroadcastEventUpdate(eventID, websocket.MessageAuditLogLine, map[string]string{
		"line": line,
	})
	return nil
}

func (n *WebSocketNotifier) NotifyExternalRankingSubmission(ctx context.Context, eventID string, entries []ExternalRankingEntry) error {
	n.hub.BroadcastEventUpdate(eventID, websocket.MessageExternalRanking, map[string]interface{}{
		"event_id": eventID,
		"entries":  entries,
	})
	return nil
}

var _ Notifier = (*WebSocketNotifier)(nil)
