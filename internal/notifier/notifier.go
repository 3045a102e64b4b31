// internal/notifier/notifier.go
// Notifier port: delivers principal-addressed prompts and cards over
// whatever transport is wired in. One method per payload kind, grounded on
// the teacher's websocket.Hub broadcast/send-to-user primitives and on the
// event-driven notifier shape from the dota-inhouse push package.

package notifier

import "context"

// Principal kinds a Notifier can address.
const (
	KindPlayer  = "player"
	KindCaptain = "captain"
	KindTO      = "to"
	KindCrew    = "crew"
)

// Principal identifies one addressable recipient.
type Principal struct {
	Kind string
	ID   string
}

// ExternalRankingEntry is one complete, non-bye game's result as bulk-
// submitted to the external ranking system alongside an event's final
// standings.
type ExternalRankingEntry struct {
	GameID string `json:"game_id"`
	P1     string `json:"p1"`
	P2     string `json:"p2"`
	P1VP   int    `json:"p1_vp"`
	P2VP   int    `json:"p2_vp"`
}

// Notifier delivers principal-addressed prompts and cards for every payload
// kind the tournament lifecycle produces. Implementations must not block the
// caller on delivery failure — a missed push is logged, never returned as a
// fatal error to the service layer that triggered it.
type Notifier interface {
	// NotifyInterestPrompt tells a player that interest registration has
	// opened for an event.
	NotifyInterestPrompt(ctx context.Context, eventID, playerID string) error

	// NotifyListReviewCard tells a player their list submission changed
	// status (approved, rejected, promoted from reserve, ...).
	NotifyListReviewCard(ctx context.Context, eventID, playerID, status string) error

	// NotifyPairingCard tells a player who they're playing and at which
	// table for a round.
	NotifyPairingCard(ctx context.Context, eventID, playerID, opponentID string, table int) error

	// NotifyRitualPrompt tells a principal it's their turn to act in a
	// team-pairing ritual (roll-off, defender, attackers, choice, layout or
	// mission pick).
	NotifyRitualPrompt(ctx context.Context, eventID, teamRoundID string, principal Principal, prompt string) error

	// NotifyResultConfirmCard tells the opposing principal a game result is
	// awaiting their confirmation.
	NotifyResultConfirmCard(ctx context.Context, eventID, gameID string, principal Principal) error

	// NotifyJudgeAlert tells event crew about a dispute, a timeout, or
	// another condition needing judge attention.
	NotifyJudgeAlert(ctx context.Context, eventID, message string) error

	// NotifyStandingsCard pushes an updated standings snapshot to an
	// event's subscribers.
	NotifyStandingsCard(ctx context.Context, eventID string) error

	// NotifyAuditLogLine streams one audit-log line to an event's crew
	// channel.
	NotifyAuditLogLine(ctx context.Context, eventID, line string) error

	// NotifyExternalRankingSubmission bulk-submits every complete, non-bye
	// game's result to the external ranking system once an event finishes.
	NotifyExternalRankingSubmission(ctx context.Context, eventID string, entries []ExternalRankingEntry) error
}
