// internal/models/round.go
// Round entity.

package models

import "time"

// RoundState is the round's lifecycle state.
type RoundState string

const (
	RoundPending    RoundState = "pending"
	RoundInProgress RoundState = "in_progress"
	RoundComplete   RoundState = "complete"
)

// Round is one round of an event. (EventID, RoundNumber) is unique.
type Round struct {
	ID             string     `json:"id" db:"id"`
	EventID        string     `json:"event_id" db:"event_id"`
	RoundNumber    int        `json:"round_number" db:"round_number"`
	DayNumber      int        `json:"day_number" db:"day_number"`
	State          RoundState `json:"state" db:"state"`
	StartedAt      *time.Time `json:"started_at,omitempty" db:"started_at"`
	DeadlineAt     *time.Time `json:"deadline_at,omitempty" db:"deadline_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	PairingsMsgRef string     `json:"pairings_msg_ref,omitempty" db:"pairings_msg_ref"`
}
