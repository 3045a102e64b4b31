// internal/models/game.go
// Game entity — one singles or team-slot result track.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GameState is the game result lifecycle state.
type GameState string

const (
	GamePending   GameState = "pending"
	GameSubmitted GameState = "submitted"
	GameComplete  GameState = "complete"
	GameDisputed  GameState = "disputed"
	GameBye       GameState = "bye"
)

// GameDetail stores optional structured per-game detail beyond the two bare
// VP totals (e.g. secondary objective breakdown), grounded on the teacher's
// ScoreDetails JSON-column pattern.
type GameDetail struct {
	Notes  string                 `json:"notes,omitempty"`
	Custom map[string]interface{} `json:"custom,omitempty"`
}

func (d *GameDetail) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into GameDetail", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, d)
}

func (d GameDetail) Value() (driver.Value, error) { return json.Marshal(d) }

// Game is one result track: a singles pairing, or one TeamPairing's slot
// game for team formats.
type Game struct {
	ID           string      `json:"id" db:"id"`
	RoundID      string      `json:"round_id" db:"round_id"`
	EventID      string      `json:"event_id" db:"event_id"`
	RoomNumber   *int        `json:"room_number,omitempty" db:"room_number"`
	P1           string      `json:"p1" db:"p1"`
	P2           *string     `json:"p2,omitempty" db:"p2"`
	IsBye        bool        `json:"is_bye" db:"is_bye"`
	P1VP         *int        `json:"p1_vp,omitempty" db:"p1_vp"`
	P2VP         *int        `json:"p2_vp,omitempty" db:"p2_vp"`
	WinnerID     *string     `json:"winner_id,omitempty" db:"winner_id"`
	State        GameState   `json:"state" db:"state"`
	Detail       *GameDetail `json:"detail,omitempty" db:"detail"`
	SubmittedAt  *time.Time  `json:"submitted_at,omitempty" db:"submitted_at"`
	ConfirmedAt  *time.Time  `json:"confirmed_at,omitempty" db:"confirmed_at"`
	AdjNote      string      `json:"adj_note,omitempty" db:"adj_note"`
}

// IsDraw reports whether the completed game ended in equal VPs.
func (g *Game) IsDraw() bool {
	return g.P1VP != nil && g.P2VP != nil && *g.P1VP == *g.P2VP
}
