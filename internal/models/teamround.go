// internal/models/teamround.go
// TeamRound and TeamPairing entities — the team-vs-team matchup and its
// per-slot game pairings produced by the Ritual Engine.

package models

// TeamRoundState is the matchup's lifecycle state.
type TeamRoundState string

const (
	TeamRoundPairing  TeamRoundState = "pairing"
	TeamRoundPlaying  TeamRoundState = "playing"
	TeamRoundComplete TeamRoundState = "complete"
)

// LayoutPicker names which side of a TeamRound won the roll-off and so
// picks layouts first.
type LayoutPicker string

const (
	PickerTeamA LayoutPicker = "team_a"
	PickerTeamB LayoutPicker = "team_b"
)

// TeamRound is one team-vs-team matchup within a round.
type TeamRound struct {
	ID           string        `json:"id" db:"id"`
	RoundID      string        `json:"round_id" db:"round_id"`
	EventID      string        `json:"event_id" db:"event_id"`
	TeamAID      string        `json:"team_a_id" db:"team_a_id"`
	TeamBID      *string       `json:"team_b_id,omitempty" db:"team_b_id"`
	State        TeamRoundState `json:"state" db:"state"`
	TeamAScore   int           `json:"team_a_score" db:"team_a_score"`
	TeamBScore   int           `json:"team_b_score" db:"team_b_score"`
	TeamAWin     *bool         `json:"team_a_win,omitempty" db:"team_a_win"`
	LayoutPicker *LayoutPicker `json:"layout_picker,omitempty" db:"layout_picker"`
}

// TeamPairing is one slot's defender/attacker pairing, with its layout and
// mission once picked, and the game it spawns.
type TeamPairing struct {
	ID                string  `json:"id" db:"id"`
	TeamRoundID       string  `json:"team_round_id" db:"team_round_id"`
	Slot              int     `json:"slot" db:"slot"`
	GameID            *string `json:"game_id,omitempty" db:"game_id"`
	DefenderPlayer    string  `json:"defender_player" db:"defender_player"`
	DefenderTeam      string  `json:"defender_team" db:"defender_team"`
	AttackerPlayer    string  `json:"attacker_player" db:"attacker_player"`
	AttackerTeam      string  `json:"attacker_team" db:"attacker_team"`
	RefusedPlayer     *string `json:"refused_player,omitempty" db:"refused_player"`
	LayoutNumber      *int    `json:"layout_number,omitempty" db:"layout_number"`
	MissionCode       *string `json:"mission_code,omitempty" db:"mission_code"`
	LayoutPickerTeam  string  `json:"layout_picker_team" db:"layout_picker_team"`
	MissionPickerTeam string  `json:"mission_picker_team" db:"mission_picker_team"`
}
