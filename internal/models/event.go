// internal/models/event.go
// Event entity and its lifecycle/format enums.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Format is the event's pairing format.
type Format string

const (
	FormatSingles Format = "singles"
	Format2v2     Format = "2v2"
	FormatTeams3  Format = "teams_3"
	FormatTeams5  Format = "teams_5"
	FormatTeams8  Format = "teams_8"
)

// TeamSize returns the number of non-substitute roster slots per team.
func (f Format) TeamSize() int {
	switch f {
	case Format2v2:
		return 2
	case FormatTeams3:
		return 3
	case FormatTeams5:
		return 5
	case FormatTeams8:
		return 8
	default:
		return 1
	}
}

// IsTeam reports whether the format pairs teams rather than individuals.
func (f Format) IsTeam() bool { return f != FormatSingles }

// PhaseCount returns the number of ritual phases this format runs.
func (f Format) PhaseCount() int {
	switch f {
	case FormatTeams3:
		return 1
	case FormatTeams5:
		return 2
	case FormatTeams8:
		return 3
	default:
		return 0
	}
}

// IndividualPoints returns the per-player points-limit convention for team
// formats (2v2 splits the list budget in half of a 2000pt standard event).
func (f Format) IndividualPoints() int {
	if f == Format2v2 {
		return 1000
	}
	return 2000
}

// EventState is the event lifecycle state.
type EventState string

const (
	EventAnnounced    EventState = "announced"
	EventInterest     EventState = "interest"
	EventRegistration EventState = "registration"
	EventInProgress   EventState = "in_progress"
	EventComplete     EventState = "complete"
)

// ScoringMode is the team-scoring convention, immutable per event once set.
type ScoringMode string

const (
	ScoringNTL ScoringMode = "ntl"
	ScoringWTC ScoringMode = "wtc"
)

// ScheduleSlot is one block of the event's fixed day schedule.
type ScheduleSlot struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Mission is a tournament mission entry, filterable by which layouts it is
// valid for.
type Mission struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Layouts []string `json:"layouts"`
}

// ScheduleSlotList is the JSON-column type for Event.ScheduleSlots.
type ScheduleSlotList []ScheduleSlot

func (s *ScheduleSlotList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into ScheduleSlotList", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, s)
}

func (s ScheduleSlotList) Value() (driver.Value, error) { return json.Marshal(s) }

// StringList is the JSON-column type for ordered string lists
// (event_layouts, event_pairings-as-ids).
type StringList []string

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, s)
}

func (s StringList) Value() (driver.Value, error) { return json.Marshal(s) }

// MissionList is the JSON-column type for Event.EventMissions.
type MissionList []Mission

func (m *MissionList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into MissionList", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, m)
}

func (m MissionList) Value() (driver.Value, error) { return json.Marshal(m) }

// Event is a tournament event.
type Event struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Format           Format           `json:"format" db:"format"`
	PointsLimit      int              `json:"points_limit" db:"points_limit"`
	IndividualPoints int              `json:"individual_points" db:"individual_points"`
	MaxPlayers       int              `json:"max_players" db:"max_players"`
	RoundCount       int              `json:"round_count" db:"round_count"`
	RoundsPerDay     int              `json:"rounds_per_day" db:"rounds_per_day"`
	StartDate        time.Time        `json:"start_date" db:"start_date"`
	EndDate          time.Time        `json:"end_date" db:"end_date"`
	RulesCutoff      time.Time        `json:"rules_cutoff" db:"rules_cutoff"`
	RegDeadline      time.Time        `json:"reg_deadline" db:"reg_deadline"`
	State            EventState       `json:"state" db:"state"`
	ScoringMode      ScoringMode      `json:"scoring_mode" db:"scoring_mode"`
	CreatedBy        string           `json:"created_by" db:"created_by"`
	ScheduleSlots    ScheduleSlotList `json:"schedule_slots" db:"schedule_slots"`
	EventLayouts     StringList       `json:"event_layouts" db:"event_layouts"`
	EventMissions    MissionList      `json:"event_missions" db:"event_missions"`
	EventPairings    StringList       `json:"event_pairings" db:"event_pairings"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// RoundCountFor implements the core's auto-sizing rule.
func RoundCountFor(maxPlayers int) int {
	if maxPlayers == 32 {
		return 5
	}
	return 3
}
