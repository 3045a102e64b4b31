// internal/models/pairingstate.go
// PairingState — the Ritual Engine's per-TeamRound transient cursor.
// Exactly one row per TeamRound; fields are write-once per phase and are
// explicitly cleared when a new phase starts.

package models

import "time"

// PairingStep is a step in the ritual's gate sequence.
type PairingStep string

const (
	StepAwaitRolloff   PairingStep = "await_rolloff"
	StepAwaitDefenders PairingStep = "await_defenders"
	StepAwaitAttackers PairingStep = "await_attackers"
	StepAwaitChoice    PairingStep = "await_choice"
	StepAwaitLayoutA   PairingStep = "await_layout_a"
	StepAwaitMissionA  PairingStep = "await_mission_a"
	StepAwaitLayoutB   PairingStep = "await_layout_b"
	StepAwaitMissionB  PairingStep = "await_mission_b"
	StepComplete       PairingStep = "complete"
)

// PairingState is the ritual coordinator's crash-recoverable cursor.
type PairingState struct {
	TeamRoundID  string        `json:"team_round_id" db:"team_round_id"`
	CurrentPhase int           `json:"current_phase" db:"current_phase"`
	CurrentStep  PairingStep   `json:"current_step" db:"current_step"`
	RollA        *int          `json:"roll_a,omitempty" db:"roll_a"`
	RollB        *int          `json:"roll_b,omitempty" db:"roll_b"`
	DefenderA    *string       `json:"defender_a,omitempty" db:"defender_a"`
	DefenderB    *string       `json:"defender_b,omitempty" db:"defender_b"`
	AttackersA   StringList    `json:"attackers_a,omitempty" db:"attackers_a"`
	AttackersB   StringList    `json:"attackers_b,omitempty" db:"attackers_b"`
	ChoiceA      *string       `json:"choice_a,omitempty" db:"choice_a"`
	ChoiceB      *string       `json:"choice_b,omitempty" db:"choice_b"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// ResetForPhase clears all write-once fields for the start of a new phase,
// leaving CurrentPhase/CurrentStep to be set by the caller.
func (p *PairingState) ResetForPhase(phase int) {
	p.CurrentPhase = phase
	p.RollA = nil
	p.RollB = nil
	p.DefenderA = nil
	p.DefenderB = nil
	p.AttackersA = nil
	p.AttackersB = nil
	p.ChoiceA = nil
	p.ChoiceB = nil
}
