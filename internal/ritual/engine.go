// internal/ritual/engine.go
// Pure state-transition functions for the team-pairing ritual: defenders,
// attackers, choices, and the roll-off, each under a write-once-per-field
// guard. No Store, Clock, or Notifier access — the coordinator in
// services/ritual_service.go owns transport, persistence, and timeouts;
// this package only ever mutates the in-memory PairingState it is given and
// reports whether a gate has both sides' inputs.
//
// Grounded on the original ritual.py's _layout_mission_pickers,
// run_pairing_phase, run_layout_mission_phase, and _finalise_scrum, restated
// here as Go value semantics rather than a line-by-line port.

package ritual

import (
	"tournament-planner/internal/corerr"
	"tournament-planner/internal/models"
)

// Side identifies one of the two principals in a ritual.
type Side string

const (
	SideA Side = "team_a"
	SideB Side = "team_b"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// SubmitRoll records one side's roll-off value under a write-once guard.
// Returns true once both sides have committed.
func SubmitRoll(s *models.PairingState, side Side, value int) (bool, error) {
	if s.CurrentStep != models.StepAwaitRolloff {
		return false, corerr.InvalidStatef(string(models.StepAwaitRolloff), string(s.CurrentStep))
	}
	switch side {
	case SideA:
		if s.RollA != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "roll already submitted for team A")
		}
		v := value
		s.RollA = &v
	case SideB:
		if s.RollB != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "roll already submitted for team B")
		}
		v := value
		s.RollB = &v
	}
	return s.RollA != nil && s.RollB != nil, nil
}

// ResolveRollOff decides the roll-off winner once both sides have
// committed. A tie is reported via tie=true; the caller must clear RollA/
// RollB and remain at await_rolloff for a reroll.
func ResolveRollOff(s *models.PairingState) (winner Side, tie bool) {
	if *s.RollA == *s.RollB {
		return "", true
	}
	if *s.RollA > *s.RollB {
		return SideA, false
	}
	return SideB, false
}

// ActiveNonSubIDs returns the player ids of a roster's active, non-
// substitute members, in roster order.
func ActiveNonSubIDs(members []models.TeamMember) []string {
	var out []string
	for _, m := range members {
		if m.Active && m.Role != models.RoleSubstitute {
			out = append(out, m.PlayerID)
		}
	}
	return out
}

// Eligible filters a roster's ids down to those not already assigned
// (as defender, attacker, or refused) in a prior phase of this TeamRound.
func Eligible(roster []string, assigned map[string]bool) []string {
	var out []string
	for _, id := range roster {
		if !assigned[id] {
			out = append(out, id)
		}
	}
	return out
}

// AttackerCount returns how many attackers a side nominates this phase:
// min(2, eligible pool size after the defender is removed).
func AttackerCount(eligibleAfterDefender int) int {
	if eligibleAfterDefender < 2 {
		return eligibleAfterDefender
	}
	return 2
}

// SubmitDefender records one side's defender nomination under a write-once
// guard. Returns true once both sides have committed.
func SubmitDefender(s *models.PairingState, side Side, playerID string) (bool, error) {
	if s.CurrentStep != models.StepAwaitDefenders {
		return false, corerr.InvalidStatef(string(models.StepAwaitDefenders), string(s.CurrentStep))
	}
	switch side {
	case SideA:
		if s.DefenderA != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "defender already submitted for team A")
		}
		v := playerID
		s.DefenderA = &v
	case SideB:
		if s.DefenderB != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "defender already submitted for team B")
		}
		v := playerID
		s.DefenderB = &v
	}
	return s.DefenderA != nil && s.DefenderB != nil, nil
}

// SubmitAttackers records one side's attacker nominations under a
// write-once guard. ids must have exactly wantCount entries, all drawn from
// eligible.
func SubmitAttackers(s *models.PairingState, side Side, ids []string, eligible []string, wantCount int) (bool, error) {
	if s.CurrentStep != models.StepAwaitAttackers {
		return false, corerr.InvalidStatef(string(models.StepAwaitAttackers), string(s.CurrentStep))
	}
	if len(ids) != wantCount {
		return false, corerr.New(corerr.NoEligiblePlayers, "wrong number of attackers nominated")
	}
	set := make(map[string]bool, len(eligible))
	for _, id := range eligible {
		set[id] = true
	}
	for _, id := range ids {
		if !set[id] {
			return false, corerr.New(corerr.NoEligiblePlayers, "attacker not eligible")
		}
	}

	switch side {
	case SideA:
		if s.AttackersA != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "attackers already submitted for team A")
		}
		s.AttackersA = append(models.StringList(nil), ids...)
	case SideB:
		if s.AttackersB != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "attackers already submitted for team B")
		}
		s.AttackersB = append(models.StringList(nil), ids...)
	}
	return s.AttackersA != nil && s.AttackersB != nil, nil
}

// SubmitChoice records one side's choice of which opposing attacker their
// defender faces, under a write-once guard. choice_a must be drawn from
// attackers_b and vice versa.
func SubmitChoice(s *models.PairingState, side Side, chosen string) (bool, error) {
	if s.CurrentStep != models.StepAwaitChoice {
		return false, corerr.InvalidStatef(string(models.StepAwaitChoice), string(s.CurrentStep))
	}
	switch side {
	case SideA:
		if s.ChoiceA != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "choice already submitted for team A")
		}
		if !contains(s.AttackersB, chosen) {
			return false, corerr.New(corerr.NoEligiblePlayers, "choice not among opposing attackers")
		}
		v := chosen
		s.ChoiceA = &v
	case SideB:
		if s.ChoiceB != nil {
			return false, corerr.New(corerr.AlreadySubmitted, "choice already submitted for team B")
		}
		if !contains(s.AttackersA, chosen) {
			return false, corerr.New(corerr.NoEligiblePlayers, "choice not among opposing attackers")
		}
		v := chosen
		s.ChoiceB = &v
	}
	return s.ChoiceA != nil && s.ChoiceB != nil, nil
}

func contains(list models.StringList, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// refused returns a list's entries minus the chosen one.
func refused(list models.StringList, chosen string) []string {
	var out []string
	for _, v := range list {
		if v != chosen {
			out = append(out, v)
		}
	}
	return out
}

// DeriveSlots computes the two board pairings revealed at choice-reveal for
// a phase, given a fully-committed PairingState.
func DeriveSlots(phase int, s *models.PairingState) (slotANum, slotBNum int, slotA, slotB models.TeamPairing) {
	slotANum = 2*(phase-1) + 1
	slotBNum = 2*(phase-1) + 2

	slotA = models.TeamPairing{
		Slot:           slotANum,
		DefenderPlayer: *s.DefenderA,
		AttackerPlayer: *s.ChoiceA,
	}
	refA := refused(s.AttackersB, *s.ChoiceA)
	if len(refA) > 0 {
		r := refA[0]
		slotA.RefusedPlayer = &r
	}

	slotB = models.TeamPairing{
		Slot:           slotBNum,
		DefenderPlayer: *s.DefenderB,
		AttackerPlayer: *s.ChoiceB,
	}
	refB := refused(s.AttackersA, *s.ChoiceB)
	if len(refB) > 0 {
		r := refB[0]
		slotB.RefusedPlayer = &r
	}

	return slotANum, slotBNum, slotA, slotB
}

// LayoutMissionPickers returns which side picks layout and which picks
// mission for a given slot, per format-specific rule, and whether the slot
// has no layout pick at all (teams_8 slot 8).
func LayoutMissionPickers(format models.Format, slot int, rollWinner Side) (layoutPicker, missionPicker Side, noLayoutPick bool) {
	loser := rollWinner.Other()

	switch format {
	case models.FormatTeams3:
		if slot == 1 {
			return rollWinner, loser, false
		}
		return loser, rollWinner, false

	case models.FormatTeams5:
		if slot%2 == 1 {
			return rollWinner, loser, false
		}
		return loser, rollWinner, false

	case models.FormatTeams8:
		switch slot {
		case 1, 4, 5:
			return rollWinner, loser, false
		case 2, 3, 6, 7:
			return loser, rollWinner, false
		case 8:
			// Slot 8 (scrum): layout pre-assigned; loser (team_b of the
			// roll-off) picks mission only.
			return "", loser, true
		}
	}
	return rollWinner, loser, false
}

// SelectLayout picks a layout number not already used in this TeamRound,
// falling back to the full list if every layout has been used. eventLayouts
// is the event's ordered layout catalog as numbers; the entries are
// persisted in Event.EventLayouts as strings (e.g. "3") and parsed by the
// caller before invoking this function.
func SelectLayout(eventLayouts, usedInRound []int) int {
	used := make(map[int]bool, len(usedInRound))
	for _, l := range usedInRound {
		used[l] = true
	}
	for _, l := range eventLayouts {
		if !used[l] {
			return l
		}
	}
	if len(eventLayouts) > 0 {
		return eventLayouts[0]
	}
	return 0
}

// Mission describes one mission catalog entry for selection purposes.
type Mission struct {
	Code         string
	ValidLayouts []int
}

// SelectMission picks an event mission valid for the chosen layout, falling
// back to the full event mission list, then a global catalog, if nothing
// matches.
func SelectMission(eventMissions []Mission, globalCatalog []Mission, layout int) string {
	for _, m := range eventMissions {
		if containsInt(m.ValidLayouts, layout) {
			return m.Code
		}
	}
	if len(eventMissions) > 0 {
		return eventMissions[0].Code
	}
	for _, m := range globalCatalog {
		if containsInt(m.ValidLayouts, layout) {
			return m.Code
		}
	}
	if len(globalCatalog) > 0 {
		return globalCatalog[0].Code
	}
	return ""
}

func containsInt(list []int, v int) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// AutoPairRemaining pairs the sole remaining eligible player on each side —
// used by the teams_3 slot-3 closer, the teams_5 scrum, and the teams_8
// slot-7/slot-8 closers. Both sides must have exactly one eligible player.
func AutoPairRemaining(eligibleA, eligibleB []string) (defender, attacker string, err error) {
	if len(eligibleA) != 1 || len(eligibleB) != 1 {
		return "", "", corerr.New(corerr.NoEligiblePlayers, "expected exactly one remaining eligible player per side")
	}
	return eligibleA[0], eligibleB[0], nil
}

// ResetForNextPhase advances the cursor to the next phase's roll-off-less
// defender gate. Phases after the first reuse the roll-off winner recorded
// on the TeamRound, so the rolls are cleared along with the
// defender/attacker/choice fields.
func ResetForNextPhase(s *models.PairingState, phase int) {
	s.ResetForPhase(phase)
	s.CurrentStep = models.StepAwaitDefenders
}
