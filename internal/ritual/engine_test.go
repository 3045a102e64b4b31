package ritual

import (
	"testing"

	"tournament-planner/internal/corerr"
	"tournament-planner/internal/models"
)

func newRolloffState() *models.PairingState {
	return &models.PairingState{TeamRoundID: "tr_1", CurrentStep: models.StepAwaitRolloff}
}

func TestSideOther(t *testing.T) {
	if SideA.Other() != SideB {
		t.Fatal("SideA.Other() must be SideB")
	}
	if SideB.Other() != SideA {
		t.Fatal("SideB.Other() must be SideA")
	}
}

func TestSubmitRollWriteOnceAndCompletion(t *testing.T) {
	s := newRolloffState()

	done, err := SubmitRoll(s, SideA, 4)
	if err != nil {
		t.Fatalf("first roll for side A should succeed: %v", err)
	}
	if done {
		t.Fatal("must not report complete until both sides have rolled")
	}

	if _, err := SubmitRoll(s, SideA, 5); !corerr.Is(err, corerr.AlreadySubmitted) {
		t.Fatalf("resubmitting side A's roll must fail with AlreadySubmitted, got %v", err)
	}

	done, err = SubmitRoll(s, SideB, 2)
	if err != nil {
		t.Fatalf("second roll for side B should succeed: %v", err)
	}
	if !done {
		t.Fatal("must report complete once both sides have rolled")
	}
}

func TestSubmitRollWrongStepRejected(t *testing.T) {
	s := &models.PairingState{CurrentStep: models.StepAwaitDefenders}
	if _, err := SubmitRoll(s, SideA, 3); !corerr.Is(err, corerr.InvalidState) {
		t.Fatalf("roll submitted outside await_rolloff must fail with InvalidState, got %v", err)
	}
}

func TestResolveRollOffWinnerAndTie(t *testing.T) {
	a, b := 5, 2
	s := &models.PairingState{RollA: &a, RollB: &b}
	winner, tie := ResolveRollOff(s)
	if tie || winner != SideA {
		t.Fatalf("RollA=5 > RollB=2 should give SideA the win, got winner=%v tie=%v", winner, tie)
	}

	tieVal := 3
	s = &models.PairingState{RollA: &tieVal, RollB: &tieVal}
	_, tie = ResolveRollOff(s)
	if !tie {
		t.Fatal("equal rolls must report a tie")
	}
}

func TestActiveNonSubIDsFiltersSubsAndInactive(t *testing.T) {
	members := []models.TeamMember{
		{PlayerID: "p1", Role: models.RolePlayer, Active: true},
		{PlayerID: "sub", Role: models.RoleSubstitute, Active: true},
		{PlayerID: "inactive", Role: models.RolePlayer, Active: false},
		{PlayerID: "captain", Role: models.RoleCaptain, Active: true},
	}
	ids := ActiveNonSubIDs(members)
	if len(ids) != 2 || ids[0] != "p1" || ids[1] != "captain" {
		t.Fatalf("ActiveNonSubIDs = %v, want [p1 captain]", ids)
	}
}

func TestEligibleExcludesAssigned(t *testing.T) {
	roster := []string{"p1", "p2", "p3"}
	assigned := map[string]bool{"p2": true}
	got := Eligible(roster, assigned)
	if len(got) != 2 || got[0] != "p1" || got[1] != "p3" {
		t.Fatalf("Eligible = %v, want [p1 p3]", got)
	}
}

func TestAttackerCount(t *testing.T) {
	if AttackerCount(5) != 2 {
		t.Error("AttackerCount should cap at 2 when plenty are eligible")
	}
	if AttackerCount(1) != 1 {
		t.Error("AttackerCount should fall back to the eligible pool size when below 2")
	}
	if AttackerCount(0) != 0 {
		t.Error("AttackerCount should be 0 when nobody is eligible")
	}
}

func TestSubmitDefenderWriteOnce(t *testing.T) {
	s := &models.PairingState{CurrentStep: models.StepAwaitDefenders}
	done, err := SubmitDefender(s, SideA, "p1")
	if err != nil || done {
		t.Fatalf("first defender submission: done=%v err=%v", done, err)
	}
	if _, err := SubmitDefender(s, SideA, "p2"); !corerr.Is(err, corerr.AlreadySubmitted) {
		t.Fatalf("resubmitting defender must fail, got %v", err)
	}
	done, err = SubmitDefender(s, SideB, "q1")
	if err != nil || !done {
		t.Fatalf("second defender submission should complete the gate: done=%v err=%v", done, err)
	}
}

func TestSubmitAttackersValidatesCountAndEligibility(t *testing.T) {
	s := &models.PairingState{CurrentStep: models.StepAwaitAttackers}
	eligible := []string{"a1", "a2", "a3"}

	if _, err := SubmitAttackers(s, SideA, []string{"a1"}, eligible, 2); !corerr.Is(err, corerr.NoEligiblePlayers) {
		t.Fatalf("wrong attacker count must fail with NoEligiblePlayers, got %v", err)
	}
	if _, err := SubmitAttackers(s, SideA, []string{"a1", "zzz"}, eligible, 2); !corerr.Is(err, corerr.NoEligiblePlayers) {
		t.Fatalf("ineligible attacker must fail with NoEligiblePlayers, got %v", err)
	}

	done, err := SubmitAttackers(s, SideA, []string{"a1", "a2"}, eligible, 2)
	if err != nil || done {
		t.Fatalf("valid side-A submission: done=%v err=%v", done, err)
	}
	done, err = SubmitAttackers(s, SideB, []string{"a2", "a3"}, eligible, 2)
	if err != nil || !done {
		t.Fatalf("valid side-B submission should complete the gate: done=%v err=%v", done, err)
	}
}

func TestSubmitChoiceMustBeDrawnFromOpposingAttackers(t *testing.T) {
	s := &models.PairingState{
		CurrentStep: models.StepAwaitChoice,
		AttackersA:  models.StringList{"a1", "a2"},
		AttackersB:  models.StringList{"b1", "b2"},
	}
	if _, err := SubmitChoice(s, SideA, "a1"); !corerr.Is(err, corerr.NoEligiblePlayers) {
		t.Fatalf("side A choosing from its own attackers must fail, got %v", err)
	}
	done, err := SubmitChoice(s, SideA, "b1")
	if err != nil || done {
		t.Fatalf("side A choosing a valid opposing attacker: done=%v err=%v", done, err)
	}
	done, err = SubmitChoice(s, SideB, "a2")
	if err != nil || !done {
		t.Fatalf("side B choice should complete the gate: done=%v err=%v", done, err)
	}
}

func TestDeriveSlotsComputesRefusedPlayer(t *testing.T) {
	defA, defB, choiceA, choiceB := "defA", "defB", "atkB1", "atkA1"
	s := &models.PairingState{
		DefenderA:  &defA,
		DefenderB:  &defB,
		ChoiceA:    &choiceA,
		ChoiceB:    &choiceB,
		AttackersA: models.StringList{"atkA1", "atkA2"},
		AttackersB: models.StringList{"atkB1", "atkB2"},
	}
	slotANum, slotBNum, slotA, slotB := DeriveSlots(1, s)
	if slotANum != 1 || slotBNum != 2 {
		t.Fatalf("phase 1 should produce slots 1,2, got %d,%d", slotANum, slotBNum)
	}
	if slotA.RefusedPlayer == nil || *slotA.RefusedPlayer != "atkB2" {
		t.Errorf("slot A's refused attacker should be atkB2, got %+v", slotA.RefusedPlayer)
	}
	if slotB.RefusedPlayer == nil || *slotB.RefusedPlayer != "atkA2" {
		t.Errorf("slot B's refused attacker should be atkA2, got %+v", slotB.RefusedPlayer)
	}
}

func TestLayoutMissionPickersTeams8Slot8HasNoLayoutPick(t *testing.T) {
	layoutPicker, missionPicker, noLayout := LayoutMissionPickers(models.FormatTeams8, 8, SideA)
	if !noLayout {
		t.Fatal("teams_8 slot 8 must report noLayoutPick=true")
	}
	if layoutPicker != "" {
		t.Errorf("teams_8 slot 8 must have no layout picker, got %v", layoutPicker)
	}
	if missionPicker != SideB {
		t.Errorf("teams_8 slot 8 mission picker should be the roll-off loser, got %v", missionPicker)
	}
}

func TestLayoutMissionPickersTeams3AlternatesByslot(t *testing.T) {
	lp1, mp1, _ := LayoutMissionPickers(models.FormatTeams3, 1, SideA)
	if lp1 != SideA || mp1 != SideB {
		t.Errorf("teams_3 slot 1: roll winner picks layout, got layoutPicker=%v missionPicker=%v", lp1, mp1)
	}
	lp2, mp2, _ := LayoutMissionPickers(models.FormatTeams3, 2, SideA)
	if lp2 != SideB || mp2 != SideA {
		t.Errorf("teams_3 slot 2: roll loser picks layout, got layoutPicker=%v missionPicker=%v", lp2, mp2)
	}
}

func TestSelectLayoutFallsBackToFirstWhenAllUsed(t *testing.T) {
	if got := SelectLayout([]int{1, 2, 3}, []int{1, 3}); got != 2 {
		t.Errorf("SelectLayout should pick the unused layout 2, got %d", got)
	}
	if got := SelectLayout([]int{1, 2}, []int{1, 2}); got != 1 {
		t.Errorf("SelectLayout should fall back to the first entry when all are used, got %d", got)
	}
}

func TestSelectMissionPrefersLayoutValidEventMission(t *testing.T) {
	eventMissions := []Mission{
		{Code: "crucible", ValidLayouts: []int{1}},
		{Code: "scorched", ValidLayouts: []int{2}},
	}
	if got := SelectMission(eventMissions, nil, 2); got != "scorched" {
		t.Errorf("SelectMission should pick the mission valid for layout 2, got %s", got)
	}
}

func TestAutoPairRemainingRequiresExactlyOneEachSide(t *testing.T) {
	if _, _, err := AutoPairRemaining([]string{"a1", "a2"}, []string{"b1"}); !corerr.Is(err, corerr.NoEligiblePlayers) {
		t.Fatalf("more than one eligible on a side must fail, got %v", err)
	}
	defender, attacker, err := AutoPairRemaining([]string{"a1"}, []string{"b1"})
	if err != nil || defender != "a1" || attacker != "b1" {
		t.Fatalf("AutoPairRemaining = %s,%s,%v, want a1,b1,nil", defender, attacker, err)
	}
}

func TestResetForNextPhaseClearsWriteOnceFields(t *testing.T) {
	roll := 3
	def := "p1"
	s := &models.PairingState{
		CurrentPhase: 1,
		CurrentStep:  models.StepComplete,
		RollA:        &roll,
		RollB:        &roll,
		DefenderA:    &def,
		ChoiceA:      &def,
		AttackersA:   models.StringList{"p1"},
	}
	ResetForNextPhase(s, 2)
	if s.CurrentPhase != 2 || s.CurrentStep != models.StepAwaitDefenders {
		t.Fatalf("expected phase=2 step=await_defenders, got phase=%d step=%v", s.CurrentPhase, s.CurrentStep)
	}
	if s.RollA != nil || s.DefenderA != nil || s.ChoiceA != nil || s.AttackersA != nil {
		t.Fatal("ResetForNextPhase must clear every write-once field")
	}
}
