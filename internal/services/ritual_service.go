// internal/services/ritual_service.go
// Ritual coordinator: one logical coordinator per TeamRound, driving the
// internal/ritual pure state-transition functions against PairingState,
// persisting every advance, and notifying the principal whose turn is next.
//
// A submission never blocks on the gate — a captain's HTTP call returns as
// soon as their half of the gate is durably recorded. A background watchdog
// goroutine per open gate raises RitualTimeout if the other side never
// shows up within the gate window. Grounded on the core spec's "coroutine
// heavy ritual... channels/selects, callback continuations, or poll-loops"
// latitude: this implementation uses one watchdog goroutine per gate rather
// than a long-lived per-TeamRound goroutine, since every submission already
// arrives as a synchronous repository call from the API layer.

package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"tournament-planner/internal/clock"
	"tournament-planner/internal/corerr"
	"tournament-planner/internal/models"
	"tournament-planner/internal/notifier"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/ritual"
	"tournament-planner/internal/utils"
)

// ritualGateWindow is the 10-minute window a simultaneous-commit gate has
// to receive both sides' inputs before RitualTimeout fires.
const ritualGateWindow = 10 * time.Minute

// Locker is the distributed write-once guard the coordinator takes before
// ever calling into the PairingState repository, backed by Redis SetNX.
type Locker interface {
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
	Delete(key string) error
}

// RitualService coordinates every in-flight team-pairing ritual.
type RitualService struct {
	repos    *repositories.Container
	notifier notifier.Notifier
	clock    clock.Clock
	locker   Locker
	logger   *log.Logger

	mu       sync.Mutex
	watchdog map[string]chan struct{} // team_round_id -> cancel channel
}

// NewRitualService creates a ritual coordinator.
func NewRitualService(repos *repositories.Container, notif notifier.Notifier, clk clock.Clock, locker Locker, logger *log.Logger) *RitualService {
	return &RitualService{
		repos:    repos,
		notifier: notif,
		clock:    clk,
		locker:   locker,
		logger:   logger,
		watchdog: make(map[string]chan struct{}),
	}
}

// StartRitual creates the initial PairingState for a freshly-paired
// TeamRound and arms the roll-off gate's watchdog.
func (s *RitualService) StartRitual(ctx context.Context, teamRoundID string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	state := &models.PairingState{
		TeamRoundID:  teamRoundID,
		CurrentPhase: 1,
		CurrentStep:  models.StepAwaitRolloff,
		UpdatedAt:    s.clock.Now(),
	}
	if err := s.repos.PairingState.Create(ctx, tx, state); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.armWatchdog(teamRoundID)
	return nil
}

// Resume rebuilds the in-memory watchdog set from every incomplete
// PairingState on process start — the ritual's persistent state is always
// the Store, never this map.
func (s *RitualService) Resume(ctx context.Context) error {
	states, err := s.repos.PairingState.ListIncomplete(ctx)
	if err != nil {
		return err
	}
	for _, st := range states {
		s.armWatchdog(st.TeamRoundID)
	}
	s.logger.Printf("ritual: resumed %d in-flight gates", len(states))
	return nil
}

func (s *RitualService) armWatchdog(teamRoundID string) {
	s.mu.Lock()
	if old, ok := s.watchdog[teamRoundID]; ok {
		close(old)
	}
	cancel := make(chan struct{})
	s.watchdog[teamRoundID] = cancel
	s.mu.Unlock()

	timer := s.clock.After(ritualGateWindow)
	go func() {
		select {
		case <-timer.C():
			s.onGateTimeout(teamRoundID)
		case <-cancel:
			timer.Stop()
		}
	}()
}

func (s *RitualService) disarmWatchdog(teamRoundID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.watchdog[teamRoundID]; ok {
		close(cancel)
		delete(s.watchdog, teamRoundID)
	}
}

func (s *RitualService) onGateTimeout(teamRoundID string) {
	ctx := context.Background()
	st, err := s.repos.PairingState.GetByTeamRound(ctx, nil, teamRoundID)
	if err != nil || st == nil || st.CurrentStep == models.StepComplete {
		return
	}
	s.logger.Printf("ritual: gate timeout for team_round %s at step %s", teamRoundID, st.CurrentStep)
	s.notifier.NotifyJudgeAlert(ctx, teamRoundID, fmt.Sprintf(
		"ritual stalled at %s: %s", st.CurrentStep, corerr.New(corerr.RitualTimeout, "gate window elapsed").Error(),
	))
}

// lockKey names the distributed write-once lock for one (team_round, field)
// write, backing the CAS performed by the PairingState repository. The
// defender/attackers/choice locks are released when the ritual rolls over to
// its next phase, so each of those fields is write-once per phase.
func lockKey(teamRoundID, field string) string {
	return "ritual_lock:" + teamRoundID + ":" + field
}

func (s *RitualService) acquire(teamRoundID, field string) (bool, error) {
	return s.locker.SetNX(lockKey(teamRoundID, field), 1, ritualGateWindow)
}

// SubmitRoll records one side's roll-off value. On a tie, both values are
// cleared and the gate reopens for a reroll. On a decisive roll, the
// TeamRound's layout_picker is set and the ritual advances to
// await_defenders.
func (s *RitualService) SubmitRoll(ctx context.Context, teamRoundID string, side ritual.Side, value int) error {
	ok, err := s.acquire(teamRoundID, fmt.Sprintf("roll_%s", side))
	if err != nil {
		return err
	}
	if !ok {
		return corerr.New(corerr.AlreadySubmitted, "roll already submitted")
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	st, err := s.repos.PairingState.GetByTeamRound(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if st == nil {
		return corerr.New(corerr.NotFound, "pairing state not found")
	}

	bothIn, err := ritual.SubmitRoll(st, side, value)
	if err != nil {
		return err
	}
	if err := s.repos.PairingState.Update(ctx, tx, st); err != nil {
		return err
	}

	if bothIn {
		winner, tie := ritual.ResolveRollOff(st)
		if tie {
			st.RollA = nil
			st.RollB = nil
			if err := s.repos.PairingState.Update(ctx, tx, st); err != nil {
				return err
			}
			if err := tx.Commit(); err != nil {
				return err
			}
			s.locker.Delete(lockKey(teamRoundID, "roll_team_a"))
			s.locker.Delete(lockKey(teamRoundID, "roll_team_b"))
			return nil
		}

		picker := models.PickerTeamA
		if winner == ritual.SideB {
			picker = models.PickerTeamB
		}
		if err := s.repos.TeamRound.SetLayoutPicker(ctx, tx, teamRoundID, picker); err != nil {
			return err
		}
		if _, err := s.repos.PairingState.CASStep(ctx, tx, teamRoundID, models.StepAwaitRolloff, models.StepAwaitDefenders); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	if bothIn {
		s.armWatchdog(teamRoundID)
		s.promptDefenders(ctx, teamRoundID)
	}
	return nil
}

func (s *RitualService) promptDefenders(ctx context.Context, teamRoundID string) {
	s.notifier.NotifyRitualPrompt(ctx, teamRoundID, teamRoundID, notifier.Principal{Kind: notifier.KindCaptain, ID: teamRoundID}, "nominate your defender")
}

// SubmitDefender records one side's defender nomination and, once both
// sides have committed, advances to await_attackers.
func (s *RitualService) SubmitDefender(ctx context.Context, teamRoundID string, side ritual.Side, playerID string) error {
	ok, err := s.acquire(teamRoundID, fmt.Sprintf("defender_%s", side))
	if err != nil {
		return err
	}
	if !ok {
		return corerr.New(corerr.AlreadySubmitted, "defender already submitted")
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	st, err := s.repos.PairingState.GetByTeamRound(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if st == nil {
		return corerr.New(corerr.NotFound, "pairing state not found")
	}

	bothIn, err := ritual.SubmitDefender(st, side, playerID)
	if err != nil {
		return err
	}
	if err := s.repos.PairingState.Update(ctx, tx, st); err != nil {
		return err
	}
	if bothIn {
		if _, err := s.repos.PairingState.CASStep(ctx, tx, teamRoundID, models.StepAwaitDefenders, models.StepAwaitAttackers); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if bothIn {
		s.armWatchdog(teamRoundID)
		s.notifier.NotifyRitualPrompt(ctx, teamRoundID, teamRoundID, notifier.Principal{Kind: notifier.KindCaptain, ID: teamRoundID}, "nominate your attackers")
	}
	return nil
}

// SubmitAttackers records one side's attacker nominations against the
// eligible pool (roster minus already-assigned players), then advances to
// await_choice once both sides have committed.
func (s *RitualService) SubmitAttackers(ctx context.Context, teamRoundID string, side ritual.Side, ids, eligible []string, wantCount int) error {
	ok, err := s.acquire(teamRoundID, fmt.Sprintf("attackers_%s", side))
	if err != nil {
		return err
	}
	if !ok {
		return corerr.New(corerr.AlreadySubmitted, "attackers already submitted")
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	st, err := s.repos.PairingState.GetByTeamRound(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if st == nil {
		return corerr.New(corerr.NotFound, "pairing state not found")
	}

	bothIn, err := ritual.SubmitAttackers(st, side, ids, eligible, wantCount)
	if err != nil {
		return err
	}
	if err := s.repos.PairingState.Update(ctx, tx, st); err != nil {
		return err
	}
	if bothIn {
		if _, err := s.repos.PairingState.CASStep(ctx, tx, teamRoundID, models.StepAwaitAttackers, models.StepAwaitChoice); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if bothIn {
		s.armWatchdog(teamRoundID)
		s.notifier.NotifyRitualPrompt(ctx, teamRoundID, teamRoundID, notifier.Principal{Kind: notifier.KindCaptain, ID: teamRoundID}, "choose your opponent's attacker")
	}
	return nil
}

// SubmitChoice records one side's choice of opposing attacker. Once both
// sides have committed, the two board pairings are derived, persisted, and
// the gate moves on to layout/mission selection for the newly-revealed
// slots.
func (s *RitualService) SubmitChoice(ctx context.Context, teamRoundID string, side ritual.Side, chosen string, teamAID, teamBID string, format models.Format, rollWinner ritual.Side) error {
	ok, err := s.acquire(teamRoundID, fmt.Sprintf("choice_%s", side))
	if err != nil {
		return err
	}
	if !ok {
		return corerr.New(corerr.AlreadySubmitted, "choice already submitted")
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	st, err := s.repos.PairingState.GetByTeamRound(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if st == nil {
		return corerr.New(corerr.NotFound, "pairing state not found")
	}

	bothIn, err := ritual.SubmitChoice(st, side, chosen)
	if err != nil {
		return err
	}
	if err := s.repos.PairingState.Update(ctx, tx, st); err != nil {
		return err
	}
	if !bothIn {
		if err := tx.Commit(); err != nil {
			return err
		}
		return nil
	}

	tr, err := s.repos.TeamRound.GetByID(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if tr == nil {
		return corerr.New(corerr.NotFound, "team round not found")
	}

	slotANum, slotBNum, slotA, slotB := ritual.DeriveSlots(st.CurrentPhase, st)
	slotA.ID = utils.NewID("tp")
	slotA.TeamRoundID = teamRoundID
	slotA.DefenderTeam = teamAID
	slotA.AttackerTeam = teamBID
	slotB.ID = utils.NewID("tp")
	slotB.TeamRoundID = teamRoundID
	slotB.DefenderTeam = teamBID
	slotB.AttackerTeam = teamAID

	layoutPickerA, missionPickerA, noLayoutA := ritual.LayoutMissionPickers(format, slotANum, rollWinner)
	layoutPickerB, missionPickerB, _ := ritual.LayoutMissionPickers(format, slotBNum, rollWinner)
	slotA.LayoutPickerTeam = string(layoutPickerA)
	slotA.MissionPickerTeam = string(missionPickerA)
	slotB.LayoutPickerTeam = string(layoutPickerB)
	slotB.MissionPickerTeam = string(missionPickerB)

	// Boards are created here, at choice-reveal, not at StartRound — for
	// teams_3/5/8 the Ritual Engine is the only place that knows each
	// slot's defender/attacker pairing until the captains have gone
	// through roll-off/defenders/attackers/choice.
	if err := s.createGameForPairing(ctx, tx, tr.RoundID, tr.EventID, &slotA); err != nil {
		return err
	}
	if err := s.createGameForPairing(ctx, tx, tr.RoundID, tr.EventID, &slotB); err != nil {
		return err
	}

	if err := s.repos.TeamRound.CreatePairing(ctx, tx, &slotA); err != nil {
		return err
	}
	if err := s.repos.TeamRound.CreatePairing(ctx, tx, &slotB); err != nil {
		return err
	}

	nextStep := models.StepAwaitLayoutA
	if noLayoutA {
		nextStep = models.StepAwaitMissionA
	}
	if err := s.repos.PairingState.AdvancePhase(ctx, tx, teamRoundID, st.CurrentPhase, nextStep); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.armWatchdog(teamRoundID)
	s.notifier.NotifyRitualPrompt(ctx, teamRoundID, teamRoundID, notifier.Principal{Kind: notifier.KindCaptain, ID: teamRoundID}, "pick layout and mission for the revealed slots")
	return nil
}

// SubmitLayoutMission records a layout/mission pick for one board slot.
// Once every slot revealed this phase has both fields set, the ritual either
// rolls over to the next phase's defender gate, spawns the format's closing
// board(s) (teams_3 slot 3, teams_5's scrum slot 5, teams_8's slot 7 and 8),
// or — once the closing board's own picks are in — completes.
func (s *RitualService) SubmitLayoutMission(ctx context.Context, teamRoundID string, pairing *models.TeamPairing, layoutNumber *int, missionCode *string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if layoutNumber != nil {
		pairing.LayoutNumber = layoutNumber
	}
	if missionCode != nil {
		pairing.MissionCode = missionCode
	}
	if err := s.repos.TeamRound.UpdatePairing(ctx, tx, pairing); err != nil {
		return err
	}

	st, err := s.repos.PairingState.GetByTeamRound(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if st == nil || st.CurrentStep == models.StepComplete {
		return tx.Commit()
	}

	tr, err := s.repos.TeamRound.GetByID(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if tr == nil {
		return corerr.New(corerr.NotFound, "team round not found")
	}
	format, err := s.formatFor(ctx, tr.EventID)
	if err != nil {
		return err
	}

	pairings, err := s.repos.TeamRound.PairingsByTeamRound(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}

	if !slotsDone(pairings, revealSlots(st.CurrentPhase)) {
		return tx.Commit()
	}

	if st.CurrentPhase < format.PhaseCount() {
		ritual.ResetForNextPhase(st, st.CurrentPhase+1)
		if err := s.repos.PairingState.AdvancePhase(ctx, tx, teamRoundID, st.CurrentPhase, st.CurrentStep); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		for _, field := range []string{"defender", "attackers", "choice"} {
			s.locker.Delete(lockKey(teamRoundID, field+"_"+string(ritual.SideA)))
			s.locker.Delete(lockKey(teamRoundID, field+"_"+string(ritual.SideB)))
		}
		s.armWatchdog(teamRoundID)
		s.promptDefenders(ctx, teamRoundID)
		return nil
	}

	closerSlots := closerSlotsFor(format)
	if len(closerSlots) == 0 {
		if err := tx.Commit(); err != nil {
			return err
		}
		return s.CompleteRitual(ctx, teamRoundID)
	}

	spawned := 0
	for _, slotNum := range closerSlots {
		for _, p := range pairings {
			if p.Slot == slotNum {
				spawned++
			}
		}
	}

	if spawned < len(closerSlots) {
		if err := s.createClosers(ctx, tx, tr, format, rollWinnerFor(tr), pairings); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		s.armWatchdog(teamRoundID)
		s.notifier.NotifyRitualPrompt(ctx, teamRoundID, teamRoundID, notifier.Principal{Kind: notifier.KindCaptain, ID: teamRoundID}, "pick layout and mission for the closing board")
		return nil
	}

	if !slotsDone(pairings, closerSlots) {
		return tx.Commit()
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return s.CompleteRitual(ctx, teamRoundID)
}

// formatFor looks up the event governing a team-round's ritual, for
// phase-count and closer-slot rules that are format-specific.
func (s *RitualService) formatFor(ctx context.Context, eventID string) (models.Format, error) {
	event, err := s.repos.Event.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	if event == nil {
		return "", corerr.New(corerr.NotFound, "event not found")
	}
	return event.Format, nil
}

// revealSlots returns the two board-slot numbers a phase's choice-reveal
// produces, matching ritual.DeriveSlots' numbering.
func revealSlots(phase int) []int {
	return []int{2*(phase-1) + 1, 2*(phase-1) + 2}
}

// closerSlotsFor returns the slot numbers of a format's closing board(s),
// auto-paired from each side's one or two remaining eligible players once
// every roster phase has revealed its boards.
func closerSlotsFor(format models.Format) []int {
	switch format {
	case models.FormatTeams3:
		return []int{3}
	case models.FormatTeams5:
		return []int{5}
	case models.FormatTeams8:
		return []int{7, 8}
	}
	return nil
}

// pairingDone reports whether a board slot has every pick it needs: a
// mission code always, a layout number unless the slot has no layout pick
// (an empty LayoutPickerTeam).
func pairingDone(p *models.TeamPairing) bool {
	if p.MissionCode == nil {
		return false
	}
	return p.LayoutPickerTeam == "" || p.LayoutNumber != nil
}

// slotsDone reports whether every named slot exists among pairings and is
// pairingDone.
func slotsDone(pairings []*models.TeamPairing, slots []int) bool {
	for _, slotNum := range slots {
		found := false
		for _, p := range pairings {
			if p.Slot == slotNum {
				found = true
				if !pairingDone(p) {
					return false
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// rollWinnerFor reconstructs the roll-off winner as a ritual.Side from the
// durable layout_picker recorded on the team-round at SubmitRoll time — the
// same roll-off winner governs every phase's closer layout/mission split.
func rollWinnerFor(tr *models.TeamRound) ritual.Side {
	if tr.LayoutPicker != nil && *tr.LayoutPicker == models.PickerTeamB {
		return ritual.SideB
	}
	return ritual.SideA
}

// assignedForTeam collects the players a team has already committed as
// defender or attacker across a team-round's existing boards. A nominated-
// but-refused attacker is never marked assigned, so it remains eligible for
// the closing board.
func assignedForTeam(pairings []*models.TeamPairing, teamID string) map[string]bool {
	assigned := make(map[string]bool)
	for _, p := range pairings {
		if p.DefenderTeam == teamID {
			assigned[p.DefenderPlayer] = true
		}
		if p.AttackerTeam == teamID {
			assigned[p.AttackerPlayer] = true
		}
	}
	return assigned
}

// createClosers auto-pairs and persists a format's closing board(s) from
// each side's last remaining eligible players, once every roster phase has
// revealed its boards.
func (s *RitualService) createClosers(ctx context.Context, tx *sql.Tx, tr *models.TeamRound, format models.Format, rollWinner ritual.Side, pairings []*models.TeamPairing) error {
	teamBID := ""
	if tr.TeamBID != nil {
		teamBID = *tr.TeamBID
	}

	membersA, err := s.repos.Team.MembersByTeam(ctx, tr.TeamAID)
	if err != nil {
		return err
	}
	membersB, err := s.repos.Team.MembersByTeam(ctx, teamBID)
	if err != nil {
		return err
	}

	eligibleA := ritual.Eligible(ritual.ActiveNonSubIDs(membersA), assignedForTeam(pairings, tr.TeamAID))
	eligibleB := ritual.Eligible(ritual.ActiveNonSubIDs(membersB), assignedForTeam(pairings, teamBID))

	for _, slotNum := range closerSlotsFor(format) {
		if len(eligibleA) == 0 || len(eligibleB) == 0 {
			return corerr.New(corerr.NoEligiblePlayers, "not enough eligible players for closing board")
		}
		defender, attacker, err := ritual.AutoPairRemaining(eligibleA[:1], eligibleB[:1])
		if err != nil {
			return err
		}
		eligibleA = eligibleA[1:]
		eligibleB = eligibleB[1:]

		p := &models.TeamPairing{
			ID:             utils.NewID("tp"),
			TeamRoundID:    tr.ID,
			Slot:           slotNum,
			DefenderPlayer: defender,
			DefenderTeam:   tr.TeamAID,
			AttackerPlayer: attacker,
			AttackerTeam:   teamBID,
		}
		layoutPicker, missionPicker, noLayoutPick := ritual.LayoutMissionPickers(format, slotNum, rollWinner)
		p.LayoutPickerTeam = string(layoutPicker)
		p.MissionPickerTeam = string(missionPicker)
		if noLayoutPick {
			event, err := s.repos.Event.GetByID(ctx, tr.EventID)
			if err != nil {
				return err
			}
			if event != nil && len(event.EventLayouts) > 0 {
				if l, err := strconv.Atoi(event.EventLayouts[len(event.EventLayouts)-1]); err == nil {
					p.LayoutNumber = &l
				}
			}
		}

		if err := s.createGameForPairing(ctx, tx, tr.RoundID, tr.EventID, p); err != nil {
			return err
		}
		if err := s.repos.TeamRound.CreatePairing(ctx, tx, p); err != nil {
			return err
		}
	}
	return nil
}

// createGameForPairing spawns the Game a board slot plays out, the same
// pattern round_service's spawn2v2 uses for 2v2's auto-assigned boards.
func (s *RitualService) createGameForPairing(ctx context.Context, tx *sql.Tx, roundID, eventID string, p *models.TeamPairing) error {
	g := &models.Game{
		ID:      utils.NewID("gm"),
		RoundID: roundID,
		EventID: eventID,
		P1:      p.DefenderPlayer,
		State:   models.GamePending,
	}
	opponent := p.AttackerPlayer
	g.P2 = &opponent
	if err := s.repos.Game.Create(ctx, tx, g); err != nil {
		return err
	}
	p.GameID = &g.ID
	return nil
}

// CompleteRitual advances the cursor to complete from whatever step it is
// at, and disarms the gate watchdog. It does not check the boards' layout
// and mission picks: SubmitLayoutMission calls it once the closing board's
// picks are in, and the TO-only complete route calls it directly.
func (s *RitualService) CompleteRitual(ctx context.Context, teamRoundID string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	st, err := s.repos.PairingState.GetByTeamRound(ctx, tx, teamRoundID)
	if err != nil {
		return err
	}
	if st == nil {
		return corerr.New(corerr.NotFound, "pairing state not found")
	}
	if _, err := s.repos.PairingState.CASStep(ctx, tx, teamRoundID, st.CurrentStep, models.StepComplete); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.disarmWatchdog(teamRoundID)
	return nil
}
