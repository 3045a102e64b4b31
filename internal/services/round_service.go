// internal/services/round_service.go
// Round Controller: allocates a round, runs the Pairing Engine over active
// Standings, records Games (and TeamRounds for team formats), and closes a
// round once every non-bye game is complete, averaging bye VP across the
// round's completed games.

package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"tournament-planner/internal/clock"
	"tournament-planner/internal/corerr"
	"tournament-planner/internal/models"
	"tournament-planner/internal/notifier"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/utils"
)

// RoundService drives round allocation, pairing, and close-out.
type RoundService struct {
	repos     *repositories.Container
	standings *StandingsService
	ritual    *RitualService
	notifier  notifier.Notifier
	clock     clock.Clock
	logger    *log.Logger
}

// NewRoundService creates a round controller.
func NewRoundService(repos *repositories.Container, standings *StandingsService, ritual *RitualService, notif notifier.Notifier, clk clock.Clock, logger *log.Logger) *RoundService {
	return &RoundService{repos: repos, standings: standings, ritual: ritual, notifier: notif, clock: clk, logger: logger}
}

// StartRound allocates the next round, pairs the active pool, and records
// its games (or team-rounds). duration sets the round's advisory deadline.
func (s *RoundService) StartRound(ctx context.Context, event *models.Event, duration time.Duration) (*models.Round, error) {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	count, err := s.repos.Round.CountByEvent(ctx, tx, event.ID)
	if err != nil {
		return nil, err
	}
	roundNumber := count + 1
	if roundNumber > event.RoundCount {
		return nil, corerr.New(corerr.InvalidState, "event has reached its round_count")
	}

	now := s.clock.Now()
	deadline := now.Add(duration)
	round := &models.Round{
		ID:          utils.NewID("rnd"),
		EventID:     event.ID,
		RoundNumber: roundNumber,
		DayNumber:   (roundNumber-1)/event.RoundsPerDay + 1,
		State:       models.RoundInProgress,
		StartedAt:   &now,
		DeadlineAt:  &deadline,
	}
	if err := s.repos.Round.Create(ctx, tx, round); err != nil {
		return nil, err
	}

	history, err := s.buildHistory(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	if event.Format.IsTeam() {
		if err := s.pairTeams(ctx, tx, event, round, history); err != nil {
			return nil, err
		}
	} else {
		if err := s.pairSingles(ctx, tx, event, round, history); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.notifier.NotifyStandingsCard(ctx, event.ID)
	return round, nil
}

// buildHistory replays every non-bye game across the event into a
// PairHistory, the rematch-avoidance input for this round's pairing.
func (s *RoundService) buildHistory(ctx context.Context, eventID string) (PairHistory, error) {
	games, err := s.repos.Game.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	history := make(PairHistory)
	for _, g := range games {
		if g.IsBye || g.P2 == nil {
			continue
		}
		history.Record(g.P1, *g.P2)
	}
	return history, nil
}

func (s *RoundService) pairSingles(ctx context.Context, tx *sql.Tx, event *models.Event, round *models.Round, history PairHistory) error {
	standings, err := s.repos.Standing.ListByEvent(ctx, event.ID)
	if err != nil {
		return err
	}

	var ranked []RankedPlayer
	for _, st := range standings {
		if !st.Active {
			continue
		}
		ranked = append(ranked, RankedPlayer{PlayerID: st.PlayerID, Wins: st.Wins, VPDiff: st.VPDiff, HadBye: st.HadBye})
	}
	ranked = RankSingles(ranked)

	pairings, bye := PairSingles(ranked, history)

	rooms := make([]int, len(pairings))
	for i := range rooms {
		rooms[i] = i + 1
	}
	pairings = AssignRooms(pairings, rooms)

	for _, p := range pairings {
		opponent := p.B
		g := &models.Game{
			ID:         utils.NewID("gm"),
			RoundID:    round.ID,
			EventID:    event.ID,
			P1:         p.A,
			P2:         &opponent,
			RoomNumber: p.Room,
			State:      models.GamePending,
		}
		if err := s.repos.Game.Create(ctx, tx, g); err != nil {
			return err
		}
		s.notifier.NotifyPairingCard(ctx, event.ID, p.A, p.B, roomOrZero(p.Room))
		s.notifier.NotifyPairingCard(ctx, event.ID, p.B, p.A, roomOrZero(p.Room))
	}

	if bye != nil {
		g := &models.Game{
			ID:      utils.NewID("gm"),
			RoundID: round.ID,
			EventID: event.ID,
			P1:      bye.PlayerID,
			IsBye:   true,
			State:   models.GameBye,
		}
		if err := s.repos.Game.Create(ctx, tx, g); err != nil {
			return err
		}
	}
	return nil
}

func roomOrZero(room *int) int {
	if room == nil {
		return 0
	}
	return *room
}

// pairTeams runs the team Pairing Engine, creating one TeamRound per
// matchup. For 2v2 it auto-assigns board slots and spawns Games directly;
// for teams_3/5/8 it creates a PairingState and starts the Ritual Engine
// coordinator.
func (s *RoundService) pairTeams(ctx context.Context, tx *sql.Tx, event *models.Event, round *models.Round, history PairHistory) error {
	teams, err := s.repos.Team.ListByEvent(ctx, event.ID)
	if err != nil {
		return err
	}

	var ranked []RankedTeam
	teamByID := make(map[string]*models.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
		st, err := s.repos.Standing.GetOrInit(ctx, tx, event.ID, models.TeamStandingID(t.ID))
		if err != nil {
			return err
		}
		ranked = append(ranked, RankedTeam{TeamID: t.ID, TeamPoints: st.TeamPoints, GamePoints: st.GamePoints, VPDiff: st.VPDiff, HadBye: st.HadBye})
	}
	ranked = RankTeams(ranked)

	pairings, bye := PairTeams(ranked, history)

	for _, p := range pairings {
		teamB := p.B
		tr := &models.TeamRound{
			ID:      utils.NewID("trd"),
			RoundID: round.ID,
			EventID: event.ID,
			TeamAID: p.A,
			TeamBID: &teamB,
			State:   models.TeamRoundPairing,
		}
		if err := s.repos.TeamRound.Create(ctx, tx, tr); err != nil {
			return err
		}

		if event.Format == models.Format2v2 {
			if err := s.spawn2v2(ctx, tx, event, round, tr); err != nil {
				return err
			}
			continue
		}

		state := &models.PairingState{
			TeamRoundID:  tr.ID,
			CurrentPhase: 1,
			CurrentStep:  models.StepAwaitRolloff,
			UpdatedAt:    s.clock.Now(),
		}
		if err := s.repos.PairingState.Create(ctx, tx, state); err != nil {
			return err
		}
	}

	if bye != nil {
		tr := &models.TeamRound{
			ID:      utils.NewID("trd"),
			RoundID: round.ID,
			EventID: event.ID,
			TeamAID: bye.TeamID,
			State:   models.TeamRoundComplete,
		}
		if err := s.repos.TeamRound.Create(ctx, tx, tr); err != nil {
			return err
		}
		gp := ByeWalkoverGP(event.Format.TeamSize())
		if err := s.repos.TeamRound.SetScores(ctx, tx, tr.ID, gp, 0, sql.NullBool{Bool: true, Valid: true}); err != nil {
			return err
		}
		st, err := s.repos.Standing.GetOrInit(ctx, tx, event.ID, models.TeamStandingID(bye.TeamID))
		if err != nil {
			return err
		}
		st.HadBye = true
		// No sibling boards exist yet to average a VP differential from, so
		// the bye walkover carries the win and its game points but no VP
		// swing, unlike a singles bye's round-average VP.
		s.standings.ApplyTeam(st, TeamWin, gp, 0)
		if err := s.repos.Standing.Upsert(ctx, tx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *RoundService) spawn2v2(ctx context.Context, tx *sql.Tx, event *models.Event, round *models.Round, tr *models.TeamRound) error {
	membersA, err := s.repos.Team.MembersByTeam(ctx, tr.TeamAID)
	if err != nil {
		return err
	}
	membersB, err := s.repos.Team.MembersByTeam(ctx, *tr.TeamBID)
	if err != nil {
		return err
	}

	slots := Assign2v2Slots(activeNonSub(membersA), activeNonSub(membersB))
	for _, slot := range slots {
		slot.ID = utils.NewID("tp")
		slot.TeamRoundID = tr.ID
		g := &models.Game{
			ID:      utils.NewID("gm"),
			RoundID: round.ID,
			EventID: event.ID,
			P1:      slot.DefenderPlayer,
			State:   models.GamePending,
		}
		opponent := slot.AttackerPlayer
		g.P2 = &opponent
		if err := s.repos.Game.Create(ctx, tx, g); err != nil {
			return err
		}
		slot.GameID = &g.ID
		if err := s.repos.TeamRound.CreatePairing(ctx, tx, &slot); err != nil {
			return err
		}
	}
	_, err = s.repos.TeamRound.CASState(ctx, tx, tr.ID, models.TeamRoundPairing, models.TeamRoundPlaying)
	return err
}

func activeNonSub(members []models.TeamMember) []models.TeamMember {
	var out []models.TeamMember
	for _, m := range members {
		if m.Active && m.Role != models.RoleSubstitute {
			out = append(out, m)
		}
	}
	return out
}

// RepairRound re-pairs a round from active standings, permitted only while
// no game in the round is complete.
func (s *RoundService) RepairRound(ctx context.Context, event *models.Event, round *models.Round) error {
	games, err := s.repos.Game.ListByRound(ctx, round.ID)
	if err != nil {
		return err
	}
	for _, g := range games {
		if g.State == models.GameComplete {
			return corerr.New(corerr.RoundIncomplete, "round has a completed game; cannot repair")
		}
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.repos.Round.DeletePendingGames(ctx, tx, round.ID); err != nil {
		return err
	}

	history, err := s.buildHistory(ctx, event.ID)
	if err != nil {
		return err
	}
	if event.Format.IsTeam() {
		if err := s.pairTeams(ctx, tx, event, round, history); err != nil {
			return err
		}
	} else {
		if err := s.pairSingles(ctx, tx, event, round, history); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CompleteRound requires every non-bye game be complete, awards the
// round-average VP to each bye player as a win, and closes the round.
func (s *RoundService) CompleteRound(ctx context.Context, event *models.Event, round *models.Round) error {
	games, err := s.repos.Game.ListByRound(ctx, round.ID)
	if err != nil {
		return err
	}

	var completedVPs []int
	var byeGames []*models.Game
	for _, g := range games {
		if g.IsBye {
			byeGames = append(byeGames, g)
			continue
		}
		if g.State != models.GameComplete {
			return corerr.New(corerr.RoundIncomplete, "round has an incomplete non-bye game")
		}
		completedVPs = append(completedVPs, *g.P1VP, *g.P2VP)
	}

	byeVP := 0
	if len(completedVPs) > 0 {
		sum := 0
		for _, vp := range completedVPs {
			sum += vp
		}
		byeVP = int(math.Round(float64(sum) / float64(len(completedVPs))))
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, g := range byeGames {
		p1VP, p2VP := byeVP, 0
		g.P1VP = &p1VP
		g.P2VP = &p2VP
		winner := g.P1
		g.WinnerID = &winner
		g.State = models.GameComplete
		now := s.clock.Now()
		g.ConfirmedAt = &now
		if err := s.repos.Game.Update(ctx, tx, g); err != nil {
			return err
		}

		st, err := s.repos.Standing.GetOrInit(ctx, tx, event.ID, g.P1)
		if err != nil {
			return err
		}
		s.standings.Apply(st, ClassifyOutcome(byeVP, 0, true))
		if err := s.repos.Standing.Upsert(ctx, tx, st); err != nil {
			return err
		}
	}

	if _, err := s.repos.Round.CASState(ctx, tx, round.ID, models.RoundInProgress, models.RoundComplete); err != nil {
		return err
	}
	now := s.clock.Now()
	if err := s.repos.Round.SetCompletedAt(ctx, tx, round.ID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.NotifyStandingsCard(ctx, event.ID)
	return nil
}

// CompleteTeamRound aggregates a team-round's boards once one of them
// completes. It is a no-op when the completing game isn't part of any
// team-round, the team-round is already complete, or a sibling board is
// still pending — the aggregate only posts once every board has a result.
func (s *RoundService) CompleteTeamRound(ctx context.Context, tx *sql.Tx, gameID string) error {
	pairing, err := s.repos.TeamRound.GetPairingByGameID(ctx, tx, gameID)
	if err != nil {
		return err
	}
	if pairing == nil {
		return nil
	}

	tr, err := s.repos.TeamRound.GetByID(ctx, tx, pairing.TeamRoundID)
	if err != nil {
		return err
	}
	if tr == nil || tr.State == models.TeamRoundComplete {
		return nil
	}

	pairings, err := s.repos.TeamRound.PairingsByTeamRound(ctx, tx, tr.ID)
	if err != nil {
		return err
	}

	games := make(map[string]*models.Game, len(pairings))
	for _, p := range pairings {
		if p.GameID == nil {
			return nil
		}
		g, err := s.repos.Game.GetByID(ctx, tx, *p.GameID)
		if err != nil {
			return err
		}
		if g == nil || g.State != models.GameComplete {
			return nil
		}
		games[p.ID] = g
	}

	event, err := s.repos.Event.GetByID(ctx, tr.EventID)
	if err != nil {
		return err
	}
	if event == nil {
		return corerr.New(corerr.NotFound, "event not found")
	}

	gpA, gpB, vpA, vpB := aggregateTeamBoards(pairings, games, tr.TeamAID, event.ScoringMode)
	maxGP := event.Format.TeamSize() * 20
	resultA := ClassifyNTL(gpA, maxGP)
	resultB := ClassifyNTL(gpB, maxGP)

	teamAWin := sql.NullBool{Valid: true, Bool: resultA == TeamWin}
	if resultA == TeamDraw {
		teamAWin = sql.NullBool{Valid: false}
	}
	if err := s.repos.TeamRound.SetScores(ctx, tx, tr.ID, gpA, gpB, teamAWin); err != nil {
		return err
	}
	if _, err := s.repos.TeamRound.CASState(ctx, tx, tr.ID, tr.State, models.TeamRoundComplete); err != nil {
		return err
	}

	teamBID := ""
	if tr.TeamBID != nil {
		teamBID = *tr.TeamBID
	}

	stA, err := s.repos.Standing.GetOrInit(ctx, tx, tr.EventID, models.TeamStandingID(tr.TeamAID))
	if err != nil {
		return err
	}
	s.standings.ApplyTeam(stA, resultA, gpA, vpA)
	if err := s.repos.Standing.Upsert(ctx, tx, stA); err != nil {
		return err
	}

	stB, err := s.repos.Standing.GetOrInit(ctx, tx, tr.EventID, models.TeamStandingID(teamBID))
	if err != nil {
		return err
	}
	s.standings.ApplyTeam(stB, resultB, gpB, vpB)
	return s.repos.Standing.Upsert(ctx, tx, stB)
}

// gamePointsForBoard splits one board's game points between team A and team
// B, dispatching to the event's scoring mode.
func gamePointsForBoard(mode models.ScoringMode, aVP, bVP int) (gpA, gpB int) {
	if mode == models.ScoringWTC {
		if aVP >= bVP {
			gpA, gpB = WTCGamePoints(aVP, bVP)
		} else {
			gpB, gpA = WTCGamePoints(bVP, aVP)
		}
		return gpA, gpB
	}
	return NTLGamePoints(aVP, bVP)
}

// aggregateTeamBoards sums every board's game points and VP differential
// onto each side of a team-round. games is keyed by TeamPairing.ID; a board
// without a games entry or with no VP recorded is skipped (the caller only
// invokes this once every board is confirmed complete).
func aggregateTeamBoards(pairings []*models.TeamPairing, games map[string]*models.Game, teamAID string, mode models.ScoringMode) (gpA, gpB, vpDiffA, vpDiffB int) {
	for _, p := range pairings {
		g := games[p.ID]
		if g == nil || g.P1VP == nil || g.P2VP == nil {
			continue
		}
		// Game.P1 is always the board's defender (see spawn2v2 and the
		// ritual coordinator's createGameForPairing).
		aVP, bVP := *g.P1VP, *g.P2VP
		if p.DefenderTeam != teamAID {
			aVP, bVP = bVP, aVP
		}
		boardGPA, boardGPB := gamePointsForBoard(mode, aVP, bVP)
		gpA += boardGPA
		gpB += boardGPB
		vpDiffA += aVP - bVP
		vpDiffB += bVP - aVP
	}
	return gpA, gpB, vpDiffA, vpDiffB
}
