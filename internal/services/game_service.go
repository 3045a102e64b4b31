// internal/services/game_service.go
// Game Lifecycle: pending -> submitted -> complete, with the dispute/
// override side-path and in-place adjustment via reverse-then-reapply onto
// Standings.

package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/clock"
	"tournament-planner/internal/corerr"
	"tournament-planner/internal/models"
	"tournament-planner/internal/notifier"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/utils"
)

// autoConfirmWindow is the grace period after submission before an
// unconfirmed result auto-confirms.
const autoConfirmWindow = 24 * time.Hour

// GameService drives one game's result lifecycle.
type GameService struct {
	repos     *repositories.Container
	standings *StandingsService
	round     *RoundService
	notifier  notifier.Notifier
	clock     clock.Clock
	logger    *log.Logger
}

// NewGameService creates a game service. round is used to roll a completing
// board game's result up into its team-round once every board of that
// matchup has a posted result; it is a no-op for singles games.
func NewGameService(repos *repositories.Container, standings *StandingsService, round *RoundService, notif notifier.Notifier, clk clock.Clock, logger *log.Logger) *GameService {
	return &GameService{repos: repos, standings: standings, round: round, notifier: notif, clock: clk, logger: logger}
}

// Submit records a result, pending -> submitted. submitterID must be one of
// the game's two players. ownVP/oppVP are oriented to the submitter.
func (s *GameService) Submit(ctx context.Context, gameID, submitterID string, ownVP, oppVP int) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repos.Game.GetByID(ctx, tx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return corerr.New(corerr.NotFound, "game not found")
	}
	if submitterID != g.P1 && (g.P2 == nil || submitterID != *g.P2) {
		return corerr.New(corerr.PermissionDenied, "only the two players in the game may submit a result")
	}

	p1VP, p2VP := ownVP, oppVP
	if g.P2 != nil && submitterID == *g.P2 {
		p1VP, p2VP = oppVP, ownVP
	}

	winner := g.P1
	if p2VP > p1VP && g.P2 != nil {
		winner = *g.P2
	}

	now := s.clock.Now()
	g.P1VP = &p1VP
	g.P2VP = &p2VP
	g.WinnerID = &winner
	g.SubmittedAt = &now

	ok, err := s.repos.Game.CASState(ctx, tx, gameID, models.GamePending, models.GameSubmitted)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.GamePending), string(g.State))
	}
	g.State = models.GameSubmitted
	if err := s.repos.Game.Update(ctx, tx, g); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if g.P2 != nil {
		opponent := g.P1
		if submitterID == g.P1 {
			opponent = *g.P2
		}
		s.notifier.NotifyResultConfirmCard(ctx, g.EventID, gameID, notifier.Principal{Kind: notifier.KindPlayer, ID: opponent})
	}
	return nil
}

// Confirm applies the posted result to Standings exactly once,
// submitted -> complete. Either player in the game or a TO may confirm; a
// game does not record which player submitted it, so the submitter is not
// excluded.
func (s *GameService) Confirm(ctx context.Context, gameID, confirmerID string, confirmerIsTO bool) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repos.Game.GetByID(ctx, tx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return corerr.New(corerr.NotFound, "game not found")
	}
	if !confirmerIsTO {
		isParticipant := confirmerID == g.P1 || (g.P2 != nil && confirmerID == *g.P2)
		if !isParticipant {
			return corerr.New(corerr.PermissionDenied, "only a player in the game or a TO may confirm")
		}
	}

	ok, err := s.repos.Game.CASState(ctx, tx, gameID, models.GameSubmitted, models.GameComplete)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.GameSubmitted), string(g.State))
	}

	now := s.clock.Now()
	g.State = models.GameComplete
	g.ConfirmedAt = &now
	if err := s.repos.Game.Update(ctx, tx, g); err != nil {
		return err
	}

	if err := s.applyToStandings(ctx, tx, g); err != nil {
		return err
	}
	if err := s.round.CompleteTeamRound(ctx, tx, g.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.NotifyStandingsCard(ctx, g.EventID)
	return nil
}

// Dispute surfaces a submitted result to the TO, submitted -> disputed. No
// standings effect.
func (s *GameService) Dispute(ctx context.Context, gameID, disputerID string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repos.Game.GetByID(ctx, tx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return corerr.New(corerr.NotFound, "game not found")
	}
	ok, err := s.repos.Game.CASState(ctx, tx, gameID, models.GameSubmitted, models.GameDisputed)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.GameSubmitted), string(g.State))
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.NotifyJudgeAlert(ctx, g.EventID, fmt.Sprintf("game %s disputed by %s", gameID, disputerID))
	return nil
}

// Override forces a result to complete by TO fiat from either submitted or
// disputed, applying it to Standings.
func (s *GameService) Override(ctx context.Context, gameID string, p1VP, p2VP int) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repos.Game.GetByID(ctx, tx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return corerr.New(corerr.NotFound, "game not found")
	}
	if g.State != models.GameSubmitted && g.State != models.GameDisputed {
		return corerr.InvalidStatef("submitted|disputed", string(g.State))
	}

	winner := g.P1
	if g.P2 != nil && p2VP > p1VP {
		winner = *g.P2
	}
	now := s.clock.Now()
	g.P1VP = &p1VP
	g.P2VP = &p2VP
	g.WinnerID = &winner
	g.State = models.GameComplete
	g.ConfirmedAt = &now
	if err := s.repos.Game.Update(ctx, tx, g); err != nil {
		return err
	}
	if err := s.applyToStandings(ctx, tx, g); err != nil {
		return err
	}
	if err := s.round.CompleteTeamRound(ctx, tx, g.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.NotifyStandingsCard(ctx, g.EventID)
	return nil
}

// AutoConfirm runs confirm on every game still submitted past the 24h
// grace window. Games that have since moved are no-ops.
func (s *GameService) AutoConfirm(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-autoConfirmWindow)
	games, err := s.repos.Game.ListSubmittedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, g := range games {
		if err := s.Confirm(ctx, g.ID, "", true); err != nil {
			s.logger.Printf("auto_confirm: game %s: %v", g.ID, err)
		}
	}
	return nil
}

// Adjust corrects a completed game's score in place: reverse the previously
// posted delta, apply the new one, and record an audit entry with the old
// and new triples.
func (s *GameService) Adjust(ctx context.Context, gameID string, newP1VP, newP2VP int, note, adjustedBy string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repos.Game.GetByID(ctx, tx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return corerr.New(corerr.NotFound, "game not found")
	}
	if g.State != models.GameComplete {
		return corerr.New(corerr.IllegalAdjustment, "only a complete game may be adjusted")
	}
	if g.P1VP == nil || g.P2VP == nil {
		return corerr.New(corerr.IllegalAdjustment, "game has no posted result to reverse")
	}

	oldP1VP, oldP2VP := *g.P1VP, *g.P2VP

	if err := s.reverseStandings(ctx, tx, g); err != nil {
		return err
	}

	winner := g.P1
	if g.P2 != nil && newP2VP > newP1VP {
		winner = *g.P2
	}
	g.P1VP = &newP1VP
	g.P2VP = &newP2VP
	g.WinnerID = &winner
	g.AdjNote = note
	if err := s.repos.Game.Update(ctx, tx, g); err != nil {
		return err
	}
	if err := s.applyToStandings(ctx, tx, g); err != nil {
		return err
	}

	detail, _ := json.Marshal(map[string]interface{}{
		"game_id":     gameID,
		"old_p1_vp":   oldP1VP,
		"old_p2_vp":   oldP2VP,
		"new_p1_vp":   newP1VP,
		"new_p2_vp":   newP2VP,
		"note":        note,
		"adjusted_by": adjustedBy,
	})
	s.repos.AuditLog.Append(models.AuditLogEntry{
		ID:        utils.NewID("log"),
		EventID:   g.EventID,
		Kind:      "game_adjusted",
		Summary:   fmt.Sprintf("game %s adjusted by %s", gameID, adjustedBy),
		Detail:    string(detail),
		CreatedAt: s.clock.Now(),
	})

	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.NotifyStandingsCard(ctx, g.EventID)
	return nil
}

func outcomeFor(g *models.Game, isP1 bool) GameOutcome {
	if isP1 {
		return ClassifyOutcome(*g.P1VP, *g.P2VP, g.IsBye)
	}
	return ClassifyOutcome(*g.P2VP, *g.P1VP, g.IsBye)
}

func (s *GameService) applyToStandings(ctx context.Context, tx *sql.Tx, g *models.Game) error {
	st1, err := s.repos.Standing.GetOrInit(ctx, tx, g.EventID, g.P1)
	if err != nil {
		return err
	}
	s.standings.Apply(st1, outcomeFor(g, true))
	if err := s.repos.Standing.Upsert(ctx, tx, st1); err != nil {
		return err
	}

	if g.P2 != nil {
		st2, err := s.repos.Standing.GetOrInit(ctx, tx, g.EventID, *g.P2)
		if err != nil {
			return err
		}
		s.standings.Apply(st2, outcomeFor(g, false))
		if err := s.repos.Standing.Upsert(ctx, tx, st2); err != nil {
			return err
		}
	}
	return nil
}

func (s *GameService) reverseStandings(ctx context.Context, tx *sql.Tx, g *models.Game) error {
	st1, err := s.repos.Standing.GetOrInit(ctx, tx, g.EventID, g.P1)
	if err != nil {
		return err
	}
	s.standings.Reverse(st1, outcomeFor(g, true))
	if err := s.repos.Standing.Upsert(ctx, tx, st1); err != nil {
		return err
	}

	if g.P2 != nil {
		st2, err := s.repos.Standing.GetOrInit(ctx, tx, g.EventID, *g.P2)
		if err != nil {
			return err
		}
		s.standings.Reverse(st2, outcomeFor(g, false))
		if err := s.repos.Standing.Upsert(ctx, tx, st2); err != nil {
			return err
		}
	}
	return nil
}
