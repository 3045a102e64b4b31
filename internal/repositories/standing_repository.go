// internal/repositories/standing_repository.go
// Standing data access layer — cumulative per-player (and synthetic
// per-team) records, mutated only through Apply/Reverse in the Standings
// Aggregator and persisted here as whole-row upserts within a transaction.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// StandingRepository handles standing data access.
type StandingRepository struct {
	db *sql.DB
}

// NewStandingRepository creates a new standing repository.
func NewStandingRepository(db *sql.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

const standingColumns = `
	event_id, player_id, wins, losses, draws, vp_total, vp_against, vp_diff,
	had_bye, active, wtc_gp, team_id, team_wins, team_losses, team_draws,
	team_points, game_points
`

func scanStanding(row interface{ Scan(...interface{}) error }) (*models.Standing, error) {
	var s models.Standing
	err := row.Scan(
		&s.EventID, &s.PlayerID, &s.Wins, &s.Losses, &s.Draws, &s.VPTotal, &s.VPAgainst, &s.VPDiff,
		&s.HadBye, &s.Active, &s.WTCGp, &s.TeamID, &s.TeamWins, &s.TeamLosses, &s.TeamDraws,
		&s.TeamPoints, &s.GamePoints,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrInit retrieves a player's (or team's) standing row, within a
// transaction, creating a zeroed row first if none exists.
func (r *StandingRepository) GetOrInit(ctx context.Context, tx *sql.Tx, eventID, playerID string) (*models.Standing, error) {
	query := `SELECT ` + standingColumns + ` FROM standings WHERE event_id = ? AND player_id = ? FOR UPDATE`
	s, err := scanStanding(tx.QueryRowContext(ctx, query, eventID, playerID))
	if err == sql.ErrNoRows {
		s = &models.Standing{EventID: eventID, PlayerID: playerID, Active: true}
		if err := r.Upsert(ctx, tx, s); err != nil {
			return nil, err
		}
		return s, nil
	}
	return s, err
}

// Upsert writes a standing row's full field set within a transaction.
func (r *StandingRepository) Upsert(ctx context.Context, tx *sql.Tx, s *models.Standing) error {
	query := `
		INSERT INTO standings (` + standingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			wins = VALUES(wins), losses = VALUES(losses), draws = VALUES(draws),
			vp_total = VALUES(vp_total), vp_against = VALUES(vp_against), vp_diff = VALUES(vp_diff),
			had_bye = VALUES(had_bye), active = VALUES(active), wtc_gp = VALUES(wtc_gp),
			team_id = VALUES(team_id), team_wins = VALUES(team_wins), team_losses = VALUES(team_losses),
			team_draws = VALUES(team_draws), team_points = VALUES(team_points), game_points = VALUES(game_points)
	`
	_, err := tx.ExecContext(ctx, query,
		s.EventID, s.PlayerID, s.Wins, s.Losses, s.Draws, s.VPTotal, s.VPAgainst, s.VPDiff,
		s.HadBye, s.Active, s.WTCGp, s.TeamID, s.TeamWins, s.TeamLosses, s.TeamDraws,
		s.TeamPoints, s.GamePoints,
	)
	return err
}

// ListByEvent returns every standing row for an event, used to render the
// leaderboard and to feed the Swiss pairing algorithm's ranking input.
func (r *StandingRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Standing, error) {
	query := `SELECT ` + standingColumns + ` FROM standings WHERE event_id = ?`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Standing
	for rows.Next() {
		s, err := scanStanding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
