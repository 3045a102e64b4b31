// internal/repositories/game_repository.go
// Game data access layer — the result-track rows driven by the Game
// Lifecycle and consumed by the Round Controller's bye-VP averaging.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// GameRepository handles game data access.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `
	id, round_id, event_id, room_number, p1, p2, is_bye, p1_vp, p2_vp,
	winner_id, state, detail, submitted_at, confirmed_at, adj_note
`

func scanGame(row interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.RoundID, &g.EventID, &g.RoomNumber, &g.P1, &g.P2, &g.IsBye, &g.P1VP, &g.P2VP,
		&g.WinnerID, &g.State, &g.Detail, &g.SubmittedAt, &g.ConfirmedAt, &g.AdjNote,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a new game within a transaction.
func (r *GameRepository) Create(ctx context.Context, tx *sql.Tx, g *models.Game) error {
	query := `INSERT INTO games (` + gameColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		g.ID, g.RoundID, g.EventID, g.RoomNumber, g.P1, g.P2, g.IsBye, g.P1VP, g.P2VP,
		g.WinnerID, g.State, g.Detail, g.SubmittedAt, g.ConfirmedAt, g.AdjNote,
	)
	return err
}

// GetByID retrieves a game by ID, optionally scoped to a transaction.
func (r *GameRepository) GetByID(ctx context.Context, tx *sql.Tx, id string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = ?`
	var row interface{ Scan(...interface{}) error }
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, id)
	} else {
		row = r.db.QueryRowContext(ctx, query, id)
	}
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return g, err
}

// ListByRound returns all games of a round.
func (r *GameRepository) ListByRound(ctx context.Context, roundID string) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE round_id = ? ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListByEvent returns all games across every round of an event.
func (r *GameRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE event_id = ?`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListSubmittedBefore returns games still in the submitted state whose
// submitted_at is older than the given cutoff — the auto-confirm scan set.
func (r *GameRepository) ListSubmittedBefore(ctx context.Context, cutoff interface{}) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE state = ? AND submitted_at <= ?`
	rows, err := r.db.QueryContext(ctx, query, models.GameSubmitted, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Update persists score/state/detail fields for a game inside a transaction.
func (r *GameRepository) Update(ctx context.Context, tx *sql.Tx, g *models.Game) error {
	query := `
		UPDATE games SET
			p1_vp = ?, p2_vp = ?, winner_id = ?, state = ?, detail = ?,
			submitted_at = ?, confirmed_at = ?, adj_note = ?
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query,
		g.P1VP, g.P2VP, g.WinnerID, g.State, g.Detail,
		g.SubmittedAt, g.ConfirmedAt, g.AdjNote, g.ID,
	)
	return err
}

// CASState performs a compare-and-set on the game's state column — the
// required guard on submitted -> complete so confirm applies exactly once.
func (r *GameRepository) CASState(ctx context.Context, tx *sql.Tx, id string, from, to models.GameState) (bool, error) {
	query := `UPDATE games SET state = ? WHERE id = ? AND state = ?`
	res, err := tx.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
