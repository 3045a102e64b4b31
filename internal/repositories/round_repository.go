// internal/repositories/round_repository.go
// Round data access layer.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// RoundRepository handles round data access.
type RoundRepository struct {
	db *sql.DB
}

// NewRoundRepository creates a new round repository.
func NewRoundRepository(db *sql.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

const roundColumns = `
	id, event_id, round_number, day_number, state, started_at, deadline_at,
	completed_at, pairings_msg_ref
`

func scanRound(row interface{ Scan(...interface{}) error }) (*models.Round, error) {
	var r models.Round
	err := row.Scan(
		&r.ID, &r.EventID, &r.RoundNumber, &r.DayNumber, &r.State, &r.StartedAt,
		&r.DeadlineAt, &r.CompletedAt, &r.PairingsMsgRef,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new round within a transaction.
func (r *RoundRepository) Create(ctx context.Context, tx *sql.Tx, round *models.Round) error {
	query := `INSERT INTO rounds (` + roundColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		round.ID, round.EventID, round.RoundNumber, round.DayNumber, round.State,
		round.StartedAt, round.DeadlineAt, round.CompletedAt, round.PairingsMsgRef,
	)
	return err
}

// GetByID retrieves a round by ID.
func (r *RoundRepository) GetByID(ctx context.Context, id string) (*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE id = ?`
	round, err := scanRound(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return round, err
}

// Current returns the event's highest round_number row, or nil if none.
func (r *RoundRepository) Current(ctx context.Context, eventID string) (*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE event_id = ? ORDER BY round_number DESC LIMIT 1`
	round, err := scanRound(r.db.QueryRowContext(ctx, query, eventID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return round, err
}

// ListByEvent returns every round of an event, ordered by round_number —
// used by the Event Controller to confirm every round is complete before
// finishing the event.
func (r *RoundRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE event_id = ? ORDER BY round_number`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, round)
	}
	return out, rows.Err()
}

// CountByEvent returns the number of rounds already created for an event —
// the basis for the next round_number allocation.
func (r *RoundRepository) CountByEvent(ctx context.Context, tx *sql.Tx, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM rounds WHERE event_id = ?`
	var n int
	err := tx.QueryRowContext(ctx, query, eventID).Scan(&n)
	return n, err
}

// CASState performs a compare-and-set on the round's state column.
func (r *RoundRepository) CASState(ctx context.Context, tx *sql.Tx, id string, from, to models.RoundState) (bool, error) {
	query := `UPDATE rounds SET state = ? WHERE id = ? AND state = ?`
	res, err := tx.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// SetDeadline sets started_at/deadline_at for a round entering in_progress.
func (r *RoundRepository) SetDeadline(ctx context.Context, tx *sql.Tx, id string, startedAt, deadlineAt interface{}) error {
	query := `UPDATE rounds SET started_at = ?, deadline_at = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, query, startedAt, deadlineAt, id)
	return err
}

// SetCompletedAt marks completion time for a round.
func (r *RoundRepository) SetCompletedAt(ctx context.Context, tx *sql.Tx, id string, completedAt interface{}) error {
	query := `UPDATE rounds SET completed_at = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, query, completedAt, id)
	return err
}

// DeletePendingGames removes all pending games of a round — used by
// repair_round, which may only run while no game in the round is complete.
func (r *RoundRepository) DeletePendingGames(ctx context.Context, tx *sql.Tx, roundID string) error {
	query := `DELETE FROM games WHERE round_id = ? AND state = ?`
	_, err := tx.ExecContext(ctx, query, roundID, models.GamePending)
	return err
}
