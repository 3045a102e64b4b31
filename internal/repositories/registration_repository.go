// internal/repositories/registration_repository.go
// Registration data access layer — Chop/Reserve/Confirmed waitlist rows.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// RegistrationRepository handles registration data access.
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new registration repository.
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `
	event_id, player_id, username, army, detachment, list_text, state,
	submitted_at, approved_at, dropped_at, rejection_reason, review_token,
	chop_thread_ref
`

func scanRegistration(row interface{ Scan(...interface{}) error }) (*models.Registration, error) {
	var r models.Registration
	err := row.Scan(
		&r.EventID, &r.PlayerID, &r.Username, &r.Army, &r.Detachment, &r.ListText, &r.State,
		&r.SubmittedAt, &r.ApprovedAt, &r.DroppedAt, &r.RejectionReason, &r.ReviewToken,
		&r.ChopThreadRef,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByID retrieves a single (event_id, player_id) registration row, scoped
// to an optional transaction (tx may be nil for a plain read).
func (r *RegistrationRepository) GetByID(ctx context.Context, tx *sql.Tx, eventID, playerID string) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = ? AND player_id = ?`
	var row interface{ Scan(...interface{}) error }
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, eventID, playerID)
	} else {
		row = r.db.QueryRowContext(ctx, query, eventID, playerID)
	}
	reg, err := scanRegistration(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return reg, err
}

// ListByEvent returns all registrations for an event, optionally filtered
// by state (empty string means all states).
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string, state models.RegistrationState) ([]*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = ?`
	args := []interface{}{eventID}
	if state != "" {
		query += ` AND state = ?`
		args = append(args, state)
	}
	query += ` ORDER BY submitted_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// OldestInterested returns the interested registration with the smallest
// submitted_at (ties broken by player_id ascending), excluding the given
// player, or nil if none exists. Used by reserve promotion.
func (r *RegistrationRepository) OldestInterested(ctx context.Context, tx *sql.Tx, eventID, excludePlayerID string) (*models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + ` FROM registrations
		WHERE event_id = ? AND state = ? AND player_id != ?
		ORDER BY submitted_at ASC, player_id ASC
		LIMIT 1
	`
	row := tx.QueryRowContext(ctx, query, eventID, models.RegInterested, excludePlayerID)
	reg, err := scanRegistration(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return reg, err
}

// Upsert inserts or replaces a registration's full row (used for
// submit_interest / submit_list, where the whole row is under the caller's
// control and a simple replace is appropriate).
func (r *RegistrationRepository) Upsert(ctx context.Context, tx *sql.Tx, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			username = VALUES(username), army = VALUES(army), detachment = VALUES(detachment),
			list_text = VALUES(list_text), state = VALUES(state),
			submitted_at = VALUES(submitted_at), approved_at = VALUES(approved_at),
			dropped_at = VALUES(dropped_at), rejection_reason = VALUES(rejection_reason),
			review_token = VALUES(review_token), chop_thread_ref = VALUES(chop_thread_ref)
	`
	_, err := tx.ExecContext(ctx, query,
		reg.EventID, reg.PlayerID, reg.Username, reg.Army, reg.Detachment, reg.ListText, reg.State,
		reg.SubmittedAt, reg.ApprovedAt, reg.DroppedAt, reg.RejectionReason, reg.ReviewToken,
		reg.ChopThreadRef,
	)
	return err
}

// CASState performs a compare-and-set transition on one registration row.
func (r *RegistrationRepository) CASState(ctx context.Context, tx *sql.Tx, eventID, playerID string, from, to models.RegistrationState) (bool, error) {
	query := `UPDATE registrations SET state = ? WHERE event_id = ? AND player_id = ? AND state = ?`
	res, err := tx.ExecContext(ctx, query, to, eventID, playerID, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// CountApprovedAndPending returns the current Confirmed+Chop headcount,
// used to enforce the roster invariant |approved|+|pending| <= max_players.
func (r *RegistrationRepository) CountApprovedAndPending(ctx context.Context, tx *sql.Tx, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = ? AND state IN (?, ?)`
	var n int
	err := tx.QueryRowContext(ctx, query, eventID, models.RegApproved, models.RegPending).Scan(&n)
	return n, err
}

// CountApproved returns the current Confirmed headcount.
func (r *RegistrationRepository) CountApproved(ctx context.Context, tx *sql.Tx, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = ? AND state = ?`
	var n int
	err := tx.QueryRowContext(ctx, query, eventID, models.RegApproved).Scan(&n)
	return n, err
}
