// internal/repositories/pairingstate_repository.go
// PairingState data access layer — the single mutable row per team-round
// that the Ritual Engine advances field by field. Every field is write-once
// per phase; the CAS guards here are the persistence half of that guarantee,
// the other half being the Redis SetNX lock taken by the ritual coordinator
// before it ever calls into this repository.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// PairingStateRepository handles ritual pairing-state data access.
type PairingStateRepository struct {
	db *sql.DB
}

// NewPairingStateRepository creates a new pairing-state repository.
func NewPairingStateRepository(db *sql.DB) *PairingStateRepository {
	return &PairingStateRepository{db: db}
}

const pairingStateColumns = `
	team_round_id, current_phase, current_step, roll_a, roll_b,
	defender_a, defender_b, attackers_a, attackers_b, choice_a, choice_b,
	updated_at
`

func scanPairingState(row interface{ Scan(...interface{}) error }) (*models.PairingState, error) {
	var s models.PairingState
	err := row.Scan(
		&s.TeamRoundID, &s.CurrentPhase, &s.CurrentStep, &s.RollA, &s.RollB,
		&s.DefenderA, &s.DefenderB, &s.AttackersA, &s.AttackersB, &s.ChoiceA, &s.ChoiceB,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts the initial (empty, await_rolloff) pairing-state row for a
// team-round, within a transaction.
func (r *PairingStateRepository) Create(ctx context.Context, tx *sql.Tx, s *models.PairingState) error {
	query := `INSERT INTO pairing_states (` + pairingStateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		s.TeamRoundID, s.CurrentPhase, s.CurrentStep, s.RollA, s.RollB,
		s.DefenderA, s.DefenderB, s.AttackersA, s.AttackersB, s.ChoiceA, s.ChoiceB,
		s.UpdatedAt,
	)
	return err
}

// GetByTeamRound retrieves the pairing-state row for a team-round, locking
// it FOR UPDATE when called within a transaction.
func (r *PairingStateRepository) GetByTeamRound(ctx context.Context, tx *sql.Tx, teamRoundID string) (*models.PairingState, error) {
	query := `SELECT ` + pairingStateColumns + ` FROM pairing_states WHERE team_round_id = ?`
	var row interface{ Scan(...interface{}) error }
	if tx != nil {
		row = tx.QueryRowContext(ctx, query+` FOR UPDATE`, teamRoundID)
	} else {
		row = r.db.QueryRowContext(ctx, query, teamRoundID)
	}
	s, err := scanPairingState(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// CASStep performs a compare-and-set on current_step — the write-once guard
// for each ritual advance so a duplicate/racing submission from the same
// principal cannot apply twice.
func (r *PairingStateRepository) CASStep(ctx context.Context, tx *sql.Tx, teamRoundID string, from, to models.PairingStep) (bool, error) {
	query := `UPDATE pairing_states SET current_step = ?, updated_at = NOW() WHERE team_round_id = ? AND current_step = ?`
	res, err := tx.ExecContext(ctx, query, to, teamRoundID, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// Update persists the full mutable field set after a successful step
// transition (rolls, defender picks, attacker picks, choices).
func (r *PairingStateRepository) Update(ctx context.Context, tx *sql.Tx, s *models.PairingState) error {
	query := `
		UPDATE pairing_states SET
			current_phase = ?, roll_a = ?, roll_b = ?,
			defender_a = ?, defender_b = ?, attackers_a = ?, attackers_b = ?,
			choice_a = ?, choice_b = ?, updated_at = NOW()
		WHERE team_round_id = ?
	`
	_, err := tx.ExecContext(ctx, query,
		s.CurrentPhase, s.RollA, s.RollB,
		s.DefenderA, s.DefenderB, s.AttackersA, s.AttackersB,
		s.ChoiceA, s.ChoiceB, s.TeamRoundID,
	)
	return err
}

// AdvancePhase resets the write-once fields for a new phase and bumps
// current_phase/current_step in one statement, used at choice-reveal (same
// phase, on to layout/mission picks) and when the ritual rolls over to the
// next phase's defender gate.
func (r *PairingStateRepository) AdvancePhase(ctx context.Context, tx *sql.Tx, teamRoundID string, phase int, step models.PairingStep) error {
	query := `
		UPDATE pairing_states SET
			current_phase = ?, current_step = ?,
			roll_a = NULL, roll_b = NULL,
			defender_a = NULL, defender_b = NULL,
			attackers_a = NULL, attackers_b = NULL,
			choice_a = NULL, choice_b = NULL,
			updated_at = NOW()
		WHERE team_round_id = ?
	`
	_, err := tx.ExecContext(ctx, query, phase, step, teamRoundID)
	return err
}

// ListIncomplete returns every pairing-state not yet in the complete step —
// used on process restart to rebuild the in-memory ritual coordinator set.
func (r *PairingStateRepository) ListIncomplete(ctx context.Context) ([]*models.PairingState, error) {
	query := `SELECT ` + pairingStateColumns + ` FROM pairing_states WHERE current_step != ?`
	rows, err := r.db.QueryContext(ctx, query, models.StepComplete)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PairingState
	for rows.Next() {
		s, err := scanPairingState(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
