// internal/repositories/event_repository.go
// Event data access layer.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// EventRepository handles event data access.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `
	id, name, format, points_limit, individual_points, max_players,
	round_count, rounds_per_day, start_date, end_date, rules_cutoff,
	reg_deadline, state, scoring_mode, created_by, schedule_slots,
	event_layouts, event_missions, event_pairings, created_at, updated_at
`

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Format, &e.PointsLimit, &e.IndividualPoints, &e.MaxPlayers,
		&e.RoundCount, &e.RoundsPerDay, &e.StartDate, &e.EndDate, &e.RulesCutoff,
		&e.RegDeadline, &e.State, &e.ScoringMode, &e.CreatedBy, &e.ScheduleSlots,
		&e.EventLayouts, &e.EventMissions, &e.EventPairings, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event within a transaction.
func (r *EventRepository) Create(ctx context.Context, tx *sql.Tx, e *models.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		e.ID, e.Name, e.Format, e.PointsLimit, e.IndividualPoints, e.MaxPlayers,
		e.RoundCount, e.RoundsPerDay, e.StartDate, e.EndDate, e.RulesCutoff,
		e.RegDeadline, e.State, e.ScoringMode, e.CreatedBy, e.ScheduleSlots,
		e.EventLayouts, e.EventMissions, e.EventPairings, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// ListActive returns all events not yet in the complete state.
func (r *EventRepository) ListActive(ctx context.Context) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE state != ? ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, models.EventComplete)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update persists full event field set (used for append-only field updates
// like event_layouts/event_missions/noticeboard refs rather than state
// transitions, which go through CASState).
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	query := `
		UPDATE events SET
			name = ?, points_limit = ?, individual_points = ?, max_players = ?,
			round_count = ?, rounds_per_day = ?, schedule_slots = ?,
			event_layouts = ?, event_missions = ?, event_pairings = ?,
			updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		e.Name, e.PointsLimit, e.IndividualPoints, e.MaxPlayers,
		e.RoundCount, e.RoundsPerDay, e.ScheduleSlots,
		e.EventLayouts, e.EventMissions, e.EventPairings,
		e.ID,
	)
	return err
}

// CASState performs a compare-and-set on the event's state column, used for
// every lifecycle transition (announced -> interest -> registration ->
// in_progress -> complete). Returns false (no error) if the row was not in
// the expected prior state.
func (r *EventRepository) CASState(ctx context.Context, tx *sql.Tx, id string, from, to models.EventState) (bool, error) {
	query := `UPDATE events SET state = ?, updated_at = NOW() WHERE id = ? AND state = ?`
	res, err := tx.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
