// internal/repositories/team_repository.go
// Team and TeamMember data access layer.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// TeamRepository handles team and team-member data access.
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.EventID, &t.Name, &t.CaptainID, &t.State); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new team within a transaction.
func (r *TeamRepository) Create(ctx context.Context, tx *sql.Tx, t *models.Team) error {
	query := `INSERT INTO teams (id, event_id, name, captain_id, state) VALUES (?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query, t.ID, t.EventID, t.Name, t.CaptainID, t.State)
	return err
}

// GetByID retrieves a team by ID.
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT id, event_id, name, captain_id, state FROM teams WHERE id = ?`
	t, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// ExistsByName reports whether an event already has a team of this name —
// enforces DuplicateTeamName.
func (r *TeamRepository) ExistsByName(ctx context.Context, tx *sql.Tx, eventID, name string) (bool, error) {
	query := `SELECT COUNT(*) FROM teams WHERE event_id = ? AND name = ?`
	var n int
	err := tx.QueryRowContext(ctx, query, eventID, name).Scan(&n)
	return n > 0, err
}

// ListByEvent returns all non-dropped teams of an event.
func (r *TeamRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Team, error) {
	query := `SELECT id, event_id, name, captain_id, state FROM teams WHERE event_id = ? AND state != ?`
	rows, err := r.db.QueryContext(ctx, query, eventID, models.TeamDropped)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// SetState updates a team's readiness state.
func (r *TeamRepository) SetState(ctx context.Context, tx *sql.Tx, id string, state models.TeamState) error {
	query := `UPDATE teams SET state = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, query, state, id)
	return err
}

// --- Team members ---

func scanTeamMember(row interface{ Scan(...interface{}) error }) (*models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(&m.TeamID, &m.PlayerID, &m.Role, &m.Army, &m.Detachment, &m.ListText, &m.ListApproved, &m.Active)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AddMember inserts a roster slot within a transaction.
func (r *TeamRepository) AddMember(ctx context.Context, tx *sql.Tx, m *models.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, player_id, role, army, detachment, list_text, list_approved, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query, m.TeamID, m.PlayerID, m.Role, m.Army, m.Detachment, m.ListText, m.ListApproved, m.Active)
	return err
}

// MembersByTeam returns a team's full roster.
func (r *TeamRepository) MembersByTeam(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	query := `SELECT team_id, player_id, role, army, detachment, list_text, list_approved, active FROM team_members WHERE team_id = ?`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// PlayerActiveTeam returns the team ID a player is actively rostered on for
// an event, or "" if none — enforces "at most one active team per event".
func (r *TeamRepository) PlayerActiveTeam(ctx context.Context, tx *sql.Tx, eventID, playerID string) (string, error) {
	query := `
		SELECT tm.team_id FROM team_members tm
		JOIN teams t ON t.id = tm.team_id
		WHERE t.event_id = ? AND tm.player_id = ? AND tm.active = TRUE AND t.state != ?
		LIMIT 1
	`
	var teamID string
	err := tx.QueryRowContext(ctx, query, eventID, playerID, models.TeamDropped).Scan(&teamID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return teamID, err
}

// SetMemberApproval flips a roster slot's list-approved flag.
func (r *TeamRepository) SetMemberApproval(ctx context.Context, tx *sql.Tx, teamID, playerID string, approved bool) error {
	query := `UPDATE team_members SET list_approved = ? WHERE team_id = ? AND player_id = ?`
	_, err := tx.ExecContext(ctx, query, approved, teamID, playerID)
	return err
}

// SetMemberActive flips a roster slot's active flag (used on drop).
func (r *TeamRepository) SetMemberActive(ctx context.Context, tx *sql.Tx, teamID, playerID string, active bool) error {
	query := `UPDATE team_members SET active = ? WHERE team_id = ? AND player_id = ?`
	_, err := tx.ExecContext(ctx, query, active, teamID, playerID)
	return err
}
