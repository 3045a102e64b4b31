// internal/repositories/teamround_repository.go
// TeamRound and TeamPairing data access layer — the team-format analogue of
// rounds/games, one row per team-vs-team matchup and one row per board slot.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// TeamRoundRepository handles team-round and team-pairing data access.
type TeamRoundRepository struct {
	db *sql.DB
}

// NewTeamRoundRepository creates a new team-round repository.
func NewTeamRoundRepository(db *sql.DB) *TeamRoundRepository {
	return &TeamRoundRepository{db: db}
}

const teamRoundColumns = `
	id, round_id, event_id, team_a_id, team_b_id, state, team_a_score,
	team_b_score, team_a_win, layout_picker
`

func scanTeamRound(row interface{ Scan(...interface{}) error }) (*models.TeamRound, error) {
	var tr models.TeamRound
	err := row.Scan(
		&tr.ID, &tr.RoundID, &tr.EventID, &tr.TeamAID, &tr.TeamBID, &tr.State,
		&tr.TeamAScore, &tr.TeamBScore, &tr.TeamAWin, &tr.LayoutPicker,
	)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

// Create inserts a team-round within a transaction.
func (r *TeamRoundRepository) Create(ctx context.Context, tx *sql.Tx, tr *models.TeamRound) error {
	query := `INSERT INTO team_rounds (` + teamRoundColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		tr.ID, tr.RoundID, tr.EventID, tr.TeamAID, tr.TeamBID, tr.State,
		tr.TeamAScore, tr.TeamBScore, tr.TeamAWin, tr.LayoutPicker,
	)
	return err
}

// GetByID retrieves a team-round by ID, optionally scoped to a transaction.
func (r *TeamRoundRepository) GetByID(ctx context.Context, tx *sql.Tx, id string) (*models.TeamRound, error) {
	query := `SELECT ` + teamRoundColumns + ` FROM team_rounds WHERE id = ?`
	var row interface{ Scan(...interface{}) error }
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, id)
	} else {
		row = r.db.QueryRowContext(ctx, query, id)
	}
	tr, err := scanTeamRound(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return tr, err
}

// ListByRound returns all team-rounds of a round.
func (r *TeamRoundRepository) ListByRound(ctx context.Context, roundID string) ([]*models.TeamRound, error) {
	query := `SELECT ` + teamRoundColumns + ` FROM team_rounds WHERE round_id = ?`
	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TeamRound
	for rows.Next() {
		tr, err := scanTeamRound(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// CASState performs a compare-and-set on the team-round's state column.
func (r *TeamRoundRepository) CASState(ctx context.Context, tx *sql.Tx, id string, from, to models.TeamRoundState) (bool, error) {
	query := `UPDATE team_rounds SET state = ? WHERE id = ? AND state = ?`
	res, err := tx.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// SetScores persists the final board tally and overall winner once a
// team-round completes.
func (r *TeamRoundRepository) SetScores(ctx context.Context, tx *sql.Tx, id string, teamAScore, teamBScore int, teamAWin sql.NullBool) error {
	query := `UPDATE team_rounds SET team_a_score = ?, team_b_score = ?, team_a_win = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, query, teamAScore, teamBScore, teamAWin, id)
	return err
}

// SetLayoutPicker records which team won the opening roll-off's layout pick.
func (r *TeamRoundRepository) SetLayoutPicker(ctx context.Context, tx *sql.Tx, id string, picker models.LayoutPicker) error {
	query := `UPDATE team_rounds SET layout_picker = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, query, picker, id)
	return err
}

// --- Team pairings ---

const teamPairingColumns = `
	id, team_round_id, slot, game_id, defender_player, defender_team,
	attacker_player, attacker_team, refused_player, layout_number,
	mission_code, layout_picker_team, mission_picker_team
`

func scanTeamPairing(row interface{ Scan(...interface{}) error }) (*models.TeamPairing, error) {
	var p models.TeamPairing
	err := row.Scan(
		&p.ID, &p.TeamRoundID, &p.Slot, &p.GameID, &p.DefenderPlayer, &p.DefenderTeam,
		&p.AttackerPlayer, &p.AttackerTeam, &p.RefusedPlayer, &p.LayoutNumber,
		&p.MissionCode, &p.LayoutPickerTeam, &p.MissionPickerTeam,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePairing inserts a board-slot row within a transaction.
func (r *TeamRoundRepository) CreatePairing(ctx context.Context, tx *sql.Tx, p *models.TeamPairing) error {
	query := `INSERT INTO team_pairings (` + teamPairingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		p.ID, p.TeamRoundID, p.Slot, p.GameID, p.DefenderPlayer, p.DefenderTeam,
		p.AttackerPlayer, p.AttackerTeam, p.RefusedPlayer, p.LayoutNumber,
		p.MissionCode, p.LayoutPickerTeam, p.MissionPickerTeam,
	)
	return err
}

// PairingsByTeamRound returns all board slots of a team-round, ordered by
// slot number.
func (r *TeamRoundRepository) PairingsByTeamRound(ctx context.Context, tx *sql.Tx, teamRoundID string) ([]*models.TeamPairing, error) {
	query := `SELECT ` + teamPairingColumns + ` FROM team_pairings WHERE team_round_id = ? ORDER BY slot`
	var rows *sql.Rows
	var err error
	if tx != nil {
		rows, err = tx.QueryContext(ctx, query, teamRoundID)
	} else {
		rows, err = r.db.QueryContext(ctx, query, teamRoundID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TeamPairing
	for rows.Next() {
		p, err := scanTeamPairing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPairingByGameID finds the board-slot a game belongs to, or nil if the
// game is not part of any team-round (a singles game).
func (r *TeamRoundRepository) GetPairingByGameID(ctx context.Context, tx *sql.Tx, gameID string) (*models.TeamPairing, error) {
	query := `SELECT ` + teamPairingColumns + ` FROM team_pairings WHERE game_id = ?`
	var row interface{ Scan(...interface{}) error }
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, gameID)
	} else {
		row = r.db.QueryRowContext(ctx, query, gameID)
	}
	p, err := scanTeamPairing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// UpdatePairing persists the defender/attacker/layout/mission fields once the
// Ritual Engine fills them in. Each field is write-once at the service layer;
// this call persists the whole row after that guard has passed.
func (r *TeamRoundRepository) UpdatePairing(ctx context.Context, tx *sql.Tx, p *models.TeamPairing) error {
	query := `
		UPDATE team_pairings SET
			game_id = ?, defender_player = ?, defender_team = ?,
			attacker_player = ?, attacker_team = ?, refused_player = ?,
			layout_number = ?, mission_code = ?,
			layout_picker_team = ?, mission_picker_team = ?
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query,
		p.GameID, p.DefenderPlayer, p.DefenderTeam,
		p.AttackerPlayer, p.AttackerTeam, p.RefusedPlayer,
		p.LayoutNumber, p.MissionCode,
		p.LayoutPickerTeam, p.MissionPickerTeam, p.ID,
	)
	return err
}
