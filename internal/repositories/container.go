// internal/repositories/container.go
// Repository container for dependency injection

package repositories

import (
	"context"
	"database/sql"
	"log"

	"tournament-planner/internal/database"
)

// Container holds all repository instances
type Container struct {
	Event        *EventRepository
	Registration *RegistrationRepository
	Round        *RoundRepository
	Game         *GameRepository
	Team         *TeamRepository
	TeamRound    *TeamRoundRepository
	PairingState *PairingStateRepository
	Standing     *StandingRepository
	AuditLog     *AuditLogRepository
	User         *UserRepository
	db           *sql.DB
}

// NewContainer creates a new repository container
func NewContainer(conn *database.Connections, logger *log.Logger) *Container {
	return &Container{
		Event:        NewEventRepository(conn.MySQL),
		Registration: NewRegistrationRepository(conn.MySQL),
		Round:        NewRoundRepository(conn.MySQL),
		Game:         NewGameRepository(conn.MySQL),
		Team:         NewTeamRepository(conn.MySQL),
		TeamRound:    NewTeamRoundRepository(conn.MySQL),
		PairingState: NewPairingStateRepository(conn.MySQL),
		Standing:     NewStandingRepository(conn.MySQL),
		AuditLog:     NewAuditLogRepository(conn.MongoDB, logger),
		User:         NewUserRepository(conn.MySQL),
		db:           conn.MySQL,
	}
}

// BeginTx starts a new database transaction
func (c *Container) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}
