// internal/services/container.go
// Service container provides dependency injection for all business logic services.
// This pattern makes testing easier and keeps services loosely coupled.

package services

import (
	"errors"
	"log"

	"tournament-planner/internal/clock"
	"tournament-planner/internal/config"
	"tournament-planner/internal/database"
	"tournament-planner/internal/notifier"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/websocket"
)

// Container holds all service instances and provides them to handlers
type Container struct {
	Auth         *AuthService
	User         *UserService
	Event        *EventService
	Registration *RegistrationService
	Round        *RoundService
	Game         *GameService
	Ritual       *RitualService
	Standings    *StandingsService
	Cache        *CacheService
	Notifier     notifier.Notifier
	Hub          *websocket.Hub
	Repos        *repositories.Container
}

// NewContainer creates a new service container with all dependencies
func NewContainer(db *database.Connections, cfg *config.Config, logger *log.Logger) *Container {
	repos := repositories.NewContainer(db, logger)

	cache := NewCacheService(db.Redis, logger)
	clk := clock.NewReal()

	hub := websocket.NewHub(logger)
	go hub.Run()
	notif := notifier.NewWebSocketNotifier(hub, logger)

	auth := NewAuthService(repos.User, cfg.Auth, cache, logger)
	user := NewUserService(repos.User, logger)

	standings := NewStandingsService()
	registration := NewRegistrationService(repos, notif, logger)
	ritual := NewRitualService(repos, notif, clk, cache, logger)
	round := NewRoundService(repos, standings, ritual, notif, clk, logger)
	game := NewGameService(repos, standings, round, notif, clk, logger)
	event := NewEventService(repos, notif, clk, logger)

	return &Container{
		Auth:         auth,
		User:         user,
		Event:        event,
		Registration: registration,
		Round:        round,
		Game:         game,
		Ritual:       ritual,
		Standings:    standings,
		Cache:        cache,
		Notifier:     notif,
		Hub:          hub,
		Repos:        repos,
	}
}

// Common errors used across services
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
