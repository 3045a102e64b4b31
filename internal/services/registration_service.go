// internal/services/registration_service.go
// Registration Controller — Chop/Reserve/Confirmed waitlist triage and the
// FIFO reserve-promotion invariant, atomic with every drop.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/corerr"
	"tournament-planner/internal/models"
	"tournament-planner/internal/notifier"
	"tournament-planner/internal/repositories"
)

// RegistrationService wraps the registration/standing repositories behind
// the teacher's service-with-injected-repos shape.
type RegistrationService struct {
	repos    *repositories.Container
	notifier notifier.Notifier
	logger   *log.Logger
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(repos *repositories.Container, notif notifier.Notifier, logger *log.Logger) *RegistrationService {
	return &RegistrationService{repos: repos, notifier: notif, logger: logger}
}

// SubmitInterest transitions an absent or prior-interested row to
// interested (Reserve). Idempotent. A row in any other state is left
// unchanged and the call fails with InvalidState.
func (s *RegistrationService) SubmitInterest(ctx context.Context, eventID, playerID, username string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	reg, err := s.repos.Registration.GetByID(ctx, tx, eventID, playerID)
	if err != nil {
		return err
	}
	now := time.Now()
	if reg == nil {
		reg = &models.Registration{
			EventID:     eventID,
			PlayerID:    playerID,
			Username:    username,
			State:       models.RegInterested,
			SubmittedAt: &now,
		}
	} else if reg.State != models.RegInterested {
		return corerr.InvalidStatef(string(models.RegInterested), string(reg.State))
	}

	if err := s.repos.Registration.Upsert(ctx, tx, reg); err != nil {
		return err
	}
	return tx.Commit()
}

// SubmitList upserts a registration to pending (Chop), setting the army
// list fields. Fails with ListsLocked once the event has passed
// reg_deadline or entered in_progress or later.
func (s *RegistrationService) SubmitList(ctx context.Context, event *models.Event, playerID, username, army, detachment, listText string, now time.Time) error {
	if now.After(event.RegDeadline) || event.State == models.EventInProgress || event.State == models.EventComplete {
		return corerr.New(corerr.ListsLocked, "registration lists are locked for this event")
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	reg, err := s.repos.Registration.GetByID(ctx, tx, event.ID, playerID)
	if err != nil {
		return err
	}
	if reg == nil {
		reg = &models.Registration{EventID: event.ID, PlayerID: playerID}
	}
	reg.Username = username
	reg.Army = army
	reg.Detachment = detachment
	reg.ListText = listText
	reg.State = models.RegPending
	reg.SubmittedAt = &now

	if err := s.repos.Registration.Upsert(ctx, tx, reg); err != nil {
		return err
	}
	return tx.Commit()
}

// Approve transitions pending -> approved, creates the player's Standing
// row, and enforces |approved|+1 <= max_players.
func (s *RegistrationService) Approve(ctx context.Context, eventID, playerID string, maxPlayers int) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	count, err := s.repos.Registration.CountApproved(ctx, tx, eventID)
	if err != nil {
		return err
	}
	if count+1 > maxPlayers {
		return corerr.New(corerr.RosterFull, "event roster is full")
	}

	ok, err := s.repos.Registration.CASState(ctx, tx, eventID, playerID, models.RegPending, models.RegApproved)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.RegPending), "other")
	}

	reg, err := s.repos.Registration.GetByID(ctx, tx, eventID, playerID)
	if err != nil {
		return err
	}
	now := time.Now()
	reg.ApprovedAt = &now
	if err := s.repos.Registration.Upsert(ctx, tx, reg); err != nil {
		return err
	}

	if _, err := s.repos.Standing.GetOrInit(ctx, tx, eventID, playerID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifier.NotifyListReviewCard(context.Background(), eventID, playerID, "approved")
	return nil
}

// Relegate transitions pending -> interested (Reserve). Does not promote
// anyone else.
func (s *RegistrationService) Relegate(ctx context.Context, eventID, playerID string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ok, err := s.repos.Registration.CASState(ctx, tx, eventID, playerID, models.RegPending, models.RegInterested)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.RegPending), "other")
	}
	return tx.Commit()
}

// Reject transitions any state to rejected. Per the core spec's Open
// Question resolution, reject never triggers reserve promotion.
func (s *RegistrationService) Reject(ctx context.Context, eventID, playerID, reason string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	reg, err := s.repos.Registration.GetByID(ctx, tx, eventID, playerID)
	if err != nil {
		return err
	}
	if reg == nil {
		return corerr.New(corerr.NotFound, "registration not found")
	}
	reg.State = models.RegRejected
	reg.RejectionReason = reason
	if err := s.repos.Registration.Upsert(ctx, tx, reg); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifier.NotifyListReviewCard(context.Background(), eventID, playerID, "rejected: "+reason)
	return nil
}

// Drop transitions any state to dropped. If the prior state was approved,
// the player's Standing is marked inactive (results preserved). If the
// prior state was pending or approved, Drop attempts Reserve Promotion
// atomically with the drop: the oldest-submitted interested registration is
// promoted to pending.
func (s *RegistrationService) Drop(ctx context.Context, eventID, playerID string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	reg, err := s.repos.Registration.GetByID(ctx, tx, eventID, playerID)
	if err != nil {
		return err
	}
	if reg == nil {
		return corerr.New(corerr.NotFound, "registration not found")
	}
	priorState := reg.State

	now := time.Now()
	reg.State = models.RegDropped
	reg.DroppedAt = &now
	if err := s.repos.Registration.Upsert(ctx, tx, reg); err != nil {
		return err
	}

	if priorState == models.RegApproved {
		standing, err := s.repos.Standing.GetOrInit(ctx, tx, eventID, playerID)
		if err != nil {
			return err
		}
		standing.Active = false
		if err := s.repos.Standing.Upsert(ctx, tx, standing); err != nil {
			return err
		}
	}

	var promotedPlayerID string
	if priorState == models.RegPending || priorState == models.RegApproved {
		promoted, err := s.repos.Registration.OldestInterested(ctx, tx, eventID, playerID)
		if err != nil {
			return err
		}
		if promoted != nil {
			ok, err := s.repos.Registration.CASState(ctx, tx, eventID, promoted.PlayerID, models.RegInterested, models.RegPending)
			if err != nil {
				return err
			}
			if ok {
				promotedPlayerID = promoted.PlayerID
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if promotedPlayerID != "" {
		s.notifier.NotifyListReviewCard(context.Background(), eventID, promotedPlayerID, "promoted from reserve")
	}
	return nil
}

// List returns all registrations for an event, optionally filtered by
// state, grouped for a TO's review view.
func (s *RegistrationService) List(ctx context.Context, eventID string, state models.RegistrationState) ([]*models.Registration, error) {
	return s.repos.Registration.ListByEvent(ctx, eventID, state)
}
