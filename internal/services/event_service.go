// internal/services/event_service.go
// Event Controller: creates events with the auto-sized round count, fixed
// KL-timezone schedule, and computed cutoff/deadline dates; drives the
// interest/registration/lock-lists/finish lifecycle.
//
// Grounded on the original build_kl_schedule's slot table (briefing, three
// or five rounds split across one or two days, meal/toilet breaks,
// results window), restated here as Go value construction instead of a
// port of the Python datetime arithmetic.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/clock"
	"tournament-planner/internal/corerr"
	"tournament-planner/internal/models"
	"tournament-planner/internal/notifier"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/utils"
)

// klLocation is the fixed Asia/Kuala_Lumpur schedule timezone every event's
// day-of schedule is built in.
var klLocation = time.FixedZone("Asia/Kuala_Lumpur", 8*60*60)

// EventService drives the event lifecycle.
type EventService struct {
	repos    *repositories.Container
	notifier notifier.Notifier
	clock    clock.Clock
	logger   *log.Logger
}

// NewEventService creates an event controller.
func NewEventService(repos *repositories.Container, notif notifier.Notifier, clk clock.Clock, logger *log.Logger) *EventService {
	return &EventService{repos: repos, notifier: notif, clock: clk, logger: logger}
}

// CreateEvent computes round_count, rules_cutoff, reg_deadline, and the
// fixed schedule, and creates the event in the announced state. Only
// singles is accepted at creation; other formats are deferred.
func (s *EventService) CreateEvent(ctx context.Context, name string, pointsLimit, maxPlayers int, startDate time.Time, format models.Format, createdBy string) (*models.Event, error) {
	if format != models.FormatSingles {
		return nil, corerr.New(corerr.FormatUnsupported, "only singles events may be created; other formats are deferred")
	}

	roundCount := models.RoundCountFor(maxPlayers)
	endDate := startDate
	if roundCount == 5 {
		endDate = startDate.AddDate(0, 0, 1)
	}
	rulesCutoff := startDate.AddDate(0, 0, -7)
	regDeadline := startDate.AddDate(0, 0, -2)

	now := s.clock.Now()
	event := &models.Event{
		ID:               utils.NewID("evt"),
		Name:             name,
		Format:           format,
		PointsLimit:      pointsLimit,
		IndividualPoints: format.IndividualPoints(),
		MaxPlayers:       maxPlayers,
		RoundCount:       roundCount,
		RoundsPerDay:     3,
		StartDate:        startDate,
		EndDate:          endDate,
		RulesCutoff:      rulesCutoff,
		RegDeadline:      regDeadline,
		State:            models.EventAnnounced,
		ScoringMode:      models.ScoringNTL,
		CreatedBy:        createdBy,
		ScheduleSlots:    buildKLSchedule(startDate, roundCount),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	if err := s.repos.Event.Create(ctx, tx, event); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return event, nil
}

// buildKLSchedule returns the event's fixed day schedule in the KL
// timezone: a 1-day table for a 3-round event, a 2-day table for 5 rounds.
func buildKLSchedule(startDate time.Time, roundCount int) models.ScheduleSlotList {
	d1 := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, klLocation)
	kl := func(d time.Time, h, m int) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, klLocation)
	}

	slots := models.ScheduleSlotList{
		{Label: "Briefing", Start: kl(d1, 8, 30), End: kl(d1, 9, 0)},
		{Label: "Round 1", Start: kl(d1, 9, 0), End: kl(d1, 12, 0)},
		{Label: "Lunch Break", Start: kl(d1, 12, 0), End: kl(d1, 13, 0)},
		{Label: "Round 2", Start: kl(d1, 13, 0), End: kl(d1, 16, 0)},
		{Label: "Toilet Break", Start: kl(d1, 16, 0), End: kl(d1, 16, 15)},
		{Label: "Round 3", Start: kl(d1, 16, 15), End: kl(d1, 19, 15)},
	}
	if roundCount == 3 {
		slots = append(slots, models.ScheduleSlot{Label: "Results", Start: kl(d1, 19, 15), End: kl(d1, 19, 30)})
		return slots
	}

	d2 := d1.AddDate(0, 0, 1)
	slots = append(slots,
		models.ScheduleSlot{Label: "Briefing (Day 2)", Start: kl(d2, 8, 30), End: kl(d2, 9, 0)},
		models.ScheduleSlot{Label: "Round 4", Start: kl(d2, 9, 0), End: kl(d2, 12, 0)},
		models.ScheduleSlot{Label: "Lunch Break", Start: kl(d2, 12, 0), End: kl(d2, 13, 0)},
		models.ScheduleSlot{Label: "Round 5", Start: kl(d2, 13, 0), End: kl(d2, 16, 0)},
		models.ScheduleSlot{Label: "Results", Start: kl(d2, 16, 0), End: kl(d2, 16, 15)},
	)
	return slots
}

// OpenInterest transitions an announced event into interest, prompting
// every watching principal.
func (s *EventService) OpenInterest(ctx context.Context, eventID string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ok, err := s.repos.Event.CASState(ctx, tx, eventID, models.EventAnnounced, models.EventInterest)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.EventAnnounced), "other")
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.NotifyInterestPrompt(ctx, eventID, "")
	return nil
}

// OpenRegistration transitions an event from interest into registration,
// the point at which SubmitList becomes accepted.
func (s *EventService) OpenRegistration(ctx context.Context, eventID string) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ok, err := s.repos.Event.CASState(ctx, tx, eventID, models.EventInterest, models.EventRegistration)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.EventInterest), "other")
	}
	return tx.Commit()
}

// LockLists publishes every approved registration's list and transitions
// the event to registration-closed (in_progress-ready). Invoked by the TO
// or by the deadline scheduler once reg_deadline passes.
func (s *EventService) LockLists(ctx context.Context, event *models.Event) error {
	approved, err := s.repos.Registration.ListByEvent(ctx, event.ID, models.RegApproved)
	if err != nil {
		return err
	}
	for _, reg := range approved {
		s.notifier.NotifyListReviewCard(ctx, event.ID, reg.PlayerID, "locked")
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	ok, err := s.repos.Event.CASState(ctx, tx, event.ID, models.EventRegistration, models.EventInProgress)
	if err != nil {
		return err
	}
	if !ok {
		return corerr.InvalidStatef(string(models.EventRegistration), "other")
	}
	return tx.Commit()
}

// FinishEvent requires every round be complete and emits final standings.
func (s *EventService) FinishEvent(ctx context.Context, event *models.Event) ([]*models.Standing, error) {
	rounds, err := s.allRounds(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range rounds {
		if r.State != models.RoundComplete {
			return nil, corerr.New(corerr.RoundIncomplete, "every round must be complete before finishing the event")
		}
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	ok, err := s.repos.Event.CASState(ctx, tx, event.ID, models.EventInProgress, models.EventComplete)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, corerr.InvalidStatef(string(models.EventInProgress), "other")
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	standings, err := s.repos.Standing.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyStandingsCard(ctx, event.ID)

	if err := s.submitExternalRanking(ctx, event.ID); err != nil {
		s.logger.Printf("finish_event: external ranking submission for event %s: %v", event.ID, err)
	}
	return standings, nil
}

// submitExternalRanking bulk-submits every complete, non-bye game's result
// to the external ranking system once an event finishes. A delivery failure
// here is logged, not fatal — the event has already transitioned to
// complete and standings are already final.
func (s *EventService) submitExternalRanking(ctx context.Context, eventID string) error {
	games, err := s.repos.Game.ListByEvent(ctx, eventID)
	if err != nil {
		return err
	}

	var entries []notifier.ExternalRankingEntry
	for _, g := range games {
		if g.IsBye || g.State != models.GameComplete || g.P2 == nil || g.P1VP == nil || g.P2VP == nil {
			continue
		}
		entries = append(entries, notifier.ExternalRankingEntry{
			GameID: g.ID,
			P1:     g.P1,
			P2:     *g.P2,
			P1VP:   *g.P1VP,
			P2VP:   *g.P2VP,
		})
	}
	if len(entries) == 0 {
		return nil
	}
	return s.notifier.NotifyExternalRankingSubmission(ctx, eventID, entries)
}

func (s *EventService) allRounds(ctx context.Context, eventID string) ([]*models.Round, error) {
	rounds, err := s.repos.Round.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, corerr.New(corerr.RoundIncomplete, "event has no rounds yet")
	}
	return rounds, nil
}
