// internal/corerr/corerr.go
// Closed error-kind taxonomy shared by every domain service.

package corerr

import "fmt"

// Kind is one of the stable error kinds the core can raise. Kinds are never
// added to ad hoc inside a service — new behavior picks an existing kind or
// this file grows.
type Kind string

const (
	NotFound           Kind = "not_found"
	PermissionDenied   Kind = "permission_denied"
	InvalidState       Kind = "invalid_state"
	RosterFull         Kind = "roster_full"
	ListsLocked        Kind = "lists_locked"
	AlreadySubmitted   Kind = "already_submitted"
	RitualTimeout      Kind = "ritual_timeout"
	NoEligiblePlayers  Kind = "no_eligible_players"
	FormatUnsupported  Kind = "format_unsupported"
	DuplicateTeamName  Kind = "duplicate_team_name"
	BelowMinimumRoster Kind = "below_minimum_roster"
	RoundIncomplete    Kind = "round_incomplete"
	IllegalAdjustment  Kind = "illegal_adjustment"
	StoreConflict      Kind = "store_conflict"
)

// Error carries a kind, a short user-facing reason, and an optional
// underlying cause. No stack trace ever leaves the core.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a kinded error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs a kinded error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	ce, ok := err.(*Error)
	return ok && ce.Kind == kind
}

// InvalidStatef builds an InvalidState error naming the wanted and actual
// states, matching the core spec's InvalidState(want,have) shape.
func InvalidStatef(want, have string) *Error {
	return New(InvalidState, fmt.Sprintf("expected state %q, have %q", want, have))
}
