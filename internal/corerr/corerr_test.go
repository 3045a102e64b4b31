package corerr

import (
	"errors"
	"testing"
)

func TestNewErrorMessage(t *testing.T) {
	err := New(NotFound, "event not found")
	if err.Error() != "not_found: event not found" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "not_found: event not found")
	}
}

func TestWrapIncludesUnderlyingCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(StoreConflict, "update failed", cause)
	if err.Unwrap() != cause {
		t.Fatal("Unwrap() must return the wrapped cause")
	}
	want := "store_conflict: update failed: connection reset"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := New(RosterFull, "no room")
	if !Is(err, RosterFull) {
		t.Fatal("Is should match the error's own kind")
	}
	if Is(err, NotFound) {
		t.Fatal("Is should not match a different kind")
	}
	if Is(errors.New("plain error"), NotFound) {
		t.Fatal("Is should return false for a non-*Error")
	}
}

func TestInvalidStatef(t *testing.T) {
	err := InvalidStatef("pairing", "playing")
	if err.Kind != InvalidState {
		t.Fatalf("InvalidStatef kind = %v, want InvalidState", err.Kind)
	}
	want := `invalid_state: expected state "pairing", have "playing"`
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorUnwrapNilWhenNoCause(t *testing.T) {
	err := New(NotFound, "missing")
	if err.Unwrap() != nil {
		t.Fatal("Unwrap() should be nil when no cause was given")
	}
}
