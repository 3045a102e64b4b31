package clock

import (
	"testing"
	"time"
)

func TestFakeNowStartsAtGivenTime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	if !f.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", f.Now(), start)
	}
}

func TestFakeAtInThePastFiresImmediately(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	timer := f.At(start.Add(-time.Hour))
	select {
	case <-timer.C():
	default:
		t.Fatal("a timer scheduled in the past must fire immediately")
	}
}

func TestFakeAdvanceFiresDueTimers(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	timer := f.After(24 * time.Hour)

	select {
	case <-timer.C():
		t.Fatal("timer must not fire before the clock advances")
	default:
	}

	f.Advance(23 * time.Hour)
	select {
	case <-timer.C():
		t.Fatal("timer must not fire before its full duration has elapsed")
	default:
	}

	f.Advance(time.Hour)
	select {
	case <-timer.C():
	default:
		t.Fatal("timer must fire once the clock reaches its deadline")
	}
}

func TestFakeTimerStopPreventsFiring(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	timer := f.After(time.Hour)
	if !timer.Stop() {
		t.Fatal("Stop() on a pending timer should return true")
	}
	f.Advance(2 * time.Hour)
	select {
	case <-timer.C():
		t.Fatal("a stopped timer must never fire")
	default:
	}
}

func TestFakeTimerStopAfterFireReturnsFalse(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	timer := f.After(time.Hour)
	f.Advance(time.Hour)
	if timer.Stop() {
		t.Fatal("Stop() on an already-fired timer must return false")
	}
}
