package services

import (
	"testing"
	"time"
)

func TestBuildKLScheduleThreeRoundsIsOneDay(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	slots := buildKLSchedule(start, 3)

	if len(slots) != 7 {
		t.Fatalf("3-round schedule has %d slots, want 7 (briefing+3 rounds+2 breaks+results)", len(slots))
	}
	if slots[0].Label != "Briefing" || slots[len(slots)-1].Label != "Results" {
		t.Fatalf("schedule must start with Briefing and end with Results, got first=%s last=%s",
			slots[0].Label, slots[len(slots)-1].Label)
	}
	for _, s := range slots {
		if s.Start.Location().String() != "Asia/Kuala_Lumpur" {
			t.Fatalf("slot %q must be scheduled in Asia/Kuala_Lumpur, got %s", s.Label, s.Start.Location())
		}
	}
}

func TestBuildKLScheduleFiveRoundsIsTwoDays(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	slots := buildKLSchedule(start, 5)

	var day2Briefing bool
	for _, s := range slots {
		if s.Label == "Briefing (Day 2)" {
			day2Briefing = true
			if s.Start.Day() != start.Day()+1 {
				t.Fatalf("day 2 briefing must fall on the day after start_date, got %v", s.Start)
			}
		}
	}
	if !day2Briefing {
		t.Fatal("5-round schedule must include a day 2 briefing slot")
	}
	if slots[len(slots)-1].Label != "Results" {
		t.Fatalf("5-round schedule must end with Results, got %s", slots[len(slots)-1].Label)
	}
}

func TestBuildKLScheduleRoundsDoNotOverlap(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	slots := buildKLSchedule(start, 3)
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].End) {
			t.Fatalf("slot %q starts before slot %q ends", slots[i].Label, slots[i-1].Label)
		}
	}
}
