package models

import (
	"testing"
)

func TestFormatTeamSize(t *testing.T) {
	tests := []struct {
		format Format
		want   int
	}{
		{FormatSingles, 1},
		{Format2v2, 2},
		{FormatTeams3, 3},
		{FormatTeams5, 5},
		{FormatTeams8, 8},
	}
	for _, tt := range tests {
		if got := tt.format.TeamSize(); got != tt.want {
			t.Errorf("%s.TeamSize() = %d, want %d", tt.format, got, tt.want)
		}
	}
}

func TestFormatIsTeam(t *testing.T) {
	if FormatSingles.IsTeam() {
		t.Error("singles is not a team format")
	}
	for _, f := range []Format{Format2v2, FormatTeams3, FormatTeams5, FormatTeams8} {
		if !f.IsTeam() {
			t.Errorf("%s should be a team format", f)
		}
	}
}

func TestFormatPhaseCount(t *testing.T) {
	tests := []struct {
		format Format
		want   int
	}{
		{FormatSingles, 0},
		{Format2v2, 0},
		{FormatTeams3, 1},
		{FormatTeams5, 2},
		{FormatTeams8, 3},
	}
	for _, tt := range tests {
		if got := tt.format.PhaseCount(); got != tt.want {
			t.Errorf("%s.PhaseCount() = %d, want %d", tt.format, got, tt.want)
		}
	}
}

func TestFormatIndividualPoints(t *testing.T) {
	if got := Format2v2.IndividualPoints(); got != 1000 {
		t.Errorf("2v2.IndividualPoints() = %d, want 1000 (half of a 2000pt standard event)", got)
	}
	for _, f := range []Format{FormatSingles, FormatTeams3, FormatTeams5, FormatTeams8} {
		if got := f.IndividualPoints(); got != 2000 {
			t.Errorf("%s.IndividualPoints() = %d, want 2000", f, got)
		}
	}
}

func TestRoundCountFor(t *testing.T) {
	if got := RoundCountFor(32); got != 5 {
		t.Errorf("RoundCountFor(32) = %d, want 5", got)
	}
	if got := RoundCountFor(16); got != 3 {
		t.Errorf("RoundCountFor(16) = %d, want 3", got)
	}
	if got := RoundCountFor(64); got != 3 {
		t.Errorf("RoundCountFor(64) = %d, want 3", got)
	}
}

func TestStringListScanValueRoundTrip(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`["1","2","3"]`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(list) != 3 || list[0] != "1" || list[2] != "3" {
		t.Fatalf("Scan produced %v, want [1 2 3]", list)
	}

	val, err := list.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	var roundTripped StringList
	if err := roundTripped.Scan(val.([]byte)); err != nil {
		t.Fatalf("Scan of Value() output failed: %v", err)
	}
	if len(roundTripped) != len(list) {
		t.Fatalf("round trip changed length: got %v, want %v", roundTripped, list)
	}
}

func TestStringListScanNilIsNoop(t *testing.T) {
	var list StringList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) should not error: %v", err)
	}
	if list != nil {
		t.Fatalf("Scan(nil) should leave the list nil, got %v", list)
	}
}

func TestMissionListScanValueRoundTrip(t *testing.T) {
	missions := MissionList{{Code: "crucible", Name: "Crucible of Battle", Layouts: []string{"1", "2"}}}
	val, err := missions.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	var roundTripped MissionList
	if err := roundTripped.Scan(val.([]byte)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(roundTripped) != 1 || roundTripped[0].Code != "crucible" {
		t.Fatalf("round trip = %+v, want one mission coded crucible", roundTripped)
	}
}
