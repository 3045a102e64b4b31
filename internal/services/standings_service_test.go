package services

import (
	"testing"

	"tournament-planner/internal/models"
)

func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		name       string
		ownVP      int
		oppVP      int
		isBye      bool
		wantWin    bool
		wantDraw   bool
		wantBye    bool
	}{
		{"clear win", 20, 5, false, true, false, false},
		{"clear loss", 5, 20, false, false, false, false},
		{"draw", 10, 10, false, false, true, false},
		{"bye always counts as win", 20, 0, true, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := ClassifyOutcome(tt.ownVP, tt.oppVP, tt.isBye)
			if o.Win != tt.wantWin || o.Draw != tt.wantDraw || o.Bye != tt.wantBye {
				t.Errorf("ClassifyOutcome(%d,%d,%v) = %+v, want win=%v draw=%v bye=%v",
					tt.ownVP, tt.oppVP, tt.isBye, o, tt.wantWin, tt.wantDraw, tt.wantBye)
			}
		})
	}
}

func TestStandingsApplyReverseRoundTrips(t *testing.T) {
	svc := NewStandingsService()
	outcomes := []GameOutcome{
		ClassifyOutcome(20, 5, false),
		ClassifyOutcome(10, 10, false),
		ClassifyOutcome(3, 17, false),
		ClassifyOutcome(20, 0, true),
	}

	standing := &models.Standing{EventID: "evt_1", PlayerID: "p1"}
	for _, o := range outcomes {
		svc.Apply(standing, o)
	}
	if standing.Wins != 2 || standing.Draws != 1 || standing.Losses != 1 {
		t.Fatalf("after applying 4 outcomes: got W=%d D=%d L=%d, want W=2 D=1 L=1",
			standing.Wins, standing.Draws, standing.Losses)
	}

	// Reversing every outcome in reverse order must zero the standing out.
	for i := len(outcomes) - 1; i >= 0; i-- {
		svc.Reverse(standing, outcomes[i])
	}
	zero := models.Standing{EventID: "evt_1", PlayerID: "p1"}
	if *standing != zero {
		t.Fatalf("standing after full reverse = %+v, want zero value %+v", *standing, zero)
	}
}

func TestWTCGamePoints(t *testing.T) {
	tests := []struct {
		winnerVP, loserVP   int
		wantWinner, wantLoser int
	}{
		{10, 10, 10, 10},
		{11, 10, 11, 9},
		{20, 0, 20, 0},
		{100, 0, 20, 0}, // diff saturates at the top bracket
	}
	for _, tt := range tests {
		wgp, lgp := WTCGamePoints(tt.winnerVP, tt.loserVP)
		if wgp != tt.wantWinner || lgp != tt.wantLoser {
			t.Errorf("WTCGamePoints(%d,%d) = (%d,%d), want (%d,%d)",
				tt.winnerVP, tt.loserVP, wgp, lgp, tt.wantWinner, tt.wantLoser)
		}
		if wgp+lgp != 20 {
			t.Errorf("WTCGamePoints(%d,%d) sums to %d, want 20", tt.winnerVP, tt.loserVP, wgp+lgp)
		}
	}
}

func TestClassifyNTL(t *testing.T) {
	maxGP := 160 // team of 8
	tests := []struct {
		gp   int
		want TeamResult
	}{
		{0, TeamLoss},
		{74, TeamLoss},  // just under the draw threshold (75/160 * 160 = 75)
		{75, TeamDraw},
		{85, TeamDraw},  // just under the win threshold (86/160 * 160 = 86)
		{86, TeamWin},
		{160, TeamWin},
	}
	for _, tt := range tests {
		if got := ClassifyNTL(tt.gp, maxGP); got != tt.want {
			t.Errorf("ClassifyNTL(%d, %d) = %v, want %v", tt.gp, maxGP, got, tt.want)
		}
	}
}

func TestClassifyNTLZeroMaxGP(t *testing.T) {
	if got := ClassifyNTL(50, 0); got != TeamLoss {
		t.Errorf("ClassifyNTL with maxGP=0 = %v, want TeamLoss", got)
	}
}

func TestTeamStandingApplyReverseRoundTrips(t *testing.T) {
	svc := NewStandingsService()
	standing := &models.Standing{EventID: "evt_1", PlayerID: models.TeamStandingID("team_a")}

	svc.ApplyTeam(standing, TeamWin, 140, 45)
	if standing.TeamWins != 1 || standing.TeamPoints != 2 || standing.GamePoints != 140 || standing.VPDiff != 45 {
		t.Fatalf("after ApplyTeam(win): %+v", standing)
	}

	svc.ReverseTeam(standing, TeamWin, 140, 45)
	zero := models.Standing{EventID: "evt_1", PlayerID: models.TeamStandingID("team_a")}
	if *standing != zero {
		t.Fatalf("standing after ReverseTeam = %+v, want zero value %+v", *standing, zero)
	}
}

func TestByeWalkoverGP(t *testing.T) {
	if got := ByeWalkoverGP(8); got != 80 {
		t.Errorf("ByeWalkoverGP(8) = %d, want 80", got)
	}
	if got := ByeWalkoverGP(5); got != 50 {
		t.Errorf("ByeWalkoverGP(5) = %d, want 50", got)
	}
}
