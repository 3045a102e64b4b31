package services

import (
	"testing"

	"tournament-planner/internal/models"
)

func ptr(i int) *int { return &i }

func TestOutcomeForP1AndP2Perspectives(t *testing.T) {
	g := &models.Game{P1VP: ptr(20), P2VP: ptr(5)}

	p1Outcome := outcomeFor(g, true)
	if !p1Outcome.Win || p1Outcome.OwnVP != 20 || p1Outcome.OppVP != 5 {
		t.Fatalf("outcomeFor(p1) = %+v, want a win with own=20 opp=5", p1Outcome)
	}

	p2Outcome := outcomeFor(g, false)
	if p2Outcome.Win || p2Outcome.OwnVP != 5 || p2Outcome.OppVP != 20 {
		t.Fatalf("outcomeFor(p2) = %+v, want a loss with own=5 opp=20", p2Outcome)
	}
}

func TestOutcomeForCarriesBye(t *testing.T) {
	g := &models.Game{P1VP: ptr(20), P2VP: ptr(0), IsBye: true}
	o := outcomeFor(g, true)
	if !o.Bye {
		t.Fatal("outcomeFor must carry the game's IsBye flag through")
	}
}

func TestGameIsDraw(t *testing.T) {
	draw := &models.Game{P1VP: ptr(10), P2VP: ptr(10)}
	if !draw.IsDraw() {
		t.Fatal("equal VPs must report IsDraw()=true")
	}
	notDraw := &models.Game{P1VP: ptr(10), P2VP: ptr(9)}
	if notDraw.IsDraw() {
		t.Fatal("unequal VPs must report IsDraw()=false")
	}
	pending := &models.Game{}
	if pending.IsDraw() {
		t.Fatal("a game with no VPs submitted must not report IsDraw()=true")
	}
}
