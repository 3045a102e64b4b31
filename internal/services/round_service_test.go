package services

import (
	"testing"

	"tournament-planner/internal/models"
)

func TestRoomOrZero(t *testing.T) {
	if got := roomOrZero(nil); got != 0 {
		t.Errorf("roomOrZero(nil) = %d, want 0", got)
	}
	room := 7
	if got := roomOrZero(&room); got != 7 {
		t.Errorf("roomOrZero(&7) = %d, want 7", got)
	}
}

func TestActiveNonSubFiltersSubsAndInactive(t *testing.T) {
	members := []models.TeamMember{
		{PlayerID: "p1", Role: models.RolePlayer, Active: true},
		{PlayerID: "sub", Role: models.RoleSubstitute, Active: true},
		{PlayerID: "inactive", Role: models.RolePlayer, Active: false},
		{PlayerID: "captain", Role: models.RoleCaptain, Active: true},
	}
	out := activeNonSub(members)
	if len(out) != 2 {
		t.Fatalf("activeNonSub returned %d members, want 2", len(out))
	}
	if out[0].PlayerID != "p1" || out[1].PlayerID != "captain" {
		t.Fatalf("activeNonSub = %+v, want [p1 captain] in roster order", out)
	}
}
