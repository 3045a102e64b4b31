package services

import (
	"testing"

	"tournament-planner/internal/models"
)

func TestHistoryKeyOrderIndependent(t *testing.T) {
	if HistoryKey("a", "b") != HistoryKey("b", "a") {
		t.Fatal("HistoryKey must be order-independent")
	}
}

func TestPairHistoryRecordAndPlayed(t *testing.T) {
	h := PairHistory{}
	if h.Played("p1", "p2") {
		t.Fatal("fresh history should report no prior match")
	}
	h.Record("p1", "p2")
	if !h.Played("p1", "p2") || !h.Played("p2", "p1") {
		t.Fatal("Record must make Played true in both argument orders")
	}
}

func TestRankSinglesOrdersByWinsThenVPDiff(t *testing.T) {
	players := []RankedPlayer{
		{PlayerID: "low-vp", Wins: 2, VPDiff: 5},
		{PlayerID: "top", Wins: 3, VPDiff: -10},
		{PlayerID: "high-vp", Wins: 2, VPDiff: 20},
	}
	ranked := RankSingles(players)
	want := []string{"top", "high-vp", "low-vp"}
	for i, id := range want {
		if ranked[i].PlayerID != id {
			t.Fatalf("RankSingles order = %v, want %v at index %d", idsOf(ranked), want, i)
		}
	}
}

func idsOf(players []RankedPlayer) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.PlayerID
	}
	return out
}

func TestPairSinglesEvenPoolNoBye(t *testing.T) {
	ranked := []RankedPlayer{
		{PlayerID: "p1"}, {PlayerID: "p2"}, {PlayerID: "p3"}, {PlayerID: "p4"},
	}
	pairings, bye := PairSingles(ranked, PairHistory{})
	if bye != nil {
		t.Fatalf("even pool must not produce a bye, got %+v", bye)
	}
	if len(pairings) != 2 {
		t.Fatalf("expected 2 pairings from 4 players, got %d", len(pairings))
	}
}

func TestPairSinglesOddPoolAssignsBye(t *testing.T) {
	ranked := []RankedPlayer{
		{PlayerID: "p1"}, {PlayerID: "p2"}, {PlayerID: "p3"},
	}
	pairings, bye := PairSingles(ranked, PairHistory{})
	if bye == nil {
		t.Fatal("odd pool must produce a bye")
	}
	if bye.PlayerID != "p3" {
		t.Errorf("bye should go to the lowest-ranked player without a prior bye, got %s", bye.PlayerID)
	}
	if len(pairings) != 1 {
		t.Fatalf("expected 1 pairing from the remaining 2 players, got %d", len(pairings))
	}
}

func TestPairSinglesAvoidsRematchWhenPossible(t *testing.T) {
	ranked := []RankedPlayer{
		{PlayerID: "p1"}, {PlayerID: "p2"}, {PlayerID: "p3"}, {PlayerID: "p4"},
	}
	history := PairHistory{}
	history.Record("p1", "p2")

	pairings, _ := PairSingles(ranked, history)
	for _, p := range pairings {
		if history.Played(p.A, p.B) {
			t.Errorf("pairing %s vs %s is a rematch that should have been avoidable", p.A, p.B)
		}
	}
}

func TestPairSinglesForcesRematchWhenUnavoidable(t *testing.T) {
	ranked := []RankedPlayer{{PlayerID: "p1"}, {PlayerID: "p2"}}
	history := PairHistory{}
	history.Record("p1", "p2")

	pairings, bye := PairSingles(ranked, history)
	if bye != nil {
		t.Fatal("2-player pool must not produce a bye")
	}
	if len(pairings) != 1 || pairings[0].A != "p1" || pairings[0].B != "p2" {
		t.Fatalf("expected the forced rematch p1 vs p2, got %+v", pairings)
	}
}

func TestPairSinglesByeSkipsPlayersWhoAlreadyHadOne(t *testing.T) {
	ranked := []RankedPlayer{
		{PlayerID: "p1"}, {PlayerID: "p2"}, {PlayerID: "p3", HadBye: true},
	}
	_, bye := PairSingles(ranked, PairHistory{})
	if bye == nil || bye.PlayerID != "p2" {
		t.Fatalf("bye should skip p3 (already had one) and land on p2, got %+v", bye)
	}
}

func TestAssignRoomsSortsAndAssignsInOrder(t *testing.T) {
	pairings := []Pairing{{A: "p1", B: "p2"}, {A: "p3", B: "p4"}}
	out := AssignRooms(pairings, []int{5, 3})
	if out[0].Room == nil || *out[0].Room != 3 {
		t.Fatalf("first pairing should get the lowest room id (3), got %+v", out[0].Room)
	}
	if out[1].Room == nil || *out[1].Room != 5 {
		t.Fatalf("second pairing should get room 5, got %+v", out[1].Room)
	}
}

func TestAssignRoomsLeavesExcessPairingsWithoutRoom(t *testing.T) {
	pairings := []Pairing{{A: "p1", B: "p2"}, {A: "p3", B: "p4"}}
	out := AssignRooms(pairings, []int{1})
	if out[1].Room != nil {
		t.Fatalf("pairing beyond the known room count must stay nil, got %+v", out[1].Room)
	}
}

func TestRankTeamsOrdersByPointsThenGPThenVPDiff(t *testing.T) {
	teams := []RankedTeam{
		{TeamID: "b", TeamPoints: 2, GamePoints: 100, VPDiff: 0},
		{TeamID: "a", TeamPoints: 2, GamePoints: 140, VPDiff: -5},
		{TeamID: "c", TeamPoints: 0, GamePoints: 200, VPDiff: 50},
	}
	ranked := RankTeams(teams)
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if ranked[i].TeamID != id {
			t.Fatalf("RankTeams order wrong at %d: got %s, want %s", i, ranked[i].TeamID, id)
		}
	}
}

func TestPairTeamsOddPoolAssignsBye(t *testing.T) {
	teams := []RankedTeam{{TeamID: "a"}, {TeamID: "b"}, {TeamID: "c"}}
	pairings, bye := PairTeams(teams, PairHistory{})
	if bye == nil || bye.TeamID != "c" {
		t.Fatalf("odd team pool should give the bye to the lowest-ranked team, got %+v", bye)
	}
	if len(pairings) != 1 {
		t.Fatalf("expected 1 team pairing, got %d", len(pairings))
	}
}

func TestAssign2v2SlotsPairsRosterOrder(t *testing.T) {
	teamA := []models.TeamMember{
		{TeamID: "ta", PlayerID: "a1"},
		{TeamID: "ta", PlayerID: "a2"},
	}
	teamB := []models.TeamMember{
		{TeamID: "tb", PlayerID: "b1"},
		{TeamID: "tb", PlayerID: "b2"},
	}
	out := Assign2v2Slots(teamA, teamB)
	if len(out) != 2 {
		t.Fatalf("expected 2 slot pairings, got %d", len(out))
	}
	if out[0].Slot != 1 || out[0].DefenderPlayer != "a1" || out[0].AttackerPlayer != "b1" {
		t.Errorf("slot 1 wrong: %+v", out[0])
	}
	if out[1].Slot != 2 || out[1].DefenderPlayer != "a2" || out[1].AttackerPlayer != "b2" {
		t.Errorf("slot 2 wrong: %+v", out[1])
	}
}

func TestAssign2v2SlotsTruncatesToShorterRoster(t *testing.T) {
	teamA := []models.TeamMember{{TeamID: "ta", PlayerID: "a1"}, {TeamID: "ta", PlayerID: "a2"}}
	teamB := []models.TeamMember{{TeamID: "tb", PlayerID: "b1"}}
	out := Assign2v2Slots(teamA, teamB)
	if len(out) != 1 {
		t.Fatalf("expected slots truncated to the shorter roster (1), got %d", len(out))
	}
}

func TestIsReadyRequiresApprovedListsAndExactSize(t *testing.T) {
	members := []models.TeamMember{
		{PlayerID: "p1", Role: models.RolePlayer, Active: true, ListApproved: true},
		{PlayerID: "p2", Role: models.RoleCaptain, Active: true, ListApproved: true},
		{PlayerID: "sub", Role: models.RoleSubstitute, Active: true, ListApproved: true},
	}
	if !models.IsReady(members, 2) {
		t.Fatal("2 active approved non-substitutes should satisfy team_size=2")
	}
	if models.IsReady(members, 3) {
		t.Fatal("team_size=3 should not be satisfied; substitutes don't count")
	}

	membersUnapproved := []models.TeamMember{
		{PlayerID: "p1", Role: models.RolePlayer, Active: true, ListApproved: false},
		{PlayerID: "p2", Role: models.RoleCaptain, Active: true, ListApproved: true},
	}
	if models.IsReady(membersUnapproved, 2) {
		t.Fatal("a member with an unapproved list must block readiness")
	}
}
