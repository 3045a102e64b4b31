// internal/services/pairing_service.go
// Pairing Engine — singles and teams. Pure functions: given a ranked pool
// and the rematch history, produce this round's pairings and an optional
// bye. No Store or Clock access; the Round Controller persists the result.

package services

import (
	"sort"

	"tournament-planner/internal/models"
)

// PairHistory records every pair of ids that have already faced each other
// in the event, keyed by the unordered pair.
type PairHistory map[[2]string]bool

// HistoryKey builds the canonical lookup key for a pair, independent of
// argument order.
func HistoryKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// Record marks a and b as having played each other.
func (h PairHistory) Record(a, b string) { h[HistoryKey(a, b)] = true }

// Played reports whether a and b have already played.
func (h PairHistory) Played(a, b string) bool { return h[HistoryKey(a, b)] }

// Pairing is one produced matchup; Room is nil until room assignment runs.
type Pairing struct {
	A, B string
	Room *int
}

// RankedPlayer is the pairing engine's view of one player, already carrying
// enough of the Standing to rank and select a bye.
type RankedPlayer struct {
	PlayerID string
	Wins     int
	VPDiff   int
	HadBye   bool
}

// RankSingles sorts players by (wins DESC, vp_diff DESC), stable.
func RankSingles(players []RankedPlayer) []RankedPlayer {
	out := make([]RankedPlayer, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].VPDiff > out[j].VPDiff
	})
	return out
}

// PairSingles runs the front-to-back rematch-avoidance algorithm over an
// already-ranked pool, selecting a bye first if the pool is odd.
func PairSingles(ranked []RankedPlayer, history PairHistory) (pairings []Pairing, bye *RankedPlayer) {
	pool := make([]RankedPlayer, len(ranked))
	copy(pool, ranked)

	if len(pool)%2 == 1 {
		idx := selectByeIndex(pool)
		b := pool[idx]
		bye = &b
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	for len(pool) > 0 {
		a := pool[0]
		pool = pool[1:]

		matchIdx := -1
		for i, candidate := range pool {
			if !history.Played(a.PlayerID, candidate.PlayerID) {
				matchIdx = i
				break
			}
		}
		if matchIdx == -1 {
			matchIdx = 0 // forced rematch: next player regardless
		}

		b := pool[matchIdx]
		pool = append(pool[:matchIdx], pool[matchIdx+1:]...)

		pairings = append(pairings, Pairing{A: a.PlayerID, B: b.PlayerID})
	}

	return pairings, bye
}

// selectByeIndex returns the index of the lowest-ranked player (pool is
// already rank-ordered, so this is the last index) with had_bye=false; if
// every player has had a bye, it falls back to the lowest-ranked overall.
func selectByeIndex(pool []RankedPlayer) int {
	for i := len(pool) - 1; i >= 0; i-- {
		if !pool[i].HadBye {
			return i
		}
	}
	return len(pool) - 1
}

// AssignRooms assigns ascending room ids to pairings in order; rooms beyond
// the known room count are left nil.
func AssignRooms(pairings []Pairing, roomIDs []int) []Pairing {
	sorted := append([]int(nil), roomIDs...)
	sort.Ints(sorted)
	out := make([]Pairing, len(pairings))
	copy(out, pairings)
	for i := range out {
		if i < len(sorted) {
			room := sorted[i]
			out[i].Room = &room
		}
	}
	return out
}

// RankedTeam is the teams pairing engine's view of one team's standing.
type RankedTeam struct {
	TeamID     string
	TeamPoints int
	GamePoints int
	VPDiff     int
	HadBye     bool
}

// RankTeams sorts teams by (team_points DESC, game_points DESC, vp_diff
// DESC), stable.
func RankTeams(teams []RankedTeam) []RankedTeam {
	out := make([]RankedTeam, len(teams))
	copy(out, teams)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TeamPoints != out[j].TeamPoints {
			return out[i].TeamPoints > out[j].TeamPoints
		}
		if out[i].GamePoints != out[j].GamePoints {
			return out[i].GamePoints > out[j].GamePoints
		}
		return out[i].VPDiff > out[j].VPDiff
	})
	return out
}

// PairTeams runs the same front-to-back rematch-avoidance shape as
// PairSingles, over teams instead of players.
func PairTeams(ranked []RankedTeam, history PairHistory) (pairings []Pairing, bye *RankedTeam) {
	pool := make([]RankedTeam, len(ranked))
	copy(pool, ranked)

	if len(pool)%2 == 1 {
		idx := selectTeamByeIndex(pool)
		b := pool[idx]
		bye = &b
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	for len(pool) > 0 {
		a := pool[0]
		pool = pool[1:]

		matchIdx := -1
		for i, candidate := range pool {
			if !history.Played(a.TeamID, candidate.TeamID) {
				matchIdx = i
				break
			}
		}
		if matchIdx == -1 {
			matchIdx = 0
		}

		b := pool[matchIdx]
		pool = append(pool[:matchIdx], pool[matchIdx+1:]...)

		pairings = append(pairings, Pairing{A: a.TeamID, B: b.TeamID})
	}

	return pairings, bye
}

func selectTeamByeIndex(pool []RankedTeam) int {
	for i := len(pool) - 1; i >= 0; i-- {
		if !pool[i].HadBye {
			return i
		}
	}
	return len(pool) - 1
}

// Assign2v2Slots auto-assigns board slots for the 2v2 format: members of
// each team are paired in roster order, non-substitutes only, slot for
// slot. Both rosters must already be filtered to active non-substitutes and
// ordered consistently (e.g. join order) before calling this.
func Assign2v2Slots(teamA, teamB []models.TeamMember) []models.TeamPairing {
	n := len(teamA)
	if len(teamB) < n {
		n = len(teamB)
	}
	out := make([]models.TeamPairing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.TeamPairing{
			Slot:           i + 1,
			DefenderPlayer: teamA[i].PlayerID,
			DefenderTeam:   teamA[i].TeamID,
			AttackerPlayer: teamB[i].PlayerID,
			AttackerTeam:   teamB[i].TeamID,
		})
	}
	return out
}
