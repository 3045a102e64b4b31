// internal/services/standings_service.go
// Standings Aggregator — pure apply/reverse functions over value-type
// Standing structs. No Store access here; the Game/Round/Team-Round services
// load a Standing, call Apply or Reverse, and persist the result themselves.

package services

import "tournament-planner/internal/models"

// GameOutcome describes one player's side of a completed game, the unit
// Apply/Reverse consume.
type GameOutcome struct {
	OwnVP int
	OppVP int
	Win   bool
	Draw  bool
	Bye   bool
}

// ClassifyOutcome derives a player's GameOutcome from the two raw VP values
// and which side they were on. A bye is always a win, whatever its VP.
func ClassifyOutcome(ownVP, oppVP int, isBye bool) GameOutcome {
	return GameOutcome{
		OwnVP: ownVP,
		OppVP: oppVP,
		Win:   ownVP > oppVP || isBye,
		Draw:  ownVP == oppVP && !isBye,
		Bye:   isBye,
	}
}

// StandingsService exposes Apply/Reverse as the teacher-style thin wrapper
// so services can depend on an injected instance rather than free functions,
// matching the rest of the container's shape; the methods themselves are
// pure and carry no state.
type StandingsService struct{}

// NewStandingsService creates a new standings aggregator.
func NewStandingsService() *StandingsService {
	return &StandingsService{}
}

// Apply accumulates one game outcome onto a player's standing. Byes always
// count as wins; the VP averaged-bye value is passed in OwnVP/OppVP by the
// caller (OppVP is conventionally 0 for a bye).
func (s *StandingsService) Apply(standing *models.Standing, o GameOutcome) {
	if o.Bye {
		standing.HadBye = true
	}
	switch {
	case o.Draw:
		standing.Draws++
	case o.Win:
		standing.Wins++
	default:
		standing.Losses++
	}
	standing.VPTotal += o.OwnVP
	standing.VPAgainst += o.OppVP
	standing.VPDiff += o.OwnVP - o.OppVP
}

// Reverse is the exact inverse of Apply for the same outcome — used by
// game adjustment's reverse-then-reapply sequence.
func (s *StandingsService) Reverse(standing *models.Standing, o GameOutcome) {
	if o.Bye {
		standing.HadBye = false
	}
	switch {
	case o.Draw:
		standing.Draws--
	case o.Win:
		standing.Wins--
	default:
		standing.Losses--
	}
	standing.VPTotal -= o.OwnVP
	standing.VPAgainst -= o.OppVP
	standing.VPDiff -= o.OwnVP - o.OppVP
}

// wtcTable maps a winner/loser VP differential to a (winner_gp, loser_gp)
// pair summing to 20, per the published WTC scoring convention.
var wtcTable = []struct {
	minDiff  int
	winnerGP int
	loserGP  int
}{
	{0, 10, 10},
	{1, 11, 9},
	{6, 12, 8},
	{11, 13, 7},
	{16, 14, 6},
	{21, 15, 5},
	{26, 16, 4},
	{31, 17, 3},
	{36, 18, 2},
	{41, 19, 1},
	{46, 20, 0},
}

// WTCGamePoints returns the (winner_gp, loser_gp) split for a game's VP
// differential. A draw (diff=0) yields the table's 10/10 entry for both
// sides.
func WTCGamePoints(winnerVP, loserVP int) (winnerGP, loserGP int) {
	diff := winnerVP - loserVP
	if diff < 0 {
		diff = 0
	}
	winnerGP, loserGP = wtcTable[0].winnerGP, wtcTable[0].loserGP
	for _, row := range wtcTable {
		if diff >= row.minDiff {
			winnerGP, loserGP = row.winnerGP, row.loserGP
		}
	}
	return winnerGP, loserGP
}

// NTLGamePoints returns the (own_gp, opp_gp) split for a single board under
// NTL scoring: a full board is worth 20 points, split 20/0 on a decisive
// result or 10/10 on a drawn board. Unlike WTCGamePoints there is no VP
// differential scaling.
func NTLGamePoints(ownVP, oppVP int) (ownGP, oppGP int) {
	switch {
	case ownVP > oppVP:
		return 20, 0
	case ownVP < oppVP:
		return 0, 20
	default:
		return 10, 10
	}
}

// NTL thresholds: team_gp / max_gp proportional classification.
const (
	ntlWinNumerator  = 86
	ntlDrawNumerator = 75
	ntlDenominator   = 160
)

// TeamResult is a team-round's outcome for one side, win/draw/loss under
// whichever scoring mode is in force.
type TeamResult int

const (
	TeamLoss TeamResult = iota
	TeamDraw
	TeamWin
)

// ClassifyNTL applies the proportional GP threshold to decide a team's
// result for the round: gp is the team's earned game points, maxGP is
// team_size*20 (the maximum obtainable across all boards).
func ClassifyNTL(gp, maxGP int) TeamResult {
	if maxGP <= 0 {
		return TeamLoss
	}
	// gp/maxGP >= 86/160  <=>  gp*160 >= 86*maxGP
	if gp*ntlDenominator >= ntlWinNumerator*maxGP {
		return TeamWin
	}
	if gp*ntlDenominator >= ntlDrawNumerator*maxGP {
		return TeamDraw
	}
	return TeamLoss
}

// ApplyTeam accumulates a team-round outcome onto a team's synthetic
// standing row: team W/L/D, team_points (2/1/0), accumulated game_points,
// and vp_diff carried at the team standing just like a player's.
func (s *StandingsService) ApplyTeam(standing *models.Standing, result TeamResult, gp, vpDiff int) {
	switch result {
	case TeamWin:
		standing.TeamWins++
		standing.TeamPoints += 2
	case TeamDraw:
		standing.TeamDraws++
		standing.TeamPoints += 1
	case TeamLoss:
		standing.TeamLosses++
	}
	standing.GamePoints += gp
	standing.VPDiff += vpDiff
}

// ReverseTeam is the exact inverse of ApplyTeam.
func (s *StandingsService) ReverseTeam(standing *models.Standing, result TeamResult, gp, vpDiff int) {
	switch result {
	case TeamWin:
		standing.TeamWins--
		standing.TeamPoints -= 2
	case TeamDraw:
		standing.TeamDraws--
		standing.TeamPoints -= 1
	case TeamLoss:
		standing.TeamLosses--
	}
	standing.GamePoints -= gp
	standing.VPDiff -= vpDiff
}

// ByeWalkoverGP computes the walkover game points awarded to a bye team:
// round(80 * team_size * 20 / 160), which reduces exactly to 10*team_size.
func ByeWalkoverGP(teamSize int) int {
	return 10 * teamSize
}
