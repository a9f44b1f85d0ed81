package standing

import (
	"sort"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
)

// regulationMargin is the smallest goal margin counted as a regulation win.
// One-goal wins are treated as overtime or shootout results.
const regulationMargin = 2

// Compute builds the ordered standings for teams from completed games.
// Team goals per game come from goals; a game without stat rows is a 0-0 tie.
// Games involving a team outside teams are ignored.
func Compute(teams []team.Team, games []game.Game, goals gamestat.TeamGoals, rules season.Rules) []TeamStanding {
	rules = rules.Normalize()

	rows := make([]TeamStanding, 0, len(teams))
	index := make(map[string]int, len(teams))
	for _, t := range teams {
		if _, exists := index[t.ID]; exists {
			continue
		}
		index[t.ID] = len(rows)
		rows = append(rows, TeamStanding{
			TeamID:           t.ID,
			TeamName:         t.Name,
			TeamAbbreviation: t.Abbreviation,
		})
	}

	counted := make([]game.Game, 0, len(games))
	for _, g := range games {
		if !game.IsCompleted(g.Status) {
			continue
		}
		homeIdx, okHome := index[g.HomeTeamID]
		awayIdx, okAway := index[g.AwayTeamID]
		if !okHome || !okAway {
			continue
		}
		counted = append(counted, g)

		home := &rows[homeIdx]
		away := &rows[awayIdx]
		homeGoals := goals.For(g.ID, g.HomeTeamID)
		awayGoals := goals.For(g.ID, g.AwayTeamID)

		home.GamesPlayed++
		away.GamesPlayed++
		home.GoalsFor += homeGoals
		home.GoalsAgainst += awayGoals
		away.GoalsFor += awayGoals
		away.GoalsAgainst += homeGoals

		switch {
		case homeGoals > awayGoals:
			recordWin(home, away, homeGoals-awayGoals, rules.Points)
		case awayGoals > homeGoals:
			recordWin(away, home, awayGoals-homeGoals, rules.Points)
		default:
			home.OvertimeLosses++
			home.Points += rules.Points.OTLoss
			away.OvertimeLosses++
			away.Points += rules.Points.OTLoss
		}
	}

	for i := range rows {
		rows[i].GoalDifferential = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	// Head-to-head credits the side with the better season differential in
	// each game played, not the pairwise record between the two teams.
	for _, g := range counted {
		home := &rows[index[g.HomeTeamID]]
		away := &rows[index[g.AwayTeamID]]
		switch {
		case home.GoalDifferential > away.GoalDifferential:
			home.HeadToHeadWins++
		case away.GoalDifferential > home.GoalDifferential:
			away.HeadToHeadWins++
		}
	}

	Sort(rows, rules.Tiebreakers)
	return rows
}

func recordWin(winner, loser *TeamStanding, margin int, points season.PointRules) {
	winner.Wins++
	winner.Points += points.Win
	loser.Losses++
	loser.Points += points.Loss
	if margin >= regulationMargin {
		winner.RegulationWins++
	}
}

// Sort orders rows by tiebreakers, each descending. Rows tied on every key
// keep their relative order.
func Sort(rows []TeamStanding, tiebreakers []season.TiebreakerKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range tiebreakers {
			left, right := tiebreakerValue(rows[i], key), tiebreakerValue(rows[j], key)
			if left != right {
				return left > right
			}
		}
		return false
	})
}

func tiebreakerValue(row TeamStanding, key season.TiebreakerKey) int {
	switch key {
	case season.TiebreakerPoints:
		return row.Points
	case season.TiebreakerRegulationWins:
		return row.RegulationWins
	case season.TiebreakerGoalDifferential:
		return row.GoalDifferential
	case season.TiebreakerHeadToHead:
		return row.HeadToHeadWins
	case season.TiebreakerGoalsFor:
		return row.GoalsFor
	default:
		return 0
	}
}
