package easports

import (
	"sort"
	"strconv"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

// NormalizeMatch converts the players block of m into stat lines, ordered by
// club id then player id. Points are recomputed from goals and assists.
func NormalizeMatch(m Match) []gamestat.GameStat {
	matchID := string(m.MatchID)
	out := make([]gamestat.GameStat, 0, 12)

	for _, clubID := range sortedKeys(m.Players) {
		players := m.Players[clubID]
		for _, playerID := range sortedKeys(players) {
			player := players[playerID]
			stat := gamestat.GameStat{
				GameID:         matchID,
				PlayerID:       playerID,
				TeamID:         clubID,
				Goals:          player.Goals.Int(),
				Assists:        player.Assists.Int(),
				Shots:          player.Shots.Int(),
				TimeOnIce:      player.TimeOnIce.Int(),
				PenaltyMinutes: player.PenaltyMinutes.Int(),
				PlusMinus:      player.PlusMinus.Int(),
				Source:         gamestat.SourceEASports,
			}
			if player.Saves != nil {
				saves := player.Saves.Int()
				goalsAgainst := 0
				if player.GoalsAgainst != nil {
					goalsAgainst = player.GoalsAgainst.Int()
				}
				stat.Saves = &saves
				stat.GoalsAgainst = &goalsAgainst
			}
			stat.Recompute()
			out = append(out, stat)
		}
	}

	return out
}

func toExternalMatch(m Match) usecase.ExternalMatch {
	clubs := make([]usecase.ExternalMatchClub, 0, len(m.Clubs))
	for _, key := range sortedKeys(m.Clubs) {
		club := m.Clubs[key]
		clubID, _ := strconv.ParseInt(key, 10, 64)
		clubs = append(clubs, usecase.ExternalMatchClub{
			ClubID: clubID,
			Name:   club.Details.Name,
			Goals:  club.Score.Int(),
		})
	}

	var playedAt time.Time
	if m.Timestamp > 0 {
		playedAt = time.Unix(int64(m.Timestamp), 0).UTC()
	}

	return usecase.ExternalMatch{
		MatchID:  string(m.MatchID),
		PlayedAt: playedAt,
		Clubs:    clubs,
		Stats:    NormalizeMatch(m),
	}
}

// sortedKeys orders numeric keys numerically and everything else after them
// lexically.
func sortedKeys[V any](items map[string]V) []string {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		left, leftErr := strconv.ParseInt(keys[i], 10, 64)
		right, rightErr := strconv.ParseInt(keys[j], 10, 64)
		switch {
		case leftErr == nil && rightErr == nil:
			if left != right {
				return left < right
			}
			return keys[i] < keys[j]
		case leftErr == nil:
			return true
		case rightErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
