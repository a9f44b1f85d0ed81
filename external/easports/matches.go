package easports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/usecase"
	"github.com/sourcegraph/conc/iter"
)

const allMatchesCacheKey = "easports:matches:all"

type clubFetch struct {
	clubID  int64
	matches []Match
	err     error
}

// FetchAllMatches returns every match of the tracked clubs, in club order,
// with a match seen by several clubs reported once. A club whose history
// cannot be read is skipped; the call fails only when every club fails.
func (c *Client) FetchAllMatches(ctx context.Context) ([]usecase.ExternalMatch, error) {
	matches, err := c.allMatches(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, toExternalMatch(m))
	}
	return out, nil
}

// GetGameStats returns the normalized stat lines of matchID.
func (c *Client) GetGameStats(ctx context.Context, matchID string) ([]gamestat.GameStat, error) {
	matchID = strings.TrimSpace(matchID)
	matches, err := c.allMatches(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range matches {
		if string(m.MatchID) == matchID {
			return NormalizeMatch(m), nil
		}
	}
	return nil, fmt.Errorf("%w: match_id=%s", ErrMatchNotFound, matchID)
}

// GetPlayerStats returns every line of playerID across tracked matches.
func (c *Client) GetPlayerStats(ctx context.Context, playerID string) ([]gamestat.GameStat, error) {
	return c.filterStats(ctx, func(s gamestat.GameStat) bool { return s.PlayerID == playerID })
}

// GetTeamStats returns every line recorded for the club teamID.
func (c *Client) GetTeamStats(ctx context.Context, teamID string) ([]gamestat.GameStat, error) {
	return c.filterStats(ctx, func(s gamestat.GameStat) bool { return s.TeamID == teamID })
}

func (c *Client) filterStats(ctx context.Context, keep func(gamestat.GameStat) bool) ([]gamestat.GameStat, error) {
	matches, err := c.allMatches(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]gamestat.GameStat, 0)
	for _, m := range matches {
		for _, stat := range NormalizeMatch(m) {
			if keep(stat) {
				out = append(out, stat)
			}
		}
	}
	return out, nil
}

func (c *Client) allMatches(ctx context.Context) ([]Match, error) {
	if c.matches == nil {
		return c.loadAllMatches(ctx)
	}

	value, err := c.matches.GetOrLoad(ctx, allMatchesCacheKey, func(ctx context.Context) (any, error) {
		return c.loadAllMatches(ctx)
	})
	if err != nil {
		return nil, err
	}
	matches, ok := value.([]Match)
	if !ok {
		return nil, fmt.Errorf("unexpected cached matches type %T", value)
	}
	return matches, nil
}

func (c *Client) loadAllMatches(ctx context.Context) ([]Match, error) {
	clubIDs := c.ClubIDs()
	if len(clubIDs) == 0 {
		return []Match{}, nil
	}

	mapper := iter.Mapper[int64, clubFetch]{MaxGoroutines: c.maxConcurrency}
	results := mapper.Map(clubIDs, func(clubID *int64) clubFetch {
		matches, err := c.FetchClubMatches(ctx, *clubID)
		return clubFetch{clubID: *clubID, matches: matches, err: err}
	})

	seen := make(map[string]struct{}, 64)
	out := make([]Match, 0, 64)
	var errs []error
	for _, result := range results {
		if result.err != nil {
			c.logger.WarnContext(ctx, "skip club after failed match fetch",
				"club_id", result.clubID,
				"error", result.err,
			)
			errs = append(errs, result.err)
			continue
		}
		for _, m := range result.matches {
			key := string(m.MatchID)
			if key != "" {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			out = append(out, m)
		}
	}

	if len(errs) == len(results) {
		return nil, fmt.Errorf("fetch matches for all %d clubs failed: %w", len(results), errors.Join(errs...))
	}
	return out, nil
}

func (c *Client) invalidateMatches() {
	if c.matches != nil {
		c.matches.Delete(context.Background(), allMatchesCacheKey)
	}
}
