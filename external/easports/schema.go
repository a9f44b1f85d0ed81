package easports

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// flexInt decodes a JSON number or a numeric string. Null, empty strings and
// non-numeric strings decode to zero.
type flexInt int64

func (v *flexInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*v = 0
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("decode numeric string %s: %w", text, err)
		}
		text = strings.TrimSpace(unquoted)
		if text == "" {
			*v = 0
			return nil
		}
	}

	if parsed, err := strconv.ParseInt(text, 10, 64); err == nil {
		*v = flexInt(parsed)
		return nil
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*v = 0
		return nil
	}
	*v = flexInt(int64(parsed))
	return nil
}

func (v flexInt) Int() int {
	return int(v)
}

// flexString decodes a JSON string or number into its string form.
type flexString string

func (v *flexString) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*v = ""
		return nil
	}
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(string(raw))
		if err != nil {
			return fmt.Errorf("decode string %s: %w", raw, err)
		}
		*v = flexString(strings.TrimSpace(unquoted))
		return nil
	}
	*v = flexString(string(raw))
	return nil
}

// Match is one entry of the clubs/matches response.
type Match struct {
	MatchID   flexString                        `json:"matchId"`
	Timestamp flexInt                           `json:"timestamp"`
	Clubs     map[string]Club                   `json:"clubs"`
	Players   map[string]map[string]PlayerStats `json:"players"`
}

type Club struct {
	Score   flexInt     `json:"score"`
	Details ClubDetails `json:"details"`
}

type ClubDetails struct {
	Name   string  `json:"name"`
	ClubID flexInt `json:"clubId"`
}

// PlayerStats is a player's line inside a match. Saves is only present for
// goalies.
type PlayerStats struct {
	Goals          flexInt  `json:"goals"`
	Assists        flexInt  `json:"assists"`
	Points         flexInt  `json:"points"`
	Shots          flexInt  `json:"shots"`
	TimeOnIce      flexInt  `json:"timeOnIce"`
	PenaltyMinutes flexInt  `json:"penaltyMinutes"`
	PlusMinus      flexInt  `json:"plusMinus"`
	Saves          *flexInt `json:"saves"`
	GoalsAgainst   *flexInt `json:"goalsAgainst"`
	PlayerName     string   `json:"playername"`
}
