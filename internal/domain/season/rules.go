package season

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

// TiebreakerKey names one standings comparison, applied in configured order.
type TiebreakerKey string

const (
	TiebreakerPoints           TiebreakerKey = "points"
	TiebreakerRegulationWins   TiebreakerKey = "regulationWins"
	TiebreakerGoalDifferential TiebreakerKey = "goalDifferential"
	TiebreakerHeadToHead       TiebreakerKey = "headToHead"
	TiebreakerGoalsFor         TiebreakerKey = "goalsFor"
)

func (k TiebreakerKey) Valid() bool {
	switch k {
	case TiebreakerPoints, TiebreakerRegulationWins, TiebreakerGoalDifferential, TiebreakerHeadToHead, TiebreakerGoalsFor:
		return true
	default:
		return false
	}
}

// PointRules are the standings points awarded per game outcome.
type PointRules struct {
	Win    int `json:"win"`
	OTLoss int `json:"otLoss"`
	Loss   int `json:"loss"`
}

type Rules struct {
	Points      PointRules      `json:"points"`
	Tiebreakers []TiebreakerKey `json:"tiebreakers"`
}

func DefaultRules() Rules {
	return Rules{
		Points: PointRules{Win: 2, OTLoss: 1, Loss: 0},
		Tiebreakers: []TiebreakerKey{
			TiebreakerPoints,
			TiebreakerRegulationWins,
			TiebreakerGoalDifferential,
			TiebreakerHeadToHead,
			TiebreakerGoalsFor,
		},
	}
}

// Normalize replaces unusable parts of r with defaults. Unknown and repeated
// tiebreaker keys are dropped.
func (r Rules) Normalize() Rules {
	defaults := DefaultRules()

	out := Rules{Points: r.Points}
	if !r.Points.usable() {
		out.Points = defaults.Points
	}

	seen := make(map[TiebreakerKey]struct{}, len(r.Tiebreakers))
	for _, key := range r.Tiebreakers {
		key = TiebreakerKey(strings.TrimSpace(string(key)))
		if !key.Valid() {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.Tiebreakers = append(out.Tiebreakers, key)
	}
	if len(out.Tiebreakers) == 0 {
		out.Tiebreakers = defaults.Tiebreakers
	}

	return out
}

func (p PointRules) usable() bool {
	if p.Win < 0 || p.OTLoss < 0 || p.Loss < 0 {
		return false
	}
	return p != PointRules{}
}

type rulesDocument struct {
	Points      *PointRules `json:"points"`
	Tiebreakers []string    `json:"tiebreakers"`
}

// ParseRules decodes a stored rules document. Empty or malformed documents
// yield DefaultRules; a document without points keeps the default points.
func ParseRules(raw []byte) Rules {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return DefaultRules()
	}

	var doc rulesDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return DefaultRules()
	}

	rules := Rules{}
	if doc.Points != nil {
		rules.Points = *doc.Points
	}
	for _, key := range doc.Tiebreakers {
		rules.Tiebreakers = append(rules.Tiebreakers, TiebreakerKey(key))
	}

	return rules.Normalize()
}

// MarshalRules encodes rules for storage.
func MarshalRules(r Rules) ([]byte, error) {
	return sonic.Marshal(r.Normalize())
}
