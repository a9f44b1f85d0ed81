package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/standing"
)

type standingsQuery struct {
	SeasonID string `validate:"required"`
	LeagueID string
}

type standingsResponse struct {
	SeasonID  string                  `json:"season_id"`
	LeagueID  string                  `json:"league_id"`
	Standings []standing.TeamStanding `json:"standings"`
	Rules     season.Rules            `json:"rules"`
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	query := standingsQuery{
		SeasonID: strings.TrimSpace(r.URL.Query().Get("season_id")),
		LeagueID: strings.TrimSpace(r.URL.Query().Get("league_id")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.standingService.ComputeStandings(ctx, query.SeasonID, query.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute standings failed", "season_id", query.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	standings := table.Standings
	if standings == nil {
		standings = []standing.TeamStanding{}
	}
	writeSuccess(ctx, w, http.StatusOK, standingsResponse{
		SeasonID:  table.SeasonID,
		LeagueID:  table.LeagueID,
		Standings: standings,
		Rules:     table.Rules,
	})
}
