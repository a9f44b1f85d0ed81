package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

type createStatRequest struct {
	GameID         string `json:"game_id" validate:"required"`
	PlayerID       string `json:"player_id" validate:"required"`
	TeamID         string `json:"team_id" validate:"required"`
	Goals          int    `json:"goals"`
	Assists        int    `json:"assists"`
	Shots          int    `json:"shots"`
	TimeOnIce      int    `json:"time_on_ice"`
	PenaltyMinutes int    `json:"penalty_minutes"`
	PlusMinus      int    `json:"plus_minus"`
	Saves          *int   `json:"saves"`
	GoalsAgainst   *int   `json:"goals_against"`
}

func (h *Handler) ListStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStats")
	defer span.End()

	query := r.URL.Query()
	page, err := optionalIntQuery(query.Get("page"), "page")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := optionalIntQuery(query.Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.statService.List(ctx, gamestat.Filter{
		GameID:   query.Get("game_id"),
		PlayerID: query.Get("player_id"),
		TeamID:   query.Get("team_id"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) CreateStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateStat")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createStatRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stat, err := h.statService.Create(ctx, principal, gamestat.GameStat{
		GameID:         req.GameID,
		PlayerID:       req.PlayerID,
		TeamID:         req.TeamID,
		Goals:          req.Goals,
		Assists:        req.Assists,
		Shots:          req.Shots,
		TimeOnIce:      req.TimeOnIce,
		PenaltyMinutes: req.PenaltyMinutes,
		PlusMinus:      req.PlusMinus,
		Saves:          req.Saves,
		GoalsAgainst:   req.GoalsAgainst,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create stat failed", "user_id", principal.UserID, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stat)
}

// optionalIntQuery parses a positive integer query value; empty means 0.
func optionalIntQuery(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
