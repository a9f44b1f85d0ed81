package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

type importMatchRequest struct {
	MatchID string `json:"matchId" validate:"required"`
}

type importMatchResponse struct {
	MatchID    string              `json:"matchId"`
	StatsCount int                 `json:"statsCount"`
	Stats      []gamestat.GameStat `json:"stats"`
}

type replaceClubsRequest struct {
	ClubIDs []int64 `json:"clubIds" validate:"required,min=1,dive,gt=0"`
}

type addClubRequest struct {
	ClubID int64 `json:"clubId" validate:"required,gt=0"`
}

type clubsResponse struct {
	ClubIDs []int64 `json:"clubIds"`
}

func (h *Handler) GetProviderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProviderStatus")
	defer span.End()

	status, err := h.providerService.Status(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, status)
}

func (h *Handler) ListProviderMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProviderMatches")
	defer span.End()

	matches, err := h.providerService.ListMatches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list provider matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if matches == nil {
		matches = []usecase.ExternalMatch{}
	}

	writeSuccess(ctx, w, http.StatusOK, matches)
}

func (h *Handler) ImportProviderMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportProviderMatch")
	defer span.End()

	var req importMatchRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.providerService.ImportMatch(ctx, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "import provider match failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importMatchResponse{
		MatchID:    req.MatchID,
		StatsCount: len(stats),
		Stats:      stats,
	})
}

func (h *Handler) ListProviderClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProviderClubs")
	defer span.End()

	ids, err := h.providerService.ClubIDs()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubsResponse{ClubIDs: ids})
}

func (h *Handler) ReplaceProviderClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceProviderClubs")
	defer span.End()

	var req replaceClubsRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ids, err := h.providerService.SetClubIDs(req.ClubIDs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.logger.InfoContext(ctx, "provider clubs replaced", "club_ids", ids)

	writeSuccess(ctx, w, http.StatusOK, clubsResponse{ClubIDs: ids})
}

func (h *Handler) AddProviderClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddProviderClub")
	defer span.End()

	var req addClubRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ids, err := h.providerService.AddClubID(req.ClubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubsResponse{ClubIDs: ids})
}

func (h *Handler) RemoveProviderClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveProviderClub")
	defer span.End()

	clubID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("clubID")), 10, 64)
	if err != nil || clubID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: club id must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	ids, err := h.providerService.RemoveClubID(clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubsResponse{ClubIDs: ids})
}
