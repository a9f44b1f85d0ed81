package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/hockey-league/internal/usecase"
)

const defaultProcessBatchSize = 10

type enqueueStatsRequest struct {
	GameIDs  []string `json:"gameIds" validate:"required,min=1,dive,required"`
	Provider string   `json:"provider" validate:"omitempty,oneof=ea_sports manual"`
}

type enqueueStatsResponse struct {
	Message  string   `json:"message"`
	QueueIDs []string `json:"queueIds"`
}

type processQueueRequest struct {
	BatchSize *int `json:"batchSize" validate:"omitempty,min=1,max=50"`
}

type processQueueResponse struct {
	Message   string              `json:"message"`
	BatchSize int                 `json:"batchSize"`
	Result    usecase.BatchResult `json:"result"`
}

type clearQueueResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

func (h *Handler) EnqueueStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnqueueStats")
	defer span.End()

	var req enqueueStatsRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ids, err := h.queueService.Enqueue(ctx, req.GameIDs, req.Provider)
	if err != nil {
		h.logger.WarnContext(ctx, "enqueue stats failed", "games", len(req.GameIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, enqueueStatsResponse{
		Message:  fmt.Sprintf("Added %d games to stats queue", len(ids)),
		QueueIDs: ids,
	})
}

func (h *Handler) ProcessStatsQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProcessStatsQueue")
	defer span.End()

	var req processQueueRequest
	if err := decodeJSONBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	batchSize := defaultProcessBatchSize
	if req.BatchSize != nil {
		batchSize = *req.BatchSize
	}

	result, err := h.queueService.ProcessBatch(ctx, batchSize)
	if err != nil {
		h.logger.WarnContext(ctx, "process stats queue failed", "batch_size", batchSize, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, processQueueResponse{
		Message:   fmt.Sprintf("Processed %d queue items", result.Claimed),
		BatchSize: batchSize,
		Result:    result,
	})
}

func (h *Handler) GetStatsQueueStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatsQueueStatus")
	defer span.End()

	counts, err := h.queueService.Status(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get stats queue status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, counts)
}

func (h *Handler) ClearStatsQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearStatsQueue")
	defer span.End()

	deleted, err := h.queueService.ClearCompleted(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "clear stats queue failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clearQueueResponse{
		Message: fmt.Sprintf("Cleared %d completed queue items", deleted),
		Deleted: deleted,
	})
}
