package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/football-performance/internal/usecase"
)

func (h *Handler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportDataset", datasetAttr(datasetID))
	defer span.End()

	query := readDatasetQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.exportService.Export(ctx, datasetID, query.Season)
	if err != nil {
		h.logger.ErrorContext(ctx, "export dataset failed", "dataset_id", datasetID, "season", query.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListExportedTeamMatches(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListExportedTeamMatches", datasetAttr(datasetID))
	defer span.End()

	query := readDatasetQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.exportService.Exported(ctx, datasetID, query.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "list exported team matches failed", "dataset_id", datasetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, storedTeamMatchesToDTO(rows))
}

func (h *Handler) RunBatchReshape(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBatchReshape")
	defer span.End()

	var req batchReshapeRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.batchService.Reshape(ctx, usecase.BatchReshapeInput{
		DatasetIDs: req.DatasetIDs,
		Season:     req.Season,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "batch reshape failed", "datasets", len(req.DatasetIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
