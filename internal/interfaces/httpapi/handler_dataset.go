package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadDataset")
	defer span.End()

	query := uploadDatasetQuery{Name: strings.TrimSpace(r.URL.Query().Get("name"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.datasetService.Upload(ctx, query.Name, h.limitedBody(w, r))
	if err != nil {
		h.logger.WarnContext(ctx, "upload dataset failed", "name", query.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, datasetToDTO(item))
}

func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDatasets")
	defer span.End()

	items, err := h.datasetService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list datasets failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]datasetDTO, 0, len(items))
	for _, item := range items {
		out = append(out, datasetToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDataset", datasetAttr(datasetID))
	defer span.End()

	item, err := h.datasetService.Get(ctx, datasetID)
	if err != nil {
		h.logger.WarnContext(ctx, "get dataset failed", "dataset_id", datasetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(item))
}

func (h *Handler) ListDatasetTeamMetrics(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDatasetTeamMetrics", datasetAttr(datasetID))
	defer span.End()

	query := readDatasetQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	if wantsCSV(r) && query.Team == "" {
		long, err := h.datasetService.Long(ctx, datasetID, query.Season)
		if err != nil {
			h.logger.WarnContext(ctx, "reshape dataset failed", "dataset_id", datasetID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeCSV(ctx, w, http.StatusOK, long)
		return
	}

	matches, err := h.datasetService.TeamMatches(ctx, datasetID, query.Season, query.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "list dataset team metrics failed", "dataset_id", datasetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamMatchesToDTO(matches))
}

func (h *Handler) ListDatasetSeasons(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDatasetSeasons", datasetAttr(datasetID))
	defer span.End()

	seasons, err := h.datasetService.Seasons(ctx, datasetID)
	if err != nil {
		h.logger.WarnContext(ctx, "list dataset seasons failed", "dataset_id", datasetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasons)
}

func (h *Handler) ListDatasetTeams(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDatasetTeams", datasetAttr(datasetID))
	defer span.End()

	query := readDatasetQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.datasetService.Teams(ctx, datasetID, query.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "list dataset teams failed", "dataset_id", datasetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}

func (h *Handler) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSummary", datasetAttr(datasetID))
	defer span.End()

	query := readDatasetQuery(r)
	query.Team = strings.TrimSpace(r.PathValue("team"))
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.datasetService.TeamSummary(ctx, datasetID, query.Season, query.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "get team summary failed", "dataset_id", datasetID, "team", query.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSummaryToDTO(summary))
}

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings", datasetAttr(datasetID))
	defer span.End()

	query := readDatasetQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	rankings, err := h.datasetService.Rankings(ctx, datasetID, query.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "list rankings failed", "dataset_id", datasetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRankingsToDTO(rankings))
}
