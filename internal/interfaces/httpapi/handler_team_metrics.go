package httpapi

import (
	"net/http"
)

// ReshapeTeamMetrics turns a wide CSV body into long team-match rows, as JSON
// or as CSV when the client accepts text/csv.
func (h *Handler) ReshapeTeamMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReshapeTeamMetrics")
	defer span.End()

	query := readDatasetQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	wide, err := h.metricsService.Decode(ctx, h.limitedBody(w, r))
	if err != nil {
		h.logger.WarnContext(ctx, "decode wide csv failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	long, err := h.metricsService.PrepareSeason(ctx, wide, query.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "reshape team metrics failed", "season", query.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	if wantsCSV(r) {
		writeCSV(ctx, w, http.StatusOK, long)
		return
	}

	matches, err := h.metricsService.Matches(ctx, long)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamMatchesToDTO(matches))
}
