package httpapi

import (
	"net/http"
	"time"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTeamMetricsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/team-metrics/reshape", handler.ReshapeTeamMetrics)
}

func registerDatasetRoutes(mux *http.ServeMux, handler *Handler, uploadLimit RateLimitConfig) {
	mux.Handle("POST /v1/datasets", RateLimit(uploadLimit.Requests, uploadLimit.Window, http.HandlerFunc(handler.UploadDataset)))
	mux.HandleFunc("GET /v1/datasets", handler.ListDatasets)
	mux.HandleFunc("POST /v1/datasets/batch/reshape", handler.RunBatchReshape)
	mux.HandleFunc("GET /v1/datasets/{datasetID}", handler.GetDataset)
	mux.HandleFunc("GET /v1/datasets/{datasetID}/team-metrics", handler.ListDatasetTeamMetrics)
	mux.HandleFunc("GET /v1/datasets/{datasetID}/seasons", handler.ListDatasetSeasons)
	mux.HandleFunc("GET /v1/datasets/{datasetID}/teams", handler.ListDatasetTeams)
	mux.HandleFunc("GET /v1/datasets/{datasetID}/teams/{team}/summary", handler.GetTeamSummary)
	mux.HandleFunc("GET /v1/datasets/{datasetID}/rankings", handler.ListRankings)
	mux.HandleFunc("POST /v1/datasets/{datasetID}/export", handler.ExportDataset)
	mux.HandleFunc("GET /v1/datasets/{datasetID}/exported", handler.ListExportedTeamMatches)
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}
