package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/usecase"
)

const defaultUploadMaxBytes = 10 << 20

type Handler struct {
	metricsService *usecase.TeamMetricsService
	datasetService *usecase.DatasetService
	batchService   *usecase.BatchService
	exportService  *usecase.ExportService
	uploadMaxBytes int64
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	metricsService *usecase.TeamMetricsService,
	datasetService *usecase.DatasetService,
	batchService *usecase.BatchService,
	exportService *usecase.ExportService,
	uploadMaxBytes int64,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = defaultUploadMaxBytes
	}

	return &Handler{
		metricsService: metricsService,
		datasetService: datasetService,
		batchService:   batchService,
		exportService:  exportService,
		uploadMaxBytes: uploadMaxBytes,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// limitedBody caps the request body at the configured upload size.
func (h *Handler) limitedBody(w http.ResponseWriter, r *http.Request) io.Reader {
	return http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
}

func wantsCSV(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "text/csv")
}

type datasetQuery struct {
	Season string `validate:"omitempty,max=64"`
	Team   string `validate:"omitempty,max=128"`
}

func readDatasetQuery(r *http.Request) datasetQuery {
	q := r.URL.Query()
	return datasetQuery{
		Season: strings.TrimSpace(q.Get("season")),
		Team:   strings.TrimSpace(q.Get("team")),
	}
}

type uploadDatasetQuery struct {
	Name string `validate:"required,max=128"`
}

type batchReshapeRequest struct {
	DatasetIDs []string `json:"dataset_ids" validate:"required,min=1,max=100,dive,required"`
	Season     string   `json:"season" validate:"omitempty,max=64"`
	MaxWorkers int      `json:"max_workers" validate:"omitempty,min=1,max=64"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
