package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-performance/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	uploadLimit RateLimitConfig,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerTeamMetricsRoutes(mux, handler)
	registerDatasetRoutes(mux, handler, uploadLimit)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}
