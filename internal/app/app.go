package app

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/riskibarqy/football-performance/internal/config"
	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	"github.com/riskibarqy/football-performance/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-performance/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-performance/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-performance/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/football-performance/internal/platform/cache"
	idgen "github.com/riskibarqy/football-performance/internal/platform/id"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/platform/resilience"
	"github.com/riskibarqy/football-performance/internal/platform/table"
	"github.com/riskibarqy/football-performance/internal/usecase"
)

// NewHTTPServer wires repositories, services and the router. The returned
// cleanup closes the database pool, when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	mappings, err := LoadColumnMappings(cfg.ColumnAliasesFile)
	if err != nil {
		return nil, nil, err
	}

	teamMatchRepo, cleanup, err := newTeamMatchRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var longCache *basecache.Store[table.Table]
	if cfg.CacheEnabled {
		longCache = basecache.NewStore[table.Table](cfg.CacheTTL)
	}

	metricsSvc := usecase.NewTeamMetricsService(usecase.TeamMetricsConfig{
		ColumnMappings: mappings,
		RequirePrefix:  cfg.RequirePrefix,
	}, logger)
	datasetSvc := usecase.NewDatasetService(
		memory.NewDatasetRepository(nil),
		idgen.NewPrefixedGenerator("ds_"),
		metricsSvc,
		longCache,
		logger,
	)
	batchSvc := usecase.NewBatchService(datasetSvc, cfg.BatchMaxWorkers, logger)
	exportSvc := usecase.NewExportService(datasetSvc, teamMatchRepo, logger)

	handler := httpapi.NewHandler(metricsSvc, datasetSvc, batchSvc, exportSvc, int64(cfg.UploadMaxBytes), logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, httpapi.RateLimitConfig{
		Requests: cfg.UploadRateLimitRequests,
		Window:   cfg.UploadRateLimitWindow,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

// LoadColumnMappings returns the default column mappings merged with the
// aliases in path. An empty path yields the defaults.
func LoadColumnMappings(path string) ([]matchstats.ColumnMapping, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return matchstats.DefaultColumnMappings(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open column aliases file: %w", err)
	}
	defer f.Close()

	mappings, err := matchstats.LoadColumnMappings(f)
	if err != nil {
		return nil, fmt.Errorf("load column aliases from %s: %w", path, err)
	}
	return mappings, nil
}

func newTeamMatchRepository(cfg config.Config, logger *logging.Logger) (matchstats.Repository, func() error, error) {
	var (
		repo    matchstats.Repository
		cleanup = func() error { return nil }
	)

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("team match storage", "backend", "memory")
		repo = memory.NewTeamMatchRepository()
	} else {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup = db.Close

		var breaker *resilience.CircuitBreaker
		if cfg.DBCircuitEnabled {
			breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
				FailureThreshold: cfg.DBCircuitFailureCount,
				OpenTimeout:      cfg.DBCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
				OnStateChange: func(from, to resilience.CircuitState) {
					logger.Warn("database circuit breaker state changed", "from", from, "to", to)
				},
			})
		}

		logger.Info("team match storage",
			"backend", "postgres",
			"database", dbNameFromURL(cfg.DBURL),
			"circuit_breaker", breaker != nil,
		)
		repo = postgres.NewTeamMatchRepository(db, breaker)
	}

	if cfg.CacheEnabled {
		repo = cache.NewTeamMatchRepository(repo, basecache.NewStore[[]matchstats.StoredTeamMatch](cfg.CacheTTL))
	}
	return repo, cleanup, nil
}
