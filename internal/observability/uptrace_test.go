package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/football-performance/internal/config"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "football-performance-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EmptyDSN(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  "}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected nil server when pprof is disabled")
	}
	if err := StopPprofServer(srv, logging.NewNop(), 0); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestUptraceOptions(t *testing.T) {
	opts := uptraceOptions(config.Config{UptraceDSN: "https://token@api.uptrace.dev/1", ServiceName: "svc"})
	if len(opts) != 5 {
		t.Fatalf("unexpected option count: got=%d want=5", len(opts))
	}
}

func TestPyroscopeConfig(t *testing.T) {
	cfg := config.Config{
		PyroscopeAppName:       "football-performance-api",
		PyroscopeServerAddress: "http://localhost:4040",
		AppEnv:                 config.EnvStage,
		ServiceName:            "football-performance-api",
		ServiceVersion:         "1.2.0",
	}

	got := pyroscopeConfig(cfg, logging.NewNop())
	if got.ApplicationName != cfg.PyroscopeAppName || got.ServerAddress != cfg.PyroscopeServerAddress {
		t.Fatalf("unexpected pyroscope target: %+v", got)
	}
	if got.Tags["env"] != config.EnvStage || got.Tags["version"] != "1.2.0" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
	if got.Logger == nil {
		t.Fatalf("expected logger adapter")
	}
	got.Logger.Infof("upload %d profiles", 3)
}

func TestPprofHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	pprofHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}
