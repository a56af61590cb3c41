package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/football-performance/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewConsole(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")))
	defer func() { _ = logger.Sync() }()

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
