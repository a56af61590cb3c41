// Command metrics reshapes wide match CSV files into team-match tables.
//
// Usage:
//
//	metrics reshape matches.csv --format csv
//	metrics reshape 2023.csv 2024.csv --season 2024/2025 --format json
//	metrics detect matches.csv
//	metrics summary matches.csv --team Arsenal
//	metrics rankings matches.csv --season 2024/2025
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
