package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Eligible-voter reconciliation strategies. "auto" detects the scrape
// generation from the column labels present in the snapshot.
const (
	EligibleAuto = "auto"
	EligibleMax  = "max"
	EligibleSum  = "sum"
)

type Config struct {
	DBPath      string
	SnapshotDir string
	OutputDir   string

	LogLevel         string
	EligibleStrategy string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:      getEnv("DB_PATH", filepath.Join(cwd, "data", "elections.db")),
		SnapshotDir: getEnv("SNAPSHOT_DIR", filepath.Join(cwd, "data", "snapshots")),
		OutputDir:   getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EligibleStrategy: getEnv("ELIGIBLE_STRATEGY", EligibleAuto),
	}

	switch cfg.EligibleStrategy {
	case EligibleAuto, EligibleMax, EligibleSum:
	default:
		return Config{}, fmt.Errorf("invalid ELIGIBLE_STRATEGY: %s", cfg.EligibleStrategy)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
