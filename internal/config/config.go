package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	mb "github.com/saeidalz13/seabattle/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Config struct {
	Stage        string
	Port         string
	DatabaseURL  string
	MigrationDir string
	LogLevel     string
	Seed         int64
	Fleet        mb.Fleet

	MaxPlacementAttempts int
	MaxPlacementRestarts int
	MaxTargetRetries     int

	// Pacing between automated moves in interactive mode
	AIDelayMin time.Duration
	AIDelayMax time.Duration
}

// Load reads the environment. Outside of prod a .env file is loaded
// first when there is one.
func Load() *Config {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("failed to load .env")
		}
	}

	cfg := &Config{
		Stage:        envOrDefault("STAGE", StageDev),
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MigrationDir: envOrDefault("MIGRATION_DIR", "file://db/migration"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		Seed:         int64(intOrDefault("SEED", 0)),

		MaxPlacementAttempts: intOrDefault("PLACEMENT_MAX_ATTEMPTS", mb.DefaultMaxPlacementAttempts),
		MaxPlacementRestarts: intOrDefault("PLACEMENT_MAX_RESTARTS", mb.DefaultMaxPlacementRestarts),
		MaxTargetRetries:     intOrDefault("TARGET_MAX_RETRIES", 0),

		AIDelayMin: time.Duration(intOrDefault("AI_DELAY_MIN_MS", 1000)) * time.Millisecond,
		AIDelayMax: time.Duration(intOrDefault("AI_DELAY_MAX_MS", 4000)) * time.Millisecond,
	}

	if cfg.Stage != StageProd && cfg.Stage != StageDev {
		log.Warn().Str("stage", cfg.Stage).Msg("stage must be either dev or prod; using dev")
		cfg.Stage = StageDev
	}
	if cfg.AIDelayMax < cfg.AIDelayMin {
		cfg.AIDelayMax = cfg.AIDelayMin
	}

	cfg.Fleet = mb.DefaultFleet
	if raw := os.Getenv("FLEET"); raw != "" {
		fleet, err := mb.ParseFleet(raw)
		if err != nil {
			log.Warn().Err(err).Str("fleet", raw).Msg("invalid FLEET; using default")
		} else {
			cfg.Fleet = fleet
		}
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid number; using default")
		return fallback
	}
	return n
}
