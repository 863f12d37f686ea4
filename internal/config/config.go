// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the cloud and model settings shared by the cardsim binaries.
// The simulation core never reads these; only the persistence and profile
// authoring glue does.
type Config struct {
	GCPProject      string `env:"CARDSIM_GCP_PROJECT"`
	BigQueryDataset string `env:"CARDSIM_BQ_DATASET" envDefault:"cardsim"`
	BigQueryTable   string `env:"CARDSIM_BQ_TABLE" envDefault:"simulated_transactions"`
	GCSBucket       string `env:"CARDSIM_GCS_BUCKET"`
	GeminiModel     string `env:"CARDSIM_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
