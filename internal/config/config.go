// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings for the converter and the uploader. Values come
// from environment variables with the defaults below; the HIEv credential is
// read from HIEV_API_KEY only and is passed explicitly to the client, never
// read ambiently.
type Config struct {
	// Working directories, relative to the invocation directory unless absolute.
	DataDir    string `envconfig:"DATA_DIR" default:"Data"`
	RenamedDir string `envconfig:"RENAMED_DIR" default:"Renamed"`
	BackupsDir string `envconfig:"BACKUPS_DIR" default:"Backups"`

	// Reference tables the converter joins against.
	CalibrationFile string `envconfig:"CALIBRATION_FILE" default:"np_calibration.csv"`
	BulkDensityFile string `envconfig:"BULK_DENSITY_FILE" default:"bulk_density.csv"`

	// HIEv upload settings.
	HievBaseURL      string        `envconfig:"HIEV_BASE_URL" default:"https://hiev.westernsydney.edu.au"`
	HievAPIKey       string        `envconfig:"HIEV_API_KEY"`
	HievTimeout      time.Duration `envconfig:"HIEV_TIMEOUT" default:"60s"`
	ExperimentID     int           `envconfig:"HIEV_EXPERIMENT_ID" default:"31"`
	UploadMaxRetries uint64        `envconfig:"UPLOAD_MAX_RETRIES" default:"3"`

	// Optional upload-receipt publishing; enabled when brokers are set.
	KafkaBrokers      []string `envconfig:"KAFKA_BROKERS"`
	KafkaReceiptTopic string   `envconfig:"KAFKA_RECEIPT_TOPIC" default:"np-upload-receipts"`

	// Optional metrics endpoint for the duration of a run; empty disables.
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// ReceiptsEnabled reports whether upload receipts should be published.
func (c *Config) ReceiptsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from the environment, applying defaults where
// unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	return &cfg, nil
}

// ValidateUpload checks the settings only the upload path needs.
func (c *Config) ValidateUpload() error {
	if c.HievAPIKey == "" {
		return errors.New("HIEV_API_KEY is required")
	}
	if c.HievBaseURL == "" {
		return errors.New("HIEV_BASE_URL is required")
	}
	if c.ReceiptsEnabled() && c.KafkaReceiptTopic == "" {
		return errors.New("KAFKA_RECEIPT_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}
