package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Data", cfg.DataDir)
	assert.Equal(t, "Renamed", cfg.RenamedDir)
	assert.Equal(t, "Backups", cfg.BackupsDir)
	assert.Equal(t, "np_calibration.csv", cfg.CalibrationFile)
	assert.Equal(t, "bulk_density.csv", cfg.BulkDensityFile)
	assert.Equal(t, 31, cfg.ExperimentID)
	assert.Equal(t, 60*time.Second, cfg.HievTimeout)
	assert.Equal(t, uint64(3), cfg.UploadMaxRetries)
	assert.Equal(t, "np-upload-receipts", cfg.KafkaReceiptTopic)
	assert.Empty(t, cfg.MetricsAddr)
	assert.False(t, cfg.ReceiptsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/np/incoming")
	t.Setenv("HIEV_API_KEY", "secret")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("UPLOAD_MAX_RETRIES", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/np/incoming", cfg.DataDir)
	assert.Equal(t, "secret", cfg.HievAPIKey)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.ReceiptsEnabled())
	assert.Zero(t, cfg.UploadMaxRetries)
}

func TestLoadInvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
}

func TestValidateUpload(t *testing.T) {
	t.Run("missing API key", func(t *testing.T) {
		cfg := &Config{HievBaseURL: "https://hiev.example.org"}
		require.Error(t, cfg.ValidateUpload())
	})

	t.Run("complete", func(t *testing.T) {
		cfg := &Config{HievAPIKey: "secret", HievBaseURL: "https://hiev.example.org"}
		require.NoError(t, cfg.ValidateUpload())
	})

	t.Run("brokers without topic", func(t *testing.T) {
		cfg := &Config{
			HievAPIKey:   "secret",
			HievBaseURL:  "https://hiev.example.org",
			KafkaBrokers: []string{"broker:9092"},
		}
		require.Error(t, cfg.ValidateUpload())
	})
}
