// Package converter turns one raw neutron-probe file into the long-form
// calibrated measurement table.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/rawfile"
	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/reference"
	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/table"
	"github.com/gdevine/face-neutronprobe-hiev/internal/config"
	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
	"github.com/gdevine/face-neutronprobe-hiev/internal/observability"
)

// Converter runs the per-file pipeline: read raw, reshape, join reference
// tables, calibrate, derive water contents. Reference tables are reloaded on
// every call; nothing persists across files.
type Converter struct {
	calibrationPath string
	bulkDensityPath string
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// New creates a Converter using the configured reference-table paths.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Converter {
	return &Converter{
		calibrationPath: cfg.CalibrationFile,
		bulkDensityPath: cfg.BulkDensityFile,
		logger:          logger,
		metrics:         metrics,
	}
}

// Convert reads and transforms one raw file into long-form measurements.
func (c *Converter) Convert(ctx context.Context, rawPath string) ([]domain.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	raw, err := rawfile.Read(rawPath)
	if err != nil {
		c.metrics.ConvertErrors.Inc()
		return nil, err
	}

	samples, err := reference.LoadCalibrationSamples(c.calibrationPath)
	if err != nil {
		c.metrics.ConvertErrors.Inc()
		return nil, err
	}
	model, err := domain.FitCalibration(samples)
	if err != nil {
		c.metrics.ConvertErrors.Inc()
		return nil, err
	}

	bulkDensity, err := reference.LoadBulkDensity(c.bulkDensityPath)
	if err != nil {
		c.metrics.ConvertErrors.Inc()
		return nil, err
	}

	ms := domain.Reshape(raw.Date, raw.Readings)
	ms = domain.ApplyCalibration(ms, model)
	ms = domain.DeriveWater(ms, bulkDensity)

	c.metrics.FilesConverted.Inc()
	c.metrics.ConvertDuration.Observe(time.Since(start).Seconds())
	c.logger.Info("converted raw file",
		"file", filepath.Base(rawPath),
		"date", raw.Date.Format("2006-01-02"),
		"probes", len(raw.Readings),
		"rows", len(ms),
	)
	return ms, nil
}

// ConvertToFile converts rawPath and persists the table to outPath. An empty
// outPath writes beside the input with the extension replaced by ".csv".
func (c *Converter) ConvertToFile(ctx context.Context, rawPath, outPath string) error {
	ms, err := c.Convert(ctx, rawPath)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = OutputPath(rawPath)
	}
	if err := table.WriteFile(outPath, ms); err != nil {
		c.metrics.ConvertErrors.Inc()
		return fmt.Errorf("persist %s: %w", outPath, err)
	}
	c.metrics.RowsWritten.Add(float64(len(ms)))
	c.logger.Info("wrote output table", "file", filepath.Base(outPath), "rows", len(ms))
	return nil
}

// OutputPath returns the default output location for a raw file: same
// directory and basename, extension replaced by ".csv".
func OutputPath(rawPath string) string {
	return strings.TrimSuffix(rawPath, filepath.Ext(rawPath)) + ".csv"
}
