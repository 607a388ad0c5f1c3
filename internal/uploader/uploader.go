// Package uploader sweeps the data directory and pushes each raw probe file
// and its converted L1 table to HIEv.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"

	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/hiev"
	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/rawfile"
	"github.com/gdevine/face-neutronprobe-hiev/internal/config"
	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
	"github.com/gdevine/face-neutronprobe-hiev/internal/observability"
)

// Store uploads one file with its record metadata to the remote repository.
type Store interface {
	Upload(ctx context.Context, filePath string, md hiev.Metadata) error
}

// Converter turns one raw file into a persisted long-form table.
type Converter interface {
	ConvertToFile(ctx context.Context, rawPath, outPath string) error
}

// ReceiptPublisher announces successful uploads to downstream consumers.
type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, receipt domain.UploadReceipt) error
}

// errRenamedExists marks a file skipped because an earlier run already
// staged it under the repository name.
var errRenamedExists = errors.New("file already staged in renamed folder")

// Summary reports the outcome of one sweep.
type Summary struct {
	Matched  int // files matching the naming convention
	Ignored  int // directory entries that did not match
	Skipped  int // matched files left in place (already staged)
	Uploaded int // raw+L1 pairs fully uploaded and cleaned up
	Failed   int // matched files that errored; they stay for the next run
}

// Uploader processes files strictly one at a time: a file is fully converted,
// uploaded, and cleaned up before the next one starts.
type Uploader struct {
	cfg       *config.Config
	converter Converter
	store     Store
	receipts  ReceiptPublisher // nil disables receipt publishing
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates an Uploader. Pass a nil publisher to disable receipts.
func New(cfg *config.Config, conv Converter, store Store, receipts ReceiptPublisher,
	clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Uploader {
	return &Uploader{
		cfg:       cfg,
		converter: conv,
		store:     store,
		receipts:  receipts,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run sweeps the data directory once. Per-file failures are logged and
// skipped; only a failure to read the directory itself aborts the run.
func (u *Uploader) Run(ctx context.Context) (Summary, error) {
	start := u.clock.Now()

	for _, dir := range []string{u.cfg.DataDir, u.cfg.RenamedDir, u.cfg.BackupsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(u.cfg.DataDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read data directory: %w", err)
	}

	var sum Summary
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			u.logger.Info("sweep stopping", "reason", err)
			return sum, nil
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !rawfile.MatchesNamingConvention(name) {
			u.logger.Warn("file does not match naming convention, ignoring", "file", name)
			sum.Ignored++
			continue
		}

		sum.Matched++
		u.metrics.FilesDiscovered.Inc()

		switch err := u.processFile(ctx, name); {
		case err == nil:
			sum.Uploaded++
		case errors.Is(err, errRenamedExists):
			u.logger.Warn("skipping file", "file", name, "reason", err)
			sum.Skipped++
		default:
			u.logger.Error("processing failed, file left in place", "file", name, "error", err)
			sum.Failed++
		}
	}

	u.logger.Info("sweep complete",
		"matched", sum.Matched,
		"ignored", sum.Ignored,
		"skipped", sum.Skipped,
		"uploaded", sum.Uploaded,
		"failed", sum.Failed,
		"duration", u.clock.Since(start).String(),
	)
	return sum, nil
}

// processFile carries one raw file through backup, staging, conversion,
// upload, and cleanup. Any error leaves the file in the data directory for
// the next run; only the cleanup step is destructive.
func (u *Uploader) processFile(ctx context.Context, name string) error {
	dataPath := filepath.Join(u.cfg.DataDir, name)

	date, err := domain.ParseFilenameDate(name)
	if err != nil {
		return err
	}

	if err := copyFile(dataPath, filepath.Join(u.cfg.BackupsDir, name)); err != nil {
		return fmt.Errorf("back up %s: %w", name, err)
	}
	u.logger.Info("backed up raw file", "file", name)

	rawName := RenamedName(date)
	rawPath := filepath.Join(u.cfg.RenamedDir, rawName)
	if _, err := os.Stat(rawPath); err == nil {
		return fmt.Errorf("%s: %w", rawName, errRenamedExists)
	}
	if err := copyFile(dataPath, rawPath); err != nil {
		return fmt.Errorf("stage %s: %w", rawName, err)
	}

	l1Name := L1Name(date)
	l1Path := filepath.Join(u.cfg.RenamedDir, l1Name)
	if err := u.converter.ConvertToFile(ctx, dataPath, l1Path); err != nil {
		u.removeStaged(rawPath)
		return fmt.Errorf("convert %s: %w", name, err)
	}

	if err := u.upload(ctx, rawPath, rawMetadata(u.cfg.ExperimentID, date), domain.ReceiptKindRaw, date); err != nil {
		return err
	}
	if err := u.upload(ctx, l1Path, l1Metadata(u.cfg.ExperimentID, date, rawName), domain.ReceiptKindL1, date); err != nil {
		return err
	}

	for _, path := range []string{dataPath, rawPath, l1Path} {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("clean up %s: %w", path, err)
		}
	}
	u.logger.Info("file pair uploaded and cleaned up", "raw", rawName, "l1", l1Name)
	return nil
}

// upload pushes one file with bounded exponential-backoff retries, then
// publishes its receipt. Receipt failures are logged, never fatal.
func (u *Uploader) upload(ctx context.Context, path string, md hiev.Metadata, kind string, date time.Time) error {
	start := u.clock.Now()

	op := func() error {
		return u.store.Upload(ctx, path, md)
	}
	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, u.cfg.UploadMaxRetries)); err != nil {
		u.metrics.UploadErrors.Inc()
		return fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}

	u.metrics.FilesUploaded.Inc()
	u.metrics.UploadDuration.Observe(u.clock.Since(start).Seconds())

	if u.receipts == nil {
		return nil
	}
	receipt := domain.UploadReceipt{
		File:         filepath.Base(path),
		Kind:         kind,
		ExperimentID: md.ExperimentID,
		Date:         date,
		UploadedAt:   u.clock.Now(),
	}
	if err := u.receipts.PublishReceipt(ctx, receipt); err != nil {
		u.logger.Warn("publish upload receipt failed", "file", receipt.File, "error", err)
	}
	return nil
}

// removeStaged best-effort deletes a staged copy after a later step failed,
// so the next run does not skip the file as already staged.
func (u *Uploader) removeStaged(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		u.logger.Warn("remove staged copy failed", "file", path, "error", err)
	}
}

// RenamedName is the repository name for a raw file from the given campaign
// date.
func RenamedName(date time.Time) string {
	return "FACE_AUTO_RA_NEUTRON_R_" + date.Format("20060102") + ".txt"
}

// L1Name is the repository name for the converted table of a campaign date.
func L1Name(date time.Time) string {
	name := strings.Replace(RenamedName(date), "_R_", "_L1_", 1)
	return strings.TrimSuffix(name, ".txt") + ".csv"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
