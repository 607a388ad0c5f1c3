package uploader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/hiev"
	"github.com/gdevine/face-neutronprobe-hiev/internal/config"
	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
	"github.com/gdevine/face-neutronprobe-hiev/internal/observability"
)

// --- mocks ---

type mockStore struct {
	uploads  []string // base names in upload order
	metadata []hiev.Metadata
	failOn   map[string]error // base name -> error
}

func (m *mockStore) Upload(_ context.Context, filePath string, md hiev.Metadata) error {
	name := filepath.Base(filePath)
	if err, ok := m.failOn[name]; ok {
		return err
	}
	m.uploads = append(m.uploads, name)
	m.metadata = append(m.metadata, md)
	return nil
}

type mockConverter struct {
	err   error
	calls int
}

func (m *mockConverter) ConvertToFile(_ context.Context, rawPath, outPath string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(outPath, []byte("converted from "+filepath.Base(rawPath)+"\n"), 0o644)
}

type mockPublisher struct {
	receipts []domain.UploadReceipt
	err      error
}

func (m *mockPublisher) PublishReceipt(_ context.Context, r domain.UploadReceipt) error {
	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, r)
	return nil
}

// --- helpers ---

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	return &config.Config{
		DataDir:      filepath.Join(root, "Data"),
		RenamedDir:   filepath.Join(root, "Renamed"),
		BackupsDir:   filepath.Join(root, "Backups"),
		ExperimentID: 31,
	}
}

func writeDataFile(t *testing.T, cfg *config.Config, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, name), []byte("raw contents\n"), 0o644))
}

func newUploader(cfg *config.Config, conv Converter, store Store, receipts ReceiptPublisher) *Uploader {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, conv, store, receipts, clockwork.NewFakeClock(), logger, observability.NewMetricsForTesting())
}

// --- tests ---

func TestRunUploadsFilePair(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	store := &mockStore{}
	conv := &mockConverter{}

	sum, err := newUploader(cfg, conv, store, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Matched: 1, Uploaded: 1}, sum)
	assert.Equal(t, 1, conv.calls)
	require.Equal(t, []string{
		"FACE_AUTO_RA_NEUTRON_R_20200101.txt",
		"FACE_AUTO_RA_NEUTRON_L1_20200101.csv",
	}, store.uploads)

	// Raw then L1 metadata, each spanning the campaign day.
	require.Len(t, store.metadata, 2)
	assert.Equal(t, hiev.TypeRaw, store.metadata[0].Type)
	assert.Equal(t, hiev.TypeProcessed, store.metadata[1].Type)
	assert.Equal(t, 31, store.metadata[0].ExperimentID)
	assert.Equal(t, "2020-01-01 00:00:00", store.metadata[0].StartTime.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "2020-01-01 23:59:59", store.metadata[0].EndTime.Format("2006-01-02 15:04:05"))
	assert.Contains(t, store.metadata[1].ParentFilenames, "FACE_AUTO_RA_NEUTRON_R_20200101.txt")

	// Data and Renamed are cleaned out; the backup survives.
	assert.NoFileExists(t, filepath.Join(cfg.DataDir, "FA010120.txt"))
	assert.NoFileExists(t, filepath.Join(cfg.RenamedDir, "FACE_AUTO_RA_NEUTRON_R_20200101.txt"))
	assert.NoFileExists(t, filepath.Join(cfg.RenamedDir, "FACE_AUTO_RA_NEUTRON_L1_20200101.csv"))
	assert.FileExists(t, filepath.Join(cfg.BackupsDir, "FA010120.txt"))
}

func TestRunIgnoresNonMatchingNames(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "notes.txt")
	writeDataFile(t, cfg, "FA150518.TXT")
	store := &mockStore{}

	sum, err := newUploader(cfg, &mockConverter{}, store, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Matched: 1, Ignored: 1, Uploaded: 1}, sum)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "notes.txt"))
}

func TestRunSkipsAlreadyStagedFile(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	require.NoError(t, os.MkdirAll(cfg.RenamedDir, 0o755))
	staged := filepath.Join(cfg.RenamedDir, "FACE_AUTO_RA_NEUTRON_R_20200101.txt")
	require.NoError(t, os.WriteFile(staged, []byte("older copy\n"), 0o644))
	store := &mockStore{}

	sum, err := newUploader(cfg, &mockConverter{}, store, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Matched: 1, Skipped: 1}, sum)
	assert.Empty(t, store.uploads)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "FA010120.txt"))
}

func TestRunConversionFailureLeavesFile(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	store := &mockStore{}
	conv := &mockConverter{err: errors.New("boom")}

	sum, err := newUploader(cfg, conv, store, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Matched: 1, Failed: 1}, sum)
	assert.Empty(t, store.uploads)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "FA010120.txt"))
	// Staged copy is withdrawn so the next run retries instead of skipping.
	assert.NoFileExists(t, filepath.Join(cfg.RenamedDir, "FACE_AUTO_RA_NEUTRON_R_20200101.txt"))
}

func TestRunUploadFailureLeavesDataFile(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	store := &mockStore{failOn: map[string]error{
		"FACE_AUTO_RA_NEUTRON_L1_20200101.csv": errors.New("503 from hiev"),
	}}

	sum, err := newUploader(cfg, &mockConverter{}, store, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Matched: 1, Failed: 1}, sum)
	assert.Equal(t, []string{"FACE_AUTO_RA_NEUTRON_R_20200101.txt"}, store.uploads)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "FA010120.txt"))
}

func TestRunContinuesAfterFailure(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	writeDataFile(t, cfg, "FA020120.txt")
	store := &mockStore{failOn: map[string]error{
		"FACE_AUTO_RA_NEUTRON_R_20200101.txt": errors.New("boom"),
	}}

	sum, err := newUploader(cfg, &mockConverter{}, store, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Matched: 2, Uploaded: 1, Failed: 1}, sum)
	assert.Contains(t, store.uploads, "FACE_AUTO_RA_NEUTRON_R_20200102.txt")
}

func TestRunPublishesReceipts(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	pub := &mockPublisher{}

	_, err := newUploader(cfg, &mockConverter{}, &mockStore{}, pub).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, pub.receipts, 2)
	assert.Equal(t, domain.ReceiptKindRaw, pub.receipts[0].Kind)
	assert.Equal(t, domain.ReceiptKindL1, pub.receipts[1].Kind)
	assert.Equal(t, "FACE_AUTO_RA_NEUTRON_L1_20200101.csv", pub.receipts[1].File)
	assert.Equal(t, 31, pub.receipts[0].ExperimentID)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), pub.receipts[0].Date)
}

func TestRunReceiptFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	pub := &mockPublisher{err: errors.New("broker down")}

	sum, err := newUploader(cfg, &mockConverter{}, &mockStore{}, pub).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Uploaded)
}

func TestRunCancelledContextStopsSweep(t *testing.T) {
	cfg := testConfig(t)
	writeDataFile(t, cfg, "FA010120.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := newUploader(cfg, &mockConverter{}, &mockStore{}, nil).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.Matched)
}

func TestNames(t *testing.T) {
	date := time.Date(2018, 5, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "FACE_AUTO_RA_NEUTRON_R_20180515.txt", RenamedName(date))
	assert.Equal(t, "FACE_AUTO_RA_NEUTRON_L1_20180515.csv", L1Name(date))
}
