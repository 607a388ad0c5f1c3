// Command convert transforms one raw neutron-probe file into the long-form
// calibrated CSV table.
//
// Usage:
//
//	convert [-o output.csv] FA010120.txt
//
// Without -o the table is written beside the input with the extension
// replaced by ".csv". Reference-table locations come from the environment
// (CALIBRATION_FILE, BULK_DENSITY_FILE).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdevine/face-neutronprobe-hiev/internal/config"
	"github.com/gdevine/face-neutronprobe-hiev/internal/converter"
	"github.com/gdevine/face-neutronprobe-hiev/internal/observability"
)

func main() {
	outPath := flag.String("o", "", "output CSV path (default: beside the input)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: convert [-o output.csv] <raw file>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stderr)
	metrics := observability.NewMetrics()

	c := converter.New(cfg, logger, metrics)
	if err := c.ConvertToFile(context.Background(), flag.Arg(0), *outPath); err != nil {
		logger.Error("conversion failed", "file", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}
