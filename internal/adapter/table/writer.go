// Package table writes the long-form measurement table as CSV.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
)

// missing is written for every absent optional value.
const missing = "NA"

// Columns is the canonical output schema. The leading unnamed column is the
// 1-based row index, matching the layout downstream analysis scripts expect.
var Columns = []string{
	"", "Date", "Probe.ID", "Channel", "Depth",
	"NP.count", "Ring", "Location", "CO2.treatment",
	"VWC", "Bulk.density", "GWC",
}

// Write renders measurements as CSV. Output is fully determined by the
// input slice: same measurements, same bytes.
func Write(w io.Writer, ms []domain.Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, m := range ms {
		record := []string{
			strconv.Itoa(i + 1),
			m.Date.Format("2006-01-02"),
			strconv.Itoa(m.ProbeID),
			m.Channel,
			strconv.Itoa(m.Depth),
			formatOptional(m.Count),
			m.Ring,
			m.Location,
			m.Treatment,
			formatOptional(m.VWC),
			formatOptional(m.BulkDensity),
			formatOptional(m.GWC),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile persists measurements to path, creating or truncating it.
func WriteFile(path string, ms []domain.Measurement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output table: %w", err)
	}
	if err := Write(f, ms); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output table: %w", err)
	}
	return nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
