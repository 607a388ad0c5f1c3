// Package reference loads the static lookup tables the converter joins
// against: field calibration samples and the bulk-density survey.
package reference

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
)

// LoadCalibrationSamples reads the calibration reference CSV. Expected
// columns (by header name): Texture, NP.count, VWC.
func LoadCalibrationSamples(path string) ([]domain.CalibrationSample, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	texture, err := columnIndex(header, "Texture")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	count, err := columnIndex(header, "NP.count")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	vwc, err := columnIndex(header, "VWC")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	samples := make([]domain.CalibrationSample, 0, len(rows))
	for i, row := range rows {
		c, err := strconv.ParseFloat(row[count], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse NP.count %q: %w", path, i+2, row[count], err)
		}
		v, err := strconv.ParseFloat(row[vwc], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse VWC %q: %w", path, i+2, row[vwc], err)
		}
		samples = append(samples, domain.CalibrationSample{Texture: row[texture], Count: c, VWC: v})
	}
	return samples, nil
}

// LoadBulkDensity reads the bulk-density reference CSV. Expected columns
// (by header name): Probe.ID, Up.depth, BD.
func LoadBulkDensity(path string) (domain.BulkDensityTable, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	probe, err := columnIndex(header, "Probe.ID")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	depth, err := columnIndex(header, "Up.depth")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bd, err := columnIndex(header, "BD")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	table := make(domain.BulkDensityTable, len(rows))
	for i, row := range rows {
		p, err := strconv.Atoi(row[probe])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse Probe.ID %q: %w", path, i+2, row[probe], err)
		}
		d, err := strconv.Atoi(row[depth])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse Up.depth %q: %w", path, i+2, row[depth], err)
		}
		v, err := strconv.ParseFloat(row[bd], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse BD %q: %w", path, i+2, row[bd], err)
		}
		table[domain.BulkDensityKey{ProbeID: p, Depth: d}] = v
	}
	return table, nil
}

func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read reference table %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("reference table %s has no data rows", path)
	}
	return records[1:], records[0], nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing column %q", name)
}
