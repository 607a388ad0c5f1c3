package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// minRawFields is probe + channel + twelve counts. Some logger firmware
// versions insert an unused column after the channel marker, giving fifteen
// fields; the counts are always the last twelve.
const minRawFields = 14

// ParseFilenameDate extracts the campaign date from a raw filename.
// The date occupies characters [len-10, len-4) of the base name as
// day-month-year: "FA010120.txt" → 2020-01-01.
func ParseFilenameDate(name string) (time.Time, error) {
	base := filepath.Base(name)
	if len(base) < 10 {
		return time.Time{}, fmt.Errorf("filename %q too short to carry a date", base)
	}
	ddmmyy := base[len(base)-10 : len(base)-4]

	t, err := time.Parse("020106", ddmmyy)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q from filename %q: %w", ddmmyy, base, err)
	}
	return t, nil
}

// ParseRawLine parses one logger data row. The counts are taken as the last
// twelve fields so rows with and without the unused column both parse; zero
// counts become nil (missing).
func ParseRawLine(line string) (RawReading, error) {
	fields := strings.Fields(line)
	if len(fields) < minRawFields {
		return RawReading{}, fmt.Errorf("raw row has %d fields, want at least %d", len(fields), minRawFields)
	}

	probeID, err := strconv.Atoi(fields[0])
	if err != nil {
		return RawReading{}, fmt.Errorf("parse probe ID %q: %w", fields[0], err)
	}

	counts := make(map[int]*float64, len(RawColumnDepths))
	countFields := fields[len(fields)-len(RawColumnDepths):]
	for i, depth := range RawColumnDepths {
		v, err := strconv.ParseFloat(countFields[i], 64)
		if err != nil {
			return RawReading{}, fmt.Errorf("parse count %q at depth %d: %w", countFields[i], depth, err)
		}
		if v == 0 {
			counts[depth] = nil
			continue
		}
		counts[depth] = &v
	}

	return RawReading{
		ProbeID: probeID,
		Channel: fields[1],
		Counts:  counts,
	}, nil
}
