// Package rawfile reads CPN Hydroprobe logger dumps from disk.
package rawfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
)

// PreambleLines is the fixed instrument header the logger writes before the
// first data row.
const PreambleLines = 24

// File is one parsed logger dump.
type File struct {
	Date     time.Time
	Readings []domain.RawReading
}

// MatchesNamingConvention reports whether a filename looks like a raw probe
// dump: "FA" prefix, six digits, ".txt" extension matched case-insensitively.
func MatchesNamingConvention(name string) bool {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, "FA") {
		return false
	}
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".txt") {
		return false
	}
	digits := strings.TrimSuffix(base, ext)[2:]
	if len(digits) != 6 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Read parses a raw probe file: campaign date from the filename, then one
// reading per non-blank row after the preamble.
func Read(path string) (File, error) {
	date, err := domain.ParseFilenameDate(path)
	if err != nil {
		return File{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open raw file: %w", err)
	}
	defer f.Close()

	var readings []domain.RawReading
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= PreambleLines {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reading, err := domain.ParseRawLine(line)
		if err != nil {
			return File{}, fmt.Errorf("%s:%d: %w", filepath.Base(path), lineNo, err)
		}
		readings = append(readings, reading)
	}
	if err := scanner.Err(); err != nil {
		return File{}, fmt.Errorf("read raw file: %w", err)
	}

	return File{Date: date, Readings: readings}, nil
}
