// Command genraw generates a synthetic raw neutron-probe logger file for
// testing and demos. It uses the actual domain depth schema and probe map so
// the output parses the same way a real logger dump does.
//
// Usage:
//
//	go run ./cmd/genraw -date 2020-01-01 -out Data
//
// The file is named for the date per the logger convention (FADDMMYY.TXT)
// and written into -out.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/rawfile"
	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dateStr := flag.String("date", "", "campaign date, YYYY-MM-DD")
	outDir := flag.String("out", ".", "output directory")
	seed := flag.Int64("seed", 1, "random seed, for reproducible files")
	dropout := flag.Float64("dropout", 0.05, "probability a depth reads zero (missing)")
	flag.Parse()

	if *dateStr == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -date")
	}
	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	var b strings.Builder
	writePreamble(&b, date)

	probes := []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 1, 2, 3}
	for _, probe := range probes {
		b.WriteString(fmt.Sprintf("%d A 0", probe))
		for range domain.RawColumnDepths {
			count := 0
			if rng.Float64() >= *dropout {
				count = 1500 + rng.Intn(2500)
			}
			b.WriteString(fmt.Sprintf(" %d", count))
		}
		b.WriteString("\n")
	}

	name := "FA" + date.Format("020106") + ".TXT"
	path := filepath.Join(*outDir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Printf("wrote %s: %d probes, %d preamble lines", path, len(probes), rawfile.PreambleLines)
	return nil
}

// writePreamble emits the fixed-size instrument header the reader skips.
func writePreamble(b *strings.Builder, date time.Time) {
	b.WriteString("*** CPN 503DR HYDROPROBE ***\n")
	b.WriteString(fmt.Sprintf("DUMP DATE %s\n", date.Format("02/01/06")))
	for i := 2; i < rawfile.PreambleLines; i++ {
		b.WriteString("*\n")
	}
}
