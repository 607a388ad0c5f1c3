package uploader

import (
	"time"

	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/hiev"
)

// Fixed HIEv record metadata for the neutron-probe datasets. Everything but
// the experiment ID and the time window is the same for every upload.
const (
	rawDescription = "Raw Neutron Probe soil moisture data (in Text format) measured approximately " +
		"every three weeks, where each file represents the reading taken on the date identified " +
		"in the filename (or in the metadata). Measurements are taken across all rings at the " +
		"EucFACE experiment. Converted Level 1 CSV versions of this data can also be found in " +
		"HIEv (See associated data)"
	l1Description = "Level 1 Neutron Probe soil moisture data (in CSV format) from the EucFACE site. " +
		"This file has been generated from the associated raw text file by applying the per-texture " +
		"neutron calibration and joining the ring and bulk-density reference tables."

	rawCreatorEmail = "vinod.kumar@uws.edu.au"
	l1CreatorEmail  = "g.devine@uws.edu.au"
	labelNames      = `"Neutron Probe","Soil Moisture"`
	relatedWebsites = `"https://www.westernsydney.edu.au/hie"`
	l1Contributor   = "Teresa Gimeno, teresa.gimeno@bc3research.org"

	// converterArchive is the HIEv record of the conversion code, listed as a
	// parent of every L1 file.
	converterArchive = "FACE_SCRIPT_NEUTRON_TXT-TO-CSV.zip"
)

// rawMetadata builds the HIEv record metadata for a raw logger file covering
// one campaign day.
func rawMetadata(experimentID int, date time.Time) hiev.Metadata {
	return hiev.Metadata{
		ExperimentID:    experimentID,
		Type:            hiev.TypeRaw,
		Description:     rawDescription,
		CreatorEmail:    rawCreatorEmail,
		LabelNames:      labelNames,
		RelatedWebsites: relatedWebsites,
		StartTime:       dayStart(date),
		EndTime:         dayEnd(date),
	}
}

// l1Metadata builds the HIEv record metadata for a converted L1 table,
// linking back to the raw file and the converter archive.
func l1Metadata(experimentID int, date time.Time, rawName string) hiev.Metadata {
	return hiev.Metadata{
		ExperimentID:     experimentID,
		Type:             hiev.TypeProcessed,
		Description:      l1Description,
		CreatorEmail:     l1CreatorEmail,
		LabelNames:       labelNames,
		RelatedWebsites:  relatedWebsites,
		ContributorNames: []string{l1Contributor},
		ParentFilenames:  []string{rawName, converterArchive},
		StartTime:        dayStart(date),
		EndTime:          dayEnd(date),
	}
}

func dayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

func dayEnd(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, date.Location())
}
