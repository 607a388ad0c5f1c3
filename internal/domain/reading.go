package domain

import "time"

// RawColumnDepths lists the measurement depths in cm in the order the logger
// writes them: deepest first.
var RawColumnDepths = []int{450, 400, 350, 300, 250, 200, 150, 125, 100, 75, 50, 25}

// Depths lists the measurement depths in ascending order, the order used for
// long-form output. This is the single source of truth for the depth schema.
var Depths = []int{25, 50, 75, 100, 125, 150, 200, 250, 300, 350, 400, 450}

// NonClayDepthMax is the deepest reading calibrated with the non-clay fit.
// Everything deeper uses the clay fit; the logger schema has no depth between
// the two thresholds.
const NonClayDepthMax = 300

// RawReading is one logger row: one probe on one campaign date, with one
// neutron count per depth. A nil count means the logger reported 0, which is
// missing data rather than a true zero reading.
type RawReading struct {
	ProbeID int
	Channel string
	Counts  map[int]*float64 // keyed by depth in cm
}

// PlotInfo is the experimental-plot metadata attached to a probe.
type PlotInfo struct {
	Ring      string
	Location  string
	Treatment string // "Elevated" or "Ambient" CO2
}

// Measurement is one long-form output row: one probe at one depth on one
// date. Optional values are pointers; nil means missing and is written as NA.
type Measurement struct {
	Date    time.Time
	ProbeID int
	Channel string
	Depth   int
	Count   *float64

	// Plot join results; empty strings when the probe has no ring entry.
	Ring      string
	Location  string
	Treatment string

	VWC         *float64
	BulkDensity *float64
	GWC         *float64
}

// probePlots maps probe ID to its ring assignment. Two probes per ring plus
// three outside control positions; wiring is fixed at the site.
var probePlots = map[int]PlotInfo{
	11: {Ring: "R1", Location: "Ring 1", Treatment: "Elevated"},
	12: {Ring: "R1", Location: "Ring 1", Treatment: "Elevated"},
	13: {Ring: "R2", Location: "Ring 2", Treatment: "Ambient"},
	14: {Ring: "R2", Location: "Ring 2", Treatment: "Ambient"},
	15: {Ring: "R3", Location: "Ring 3", Treatment: "Ambient"},
	16: {Ring: "R3", Location: "Ring 3", Treatment: "Ambient"},
	17: {Ring: "R4", Location: "Ring 4", Treatment: "Elevated"},
	18: {Ring: "R4", Location: "Ring 4", Treatment: "Elevated"},
	19: {Ring: "R5", Location: "Ring 5", Treatment: "Elevated"},
	20: {Ring: "R5", Location: "Ring 5", Treatment: "Elevated"},
	21: {Ring: "R6", Location: "Ring 6", Treatment: "Ambient"},
	22: {Ring: "R6", Location: "Ring 6", Treatment: "Ambient"},
	1:  {Ring: "OUT", Location: "Outside", Treatment: "Ambient"},
	2:  {Ring: "OUT", Location: "Outside", Treatment: "Ambient"},
	3:  {Ring: "OUT", Location: "Outside", Treatment: "Ambient"},
}

// LookupPlot returns the ring assignment for a probe. The second return is
// false for probes with no entry; their measurements keep empty plot fields.
func LookupPlot(probeID int) (PlotInfo, bool) {
	p, ok := probePlots[probeID]
	return p, ok
}
