package domain

import "time"

// BulkDensityKey identifies one bulk-density entry: the "Up.depth" column of
// the reference table matches the measurement depth directly.
type BulkDensityKey struct {
	ProbeID int
	Depth   int
}

// BulkDensityTable maps (probe, depth) to dry bulk density in g/cm³.
type BulkDensityTable map[BulkDensityKey]float64

// Reshape turns logger rows into long form: exactly one Measurement per
// reading per depth, in ascending depth order, with plot metadata joined on
// probe ID. Readings without a ring entry are kept with empty plot fields.
func Reshape(date time.Time, readings []RawReading) []Measurement {
	out := make([]Measurement, 0, len(readings)*len(Depths))
	for _, r := range readings {
		plot, _ := LookupPlot(r.ProbeID)
		for _, depth := range Depths {
			out = append(out, Measurement{
				Date:      date,
				ProbeID:   r.ProbeID,
				Channel:   r.Channel,
				Depth:     depth,
				Count:     r.Counts[depth],
				Ring:      plot.Ring,
				Location:  plot.Location,
				Treatment: plot.Treatment,
			})
		}
	}
	return out
}

// ApplyCalibration computes VWC for every measurement with a count, using the
// depth-matched branch of the model. Missing counts leave VWC missing.
func ApplyCalibration(ms []Measurement, model CalibrationModel) []Measurement {
	for i := range ms {
		if ms[i].Count == nil {
			continue
		}
		vwc := model.FitFor(ms[i].Depth).VWC(*ms[i].Count)
		ms[i].VWC = &vwc
	}
	return ms
}

// DeriveWater joins bulk density on (probe, depth) and computes
// GWC = VWC / bulk density. Rows without a bulk-density entry, or with a zero
// entry, keep VWC but leave bulk density and GWC missing.
func DeriveWater(ms []Measurement, bd BulkDensityTable) []Measurement {
	for i := range ms {
		density, ok := bd[BulkDensityKey{ProbeID: ms[i].ProbeID, Depth: ms[i].Depth}]
		if !ok {
			continue
		}
		d := density
		ms[i].BulkDensity = &d
		if ms[i].VWC == nil || density == 0 {
			continue
		}
		gwc := *ms[i].VWC / density
		ms[i].GWC = &gwc
	}
	return ms
}
