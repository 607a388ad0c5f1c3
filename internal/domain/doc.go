// Package domain models EucFACE neutron-probe soil-moisture data.
//
// # Data Source
//
// Raw readings come from a CPN 503DR Hydroprobe logger dump: a fixed-format
// text file per field campaign, named FADDMMYY.TXT (e.g. FA150518.TXT for a
// campaign on 15 May 2018). Each file carries a 24-line instrument preamble
// followed by one whitespace-delimited row per probe: probe ID, channel
// marker, an optional unused column, then twelve neutron counts in
// descending depth order (450, 400, 350, 300, 250, 200, 150, 125, 100, 75,
// 50, 25 cm).
//
// # Conventions
//
// Filename date:
//
//	Characters [len-10, len-4) of the base name encode day-month-year with a
//	two-digit year in the 2000s: "FA010120.txt" → 2020-01-01.
//
// Zero counts:
//
//	The logger writes 0 for a depth it could not read. A zero count is
//	therefore missing data, never a true zero reading, and propagates as
//	missing through VWC and GWC.
//
// Calibration:
//
//	Volumetric water content is a linear function of the neutron count,
//	VWC = intercept + slope × count, with coefficients fit by ordinary least
//	squares from field calibration samples. The soil profile at EucFACE
//	switches to clay below about 3 m, so samples labeled "Clay" fit the model
//	used at depths of 350 cm and deeper; all other samples fit the model used
//	at 300 cm and shallower. No depth between 300 and 350 exists in the
//	logger schema, so the two branches cover every reading.
//
// Derived quantities:
//
//	GWC = VWC / bulk density, where bulk density is looked up per
//	(probe, depth) from a reference table. A missing or zero bulk density
//	leaves GWC missing.
//
// # Plot metadata
//
// Each probe belongs to one of the six EucFACE rings (or an outside control
// position). Rings 1, 4 and 5 receive elevated CO2; rings 2, 3 and 6 are
// ambient. The probe-to-ring assignment is fixed instrumentation wiring and
// is compiled into this package; see [LookupPlot].
package domain
