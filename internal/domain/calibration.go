package domain

import (
	"errors"
	"fmt"
)

// ClayTexture is the sample label that selects the deep-profile calibration.
// Every other label contributes to the shallow (non-clay) fit.
const ClayTexture = "Clay"

// CalibrationSample is one field calibration point: a neutron count and the
// gravimetrically determined VWC at the sampled horizon, labeled by texture.
type CalibrationSample struct {
	Texture string
	Count   float64
	VWC     float64
}

// LinearFit holds the coefficients of VWC = Intercept + Slope × count.
type LinearFit struct {
	Intercept float64
	Slope     float64
}

// VWC applies the fit to a neutron count.
func (f LinearFit) VWC(count float64) float64 {
	return f.Intercept + f.Slope*count
}

// CalibrationModel holds one fit per soil-texture branch.
type CalibrationModel struct {
	NonClay LinearFit
	Clay    LinearFit
}

// FitFor selects the branch for a depth: non-clay at and above
// NonClayDepthMax, clay below it.
func (m CalibrationModel) FitFor(depth int) LinearFit {
	if depth <= NonClayDepthMax {
		return m.NonClay
	}
	return m.Clay
}

// FitCalibration partitions samples by texture and fits each branch by
// ordinary least squares. Both branches need at least two samples with
// distinct counts.
func FitCalibration(samples []CalibrationSample) (CalibrationModel, error) {
	var clay, nonClay []CalibrationSample
	for _, s := range samples {
		if s.Texture == ClayTexture {
			clay = append(clay, s)
			continue
		}
		nonClay = append(nonClay, s)
	}

	nonClayFit, err := fitLeastSquares(nonClay)
	if err != nil {
		return CalibrationModel{}, fmt.Errorf("fit non-clay calibration: %w", err)
	}
	clayFit, err := fitLeastSquares(clay)
	if err != nil {
		return CalibrationModel{}, fmt.Errorf("fit clay calibration: %w", err)
	}

	return CalibrationModel{NonClay: nonClayFit, Clay: clayFit}, nil
}

func fitLeastSquares(samples []CalibrationSample) (LinearFit, error) {
	if len(samples) < 2 {
		return LinearFit{}, fmt.Errorf("need at least 2 samples, have %d", len(samples))
	}

	var sumX, sumY float64
	for _, s := range samples {
		sumX += s.Count
		sumY += s.VWC
	}
	n := float64(len(samples))
	meanX := sumX / n
	meanY := sumY / n

	var covXY, varX float64
	for _, s := range samples {
		dx := s.Count - meanX
		covXY += dx * (s.VWC - meanY)
		varX += dx * dx
	}
	if varX == 0 {
		return LinearFit{}, errors.New("all samples share the same neutron count")
	}

	slope := covXY / varX
	return LinearFit{Intercept: meanY - slope*meanX, Slope: slope}, nil
}
