// Package curve builds per-hour occurrence probability curves for persona
// category rules.
package curve

import "math"

// HoursPerDay is the length of every hourly probability curve.
const HoursPerDay = 24

// Hourly returns 24 occurrence probabilities, one per integer hour 0-23,
// shaped as a Gaussian centered on peakHour with the given spread, then
// normalized so the curve's own maximum equals maxProb.
//
// The curve is linear, not circular: a peak near hour 23 does not wrap
// toward hour 0. Late-night profiles rely on this, so the behavior is kept
// on purpose.
//
// peakHour may be fractional (12.5 peaks between noon and 1pm) and may lie
// outside 0-23, in which case the visible part of the tail is what remains
// after normalization.
func Hourly(peakHour, stdDev, maxProb float64) []float64 {
	probs := make([]float64, HoursPerDay)
	maxVal := 0.0
	for h := 0; h < HoursPerDay; h++ {
		d := float64(h) - peakHour
		v := math.Exp(-(d * d) / (2 * stdDev * stdDev))
		probs[h] = v
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return probs
	}
	for h := range probs {
		probs[h] = probs[h] / maxVal * maxProb
	}
	return probs
}
