package engine

// DefaultDriftStdDev is the standard deviation of the weekly drift factor.
const DefaultDriftStdDev = 0.02

// driftFloor bounds a single drift factor so one draw can neither collapse
// a category mean nor send it runaway.
const driftFloor = 0.5

// ApplyWeeklyDrift multiplies every category's amount mean by a factor drawn
// from Normal(1.0, stdDev), floored at driftFloor. It models long-horizon
// spending drift and is never called by SimulateDay: the driver invokes it
// on its own cadence. The drift is prospective only; transactions already
// emitted are immutable.
//
// A stdDev <= 0 selects DefaultDriftStdDev.
func (p *Persona) ApplyWeeklyDrift(stdDev float64) {
	if stdDev <= 0 {
		stdDev = DefaultDriftStdDev
	}
	for _, cat := range p.categories {
		factor := 1.0 + p.rng.NormFloat64()*stdDev
		if factor < driftFloor {
			factor = driftFloor
		}
		p.rules[cat].AmountMean *= factor
	}
}

// AmountMean reports the persona's current mean for a category. Exposed for
// drift inspection and tests.
func (p *Persona) AmountMean(category string) (float64, bool) {
	r, ok := p.rules[category]
	if !ok {
		return 0, false
	}
	return r.AmountMean, true
}
