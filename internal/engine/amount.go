package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/cardsim/internal/profile"
)

// skewedAmounts lists the categories whose spend distribution has a long
// right tail: a big grocery shop or utility bill is common, a giant one is
// rare but real. All other categories draw from a symmetric normal.
var skewedAmounts = map[string]bool{
	"groceries":           true,
	"online_shopping":     true,
	"utility_bill":        true,
	"phone_bill":          true,
	"transport_ride_hail": true,
	"subscription":        true,
}

// logNormalSigma is the fixed shape parameter of the skewed path. The
// location is derived from the category mean so the distribution's mean
// equals it; the median sits a little below.
const logNormalSigma = 0.6

// minAmount is the floor applied to every sampled amount.
const minAmount = 0.01

func (p *Persona) sampleAmount(cat string, r *profile.CategoryRule) float64 {
	var v float64
	if skewedAmounts[cat] {
		mu := math.Log(math.Max(r.AmountMean, 0.1)) - 0.5*logNormalSigma*logNormalSigma
		v = math.Exp(mu + logNormalSigma*p.rng.NormFloat64())
	} else {
		v = r.AmountMean + p.rng.NormFloat64()*r.AmountStd
	}
	return roundAmount(v)
}

// roundAmount rounds to 2 decimal places and floors at minAmount, so every
// emitted amount is a valid positive currency value.
func roundAmount(v float64) float64 {
	d := decimal.NewFromFloat(v).Round(2)
	if d.LessThan(decimal.NewFromFloat(minAmount)) {
		return minAmount
	}
	f, _ := d.Float64()
	return f
}
