// Package profile defines persona behavior profiles: per-category hourly
// probability curves, amount distribution parameters, recurring bill rules,
// and trip-bundling configuration.
package profile

import (
	"sort"

	"github.com/dvloznov/cardsim/internal/curve"
)

// CategoryRule holds the behavior parameters for one spending category.
// A nil day-type curve means the persona never spends in this category on
// that day type; bill categories fired only by recurring rules carry two nil
// curves. AmountMean is the only field the engine ever mutates, through the
// weekly drift operation.
type CategoryRule struct {
	AmountMean float64
	AmountStd  float64

	ProbWeekday []float64 // 24 values or nil
	ProbWeekend []float64 // 24 values or nil
}

// CurveFor returns the probability curve for the given day type, or nil when
// the category is inactive on that day type.
func (r *CategoryRule) CurveFor(weekend bool) []float64 {
	if weekend {
		return r.ProbWeekend
	}
	return r.ProbWeekday
}

// RecurringRule schedules a fixed day-of-month payment. It fires at most once
// per persona per month.
type RecurringRule struct {
	Category string
	Day      int // day of month, 1-31
}

// TripAddon is one weighted candidate category for trip bundling.
type TripAddon struct {
	Category string
	Weight   float64
}

// TripConfig describes how secondary purchases cluster around a trigger
// purchase: when a transaction in TriggerCategory occurs, up to MaxAddons
// additional purchases may be generated within WindowMinutes of it.
type TripConfig struct {
	TriggerCategory string
	TriggerProb     float64
	MaxAddons       int
	WindowMinutes   int
	Addons          []TripAddon
}

// Profile is a complete persona behavior profile. Profiles are templates:
// the engine deep-copies them at persona construction so per-persona drift
// never leaks between personas.
type Profile struct {
	Name       string
	Categories map[string]*CategoryRule
	Recurring  []RecurringRule
	Trip       *TripConfig
}

// Rule reports the category's rule and whether the profile knows the
// category at all.
func (p *Profile) Rule(category string) (*CategoryRule, bool) {
	r, ok := p.Categories[category]
	return r, ok
}

// CategoryNames returns the profile's category names in sorted order.
// The engine iterates categories in this order so runs are deterministic.
func (p *Profile) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for name := range p.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	out := &Profile{
		Name:       p.Name,
		Categories: make(map[string]*CategoryRule, len(p.Categories)),
	}
	for name, r := range p.Categories {
		cp := &CategoryRule{
			AmountMean: r.AmountMean,
			AmountStd:  r.AmountStd,
		}
		if r.ProbWeekday != nil {
			cp.ProbWeekday = append([]float64(nil), r.ProbWeekday...)
		}
		if r.ProbWeekend != nil {
			cp.ProbWeekend = append([]float64(nil), r.ProbWeekend...)
		}
		out.Categories[name] = cp
	}
	if p.Recurring != nil {
		out.Recurring = append([]RecurringRule(nil), p.Recurring...)
	}
	if p.Trip != nil {
		trip := *p.Trip
		trip.Addons = append([]TripAddon(nil), p.Trip.Addons...)
		out.Trip = &trip
	}
	return out
}

// hourly is a shorthand used by the built-in profiles.
func hourly(peakHour, stdDev, maxProb float64) []float64 {
	return curve.Hourly(peakHour, stdDev, maxProb)
}
