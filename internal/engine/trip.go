package engine

import (
	"time"

	"github.com/dvloznov/cardsim/internal/domain"
)

// tripAddons generates the bundled purchases that cluster around a trigger
// transaction: the coffee bought on the grocery run, the ride home after the
// takeaway. Called only immediately after a transaction in the configured
// trigger category.
//
// Every add-on timestamp falls within the configured window of the trigger
// and on the same calendar day; offsets that would cross midnight are
// clamped to 00:00:00 or 23:59:59 rather than wrapped.
func (p *Persona) tripAddons(state *dayState, trigger domain.Transaction, nextID *int64) []domain.Transaction {
	cfg := p.trip
	if p.rng.Float64() >= cfg.TriggerProb {
		return nil
	}
	n := p.rng.Intn(cfg.MaxAddons + 1)
	if n == 0 {
		return nil
	}

	var addons []domain.Transaction
	for i := 0; i < n; i++ {
		cat := p.pickAddonCategory()
		if cat == "" {
			continue
		}
		if onceDaily[cat] && state.usedOnce[cat] {
			continue
		}
		if transportCapped[cat] && state.counts[cat] >= transportDailyCap {
			continue
		}
		r, ok := p.rules[cat]
		if !ok {
			continue // configuration gap: skip, keep simulating
		}

		ts := p.addonTimestamp(trigger.Timestamp)
		tx, ok := p.emit(cat, r, ts, nextID)
		if !ok {
			continue
		}
		addons = append(addons, tx)
		state.counts[cat]++
		if onceDaily[cat] {
			state.usedOnce[cat] = true
		}
	}
	return addons
}

// pickAddonCategory draws one category from the weighted add-on list
// (with replacement across draws).
func (p *Persona) pickAddonCategory() string {
	total := 0.0
	for _, a := range p.trip.Addons {
		total += a.Weight
	}
	if total <= 0 {
		return ""
	}
	roll := p.rng.Float64() * total
	for _, a := range p.trip.Addons {
		roll -= a.Weight
		if roll < 0 {
			return a.Category
		}
	}
	return p.trip.Addons[len(p.trip.Addons)-1].Category
}

// addonTimestamp offsets the trigger timestamp uniformly within the
// clustering window, clamped to the trigger's calendar day.
func (p *Persona) addonTimestamp(trigger time.Time) time.Time {
	window := time.Duration(p.trip.WindowMinutes) * time.Minute
	offset := time.Duration((p.rng.Float64()*2 - 1) * float64(window))
	ts := trigger.Add(offset)

	dayStart := time.Date(trigger.Year(), trigger.Month(), trigger.Day(), 0, 0, 0, 0, trigger.Location())
	dayEnd := time.Date(trigger.Year(), trigger.Month(), trigger.Day(), 23, 59, 59, 0, trigger.Location())
	if ts.Before(dayStart) {
		return dayStart
	}
	if ts.After(dayEnd) {
		return dayEnd
	}
	return ts
}
