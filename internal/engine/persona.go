// Package engine implements the persona daily-behavior simulation: the
// stateful, probabilistic algorithm that decides, hour by hour and category
// by category, whether a transaction occurs, what it costs, which merchant
// it targets, and how bundled and recurring purchases are injected.
package engine

import (
	"math/rand"

	"github.com/dvloznov/cardsim/internal/merchant"
	"github.com/dvloznov/cardsim/internal/profile"
)

// Persona is one synthetic cardholder. It owns its behavioral state for the
// whole simulation horizon: a private copy of the profile rules (so weekly
// drift is per-persona), the merchant memory, and a seeded random source.
// All randomness flows through the injected rand.Rand, never the global
// source, so runs with equal seeds are identical.
//
// A Persona is not safe for concurrent use; across personas state is fully
// disjoint, so independent personas may be simulated on separate workers.
type Persona struct {
	UserID      string
	CardID      string
	HomeCountry string

	rules      map[string]*profile.CategoryRule
	categories []string // sorted; fixes iteration order for determinism
	recurring  []profile.RecurringRule
	trip       *profile.TripConfig

	catalog *merchant.Catalog

	// memory maps category -> remembered merchant id. Entries are created
	// lazily on first pick and live for the persona's lifetime.
	memory map[string]string

	rng *rand.Rand
}

// New builds a persona from a behavior profile. The profile is deep-copied:
// the caller may hand the same template to many personas.
func New(userID, cardID, homeCountry string, prof *profile.Profile, catalog *merchant.Catalog, rng *rand.Rand) *Persona {
	cp := prof.Clone()
	return &Persona{
		UserID:      userID,
		CardID:      cardID,
		HomeCountry: homeCountry,
		rules:       cp.Categories,
		categories:  cp.CategoryNames(),
		recurring:   cp.Recurring,
		trip:        cp.Trip,
		catalog:     catalog,
		memory:      make(map[string]string),
		rng:         rng,
	}
}

// RememberedMerchant reports the persona's remembered merchant for a
// category, if one has been established.
func (p *Persona) RememberedMerchant(category string) (string, bool) {
	id, ok := p.memory[category]
	return id, ok
}

// dayState is the per-day ephemeral state, reset at the start of every
// simulated day.
type dayState struct {
	usedOnce map[string]bool // once-per-day categories consumed today
	counts   map[string]int  // per-category transaction count today
}

func newDayState() *dayState {
	return &dayState{
		usedOnce: make(map[string]bool),
		counts:   make(map[string]int),
	}
}
