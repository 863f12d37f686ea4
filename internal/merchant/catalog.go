// Package merchant holds the catalog of merchants available to the
// simulation: per category, a list of merchant ids plus channel and country.
// The catalog is static configuration; the behavior engine never mutates it.
package merchant

import (
	"sort"

	"github.com/dvloznov/cardsim/internal/domain"
)

// Entry is the merchant pool for one category.
type Entry struct {
	IDs     []string
	Channel domain.Channel
	Country string // ISO country code of the merchant
}

// Catalog maps category names to merchant entries.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog builds a catalog from a category-to-entry mapping.
func NewCatalog(entries map[string]Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Entry reports the merchant pool for a category and whether the catalog
// knows the category at all.
func (c *Catalog) Entry(category string) (Entry, bool) {
	e, ok := c.entries[category]
	return e, ok
}

// Categories returns the catalog's category names in sorted order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns the default UK merchant catalog.
func Builtin() *Catalog {
	return NewCatalog(map[string]Entry{
		"coffee": {
			IDs:     []string{"MERCH_STARBUCKS_01", "MERCH_COSTA_02", "MERCH_PRET_03"},
			Channel: domain.ChannelPOS,
			Country: "GB",
		},
		"lunch": {
			IDs:     []string{"MERCH_PRET_03", "MERCH_GREGGS_01", "MERCH_SUBWAY_02", "MERCH_EAT_05"},
			Channel: domain.ChannelPOS,
			Country: "GB",
		},
		"groceries": {
			IDs:     []string{"MERCH_TESCO_01", "MERCH_SAINSBURYS_02", "MERCH_ALDI_03", "MERCH_M&S_04"},
			Channel: domain.ChannelPOS,
			Country: "GB",
		},
		"utility_bill": {
			IDs:     []string{"MERCH_THAMES_WATER_01", "MERCH_OCTOPUS_02"},
			Channel: domain.ChannelOnline,
			Country: "GB",
		},
		"online_shopping": {
			IDs:     []string{"MERCH_AMAZON_UK", "MERCH_SHEIN_UK"},
			Channel: domain.ChannelOnline,
			Country: "GB",
		},
		"food_delivery": {
			IDs:     []string{"MERCH_DELIVEROO", "MERCH_UBER_EATS"},
			Channel: domain.ChannelOnline,
			Country: "GB",
		},
		"transport_public": {
			IDs:     []string{"MERCH_TFL_01", "MERCH_NATIONAL_RAIL_02"},
			Channel: domain.ChannelPOS,
			Country: "GB",
		},
		"transport_ride_hail": {
			IDs:     []string{"MERCH_UBER_01", "MERCH_BOLT_02"},
			Channel: domain.ChannelOnline,
			Country: "GB",
		},
		"phone_bill": {
			IDs:     []string{"MERCH_VODAFONE_01", "MERCH_EE_02", "MERCH_O2_03"},
			Channel: domain.ChannelOnline,
			Country: "GB",
		},
		"subscription": {
			IDs:     []string{"MERCH_NETFLIX_UK", "MERCH_SPOTIFY_UK", "MERCH_DISNEY_UK"},
			Channel: domain.ChannelOnline,
			Country: "GB",
		},
	})
}
