package engine

import (
	"math/rand"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/cardsim/internal/domain"
	"github.com/dvloznov/cardsim/internal/merchant"
	"github.com/dvloznov/cardsim/internal/profile"
)

// tripProfile fires the trigger category with certainty late in the evening
// so window clamping gets exercised too.
func tripProfile(triggerProb float64, maxAddons, windowMin int) *profile.Profile {
	late := make([]float64, 24)
	late[23] = 1.0
	return &profile.Profile{
		Name: "tripper",
		Categories: map[string]*profile.CategoryRule{
			"food_delivery":       {ProbWeekday: late, ProbWeekend: late, AmountMean: 25, AmountStd: 5},
			"transport_ride_hail": {AmountMean: 12, AmountStd: 4},
			"online_shopping":     {AmountMean: 40, AmountStd: 18},
		},
		Trip: &profile.TripConfig{
			TriggerCategory: "food_delivery",
			TriggerProb:     triggerProb,
			MaxAddons:       maxAddons,
			WindowMinutes:   windowMin,
			Addons: []profile.TripAddon{
				{Category: "transport_ride_hail", Weight: 1},
				{Category: "online_shopping", Weight: 1},
			},
		},
	}
}

func TestTripAddons_CountWithinBounds(t *testing.T) {
	p := New("U", "C", "GB", tripProfile(1.0, 3, 40), merchant.Builtin(), rand.New(rand.NewSource(9)))

	start := civil.Date{Year: 2025, Month: 1, Day: 1}
	nextID := int64(1)
	for d := 0; d < 60; d++ {
		var daily []domain.Transaction
		daily, nextID = p.SimulateDay(start.AddDays(d), nextID)

		addons := 0
		for _, tx := range daily {
			if tx.MerchantCategory != "food_delivery" {
				addons++
			}
		}
		assert.LessOrEqual(t, addons, 3, "day %d", d)
	}
}

func TestTripAddons_TimestampsWithinWindowAndSameDay(t *testing.T) {
	const windowMin = 40
	p := New("U", "C", "GB", tripProfile(1.0, 3, windowMin), merchant.Builtin(), rand.New(rand.NewSource(10)))

	start := civil.Date{Year: 2025, Month: 1, Day: 1}
	nextID := int64(1)
	window := time.Duration(windowMin) * time.Minute

	sawAddon := false
	for d := 0; d < 90; d++ {
		date := start.AddDays(d)
		var daily []domain.Transaction
		daily, nextID = p.SimulateDay(date, nextID)

		var trigger *domain.Transaction
		for i := range daily {
			tx := &daily[i]
			if tx.MerchantCategory == "food_delivery" {
				trigger = tx
				continue
			}
			require.NotNil(t, trigger, "add-on before its trigger")
			sawAddon = true

			diff := tx.Timestamp.Sub(trigger.Timestamp)
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, window, "day %v: add-on outside window", date)

			assert.Equal(t, trigger.Timestamp.Day(), tx.Timestamp.Day(), "day %v: add-on crossed midnight", date)
		}
	}
	require.True(t, sawAddon, "expected add-ons with trigger_prob=1.0 over 90 days")
}

func TestTripAddons_ZeroTriggerProbYieldsNone(t *testing.T) {
	p := New("U", "C", "GB", tripProfile(0.0, 3, 40), merchant.Builtin(), rand.New(rand.NewSource(11)))

	start := civil.Date{Year: 2025, Month: 1, Day: 1}
	nextID := int64(1)
	for d := 0; d < 30; d++ {
		var daily []domain.Transaction
		daily, nextID = p.SimulateDay(start.AddDays(d), nextID)
		for _, tx := range daily {
			assert.Equal(t, "food_delivery", tx.MerchantCategory)
		}
	}
}

func TestTripAddons_RespectOncePerDayUsage(t *testing.T) {
	// groceries is once-per-day; as a trip add-on it must not fire twice.
	flat := make([]float64, 24)
	for i := range flat {
		flat[i] = 1.0
	}
	prof := &profile.Profile{
		Name: "grocery_addon",
		Categories: map[string]*profile.CategoryRule{
			"coffee":    {ProbWeekday: flat, ProbWeekend: flat, AmountMean: 4, AmountStd: 1},
			"groceries": {AmountMean: 60, AmountStd: 20},
		},
		Trip: &profile.TripConfig{
			TriggerCategory: "coffee",
			TriggerProb:     1.0,
			MaxAddons:       3,
			WindowMinutes:   30,
			Addons:          []profile.TripAddon{{Category: "groceries", Weight: 1}},
		},
	}
	p := New("U", "C", "GB", prof, merchant.Builtin(), rand.New(rand.NewSource(12)))

	daily, _ := p.SimulateDay(civil.Date{Year: 2025, Month: 3, Day: 3}, 1)
	groceries := 0
	for _, tx := range daily {
		if tx.MerchantCategory == "groceries" {
			groceries++
		}
	}
	assert.LessOrEqual(t, groceries, 1)
}

func TestAddonTimestamp_ClampsToCalendarDay(t *testing.T) {
	p := New("U", "C", "GB", tripProfile(1.0, 1, 120), merchant.Builtin(), rand.New(rand.NewSource(13)))

	// Trigger at 23:50 with a 2-hour window: offsets past midnight must
	// clamp to 23:59:59.
	trigger := time.Date(2025, 1, 1, 23, 50, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		ts := p.addonTimestamp(trigger)
		assert.Equal(t, 1, ts.Day())
		assert.False(t, ts.After(time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC)))
	}

	// And at 00:05 the other edge clamps to midnight.
	trigger = time.Date(2025, 1, 1, 0, 5, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		ts := p.addonTimestamp(trigger)
		assert.Equal(t, 1, ts.Day())
		assert.False(t, ts.Before(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	}
}
