package engine

import (
	"math"
	"math/rand"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/cardsim/internal/domain"
	"github.com/dvloznov/cardsim/internal/merchant"
	"github.com/dvloznov/cardsim/internal/profile"
)

func newTestPersona(t *testing.T, prof *profile.Profile, seed int64) *Persona {
	t.Helper()
	return New("USER_TEST_1", "CARD_TEST_1_A", "GB", prof, merchant.Builtin(), rand.New(rand.NewSource(seed)))
}

// simulateRange runs consecutive days threading the id counter, collecting
// everything.
func simulateRange(p *Persona, start civil.Date, days int) []domain.Transaction {
	var all []domain.Transaction
	nextID := int64(1)
	for d := 0; d < days; d++ {
		var daily []domain.Transaction
		daily, nextID = p.SimulateDay(start.AddDays(d), nextID)
		all = append(all, daily...)
	}
	return all
}

func TestSimulateDay_AmountsFlooredAndRounded(t *testing.T) {
	p := newTestPersona(t, profile.Commuter(), 42)
	txns := simulateRange(p, civil.Date{Year: 2025, Month: 1, Day: 1}, 60)
	require.NotEmpty(t, txns)

	for _, tx := range txns {
		assert.GreaterOrEqual(t, tx.Amount, 0.01, "tx %d", tx.ID)
		cents := tx.Amount * 100
		assert.InDelta(t, math.Round(cents), cents, 1e-6, "tx %d: amount %v not a 2-decimal value", tx.ID, tx.Amount)
	}
}

func TestSimulateDay_OncePerDayCategories(t *testing.T) {
	p := newTestPersona(t, profile.Family(), 7)
	start := civil.Date{Year: 2025, Month: 3, Day: 1}

	nextID := int64(1)
	for d := 0; d < 120; d++ {
		date := start.AddDays(d)
		var daily []domain.Transaction
		daily, nextID = p.SimulateDay(date, nextID)

		counts := map[string]int{}
		for _, tx := range daily {
			counts[tx.MerchantCategory]++
		}
		for _, cat := range []string{"lunch", "groceries", "utility_bill"} {
			assert.LessOrEqual(t, counts[cat], 1, "day %v: category %s", date, cat)
		}
	}
}

func TestSimulateDay_TransportCap(t *testing.T) {
	// A profile with transport probability pinned to 1 every hour would
	// produce 24 rides a day without the cap.
	flat := make([]float64, 24)
	for i := range flat {
		flat[i] = 1.0
	}
	prof := &profile.Profile{
		Name: "transport_heavy",
		Categories: map[string]*profile.CategoryRule{
			"transport_public": {
				ProbWeekday: flat,
				ProbWeekend: flat,
				AmountMean:  2.80,
				AmountStd:   0.40,
			},
			"transport_ride_hail": {
				ProbWeekday: flat,
				ProbWeekend: flat,
				AmountMean:  14.00,
				AmountStd:   4.00,
			},
		},
	}
	p := newTestPersona(t, prof, 99)

	daily, _ := p.SimulateDay(civil.Date{Year: 2025, Month: 6, Day: 2}, 1)

	counts := map[string]int{}
	for _, tx := range daily {
		counts[tx.MerchantCategory]++
	}
	assert.Equal(t, 4, counts["transport_public"])
	assert.Equal(t, 4, counts["transport_ride_hail"])
}

func TestSimulateDay_IDsStrictlyIncreasingNoGaps(t *testing.T) {
	p := newTestPersona(t, profile.Commuter(), 5)
	txns := simulateRange(p, civil.Date{Year: 2025, Month: 1, Day: 1}, 45)
	require.NotEmpty(t, txns)

	for i, tx := range txns {
		require.Equal(t, int64(i+1), tx.ID, "ids must be gap-free in generation order")
	}
}

func TestSimulateDay_RecurringRuleFiresMonthly(t *testing.T) {
	prof := &profile.Profile{
		Name: "bills_only",
		Categories: map[string]*profile.CategoryRule{
			"utility_bill": {AmountMean: 120, AmountStd: 20},
		},
		Recurring: []profile.RecurringRule{{Category: "utility_bill", Day: 5}},
	}
	p := newTestPersona(t, prof, 11)

	start := civil.Date{Year: 2025, Month: 1, Day: 1}
	byMonth := map[int][]domain.Transaction{}
	nextID := int64(1)
	for d := 0; d < 365; d++ {
		date := start.AddDays(d)
		var daily []domain.Transaction
		daily, nextID = p.SimulateDay(date, nextID)
		for _, tx := range daily {
			require.Equal(t, 5, tx.Timestamp.Day(), "recurring bill must land on the 5th")
			byMonth[int(date.Month)] = append(byMonth[int(date.Month)], tx)
		}
	}

	for m := 1; m <= 12; m++ {
		require.Len(t, byMonth[m], 1, "month %d", m)
		hour := byMonth[m][0].Timestamp.Hour()
		assert.LessOrEqual(t, hour, 8, "month %d: recurring hour", m)
	}
}

func TestSimulateDay_SkipsCategoriesMissingFromCatalog(t *testing.T) {
	flat := make([]float64, 24)
	for i := range flat {
		flat[i] = 1.0
	}
	prof := &profile.Profile{
		Name: "ghost",
		Categories: map[string]*profile.CategoryRule{
			"pet_insurance": {ProbWeekday: flat, ProbWeekend: flat, AmountMean: 30, AmountStd: 5},
			"coffee":        {ProbWeekday: flat, ProbWeekend: flat, AmountMean: 4, AmountStd: 1},
		},
	}
	p := newTestPersona(t, prof, 3)

	daily, _ := p.SimulateDay(civil.Date{Year: 2025, Month: 4, Day: 10}, 1)
	require.NotEmpty(t, daily)
	for _, tx := range daily {
		assert.Equal(t, "coffee", tx.MerchantCategory, "unknown catalog category must be suppressed silently")
	}
}

func TestSimulateDay_EmptyMerchantListSuppressesTransaction(t *testing.T) {
	flat := make([]float64, 24)
	for i := range flat {
		flat[i] = 1.0
	}
	prof := &profile.Profile{
		Name: "empty_pool",
		Categories: map[string]*profile.CategoryRule{
			"coffee": {ProbWeekday: flat, ProbWeekend: flat, AmountMean: 4, AmountStd: 1},
		},
	}
	catalog := merchant.NewCatalog(map[string]merchant.Entry{
		"coffee": {IDs: nil, Channel: domain.ChannelPOS, Country: "GB"},
	})
	p := New("U", "C", "GB", prof, catalog, rand.New(rand.NewSource(1)))

	daily, nextID := p.SimulateDay(civil.Date{Year: 2025, Month: 4, Day: 10}, 1)
	assert.Empty(t, daily)
	assert.Equal(t, int64(1), nextID, "suppressed transactions must not consume ids")
}

func TestSimulateDay_WeekdayWeekendCurveSelection(t *testing.T) {
	flat := make([]float64, 24)
	for i := range flat {
		flat[i] = 1.0
	}
	prof := &profile.Profile{
		Name: "weekday_only",
		Categories: map[string]*profile.CategoryRule{
			"coffee": {ProbWeekday: flat, AmountMean: 4, AmountStd: 1}, // no weekend curve
		},
	}
	p := newTestPersona(t, prof, 8)

	// 2025-06-02 is a Monday, 2025-06-07 a Saturday.
	weekday, _ := p.SimulateDay(civil.Date{Year: 2025, Month: 6, Day: 2}, 1)
	weekend, _ := p.SimulateDay(civil.Date{Year: 2025, Month: 6, Day: 7}, 1000)

	assert.NotEmpty(t, weekday)
	assert.Empty(t, weekend, "category without a weekend curve must not fire on Saturday")
}

func TestSimulateDay_Deterministic(t *testing.T) {
	run := func() []domain.Transaction {
		p := newTestPersona(t, profile.NightOwl(), 1234)
		return simulateRange(p, civil.Date{Year: 2025, Month: 2, Day: 1}, 30)
	}

	first := run()
	second := run()
	require.Equal(t, first, second, "equal seeds and inputs must yield identical sequences")
}

func TestSimulateDay_OutputOrderRecurringFirstThenHours(t *testing.T) {
	flat := make([]float64, 24)
	for i := range flat {
		flat[i] = 0.6
	}
	prof := &profile.Profile{
		Name: "ordered",
		Categories: map[string]*profile.CategoryRule{
			"coffee":       {ProbWeekday: flat, ProbWeekend: flat, AmountMean: 4, AmountStd: 1},
			"utility_bill": {AmountMean: 120, AmountStd: 20},
		},
		Recurring: []profile.RecurringRule{{Category: "utility_bill", Day: 5}},
	}
	p := newTestPersona(t, prof, 21)

	daily, _ := p.SimulateDay(civil.Date{Year: 2025, Month: 5, Day: 5}, 1)
	require.NotEmpty(t, daily)

	require.Equal(t, "utility_bill", daily[0].MerchantCategory, "recurring pass comes first")

	// With no trip config, the hourly pass appears strictly in ascending hour.
	prevHour := -1
	for _, tx := range daily[1:] {
		h := tx.Timestamp.Hour()
		assert.GreaterOrEqual(t, h, prevHour, "hourly pass out of order")
		prevHour = h
	}
}
