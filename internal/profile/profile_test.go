package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/cardsim/internal/curve"
)

func TestBuiltinProfilesWellFormed(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			p, err := ByName(name)
			require.NoError(t, err)
			require.Equal(t, name, p.Name)
			require.NotEmpty(t, p.Categories)

			for cat, r := range p.Categories {
				assert.Greater(t, r.AmountMean, 0.0, "category %s", cat)
				assert.GreaterOrEqual(t, r.AmountStd, 0.0, "category %s", cat)
				for _, probs := range [][]float64{r.ProbWeekday, r.ProbWeekend} {
					if probs == nil {
						continue
					}
					require.Len(t, probs, curve.HoursPerDay, "category %s", cat)
					for h, v := range probs {
						assert.GreaterOrEqual(t, v, 0.0, "category %s hour %d", cat, h)
						assert.LessOrEqual(t, v, 1.0, "category %s hour %d", cat, h)
					}
				}
			}

			for _, rr := range p.Recurring {
				_, ok := p.Categories[rr.Category]
				assert.True(t, ok, "recurring category %s missing from profile", rr.Category)
				assert.GreaterOrEqual(t, rr.Day, 1)
				assert.LessOrEqual(t, rr.Day, 28, "built-in bills should fire in every month")
			}

			if p.Trip != nil {
				_, ok := p.Categories[p.Trip.TriggerCategory]
				assert.True(t, ok, "trip trigger %s missing from profile", p.Trip.TriggerCategory)
				assert.NotEmpty(t, p.Trip.Addons)
			}
		})
	}
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName("astronaut")
	assert.Error(t, err)
}

func TestCategoryNames_Sorted(t *testing.T) {
	p := Commuter()
	names := p.CategoryNames()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestClone_Independent(t *testing.T) {
	orig := Student()
	cp := orig.Clone()

	cp.Categories["coffee"].AmountMean = 999
	cp.Categories["coffee"].ProbWeekday[0] = 1
	cp.Recurring[0].Day = 27
	cp.Trip.TriggerProb = 0.99

	assert.NotEqual(t, 999.0, orig.Categories["coffee"].AmountMean)
	assert.NotEqual(t, 1.0, orig.Categories["coffee"].ProbWeekday[0])
	assert.NotEqual(t, 27, orig.Recurring[0].Day)
	assert.NotEqual(t, 0.99, orig.Trip.TriggerProb)
}

func TestRule_KnownAndUnknown(t *testing.T) {
	p := Commuter()

	r, ok := p.Rule("coffee")
	require.True(t, ok)
	assert.Equal(t, 4.50, r.AmountMean)

	_, ok = p.Rule("yacht_maintenance")
	assert.False(t, ok)
}

func TestCurveFor(t *testing.T) {
	r := &CategoryRule{ProbWeekday: make([]float64, 24)}
	assert.NotNil(t, r.CurveFor(false))
	assert.Nil(t, r.CurveFor(true))
}
