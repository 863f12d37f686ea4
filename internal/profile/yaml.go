package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dvloznov/cardsim/internal/curve"
)

// yamlProfile is the on-disk shape of a profile file.
type yamlProfile struct {
	Name       string                  `yaml:"name"`
	Categories map[string]yamlCategory `yaml:"categories"`
	Recurring  []yamlRecurring         `yaml:"recurring,omitempty"`
	Trip       *yamlTrip               `yaml:"trip,omitempty"`
}

type yamlCategory struct {
	Weekday    *yamlCurve `yaml:"weekday,omitempty"`
	Weekend    *yamlCurve `yaml:"weekend,omitempty"`
	AmountMean float64    `yaml:"amount_mean"`
	AmountStd  float64    `yaml:"amount_std"`
}

// yamlCurve is either an explicit 24-value hours array or a peak triple.
type yamlCurve struct {
	Hours []float64 `yaml:"hours,omitempty"`

	PeakHour float64 `yaml:"peak_hour,omitempty"`
	StdDev   float64 `yaml:"std_dev,omitempty"`
	MaxProb  float64 `yaml:"max_prob,omitempty"`
}

type yamlRecurring struct {
	Category string `yaml:"category"`
	Day      int    `yaml:"day"`
}

type yamlTrip struct {
	TriggerCategory string      `yaml:"trigger_category"`
	TriggerProb     float64     `yaml:"trigger_prob"`
	MaxAddons       int         `yaml:"max_addons"`
	WindowMinutes   int         `yaml:"window_minutes"`
	Addons          []yamlAddon `yaml:"addons"`
}

type yamlAddon struct {
	Category string  `yaml:"category"`
	Weight   float64 `yaml:"weight"`
}

// Encode renders a profile back to YAML with explicit 24-value hour arrays.
// Used to persist drafted profiles in the same schema Parse accepts.
func Encode(p *Profile) ([]byte, error) {
	raw := yamlProfile{
		Name:       p.Name,
		Categories: make(map[string]yamlCategory, len(p.Categories)),
	}
	for name, r := range p.Categories {
		c := yamlCategory{AmountMean: r.AmountMean, AmountStd: r.AmountStd}
		if r.ProbWeekday != nil {
			c.Weekday = &yamlCurve{Hours: append([]float64(nil), r.ProbWeekday...)}
		}
		if r.ProbWeekend != nil {
			c.Weekend = &yamlCurve{Hours: append([]float64(nil), r.ProbWeekend...)}
		}
		raw.Categories[name] = c
	}
	for _, rr := range p.Recurring {
		raw.Recurring = append(raw.Recurring, yamlRecurring{Category: rr.Category, Day: rr.Day})
	}
	if p.Trip != nil {
		t := &yamlTrip{
			TriggerCategory: p.Trip.TriggerCategory,
			TriggerProb:     p.Trip.TriggerProb,
			MaxAddons:       p.Trip.MaxAddons,
			WindowMinutes:   p.Trip.WindowMinutes,
		}
		for _, a := range p.Trip.Addons {
			t.Addons = append(t.Addons, yamlAddon{Category: a.Category, Weight: a.Weight})
		}
		raw.Trip = t
	}

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return nil, fmt.Errorf("profile: marshal yaml: %w", err)
	}
	return data, nil
}

// LoadFile reads and validates a profile from a YAML file.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a profile from YAML bytes.
func Parse(data []byte) (*Profile, error) {
	var raw yamlProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("profile: unmarshal yaml: %w", err)
	}

	if raw.Name == "" {
		return nil, fmt.Errorf("profile: missing name")
	}
	if len(raw.Categories) == 0 {
		return nil, fmt.Errorf("profile %q: no categories", raw.Name)
	}

	p := &Profile{
		Name:       raw.Name,
		Categories: make(map[string]*CategoryRule, len(raw.Categories)),
	}

	for name, c := range raw.Categories {
		rule := &CategoryRule{
			AmountMean: c.AmountMean,
			AmountStd:  c.AmountStd,
		}
		if rule.AmountMean <= 0 {
			return nil, fmt.Errorf("profile %q: category %q: amount_mean must be positive", raw.Name, name)
		}
		if rule.AmountStd < 0 {
			return nil, fmt.Errorf("profile %q: category %q: amount_std must not be negative", raw.Name, name)
		}

		var err error
		if rule.ProbWeekday, err = buildCurve(c.Weekday); err != nil {
			return nil, fmt.Errorf("profile %q: category %q: weekday: %w", raw.Name, name, err)
		}
		if rule.ProbWeekend, err = buildCurve(c.Weekend); err != nil {
			return nil, fmt.Errorf("profile %q: category %q: weekend: %w", raw.Name, name, err)
		}

		p.Categories[name] = rule
	}

	for _, r := range raw.Recurring {
		if _, ok := p.Categories[r.Category]; !ok {
			return nil, fmt.Errorf("profile %q: recurring rule references unknown category %q", raw.Name, r.Category)
		}
		if r.Day < 1 || r.Day > 31 {
			return nil, fmt.Errorf("profile %q: recurring rule for %q: day %d out of range 1-31", raw.Name, r.Category, r.Day)
		}
		p.Recurring = append(p.Recurring, RecurringRule{Category: r.Category, Day: r.Day})
	}

	if raw.Trip != nil {
		trip, err := buildTrip(raw.Trip, p)
		if err != nil {
			return nil, fmt.Errorf("profile %q: trip: %w", raw.Name, err)
		}
		p.Trip = trip
	}

	return p, nil
}

func buildCurve(c *yamlCurve) ([]float64, error) {
	if c == nil {
		return nil, nil
	}
	if len(c.Hours) > 0 {
		if len(c.Hours) != curve.HoursPerDay {
			return nil, fmt.Errorf("hours array has %d values, want %d", len(c.Hours), curve.HoursPerDay)
		}
		for h, v := range c.Hours {
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("hour %d: probability %v outside [0,1]", h, v)
			}
		}
		return append([]float64(nil), c.Hours...), nil
	}
	if c.StdDev <= 0 {
		return nil, fmt.Errorf("std_dev must be positive")
	}
	if c.MaxProb < 0 || c.MaxProb > 1 {
		return nil, fmt.Errorf("max_prob %v outside [0,1]", c.MaxProb)
	}
	return curve.Hourly(c.PeakHour, c.StdDev, c.MaxProb), nil
}

func buildTrip(t *yamlTrip, p *Profile) (*TripConfig, error) {
	if _, ok := p.Categories[t.TriggerCategory]; !ok {
		return nil, fmt.Errorf("trigger category %q not in profile", t.TriggerCategory)
	}
	if t.TriggerProb < 0 || t.TriggerProb > 1 {
		return nil, fmt.Errorf("trigger_prob %v outside [0,1]", t.TriggerProb)
	}
	if t.MaxAddons < 0 {
		return nil, fmt.Errorf("max_addons must not be negative")
	}
	if t.WindowMinutes <= 0 {
		return nil, fmt.Errorf("window_minutes must be positive")
	}
	if len(t.Addons) == 0 {
		return nil, fmt.Errorf("no addon categories")
	}

	trip := &TripConfig{
		TriggerCategory: t.TriggerCategory,
		TriggerProb:     t.TriggerProb,
		MaxAddons:       t.MaxAddons,
		WindowMinutes:   t.WindowMinutes,
	}
	for _, a := range t.Addons {
		if a.Weight <= 0 {
			return nil, fmt.Errorf("addon %q: weight must be positive", a.Category)
		}
		trip.Addons = append(trip.Addons, TripAddon{Category: a.Category, Weight: a.Weight})
	}
	return trip, nil
}
