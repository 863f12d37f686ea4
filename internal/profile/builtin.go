package profile

import "fmt"

// Built-in profile names.
const (
	NameCommuter = "commuter"
	NameStudent  = "student"
	NameFamily   = "family"
	NameNightOwl = "night_owl"
)

// ByName returns a fresh copy of the named built-in profile.
func ByName(name string) (*Profile, error) {
	switch name {
	case NameCommuter:
		return Commuter(), nil
	case NameStudent:
		return Student(), nil
	case NameFamily:
		return Family(), nil
	case NameNightOwl:
		return NightOwl(), nil
	}
	return nil, fmt.Errorf("profile: unknown built-in profile %q", name)
}

// BuiltinNames lists the built-in profiles in a stable order.
func BuiltinNames() []string {
	return []string{NameCommuter, NameFamily, NameNightOwl, NameStudent}
}

// Commuter is a weekday-routine office worker: morning coffee, a sharp lunch
// peak, commuting on public transport, weekend grocery runs.
func Commuter() *Profile {
	return &Profile{
		Name: NameCommuter,
		Categories: map[string]*CategoryRule{
			"coffee": {
				ProbWeekday: hourly(8, 1, 0.9),
				ProbWeekend: hourly(11, 2, 0.3),
				AmountMean:  4.50,
				AmountStd:   0.50,
			},
			"lunch": {
				ProbWeekday: hourly(12.5, 0.5, 0.95),
				ProbWeekend: hourly(13, 3, 0.2),
				AmountMean:  12.00,
				AmountStd:   2.00,
			},
			"groceries": {
				ProbWeekday: hourly(18, 1, 0.1),
				ProbWeekend: hourly(14, 2, 0.6),
				AmountMean:  120.00,
				AmountStd:   35.00,
			},
			"transport_public": {
				ProbWeekday: hourly(8.5, 0.75, 0.85),
				ProbWeekend: hourly(12, 4, 0.15),
				AmountMean:  2.80,
				AmountStd:   0.40,
			},
			"transport_ride_hail": {
				ProbWeekday: hourly(18, 3, 0.08),
				ProbWeekend: hourly(23, 2, 0.2),
				AmountMean:  14.00,
				AmountStd:   4.00,
			},
			"online_shopping": {
				ProbWeekday: hourly(20, 2, 0.12),
				ProbWeekend: hourly(15, 4, 0.18),
				AmountMean:  45.00,
				AmountStd:   20.00,
			},
			"utility_bill": {AmountMean: 120.00, AmountStd: 20.00},
			"phone_bill":   {AmountMean: 35.00, AmountStd: 3.00},
			"subscription": {AmountMean: 11.99, AmountStd: 2.00},
		},
		Recurring: []RecurringRule{
			{Category: "utility_bill", Day: 5},
			{Category: "phone_bill", Day: 15},
			{Category: "subscription", Day: 2},
		},
		Trip: &TripConfig{
			TriggerCategory: "groceries",
			TriggerProb:     0.35,
			MaxAddons:       2,
			WindowMinutes:   45,
			Addons: []TripAddon{
				{Category: "coffee", Weight: 2},
				{Category: "lunch", Weight: 1.5},
				{Category: "transport_ride_hail", Weight: 1},
			},
		},
	}
}

// Student wakes late, orders food at night, and lives on small amounts.
func Student() *Profile {
	return &Profile{
		Name: NameStudent,
		Categories: map[string]*CategoryRule{
			"coffee": {
				ProbWeekday: hourly(11, 2, 0.5),
				ProbWeekend: hourly(13, 3, 0.4),
				AmountMean:  3.50,
				AmountStd:   0.50,
			},
			"food_delivery": {
				ProbWeekday: hourly(22, 1.5, 0.7),
				ProbWeekend: hourly(23, 1.5, 0.8),
				AmountMean:  25.00,
				AmountStd:   5.00,
			},
			"groceries": {
				ProbWeekday: hourly(18, 1, 0.1),
				ProbWeekend: hourly(14, 2, 0.6),
				AmountMean:  25.00,
				AmountStd:   10.00,
			},
			"transport_public": {
				ProbWeekday: hourly(10, 2, 0.3),
				ProbWeekend: hourly(14, 3, 0.25),
				AmountMean:  1.80,
				AmountStd:   0.30,
			},
			"online_shopping": {
				ProbWeekday: hourly(21, 2.5, 0.2),
				ProbWeekend: hourly(16, 3, 0.25),
				AmountMean:  22.00,
				AmountStd:   12.00,
			},
			"transport_ride_hail": {
				ProbWeekend: hourly(23, 1.5, 0.25),
				AmountMean:  9.00,
				AmountStd:   3.00,
			},
			"phone_bill":   {AmountMean: 18.00, AmountStd: 2.00},
			"subscription": {AmountMean: 9.99, AmountStd: 1.50},
		},
		Recurring: []RecurringRule{
			{Category: "subscription", Day: 1},
			{Category: "phone_bill", Day: 28},
		},
		Trip: &TripConfig{
			TriggerCategory: "coffee",
			TriggerProb:     0.25,
			MaxAddons:       1,
			WindowMinutes:   30,
			Addons: []TripAddon{
				{Category: "groceries", Weight: 1},
				{Category: "transport_ride_hail", Weight: 0.5},
			},
		},
	}
}

// Family does big grocery shops with bundled errands and regular bills.
func Family() *Profile {
	return &Profile{
		Name: NameFamily,
		Categories: map[string]*CategoryRule{
			"coffee": {
				ProbWeekday: hourly(9, 1.5, 0.4),
				ProbWeekend: hourly(10, 2, 0.5),
				AmountMean:  7.50,
				AmountStd:   2.00,
			},
			"lunch": {
				ProbWeekday: hourly(12.5, 1, 0.4),
				ProbWeekend: hourly(13, 2, 0.5),
				AmountMean:  35.00,
				AmountStd:   8.00,
			},
			"groceries": {
				ProbWeekday: hourly(17, 1.5, 0.35),
				ProbWeekend: hourly(11, 2, 0.7),
				AmountMean:  140.00,
				AmountStd:   40.00,
			},
			"food_delivery": {
				ProbWeekday: hourly(19, 1, 0.25),
				ProbWeekend: hourly(19, 1.5, 0.4),
				AmountMean:  38.00,
				AmountStd:   9.00,
			},
			"online_shopping": {
				ProbWeekday: hourly(21, 1.5, 0.25),
				ProbWeekend: hourly(15, 3, 0.3),
				AmountMean:  55.00,
				AmountStd:   25.00,
			},
			"transport_ride_hail": {
				ProbWeekday: hourly(17, 4, 0.1),
				ProbWeekend: hourly(22, 3, 0.15),
				AmountMean:  16.00,
				AmountStd:   5.00,
			},
			"utility_bill": {AmountMean: 180.00, AmountStd: 25.00},
			"phone_bill":   {AmountMean: 55.00, AmountStd: 5.00},
			"subscription": {AmountMean: 15.99, AmountStd: 3.00},
		},
		Recurring: []RecurringRule{
			{Category: "utility_bill", Day: 3},
			{Category: "phone_bill", Day: 20},
			{Category: "subscription", Day: 8},
		},
		Trip: &TripConfig{
			TriggerCategory: "groceries",
			TriggerProb:     0.5,
			MaxAddons:       3,
			WindowMinutes:   60,
			Addons: []TripAddon{
				{Category: "coffee", Weight: 1.5},
				{Category: "lunch", Weight: 1},
				{Category: "food_delivery", Weight: 0.5},
			},
		},
	}
}

// NightOwl is active late into the evening; its food-delivery peak sits right
// at the end of the day, which exercises the non-wrapping hourly curve.
func NightOwl() *Profile {
	return &Profile{
		Name: NameNightOwl,
		Categories: map[string]*CategoryRule{
			"coffee": {
				ProbWeekday: hourly(14, 2, 0.5),
				ProbWeekend: hourly(15, 2, 0.5),
				AmountMean:  4.00,
				AmountStd:   0.80,
			},
			"food_delivery": {
				ProbWeekday: hourly(23, 1, 0.8),
				ProbWeekend: hourly(23.5, 1.5, 0.85),
				AmountMean:  28.00,
				AmountStd:   6.00,
			},
			"groceries": {
				ProbWeekday: hourly(19, 2, 0.15),
				ProbWeekend: hourly(16, 2, 0.3),
				AmountMean:  45.00,
				AmountStd:   15.00,
			},
			"online_shopping": {
				ProbWeekday: hourly(22, 2, 0.3),
				ProbWeekend: hourly(22, 2.5, 0.35),
				AmountMean:  40.00,
				AmountStd:   18.00,
			},
			"transport_ride_hail": {
				ProbWeekday: hourly(23, 1.5, 0.5),
				ProbWeekend: hourly(23, 2, 0.6),
				AmountMean:  12.00,
				AmountStd:   4.00,
			},
			"phone_bill":   {AmountMean: 30.00, AmountStd: 3.00},
			"subscription": {AmountMean: 13.99, AmountStd: 2.50},
		},
		Recurring: []RecurringRule{
			{Category: "subscription", Day: 12},
			{Category: "phone_bill", Day: 25},
		},
		Trip: &TripConfig{
			TriggerCategory: "food_delivery",
			TriggerProb:     0.3,
			MaxAddons:       2,
			WindowMinutes:   40,
			Addons: []TripAddon{
				{Category: "transport_ride_hail", Weight: 1},
				{Category: "online_shopping", Weight: 1},
			},
		},
	}
}
