package engine

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/cardsim/internal/domain"
	"github.com/dvloznov/cardsim/internal/profile"
)

// Category policy sets. These are engine policy, not profile data: every
// profile is subject to the same caps.
var (
	// onceDaily categories yield at most one transaction per persona per
	// calendar day.
	onceDaily = map[string]bool{
		"lunch":        true,
		"groceries":    true,
		"utility_bill": true,
	}

	// transportCapped categories are limited to transportDailyCap
	// occurrences per persona per day.
	transportCapped = map[string]bool{
		"transport_public":    true,
		"transport_ride_hail": true,
	}
)

const transportDailyCap = 4

// recurringLatestHour bounds the hour drawn for recurring payments: bills
// post in the night-to-morning window {0..8}.
const recurringLatestHour = 8

// SimulateDay produces one simulated day of transactions for the persona.
// nextID is the first transaction id to assign; the updated counter is
// returned so the caller can thread it into the next call.
//
// The returned slice is in generation order: the recurring pass first, then
// the hourly pass in ascending hour, with trip add-ons inserted immediately
// after their trigger transaction. It is NOT globally timestamp-sorted.
func (p *Persona) SimulateDay(date civil.Date, nextID int64) ([]domain.Transaction, int64) {
	weekend := isWeekend(date)
	state := newDayState()

	var txns []domain.Transaction

	// Recurring pass: fixed day-of-month bills.
	for _, rule := range p.recurring {
		if rule.Day != date.Day {
			continue
		}
		r, ok := p.rules[rule.Category]
		if !ok {
			continue // configuration gap: skip, keep simulating
		}
		hour := p.rng.Intn(recurringLatestHour + 1)
		ts := p.randomTimeInHour(date, hour)
		tx, ok := p.emit(rule.Category, r, ts, &nextID)
		if !ok {
			continue
		}
		txns = append(txns, tx)
		state.counts[rule.Category]++
		if onceDaily[rule.Category] {
			state.usedOnce[rule.Category] = true
		}
	}

	// Hourly pass.
	for hour := 0; hour < 24; hour++ {
		for _, cat := range p.categories {
			if onceDaily[cat] && state.usedOnce[cat] {
				continue
			}
			if transportCapped[cat] && state.counts[cat] >= transportDailyCap {
				continue
			}
			r := p.rules[cat]
			probs := r.CurveFor(weekend)
			if probs == nil {
				continue // persona is inactive in this category on this day type
			}
			if p.rng.Float64() >= probs[hour] {
				continue
			}

			ts := p.randomTimeInHour(date, hour)
			tx, ok := p.emit(cat, r, ts, &nextID)
			if !ok {
				// Empty merchant pool: the transaction is suppressed and
				// per-day state stays untouched.
				continue
			}
			txns = append(txns, tx)
			state.counts[cat]++
			if onceDaily[cat] {
				state.usedOnce[cat] = true
			}

			if p.trip != nil && cat == p.trip.TriggerCategory {
				txns = append(txns, p.tripAddons(state, tx, &nextID)...)
			}
		}
	}

	return txns, nextID
}

// emit samples an amount, picks a merchant, and builds the transaction.
// It reports false when the category has no merchants to transact with:
// the configuration gap suppresses the transaction rather than emitting a
// record with no counterparty.
func (p *Persona) emit(cat string, r *profile.CategoryRule, ts time.Time, nextID *int64) (domain.Transaction, bool) {
	amount := p.sampleAmount(cat, r)

	entry, ok := p.catalog.Entry(cat)
	if !ok {
		return domain.Transaction{}, false
	}
	merchantID, ok := p.chooseMerchant(cat, entry.IDs)
	if !ok {
		return domain.Transaction{}, false
	}

	tx := domain.Transaction{
		ID:               *nextID,
		Timestamp:        ts,
		UserID:           p.UserID,
		CardID:           p.CardID,
		HomeCountry:      p.HomeCountry,
		Amount:           amount,
		MerchantID:       merchantID,
		MerchantCategory: cat,
		MerchantCountry:  entry.Country,
		Channel:          entry.Channel,
		IsFraud:          0,
	}
	*nextID++
	return tx, true
}

func (p *Persona) randomTimeInHour(date civil.Date, hour int) time.Time {
	minute := p.rng.Intn(60)
	second := p.rng.Intn(60)
	return time.Date(date.Year, date.Month, date.Day, hour, minute, second, 0, time.UTC)
}

func isWeekend(date civil.Date) bool {
	wd := date.In(time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
