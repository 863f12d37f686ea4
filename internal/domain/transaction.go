package domain

import (
	"time"
)

// Channel is the payment channel a merchant trades over.
type Channel string

const (
	ChannelPOS    Channel = "POS"
	ChannelOnline Channel = "Online"
)

// Transaction represents one simulated card purchase. It is a value object:
// created once by the behavior engine and never mutated afterwards. Ownership
// of the day's slice passes to the simulation driver.
type Transaction struct {
	ID          int64     // unique, strictly increasing across a run
	Timestamp   time.Time // purchase time, second precision
	UserID      string
	CardID      string
	HomeCountry string

	Amount float64 // always >= 0.01, rounded to 2 decimal places

	MerchantID       string
	MerchantCategory string
	MerchantCountry  string
	Channel          Channel

	// IsFraud is always 0 here: this engine emits baseline behavior only.
	// Fraud injection is the job of a downstream collaborator.
	IsFraud int
}
