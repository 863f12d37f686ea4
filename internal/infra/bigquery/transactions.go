package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/cardsim/internal/domain"
)

// SimulatedTransactionRow maps one simulated transaction into the
// cardsim.simulated_transactions table schema.
type SimulatedTransactionRow struct {
	TransactionID int64  `bigquery:"transaction_id"` // REQUIRED
	RunID         string `bigquery:"run_id"`         // REQUIRED

	UserID      string `bigquery:"user_id"`      // REQUIRED
	CardID      string `bigquery:"card_id"`      // REQUIRED
	HomeCountry string `bigquery:"home_country"` // REQUIRED

	TransactionDate civil.Date     `bigquery:"transaction_date"` // REQUIRED
	BookingDatetime civil.DateTime `bigquery:"booking_datetime"` // REQUIRED

	Amount *big.Rat `bigquery:"amount"` // REQUIRED NUMERIC

	MerchantID       string `bigquery:"merchant_id"`       // REQUIRED
	MerchantCategory string `bigquery:"merchant_category"` // REQUIRED
	MerchantCountry  string `bigquery:"merchant_country"`  // REQUIRED
	Channel          string `bigquery:"channel"`           // REQUIRED

	IsFraud int64 `bigquery:"is_fraud"` // REQUIRED, always 0 from the engine

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED (default CURRENT_TIMESTAMP)
}

// RowFromTransaction converts an engine transaction into its table row,
// tagging it with the run it came from.
func RowFromTransaction(runID string, t domain.Transaction) *SimulatedTransactionRow {
	return &SimulatedTransactionRow{
		TransactionID:    t.ID,
		RunID:            runID,
		UserID:           t.UserID,
		CardID:           t.CardID,
		HomeCountry:      t.HomeCountry,
		TransactionDate:  civil.DateOf(t.Timestamp),
		BookingDatetime:  civil.DateTimeOf(t.Timestamp),
		Amount:           new(big.Rat).SetFloat64(t.Amount),
		MerchantID:       t.MerchantID,
		MerchantCategory: t.MerchantCategory,
		MerchantCountry:  t.MerchantCountry,
		Channel:          string(t.Channel),
		IsFraud:          int64(t.IsFraud),
		CreatedTS:        time.Now().UTC(),
	}
}
