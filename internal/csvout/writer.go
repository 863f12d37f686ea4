// Package csvout writes simulation output as a tabular CSV file, one row
// per transaction, in the column order downstream consumers expect.
package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dvloznov/cardsim/internal/domain"
)

// Header is the output column order.
var Header = []string{
	"Transaction_id",
	"Timestamp",
	"user_id",
	"Card_id",
	"home_country",
	"Transaction amount",
	"merchant_id",
	"merchant_category",
	"merchant_country",
	"Channel",
	"is_fraud",
}

const timestampLayout = "2006-01-02 15:04:05"

// Write streams the transactions as CSV to w, header first.
func Write(w io.Writer, txns []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csvout: write header: %w", err)
	}
	for _, t := range txns {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Timestamp.Format(timestampLayout),
			t.UserID,
			t.CardID,
			t.HomeCountry,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.MerchantID,
			t.MerchantCategory,
			t.MerchantCountry,
			string(t.Channel),
			strconv.Itoa(t.IsFraud),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csvout: write transaction %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvout: flush: %w", err)
	}
	return nil
}

// WriteFile writes the transactions to a CSV file at path.
func WriteFile(path string, txns []domain.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvout: create %q: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, txns); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csvout: close %q: %w", path, err)
	}
	return nil
}
