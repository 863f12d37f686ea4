package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/cardsim/internal/config"
	"github.com/dvloznov/cardsim/internal/domain"
)

// InsertSimulatedTransactions inserts a run's transactions into the
// simulated_transactions table, creating a short-lived client.
func InsertSimulatedTransactions(ctx context.Context, cfg config.Config, runID string, txns []domain.Transaction) error {
	client, err := bigquery.NewClient(ctx, cfg.GCPProject)
	if err != nil {
		return fmt.Errorf("InsertSimulatedTransactions: bigquery client: %w", err)
	}
	defer client.Close()

	return InsertSimulatedTransactionsWithClient(ctx, client, cfg, runID, txns)
}

// InsertSimulatedTransactionsWithClient inserts a run's transactions using
// the provided BigQuery client.
func InsertSimulatedTransactionsWithClient(ctx context.Context, client *bigquery.Client, cfg config.Config, runID string, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	rows := make([]*SimulatedTransactionRow, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, RowFromTransaction(runID, t))
	}

	table := client.DatasetInProject(cfg.GCPProject, cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertSimulatedTransactions: inserting rows: %w", err)
	}

	return nil
}

// QuerySimulatedTransactionsByRun reads back a run's rows ordered by
// transaction id, creating a short-lived client.
func QuerySimulatedTransactionsByRun(ctx context.Context, cfg config.Config, runID string) ([]*SimulatedTransactionRow, error) {
	client, err := bigquery.NewClient(ctx, cfg.GCPProject)
	if err != nil {
		return nil, fmt.Errorf("QuerySimulatedTransactionsByRun: bigquery client: %w", err)
	}
	defer client.Close()

	return QuerySimulatedTransactionsByRunWithClient(ctx, client, cfg, runID)
}

// QuerySimulatedTransactionsByRunWithClient reads back a run's rows using
// the provided BigQuery client.
func QuerySimulatedTransactionsByRunWithClient(ctx context.Context, client *bigquery.Client, cfg config.Config, runID string) ([]*SimulatedTransactionRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			transaction_id,
			run_id,
			user_id,
			card_id,
			home_country,
			transaction_date,
			booking_datetime,
			amount,
			merchant_id,
			merchant_category,
			merchant_country,
			channel,
			is_fraud,
			created_ts
		FROM %s.%s.%s
		WHERE run_id = @run_id
		ORDER BY transaction_id
	`, "`"+cfg.GCPProject+"`", cfg.BigQueryDataset, cfg.BigQueryTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QuerySimulatedTransactionsByRun: read: %w", err)
	}

	var rows []*SimulatedTransactionRow
	for {
		var row SimulatedTransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QuerySimulatedTransactionsByRun: iterate: %w", err)
		}
		rows = append(rows, &row)
	}
	return rows, nil
}
