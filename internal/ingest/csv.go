// Package ingest parses transaction batches from CSV files for the import
// endpoint and CLI.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fincoach/backend/internal/analytics"
	"github.com/fincoach/backend/internal/model"
)

// Expected header: id,date,amount,category,name,merchant_name
// id, category, and merchant_name may be empty per row.
var expectedHeader = []string{"id", "date", "amount", "category", "name", "merchant_name"}

// ReadTransactionsCSV parses one CSV transaction batch. Amounts are parsed
// exactly as decimals before conversion so "15.99" never picks up binary
// noise from an intermediate float, and dates are calendar days (YYYY-MM-DD).
func ReadTransactionsCSV(r io.Reader) ([]*model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(expectedHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var transactions []*model.Transaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		line++

		tx, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(expectedHeader), len(header))
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != expectedHeader[i] {
			return fmt.Errorf("unexpected column %q, want %q", col, expectedHeader[i])
		}
	}
	return nil
}

func parseRow(record []string) (*model.Transaction, error) {
	name := strings.TrimSpace(record[4])
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	date, err := analytics.ParseDate(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("could not parse date %q: %w", record[1], err)
	}

	amountDec, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("could not parse amount %q: %w", record[2], err)
	}
	amount, _ := amountDec.Round(2).Float64()

	tx := &model.Transaction{
		ID:     strings.TrimSpace(record[0]),
		Date:   date,
		Amount: amount,
		Name:   name,
	}
	if category := strings.TrimSpace(record[3]); category != "" {
		tx.Category = &category
	}
	if merchant := strings.TrimSpace(record[5]); merchant != "" {
		tx.MerchantName = &merchant
	}
	return tx, nil
}
