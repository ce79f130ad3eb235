package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendtrend/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports.
type ChaseParser struct{}

const (
	chaseDateFormat  = "01/02/2006"
	chaseNumFields   = 7
	chaseColDetails  = 0
	chaseColDate     = 1
	chaseColDesc     = 2
	chaseColAmount   = 3
	chaseColType     = 4
	chaseColBalance  = 5
	chaseColCheckNum = 6
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns Transactions.
func (p *ChaseParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	// Chase exports end each data row with a trailing comma, so rows may carry
	// one more field than the header.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if err := checkChaseHeader(records[0]); err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	if len(records) == 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseChaseRow(i+2, rec)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// chaseColumns is the column order of a Chase checking export.
var chaseColumns = [chaseNumFields]string{
	"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #",
}

func checkChaseHeader(rec []string) error {
	if len(rec) < chaseNumFields {
		return fmt.Errorf("header has %d fields, want %d", len(rec), chaseNumFields)
	}
	for i, want := range chaseColumns {
		got := strings.TrimSpace(rec[i])
		if i == 0 {
			got = strings.TrimSpace(strings.TrimPrefix(got, "\ufeff"))
		}
		if !strings.EqualFold(got, want) {
			return fmt.Errorf("header column %d is %q, want %q", i+1, got, want)
		}
	}
	return nil
}

func parseChaseRow(row int, rec []string) (model.Transaction, error) {
	if len(rec) < chaseNumFields {
		return model.Transaction{}, fmt.Errorf("row %d: expected %d fields, got %d", row, chaseNumFields, len(rec))
	}

	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[chaseColDate]))
	if err != nil {
		return model.Transaction{}, &MalformedRecordError{Row: row, Field: "Posting Date", Value: rec[chaseColDate], Err: err}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[chaseColAmount]))
	if err != nil {
		return model.Transaction{}, &MalformedRecordError{Row: row, Field: "Amount", Value: rec[chaseColAmount], Err: err}
	}

	// Pending rows carry no running balance.
	var balance decimal.Decimal
	if b := strings.TrimSpace(rec[chaseColBalance]); b != "" {
		balance, err = decimal.NewFromString(b)
		if err != nil {
			return model.Transaction{}, &MalformedRecordError{Row: row, Field: "Balance", Value: rec[chaseColBalance], Err: err}
		}
	}

	return model.Transaction{
		Details:           rec[chaseColDetails],
		PostingDate:       date,
		Description:       rec[chaseColDesc],
		Amount:            amount,
		Type:              rec[chaseColType],
		Balance:           balance,
		CheckOrSlipNumber: strings.TrimSpace(rec[chaseColCheckNum]),
	}, nil
}
