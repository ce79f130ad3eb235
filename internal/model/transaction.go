package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one row of a bank statement export.
type Transaction struct {
	Details           string // DEBIT, CREDIT, CHECK, DSLIP
	PostingDate       time.Time
	Description       string
	Amount            decimal.Decimal // negative = debit, positive = credit
	Type              string          // bank transaction type (ACH_DEBIT, etc.)
	Balance           decimal.Decimal
	CheckOrSlipNumber string // empty unless the row is a check or deposit slip
}

// CategorizedTransaction is a Transaction with its assigned spending category.
type CategorizedTransaction struct {
	Transaction
	Category Category
}

// Month returns the first day of the transaction's posting month in UTC.
func (t Transaction) Month() time.Time {
	return time.Date(t.PostingDate.Year(), t.PostingDate.Month(), 1, 0, 0, 0, 0, time.UTC)
}
