// Package export writes categorized transactions as CSV for spreadsheets and
// other downstream tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/spendtrend/internal/model"
)

// Header is the CSV header for exported categorized transactions.
const Header = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #,Category"

const (
	numFields   = 8
	dateFormat  = "01/02/2006"
	colDetails  = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colType     = 4
	colBalance  = 5
	colCheckNum = 6
	colCategory = 7
)

// WriteCategorized writes txns (including header) to w.
func WriteCategorized(w io.Writer, txns []model.CategorizedTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(marshalRow(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// marshalRow converts a CategorizedTransaction to a CSV row.
func marshalRow(txn model.CategorizedTransaction) []string {
	row := make([]string, numFields)
	row[colDetails] = txn.Details
	row[colDate] = txn.PostingDate.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colType] = txn.Type
	row[colBalance] = txn.Balance.StringFixed(2)
	row[colCheckNum] = txn.CheckOrSlipNumber
	row[colCategory] = string(txn.Category)
	return row
}
