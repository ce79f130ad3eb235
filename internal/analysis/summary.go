// Package analysis reduces categorized transactions into per-category totals
// and month-over-month trends.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendtrend/internal/model"
)

// CategorySummary maps each category present in the input to the signed sum
// of its amounts. Categories with no transactions are absent.
type CategorySummary map[model.Category]decimal.Decimal

// CategoryTotal is one entry of a CategorySummary.
type CategoryTotal struct {
	Category model.Category
	Total    decimal.Decimal
}

// Summarize groups transactions by category and sums their amounts exactly.
func Summarize(txns []model.CategorizedTransaction) CategorySummary {
	s := make(CategorySummary)
	for _, txn := range txns {
		s[txn.Category] = s[txn.Category].Add(txn.Amount)
	}
	return s
}

// Total returns the sum over all categories.
func (s CategorySummary) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range s {
		total = total.Add(amt)
	}
	return total
}

// ByLabel returns the totals sorted alphabetically by category label.
func (s CategorySummary) ByLabel() []CategoryTotal {
	out := s.entries()
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// ByAmount returns the totals sorted ascending by amount, largest debit first.
// Equal totals are ordered by label.
func (s CategorySummary) ByAmount() []CategoryTotal {
	out := s.entries()
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c < 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (s CategorySummary) entries() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(s))
	for c, amt := range s {
		out = append(out, CategoryTotal{Category: c, Total: amt})
	}
	return out
}
