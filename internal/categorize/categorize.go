package categorize

import "github.com/cleared-dev/spendtrend/internal/model"

// Categorize classifies every transaction by its description. The result has
// the same length and order as txns.
func (c *Classifier) Categorize(txns []model.Transaction) []model.CategorizedTransaction {
	out := make([]model.CategorizedTransaction, len(txns))
	for i, txn := range txns {
		out[i] = model.CategorizedTransaction{
			Transaction: txn,
			Category:    c.Classify(txn.Description),
		}
	}
	return out
}

// Recategorize reclassifies already categorized transactions, e.g. after the
// rule set changed. Applying the same rules twice yields the same categories.
func (c *Classifier) Recategorize(txns []model.CategorizedTransaction) []model.CategorizedTransaction {
	out := make([]model.CategorizedTransaction, len(txns))
	for i, txn := range txns {
		out[i] = model.CategorizedTransaction{
			Transaction: txn.Transaction,
			Category:    c.Classify(txn.Description),
		}
	}
	return out
}
