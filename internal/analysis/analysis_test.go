package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/spendtrend/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func month(y int, m time.Month) time.Time {
	return date(y, m, 1)
}

func ctxn(d time.Time, desc, amount string, cat model.Category) model.CategorizedTransaction {
	return model.CategorizedTransaction{
		Transaction: model.Transaction{PostingDate: d, Description: desc, Amount: dec(amount)},
		Category:    cat,
	}
}

// exampleTxns is the three-transaction statement used throughout the docs.
func exampleTxns() []model.CategorizedTransaction {
	return []model.CategorizedTransaction{
		ctxn(date(2024, 1, 10), "Netflix", "-50.00", model.CategorySubscriptions),
		ctxn(date(2024, 1, 15), "CALLEN LOGISTICS PAYROLL", "2000.00", model.CategoryDirectDeposits),
		ctxn(date(2024, 2, 3), "Chipotle", "-12.00", model.CategoryFood),
	}
}

func TestSummarize_Example(t *testing.T) {
	s := Summarize(exampleTxns())
	require.Len(t, s, 3)
	assert.Equal(t, "-50.00", s[model.CategorySubscriptions].StringFixed(2))
	assert.Equal(t, "2000.00", s[model.CategoryDirectDeposits].StringFixed(2))
	assert.Equal(t, "-12.00", s[model.CategoryFood].StringFixed(2))

	_, ok := s[model.CategoryGas]
	assert.False(t, ok, "absent categories are not zero-filled")
}

func TestSummarize_ConservesTotal(t *testing.T) {
	txns := []model.CategorizedTransaction{
		ctxn(date(2024, 1, 1), "a", "0.10", model.CategoryFood),
		ctxn(date(2024, 1, 2), "b", "0.20", model.CategoryFood),
		ctxn(date(2024, 1, 3), "c", "-19.99", model.CategoryGas),
		ctxn(date(2024, 1, 4), "d", "1234.56", model.CategoryDirectDeposits),
		ctxn(date(2024, 1, 5), "e", "-0.01", model.CategoryOther),
	}
	grand := decimal.Zero
	for _, txn := range txns {
		grand = grand.Add(txn.Amount)
	}

	s := Summarize(txns)
	assert.True(t, grand.Equal(s.Total()), "got %s want %s", s.Total(), grand)
	// 0.1 + 0.2 is exact in decimal.
	assert.Equal(t, "0.30", s[model.CategoryFood].StringFixed(2))
}

func TestSummarize_ManySmallAmountsDoNotDrift(t *testing.T) {
	var txns []model.CategorizedTransaction
	for i := 0; i < 10000; i++ {
		txns = append(txns, ctxn(date(2024, 1, 1), "coffee", "-0.01", model.CategoryFood))
	}
	assert.Equal(t, "-100.00", Summarize(txns)[model.CategoryFood].StringFixed(2))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Empty(t, s)
	assert.True(t, s.Total().IsZero())
}

func TestCategorySummary_Ordering(t *testing.T) {
	s := CategorySummary{
		model.CategoryShopping:       dec("-88.20"),
		model.CategoryDirectDeposits: dec("3500.00"),
		model.CategoryTolls:          dec("-25.00"),
		model.CategoryFood:           dec("-25.00"),
	}

	var labels []model.Category
	for _, ct := range s.ByLabel() {
		labels = append(labels, ct.Category)
	}
	assert.Equal(t, []model.Category{model.CategoryDirectDeposits, model.CategoryFood, model.CategoryShopping, model.CategoryTolls}, labels)

	labels = nil
	for _, ct := range s.ByAmount() {
		labels = append(labels, ct.Category)
	}
	assert.Equal(t, []model.Category{model.CategoryShopping, model.CategoryFood, model.CategoryTolls, model.CategoryDirectDeposits}, labels)
}

func TestAnalyzeTrends_Example(t *testing.T) {
	ts, err := AnalyzeTrends(exampleTxns(), TrendOptions{})
	require.NoError(t, err)

	require.Len(t, ts.Months, 2)
	assert.Equal(t, month(2024, time.January), ts.Months[0].Month)
	assert.Equal(t, "1950.00", ts.Months[0].Net.StringFixed(2))
	assert.False(t, ts.Months[0].HasChange)
	assert.Equal(t, month(2024, time.February), ts.Months[1].Month)
	assert.Equal(t, "-12.00", ts.Months[1].Net.StringFixed(2))
	assert.True(t, ts.Months[1].HasChange)
	assert.Equal(t, "-1962.00", ts.Months[1].Change.StringFixed(2))

	assert.Equal(t, DirectionDecreasing, ts.Direction)
	assert.InDelta(t, -1962.0, ts.Slope, 1e-9)
	assert.InDelta(t, 1950.0, ts.Intercept, 1e-9)

	assert.Equal(t, month(2024, time.February), ts.HighestIncrease.Month)
	assert.Equal(t, month(2024, time.February), ts.HighestDecrease.Month)
	assert.Equal(t, "-1962.00", ts.HighestDecrease.Change.StringFixed(2))
}

func TestAnalyzeTrends_ThreeMonths(t *testing.T) {
	txns := []model.CategorizedTransaction{
		ctxn(date(2024, 3, 1), "deposit", "1500.00", model.CategoryDirectDeposits),
		ctxn(date(2024, 1, 5), "payroll", "2000.00", model.CategoryDirectDeposits),
		ctxn(date(2024, 2, 10), "walmart", "-413.20", model.CategoryShopping),
		ctxn(date(2024, 1, 9), "starbucks", "-64.34", model.CategoryFood),
		ctxn(date(2024, 3, 4), "bagel", "-9.25", model.CategoryFood),
	}

	ts, err := AnalyzeTrends(txns, TrendOptions{})
	require.NoError(t, err)
	require.Len(t, ts.Months, 3)

	// Chronological regardless of input order.
	assert.Equal(t, "1935.66", ts.Months[0].Net.StringFixed(2))
	assert.Equal(t, "-413.20", ts.Months[1].Net.StringFixed(2))
	assert.Equal(t, "1490.75", ts.Months[2].Net.StringFixed(2))

	assert.Equal(t, DirectionDecreasing, ts.Direction)
	assert.InDelta(t, -222.455, ts.Slope, 1e-6)
	assert.InDelta(t, 1226.858333, ts.Intercept, 1e-5)

	assert.Equal(t, month(2024, time.March), ts.HighestIncrease.Month)
	assert.Equal(t, "1903.95", ts.HighestIncrease.Change.StringFixed(2))
	assert.Equal(t, month(2024, time.February), ts.HighestDecrease.Month)
	assert.Equal(t, "-2348.86", ts.HighestDecrease.Change.StringFixed(2))
}

func TestAnalyzeTrends_Directions(t *testing.T) {
	tests := []struct {
		name string
		nets []string
		want Direction
	}{
		{"increasing", []string{"10", "20", "30"}, DirectionIncreasing},
		{"decreasing", []string{"30", "20", "10"}, DirectionDecreasing},
		{"flat", []string{"-5.55", "-5.55", "-5.55", "-5.55"}, DirectionStable},
		{"symmetric", []string{"10", "0", "10"}, DirectionStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txns []model.CategorizedTransaction
			for i, n := range tt.nets {
				txns = append(txns, ctxn(date(2023, time.Month(i+1), 15), "x", n, model.CategoryOther))
			}
			ts, err := AnalyzeTrends(txns, TrendOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.Direction)
			if tt.want == DirectionStable {
				assert.Zero(t, ts.Slope)
			}
		})
	}
}

func TestAnalyzeTrends_TiesKeepEarliestMonth(t *testing.T) {
	txns := []model.CategorizedTransaction{
		ctxn(date(2024, 1, 1), "x", "0", model.CategoryOther),
		ctxn(date(2024, 2, 1), "x", "10", model.CategoryOther),
		ctxn(date(2024, 3, 1), "x", "20", model.CategoryOther),
	}
	ts, err := AnalyzeTrends(txns, TrendOptions{})
	require.NoError(t, err)
	assert.Equal(t, month(2024, time.February), ts.HighestIncrease.Month)
	assert.Equal(t, month(2024, time.February), ts.HighestDecrease.Month)
}

func TestAnalyzeTrends_FirstMonthExcludedFromExtrema(t *testing.T) {
	// Every defined change is negative; the undefined first change must not
	// be read as a zero "increase".
	txns := []model.CategorizedTransaction{
		ctxn(date(2024, 1, 1), "x", "300", model.CategoryOther),
		ctxn(date(2024, 2, 1), "x", "200", model.CategoryOther),
		ctxn(date(2024, 3, 1), "x", "50", model.CategoryOther),
	}
	ts, err := AnalyzeTrends(txns, TrendOptions{})
	require.NoError(t, err)
	assert.Equal(t, month(2024, time.February), ts.HighestIncrease.Month)
	assert.Equal(t, "-100.00", ts.HighestIncrease.Change.StringFixed(2))
	assert.Equal(t, month(2024, time.March), ts.HighestDecrease.Month)
}

func TestAnalyzeTrends_InsufficientData(t *testing.T) {
	oneMonth := []model.CategorizedTransaction{
		ctxn(date(2024, 1, 3), "Netflix", "-50.00", model.CategorySubscriptions),
		ctxn(date(2024, 1, 20), "Chipotle", "-12.00", model.CategoryFood),
	}
	ts, err := AnalyzeTrends(oneMonth, TrendOptions{})
	require.ErrorIs(t, err, ErrInsufficientTrendData)
	require.Len(t, ts.Months, 1)
	assert.Equal(t, "-62.00", ts.Months[0].Net.StringFixed(2))
	assert.Empty(t, ts.Direction)

	ts, err = AnalyzeTrends(nil, TrendOptions{FillGaps: true})
	require.ErrorIs(t, err, ErrInsufficientTrendData)
	assert.Empty(t, ts.Months)
}

func TestAnalyzeTrends_GapMonths(t *testing.T) {
	txns := []model.CategorizedTransaction{
		ctxn(date(2023, 12, 5), "x", "100", model.CategoryOther),
		ctxn(date(2024, 2, 5), "x", "300", model.CategoryOther),
	}

	ts, err := AnalyzeTrends(txns, TrendOptions{})
	require.NoError(t, err)
	require.Len(t, ts.Months, 2, "months without transactions are skipped")
	assert.InDelta(t, 200.0, ts.Slope, 1e-9)

	ts, err = AnalyzeTrends(txns, TrendOptions{FillGaps: true})
	require.NoError(t, err)
	require.Len(t, ts.Months, 3)
	assert.Equal(t, month(2024, time.January), ts.Months[1].Month)
	assert.True(t, ts.Months[1].Net.IsZero())
	assert.InDelta(t, 100.0, ts.Slope, 1e-9)
	assert.Equal(t, month(2024, time.January), ts.HighestDecrease.Month)
	assert.Equal(t, month(2024, time.February), ts.HighestIncrease.Month)
}

func TestMonthlyNetAmounts_IgnoresTimeOfDay(t *testing.T) {
	txns := []model.CategorizedTransaction{
		ctxn(time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC), "x", "1", model.CategoryOther),
		ctxn(date(2024, 5, 1), "x", "2", model.CategoryOther),
	}
	series := MonthlyNetAmounts(txns, false)
	require.Len(t, series, 1)
	assert.Equal(t, month(2024, time.May), series[0].Month)
	assert.Equal(t, "3", series[0].Net.String())
}
