package analysis

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendtrend/internal/model"
)

// ErrInsufficientTrendData is returned by AnalyzeTrends when the input spans
// fewer than two months, so no slope or month-over-month change exists.
var ErrInsufficientTrendData = errors.New("insufficient data for trend analysis: need at least 2 months")

// Direction is the sign of the fitted trend line.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// MonthlyNet is the net amount of one calendar month. Change is the
// difference from the previous month in the series and is only meaningful
// when HasChange is set; the first month never has one.
type MonthlyNet struct {
	Month     time.Time // first day of month, UTC
	Net       decimal.Decimal
	Change    decimal.Decimal
	HasChange bool
}

// MonthChange identifies a month by its change from the previous month.
type MonthChange struct {
	Month  time.Time
	Change decimal.Decimal
}

// TrendSummary is the result of AnalyzeTrends.
type TrendSummary struct {
	Months          []MonthlyNet
	Slope           float64
	Intercept       float64
	Direction       Direction
	HighestIncrease MonthChange
	HighestDecrease MonthChange
}

// TrendOptions tunes AnalyzeTrends.
type TrendOptions struct {
	// FillGaps inserts zero-net months for calendar months without
	// transactions between the first and last month. Without it, such months
	// are skipped and the regression treats the remaining months as evenly
	// spaced.
	FillGaps bool
}

// MonthlyNetAmounts sums amounts per posting month in chronological order and
// fills in the change from the previous month.
func MonthlyNetAmounts(txns []model.CategorizedTransaction, fillGaps bool) []MonthlyNet {
	byMonth := make(map[time.Time]decimal.Decimal)
	for _, txn := range txns {
		m := txn.Month()
		byMonth[m] = byMonth[m].Add(txn.Amount)
	}
	if len(byMonth) == 0 {
		return nil
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	if fillGaps {
		first, last := months[0], months[len(months)-1]
		months = months[:0]
		for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
			months = append(months, m)
		}
	}

	series := make([]MonthlyNet, len(months))
	for i, m := range months {
		series[i] = MonthlyNet{Month: m, Net: byMonth[m]}
		if i > 0 {
			series[i].Change = series[i].Net.Sub(series[i-1].Net)
			series[i].HasChange = true
		}
	}
	return series
}

// AnalyzeTrends computes the monthly net series, fits a least-squares line
// through it (x = 0, 1, 2, ... by month position) and finds the months with
// the largest increase and decrease. With fewer than two months it returns
// the series together with ErrInsufficientTrendData.
func AnalyzeTrends(txns []model.CategorizedTransaction, opts TrendOptions) (TrendSummary, error) {
	summary := TrendSummary{Months: MonthlyNetAmounts(txns, opts.FillGaps)}
	if len(summary.Months) < 2 {
		return summary, ErrInsufficientTrendData
	}

	slope, intercept, sign := fitLine(summary.Months)
	summary.Slope = slope
	summary.Intercept = intercept
	switch {
	case sign > 0:
		summary.Direction = DirectionIncreasing
	case sign < 0:
		summary.Direction = DirectionDecreasing
	default:
		summary.Direction = DirectionStable
	}

	// Ties keep the earliest month.
	inc := summary.Months[1]
	dec := summary.Months[1]
	for _, m := range summary.Months[2:] {
		if m.Change.GreaterThan(inc.Change) {
			inc = m
		}
		if m.Change.LessThan(dec.Change) {
			dec = m
		}
	}
	summary.HighestIncrease = MonthChange{Month: inc.Month, Change: inc.Change}
	summary.HighestDecrease = MonthChange{Month: dec.Month, Change: dec.Change}

	return summary, nil
}

// fitLine returns the ordinary least-squares slope and intercept of net
// against month position, and the exact sign of the slope. len(series) >= 2.
func fitLine(series []MonthlyNet) (slope, intercept float64, sign int) {
	n := decimal.NewFromInt(int64(len(series)))
	sumX, sumY, sumXX, sumXY := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i, m := range series {
		x := decimal.NewFromInt(int64(i))
		sumX = sumX.Add(x)
		sumY = sumY.Add(m.Net)
		sumXX = sumXX.Add(x.Mul(x))
		sumXY = sumXY.Add(x.Mul(m.Net))
	}

	// slope = num / den, intercept = (sumY*den - num*sumX) / (n*den).
	// den > 0 whenever there are two or more distinct x values.
	num := n.Mul(sumXY).Sub(sumX.Mul(sumY))
	den := n.Mul(sumXX).Sub(sumX.Mul(sumX))

	slope = num.DivRound(den, 10).InexactFloat64()
	intercept = sumY.Mul(den).Sub(num.Mul(sumX)).DivRound(n.Mul(den), 10).InexactFloat64()
	return slope, intercept, num.Sign()
}
