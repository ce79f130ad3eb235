package report

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const monthLabelFormat = "January 2006"

// MonthLabel formats a month as "January 2024".
func MonthLabel(m time.Time) string {
	return m.Format(monthLabelFormat)
}

// FormatMoney formats d as "$1,234.56" or "-$1,234.56".
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + groupThousands(d.Abs())
	}
	return "$" + groupThousands(d)
}

// FormatSignedMoney is FormatMoney with an explicit "+" for non-negative values.
func FormatSignedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatMoney(d)
	}
	return "+" + FormatMoney(d)
}

// groupThousands renders a non-negative amount rounded to cents with commas
// in the whole part.
func groupThousands(d decimal.Decimal) string {
	r := d.Round(2)
	fixed := r.StringFixed(2)
	return humanize.Comma(r.IntPart()) + fixed[len(fixed)-3:]
}
