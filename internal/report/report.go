// Package report renders category summaries, bar charts and trend analyses
// as terminal text.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendtrend/internal/analysis"
)

const barGlyph = "█"

// Printer writes reports to an io.Writer.
type Printer struct {
	w     io.Writer
	width int
	pos   *color.Color
	neg   *color.Color
}

// NewPrinter returns a Printer drawing bars up to width cells wide. Credits
// are drawn green and debits red when colorize is set.
func NewPrinter(w io.Writer, colorize bool, width int) *Printer {
	pos := color.New(color.FgGreen)
	neg := color.New(color.FgRed)
	if colorize {
		pos.EnableColor()
		neg.EnableColor()
	} else {
		pos.DisableColor()
		neg.DisableColor()
	}
	return &Printer{w: w, width: width, pos: pos, neg: neg}
}

// Summary prints the total of each category, alphabetically, followed by the
// net over all categories.
func (p *Printer) Summary(s analysis.CategorySummary) error {
	if _, err := fmt.Fprintln(p.w, "Spending Summary by Category:"); err != nil {
		return err
	}
	for _, ct := range s.ByLabel() {
		if _, err := fmt.Fprintf(p.w, "%s: %s\n", ct.Category, FormatMoney(ct.Total)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.w, "Net: %s\n", FormatMoney(s.Total()))
	return err
}

// CategoryChart draws one bar per category, sorted ascending by total.
func (p *Printer) CategoryChart(s analysis.CategorySummary) error {
	totals := s.ByAmount()
	bars := make([]bar, len(totals))
	for i, ct := range totals {
		bars[i] = bar{label: string(ct.Category), value: ct.Total}
	}
	return p.chart("Total Spending by Category", bars)
}

// MonthChart draws one bar per month of net amount, chronologically.
func (p *Printer) MonthChart(series []analysis.MonthlyNet) error {
	bars := make([]bar, len(series))
	for i, m := range series {
		bars[i] = bar{label: MonthLabel(m.Month), value: m.Net}
	}
	return p.chart("Net Amount Per Month", bars)
}

// Trends prints a trend analysis. err is the error AnalyzeTrends returned
// alongside ts; ErrInsufficientTrendData is reported, any other error is
// returned unchanged.
func (p *Printer) Trends(ts analysis.TrendSummary, err error) error {
	if err != nil && !errors.Is(err, analysis.ErrInsufficientTrendData) {
		return err
	}

	var b strings.Builder
	b.WriteString("Trend Analysis:\n")
	if err != nil {
		fmt.Fprintf(&b, "Insufficient data: at least 2 months are needed, found %d.\n", len(ts.Months))
		_, werr := io.WriteString(p.w, b.String())
		return werr
	}

	fmt.Fprintf(&b, "Overall Trend: %s\n", ts.Direction)
	fmt.Fprintf(&b, "Slope: %.2f per month (intercept %.2f)\n", ts.Slope, ts.Intercept)
	fmt.Fprintf(&b, "Month with Highest Increase: %s (%s)\n",
		MonthLabel(ts.HighestIncrease.Month), FormatSignedMoney(ts.HighestIncrease.Change))
	fmt.Fprintf(&b, "Month with Highest Decrease: %s (%s)\n",
		MonthLabel(ts.HighestDecrease.Month), FormatSignedMoney(ts.HighestDecrease.Change))
	b.WriteString("\nMonthly Changes (Exact):\n")
	for _, m := range ts.Months {
		change := "n/a"
		if m.HasChange {
			change = FormatMoney(m.Change)
		}
		fmt.Fprintf(&b, "%s: %s\n", MonthLabel(m.Month), change)
	}

	_, werr := io.WriteString(p.w, b.String())
	return werr
}

type bar struct {
	label string
	value decimal.Decimal
}

func (p *Printer) chart(title string, bars []bar) error {
	if _, err := fmt.Fprintln(p.w, title); err != nil {
		return err
	}
	if len(bars) == 0 {
		_, err := fmt.Fprintln(p.w, "(no data)")
		return err
	}

	labelWidth := 0
	maxAbs := decimal.Zero
	for _, b := range bars {
		labelWidth = max(labelWidth, len(b.label))
		if a := b.value.Abs(); a.GreaterThan(maxAbs) {
			maxAbs = a
		}
	}

	for _, b := range bars {
		n := barLength(b.value, maxAbs, p.width)
		c := p.neg
		if b.value.IsPositive() {
			c = p.pos
		}
		if _, err := fmt.Fprintf(p.w, "%-*s ", labelWidth, b.label); err != nil {
			return err
		}
		if _, err := c.Fprint(p.w, strings.Repeat(barGlyph, n)); err != nil {
			return err
		}
		pad := strings.Repeat(" ", p.width-n)
		if _, err := fmt.Fprintf(p.w, "%s %s\n", pad, FormatMoney(b.value)); err != nil {
			return err
		}
	}
	return nil
}

// barLength scales |v| against maxAbs into [0, width]; non-zero values get at
// least one cell.
func barLength(v, maxAbs decimal.Decimal, width int) int {
	if v.IsZero() || maxAbs.IsZero() {
		return 0
	}
	n := int(v.Abs().Mul(decimal.NewFromInt(int64(width))).Div(maxAbs).Round(0).IntPart())
	return min(max(n, 1), width)
}
