package format

import (
	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCount renders a whole count with thousands separators.
func FormatCount(v float64) string {
	return humanize.Comma(int64(v))
}

// FormatPercent renders a score or allocation ("84%", "12.5%").
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).String() + "%"
}

// FormatChange renders a signed percent change with one decimal ("-8.5%").
func FormatChange(pct float64) string {
	d := decimal.NewFromFloat(pct).Round(1)
	if !d.IsNegative() {
		return "+" + d.StringFixed(1) + "%"
	}
	return d.StringFixed(1) + "%"
}

// FormatCurrency renders amount in the given ISO 4217 currency using its
// minor unit, symbol and separators ("$157,500.00"). Unknown codes fall back
// to a plain number followed by the code.
func FormatCurrency(amount float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return humanize.CommafWithDigits(amount, 2) + " " + code
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

var compactUnits = []struct {
	size   decimal.Decimal
	suffix string
}{
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 3), "K"},
}

// FormatCompactCurrency renders a short amount for headline tiles
// ("$157.5K", "€2.5M").
func FormatCompactCurrency(amount float64, code string) string {
	symbol := code
	if cur := money.GetCurrency(code); cur != nil {
		symbol = cur.Grapheme
	}
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign, d = "-", d.Abs()
	}
	for _, u := range compactUnits {
		if d.GreaterThanOrEqual(u.size) {
			return sign + symbol + d.Div(u.size).Round(1).String() + u.suffix
		}
	}
	return sign + symbol + d.Round(0).String()
}
