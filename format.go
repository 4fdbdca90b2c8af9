package carbonplan

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportingCurrency is the currency of every amount handled by the engine.
const ReportingCurrency = money.GBP

// Placeholder is displayed for values that have no meaning, like the unit
// cost of a portfolio that abates nothing.
const Placeholder = "-"

var (
	printer  = message.NewPrinter(language.BritishEnglish)
	one      = decimal.NewFromInt(1)
	ten      = decimal.NewFromInt(10)
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// symbol returns the currency grapheme, like "£".
func symbol() string {
	return money.GetCurrency(ReportingCurrency).Grapheme
}

// FormatCurrency returns a compact representation of an amount: "£1.5M"
// from a million, "£250k" from a thousand, whole pounds below.
func FormatCurrency(v float64) string {
	if !isFinite(v) {
		return Placeholder
	}
	if v == 0 {
		return symbol() + "0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	// buckets are chosen on the rounded value: 999,999 is £1.0M, not £1000k.
	d := decimal.NewFromFloat(math.Abs(v))
	pounds := d.Round(0)
	thousands := d.Div(thousand).Round(0)
	switch {
	case d.GreaterThanOrEqual(million) || thousands.GreaterThanOrEqual(thousand):
		return sign + symbol() + d.Div(million).StringFixed(1) + "M"
	case pounds.GreaterThanOrEqual(thousand):
		return sign + symbol() + thousands.String() + "k"
	default:
		return sign + symbol() + pounds.String()
	}
}

// FormatMoney returns the exact representation of an amount, with pence and
// thousands separators, like "£1,234.50".
func FormatMoney(v float64) string {
	if !isFinite(v) {
		return Placeholder
	}
	cur := money.GetCurrency(ReportingCurrency)
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, ReportingCurrency).Display()
}

// FormatTonnes returns an abatement in tCO₂e: 2 decimals below 1, 1 decimal
// below 10, whole tonnes with thousands separators above.
func FormatTonnes(t float64) string {
	const unit = " tCO₂e"
	if !isFinite(t) {
		return Placeholder
	}
	if t == 0 {
		return "0" + unit
	}
	d := decimal.NewFromFloat(t)
	abs := d.Abs()
	switch {
	case abs.Round(2).LessThan(one):
		return d.StringFixed(2) + unit
	case abs.Round(1).LessThan(ten):
		return d.StringFixed(1) + unit
	default:
		return printer.Sprintf("%d", d.Round(0).IntPart()) + unit
	}
}

// FormatCostPerTonne returns a unit cost in whole pounds per tonne, or the
// Placeholder when it is undefined (0).
func FormatCostPerTonne(v float64) string {
	if !isFinite(v) || v == 0 {
		return Placeholder
	}
	return symbol() + printer.Sprintf("%d", decimal.NewFromFloat(v).Round(0).IntPart()) + "/t"
}

// FormatPercent returns a percentage with one decimal.
func FormatPercent(p float64) string {
	if !isFinite(p) {
		return Placeholder
	}
	return decimal.NewFromFloat(p).StringFixed(1) + "%"
}
