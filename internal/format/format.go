// Package format renders calculation figures for display.
package format

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

// NotAvailable is shown in place of undefined or unreachable values.
const NotAvailable = "N/A"

// Money formats v with thousands separators and two decimals, e.g. "-1,234.50".
func Money(v float64) string {
	return fixed(v, 2)
}

// Currency formats v as a dollar amount, e.g. "$1,234.50" or "-$3.00".
func Currency(v float64) string {
	s := Money(v)
	if s == NotAvailable {
		return s
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-$" + rest
	}
	return "$" + s
}

// Percent formats v with one decimal followed by a percent sign, e.g. "30.0%".
func Percent(v float64) string {
	s := fixed(v, 1)
	if s == NotAvailable {
		return s
	}
	return s + "%"
}

// Count formats v rounded to a whole number with thousands separators.
func Count(v float64) string {
	return fixed(v, 0)
}

// Metric formats v according to kind.
func Metric(v float64, kind breakeven.Kind) string {
	switch kind {
	case breakeven.KindPercentage:
		return Percent(v)
	case breakeven.KindCount:
		return Count(v)
	default:
		return Currency(v)
	}
}

// Signed formats a difference according to kind, prefixing positive values with "+".
func Signed(v float64, kind breakeven.Kind) string {
	s := Metric(v, kind)
	if v > 0 {
		return "+" + s
	}
	return s
}

// Optional returns NotAvailable when ok is false, otherwise the currency amount.
func Optional(v float64, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return Currency(v)
}

// OptionalCount returns NotAvailable when ok is false, otherwise the count.
func OptionalCount(v float64, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return Count(v)
}

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}

	d := decimal.NewFromFloat(v).Round(places)
	abs := d.Abs()

	s := humanize.Comma(abs.IntPart())
	if places > 0 {
		frac := abs.Sub(decimal.NewFromInt(abs.IntPart())).StringFixed(places)
		// frac is "0.xx"
		s += frac[1:]
	}
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

// Plain formats v in its shortest exact decimal form without separators, for
// form fields that are submitted back.
func Plain(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return decimal.NewFromFloat(v).String()
}
