package format

import (
	"math"
	"testing"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{7.75, "7.75"},
		{11.071428571428571, "11.07"},
		{1234567.891, "1,234,567.89"},
		{-775, "-775.00"},
		{-0.001, "0.00"},
		{0.29, "0.29"},
		{1.005, "1.01"},
	}

	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Fatalf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	if got := Currency(1107.142857); got != "$1,107.14" {
		t.Fatalf("Currency = %q", got)
	}
	if got := Currency(-137.5); got != "-$137.50" {
		t.Fatalf("Currency negative = %q", got)
	}
	if got := Currency(math.Inf(1)); got != NotAvailable {
		t.Fatalf("Currency(+Inf) = %q, want %q", got, NotAvailable)
	}
}

func TestPercentAndCount(t *testing.T) {
	if got := Percent(29.99999); got != "30.0%" {
		t.Fatalf("Percent = %q", got)
	}
	if got := Percent(-27.5); got != "-27.5%" {
		t.Fatalf("Percent negative = %q", got)
	}
	if got := Count(1234.6); got != "1,235" {
		t.Fatalf("Count = %q", got)
	}
	if got := Percent(math.NaN()); got != NotAvailable {
		t.Fatalf("Percent(NaN) = %q", got)
	}
}

func TestSigned(t *testing.T) {
	tests := []struct {
		v    float64
		kind breakeven.Kind
		want string
	}{
		{125, breakeven.KindCurrency, "+$125.00"},
		{-125, breakeven.KindCurrency, "-$125.00"},
		{2.5, breakeven.KindPercentage, "+2.5%"},
		{-100, breakeven.KindCount, "-100"},
		{1000, breakeven.KindCount, "+1,000"},
	}

	for _, tt := range tests {
		if got := Signed(tt.v, tt.kind); got != tt.want {
			t.Fatalf("Signed(%v, %s) = %q, want %q", tt.v, tt.kind, got, tt.want)
		}
	}
}

func TestOptional(t *testing.T) {
	if got := Optional(11.07, false); got != NotAvailable {
		t.Fatalf("Optional undefined = %q", got)
	}
	if got := Optional(11.07, true); got != "$11.07" {
		t.Fatalf("Optional defined = %q", got)
	}
	if got := OptionalCount(222.2, true); got != "222" {
		t.Fatalf("OptionalCount = %q", got)
	}
	if got := OptionalCount(0, false); got != NotAvailable {
		t.Fatalf("OptionalCount unreachable = %q", got)
	}
}

func TestPlain(t *testing.T) {
	if got := Plain(0.125); got != "0.125" {
		t.Fatalf("Plain = %q", got)
	}
	if got := Plain(1500); got != "1500" {
		t.Fatalf("Plain = %q", got)
	}
	if got := Plain(math.Inf(-1)); got != "" {
		t.Fatalf("Plain(-Inf) = %q", got)
	}
}
