package breakeven

import (
	"math"
	"slices"
)

// DefaultVolumes are the volume percentages projected when none are given.
var DefaultVolumes = []int{50, 75, 100, 125, 150}

// DefaultGuideMargins are the margins listed in the pricing guide when none are given.
var DefaultGuideMargins = []float64{0, 20, 30, 40, 50, 60}

// DefaultGuideMarkups are the markups listed in the markup guide when none are given.
var DefaultGuideMarkups = []float64{25, 50, 100}

// ScenarioRow projects a result at a scaled production volume. Fixed costs stay
// constant; variable costs and revenue scale with units.
type ScenarioRow struct {
	VolumePct   int     `json:"volume_pct"`
	Units       int     `json:"units"`
	TotalCosts  float64 `json:"total_costs"`
	CostPerUnit float64 `json:"cost_per_unit"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
	Margin      float64 `json:"margin"`
	IsBase      bool    `json:"is_base"`
}

// ScenarioAnalysis projects r at each volume percentage, in ascending order.
// DefaultVolumes is used when no percentages are given.
func ScenarioAnalysis(r Result, volumePcts ...int) []ScenarioRow {
	if len(volumePcts) == 0 {
		volumePcts = DefaultVolumes
	}
	pcts := slices.Clone(volumePcts)
	slices.Sort(pcts)

	rate := r.VariableRate()
	rows := make([]ScenarioRow, 0, len(pcts))
	for _, pct := range pcts {
		units := scaledUnits(r.Units, pct)

		row := ScenarioRow{
			VolumePct: pct,
			Units:     units,
			IsBase:    pct == 100,
		}
		row.TotalCosts = r.TotalFixedCosts + rate*float64(units)
		if units > 0 {
			row.CostPerUnit = row.TotalCosts / float64(units)
		}
		row.Revenue = r.SellingPrice * float64(units)
		row.Profit = row.Revenue - row.TotalCosts
		row.Margin = marginOf(row.Profit, row.Revenue)

		rows = append(rows, row)
	}
	return rows
}

// PricingGuideRow is the price to charge for one target margin.
type PricingGuideRow struct {
	MarginPct float64 `json:"margin_pct"`
	Price     float64 `json:"price"`
	Defined   bool    `json:"defined"`
	MarkupPct float64 `json:"markup_pct"`
}

// PricingGuide lists the per-unit prices that achieve each target margin for
// costPerUnit, along with the equivalent markup over cost.
func PricingGuide(costPerUnit float64, marginPcts ...float64) []PricingGuideRow {
	if len(marginPcts) == 0 {
		marginPcts = DefaultGuideMargins
	}

	rows := make([]PricingGuideRow, 0, len(marginPcts))
	for _, m := range marginPcts {
		row := PricingGuideRow{MarginPct: m}
		row.Price, row.Defined = PriceForMargin(costPerUnit, m)
		if row.Defined {
			// margin m corresponds to a markup of m/(100-m) over cost
			row.MarkupPct = m / (100 - m) * 100
		}
		rows = append(rows, row)
	}
	return rows
}

// MarkupGuideRow is the price to charge for one target markup over cost.
type MarkupGuideRow struct {
	MarkupPct float64 `json:"markup_pct"`
	Price     float64 `json:"price"`
}

// MarkupGuide lists the per-unit prices that carry each markup over costPerUnit.
func MarkupGuide(costPerUnit float64, markupPcts ...float64) []MarkupGuideRow {
	if len(markupPcts) == 0 {
		markupPcts = DefaultGuideMarkups
	}

	rows := make([]MarkupGuideRow, 0, len(markupPcts))
	for _, k := range markupPcts {
		rows = append(rows, MarkupGuideRow{MarkupPct: k, Price: PriceForMarkup(costPerUnit, k)})
	}
	return rows
}

// scaledUnits returns units scaled by pct percent, rounded to the nearest unit
// and clamped to the int range.
func scaledUnits(units, pct int) int {
	scaled := math.Round(float64(units) * float64(pct) / 100)
	switch {
	case scaled >= math.MaxInt:
		return math.MaxInt
	case scaled <= math.MinInt:
		return math.MinInt
	}
	return int(scaled)
}
