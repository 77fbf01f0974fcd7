package breakeven

// Kind tells how a compared metric is displayed.
type Kind string

const (
	KindCurrency   Kind = "currency"
	KindPercentage Kind = "percentage"
	KindCount      Kind = "count"
)

type metric struct {
	key           string
	label         string
	kind          Kind
	lowerIsBetter bool
	value         func(Result) float64
}

var comparedMetrics = []metric{
	{"units", "Units", KindCount, false, func(r Result) float64 { return float64(r.Units) }},
	{"cost_per_unit", "Cost per Unit", KindCurrency, true, func(r Result) float64 { return r.CostPerUnit }},
	{"selling_price", "Selling Price", KindCurrency, false, func(r Result) float64 { return r.SellingPrice }},
	{"total_costs", "Total Costs", KindCurrency, true, func(r Result) float64 { return r.TotalCosts }},
	{"total_revenue", "Total Revenue", KindCurrency, false, func(r Result) float64 { return r.TotalRevenue }},
	{"gross_profit", "Gross Profit", KindCurrency, false, func(r Result) float64 { return r.GrossProfit }},
	{"profit_margin", "Profit Margin (%)", KindPercentage, false, func(r Result) float64 { return r.ProfitMargin }},
	{"breakeven_price", "Break-even Price", KindCurrency, true, func(r Result) float64 { return r.BreakevenPrice }},
}

// Diff is the change of one metric going from result A to result B.
type Diff struct {
	Metric string  `json:"metric"`
	Label  string  `json:"label"`
	ValueA float64 `json:"value_a"`
	ValueB float64 `json:"value_b"`
	Diff   float64 `json:"diff"`
	// IsBetter reports whether B improves on A for this metric.
	IsBetter bool `json:"is_better"`
	IsZero   bool `json:"is_zero"`
	Kind     Kind `json:"kind"`
}

// Compare returns the per-metric differences of b relative to a. Neither
// result is modified.
func Compare(a, b Result) []Diff {
	diffs := make([]Diff, 0, len(comparedMetrics))
	for _, m := range comparedMetrics {
		va, vb := m.value(a), m.value(b)
		d := Diff{
			Metric: m.key,
			Label:  m.label,
			ValueA: va,
			ValueB: vb,
			Diff:   vb - va,
			Kind:   m.kind,
		}
		if m.lowerIsBetter {
			d.IsBetter = d.Diff < 0
		} else {
			d.IsBetter = d.Diff > 0
		}
		d.IsZero = d.Diff == 0
		diffs = append(diffs, d)
	}
	return diffs
}
