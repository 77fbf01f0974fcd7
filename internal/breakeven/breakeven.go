package breakeven

// DefaultName labels calculations submitted without a name.
const DefaultName = "Untitled"

type priceKind int

const (
	priceFixed priceKind = iota
	priceAutoFromMargin
)

// SellingPrice is either a fixed per-unit price or a target margin from which
// the price is derived.
type SellingPrice struct {
	kind  priceKind
	value float64
}

// Fixed returns a selling price of amount per unit.
func Fixed(amount float64) SellingPrice {
	return SellingPrice{kind: priceFixed, value: amount}
}

// AutoFromMargin returns a selling price to be derived from a target profit margin percentage.
func AutoFromMargin(marginPct float64) SellingPrice {
	return SellingPrice{kind: priceAutoFromMargin, value: marginPct}
}

// IsAuto reports whether the price is derived from a target margin.
func (p SellingPrice) IsAuto() bool { return p.kind == priceAutoFromMargin }

// Amount returns the fixed per-unit price, or 0 for an auto price.
func (p SellingPrice) Amount() float64 {
	if p.IsAuto() {
		return 0
	}
	return p.value
}

// TargetMargin returns the target margin percentage, or 0 for a fixed price.
func (p SellingPrice) TargetMargin() float64 {
	if p.IsAuto() {
		return p.value
	}
	return 0
}

// Input holds the already-validated figures of a single product or service.
type Input struct {
	Name  string
	Units int

	// Variable costs, per unit.
	ProductCost    float64
	Transportation float64
	Tax            float64
	OtherCosts     float64
	OtherCostName  string

	// Fixed costs for the whole period.
	StaffSalary float64
	Marketing   float64
	Rent        float64
	Utilities   float64

	Price SellingPrice
}

// Result is a derived calculation record. It is never mutated after creation
// and is persisted verbatim as JSON.
type Result struct {
	ID string `json:"id,omitempty"`

	Name           string  `json:"name"`
	Units          int     `json:"units"`
	ProductCost    float64 `json:"product_cost"`
	Transportation float64 `json:"transportation"`
	Tax            float64 `json:"tax"`
	OtherCosts     float64 `json:"other_costs"`
	OtherCostName  string  `json:"other_cost_name"`
	StaffSalary    float64 `json:"staff_salary"`
	Marketing      float64 `json:"marketing"`
	Rent           float64 `json:"rent"`
	Utilities      float64 `json:"utilities"`
	SellingPrice   float64 `json:"selling_price"`
	TargetMargin   float64 `json:"target_margin"`
	PriceAuto      bool    `json:"price_auto"`

	TotalFixedCosts    float64 `json:"total_fixed_costs"`
	TotalVariableCosts float64 `json:"total_variable_costs"`
	TotalCosts         float64 `json:"total_costs"`
	CostPerUnit        float64 `json:"cost_per_unit"`
	BreakevenPrice     float64 `json:"breakeven_price"`
	TotalRevenue       float64 `json:"total_revenue"`
	GrossProfit        float64 `json:"gross_profit"`
	ProfitMargin       float64 `json:"profit_margin"`
	MarkupPercentage   float64 `json:"markup_percentage"`
	UnitsToBreakeven   float64 `json:"units_to_breakeven"`
	BreakevenReachable bool    `json:"breakeven_reachable"`
}

// VariableRate returns the variable cost of a single unit.
func (r Result) VariableRate() float64 {
	return r.ProductCost + r.Transportation + r.Tax + r.OtherCosts
}

// ProfitPerUnit returns the selling price minus the average cost per unit.
func (r Result) ProfitPerUnit() float64 {
	return r.SellingPrice - r.CostPerUnit
}

// Input rebuilds the input the result was derived from. Auto prices are
// returned as fixed at the resolved amount.
func (r Result) Input() Input {
	return Input{
		Name:           r.Name,
		Units:          r.Units,
		ProductCost:    r.ProductCost,
		Transportation: r.Transportation,
		Tax:            r.Tax,
		OtherCosts:     r.OtherCosts,
		OtherCostName:  r.OtherCostName,
		StaffSalary:    r.StaffSalary,
		Marketing:      r.Marketing,
		Rent:           r.Rent,
		Utilities:      r.Utilities,
		Price:          Fixed(r.SellingPrice),
	}
}

type costs struct {
	fixed    float64
	variable float64
	total    float64
	perUnit  float64
}

func costsOf(in Input) costs {
	var c costs
	c.fixed = in.StaffSalary + in.Rent + in.Utilities + in.Marketing
	c.variable = (in.ProductCost + in.Transportation + in.Tax + in.OtherCosts) * float64(in.Units)
	c.total = c.fixed + c.variable
	if in.Units > 0 {
		c.perUnit = c.total / float64(in.Units)
	}
	return c
}

// Derive computes every metric of in at its fixed price. An unresolved auto
// price is derived as a price of 0; use Calculate to resolve it first.
func Derive(in Input) Result {
	return derive(in, costsOf(in), in.Price.Amount())
}

// Resolve returns a copy of in whose auto price is replaced by the fixed price
// that achieves the target margin. It reports false when the margin cannot be
// reached by any finite price; in is then returned unchanged.
func Resolve(in Input) (Input, bool) {
	if !in.Price.IsAuto() {
		return in, true
	}
	price, ok := PriceForMargin(costsOf(in).perUnit, in.Price.TargetMargin())
	if !ok {
		return in, false
	}
	in.Price = Fixed(price)
	return in, true
}

// Calculate resolves the selling price of in and derives the result once.
// It reports false when an auto price is undefined; the result then carries
// the cost figures with zero revenue.
func Calculate(in Input) (Result, bool) {
	c := costsOf(in)
	if !in.Price.IsAuto() {
		return derive(in, c, in.Price.Amount()), true
	}

	price, ok := PriceForMargin(c.perUnit, in.Price.TargetMargin())
	if !ok {
		return derive(in, c, 0), false
	}
	return derive(in, c, price), true
}

func derive(in Input, c costs, price float64) Result {
	name := in.Name
	if name == "" {
		name = DefaultName
	}

	r := Result{
		Name:           name,
		Units:          in.Units,
		ProductCost:    in.ProductCost,
		Transportation: in.Transportation,
		Tax:            in.Tax,
		OtherCosts:     in.OtherCosts,
		OtherCostName:  in.OtherCostName,
		StaffSalary:    in.StaffSalary,
		Marketing:      in.Marketing,
		Rent:           in.Rent,
		Utilities:      in.Utilities,
		SellingPrice:   price,
		TargetMargin:   in.Price.TargetMargin(),
		PriceAuto:      in.Price.IsAuto(),

		TotalFixedCosts:    c.fixed,
		TotalVariableCosts: c.variable,
		TotalCosts:         c.total,
		CostPerUnit:        c.perUnit,
		BreakevenPrice:     c.perUnit,
	}

	r.TotalRevenue = price * float64(in.Units)
	r.GrossProfit = r.TotalRevenue - r.TotalCosts
	r.ProfitMargin = marginOf(r.GrossProfit, r.TotalRevenue)
	if c.perUnit > 0 {
		r.MarkupPercentage = ((price - c.perUnit) / c.perUnit) * 100
	}
	r.UnitsToBreakeven, r.BreakevenReachable = UnitsToBreakeven(c.fixed, price, c.perUnit)

	return r
}

func marginOf(profit, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return (profit / revenue) * 100
}

// PriceForMargin returns the per-unit price at which the profit margin equals
// targetMarginPct. It reports false for margins of 100% or more.
func PriceForMargin(costPerUnit, targetMarginPct float64) (float64, bool) {
	if targetMarginPct >= 100 {
		return 0, false
	}
	return costPerUnit / (1 - targetMarginPct/100), true
}

// PriceForMarkup returns the per-unit price carrying targetMarkupPct over cost.
func PriceForMarkup(costPerUnit, targetMarkupPct float64) float64 {
	return costPerUnit * (1 + targetMarkupPct/100)
}

// UnitsToBreakeven returns how many units must be sold at sellingPrice to cover
// totalFixedCosts. It reports false when each unit earns nothing or loses money.
func UnitsToBreakeven(totalFixedCosts, sellingPrice, costPerUnit float64) (float64, bool) {
	profitPerUnit := sellingPrice - costPerUnit
	if profitPerUnit <= 0 {
		return 0, false
	}
	return totalFixedCosts / profitPerUnit, true
}
