package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

const (
	defaultUnits        = 1
	defaultTargetMargin = 30
	// maxUnits keeps scaled scenario volumes well inside the int range.
	maxUnits = 1_000_000_000_000
)

// calculationForm holds the parsed calculator fields. A zero SellingPrice asks
// for the price to be derived from TargetMargin.
type calculationForm struct {
	Name           string
	Units          int
	ProductCost    float64
	Transportation float64
	Tax            float64
	OtherCostName  string
	OtherCosts     float64
	StaffSalary    float64
	Marketing      float64
	Rent           float64
	Utilities      float64
	SellingPrice   float64
	TargetMargin   float64
}

func defaultCalculationForm() calculationForm {
	return calculationForm{Units: defaultUnits, TargetMargin: defaultTargetMargin}
}

func parseCalculationForm(r *http.Request) (calculationForm, error) {
	form := calculationForm{
		Name:          strings.TrimSpace(r.FormValue("name")),
		OtherCostName: strings.TrimSpace(r.FormValue("other_cost_name")),
	}

	var err error
	if form.Units, err = parseUnits(r.FormValue("units")); err != nil {
		return form, err
	}

	amounts := []struct {
		field string
		dst   *float64
		def   float64
	}{
		{"product_cost", &form.ProductCost, 0},
		{"transportation", &form.Transportation, 0},
		{"tax", &form.Tax, 0},
		{"other_costs", &form.OtherCosts, 0},
		{"staff_salary", &form.StaffSalary, 0},
		{"marketing", &form.Marketing, 0},
		{"rent", &form.Rent, 0},
		{"utilities", &form.Utilities, 0},
		{"selling_price", &form.SellingPrice, 0},
		{"target_margin", &form.TargetMargin, defaultTargetMargin},
	}
	for _, a := range amounts {
		if *a.dst, err = parseAmount(r.FormValue(a.field), a.field, a.def); err != nil {
			return form, err
		}
	}

	return form, form.validate()
}

// validate enforces the ranges the calculation engine expects its callers to check.
func (f calculationForm) validate() error {
	if f.Units < 0 {
		return fmt.Errorf("units must be 0 or greater")
	}
	if f.Units > maxUnits {
		return fmt.Errorf("units must be at most %d", maxUnits)
	}

	for _, v := range []struct {
		field string
		value float64
	}{
		{"product_cost", f.ProductCost},
		{"transportation", f.Transportation},
		{"tax", f.Tax},
		{"other_costs", f.OtherCosts},
		{"staff_salary", f.StaffSalary},
		{"marketing", f.Marketing},
		{"rent", f.Rent},
		{"utilities", f.Utilities},
		{"selling_price", f.SellingPrice},
	} {
		if v.value < 0 {
			return fmt.Errorf("%s must be 0 or greater", v.field)
		}
	}

	// The margin only matters when the price is derived from it.
	if f.SellingPrice == 0 && (f.TargetMargin < 0 || f.TargetMargin >= 100) {
		return fmt.Errorf("target_margin must be at least 0 and below 100")
	}

	return nil
}

func (f calculationForm) input() breakeven.Input {
	price := breakeven.Fixed(f.SellingPrice)
	if f.SellingPrice == 0 {
		price = breakeven.AutoFromMargin(f.TargetMargin)
	}

	name := f.Name
	if name == "" {
		name = breakeven.DefaultName
	}

	return breakeven.Input{
		Name:           name,
		Units:          f.Units,
		ProductCost:    f.ProductCost,
		Transportation: f.Transportation,
		Tax:            f.Tax,
		OtherCosts:     f.OtherCosts,
		OtherCostName:  f.OtherCostName,
		StaffSalary:    f.StaffSalary,
		Marketing:      f.Marketing,
		Rent:           f.Rent,
		Utilities:      f.Utilities,
		Price:          price,
	}
}

func parseUnits(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultUnits, nil
	}
	units, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("units must be a whole number")
	}
	return units, nil
}

// parseAmount reads a decimal field. Blank fields take def. NaN and infinities
// are rejected.
func parseAmount(raw, field string, def float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	return value.InexactFloat64(), nil
}
