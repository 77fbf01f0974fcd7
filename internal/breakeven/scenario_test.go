package breakeven

import (
	"math"
	"testing"
)

func TestScenarioAnalysis_DefaultVolumes(t *testing.T) {
	in := widgetInput()
	in.Price = Fixed(10)
	result := Derive(in)

	rows := ScenarioAnalysis(result)
	if len(rows) != len(DefaultVolumes) {
		t.Fatalf("expected %d rows, got %d", len(DefaultVolumes), len(rows))
	}

	wantUnits := []int{50, 75, 100, 125, 150}
	for i, row := range rows {
		if row.VolumePct != DefaultVolumes[i] {
			t.Fatalf("row %d volumePct = %d, want %d", i, row.VolumePct, DefaultVolumes[i])
		}
		if row.Units != wantUnits[i] {
			t.Fatalf("row %d units = %d, want %d", i, row.Units, wantUnits[i])
		}
		if row.IsBase != (row.VolumePct == 100) {
			t.Fatalf("row %d isBase = %v", i, row.IsBase)
		}
	}

	half := rows[0]
	nearlyEqual(t, "50% totalCosts", half.TotalCosts, 637.5)
	nearlyEqual(t, "50% costPerUnit", half.CostPerUnit, 12.75)
	nearlyEqual(t, "50% revenue", half.Revenue, 500)
	nearlyEqual(t, "50% profit", half.Profit, -137.5)
	nearlyEqual(t, "50% margin", half.Margin, -27.5)

	high := rows[4]
	nearlyEqual(t, "150% totalCosts", high.TotalCosts, 912.5)
	nearlyEqual(t, "150% revenue", high.Revenue, 1500)
	nearlyEqual(t, "150% profit", high.Profit, 587.5)
}

func TestScenarioAnalysis_BaseRowMatchesResult(t *testing.T) {
	in := Input{
		Units:          37,
		ProductCost:    1.1,
		Transportation: 0.35,
		Tax:            0.07,
		OtherCosts:     0.13,
		StaffSalary:    812.4,
		Utilities:      63.9,
		Price:          AutoFromMargin(27.5),
	}
	result, ok := Calculate(in)
	if !ok {
		t.Fatalf("expected defined price")
	}

	for _, row := range ScenarioAnalysis(result) {
		if !row.IsBase {
			continue
		}
		if row.Units != result.Units {
			t.Fatalf("base units = %d, want %d", row.Units, result.Units)
		}
		if row.TotalCosts != result.TotalCosts {
			t.Fatalf("base totalCosts = %v, want %v", row.TotalCosts, result.TotalCosts)
		}
		if row.Profit != result.GrossProfit {
			t.Fatalf("base profit = %v, want %v", row.Profit, result.GrossProfit)
		}
		if row.Revenue != result.TotalRevenue {
			t.Fatalf("base revenue = %v, want %v", row.Revenue, result.TotalRevenue)
		}
		return
	}
	t.Fatalf("no base row in default scenarios")
}

func TestScenarioAnalysis_SortsAndRounds(t *testing.T) {
	result := Derive(Input{Units: 3, ProductCost: 1, Rent: 10, Price: Fixed(5)})

	rows := ScenarioAnalysis(result, 150, 50, 100)

	if rows[0].VolumePct != 50 || rows[1].VolumePct != 100 || rows[2].VolumePct != 150 {
		t.Fatalf("rows not in ascending order: %+v", rows)
	}
	// 1.5 and 4.5 units round half away from zero
	if rows[0].Units != 2 || rows[2].Units != 5 {
		t.Fatalf("unexpected rounded units: %d, %d", rows[0].Units, rows[2].Units)
	}
}

func TestScenarioAnalysis_ZeroUnits(t *testing.T) {
	result := Derive(Input{Rent: 100, Price: Fixed(5)})

	for _, row := range ScenarioAnalysis(result) {
		if row.Units != 0 {
			t.Fatalf("expected zero units, got %d", row.Units)
		}
		nearlyEqual(t, "costPerUnit", row.CostPerUnit, 0)
		nearlyEqual(t, "margin", row.Margin, 0)
		nearlyEqual(t, "totalCosts", row.TotalCosts, 100)
	}
}

func TestScenarioAnalysis_HugeVolumesClampInsteadOfWrapping(t *testing.T) {
	result := Derive(Input{Units: 9e18, ProductCost: 1, Price: Fixed(2)})

	rows := ScenarioAnalysis(result)
	for _, row := range rows {
		if row.Units < 0 || row.TotalCosts < 0 || row.Revenue < 0 {
			t.Fatalf("%d%% row wrapped around: %+v", row.VolumePct, row)
		}
	}
	for _, row := range rows[3:] {
		if row.Units != math.MaxInt {
			t.Fatalf("%d%% units = %d, want clamp to MaxInt", row.VolumePct, row.Units)
		}
	}
	if rows[2].Units != 9e18 {
		t.Fatalf("base units = %d, want 9e18", rows[2].Units)
	}
}

func TestScenarioAnalysis_DoesNotReorderCallerSlice(t *testing.T) {
	pcts := []int{125, 75}
	ScenarioAnalysis(Derive(widgetInput()), pcts...)

	if pcts[0] != 125 || pcts[1] != 75 {
		t.Fatalf("caller slice modified: %v", pcts)
	}
}

func TestPricingGuide(t *testing.T) {
	rows := PricingGuide(7.75)
	if len(rows) != len(DefaultGuideMargins) {
		t.Fatalf("expected %d rows, got %d", len(DefaultGuideMargins), len(rows))
	}

	nearlyEqual(t, "break-even price", rows[0].Price, 7.75)
	nearlyEqual(t, "20% price", rows[1].Price, 9.6875)
	nearlyEqual(t, "20% markup", rows[1].MarkupPct, 25)
	nearlyEqual(t, "50% markup", rows[4].MarkupPct, 100)

	for _, row := range rows {
		if !row.Defined {
			t.Fatalf("margin %v unexpectedly undefined", row.MarginPct)
		}
		nearlyEqual(t, "markup price", PriceForMarkup(7.75, row.MarkupPct), row.Price)
	}

	undefined := PricingGuide(7.75, 100)
	if undefined[0].Defined {
		t.Fatalf("100%% margin must be undefined")
	}
}

func TestMarkupGuide(t *testing.T) {
	rows := MarkupGuide(8)

	if len(rows) != len(DefaultGuideMarkups) {
		t.Fatalf("expected %d rows, got %d", len(DefaultGuideMarkups), len(rows))
	}
	nearlyEqual(t, "25% markup", rows[0].Price, 10)
	nearlyEqual(t, "50% markup", rows[1].Price, 12)
	nearlyEqual(t, "100% markup", rows[2].Price, 16)
}
