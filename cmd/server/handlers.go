package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
	"github.com/OkuOrgil3757/business-calculator/internal/format"
	"github.com/OkuOrgil3757/business-calculator/internal/store"
)

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
}

type resultView struct {
	Result      breakeven.Result
	Scenarios   []breakeven.ScenarioRow
	Guide       []breakeven.PricingGuideRow
	MarkupGuide []breakeven.MarkupGuideRow
	// Saved hides the save form for stored snapshots.
	Saved bool
}

func newResultView(r breakeven.Result) *resultView {
	return &resultView{
		Result:      r,
		Scenarios:   breakeven.ScenarioAnalysis(r),
		Guide:       breakeven.PricingGuide(r.CostPerUnit),
		MarkupGuide: breakeven.MarkupGuide(r.CostPerUnit),
	}
}

type comparisonView struct {
	A     breakeven.Result
	B     breakeven.Result
	Diffs []breakeven.Diff
}

type indexViewData struct {
	baseViewData
	Query        string
	Form         calculationForm
	Calculations []store.Entry
	Result       *resultView
	Comparison   *comparisonView
}

type calculationViewData struct {
	baseViewData
	Position int
	View     *resultView
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := s.indexData(r, defaultCalculationForm())
	if err != nil {
		s.serverError(w, "failed to load calculations", err)
		return
	}
	data.ErrorMessage = r.URL.Query().Get("error")
	data.SuccessMessage = r.URL.Query().Get("success")

	s.renderTemplate(w, r, http.StatusOK, "index.html", data)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, validationErr := parseCalculationForm(r)
	data, err := s.indexData(r, form)
	if err != nil {
		s.serverError(w, "failed to load calculations", err)
		return
	}
	if validationErr != nil {
		data.ErrorMessage = validationErr.Error()
		s.renderTemplate(w, r, http.StatusBadRequest, "index.html", data)
		return
	}

	result, ok := breakeven.Calculate(form.input())
	if !ok {
		data.ErrorMessage = fmt.Sprintf("A %.1f%% margin cannot be reached at any price.", form.TargetMargin)
		s.renderTemplate(w, r, http.StatusBadRequest, "index.html", data)
		return
	}

	data.Result = newResultView(result)
	s.renderTemplate(w, r, http.StatusOK, "index.html", data)
}

// handleSave recalculates from the submitted inputs rather than trusting
// figures computed for display.
func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := parseCalculationForm(r)
	if err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	result, ok := breakeven.Calculate(form.input())
	if !ok {
		http.Redirect(w, r, "/?error=Target+margin+cannot+be+reached", http.StatusSeeOther)
		return
	}

	stored, err := s.calculations.Append(r.Context(), result)
	if err != nil {
		s.serverError(w, "failed to save calculation", err)
		return
	}
	s.log.Info("calculation saved", zap.String("id", stored.ID), zap.String("name", stored.Name))

	http.Redirect(w, r, "/?success=Calculation+saved", http.StatusSeeOther)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	position, ok := positionParam(r)
	if !ok {
		http.Error(w, "invalid calculation index", http.StatusBadRequest)
		return
	}

	if err := s.calculations.DeleteAt(r.Context(), position); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.serverError(w, "failed to delete calculation", err)
		return
	}

	http.Redirect(w, r, "/?success=Calculation+deleted", http.StatusSeeOther)
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	selected := r.Form["compare"]
	if len(selected) != 2 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var pair [2]breakeven.Result
	for i, raw := range selected {
		position, err := strconv.Atoi(raw)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		pair[i], err = s.calculations.At(r.Context(), position)
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.serverError(w, "failed to load calculation", err)
			return
		}
	}

	data, err := s.indexData(r, defaultCalculationForm())
	if err != nil {
		s.serverError(w, "failed to load calculations", err)
		return
	}
	data.Comparison = &comparisonView{A: pair[0], B: pair[1], Diffs: breakeven.Compare(pair[0], pair[1])}

	s.renderTemplate(w, r, http.StatusOK, "index.html", data)
}

func (s *server) handleCalculationDetail(w http.ResponseWriter, r *http.Request) {
	position, result, ok := s.loadCalculation(w, r)
	if !ok {
		return
	}

	view := newResultView(result)
	view.Saved = true
	s.renderTemplate(w, r, http.StatusOK, "calculation.html", calculationViewData{
		Position: position,
		View:     view,
	})
}

func (s *server) handleCalculationText(w http.ResponseWriter, r *http.Request) {
	_, result, ok := s.loadCalculation(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(calculationText(result)))
}

// loadCalculation reads the stored snapshot addressed by the index URL
// parameter, writing the error response itself when it reports false.
func (s *server) loadCalculation(w http.ResponseWriter, r *http.Request) (int, breakeven.Result, bool) {
	position, ok := positionParam(r)
	if !ok {
		http.Error(w, "invalid calculation index", http.StatusBadRequest)
		return 0, breakeven.Result{}, false
	}

	result, err := s.calculations.At(r.Context(), position)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return 0, breakeven.Result{}, false
		}
		s.serverError(w, "failed to load calculation", err)
		return 0, breakeven.Result{}, false
	}
	return position, result, true
}

func (s *server) indexData(r *http.Request, form calculationForm) (indexViewData, error) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	entries, err := s.calculations.List(r.Context(), query)
	if err != nil {
		return indexViewData{}, err
	}
	return indexViewData{Query: query, Form: form, Calculations: entries}, nil
}

func (s *server) serverError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}

func positionParam(r *http.Request) (int, bool) {
	position, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || position < 0 {
		return 0, false
	}
	return position, true
}

func calculationText(r breakeven.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Calculation: %s\n", r.Name)
	fmt.Fprintf(&b, "Units: %s\n", format.Count(float64(r.Units)))
	if r.PriceAuto {
		fmt.Fprintf(&b, "Selling price: %s (from %s target margin)\n", format.Currency(r.SellingPrice), format.Percent(r.TargetMargin))
	} else {
		fmt.Fprintf(&b, "Selling price: %s\n", format.Currency(r.SellingPrice))
	}
	fmt.Fprintf(&b, "Total: %s costs, %s revenue, %s profit\n", format.Currency(r.TotalCosts), format.Currency(r.TotalRevenue), format.Currency(r.GrossProfit))
	fmt.Fprintf(&b, "Profit margin: %s\n", format.Percent(r.ProfitMargin))
	fmt.Fprintf(&b, "Markup: %s\n", format.Percent(r.MarkupPercentage))

	b.WriteString("\nCosts:\n")
	fmt.Fprintf(&b, "- Variable per unit: %s\n", format.Currency(r.VariableRate()))
	fmt.Fprintf(&b, "- Variable total: %s\n", format.Currency(r.TotalVariableCosts))
	fmt.Fprintf(&b, "- Fixed total: %s\n", format.Currency(r.TotalFixedCosts))
	fmt.Fprintf(&b, "- Cost per unit: %s\n", format.Currency(r.CostPerUnit))

	b.WriteString("\nBreak-even:\n")
	fmt.Fprintf(&b, "- Price: %s per unit\n", format.Currency(r.BreakevenPrice))
	fmt.Fprintf(&b, "- Units needed: %s\n", format.OptionalCount(r.UnitsToBreakeven, r.BreakevenReachable))

	b.WriteString("\nScenarios:\n")
	for _, row := range breakeven.ScenarioAnalysis(r) {
		marker := ""
		if row.IsBase {
			marker = " (current)"
		}
		fmt.Fprintf(&b, "- %d%%%s: %s units, %s costs, %s profit, %s margin\n",
			row.VolumePct, marker, format.Count(float64(row.Units)), format.Currency(row.TotalCosts),
			format.Currency(row.Profit), format.Percent(row.Margin))
	}

	return b.String()
}
