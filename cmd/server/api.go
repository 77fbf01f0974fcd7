package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

const maxAPIBodyBytes = 64 << 10

type calculateRequest struct {
	Name           string   `json:"name"`
	Units          *int     `json:"units"`
	ProductCost    float64  `json:"product_cost"`
	Transportation float64  `json:"transportation"`
	Tax            float64  `json:"tax"`
	OtherCostName  string   `json:"other_cost_name"`
	OtherCosts     float64  `json:"other_costs"`
	StaffSalary    float64  `json:"staff_salary"`
	Marketing      float64  `json:"marketing"`
	Rent           float64  `json:"rent"`
	Utilities      float64  `json:"utilities"`
	SellingPrice   float64  `json:"selling_price"`
	TargetMargin   *float64 `json:"target_margin"`
	Volumes        []int    `json:"volumes"`
}

func (req calculateRequest) form() calculationForm {
	form := calculationForm{
		Name:           strings.TrimSpace(req.Name),
		Units:          defaultUnits,
		ProductCost:    req.ProductCost,
		Transportation: req.Transportation,
		Tax:            req.Tax,
		OtherCostName:  strings.TrimSpace(req.OtherCostName),
		OtherCosts:     req.OtherCosts,
		StaffSalary:    req.StaffSalary,
		Marketing:      req.Marketing,
		Rent:           req.Rent,
		Utilities:      req.Utilities,
		SellingPrice:   req.SellingPrice,
		TargetMargin:   defaultTargetMargin,
	}
	if req.Units != nil {
		form.Units = *req.Units
	}
	if req.TargetMargin != nil {
		form.TargetMargin = *req.TargetMargin
	}
	return form
}

type calculateResponse struct {
	Result       breakeven.Result            `json:"result"`
	Scenarios    []breakeven.ScenarioRow     `json:"scenarios"`
	PricingGuide []breakeven.PricingGuideRow `json:"pricing_guide"`
	MarkupGuide  []breakeven.MarkupGuideRow  `json:"markup_guide"`
}

type calculationItem struct {
	Position  int              `json:"position"`
	CreatedAt time.Time        `json:"created_at"`
	Result    breakeven.Result `json:"result"`
}

func (s *server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.calculations.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		s.log.Error("list calculations", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to load calculations"})
		return
	}

	items := make([]calculationItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, calculationItem{Position: e.Position, CreatedAt: e.CreatedAt, Result: e.Result})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleAPICalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxAPIBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json body"})
		return
	}

	form := req.form()
	if err := form.validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
		return
	}
	if err := validateVolumes(req.Volumes); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
		return
	}

	result, ok := breakeven.Calculate(form.input())
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "target margin cannot be reached"})
		return
	}

	writeJSON(w, http.StatusOK, calculateResponse{
		Result:       result,
		Scenarios:    breakeven.ScenarioAnalysis(result, req.Volumes...),
		PricingGuide: breakeven.PricingGuide(result.CostPerUnit),
		MarkupGuide:  breakeven.MarkupGuide(result.CostPerUnit),
	})
}

func validateVolumes(volumes []int) error {
	for _, pct := range volumes {
		if pct <= 0 {
			return errors.New("volumes must be positive percentages")
		}
	}
	if len(volumes) > 20 {
		return fmt.Errorf("at most 20 volumes are allowed, got %d", len(volumes))
	}
	return nil
}
