package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

func postJSON(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAPICalculate_ReturnsResultAndTables(t *testing.T) {
	rec := postJSON(t, newTestServer(t).routes(), "/api/calculate", `{
		"name": "Widget",
		"units": 100,
		"product_cost": 2,
		"transportation": 0.5,
		"tax": 0.25,
		"staff_salary": 500,
		"selling_price": 10
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Equal(t, "Widget", resp.Result.Name)
	require.False(t, resp.Result.PriceAuto)
	require.InDelta(t, 775, resp.Result.TotalCosts, 1e-9)
	require.InDelta(t, 22.5, resp.Result.ProfitMargin, 1e-9)
	require.True(t, resp.Result.BreakevenReachable)
	require.InDelta(t, 500/(10-7.75), resp.Result.UnitsToBreakeven, 1e-9)

	require.Len(t, resp.Scenarios, len(breakeven.DefaultVolumes))
	require.Len(t, resp.PricingGuide, len(breakeven.DefaultGuideMargins))
	require.Len(t, resp.MarkupGuide, len(breakeven.DefaultGuideMarkups))
}

func TestAPICalculate_DefaultsToAutoPrice(t *testing.T) {
	rec := postJSON(t, newTestServer(t).routes(), "/api/calculate", `{"product_cost": 7}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, breakeven.DefaultName, resp.Result.Name)
	require.Equal(t, 1, resp.Result.Units)
	require.True(t, resp.Result.PriceAuto)
	require.InDelta(t, 30, resp.Result.TargetMargin, 1e-9)
	require.InDelta(t, 10, resp.Result.SellingPrice, 1e-9)
}

func TestAPICalculate_CustomVolumesAreSorted(t *testing.T) {
	rec := postJSON(t, newTestServer(t).routes(), "/api/calculate", `{"units": 10, "product_cost": 1, "volumes": [200, 50]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Scenarios, 2)
	require.Equal(t, 50, resp.Scenarios[0].VolumePct)
	require.Equal(t, 5, resp.Scenarios[0].Units)
	require.Equal(t, 200, resp.Scenarios[1].VolumePct)
	require.False(t, resp.Scenarios[1].IsBase)
}

func TestAPICalculate_Errors(t *testing.T) {
	h := newTestServer(t).routes()

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"units":`, http.StatusBadRequest},
		{"unknown field", `{"unit_count": 4}`, http.StatusBadRequest},
		{"negative cost", `{"rent": -1}`, http.StatusUnprocessableEntity},
		{"margin at hundred", `{"target_margin": 100}`, http.StatusUnprocessableEntity},
		{"too many units", `{"units": 1000000000001}`, http.StatusUnprocessableEntity},
		{"non-positive volume", `{"volumes": [0]}`, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h, "/api/calculate", tc.body)
			require.Equal(t, tc.status, rec.Code)

			var apiErr apiError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			require.NotEmpty(t, apiErr.Error)
		})
	}
}

func TestAPIList_ReturnsPositionsAndSnapshots(t *testing.T) {
	s := newTestServer(t)
	seedCalculations(t, s,
		widget(t, "Casa", breakeven.Fixed(10)),
		widget(t, "Llaveros", breakeven.Fixed(9)),
	)

	rec := do(t, s.routes(), http.MethodGet, "/api/calculations?q=llave", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []calculationItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Position)
	require.Equal(t, "Llaveros", items[0].Result.Name)
	require.False(t, items[0].CreatedAt.IsZero())
}

func TestAPIList_EmptyIsArray(t *testing.T) {
	rec := do(t, newTestServer(t).routes(), http.MethodGet, "/api/calculations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestAPICalculate_FixedPriceIgnoresTargetMargin(t *testing.T) {
	rec := postJSON(t, newTestServer(t).routes(), "/api/calculate", `{"units": 10, "product_cost": 1, "selling_price": 2, "target_margin": 150}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Result.PriceAuto)
	require.InDelta(t, 2, resp.Result.SellingPrice, 1e-9)
}
