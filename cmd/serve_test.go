package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveline-group/showroom-cli/internal/booking"
	"github.com/driveline-group/showroom-cli/internal/catalog"
	"github.com/driveline-group/showroom-cli/internal/match"
)

func newTestServer(t *testing.T) (*server, catalog.Store) {
	t.Helper()
	st, err := catalog.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Migrate(ctx))

	bookings := booking.NewStore(st.DB())
	require.NoError(t, bookings.Migrate(ctx))

	return &server{
		store:    st,
		bookings: booking.NewService(st, bookings),
		matchCfg: match.DefaultConfig(),
	}, st
}

func seedVehicle(t *testing.T, st catalog.Store, id, vtype string, msrp float64) {
	t.Helper()
	raw := catalog.RawVehicle{ID: id, Type: vtype, Make: "Toyota", Model: "Test"}
	raw.Year = 2025
	raw.Price.BaseMSRP = msrp
	raw.DriveType = "4WD"
	raw.Engine.FuelType = "Gasoline"
	raw.Dealerships = []catalog.Dealership{{Name: "Downtown Toyota", Zip: "97201", Distance: "3 mi"}}
	_, err := st.Put(context.Background(), []catalog.RawVehicle{raw})
	require.NoError(t, err)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, newRouter(srv), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeLoanCalculator(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, newRouter(srv), http.MethodPost, "/finance/loan-calculator", map[string]any{
		"vehiclePrice":   30000,
		"downPayment":    3000,
		"interestRate":   5,
		"loanTermMonths": 60,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		MonthlyPayment float64 `json:"monthlyPayment"`
		TotalCost      float64 `json:"totalCost"`
		TotalInterest  float64 `json:"totalInterest"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 509.59, res.MonthlyPayment, 0.001)
	assert.InDelta(t, 30575.40, res.TotalCost, 0.001)
	assert.InDelta(t, 3575.40, res.TotalInterest, 0.001)
}

func TestServeLoanValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, newRouter(srv), http.MethodPost, "/finance/loan-calculator", map[string]any{
		"vehiclePrice":   500,
		"loanTermMonths": 60,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "vehiclePrice", res["field"])
	assert.NotEmpty(t, res["bound"])
}

func TestServeLoanBadBody(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/finance/loan-calculator", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	newRouter(srv).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeListVehicles(t *testing.T) {
	srv, st := newTestServer(t)
	seedVehicle(t, st, "tundra-sr5", "Trucks", 41500)
	seedVehicle(t, st, "camry-le", "Cars & Minivans", 28700)

	rec := doJSON(t, newRouter(srv), http.MethodGet, "/vehicles?type=Trucks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Count    int               `json:"count"`
		Vehicles []catalog.Vehicle `json:"vehicles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "tundra-sr5", res.Vehicles[0].ID)
}

func TestServeListVehiclesBadQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, newRouter(srv), http.MethodGet, "/vehicles?min_price=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeGetVehicle(t *testing.T) {
	srv, st := newTestServer(t)
	seedVehicle(t, st, "tundra-sr5", "Trucks", 41500)
	router := newRouter(srv)

	rec := doJSON(t, router, http.MethodGet, "/vehicles/tundra-sr5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v catalog.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, 41500.0, v.Price.BaseMSRP)

	rec = doJSON(t, router, http.MethodGet, "/vehicles/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeQuiz(t *testing.T) {
	srv, st := newTestServer(t)
	seedVehicle(t, st, "tundra-sr5", "Trucks", 41500)
	seedVehicle(t, st, "camry-le", "Cars & Minivans", 28700)

	budget := 40000.0
	rec := doJSON(t, newRouter(srv), http.MethodPost, "/quiz/find-your-wheel", match.Preference{
		Type:   "Trucks",
		Budget: &budget,
		Fuel:   match.Any,
		Size:   match.Any,
		Drive:  "4WD",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Count           int `json:"count"`
		Recommendations []struct {
			Vehicle *catalog.Vehicle `json:"vehicle"`
			Score   float64          `json:"matchScore"`
			Reasons []string         `json:"reasons"`
		} `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "tundra-sr5", res.Recommendations[0].Vehicle.ID)
	assert.InDelta(t, 35, res.Recommendations[0].Score, 0.001)
	assert.Equal(t, []string{"Near your budget", "Drive 4WD"}, res.Recommendations[0].Reasons)
}

func TestServeQuizNoMatches(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, newRouter(srv), http.MethodPost, "/quiz/find-your-wheel", match.Preference{
		Type: "Trucks", Fuel: match.Any, Size: match.Any, Drive: match.Any,
	})

	// Empty catalog still answers 200 with an empty list.
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 0, res.Count)
}

func TestServeAffordabilitySuggestions(t *testing.T) {
	srv, st := newTestServer(t)
	seedVehicle(t, st, "camry-le", "Cars & Minivans", 28700)
	seedVehicle(t, st, "tundra-sr5", "Trucks", 41500)

	rec := doJSON(t, newRouter(srv), http.MethodPost, "/finance/affordability", map[string]any{
		"monthlyIncome":   5000,
		"monthlyExpenses": 4500,
		"downPayment":     2000,
		"interestRate":    5,
		"loanTermMonths":  60,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		MaxVehiclePrice   float64 `json:"maxVehiclePrice"`
		SuggestedVehicles []struct {
			Vehicle          *catalog.Vehicle `json:"vehicle"`
			AffordabilityGap float64          `json:"affordabilityGap"`
		} `json:"suggestedVehicles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Greater(t, res.MaxVehiclePrice, 0.0)
	require.Len(t, res.SuggestedVehicles, 2)
	// Smaller gap first.
	assert.Equal(t, "camry-le", res.SuggestedVehicles[0].Vehicle.ID)
}

func TestServeDepreciation(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, newRouter(srv), http.MethodPost, "/finance/depreciation", map[string]any{
		"initialValue":           25000,
		"years":                  3,
		"annualDepreciationRate": 0.15,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		YearlyValues []float64 `json:"yearlyValues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []float64{21250, 18062.5, 15353.13}, res.YearlyValues)
}

func TestServeCreateBooking(t *testing.T) {
	srv, st := newTestServer(t)
	seedVehicle(t, st, "tundra-sr5", "Trucks", 41500)
	router := newRouter(srv)

	req := booking.Request{
		VehicleID:   "tundra-sr5",
		Dealership:  catalog.Dealership{Name: "Downtown Toyota", Zip: "97201"},
		Appointment: booking.Slot{Date: "2026-09-01", Time: "10:00", Type: booking.SlotTestDrive},
		Customer: booking.Customer{
			Name: "Jordan Avery", Email: "jordan@example.com",
			Phone: "+15035551234", PreferredContact: "email",
		},
	}

	rec := doJSON(t, router, http.MethodPost, "/bookings", req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var conf booking.Confirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conf))
	assert.Equal(t, "confirmed", conf.Status)
	assert.Len(t, conf.ConfirmationNumber, 8)

	req.VehicleID = "no-such-id"
	rec = doJSON(t, router, http.MethodPost, "/bookings", req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req.VehicleID = "tundra-sr5"
	req.Customer.Email = "nope"
	rec = doJSON(t, router, http.MethodPost, "/bookings", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeAvailability(t *testing.T) {
	srv, st := newTestServer(t)
	seedVehicle(t, st, "tundra-sr5", "Trucks", 41500)
	router := newRouter(srv)

	rec := doJSON(t, router, http.MethodGet, "/bookings/availability/tundra-sr5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		VehicleID   string                    `json:"vehicleId"`
		Dealerships []booking.DealershipSlots `json:"dealerships"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "tundra-sr5", res.VehicleID)
	require.Len(t, res.Dealerships, 1)
	assert.Len(t, res.Dealerships[0].AvailableSlots, 10)

	rec = doJSON(t, router, http.MethodGet, "/bookings/availability/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDollarsFormatting(t *testing.T) {
	assert.Equal(t, "$30,575.40", dollars(30575.40))
	assert.Equal(t, "$1,000.00", dollars(1000))
}
