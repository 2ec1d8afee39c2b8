package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/internal/usecase"
)

func newCarbonHandler(store *stubCarbonStore) *CarbonHandler {
	return NewCarbonHandler(testLogger(), usecase.NewCarbonUseCase(store, nil, 0, nil))
}

func TestCarbonCurrent(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	store := &stubCarbonStore{carbon: []models.CarbonPoint{
		{Datetime: day, Intensity: 120, IntensityIndex: "moderate"},
		{Datetime: day.Add(30 * time.Minute), Intensity: 95, IntensityIndex: "low"},
	}}

	rec := doRequest(newCarbonHandler(store), http.MethodGet, "/uk/carbon/intensity/current", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res models.CarbonResponse
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 1 || res.Data[0].Intensity != 95 {
		t.Fatalf("expected single latest reading of 95, got %+v", res)
	}
	if res.Unit != "gCO2/kWh" {
		t.Fatalf("unexpected unit %q", res.Unit)
	}
}

func TestCarbonByDateEmptyIsOK(t *testing.T) {
	rec := doRequest(newCarbonHandler(&stubCarbonStore{}), http.MethodGet, "/uk/carbon/intensity/date/2025-03-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("an empty day is a valid empty list, got %d", rec.Code)
	}
	var res models.CarbonResponse
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 0 || res.Data == nil {
		t.Fatalf("expected empty list, got %+v", res)
	}
}

func TestCarbonRangeInverted(t *testing.T) {
	rec := doRequest(newCarbonHandler(&stubCarbonStore{}), http.MethodGet,
		"/uk/carbon/intensity/range?from_date=2025-03-05&to_date=2025-03-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted window, got %d", rec.Code)
	}
}

func TestFuelMixCurrentUnit(t *testing.T) {
	wind := 42.5
	store := &stubCarbonStore{fuel: []models.FuelMixPoint{
		{Datetime: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), Wind: &wind},
	}}

	rec := doRequest(newCarbonHandler(store), http.MethodGet, "/uk/carbon/fuelmix/current", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res models.FuelMixResponse
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Unit != "percentage" || res.Count != 1 {
		t.Fatalf("unexpected response %+v", res)
	}
	if res.Data[0].Wind == nil || *res.Data[0].Wind != 42.5 {
		t.Fatalf("wind share lost in transit: %+v", res.Data[0])
	}
}

func TestCarbonUpstreamError(t *testing.T) {
	rec := doRequest(newCarbonHandler(&stubCarbonStore{err: errStub}), http.MethodGet, "/uk/carbon/intensity/current", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for store failure, got %d", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler(testLogger(), &stubPriceStore{}, "1.2.3")

	rec := doRequest(h, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on root, got %d", rec.Code)
	}
	var root map[string]string
	if err := decodeEnvelope(rec, &root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if root["name"] != "eo-api" || root["version"] != "1.2.3" {
		t.Fatalf("unexpected root payload %+v", root)
	}

	rec = doRequest(h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy, got %d", rec.Code)
	}

	broken := NewHealthHandler(testLogger(), &stubPriceStore{err: errStub}, "")
	rec = doRequest(broken, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the store is down, got %d", rec.Code)
	}
}
