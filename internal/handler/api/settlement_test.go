package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/internal/usecase"
)

func newSettlementHandler(store *stubPriceStore) *SettlementHandler {
	return NewSettlementHandler(testLogger(), usecase.NewSettlementUseCase(store))
}

func TestSettlementCalculate(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	h := newSettlementHandler(&stubPriceStore{points: priceDays(start, 31, 72.50)})

	body := []byte(`{"year":2025,"month":1,"discount_per_mwh":5.00,"volume_mwh":14200,"price_type":"system"}`)
	rec := doRequest(h, http.MethodPost, "/uk/settlement/calculate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res models.SettlementResult
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.SettlementPrice != 67.50 {
		t.Fatalf("expected settlement price 67.50, got %v", res.SettlementPrice)
	}
	if res.SettlementAmount == nil || *res.SettlementAmount != 958500.00 {
		t.Fatalf("expected amount 958500.00, got %v", res.SettlementAmount)
	}
	if res.Currency != "GBP" {
		t.Fatalf("expected GBP, got %s", res.Currency)
	}
}

func TestSettlementWithoutVolume(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	h := newSettlementHandler(&stubPriceStore{points: priceDays(start, 31, 60)})

	body := []byte(`{"year":2025,"month":1,"discount_per_mwh":-10}`)
	rec := doRequest(h, http.MethodPost, "/uk/settlement/calculate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res models.SettlementResult
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.SettlementPrice != 70 {
		t.Fatalf("negative discount should raise the price, got %v", res.SettlementPrice)
	}
	if res.SettlementAmount != nil {
		t.Fatalf("amount must be absent without volume, got %v", *res.SettlementAmount)
	}
	if res.PriceType != models.PriceTypeSystem {
		t.Fatalf("price type should default to system, got %s", res.PriceType)
	}
}

func TestSettlementEmptyMonth(t *testing.T) {
	h := newSettlementHandler(&stubPriceStore{})

	body := []byte(`{"year":2025,"month":1,"discount_per_mwh":5}`)
	rec := doRequest(h, http.MethodPost, "/uk/settlement/calculate", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty month, got %d", rec.Code)
	}
}

func TestSettlementValidation(t *testing.T) {
	h := newSettlementHandler(&stubPriceStore{})

	cases := []struct {
		name string
		body string
	}{
		{"month out of range", `{"year":2025,"month":13,"discount_per_mwh":5}`},
		{"year out of range", `{"year":1985,"month":1,"discount_per_mwh":5}`},
		{"zero volume", `{"year":2025,"month":1,"discount_per_mwh":5,"volume_mwh":0}`},
		{"unknown price type", `{"year":2025,"month":1,"discount_per_mwh":5,"price_type":"intraday"}`},
	}
	for _, tc := range cases {
		rec := doRequest(h, http.MethodPost, "/uk/settlement/calculate", []byte(tc.body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", tc.name, rec.Code, rec.Body.String())
		}
	}
}
