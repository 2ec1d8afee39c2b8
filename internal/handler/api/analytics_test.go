package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/energy-oracle/eo-api/internal/analytics"
	"github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/internal/usecase"
)

func newAnalyticsHandler(prices *stubPriceStore, carbon *stubCarbonStore) *AnalyticsHandler {
	engine := analytics.NewEngine(analytics.Config{})
	uc := usecase.NewAnalyticsUseCase(prices, carbon, engine, nil, 0, nil)
	return NewAnalyticsHandler(testLogger(), uc)
}

func TestAnalyticsDaily(t *testing.T) {
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	h := newAnalyticsHandler(&stubPriceStore{points: priceDays(start, 2, 90)}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/prices/daily?from_date=2025-03-03&to_date=2025-03-04", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res models.DailyAverageResponse
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("expected 2 days, got %d", res.Count)
	}
	if res.Data[0].AveragePrice != 90 {
		t.Fatalf("expected average 90, got %v", res.Data[0].AveragePrice)
	}
	if res.PriceType != models.PriceTypeSystem {
		t.Fatalf("price type should default to system, got %s", res.PriceType)
	}
}

func TestAnalyticsDailyRangeCap(t *testing.T) {
	h := newAnalyticsHandler(&stubPriceStore{}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/prices/daily?from_date=2025-01-01&to_date=2025-06-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for window over 90 days, got %d", rec.Code)
	}
}

func TestAnalyticsMissingDates(t *testing.T) {
	h := newAnalyticsHandler(&stubPriceStore{}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/prices/weekly", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing dates, got %d", rec.Code)
	}
}

func TestAnalyticsPeakOffPeakPartition(t *testing.T) {
	// Monday, all periods present
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	h := newAnalyticsHandler(&stubPriceStore{points: priceDays(start, 1, 100)}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/prices/peak-offpeak?from_date=2025-03-03&to_date=2025-03-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res models.PeakOffPeakBreakdown
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.PeakPeriods+res.OffPeakPeriods != 48 {
		t.Fatalf("classes must partition the day: %d+%d", res.PeakPeriods, res.OffPeakPeriods)
	}
}

func TestAnalyticsStatisticsEmptyWindow(t *testing.T) {
	h := newAnalyticsHandler(&stubPriceStore{}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/prices/statistics?from_date=2025-03-03&to_date=2025-03-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty window, got %d", rec.Code)
	}
	var res models.PriceStatistics
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Average != nil || res.StdDev != nil {
		t.Fatalf("empty window must not fabricate statistics: %+v", res)
	}
	if res.SettlementPeriods != 0 {
		t.Fatalf("expected zero periods, got %d", res.SettlementPeriods)
	}
}

func TestAnalyticsWeightedPrice(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	carbon := make([]models.CarbonPoint, 48)
	for i := range carbon {
		carbon[i] = models.CarbonPoint{Datetime: day.Add(time.Duration(i) * 30 * time.Minute), Intensity: 150}
	}
	h := newAnalyticsHandler(&stubPriceStore{points: priceDays(day, 1, 80)}, &stubCarbonStore{carbon: carbon})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/carbon/weighted-price?from_date=2025-03-03&to_date=2025-03-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res models.CarbonWeightedPrice
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.MatchedPeriods != 48 {
		t.Fatalf("expected full join, got %d matched", res.MatchedPeriods)
	}
	if res.WeightedPrice == nil || *res.WeightedPrice != 80 {
		t.Fatalf("flat prices must weight to themselves, got %v", res.WeightedPrice)
	}
	if res.AvgCarbonIntensity != 150 {
		t.Fatalf("expected avg intensity 150, got %d", res.AvgCarbonIntensity)
	}
}

func TestAnalyticsRenewableIndexNoData(t *testing.T) {
	h := newAnalyticsHandler(&stubPriceStore{}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/carbon/renewable-index/2025/6", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for month without fuel mix, got %d", rec.Code)
	}
}

func TestAnalyticsRenewableIndexBadMonth(t *testing.T) {
	h := newAnalyticsHandler(&stubPriceStore{}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/carbon/renewable-index/2025/13", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", rec.Code)
	}
}

func TestAnalyticsGreenPremiumThresholdValidation(t *testing.T) {
	h := newAnalyticsHandler(&stubPriceStore{}, &stubCarbonStore{})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/prices/green-premium/2025/6?renewable_threshold=140", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for threshold over 100, got %d", rec.Code)
	}
}

func TestAnalyticsGreenPremium(t *testing.T) {
	june := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	prices := priceDays(june, 1, 50)
	wind := 70.0
	fuel := make([]models.FuelMixPoint, 48)
	for i := range fuel {
		fuel[i] = models.FuelMixPoint{Datetime: june.Add(time.Duration(i) * 30 * time.Minute), Wind: &wind}
	}
	h := newAnalyticsHandler(&stubPriceStore{points: prices}, &stubCarbonStore{fuel: fuel})

	rec := doRequest(h, http.MethodGet, "/uk/analytics/prices/green-premium/2025/6", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res models.GreenPremium
	if err := decodeEnvelope(rec, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.GreenPeriods != 48 || res.BrownPeriods != 0 {
		t.Fatalf("all periods are green at 70%% wind: %+v", res)
	}
	if res.RenewableThreshold != 50 {
		t.Fatalf("threshold should default to 50, got %v", res.RenewableThreshold)
	}
}
