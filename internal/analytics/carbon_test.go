package analytics

import (
	"testing"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
)

func f64(v float64) *float64 { return &v }

// carbonDay builds one half-hourly intensity reading per settlement period.
func carbonDay(date time.Time, intensities []int) []models.CarbonPoint {
	out := make([]models.CarbonPoint, 0, len(intensities))
	for i, v := range intensities {
		out = append(out, models.CarbonPoint{
			Datetime:  date.Add(time.Duration(i) * 30 * time.Minute),
			Intensity: v,
		})
	}
	return out
}

func TestCarbonWeightedPriceScaleInvariance(t *testing.T) {
	e := NewEngine(Config{})
	d := day(2025, time.March, 3)
	points := fullDay(d, 0)
	intensities := make([]int, 48)
	for i := range points {
		points[i].Price = 40 + float64(i)
		intensities[i] = 80 + i*3
	}

	base := e.CarbonWeightedPrice(points, carbonDay(d, intensities), d, d)
	if base.WeightedPrice == nil {
		t.Fatalf("expected a weighted price")
	}

	scaled := make([]int, 48)
	for i, v := range intensities {
		scaled[i] = v * 7
	}
	got := e.CarbonWeightedPrice(points, carbonDay(d, scaled), d, d)
	if got.WeightedPrice == nil || *got.WeightedPrice != *base.WeightedPrice {
		t.Fatalf("weighted mean must be invariant under uniform intensity scaling: %v vs %v",
			got.WeightedPrice, base.WeightedPrice)
	}
}

func TestCarbonWeightedPriceExactJoin(t *testing.T) {
	e := NewEngine(Config{})
	d := day(2025, time.March, 3)
	points := fullDay(d, 100)

	// Intensity only for the first 10 slots; the rest must stay unmatched.
	carbon := carbonDay(d, []int{50, 50, 50, 50, 50, 250, 250, 250, 250, 250})
	got := e.CarbonWeightedPrice(points, carbon, d, d)
	if got.MatchedPeriods != 10 {
		t.Fatalf("expected 10 matched periods, got %d", got.MatchedPeriods)
	}
	if got.GreenPeriods != 5 || got.BrownPeriods != 5 {
		t.Fatalf("expected 5 green / 5 brown, got %d/%d", got.GreenPeriods, got.BrownPeriods)
	}
	if got.AveragePrice == nil || *got.AveragePrice != 100 {
		t.Fatalf("expected average 100, got %v", got.AveragePrice)
	}
}

func TestCarbonWeightedPriceEmptyWindow(t *testing.T) {
	e := NewEngine(Config{})
	d := day(2025, time.March, 3)

	got := e.CarbonWeightedPrice(nil, nil, d, d)
	if got.AveragePrice != nil || got.WeightedPrice != nil {
		t.Fatalf("empty window must not fabricate prices: %+v", got)
	}
	if got.MatchedPeriods != 0 {
		t.Fatalf("expected zero matched periods, got %d", got.MatchedPeriods)
	}
}

func TestDailyCarbonSummaryBands(t *testing.T) {
	e := NewEngine(Config{})
	d := day(2025, time.March, 3)
	carbon := carbonDay(d, []int{30, 70, 150, 250, 350, 40})

	resp := e.DailyCarbonSummaries(carbon, nil)
	if resp.Count != 1 {
		t.Fatalf("expected 1 day, got %d", resp.Count)
	}
	s := resp.Data[0]
	if s.VeryLowHours != 1.0 || s.LowHours != 0.5 || s.ModerateHours != 0.5 ||
		s.HighHours != 0.5 || s.VeryHighHours != 0.5 {
		t.Fatalf("unexpected band hours: %+v", s)
	}
	if s.MinIntensity != 30 || s.MaxIntensity != 350 {
		t.Fatalf("unexpected extremes: min=%d max=%d", s.MinIntensity, s.MaxIntensity)
	}
	if s.DominantFuel != "unknown" {
		t.Fatalf("no fuel mix should yield unknown dominant fuel, got %s", s.DominantFuel)
	}
}

func TestDailyCarbonSummaryDominantFuel(t *testing.T) {
	e := NewEngine(Config{})
	d := day(2025, time.March, 3)
	carbon := carbonDay(d, []int{120, 130})
	fuel := []models.FuelMixPoint{
		{Datetime: d, Wind: f64(45), Gas: f64(30), Solar: f64(5), Hydro: f64(2)},
		{Datetime: d.Add(30 * time.Minute), Wind: f64(55), Gas: f64(20), Solar: f64(3), Hydro: f64(2)},
	}

	resp := e.DailyCarbonSummaries(carbon, fuel)
	s := resp.Data[0]
	if s.DominantFuel != "wind" {
		t.Fatalf("expected wind dominant, got %s", s.DominantFuel)
	}
	// wind 50 + solar 4 + hydro 2
	if s.RenewablePct != 56 {
		t.Fatalf("expected renewable 56, got %v", s.RenewablePct)
	}
}

func TestRenewableIndexClassification(t *testing.T) {
	e := NewEngine(Config{})
	mix := func(wind float64) []models.FuelMixPoint {
		return []models.FuelMixPoint{{Datetime: day(2025, time.June, 1), Wind: f64(wind)}}
	}

	if idx := e.RenewableIndex(2025, 6, mix(20), nil); idx.EstimatedREGO != "low" {
		t.Fatalf("expected low, got %s", idx.EstimatedREGO)
	}
	if idx := e.RenewableIndex(2025, 6, mix(40), nil); idx.EstimatedREGO != "medium" {
		t.Fatalf("expected medium, got %s", idx.EstimatedREGO)
	}
	if idx := e.RenewableIndex(2025, 6, mix(60), nil); idx.EstimatedREGO != "high" {
		t.Fatalf("expected high, got %s", idx.EstimatedREGO)
	}
}

func TestRenewableIndexVsPreviousMonth(t *testing.T) {
	e := NewEngine(Config{})
	current := []models.FuelMixPoint{{Datetime: day(2025, time.June, 1), Wind: f64(60)}}
	previous := []models.FuelMixPoint{{Datetime: day(2025, time.May, 1), Wind: f64(50)}}

	idx := e.RenewableIndex(2025, 6, current, previous)
	if idx.VsPreviousMonthPct == nil || *idx.VsPreviousMonthPct != 20 {
		t.Fatalf("expected +20%% vs previous month, got %v", idx.VsPreviousMonthPct)
	}
	if idx.Period != "2025-06" {
		t.Fatalf("unexpected period label %s", idx.Period)
	}

	if e.RenewableIndex(2025, 6, nil, nil) != nil {
		t.Fatalf("empty month must yield nil index")
	}
}

func TestGreenPremiumSplit(t *testing.T) {
	e := NewEngine(Config{})
	d := day(2025, time.June, 2)
	prices := []models.PricePoint{
		{SettlementDate: d, SettlementPeriod: 1, Price: 40},
		{SettlementDate: d, SettlementPeriod: 2, Price: 44},
		{SettlementDate: d, SettlementPeriod: 3, Price: 90},
		{SettlementDate: d, SettlementPeriod: 4, Price: 110},
		{SettlementDate: d, SettlementPeriod: 5, Price: 999}, // no fuel slot, excluded
	}
	fuel := []models.FuelMixPoint{
		{Datetime: d, Wind: f64(70)},
		{Datetime: d.Add(30 * time.Minute), Wind: f64(60)},
		{Datetime: d.Add(60 * time.Minute), Wind: f64(20)},
		{Datetime: d.Add(90 * time.Minute), Wind: f64(10)},
	}

	gp := e.GreenPremium(2025, 6, 50, prices, fuel)
	if gp == nil {
		t.Fatalf("expected a premium result")
	}
	if gp.GreenPeriods != 2 || gp.BrownPeriods != 2 {
		t.Fatalf("expected 2/2 split, got %d/%d", gp.GreenPeriods, gp.BrownPeriods)
	}
	if gp.GreenPriceAvg != 42 || gp.BrownPriceAvg != 100 {
		t.Fatalf("unexpected averages: %v / %v", gp.GreenPriceAvg, gp.BrownPriceAvg)
	}
	if gp.GreenPremium != -58 {
		t.Fatalf("expected premium -58, got %v", gp.GreenPremium)
	}
	if gp.GreenPremiumPct != -58 {
		t.Fatalf("expected premium pct -58, got %v", gp.GreenPremiumPct)
	}

	if e.GreenPremium(2025, 6, 50, prices, nil) != nil {
		t.Fatalf("no matched periods must yield nil")
	}
}
