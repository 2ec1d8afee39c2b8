package settlement

import (
	"testing"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
)

func monthOf(price float64, periods int) []models.PricePoint {
	day := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, 0, periods)
	for i := 0; i < periods; i++ {
		points = append(points, models.PricePoint{
			SettlementDate:   day.AddDate(0, 0, i/48),
			SettlementPeriod: i%48 + 1,
			Price:            price,
			PriceType:        models.PriceTypeSystem,
		})
	}
	return points
}

func TestCalculateStandardPPA(t *testing.T) {
	volume := 14200.0
	res := Calculate(monthOf(72.50, 1488), 2025, 1, models.PriceTypeSystem, 5.00, &volume)
	if res == nil {
		t.Fatalf("expected a result")
	}
	if res.AveragePrice != 72.50 {
		t.Fatalf("expected average 72.50, got %v", res.AveragePrice)
	}
	if res.SettlementPrice != 67.50 {
		t.Fatalf("expected settlement price 67.50, got %v", res.SettlementPrice)
	}
	if res.SettlementAmount == nil || *res.SettlementAmount != 958500.00 {
		t.Fatalf("expected amount 958500.00, got %v", res.SettlementAmount)
	}
	if res.SettlementPeriods != 1488 {
		t.Fatalf("expected 1488 periods, got %d", res.SettlementPeriods)
	}
	if res.Currency != "GBP" || res.Unit != "GBP/MWh" {
		t.Fatalf("unexpected unit/currency: %s %s", res.Unit, res.Currency)
	}
}

func TestCalculateNegativeDiscount(t *testing.T) {
	res := Calculate(monthOf(60, 48), 2025, 1, models.PriceTypeSystem, -10, nil)
	if res.SettlementPrice != 70 {
		t.Fatalf("negative discount must raise the price: got %v", res.SettlementPrice)
	}
	if res.SettlementAmount != nil || res.VolumeMWh != nil {
		t.Fatalf("no volume means no amount: %+v", res)
	}
}

func TestCalculateNegativeSettlementPrice(t *testing.T) {
	volume := 100.0
	res := Calculate(monthOf(3, 48), 2025, 1, models.PriceTypeSystem, 8, &volume)
	if res.SettlementPrice != -5 {
		t.Fatalf("negative settlement price is valid output, got %v", res.SettlementPrice)
	}
	if *res.SettlementAmount != -500 {
		t.Fatalf("expected amount -500, got %v", *res.SettlementAmount)
	}
}

func TestCalculateFractionalVolume(t *testing.T) {
	volume := 0.5
	res := Calculate(monthOf(100, 48), 2025, 1, models.PriceTypeDayAhead, 0, &volume)
	if *res.SettlementAmount != 50 {
		t.Fatalf("expected amount 50, got %v", *res.SettlementAmount)
	}
	if res.PriceType != models.PriceTypeDayAhead {
		t.Fatalf("price type must carry through, got %s", res.PriceType)
	}
}

func TestCalculateEmptyMonth(t *testing.T) {
	if res := Calculate(nil, 2025, 1, models.PriceTypeSystem, 5, nil); res != nil {
		t.Fatalf("empty month must not yield a partial result: %+v", res)
	}
	if avg := MonthlyAverage(nil, 2025, 1, models.PriceTypeSystem); avg != nil {
		t.Fatalf("empty month must not yield an average: %+v", avg)
	}
}

func TestMonthlyAverageExtremes(t *testing.T) {
	points := monthOf(50, 3)
	points[0].Price = -20
	points[2].Price = 130

	avg := MonthlyAverage(points, 2025, 1, models.PriceTypeSystem)
	if avg.MinPrice != -20 || avg.MaxPrice != 130 {
		t.Fatalf("unexpected extremes: %v / %v", avg.MinPrice, avg.MaxPrice)
	}
	if avg.AveragePrice != 53.33 {
		t.Fatalf("expected 53.33, got %v", avg.AveragePrice)
	}
}
