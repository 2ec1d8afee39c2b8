// Package settlement implements the monthly PPA settlement formula:
//
//	settlement_price  = monthly_average_price - discount_per_mwh
//	settlement_amount = settlement_price * volume_mwh
//
// It is pure: callers fetch the month's price window and pass it in.
package settlement

import (
	"math"

	"github.com/energy-oracle/eo-api/internal/domain/models"
)

// MonthlyAverage folds a month of settlement period prices into the PPA
// reference price. Returns nil when the month holds no periods.
func MonthlyAverage(points []models.PricePoint, year, month int, pt models.PriceType) *models.MonthlyAverage {
	if len(points) == 0 {
		return nil
	}

	sum, mn, mx := 0.0, points[0].Price, points[0].Price
	for _, p := range points {
		sum += p.Price
		if p.Price < mn {
			mn = p.Price
		}
		if p.Price > mx {
			mx = p.Price
		}
	}

	return &models.MonthlyAverage{
		Year:              year,
		Month:             month,
		AveragePrice:      round2(sum / float64(len(points))),
		MinPrice:          mn,
		MaxPrice:          mx,
		SettlementPeriods: len(points),
		Unit:              "GBP/MWh",
		PriceType:         pt,
	}
}

// Calculate applies the PPA formula against a month's reference price.
// The discount may be negative (a premium PPA); a negative settlement
// price is valid output. Volume is optional; without it only the price
// leg is reported. Returns nil when the month holds no periods: a partial
// settlement must never be produced.
func Calculate(points []models.PricePoint, year, month int, pt models.PriceType, discountPerMWh float64, volumeMWh *float64) *models.SettlementResult {
	avg := MonthlyAverage(points, year, month, pt)
	if avg == nil {
		return nil
	}

	settlementPrice := avg.AveragePrice - discountPerMWh

	result := &models.SettlementResult{
		Year:              year,
		Month:             month,
		PriceType:         pt,
		AveragePrice:      avg.AveragePrice,
		Discount:          discountPerMWh,
		SettlementPrice:   round2(settlementPrice),
		SettlementPeriods: avg.SettlementPeriods,
		Unit:              "GBP/MWh",
		Currency:          "GBP",
	}
	if volumeMWh != nil {
		amount := round2(settlementPrice * *volumeMWh)
		result.VolumeMWh = volumeMWh
		result.SettlementAmount = &amount
	}
	return result
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
