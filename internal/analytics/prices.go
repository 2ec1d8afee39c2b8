package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/pkg/util"
)

const priceUnit = "GBP/MWh"

// DailyAverages buckets a price window by UTC calendar day. Days with no
// rows are simply absent from the result.
func (e *Engine) DailyAverages(points []models.PricePoint, pt models.PriceType) *models.DailyAverageResponse {
	buckets := make(map[time.Time][]float64)
	for _, p := range points {
		day := util.Midnight(p.SettlementDate)
		buckets[day] = append(buckets[day], p.Price)
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]models.DailyAverage, 0, len(days))
	for _, day := range days {
		prices := buckets[day]
		mn, mx := minMax(prices)
		out = append(out, models.DailyAverage{
			Date:              day,
			AveragePrice:      round2(mean(prices)),
			MinPrice:          mn,
			MaxPrice:          mx,
			SettlementPeriods: len(prices),
			Unit:              priceUnit,
		})
	}

	return &models.DailyAverageResponse{Data: out, Count: len(out), PriceType: pt}
}

// WeeklyAverages buckets a price window by ISO week (Monday start).
func (e *Engine) WeeklyAverages(points []models.PricePoint, pt models.PriceType) *models.WeeklyAverageResponse {
	type weekKey struct{ year, week int }
	type weekBucket struct {
		start  time.Time
		prices []float64
	}

	buckets := make(map[weekKey]*weekBucket)
	for _, p := range points {
		y, w := p.SettlementDate.ISOWeek()
		key := weekKey{y, w}
		b, ok := buckets[key]
		if !ok {
			b = &weekBucket{start: util.WeekStart(p.SettlementDate)}
			buckets[key] = b
		}
		b.prices = append(b.prices, p.Price)
	}

	keys := make([]weekKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].week < keys[j].week
	})

	out := make([]models.WeeklyAverage, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		mn, mx := minMax(b.prices)
		out = append(out, models.WeeklyAverage{
			WeekStart:         b.start,
			WeekEnd:           b.start.AddDate(0, 0, 6),
			WeekNumber:        k.week,
			AveragePrice:      round2(mean(b.prices)),
			MinPrice:          mn,
			MaxPrice:          mx,
			SettlementPeriods: len(b.prices),
			Unit:              priceUnit,
		})
	}

	return &models.WeeklyAverageResponse{Data: out, Count: len(out), PriceType: pt}
}

// PeakOffPeak splits a window into peak (weekday, daytime settlement
// periods) and off-peak (everything else) price classes.
func (e *Engine) PeakOffPeak(points []models.PricePoint, from, to time.Time) *models.PeakOffPeakBreakdown {
	var peak, offpeak []float64
	for _, p := range points {
		wd := p.SettlementDate.Weekday()
		isWeekday := wd != time.Saturday && wd != time.Sunday
		if isWeekday && e.isPeakPeriod(p.SettlementPeriod) {
			peak = append(peak, p.Price)
		} else {
			offpeak = append(offpeak, p.Price)
		}
	}

	b := &models.PeakOffPeakBreakdown{
		Period:         windowPeriod(from, to),
		StartDate:      from,
		EndDate:        to,
		PeakPeriods:    len(peak),
		OffPeakPeriods: len(offpeak),
		Unit:           priceUnit,
	}

	var peakAvg, offpeakAvg float64
	if len(peak) > 0 {
		peakAvg = mean(peak)
		b.PeakAverage = round2(peakAvg)
		b.PeakMin, b.PeakMax = minMax(peak)
	}
	if len(offpeak) > 0 {
		offpeakAvg = mean(offpeak)
		b.OffPeakAverage = round2(offpeakAvg)
		b.OffPeakMin, b.OffPeakMax = minMax(offpeak)
	}

	b.PeakPremium = round2(peakAvg - offpeakAvg)
	if offpeakAvg != 0 {
		b.PeakPremiumPct = ptr(round1((peakAvg - offpeakAvg) / offpeakAvg * 100))
	}
	return b
}

// Statistics computes the full statistical summary of a price window. An
// empty window reports counts only; no averages are fabricated.
func (e *Engine) Statistics(points []models.PricePoint, pt models.PriceType, from, to time.Time) *models.PriceStatistics {
	stats := &models.PriceStatistics{
		Period:    statsPeriod(from, to),
		StartDate: from,
		EndDate:   to,
		PriceType: pt,
		Unit:      priceUnit,
	}
	if len(points) == 0 {
		return stats
	}

	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	sorted := sortedCopy(prices)

	avg := mean(prices)
	std := stdDev(prices, avg)

	stats.Average = ptr(round2(avg))
	stats.Median = ptr(round2(median(sorted)))
	stats.Min = ptr(sorted[0])
	stats.Max = ptr(sorted[len(sorted)-1])
	stats.StdDev = ptr(round2(std))
	if avg != 0 {
		stats.VolatilityPct = ptr(round1(std / math.Abs(avg) * 100))
	}
	stats.Percentile25 = ptr(round2(percentile(sorted, 25)))
	stats.Percentile75 = ptr(round2(percentile(sorted, 75)))
	stats.Percentile95 = ptr(round2(percentile(sorted, 95)))

	threshold := e.spikeThreshold(pt)
	stats.SettlementPeriods = len(prices)
	for _, p := range prices {
		if p < 0 {
			stats.NegativePeriods++
		}
		if p > threshold {
			stats.SpikePeriods++
		}
	}
	return stats
}

func minMax(xs []float64) (float64, float64) {
	mn, mx := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < mn {
			mn = x
		}
		if x > mx {
			mx = x
		}
	}
	return mn, mx
}

// windowPeriod labels a window day/week/month by its inclusive day span.
func windowPeriod(from, to time.Time) string {
	days := util.DaysInclusive(from, to)
	switch {
	case days <= 1:
		return "day"
	case days <= 7:
		return "week"
	default:
		return "month"
	}
}

// statsPeriod additionally distinguishes year-scale windows.
func statsPeriod(from, to time.Time) string {
	days := util.DaysInclusive(from, to)
	switch {
	case days <= 1:
		return "day"
	case days <= 7:
		return "week"
	case days <= 31:
		return "month"
	default:
		return "year"
	}
}
