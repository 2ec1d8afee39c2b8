package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	"github.com/energy-oracle/eo-api/pkg/util"
)

// Carbon intensity bands in gCO2/kWh. Green and brown bound the weighted
// price bucketing; the summary bands follow the national intensity index.
const (
	greenIntensityBelow = 100
	brownIntensityAbove = 200
)

// halfHour truncates a timestamp to its half-hour slot in UTC.
func halfHour(t time.Time) time.Time {
	u := t.UTC()
	minute := 0
	if u.Minute() >= 30 {
		minute = 30
	}
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), minute, 0, 0, time.UTC)
}

// CarbonWeightedPrice joins prices and carbon intensity on the half-hour
// slot. Unmatched periods are excluded from the weighted mean and the
// green/brown buckets, never interpolated.
func (e *Engine) CarbonWeightedPrice(prices []models.PricePoint, carbon []models.CarbonPoint, from, to time.Time) *models.CarbonWeightedPrice {
	carbonBySlot := make(map[time.Time]int, len(carbon))
	for _, c := range carbon {
		carbonBySlot[halfHour(c.Datetime)] = c.Intensity
	}

	var (
		all, green, brown []float64
		intensities       []float64
		weightedNum       float64
		weightSum         float64
	)
	for _, p := range prices {
		all = append(all, p.Price)

		intensity, ok := carbonBySlot[p.Timestamp()]
		if !ok {
			continue
		}
		intensities = append(intensities, float64(intensity))
		weightedNum += p.Price * float64(intensity)
		weightSum += float64(intensity)

		if intensity < greenIntensityBelow {
			green = append(green, p.Price)
		} else if intensity > brownIntensityAbove {
			brown = append(brown, p.Price)
		}
	}

	out := &models.CarbonWeightedPrice{
		Period:         windowPeriod(from, to),
		StartDate:      from,
		EndDate:        to,
		GreenPeriods:   len(green),
		BrownPeriods:   len(brown),
		MatchedPeriods: len(intensities),
	}
	if len(all) == 0 {
		return out
	}

	avg := mean(all)
	out.AveragePrice = ptr(round2(avg))
	if weightSum > 0 {
		out.WeightedPrice = ptr(round2(weightedNum / weightSum))
	}

	// Empty buckets fall back to the overall mean so the premium reads zero
	// rather than a swing against an absent class.
	greenAvg, brownAvg := avg, avg
	if len(green) > 0 {
		greenAvg = mean(green)
	}
	if len(brown) > 0 {
		brownAvg = mean(brown)
	}
	out.GreenAverage = round2(greenAvg)
	out.BrownAverage = round2(brownAvg)
	out.GreenPct = round1(float64(len(green)) / float64(len(all)) * 100)
	out.BrownPct = round1(float64(len(brown)) / float64(len(all)) * 100)
	out.GreenPremium = round2(greenAvg - avg)
	if len(intensities) > 0 {
		out.AvgCarbonIntensity = int(mean(intensities))
	}
	return out
}

// DailyCarbonSummaries aggregates carbon readings per calendar day: average
// and extreme intensity, half-hours spent in each band, and the day's
// dominant fuel plus renewable share when fuel mix rows are present.
func (e *Engine) DailyCarbonSummaries(carbon []models.CarbonPoint, fuel []models.FuelMixPoint) *models.DailyCarbonSummaryResponse {
	carbonByDay := make(map[time.Time][]int)
	for _, c := range carbon {
		day := util.Midnight(c.Datetime)
		carbonByDay[day] = append(carbonByDay[day], c.Intensity)
	}
	fuelByDay := make(map[time.Time][]models.FuelMixPoint)
	for _, f := range fuel {
		day := util.Midnight(f.Datetime)
		fuelByDay[day] = append(fuelByDay[day], f)
	}

	days := make([]time.Time, 0, len(carbonByDay))
	for day := range carbonByDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]models.DailyCarbonSummary, 0, len(days))
	for _, day := range days {
		intensities := carbonByDay[day]
		s := models.DailyCarbonSummary{Date: day, DominantFuel: "unknown"}

		var sum int
		s.MinIntensity, s.MaxIntensity = intensities[0], intensities[0]
		for _, i := range intensities {
			sum += i
			if i < s.MinIntensity {
				s.MinIntensity = i
			}
			if i > s.MaxIntensity {
				s.MaxIntensity = i
			}
			// each reading covers half an hour
			switch {
			case i < 50:
				s.VeryLowHours += 0.5
			case i < 100:
				s.LowHours += 0.5
			case i < 200:
				s.ModerateHours += 0.5
			case i < 300:
				s.HighHours += 0.5
			default:
				s.VeryHighHours += 0.5
			}
		}
		s.AverageIntensity = sum / len(intensities)

		if mixes := fuelByDay[day]; len(mixes) > 0 {
			s.DominantFuel, s.RenewablePct = dominantFuel(mixes)
		}
		out = append(out, s)
	}

	return &models.DailyCarbonSummaryResponse{Data: out, Count: len(out)}
}

// dominantFuel averages each fuel's share over a day and names the largest.
// The reported renewable share counts wind, solar and hydro.
func dominantFuel(mixes []models.FuelMixPoint) (string, float64) {
	totals := map[string]float64{}
	add := func(name string, v *float64) {
		if v != nil {
			totals[name] += *v
		} else {
			totals[name] += 0
		}
	}
	for _, fm := range mixes {
		add("wind", fm.Wind)
		add("solar", fm.Solar)
		add("hydro", fm.Hydro)
		add("gas", fm.Gas)
		add("nuclear", fm.Nuclear)
		add("coal", fm.Coal)
		add("biomass", fm.Biomass)
	}

	n := float64(len(mixes))
	best, bestAvg := "unknown", -1.0
	for _, name := range []string{"wind", "solar", "hydro", "gas", "nuclear", "coal", "biomass"} {
		avg := totals[name] / n
		totals[name] = avg
		if avg > bestAvg {
			best, bestAvg = name, avg
		}
	}
	renewable := round1(totals["wind"] + totals["solar"] + totals["hydro"])
	return best, renewable
}

// RenewableIndex summarizes a month's renewable generation share. previous
// holds the prior month's fuel mix and may be empty, in which case the
// month-on-month delta is omitted. Returns nil when the month has no data.
func (e *Engine) RenewableIndex(year, month int, current, previous []models.FuelMixPoint) *models.RenewableIndex {
	if len(current) == 0 {
		return nil
	}
	from, to := util.MonthBounds(year, month)

	var wind, solar, hydro, biomass float64
	for _, fm := range current {
		wind += deref(fm.Wind)
		solar += deref(fm.Solar)
		hydro += deref(fm.Hydro)
		biomass += deref(fm.Biomass)
	}
	n := float64(len(current))
	wind, solar, hydro, biomass = wind/n, solar/n, hydro/n, biomass/n
	total := wind + solar + hydro + biomass

	idx := &models.RenewableIndex{
		Period:            fmt.Sprintf("%04d-%02d", year, month),
		StartDate:         from,
		EndDate:           to,
		TotalRenewablePct: round1(total),
		WindPct:           round1(wind),
		SolarPct:          round1(solar),
		HydroPct:          round1(hydro),
		BiomassPct:        round1(biomass),
		EstimatedREGO:     regoSupply(total),
		SettlementPeriods: len(current),
	}

	if len(previous) > 0 {
		var prevTotal float64
		for _, fm := range previous {
			prevTotal += deref(fm.Wind) + deref(fm.Solar) + deref(fm.Hydro) + deref(fm.Biomass)
		}
		prevAvg := prevTotal / float64(len(previous))
		if prevAvg > 0 {
			idx.VsPreviousMonthPct = ptr(round1((total - prevAvg) / prevAvg * 100))
		}
	}
	return idx
}

// regoSupply maps a renewable share to expected REGO certificate supply.
func regoSupply(totalRenewablePct float64) string {
	switch {
	case totalRenewablePct < 30:
		return "low"
	case totalRenewablePct < 50:
		return "medium"
	default:
		return "high"
	}
}

// GreenPremium splits a month's prices by the renewable share of the
// matching fuel mix slot. Returns nil when no period matches.
func (e *Engine) GreenPremium(year, month int, threshold float64, prices []models.PricePoint, fuel []models.FuelMixPoint) *models.GreenPremium {
	renewableBySlot := make(map[time.Time]float64, len(fuel))
	for _, fm := range fuel {
		renewableBySlot[halfHour(fm.Datetime)] = deref(fm.Wind) + deref(fm.Solar) + deref(fm.Hydro) + deref(fm.Biomass)
	}

	var green, brown []float64
	for _, p := range prices {
		share, ok := renewableBySlot[p.Timestamp()]
		if !ok {
			continue
		}
		if share > threshold {
			green = append(green, p.Price)
		} else {
			brown = append(brown, p.Price)
		}
	}
	if len(green) == 0 && len(brown) == 0 {
		return nil
	}

	var greenAvg, brownAvg float64
	if len(green) > 0 {
		greenAvg = mean(green)
	}
	if len(brown) > 0 {
		brownAvg = mean(brown)
	}
	premium := greenAvg - brownAvg
	var premiumPct float64
	if brownAvg != 0 {
		premiumPct = premium / brownAvg * 100
	}

	from, to := util.MonthBounds(year, month)
	return &models.GreenPremium{
		Period:             fmt.Sprintf("%04d-%02d", year, month),
		StartDate:          from,
		EndDate:            to,
		GreenPriceAvg:      round2(greenAvg),
		GreenPeriods:       len(green),
		BrownPriceAvg:      round2(brownAvg),
		BrownPeriods:       len(brown),
		GreenPremium:       round2(premium),
		GreenPremiumPct:    round1(premiumPct),
		RenewableThreshold: threshold,
	}
}

func deref(v *float64) float64 {
	if v != nil {
		return *v
	}
	return 0
}
