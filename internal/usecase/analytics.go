package usecase

import (
	"context"
	"time"

	"github.com/energy-oracle/eo-api/internal/analytics"
	"github.com/energy-oracle/eo-api/internal/domain/models"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	"github.com/energy-oracle/eo-api/pkg/cache"
	apphttp "github.com/energy-oracle/eo-api/pkg/http"
	"github.com/energy-oracle/eo-api/pkg/util"
)

// Range caps per aggregate, in inclusive calendar days. Wider aggregates
// get wider windows; the joins stay month-sized.
const (
	maxDailyRangeDays    = 90
	maxWeeklyRangeDays   = 365
	maxPeakRangeDays     = 31
	maxStatsRangeDays    = 365
	maxWeightedRangeDays = 31
	maxSummaryRangeDays  = 90
)

// AnalyticsUseCase fetches windows from the stores and hands them to the
// pure analytics engine.
type AnalyticsUseCase struct {
	prices  domrepo.PriceStore
	carbon  domrepo.CarbonStore
	engine  *analytics.Engine
	cache   cache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
}

func NewAnalyticsUseCase(prices domrepo.PriceStore, carbon domrepo.CarbonStore, engine *analytics.Engine,
	c cache.Service, ttl time.Duration, m domrepo.Metrics) *AnalyticsUseCase {
	return &AnalyticsUseCase{prices: prices, carbon: carbon, engine: engine, cache: c, ttl: ttl, metrics: m}
}

func (uc *AnalyticsUseCase) priceWindow(ctx context.Context, req models.PriceRangeRequest, maxDays int) (models.PriceType, []models.PricePoint, time.Time, time.Time, error) {
	pt, appErr := parsePriceType(req.PriceType)
	if appErr != nil {
		return "", nil, time.Time{}, time.Time{}, appErr
	}
	from, to, appErr := parseWindow(req.FromDate, req.ToDate, maxDays)
	if appErr != nil {
		return "", nil, time.Time{}, time.Time{}, appErr
	}
	points, err := uc.prices.Range(ctx, pt, from, to)
	if err != nil {
		return "", nil, time.Time{}, time.Time{}, upstream("querying price window", err)
	}
	return pt, points, from, to, nil
}

// DailyAverages buckets a window by calendar day.
func (uc *AnalyticsUseCase) DailyAverages(ctx context.Context, req models.PriceRangeRequest) (*models.DailyAverageResponse, error) {
	key := cache.Key("analytics:daily", req.PriceType, req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_daily", key, uc.ttl, func() (*models.DailyAverageResponse, error) {
		pt, points, _, _, err := uc.priceWindow(ctx, req, maxDailyRangeDays)
		if err != nil {
			return nil, err
		}
		return uc.engine.DailyAverages(points, pt), nil
	})
}

// WeeklyAverages buckets a window by ISO week.
func (uc *AnalyticsUseCase) WeeklyAverages(ctx context.Context, req models.PriceRangeRequest) (*models.WeeklyAverageResponse, error) {
	key := cache.Key("analytics:weekly", req.PriceType, req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_weekly", key, uc.ttl, func() (*models.WeeklyAverageResponse, error) {
		pt, points, _, _, err := uc.priceWindow(ctx, req, maxWeeklyRangeDays)
		if err != nil {
			return nil, err
		}
		return uc.engine.WeeklyAverages(points, pt), nil
	})
}

// PeakOffPeak splits a window into peak and off-peak classes.
func (uc *AnalyticsUseCase) PeakOffPeak(ctx context.Context, req models.PriceRangeRequest) (*models.PeakOffPeakBreakdown, error) {
	key := cache.Key("analytics:peak", req.PriceType, req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_peak_offpeak", key, uc.ttl, func() (*models.PeakOffPeakBreakdown, error) {
		_, points, from, to, err := uc.priceWindow(ctx, req, maxPeakRangeDays)
		if err != nil {
			return nil, err
		}
		return uc.engine.PeakOffPeak(points, from, to), nil
	})
}

// Statistics computes the statistical summary of a window.
func (uc *AnalyticsUseCase) Statistics(ctx context.Context, req models.PriceRangeRequest) (*models.PriceStatistics, error) {
	key := cache.Key("analytics:stats", req.PriceType, req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_statistics", key, uc.ttl, func() (*models.PriceStatistics, error) {
		pt, points, from, to, err := uc.priceWindow(ctx, req, maxStatsRangeDays)
		if err != nil {
			return nil, err
		}
		return uc.engine.Statistics(points, pt, from, to), nil
	})
}

// CarbonWeightedPrice joins system prices with carbon intensity.
func (uc *AnalyticsUseCase) CarbonWeightedPrice(ctx context.Context, req models.DateRangeRequest) (*models.CarbonWeightedPrice, error) {
	key := cache.Key("analytics:weighted", req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_weighted_price", key, uc.ttl, func() (*models.CarbonWeightedPrice, error) {
		from, to, appErr := parseWindow(req.FromDate, req.ToDate, maxWeightedRangeDays)
		if appErr != nil {
			return nil, appErr
		}
		prices, err := uc.prices.Range(ctx, models.PriceTypeSystem, from, to)
		if err != nil {
			return nil, upstream("querying price window", err)
		}
		carbon, err := uc.carbon.IntensityRange(ctx, from, to)
		if err != nil {
			return nil, upstream("querying carbon window", err)
		}
		return uc.engine.CarbonWeightedPrice(prices, carbon, from, to), nil
	})
}

// DailyCarbonSummaries aggregates carbon intensity per day with fuel mix
// context.
func (uc *AnalyticsUseCase) DailyCarbonSummaries(ctx context.Context, req models.DateRangeRequest) (*models.DailyCarbonSummaryResponse, error) {
	key := cache.Key("analytics:carbon_summary", req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_carbon_summary", key, uc.ttl, func() (*models.DailyCarbonSummaryResponse, error) {
		from, to, appErr := parseWindow(req.FromDate, req.ToDate, maxSummaryRangeDays)
		if appErr != nil {
			return nil, appErr
		}
		carbon, err := uc.carbon.IntensityRange(ctx, from, to)
		if err != nil {
			return nil, upstream("querying carbon window", err)
		}
		fuel, err := uc.carbon.FuelMixRange(ctx, from, to)
		if err != nil {
			return nil, upstream("querying fuel mix window", err)
		}
		return uc.engine.DailyCarbonSummaries(carbon, fuel), nil
	})
}

// RenewableIndex summarizes a month's renewable share.
func (uc *AnalyticsUseCase) RenewableIndex(ctx context.Context, year, month int) (*models.RenewableIndex, error) {
	if month < 1 || month > 12 {
		return nil, apphttp.FieldError("month", "must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, apphttp.FieldError("year", "must be between 2000 and 2100")
	}

	key := cache.Key("analytics:renewable", year, month)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_renewable_index", key, uc.ttl, func() (*models.RenewableIndex, error) {
		from, to := util.MonthBounds(year, month)
		current, err := uc.carbon.FuelMixRange(ctx, from, to)
		if err != nil {
			return nil, upstream("querying fuel mix window", err)
		}

		prevYear, prevMonth := year, month-1
		if prevMonth == 0 {
			prevYear, prevMonth = year-1, 12
		}
		prevFrom, prevTo := util.MonthBounds(prevYear, prevMonth)
		previous, err := uc.carbon.FuelMixRange(ctx, prevFrom, prevTo)
		if err != nil {
			// the month-on-month delta is optional; the index is not
			previous = nil
		}

		idx := uc.engine.RenewableIndex(year, month, current, previous)
		if idx == nil {
			return nil, apphttp.DataUnavailableErrorf("no fuel mix data for %04d-%02d", year, month)
		}
		return idx, nil
	})
}

// GreenPremium splits a month's prices by renewable share threshold.
func (uc *AnalyticsUseCase) GreenPremium(ctx context.Context, year, month int, threshold float64) (*models.GreenPremium, error) {
	if month < 1 || month > 12 {
		return nil, apphttp.FieldError("month", "must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, apphttp.FieldError("year", "must be between 2000 and 2100")
	}
	if threshold < 0 || threshold > 100 {
		return nil, apphttp.FieldError("renewable_threshold", "must be between 0 and 100")
	}

	key := cache.Key("analytics:green_premium", year, month, threshold)
	return fetchCached(ctx, uc.cache, uc.metrics, "analytics_green_premium", key, uc.ttl, func() (*models.GreenPremium, error) {
		from, to := util.MonthBounds(year, month)
		prices, err := uc.prices.Range(ctx, models.PriceTypeSystem, from, to)
		if err != nil {
			return nil, upstream("querying price window", err)
		}
		if len(prices) == 0 {
			return nil, apphttp.DataUnavailableErrorf("no price data for %04d-%02d", year, month)
		}
		fuel, err := uc.carbon.FuelMixRange(ctx, from, to)
		if err != nil {
			return nil, upstream("querying fuel mix window", err)
		}

		gp := uc.engine.GreenPremium(year, month, threshold, prices, fuel)
		if gp == nil {
			return nil, apphttp.DataUnavailableErrorf("no matched price/fuel data for %04d-%02d", year, month)
		}
		return gp, nil
	})
}
