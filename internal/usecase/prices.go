package usecase

import (
	"context"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	"github.com/energy-oracle/eo-api/internal/settlement"
	"github.com/energy-oracle/eo-api/pkg/cache"
	apphttp "github.com/energy-oracle/eo-api/pkg/http"
	"github.com/energy-oracle/eo-api/pkg/util"
)

// price range queries are capped at one calendar month of half-hours
const maxPriceRangeDays = 31

// PricesUseCase serves the raw price read endpoints.
type PricesUseCase struct {
	store   domrepo.PriceStore
	cache   cache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
}

func NewPricesUseCase(store domrepo.PriceStore, c cache.Service, ttl time.Duration, m domrepo.Metrics) *PricesUseCase {
	return &PricesUseCase{store: store, cache: c, ttl: ttl, metrics: m}
}

// Latest returns the most recent settlement periods, newest first.
func (uc *PricesUseCase) Latest(ctx context.Context, priceType string, limit int) (*models.PriceResponse, error) {
	pt, appErr := parsePriceType(priceType)
	if appErr != nil {
		return nil, appErr
	}
	if limit <= 0 {
		limit = 48
	}
	if limit > 500 {
		limit = 500
	}

	key := cache.Key("prices:latest", pt, limit)
	return fetchCached(ctx, uc.cache, uc.metrics, "prices_latest", key, uc.ttl, func() (*models.PriceResponse, error) {
		points, err := uc.store.Latest(ctx, pt, limit)
		if err != nil {
			return nil, upstream("querying latest prices", err)
		}
		return models.NewPriceResponse(points), nil
	})
}

// ByDate returns all periods of one calendar day in period order.
func (uc *PricesUseCase) ByDate(ctx context.Context, priceType, dateStr string) (*models.PriceResponse, error) {
	pt, appErr := parsePriceType(priceType)
	if appErr != nil {
		return nil, appErr
	}
	day, ok := util.ParseISODate(dateStr)
	if !ok {
		return nil, apphttp.FieldError("date", "must be a YYYY-MM-DD date")
	}

	key := cache.Key("prices:date", pt, dateStr)
	return fetchCached(ctx, uc.cache, uc.metrics, "prices_by_date", key, uc.ttl, func() (*models.PriceResponse, error) {
		points, err := uc.store.ByDate(ctx, pt, day)
		if err != nil {
			return nil, upstream("querying prices by date", err)
		}
		return models.NewPriceResponse(points), nil
	})
}

// Range returns an inclusive date window ordered by date then period.
func (uc *PricesUseCase) Range(ctx context.Context, req models.PriceRangeRequest) (*models.PriceResponse, error) {
	pt, appErr := parsePriceType(req.PriceType)
	if appErr != nil {
		return nil, appErr
	}
	from, to, appErr := parseWindow(req.FromDate, req.ToDate, maxPriceRangeDays)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("prices:range", pt, req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "prices_range", key, uc.ttl, func() (*models.PriceResponse, error) {
		points, err := uc.store.Range(ctx, pt, from, to)
		if err != nil {
			return nil, upstream("querying price range", err)
		}
		return models.NewPriceResponse(points), nil
	})
}

// MonthlyAvg returns the PPA reference price for one month.
func (uc *PricesUseCase) MonthlyAvg(ctx context.Context, priceType string, year, month int) (*models.MonthlyAverage, error) {
	pt, appErr := parsePriceType(priceType)
	if appErr != nil {
		return nil, appErr
	}
	if month < 1 || month > 12 {
		return nil, apphttp.FieldError("month", "must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, apphttp.FieldError("year", "must be between 2000 and 2100")
	}

	key := cache.Key("prices:monthly", pt, year, month)
	return fetchCached(ctx, uc.cache, uc.metrics, "prices_monthly_avg", key, uc.ttl, func() (*models.MonthlyAverage, error) {
		from, to := util.MonthBounds(year, month)
		points, err := uc.store.Range(ctx, pt, from, to)
		if err != nil {
			return nil, upstream("querying monthly prices", err)
		}
		avg := settlement.MonthlyAverage(points, year, month, pt)
		if avg == nil {
			return nil, apphttp.DataUnavailableErrorf("no %s price data for %04d-%02d", pt, year, month)
		}
		return avg, nil
	})
}
