package usecase

import (
	"context"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	"github.com/energy-oracle/eo-api/pkg/cache"
	apphttp "github.com/energy-oracle/eo-api/pkg/http"
	"github.com/energy-oracle/eo-api/pkg/util"
)

// CarbonUseCase serves the carbon intensity and fuel mix read endpoints.
type CarbonUseCase struct {
	store   domrepo.CarbonStore
	cache   cache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
}

func NewCarbonUseCase(store domrepo.CarbonStore, c cache.Service, ttl time.Duration, m domrepo.Metrics) *CarbonUseCase {
	return &CarbonUseCase{store: store, cache: c, ttl: ttl, metrics: m}
}

// CurrentIntensity returns the most recent intensity reading.
func (uc *CarbonUseCase) CurrentIntensity(ctx context.Context) (*models.CarbonResponse, error) {
	key := cache.Key("carbon:intensity:current")
	return fetchCached(ctx, uc.cache, uc.metrics, "carbon_current", key, uc.ttl, func() (*models.CarbonResponse, error) {
		points, err := uc.store.LatestIntensity(ctx)
		if err != nil {
			return nil, upstream("querying current carbon intensity", err)
		}
		return models.NewCarbonResponse(points), nil
	})
}

// IntensityByDate returns one day of readings in time order.
func (uc *CarbonUseCase) IntensityByDate(ctx context.Context, dateStr string) (*models.CarbonResponse, error) {
	day, ok := util.ParseISODate(dateStr)
	if !ok {
		return nil, apphttp.FieldError("date", "must be a YYYY-MM-DD date")
	}

	key := cache.Key("carbon:intensity:date", dateStr)
	return fetchCached(ctx, uc.cache, uc.metrics, "carbon_by_date", key, uc.ttl, func() (*models.CarbonResponse, error) {
		points, err := uc.store.IntensityByDate(ctx, day)
		if err != nil {
			return nil, upstream("querying carbon intensity by date", err)
		}
		return models.NewCarbonResponse(points), nil
	})
}

// IntensityRange returns an inclusive date window of readings.
func (uc *CarbonUseCase) IntensityRange(ctx context.Context, req models.DateRangeRequest) (*models.CarbonResponse, error) {
	from, to, appErr := parseWindow(req.FromDate, req.ToDate, 0)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("carbon:intensity:range", req.FromDate, req.ToDate)
	return fetchCached(ctx, uc.cache, uc.metrics, "carbon_range", key, uc.ttl, func() (*models.CarbonResponse, error) {
		points, err := uc.store.IntensityRange(ctx, from, to)
		if err != nil {
			return nil, upstream("querying carbon intensity range", err)
		}
		return models.NewCarbonResponse(points), nil
	})
}

// CurrentFuelMix returns the most recent generation mix reading.
func (uc *CarbonUseCase) CurrentFuelMix(ctx context.Context) (*models.FuelMixResponse, error) {
	key := cache.Key("carbon:fuelmix:current")
	return fetchCached(ctx, uc.cache, uc.metrics, "fuelmix_current", key, uc.ttl, func() (*models.FuelMixResponse, error) {
		points, err := uc.store.LatestFuelMix(ctx)
		if err != nil {
			return nil, upstream("querying current fuel mix", err)
		}
		return models.NewFuelMixResponse(points), nil
	})
}

// FuelMixByDate returns one day of generation mix readings.
func (uc *CarbonUseCase) FuelMixByDate(ctx context.Context, dateStr string) (*models.FuelMixResponse, error) {
	day, ok := util.ParseISODate(dateStr)
	if !ok {
		return nil, apphttp.FieldError("date", "must be a YYYY-MM-DD date")
	}

	key := cache.Key("carbon:fuelmix:date", dateStr)
	return fetchCached(ctx, uc.cache, uc.metrics, "fuelmix_by_date", key, uc.ttl, func() (*models.FuelMixResponse, error) {
		points, err := uc.store.FuelMixByDate(ctx, day)
		if err != nil {
			return nil, upstream("querying fuel mix by date", err)
		}
		return models.NewFuelMixResponse(points), nil
	})
}
