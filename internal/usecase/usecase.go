// Package usecase holds the request-scoped business logic between the
// HTTP handlers and the stores: window validation, cache read-through,
// and the error taxonomy mapping.
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

func parsePriceType(s string) (models.PriceType, *apphttp.AppError) {
	if s == "" {
		return models.PriceTypeSystem, nil
	}
	pt, ok := models.ParsePriceType(s)
	if !ok {
		return "", apphttp.FieldError("price_type", "must be one of: system, dayahead")
	}
	return pt, nil
}

// parseWindow validates an inclusive calendar-day window. maxDays <= 0
// means uncapped.
func parseWindow(fromStr, toStr string, maxDays int) (time.Time, time.Time, *apphttp.AppError) {
	from, ok := util.ParseISODate(fromStr)
	if !ok {
		return time.Time{}, time.Time{}, apphttp.FieldError("from_date", "must be a YYYY-MM-DD date")
	}
	to, ok := util.ParseISODate(toStr)
	if !ok {
		return time.Time{}, time.Time{}, apphttp.FieldError("to_date", "must be a YYYY-MM-DD date")
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, apphttp.BadRequestError("from_date must not be after to_date")
	}
	if maxDays > 0 {
		if days := util.DaysInclusive(from, to); days > maxDays {
			return time.Time{}, time.Time{}, apphttp.BadRequestErrorf("date range too wide: %d days, maximum %d", days, maxDays).
				WithParam("max_days", maxDays)
		}
	}
	return from, to, nil
}

// fetchCached reads through the response cache. The cache is an
// accelerator, never load-bearing: any cache failure falls back to fill,
// and a fill result is stored best-effort.
func fetchCached[T any](ctx context.Context, c cache.Service, metrics domrepo.Metrics,
	endpoint, key string, ttl time.Duration, fill func() (*T, error)) (*T, error) {

	if c == nil {
		return fill()
	}

	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		if metrics != nil {
			metrics.RecordCacheHit(endpoint, true)
		}
		return &cached, nil
	}
	if metrics != nil {
		metrics.RecordCacheHit(endpoint, false)
	}

	out, err := fill()
	if err != nil {
		return nil, err
	}
	_ = c.Set(ctx, key, out, ttl)
	return out, nil
}

func upstream(msg string, err error) *apphttp.AppError {
	return apphttp.UpstreamError(msg, err)
}
