package repository

import (
	"context"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
)

// PriceStore issues range queries against the price tables. All date bounds
// are inclusive UTC calendar days; rows come back ordered by date, period.
type PriceStore interface {
	Latest(ctx context.Context, pt models.PriceType, limit int) ([]models.PricePoint, error)
	ByDate(ctx context.Context, pt models.PriceType, day time.Time) ([]models.PricePoint, error)
	Range(ctx context.Context, pt models.PriceType, from, to time.Time) ([]models.PricePoint, error)
	Health(ctx context.Context) error
}

// CarbonStore issues range queries against the carbon intensity and fuel
// mix tables, ordered by timestamp ascending (latest queries descending).
type CarbonStore interface {
	LatestIntensity(ctx context.Context) ([]models.CarbonPoint, error)
	IntensityByDate(ctx context.Context, day time.Time) ([]models.CarbonPoint, error)
	IntensityRange(ctx context.Context, from, to time.Time) ([]models.CarbonPoint, error)
	LatestFuelMix(ctx context.Context) ([]models.FuelMixPoint, error)
	FuelMixByDate(ctx context.Context, day time.Time) ([]models.FuelMixPoint, error)
	FuelMixRange(ctx context.Context, from, to time.Time) ([]models.FuelMixPoint, error)
}

// Broadcaster pushes price ticks to all currently connected stream clients.
type Broadcaster interface {
	Broadcast(tick *models.PriceTick)
	Clients() int
}

type Metrics interface {
	RecordQuery(store, op string, seconds float64, rows int)
	RecordError(kind string)
	RecordCacheHit(endpoint string, hit bool)
	RecordBroadcast(clients int)
	SetStreamClients(n int)
}
