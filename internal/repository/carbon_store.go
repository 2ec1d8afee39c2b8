package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	pkgch "github.com/energy-oracle/eo-api/pkg/clickhouse"
	applogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// CHCarbonStore implements CarbonStore backed by ClickHouse.
type CHCarbonStore struct {
	db      *sql.DB
	l       *applogger.Logger
	metrics domrepo.Metrics
}

func NewCHCarbonStore(ch *pkgch.Client) *CHCarbonStore {
	return &CHCarbonStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHCarbonStore) SetLogger(l *applogger.Logger) { s.l = l }

// SetMetrics injects a metrics recorder.
func (s *CHCarbonStore) SetMetrics(m domrepo.Metrics) { s.metrics = m }

const intensityColumns = "datetime, intensity, intensity_index, data_source"

func (s *CHCarbonStore) LatestIntensity(ctx context.Context) ([]models.CarbonPoint, error) {
	const q = `
        SELECT ` + intensityColumns + `
        FROM carbon_intensity
        ORDER BY datetime DESC
        LIMIT 1
    `
	return s.queryIntensity(ctx, "latest", q)
}

func (s *CHCarbonStore) IntensityByDate(ctx context.Context, day time.Time) ([]models.CarbonPoint, error) {
	const q = `
        SELECT ` + intensityColumns + `
        FROM carbon_intensity
        WHERE datetime >= ? AND datetime < ?
        ORDER BY datetime ASC
    `
	return s.queryIntensity(ctx, "by_date", q, day, day.AddDate(0, 0, 1))
}

func (s *CHCarbonStore) IntensityRange(ctx context.Context, from, to time.Time) ([]models.CarbonPoint, error) {
	const q = `
        SELECT ` + intensityColumns + `
        FROM carbon_intensity
        WHERE datetime >= ? AND datetime < ?
        ORDER BY datetime ASC
    `
	// to is an inclusive calendar day, so the window ends at the next midnight
	return s.queryIntensity(ctx, "range", q, from, to.AddDate(0, 0, 1))
}

const fuelMixColumns = "datetime, biomass, coal, gas, hydro, imports, nuclear, other, solar, wind, data_source"

func (s *CHCarbonStore) LatestFuelMix(ctx context.Context) ([]models.FuelMixPoint, error) {
	const q = `
        SELECT ` + fuelMixColumns + `
        FROM fuel_mix
        ORDER BY datetime DESC
        LIMIT 1
    `
	return s.queryFuelMix(ctx, "latest", q)
}

func (s *CHCarbonStore) FuelMixByDate(ctx context.Context, day time.Time) ([]models.FuelMixPoint, error) {
	const q = `
        SELECT ` + fuelMixColumns + `
        FROM fuel_mix
        WHERE datetime >= ? AND datetime < ?
        ORDER BY datetime ASC
    `
	return s.queryFuelMix(ctx, "by_date", q, day, day.AddDate(0, 0, 1))
}

func (s *CHCarbonStore) FuelMixRange(ctx context.Context, from, to time.Time) ([]models.FuelMixPoint, error) {
	const q = `
        SELECT ` + fuelMixColumns + `
        FROM fuel_mix
        WHERE datetime >= ? AND datetime < ?
        ORDER BY datetime ASC
    `
	return s.queryFuelMix(ctx, "range", q, from, to.AddDate(0, 0, 1))
}

func (s *CHCarbonStore) queryIntensity(ctx context.Context, op, q string, args ...interface{}) ([]models.CarbonPoint, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.observe("carbon", op, start, 0, err)
		return nil, fmt.Errorf("query carbon intensity: %w", err)
	}
	defer rows.Close()

	out := make([]models.CarbonPoint, 0, 48)
	for rows.Next() {
		var p models.CarbonPoint
		var index, source sql.NullString
		if err := rows.Scan(&p.Datetime, &p.Intensity, &index, &source); err != nil {
			s.observe("carbon", op, start, len(out), err)
			return nil, fmt.Errorf("scan carbon intensity: %w", err)
		}
		p.IntensityIndex = index.String
		p.DataSource = source.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		s.observe("carbon", op, start, len(out), err)
		return nil, fmt.Errorf("rows: %w", err)
	}

	s.observe("carbon", op, start, len(out), nil)
	return out, nil
}

func (s *CHCarbonStore) queryFuelMix(ctx context.Context, op, q string, args ...interface{}) ([]models.FuelMixPoint, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.observe("fuel_mix", op, start, 0, err)
		return nil, fmt.Errorf("query fuel mix: %w", err)
	}
	defer rows.Close()

	out := make([]models.FuelMixPoint, 0, 48)
	for rows.Next() {
		var p models.FuelMixPoint
		var source sql.NullString
		if err := rows.Scan(&p.Datetime, &p.Biomass, &p.Coal, &p.Gas, &p.Hydro, &p.Imports,
			&p.Nuclear, &p.Other, &p.Solar, &p.Wind, &source); err != nil {
			s.observe("fuel_mix", op, start, len(out), err)
			return nil, fmt.Errorf("scan fuel mix: %w", err)
		}
		p.DataSource = source.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		s.observe("fuel_mix", op, start, len(out), err)
		return nil, fmt.Errorf("rows: %w", err)
	}

	s.observe("fuel_mix", op, start, len(out), nil)
	return out, nil
}

func (s *CHCarbonStore) observe(store, op string, start time.Time, rows int, err error) {
	d := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordQuery(store, op, d.Seconds(), rows)
		if err != nil {
			s.metrics.RecordError("store_query")
		}
	}
	if s.l == nil {
		return
	}
	if err != nil {
		s.l.Error("clickhouse carbon query error",
			applogger.String("store", store),
			applogger.String("op", op),
			applogger.Duration("duration_ms", d),
			applogger.Error(err),
		)
		return
	}
	s.l.Debug("clickhouse carbon query ok",
		applogger.String("store", store),
		applogger.String("op", op),
		applogger.Int("rows", rows),
		applogger.Duration("duration_ms", d),
	)
}
