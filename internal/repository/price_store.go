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

// CHPriceStore implements PriceStore backed by ClickHouse. The ingestion
// collaborators own the tables; this side only reads.
type CHPriceStore struct {
	db      *sql.DB
	l       *applogger.Logger
	metrics domrepo.Metrics
}

func NewCHPriceStore(ch *pkgch.Client) *CHPriceStore {
	return &CHPriceStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHPriceStore) SetLogger(l *applogger.Logger) { s.l = l }

// SetMetrics injects a metrics recorder.
func (s *CHPriceStore) SetMetrics(m domrepo.Metrics) { s.metrics = m }

func tableForPriceType(pt models.PriceType) (string, error) {
	switch pt {
	case models.PriceTypeSystem:
		return "system_prices", nil
	case models.PriceTypeDayAhead:
		return "day_ahead_prices", nil
	default:
		return "", fmt.Errorf("unknown price type: %s", pt)
	}
}

// Only the balancing market carries sell/buy legs; day-ahead rows expose
// the clearing price alone.
func columnsForPriceType(pt models.PriceType) string {
	if pt == models.PriceTypeSystem {
		return "settlement_date, settlement_period, price, system_sell_price, system_buy_price, data_source"
	}
	return "settlement_date, settlement_period, price, NULL AS system_sell_price, NULL AS system_buy_price, data_source"
}

func (s *CHPriceStore) Latest(ctx context.Context, pt models.PriceType, limit int) ([]models.PricePoint, error) {
	table, err := tableForPriceType(pt)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
        SELECT %s
        FROM %s
        ORDER BY settlement_date DESC, settlement_period DESC
        LIMIT ?
    `, columnsForPriceType(pt), table)
	return s.queryPrices(ctx, pt, "latest", q, limit)
}

func (s *CHPriceStore) ByDate(ctx context.Context, pt models.PriceType, day time.Time) ([]models.PricePoint, error) {
	table, err := tableForPriceType(pt)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
        SELECT %s
        FROM %s
        WHERE settlement_date = ?
        ORDER BY settlement_period ASC
    `, columnsForPriceType(pt), table)
	return s.queryPrices(ctx, pt, "by_date", q, day)
}

func (s *CHPriceStore) Range(ctx context.Context, pt models.PriceType, from, to time.Time) ([]models.PricePoint, error) {
	table, err := tableForPriceType(pt)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
        SELECT %s
        FROM %s
        WHERE settlement_date >= ? AND settlement_date <= ?
        ORDER BY settlement_date ASC, settlement_period ASC
    `, columnsForPriceType(pt), table)
	return s.queryPrices(ctx, pt, "range", q, from, to)
}

// Health verifies the store answers queries at all.
func (s *CHPriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHPriceStore) queryPrices(ctx context.Context, pt models.PriceType, op, q string, args ...interface{}) ([]models.PricePoint, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.observe(op, start, 0, err)
		return nil, fmt.Errorf("query %s prices: %w", pt, err)
	}
	defer rows.Close()

	out := make([]models.PricePoint, 0, 48)
	for rows.Next() {
		p := models.PricePoint{PriceType: pt}
		var source sql.NullString
		if err := rows.Scan(&p.SettlementDate, &p.SettlementPeriod, &p.Price, &p.SystemSellPrice, &p.SystemBuyPrice, &source); err != nil {
			s.observe(op, start, len(out), err)
			return nil, fmt.Errorf("scan %s price: %w", pt, err)
		}
		p.DataSource = source.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		s.observe(op, start, len(out), err)
		return nil, fmt.Errorf("rows: %w", err)
	}

	s.observe(op, start, len(out), nil)
	return out, nil
}

func (s *CHPriceStore) observe(op string, start time.Time, rows int, err error) {
	d := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordQuery("prices", op, d.Seconds(), rows)
		if err != nil {
			s.metrics.RecordError("store_query")
		}
	}
	if s.l == nil {
		return
	}
	if err != nil {
		s.l.Error("clickhouse price query error",
			applogger.String("op", op),
			applogger.Duration("duration_ms", d),
			applogger.Error(err),
		)
		return
	}
	s.l.Debug("clickhouse price query ok",
		applogger.String("op", op),
		applogger.Int("rows", rows),
		applogger.Duration("duration_ms", d),
	)
}
