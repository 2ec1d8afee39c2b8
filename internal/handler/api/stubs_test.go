package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/energy-oracle/eo-api/internal/domain/models"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	xlogger "github.com/energy-oracle/eo-api/pkg/logger"
)

var errStub = errors.New("store down")

type stubPriceStore struct {
	points []models.PricePoint
	err    error
}

func (s *stubPriceStore) Latest(_ context.Context, pt models.PriceType, limit int) ([]models.PricePoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.points) {
		limit = len(s.points)
	}
	return s.points[:limit], nil
}

func (s *stubPriceStore) ByDate(_ context.Context, pt models.PriceType, day time.Time) ([]models.PricePoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.PricePoint
	for _, p := range s.points {
		if p.SettlementDate.Equal(day) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPriceStore) Range(_ context.Context, pt models.PriceType, from, to time.Time) ([]models.PricePoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.PricePoint
	for _, p := range s.points {
		if !p.SettlementDate.Before(from) && !p.SettlementDate.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPriceStore) Health(context.Context) error { return s.err }

type stubCarbonStore struct {
	carbon []models.CarbonPoint
	fuel   []models.FuelMixPoint
	err    error
}

func (s *stubCarbonStore) LatestIntensity(context.Context) ([]models.CarbonPoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.carbon) == 0 {
		return nil, nil
	}
	return s.carbon[len(s.carbon)-1:], nil
}

func (s *stubCarbonStore) IntensityByDate(_ context.Context, day time.Time) ([]models.CarbonPoint, error) {
	return s.IntensityRange(nil, day, day)
}

func (s *stubCarbonStore) IntensityRange(_ context.Context, from, to time.Time) ([]models.CarbonPoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	end := to.AddDate(0, 0, 1)
	var out []models.CarbonPoint
	for _, p := range s.carbon {
		if !p.Datetime.Before(from) && p.Datetime.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCarbonStore) LatestFuelMix(context.Context) ([]models.FuelMixPoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.fuel) == 0 {
		return nil, nil
	}
	return s.fuel[len(s.fuel)-1:], nil
}

func (s *stubCarbonStore) FuelMixByDate(_ context.Context, day time.Time) ([]models.FuelMixPoint, error) {
	return s.FuelMixRange(nil, day, day)
}

func (s *stubCarbonStore) FuelMixRange(_ context.Context, from, to time.Time) ([]models.FuelMixPoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	end := to.AddDate(0, 0, 1)
	var out []models.FuelMixPoint
	for _, p := range s.fuel {
		if !p.Datetime.Before(from) && p.Datetime.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func testLogger() *xlogger.Logger {
	l, err := xlogger.New(&xlogger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	return l
}

// doRequest runs one request through a fresh echo instance.
func doRequest(h xhttp.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(rec *httptest.ResponseRecorder, dest interface{}) error {
	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, dest)
}

// priceDays builds n full days of flat prices starting at start.
func priceDays(start time.Time, n int, price float64) []models.PricePoint {
	var out []models.PricePoint
	for d := 0; d < n; d++ {
		day := start.AddDate(0, 0, d)
		for period := 1; period <= 48; period++ {
			out = append(out, models.PricePoint{
				SettlementDate:   day,
				SettlementPeriod: period,
				Price:            price,
				PriceType:        models.PriceTypeSystem,
			})
		}
	}
	return out
}
