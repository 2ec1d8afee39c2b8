package models

import "time"

// PriceType identifies the price index a record belongs to.
type PriceType string

const (
	PriceTypeSystem   PriceType = "system"
	PriceTypeDayAhead PriceType = "dayahead"
)

// ParsePriceType validates a price type string.
func ParsePriceType(s string) (PriceType, bool) {
	switch PriceType(s) {
	case PriceTypeSystem, PriceTypeDayAhead:
		return PriceType(s), true
	}
	return "", false
}

// PricePoint is one half-hourly settlement period price. Records are
// immutable once ingested; ownership lives with the store.
type PricePoint struct {
	SettlementDate   time.Time `json:"settlement_date"`
	SettlementPeriod int       `json:"settlement_period"`
	Price            float64   `json:"price"`
	SystemSellPrice  *float64  `json:"system_sell_price,omitempty"`
	SystemBuyPrice   *float64  `json:"system_buy_price,omitempty"`
	PriceType        PriceType `json:"price_type"`
	DataSource       string    `json:"data_source,omitempty"`
}

// Timestamp maps (settlement_date, settlement_period) to the period start
// instant in UTC: period 1 begins at midnight, each period is 30 minutes.
func (p PricePoint) Timestamp() time.Time {
	day := time.Date(p.SettlementDate.Year(), p.SettlementDate.Month(), p.SettlementDate.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(p.SettlementPeriod-1) * 30 * time.Minute)
}

// PriceResponse wraps a list of price points.
type PriceResponse struct {
	Data  []PricePoint `json:"data"`
	Count int          `json:"count"`
	Unit  string       `json:"unit"`
}

// NewPriceResponse builds the standard price list envelope.
func NewPriceResponse(points []PricePoint) *PriceResponse {
	if points == nil {
		points = []PricePoint{}
	}
	return &PriceResponse{Data: points, Count: len(points), Unit: "GBP/MWh"}
}

// MonthlyAverage is the monthly mean used as the PPA reference price.
type MonthlyAverage struct {
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	AveragePrice      float64   `json:"average_price"`
	MinPrice          float64   `json:"min_price"`
	MaxPrice          float64   `json:"max_price"`
	SettlementPeriods int       `json:"settlement_periods"`
	Unit              string    `json:"unit"`
	PriceType         PriceType `json:"price_type"`
}

// PriceTick is the message the ingestion pipeline publishes when a new
// settlement period lands in the store; it is fanned out on /stream.
type PriceTick struct {
	PriceType        PriceType `json:"price_type"`
	SettlementDate   string    `json:"settlement_date"`
	SettlementPeriod int       `json:"settlement_period"`
	Price            float64   `json:"price"`
}
