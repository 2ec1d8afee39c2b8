package models

// Requests for HTTP endpoints. Defined in domain for consistency and reuse.

type LatestPricesRequest struct {
	Limit int `query:"limit" json:"limit" default:"48" validate:"gte=1,lte=500"`
}

// DateRangeRequest covers every from/to windowed endpoint. Dates are
// inclusive ISO-8601 calendar days.
type DateRangeRequest struct {
	FromDate string `query:"from_date" json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `query:"to_date" json:"to_date" validate:"required,datetime=2006-01-02"`
}

type PriceRangeRequest struct {
	DateRangeRequest
	PriceType string `query:"price_type" json:"price_type" default:"system" validate:"oneof=system dayahead"`
}

type SettlementRequest struct {
	Year           int      `json:"year" validate:"required,gte=2000,lte=2100"`
	Month          int      `json:"month" validate:"required,gte=1,lte=12"`
	DiscountPerMWh float64  `json:"discount_per_mwh"`
	VolumeMWh      *float64 `json:"volume_mwh" validate:"omitempty,gt=0"`
	PriceType      string   `json:"price_type" default:"system" validate:"oneof=system dayahead"`
}

type GreenPremiumRequest struct {
	RenewableThreshold float64 `query:"renewable_threshold" json:"renewable_threshold" default:"50" validate:"gte=0,lte=100"`
}
