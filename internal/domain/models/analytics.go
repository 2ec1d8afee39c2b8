package models

import "time"

// DailyAverage is the per-calendar-day price aggregate.
type DailyAverage struct {
	Date              time.Time `json:"date"`
	AveragePrice      float64   `json:"average_price"`
	MinPrice          float64   `json:"min_price"`
	MaxPrice          float64   `json:"max_price"`
	SettlementPeriods int       `json:"settlement_periods"`
	Unit              string    `json:"unit"`
}

type DailyAverageResponse struct {
	Data      []DailyAverage `json:"data"`
	Count     int            `json:"count"`
	PriceType PriceType      `json:"price_type"`
}

// WeeklyAverage is the per-ISO-week price aggregate.
type WeeklyAverage struct {
	WeekStart         time.Time `json:"week_start"`
	WeekEnd           time.Time `json:"week_end"`
	WeekNumber        int       `json:"week_number"`
	AveragePrice      float64   `json:"average_price"`
	MinPrice          float64   `json:"min_price"`
	MaxPrice          float64   `json:"max_price"`
	SettlementPeriods int       `json:"settlement_periods"`
	Unit              string    `json:"unit"`
}

type WeeklyAverageResponse struct {
	Data      []WeeklyAverage `json:"data"`
	Count     int             `json:"count"`
	PriceType PriceType       `json:"price_type"`
}

// PeakOffPeakBreakdown splits a window into peak (weekday daytime) and
// off-peak (nights plus weekends) classes.
type PeakOffPeakBreakdown struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	PeakAverage float64 `json:"peak_average"`
	PeakMin     float64 `json:"peak_min"`
	PeakMax     float64 `json:"peak_max"`
	PeakPeriods int     `json:"peak_periods"`

	OffPeakAverage float64 `json:"offpeak_average"`
	OffPeakMin     float64 `json:"offpeak_min"`
	OffPeakMax     float64 `json:"offpeak_max"`
	OffPeakPeriods int     `json:"offpeak_periods"`

	PeakPremium float64 `json:"peak_premium"`
	// Omitted when the off-peak average is zero.
	PeakPremiumPct *float64 `json:"peak_premium_pct,omitempty"`

	Unit string `json:"unit"`
}

// PriceStatistics is the full statistical summary of a price window.
// Statistical fields are pointers so an empty window reports counts only,
// never a fabricated zero average.
type PriceStatistics struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PriceType PriceType `json:"price_type"`

	Average *float64 `json:"average,omitempty"`
	Median  *float64 `json:"median,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`

	StdDev        *float64 `json:"std_dev,omitempty"`
	VolatilityPct *float64 `json:"volatility_pct,omitempty"`

	Percentile25 *float64 `json:"percentile_25,omitempty"`
	Percentile75 *float64 `json:"percentile_75,omitempty"`
	Percentile95 *float64 `json:"percentile_95,omitempty"`

	SettlementPeriods int `json:"settlement_periods"`
	NegativePeriods   int `json:"negative_periods"`
	SpikePeriods      int `json:"spike_periods"`

	Unit string `json:"unit"`
}

// CarbonWeightedPrice reports the carbon-intensity-weighted mean price plus
// green/brown band breakdowns over exact-matched periods.
type CarbonWeightedPrice struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	AveragePrice  *float64 `json:"average_price,omitempty"`
	WeightedPrice *float64 `json:"carbon_weighted_price,omitempty"`

	GreenAverage float64 `json:"green_average"`
	GreenPeriods int     `json:"green_periods"`
	GreenPct     float64 `json:"green_pct"`

	BrownAverage float64 `json:"brown_average"`
	BrownPeriods int     `json:"brown_periods"`
	BrownPct     float64 `json:"brown_pct"`

	GreenPremium       float64 `json:"green_premium"`
	AvgCarbonIntensity int     `json:"avg_carbon_intensity"`
	MatchedPeriods     int     `json:"matched_periods"`
}

// DailyCarbonSummary aggregates one day of carbon intensity readings with
// the hours spent in each intensity band.
type DailyCarbonSummary struct {
	Date             time.Time `json:"date"`
	AverageIntensity int       `json:"average_intensity"`
	MinIntensity     int       `json:"min_intensity"`
	MaxIntensity     int       `json:"max_intensity"`
	VeryLowHours     float64   `json:"very_low_hours"`
	LowHours         float64   `json:"low_hours"`
	ModerateHours    float64   `json:"moderate_hours"`
	HighHours        float64   `json:"high_hours"`
	VeryHighHours    float64   `json:"very_high_hours"`
	DominantFuel     string    `json:"dominant_fuel"`
	RenewablePct     float64   `json:"renewable_pct"`
}

type DailyCarbonSummaryResponse struct {
	Data  []DailyCarbonSummary `json:"data"`
	Count int                  `json:"count"`
}

// RenewableIndex is the monthly renewable generation share summary.
type RenewableIndex struct {
	Period             string    `json:"period"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	TotalRenewablePct  float64   `json:"total_renewable_pct"`
	WindPct            float64   `json:"wind_pct"`
	SolarPct           float64   `json:"solar_pct"`
	HydroPct           float64   `json:"hydro_pct"`
	BiomassPct         float64   `json:"biomass_pct"`
	VsPreviousMonthPct *float64  `json:"vs_previous_month_pct,omitempty"`
	EstimatedREGO      string    `json:"estimated_rego_supply"`
	SettlementPeriods  int       `json:"settlement_periods"`
}

// GreenPremium is the monthly price split by renewable generation share.
type GreenPremium struct {
	Period             string    `json:"period"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	GreenPriceAvg      float64   `json:"green_price_avg"`
	GreenPeriods       int       `json:"green_periods"`
	BrownPriceAvg      float64   `json:"brown_price_avg"`
	BrownPeriods       int       `json:"brown_periods"`
	GreenPremium       float64   `json:"green_premium"`
	GreenPremiumPct    float64   `json:"green_premium_pct"`
	RenewableThreshold float64   `json:"renewable_threshold"`
}
