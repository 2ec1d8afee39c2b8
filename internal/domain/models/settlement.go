package models

// SettlementResult is the audit-grade PPA settlement calculation for one
// calendar month. settlement_price = average_price - discount and may be
// negative; settlement_amount = settlement_price * volume_mwh.
type SettlementResult struct {
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	PriceType         PriceType `json:"price_type"`
	AveragePrice      float64   `json:"average_price"`
	Discount          float64   `json:"discount"`
	SettlementPrice   float64   `json:"settlement_price"`
	VolumeMWh         *float64  `json:"volume_mwh,omitempty"`
	SettlementAmount  *float64  `json:"settlement_amount,omitempty"`
	SettlementPeriods int       `json:"settlement_periods"`
	Unit              string    `json:"unit"`
	Currency          string    `json:"currency"`
}
