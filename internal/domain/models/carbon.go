package models

import "time"

// CarbonPoint is one half-hourly carbon intensity reading.
type CarbonPoint struct {
	Datetime       time.Time `json:"datetime"`
	Intensity      int       `json:"intensity"`
	IntensityIndex string    `json:"intensity_index,omitempty"`
	DataSource     string    `json:"data_source,omitempty"`
}

// CarbonResponse wraps a list of carbon intensity readings.
type CarbonResponse struct {
	Data  []CarbonPoint `json:"data"`
	Count int           `json:"count"`
	Unit  string        `json:"unit"`
}

func NewCarbonResponse(points []CarbonPoint) *CarbonResponse {
	if points == nil {
		points = []CarbonPoint{}
	}
	return &CarbonResponse{Data: points, Count: len(points), Unit: "gCO2/kWh"}
}

// FuelMixPoint is one half-hourly generation fuel mix breakdown, shares in
// percent. Absent fuels stay nil rather than zero.
type FuelMixPoint struct {
	Datetime   time.Time `json:"datetime"`
	Biomass    *float64  `json:"biomass,omitempty"`
	Coal       *float64  `json:"coal,omitempty"`
	Gas        *float64  `json:"gas,omitempty"`
	Hydro      *float64  `json:"hydro,omitempty"`
	Imports    *float64  `json:"imports,omitempty"`
	Nuclear    *float64  `json:"nuclear,omitempty"`
	Other      *float64  `json:"other,omitempty"`
	Solar      *float64  `json:"solar,omitempty"`
	Wind       *float64  `json:"wind,omitempty"`
	DataSource string    `json:"data_source,omitempty"`
}

// RenewableShare sums the renewable components that are present.
func (f FuelMixPoint) RenewableShare() float64 {
	var total float64
	for _, v := range []*float64{f.Wind, f.Solar, f.Hydro, f.Biomass} {
		if v != nil {
			total += *v
		}
	}
	return total
}

// FuelMixResponse wraps a list of fuel mix readings.
type FuelMixResponse struct {
	Data  []FuelMixPoint `json:"data"`
	Count int            `json:"count"`
	Unit  string         `json:"unit"`
}

func NewFuelMixResponse(points []FuelMixPoint) *FuelMixResponse {
	if points == nil {
		points = []FuelMixPoint{}
	}
	return &FuelMixResponse{Data: points, Count: len(points), Unit: "percentage"}
}
