package analytics

import (
	"math"
	"sort"

	"github.com/energy-oracle/eo-api/internal/domain/models"
)

// Config carries the tunables the aggregations depend on. Spike thresholds
// are absolute GBP/MWh levels per price index; the peak window is expressed
// in settlement periods (15-38 is the 07:00-19:00 clock window).
type Config struct {
	SpikeThresholdSystem   float64
	SpikeThresholdDayAhead float64
	PeakStartPeriod        int
	PeakEndPeriod          int
}

// Engine computes derived aggregates over ordered time-series slices.
// It is pure: no storage, no clock, no goroutines.
type Engine struct {
	cfg Config
}

// NewEngine creates an analytics engine, filling unset config with defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.SpikeThresholdSystem <= 0 {
		cfg.SpikeThresholdSystem = 200
	}
	if cfg.SpikeThresholdDayAhead <= 0 {
		cfg.SpikeThresholdDayAhead = 150
	}
	if cfg.PeakStartPeriod <= 0 {
		cfg.PeakStartPeriod = 15
	}
	if cfg.PeakEndPeriod <= 0 {
		cfg.PeakEndPeriod = 38
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) spikeThreshold(pt models.PriceType) float64 {
	if pt == models.PriceTypeDayAhead {
		return e.cfg.SpikeThresholdDayAhead
	}
	return e.cfg.SpikeThresholdSystem
}

func (e *Engine) isPeakPeriod(period int) bool {
	return period >= e.cfg.PeakStartPeriod && period <= e.cfg.PeakEndPeriod
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdDev is the population standard deviation.
func stdDev(xs []float64, avg float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		d := x - avg
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// percentile uses linear interpolation between closest ranks (R-7):
// k = (n-1)*p/100, interpolating between floor(k) and floor(k)+1.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	k := float64(n-1) * p / 100
	f := int(k)
	c := f + 1
	if c >= n {
		return sorted[f]
	}
	return sorted[f] + (k-float64(f))*(sorted[c]-sorted[f])
}

func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func ptr(x float64) *float64 { return &x }
