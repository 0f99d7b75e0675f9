// Package pulse computes the composite 0-100 economic health score of a
// country from five indicator readings.
package pulse

import (
	"math"

	"econ-pulse/models"
)

// Scale divisors. A reading equal to or above its scale normalizes to 1.
const (
	GDPScale          = 5.0
	InflationScale    = 5.0
	UnemploymentScale = 10.0
	MarketScale       = 15000.0
	CO2Scale          = 500.0
)

// Weights sum to 1. Inflation, unemployment and CO2 are inverted before
// weighting since lower readings are better.
const (
	GDPWeight          = 0.30
	InflationWeight    = 0.20
	UnemploymentWeight = 0.20
	MarketWeight       = 0.15
	CO2Weight          = 0.15
)

// Inputs lists the indicator names the score is computed from.
var Inputs = []string{
	models.IndicatorGDPGrowth,
	models.IndicatorInflation,
	models.IndicatorUnemployment,
	models.IndicatorMarketIndex,
	models.IndicatorCO2Emissions,
}

// Readings are the latest raw values. A nil field means no reading exists
// and is treated as 0.
type Readings struct {
	GDPGrowth    *float64
	Inflation    *float64
	Unemployment *float64
	MarketIndex  *float64
	CO2Emissions *float64
}

// Set stores v under the given indicator name. Unknown names are ignored.
func (r *Readings) Set(name string, v float64) {
	switch name {
	case models.IndicatorGDPGrowth:
		r.GDPGrowth = &v
	case models.IndicatorInflation:
		r.Inflation = &v
	case models.IndicatorUnemployment:
		r.Unemployment = &v
	case models.IndicatorMarketIndex:
		r.MarketIndex = &v
	case models.IndicatorCO2Emissions:
		r.CO2Emissions = &v
	}
}

// Result is the rounded score with its normalized components.
type Result struct {
	Score      int
	Components models.Components
	// Missing names the inputs that had no reading and were taken as 0.
	Missing []string
}

// Compute applies the fixed weighting to r.
//
// Missing readings count as 0. For GDP and market index that is the worst
// normalized value; for the inverted inputs it is the best one, so a
// country with gaps in its history gets a skewed score. Callers can
// inspect Result.Missing.
func Compute(r Readings) Result {
	var missing []string
	value := func(name string, p *float64) float64 {
		if p == nil {
			missing = append(missing, name)
			return 0
		}
		return *p
	}

	c := models.Components{
		GDPGrowth:    normalize(value(models.IndicatorGDPGrowth, r.GDPGrowth), GDPScale),
		Inflation:    normalize(value(models.IndicatorInflation, r.Inflation), InflationScale),
		Unemployment: normalize(value(models.IndicatorUnemployment, r.Unemployment), UnemploymentScale),
		MarketIndex:  normalize(value(models.IndicatorMarketIndex, r.MarketIndex), MarketScale),
		CO2Emissions: normalize(value(models.IndicatorCO2Emissions, r.CO2Emissions), CO2Scale),
	}

	return Result{
		Score:      Score(c),
		Components: c,
		Missing:    missing,
	}
}

// Score weights already normalized components and rounds to the nearest
// integer.
func Score(c models.Components) int {
	raw := GDPWeight*c.GDPGrowth +
		InflationWeight*(1-c.Inflation) +
		UnemploymentWeight*(1-c.Unemployment) +
		MarketWeight*c.MarketIndex +
		CO2Weight*(1-c.CO2Emissions)
	return int(math.Round(raw * 100))
}

// normalize maps v onto [0, 1]. Negative readings such as a contraction
// or deflation count as 0.
func normalize(v, scale float64) float64 {
	return math.Max(0, math.Min(v/scale, 1))
}
