package models

import (
	"time"

	"gorm.io/gorm"
)

// Indicator names used by the seed routine and the pulse score. The
// vocabulary is open: any non-empty name is accepted on insert.
const (
	IndicatorGDPGrowth    = "GDP_growth"
	IndicatorInflation    = "inflation"
	IndicatorUnemployment = "unemployment"
	IndicatorInterestRate = "interest_rate"
	IndicatorCO2Emissions = "co2_emissions"
	IndicatorMarketIndex  = "market_index"
)

// IndicatorNames lists the known indicators in display order.
var IndicatorNames = []string{
	IndicatorGDPGrowth,
	IndicatorInflation,
	IndicatorUnemployment,
	IndicatorInterestRate,
	IndicatorCO2Emissions,
	IndicatorMarketIndex,
}

// IndicatorLabels maps known indicator names to human readable labels.
var IndicatorLabels = map[string]string{
	IndicatorGDPGrowth:    "GDP Growth (%)",
	IndicatorInflation:    "Inflation (%)",
	IndicatorUnemployment: "Unemployment (%)",
	IndicatorInterestRate: "Interest Rate (%)",
	IndicatorCO2Emissions: "CO₂ Emissions (Mt)",
	IndicatorMarketIndex:  "Market Index",
}

// Indicator is a single timestamped reading. Rows for the same
// (country, name) pair form a time series and are never updated.
type Indicator struct {
	ID        IndicatorID `json:"id" gorm:"primaryKey"`
	CountryID CountryID   `json:"country_id" gorm:"index" validate:"required"`
	Name      string      `json:"name" validate:"required"`
	Value     float64     `json:"value"`
	Source    string      `json:"source" validate:"required"`
	Date      time.Time   `json:"date" gorm:"index" validate:"required"`
}

func (Indicator) TableName() string {
	return "indicators"
}

func (i *Indicator) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = IndicatorID(newID())
	}
	return nil
}
