package models

import (
	"time"

	"gorm.io/gorm"
)

// Components holds the normalized inputs of a pulse score before the
// "lower is better" inversion is applied.
type Components struct {
	GDPGrowth    float64 `json:"gdp_growth" gorm:"column:gdp_growth"`
	Inflation    float64 `json:"inflation" gorm:"column:inflation"`
	Unemployment float64 `json:"unemployment" gorm:"column:unemployment"`
	MarketIndex  float64 `json:"market_index" gorm:"column:market_index"`
	CO2Emissions float64 `json:"co2_emissions" gorm:"column:co2_emissions"`
}

type PulseScore struct {
	ID         PulseScoreID `json:"id" gorm:"primaryKey"`
	CountryID  CountryID    `json:"country_id" gorm:"index" validate:"required"`
	Score      int          `json:"score" validate:"gte=0,lte=100"`
	Date       time.Time    `json:"date" validate:"required"`
	Components Components   `json:"components" gorm:"embedded;embeddedPrefix:component_"`
}

func (PulseScore) TableName() string {
	return "pulse_scores"
}

func (p *PulseScore) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = PulseScoreID(newID())
	}
	return nil
}

// CountryPulse pairs a country with its most recent score.
type CountryPulse struct {
	Country Country     `json:"country"`
	Score   *PulseScore `json:"score"`
}
