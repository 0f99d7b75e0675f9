package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventCountryGlobal marks events that are not tied to one country.
const EventCountryGlobal = "Global"

// Event is a policy or market event. Country holds a country name or
// EventCountryGlobal; Type is a free-form tag such as "rate_change".
type Event struct {
	ID                EventID                     `json:"id" gorm:"primaryKey"`
	Title             string                      `json:"title" validate:"required"`
	Date              time.Time                   `json:"date" gorm:"index" validate:"required"`
	Country           string                      `json:"country" gorm:"index" validate:"required"`
	Type              string                      `json:"type" gorm:"index" validate:"required"`
	Summary           string                      `json:"summary"`
	RelatedIndicators datatypes.JSONSlice[string] `json:"related_indicators" gorm:"column:related_indicators"`
	SourceURL         *string                     `json:"source_url,omitempty" validate:"omitempty,url"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = EventID(newID())
	}
	if e.RelatedIndicators == nil {
		e.RelatedIndicators = datatypes.JSONSlice[string]{}
	}
	return nil
}

// EventImpact is the measured before/after effect of an event on one
// indicator in one country.
type EventImpact struct {
	ID              EventImpactID `json:"id" gorm:"primaryKey"`
	EventID         EventID       `json:"event_id" gorm:"index" validate:"required"`
	CountryID       CountryID     `json:"country_id" gorm:"index" validate:"required"`
	IndicatorName   string        `json:"indicator_name" validate:"required"`
	PreValue        float64       `json:"pre_value"`
	PostValue       float64       `json:"post_value"`
	Correlation     float64       `json:"correlation" validate:"gte=-1,lte=1"`
	DeltaPercentage float64       `json:"delta_percentage"`
	DeltaSummary    string        `json:"delta_summary"`
}

func (EventImpact) TableName() string {
	return "event_impacts"
}

func (ei *EventImpact) BeforeCreate(tx *gorm.DB) error {
	if ei.ID == "" {
		ei.ID = EventImpactID(newID())
	}
	return nil
}

// EnrichedEventImpact is an impact joined with its country at read time.
// Country is nil when the referenced row is missing.
type EnrichedEventImpact struct {
	EventImpact
	Country *Country `json:"country"`
}
