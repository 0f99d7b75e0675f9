package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"econ-pulse/models"
)

//go:embed dataset.yaml
var defaultDataset []byte

const eventDateLayout = "2006-01-02"

type Dataset struct {
	History    History        `yaml:"history"`
	Countries  []CountrySpec  `yaml:"countries" validate:"required,dive"`
	Indicators []IndicatorGen `yaml:"indicators" validate:"required,dive"`
	Events     []EventSpec    `yaml:"events" validate:"dive"`
}

type History struct {
	Months       int `yaml:"months" validate:"gte=1"`
	IntervalDays int `yaml:"interval_days" validate:"gte=1"`
}

type CountrySpec struct {
	Name      string   `yaml:"name" validate:"required"`
	ISOCode   string   `yaml:"iso_code" validate:"required,len=3"`
	Region    string   `yaml:"region" validate:"required"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

// IndicatorGen draws readings uniformly from [Min, Min+Span).
type IndicatorGen struct {
	Name   string  `yaml:"name" validate:"required"`
	Source string  `yaml:"source" validate:"required"`
	Min    float64 `yaml:"min"`
	Span   float64 `yaml:"span" validate:"gte=0"`
}

type EventSpec struct {
	Title             string   `yaml:"title" validate:"required"`
	Date              string   `yaml:"date" validate:"required"`
	Country           string   `yaml:"country" validate:"required"`
	Type              string   `yaml:"type" validate:"required"`
	Summary           string   `yaml:"summary" validate:"required"`
	RelatedIndicators []string `yaml:"related_indicators"`
	SourceURL         *string  `yaml:"source_url"`
}

// Interval is the spacing between two generated readings.
func (h History) Interval() time.Duration {
	return time.Duration(h.IntervalDays) * 24 * time.Hour
}

// Model converts the spec into an insertable event.
func (e EventSpec) Model() (*models.Event, error) {
	date, err := time.Parse(eventDateLayout, e.Date)
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", e.Title, err)
	}
	return &models.Event{
		Title:             e.Title,
		Date:              date,
		Country:           e.Country,
		Type:              e.Type,
		Summary:           e.Summary,
		RelatedIndicators: e.RelatedIndicators,
		SourceURL:         e.SourceURL,
	}, nil
}

// ParseDataset decodes and validates a YAML dataset.
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := validator.New().Struct(&ds); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	for _, e := range ds.Events {
		if _, err := time.Parse(eventDateLayout, e.Date); err != nil {
			return nil, fmt.Errorf("invalid dataset: event %q: %w", e.Title, err)
		}
	}
	return &ds, nil
}

// DefaultDataset returns the embedded demo dataset.
func DefaultDataset() *Dataset {
	ds, err := ParseDataset(defaultDataset)
	if err != nil {
		panic(err)
	}
	return ds
}
