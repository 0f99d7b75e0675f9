// Package service composes the repositories into the operations the HTTP
// layer and the seed routine call. Every successful insert is published
// to the change notifier.
package service

import (
	"errors"

	"gorm.io/gorm"

	"econ-pulse/notify"
	"econ-pulse/repository"
)

// ErrNotFound is returned by operations that need an existing row to act on.
var ErrNotFound = errors.New("not found")

const defaultFanout = 8

// Services bundles one service per collection.
type Services struct {
	Countries    *CountryService
	Indicators   *IndicatorService
	Pulse        *PulseService
	Events       *EventService
	EventImpacts *EventImpactService
}

// Options tunes the services. The zero value is usable.
type Options struct {
	Publisher     notify.Publisher
	FanoutLimit   int
	ScoreObserver ScoreObserver
}

// New wires gorm repositories into services.
func New(db *gorm.DB, opts Options) *Services {
	pub := opts.Publisher
	if pub == nil {
		pub = notify.Discard{}
	}
	fanout := opts.FanoutLimit
	if fanout <= 0 {
		fanout = defaultFanout
	}

	countries := repository.NewGormCountryRepository(db)
	indicators := repository.NewGormIndicatorRepository(db)
	scores := repository.NewGormPulseScoreRepository(db)
	events := repository.NewGormEventRepository(db)
	impacts := repository.NewGormEventImpactRepository(db)

	return &Services{
		Countries:    NewCountryService(countries, pub),
		Indicators:   NewIndicatorService(indicators, pub),
		Pulse:        NewPulseService(countries, indicators, scores, pub, fanout, opts.ScoreObserver),
		Events:       NewEventService(events, pub),
		EventImpacts: NewEventImpactService(impacts, countries, pub, fanout),
	}
}
