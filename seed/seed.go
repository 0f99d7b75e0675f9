// Package seed populates an empty store with the demo dataset: countries,
// a synthetic indicator history per country, one pulse score per country
// and a list of historical events.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"econ-pulse/models"
	"econ-pulse/service"
)

type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Countries  int    `json:"countries"`
	Indicators int    `json:"indicators"`
	Scores     int    `json:"pulse_scores"`
	Events     int    `json:"events"`
}

// Seeder is safe for concurrent use; runs are serialized.
type Seeder struct {
	mu      sync.Mutex
	svc     *service.Services
	log     logrus.FieldLogger
	rng     *rand.Rand
	now     func() time.Time
	dataset *Dataset
}

type Option func(*Seeder)

// WithRand fixes the random source, e.g. for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Seeder) { s.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

func WithDataset(ds *Dataset) Option {
	return func(s *Seeder) { s.dataset = ds }
}

func New(svc *service.Services, log logrus.FieldLogger, opts ...Option) *Seeder {
	s := &Seeder{
		svc: svc,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if s.dataset == nil {
		s.dataset = DefaultDataset()
	}
	return s
}

// Run inserts the whole dataset. Inserts are independent; a failure
// leaves the rows written so far in place.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	res := &Result{}

	for _, spec := range s.dataset.Countries {
		id, err := s.svc.Countries.Create(ctx, &models.Country{
			Name:      spec.Name,
			ISOCode:   spec.ISOCode,
			Region:    spec.Region,
			Latitude:  spec.Latitude,
			Longitude: spec.Longitude,
		})
		if err != nil {
			return res, fmt.Errorf("seed country %s: %w", spec.ISOCode, err)
		}
		res.Countries++

		n, err := s.seedHistory(ctx, id, now)
		res.Indicators += n
		if err != nil {
			return res, fmt.Errorf("seed indicators of %s: %w", spec.ISOCode, err)
		}

		score, result, err := s.svc.Pulse.Recompute(ctx, id, now)
		if err != nil {
			return res, fmt.Errorf("seed pulse score of %s: %w", spec.ISOCode, err)
		}
		res.Scores++

		entry := s.log.WithFields(logrus.Fields{
			"country": spec.ISOCode,
			"score":   score.Score,
		})
		if len(result.Missing) > 0 {
			entry = entry.WithField("missing", result.Missing)
		}
		entry.Debug("seeded country")
	}

	for _, spec := range s.dataset.Events {
		event, err := spec.Model()
		if err != nil {
			return res, err
		}
		if _, err := s.svc.Events.Create(ctx, event); err != nil {
			return res, fmt.Errorf("seed event %q: %w", spec.Title, err)
		}
		res.Events++
	}

	res.Success = true
	res.Message = "Database seeded successfully"
	s.log.WithFields(logrus.Fields{
		"countries":  res.Countries,
		"indicators": res.Indicators,
		"events":     res.Events,
	}).Info(res.Message)
	return res, nil
}

// seedHistory writes one reading per indicator per interval, newest at now.
func (s *Seeder) seedHistory(ctx context.Context, countryID models.CountryID, now time.Time) (int, error) {
	var n int
	h := s.dataset.History
	for i := 0; i < h.Months; i++ {
		date := now.Add(-time.Duration(i) * h.Interval())
		for _, gen := range s.dataset.Indicators {
			_, err := s.svc.Indicators.Create(ctx, &models.Indicator{
				CountryID: countryID,
				Name:      gen.Name,
				Value:     gen.Min + s.rng.Float64()*gen.Span,
				Source:    gen.Source,
				Date:      date,
			})
			if err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
