package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"econ-pulse/models"
	"econ-pulse/notify"
	"econ-pulse/pulse"
	"econ-pulse/repository"
)

// ScoreObserver is told about every stored pulse score.
type ScoreObserver interface {
	ObservePulseScore(countryID models.CountryID, score int)
}

type PulseService struct {
	countries  repository.CountryRepository
	indicators repository.IndicatorRepository
	scores     repository.PulseScoreRepository
	pub        notify.Publisher
	fanout     int
	observer   ScoreObserver
}

func NewPulseService(
	countries repository.CountryRepository,
	indicators repository.IndicatorRepository,
	scores repository.PulseScoreRepository,
	pub notify.Publisher,
	fanout int,
	observer ScoreObserver,
) *PulseService {
	return &PulseService{
		countries:  countries,
		indicators: indicators,
		scores:     scores,
		pub:        pub,
		fanout:     fanout,
		observer:   observer,
	}
}

func (s *PulseService) Latest(ctx context.Context, countryID models.CountryID) (*models.PulseScore, error) {
	return s.scores.LatestByCountry(ctx, countryID)
}

func (s *PulseService) History(ctx context.Context, countryID models.CountryID, limit int) ([]models.PulseScore, error) {
	return s.scores.History(ctx, countryID, limit)
}

// AllLatest pairs every country that has a score with its latest one.
// Countries without scores are omitted; order follows the country list.
func (s *PulseService) AllLatest(ctx context.Context) ([]models.CountryPulse, error) {
	countries, err := s.countries.List(ctx)
	if err != nil {
		return nil, err
	}

	latest := make([]*models.PulseScore, len(countries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, country := range countries {
		g.Go(func() error {
			score, err := s.scores.LatestByCountry(gctx, country.ID)
			if err != nil {
				return err
			}
			latest[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]models.CountryPulse, 0, len(countries))
	for i, country := range countries {
		if latest[i] == nil {
			continue
		}
		result = append(result, models.CountryPulse{Country: country, Score: latest[i]})
	}
	return result, nil
}

func (s *PulseService) Create(ctx context.Context, score *models.PulseScore) (models.PulseScoreID, error) {
	id, err := s.scores.Create(ctx, score)
	if err != nil {
		return "", err
	}
	s.pub.Publish(notify.Change{Collection: notify.PulseScores, ID: string(id)})
	if s.observer != nil {
		s.observer.ObservePulseScore(score.CountryID, score.Score)
	}
	return id, nil
}

// Readings loads the most recent value of every pulse input of a country.
func (s *PulseService) Readings(ctx context.Context, countryID models.CountryID) (pulse.Readings, error) {
	latest := make([]*models.Indicator, len(pulse.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range pulse.Inputs {
		g.Go(func() error {
			ind, err := s.indicators.LatestByCountryAndName(gctx, countryID, name)
			if err != nil {
				return err
			}
			latest[i] = ind
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pulse.Readings{}, err
	}

	var r pulse.Readings
	for _, ind := range latest {
		if ind != nil {
			r.Set(ind.Name, ind.Value)
		}
	}
	return r, nil
}

// Recompute scores a country from its latest readings and stores the
// result dated at.
func (s *PulseService) Recompute(ctx context.Context, countryID models.CountryID, at time.Time) (*models.PulseScore, pulse.Result, error) {
	country, err := s.countries.GetByID(ctx, countryID)
	if err != nil {
		return nil, pulse.Result{}, err
	}
	if country == nil {
		return nil, pulse.Result{}, fmt.Errorf("country %s: %w", countryID, ErrNotFound)
	}

	readings, err := s.Readings(ctx, countryID)
	if err != nil {
		return nil, pulse.Result{}, err
	}
	result := pulse.Compute(readings)

	score := &models.PulseScore{
		CountryID:  countryID,
		Score:      result.Score,
		Date:       at,
		Components: result.Components,
	}
	if _, err := s.Create(ctx, score); err != nil {
		return nil, result, err
	}
	return score, result, nil
}
