package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"econ-pulse/models"
	"econ-pulse/notify"
	"econ-pulse/repository"
)

type EventService struct {
	repo repository.EventRepository
	pub  notify.Publisher
}

func NewEventService(repo repository.EventRepository, pub notify.Publisher) *EventService {
	return &EventService{repo: repo, pub: pub}
}

func (s *EventService) List(ctx context.Context, limit int) ([]models.Event, error) {
	return s.repo.List(ctx, limit)
}

func (s *EventService) GetByID(ctx context.Context, id models.EventID) (*models.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) ListByCountry(ctx context.Context, country string) ([]models.Event, error) {
	return s.repo.ListByCountry(ctx, country)
}

func (s *EventService) ListByType(ctx context.Context, eventType string) ([]models.Event, error) {
	return s.repo.ListByType(ctx, eventType)
}

func (s *EventService) Create(ctx context.Context, event *models.Event) (models.EventID, error) {
	id, err := s.repo.Create(ctx, event)
	if err != nil {
		return "", err
	}
	s.pub.Publish(notify.Change{Collection: notify.Events, ID: string(id)})
	return id, nil
}

type EventImpactService struct {
	repo      repository.EventImpactRepository
	countries repository.CountryRepository
	pub       notify.Publisher
	fanout    int
}

func NewEventImpactService(repo repository.EventImpactRepository, countries repository.CountryRepository, pub notify.Publisher, fanout int) *EventImpactService {
	return &EventImpactService{repo: repo, countries: countries, pub: pub, fanout: fanout}
}

// ListByEvent returns the impacts of an event joined with their country,
// looking each country up concurrently.
func (s *EventImpactService) ListByEvent(ctx context.Context, eventID models.EventID) ([]models.EnrichedEventImpact, error) {
	impacts, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedEventImpact, len(impacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, impact := range impacts {
		g.Go(func() error {
			country, err := s.countries.GetByID(gctx, impact.CountryID)
			if err != nil {
				return err
			}
			enriched[i] = models.EnrichedEventImpact{EventImpact: impact, Country: country}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

func (s *EventImpactService) ListByCountry(ctx context.Context, countryID models.CountryID) ([]models.EventImpact, error) {
	return s.repo.ListByCountry(ctx, countryID)
}

func (s *EventImpactService) Create(ctx context.Context, impact *models.EventImpact) (models.EventImpactID, error) {
	id, err := s.repo.Create(ctx, impact)
	if err != nil {
		return "", err
	}
	s.pub.Publish(notify.Change{Collection: notify.EventImpacts, ID: string(id)})
	return id, nil
}
