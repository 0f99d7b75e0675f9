package service

import (
	"context"

	"econ-pulse/models"
	"econ-pulse/notify"
	"econ-pulse/repository"
)

type IndicatorService struct {
	repo repository.IndicatorRepository
	pub  notify.Publisher
}

func NewIndicatorService(repo repository.IndicatorRepository, pub notify.Publisher) *IndicatorService {
	return &IndicatorService{repo: repo, pub: pub}
}

func (s *IndicatorService) ListByCountry(ctx context.Context, countryID models.CountryID) ([]models.Indicator, error) {
	return s.repo.ListByCountry(ctx, countryID)
}

func (s *IndicatorService) Latest(ctx context.Context, countryID models.CountryID, name string) (*models.Indicator, error) {
	return s.repo.LatestByCountryAndName(ctx, countryID, name)
}

func (s *IndicatorService) History(ctx context.Context, countryID models.CountryID, name string, limit int) ([]models.Indicator, error) {
	return s.repo.History(ctx, countryID, name, limit)
}

func (s *IndicatorService) Create(ctx context.Context, indicator *models.Indicator) (models.IndicatorID, error) {
	id, err := s.repo.Create(ctx, indicator)
	if err != nil {
		return "", err
	}
	s.pub.Publish(notify.Change{Collection: notify.Indicators, ID: string(id)})
	return id, nil
}
