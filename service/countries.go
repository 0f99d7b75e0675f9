package service

import (
	"context"

	"econ-pulse/models"
	"econ-pulse/notify"
	"econ-pulse/repository"
)

type CountryService struct {
	repo repository.CountryRepository
	pub  notify.Publisher
}

func NewCountryService(repo repository.CountryRepository, pub notify.Publisher) *CountryService {
	return &CountryService{repo: repo, pub: pub}
}

func (s *CountryService) List(ctx context.Context) ([]models.Country, error) {
	return s.repo.List(ctx)
}

func (s *CountryService) ListByRegion(ctx context.Context, region string) ([]models.Country, error) {
	return s.repo.ListByRegion(ctx, region)
}

func (s *CountryService) GetByID(ctx context.Context, id models.CountryID) (*models.Country, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CountryService) GetByISOCode(ctx context.Context, isoCode string) (*models.Country, error) {
	return s.repo.GetByISOCode(ctx, isoCode)
}

func (s *CountryService) Create(ctx context.Context, country *models.Country) (models.CountryID, error) {
	id, err := s.repo.Create(ctx, country)
	if err != nil {
		return "", err
	}
	s.pub.Publish(notify.Change{Collection: notify.Countries, ID: string(id)})
	return id, nil
}
