package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"econ-pulse/models"
)

type CountryRepository interface {
	List(ctx context.Context) ([]models.Country, error)
	ListByRegion(ctx context.Context, region string) ([]models.Country, error)
	GetByID(ctx context.Context, id models.CountryID) (*models.Country, error)
	// GetByISOCode returns the first match; iso codes are not unique.
	GetByISOCode(ctx context.Context, isoCode string) (*models.Country, error)
	Create(ctx context.Context, country *models.Country) (models.CountryID, error)
}

type gormCountryRepository struct {
	db *gorm.DB
}

func NewGormCountryRepository(db *gorm.DB) CountryRepository {
	return &gormCountryRepository{db: db}
}

func (r *gormCountryRepository) List(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := r.db.WithContext(ctx).Order("name, id").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

func (r *gormCountryRepository) ListByRegion(ctx context.Context, region string) ([]models.Country, error) {
	var countries []models.Country
	err := r.db.WithContext(ctx).
		Where("region = ?", region).
		Order("name, id").
		Find(&countries).Error
	if err != nil {
		return nil, fmt.Errorf("list countries by region: %w", err)
	}
	return countries, nil
}

func (r *gormCountryRepository) GetByID(ctx context.Context, id models.CountryID) (*models.Country, error) {
	country, err := takeOne[models.Country](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get country %s: %w", id, err)
	}
	return country, nil
}

func (r *gormCountryRepository) GetByISOCode(ctx context.Context, isoCode string) (*models.Country, error) {
	country, err := takeOne[models.Country](r.db.WithContext(ctx).Where("iso_code = ?", isoCode).Order("id"))
	if err != nil {
		return nil, fmt.Errorf("get country by iso code %s: %w", isoCode, err)
	}
	return country, nil
}

func (r *gormCountryRepository) Create(ctx context.Context, country *models.Country) (models.CountryID, error) {
	if err := validateRow("country", country); err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Create(country).Error; err != nil {
		return "", fmt.Errorf("create country: %w", err)
	}
	return country.ID, nil
}
