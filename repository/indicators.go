package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"econ-pulse/models"
)

type IndicatorRepository interface {
	ListByCountry(ctx context.Context, countryID models.CountryID) ([]models.Indicator, error)
	LatestByCountryAndName(ctx context.Context, countryID models.CountryID, name string) (*models.Indicator, error)
	History(ctx context.Context, countryID models.CountryID, name string, limit int) ([]models.Indicator, error)
	Create(ctx context.Context, indicator *models.Indicator) (models.IndicatorID, error)
}

type gormIndicatorRepository struct {
	db *gorm.DB
}

func NewGormIndicatorRepository(db *gorm.DB) IndicatorRepository {
	return &gormIndicatorRepository{db: db}
}

func (r *gormIndicatorRepository) ListByCountry(ctx context.Context, countryID models.CountryID) ([]models.Indicator, error) {
	var indicators []models.Indicator
	err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order(newestFirst).
		Find(&indicators).Error
	if err != nil {
		return nil, fmt.Errorf("list indicators of %s: %w", countryID, err)
	}
	return indicators, nil
}

func (r *gormIndicatorRepository) LatestByCountryAndName(ctx context.Context, countryID models.CountryID, name string) (*models.Indicator, error) {
	q := r.db.WithContext(ctx).
		Where("country_id = ? AND name = ?", countryID, name).
		Order(newestFirst)
	indicator, err := takeOne[models.Indicator](q)
	if err != nil {
		return nil, fmt.Errorf("latest %s of %s: %w", name, countryID, err)
	}
	return indicator, nil
}

func (r *gormIndicatorRepository) History(ctx context.Context, countryID models.CountryID, name string, limit int) ([]models.Indicator, error) {
	var indicators []models.Indicator
	err := r.db.WithContext(ctx).
		Where("country_id = ? AND name = ?", countryID, name).
		Order(newestFirst).
		Limit(limitOr(limit, DefaultIndicatorHistoryLimit)).
		Find(&indicators).Error
	if err != nil {
		return nil, fmt.Errorf("history of %s for %s: %w", name, countryID, err)
	}
	return indicators, nil
}

func (r *gormIndicatorRepository) Create(ctx context.Context, indicator *models.Indicator) (models.IndicatorID, error) {
	if err := validateRow("indicator", indicator); err != nil {
		return "", err
	}
	if err := requireRow(ctx, r.db, "indicator", &models.Country{}, string(indicator.CountryID)); err != nil {
		return "", err
	}
	indicator.Date = indicator.Date.UTC()
	if err := r.db.WithContext(ctx).Create(indicator).Error; err != nil {
		return "", fmt.Errorf("create indicator: %w", err)
	}
	return indicator.ID, nil
}
