package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"econ-pulse/models"
)

type EventImpactRepository interface {
	ListByEvent(ctx context.Context, eventID models.EventID) ([]models.EventImpact, error)
	ListByCountry(ctx context.Context, countryID models.CountryID) ([]models.EventImpact, error)
	Create(ctx context.Context, impact *models.EventImpact) (models.EventImpactID, error)
}

type gormEventImpactRepository struct {
	db *gorm.DB
}

func NewGormEventImpactRepository(db *gorm.DB) EventImpactRepository {
	return &gormEventImpactRepository{db: db}
}

func (r *gormEventImpactRepository) ListByEvent(ctx context.Context, eventID models.EventID) ([]models.EventImpact, error) {
	impacts := []models.EventImpact{}
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("country_id, indicator_name, id").
		Find(&impacts).Error
	if err != nil {
		return nil, fmt.Errorf("list impacts of event %s: %w", eventID, err)
	}
	return impacts, nil
}

func (r *gormEventImpactRepository) ListByCountry(ctx context.Context, countryID models.CountryID) ([]models.EventImpact, error) {
	impacts := []models.EventImpact{}
	err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("event_id, indicator_name, id").
		Find(&impacts).Error
	if err != nil {
		return nil, fmt.Errorf("list impacts in %s: %w", countryID, err)
	}
	return impacts, nil
}

func (r *gormEventImpactRepository) Create(ctx context.Context, impact *models.EventImpact) (models.EventImpactID, error) {
	if err := validateRow("event impact", impact); err != nil {
		return "", err
	}
	if err := requireRow(ctx, r.db, "event impact", &models.Event{}, string(impact.EventID)); err != nil {
		return "", err
	}
	if err := requireRow(ctx, r.db, "event impact", &models.Country{}, string(impact.CountryID)); err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Create(impact).Error; err != nil {
		return "", fmt.Errorf("create event impact: %w", err)
	}
	return impact.ID, nil
}
