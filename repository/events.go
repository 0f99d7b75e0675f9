package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"econ-pulse/models"
)

type EventRepository interface {
	// List returns up to limit events, newest first.
	List(ctx context.Context, limit int) ([]models.Event, error)
	GetByID(ctx context.Context, id models.EventID) (*models.Event, error)
	ListByCountry(ctx context.Context, country string) ([]models.Event, error)
	ListByType(ctx context.Context, eventType string) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) (models.EventID, error)
}

type gormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) EventRepository {
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) List(ctx context.Context, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Order(newestFirst).
		Limit(limitOr(limit, DefaultEventLimit)).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *gormEventRepository) GetByID(ctx context.Context, id models.EventID) (*models.Event, error) {
	event, err := takeOne[models.Event](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return event, nil
}

func (r *gormEventRepository) ListByCountry(ctx context.Context, country string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("country = ?", country).
		Order(newestFirst).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list events of %s: %w", country, err)
	}
	return events, nil
}

func (r *gormEventRepository) ListByType(ctx context.Context, eventType string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("type = ?", eventType).
		Order(newestFirst).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list %s events: %w", eventType, err)
	}
	return events, nil
}

func (r *gormEventRepository) Create(ctx context.Context, event *models.Event) (models.EventID, error) {
	if err := validateRow("event", event); err != nil {
		return "", err
	}
	event.Date = event.Date.UTC()
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	return event.ID, nil
}
