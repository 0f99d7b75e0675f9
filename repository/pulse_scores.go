package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"econ-pulse/models"
)

type PulseScoreRepository interface {
	LatestByCountry(ctx context.Context, countryID models.CountryID) (*models.PulseScore, error)
	History(ctx context.Context, countryID models.CountryID, limit int) ([]models.PulseScore, error)
	Create(ctx context.Context, score *models.PulseScore) (models.PulseScoreID, error)
}

type gormPulseScoreRepository struct {
	db *gorm.DB
}

func NewGormPulseScoreRepository(db *gorm.DB) PulseScoreRepository {
	return &gormPulseScoreRepository{db: db}
}

func (r *gormPulseScoreRepository) LatestByCountry(ctx context.Context, countryID models.CountryID) (*models.PulseScore, error) {
	q := r.db.WithContext(ctx).Where("country_id = ?", countryID).Order(newestFirst)
	score, err := takeOne[models.PulseScore](q)
	if err != nil {
		return nil, fmt.Errorf("latest pulse score of %s: %w", countryID, err)
	}
	return score, nil
}

func (r *gormPulseScoreRepository) History(ctx context.Context, countryID models.CountryID, limit int) ([]models.PulseScore, error) {
	var scores []models.PulseScore
	err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order(newestFirst).
		Limit(limitOr(limit, DefaultPulseHistoryLimit)).
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("pulse history of %s: %w", countryID, err)
	}
	return scores, nil
}

func (r *gormPulseScoreRepository) Create(ctx context.Context, score *models.PulseScore) (models.PulseScoreID, error) {
	if err := validateRow("pulse score", score); err != nil {
		return "", err
	}
	if err := requireRow(ctx, r.db, "pulse score", &models.Country{}, string(score.CountryID)); err != nil {
		return "", err
	}
	score.Date = score.Date.UTC()
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return "", fmt.Errorf("create pulse score: %w", err)
	}
	return score.ID, nil
}
