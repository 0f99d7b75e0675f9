// Package repository holds the data-access functions of every collection.
// Point lookups return a nil row and a nil error when nothing matches;
// inserts validate their argument and return the generated id.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Default limits for history reads when the caller passes zero.
const (
	DefaultIndicatorHistoryLimit = 100
	DefaultPulseHistoryLimit     = 50
	DefaultEventLimit            = 50
)

// newestFirst orders time series; id breaks ties deterministically.
const newestFirst = "date DESC, id DESC"

var validate = validator.New()

// ValidationError reports a malformed insert argument.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validateRow(entity string, row any) error {
	if err := validate.Struct(row); err != nil {
		return &ValidationError{Entity: entity, Err: err}
	}
	return nil
}

// requireRow fails with a ValidationError when no row of model has the id.
func requireRow(ctx context.Context, db *gorm.DB, entity string, model any, id string) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return &ValidationError{Entity: entity, Err: fmt.Errorf("referenced id %s does not exist", id)}
	}
	return nil
}

// takeOne runs q and returns its first row, or nil when there is none.
func takeOne[T any](q *gorm.DB) (*T, error) {
	var row T
	err := q.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func limitOr(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}
