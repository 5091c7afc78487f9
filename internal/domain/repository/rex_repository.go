package repository

import (
	"context"

	"rexlog-service/internal/domain/entity"
)

// RexRepository defines the interface for REX record storage operations
type RexRepository interface {
	Create(ctx context.Context, rex *entity.ReturnOfExperience) error
	FindByID(ctx context.Context, id string) (*entity.ReturnOfExperience, error)
	ListByWindow(ctx context.Context, windowID string) ([]*entity.ReturnOfExperience, error)
	CountByWindow(ctx context.Context, windowID string) (int64, error)
}
