package repository

import (
	"context"
	"errors"
	"time"

	"rexlog-service/internal/domain/entity"
)

// ErrWindowNotFound is returned when no maintenance window exists for an id
var ErrWindowNotFound = errors.New("maintenance window not found")

// MaintenanceWindowRepository defines the interface for reading maintenance
// window reference data. Anomalies are loaded together with their window.
type MaintenanceWindowRepository interface {
	GetByID(ctx context.Context, id string) (*entity.MaintenanceWindow, error)
	ListFinished(ctx context.Context, before time.Time, limit int) ([]*entity.MaintenanceWindow, error)
}
