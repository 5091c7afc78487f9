package repository

import (
	"context"
	"errors"
	"time"

	"rexlog-service/internal/domain/entity"
	"rexlog-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormMaintenanceWindowRepository implements the MaintenanceWindowRepository
// interface against the planning service's tables
type GormMaintenanceWindowRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceWindowRepository creates a new GORM maintenance window repository
func NewGormMaintenanceWindowRepository(db *gorm.DB) repository.MaintenanceWindowRepository {
	return &GormMaintenanceWindowRepository{
		db: db,
	}
}

// MaintenanceWindows GORM model for database mapping
type MaintenanceWindows struct {
	ID            string      `gorm:"column:id;primaryKey"`
	Title         string      `gorm:"column:title"`
	ScheduleStart time.Time   `gorm:"column:schedule_start"`
	ScheduleEnd   time.Time   `gorm:"column:schedule_end"`
	Status        string      `gorm:"column:status;index"`
	Anomalies     []Anomalies `gorm:"foreignKey:WindowID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name
func (MaintenanceWindows) TableName() string {
	return "m_maintenance_windows"
}

// Anomalies GORM model for database mapping
type Anomalies struct {
	ID        string `gorm:"column:id;primaryKey"`
	WindowID  string `gorm:"column:window_id;index"`
	Title     string `gorm:"column:title"`
	Status    string `gorm:"column:status"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name
func (Anomalies) TableName() string {
	return "m_anomalies"
}

// GetByID finds a maintenance window with its anomalies
func (r *GormMaintenanceWindowRepository) GetByID(ctx context.Context, id string) (*entity.MaintenanceWindow, error) {
	var window MaintenanceWindows
	result := r.db.WithContext(ctx).Preload("Anomalies").Where("id = ?", id).First(&window)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWindowNotFound
		}
		return nil, result.Error
	}

	return toWindowEntity(&window), nil
}

// ListFinished returns windows that are completed or whose scheduled period
// ended before the given time
func (r *GormMaintenanceWindowRepository) ListFinished(ctx context.Context, before time.Time, limit int) ([]*entity.MaintenanceWindow, error) {
	var windows []MaintenanceWindows
	result := r.db.WithContext(ctx).
		Preload("Anomalies").
		Where("status = ? OR schedule_end < ?", entity.WindowStatusCompleted, before).
		Order("schedule_end DESC").
		Limit(limit).
		Find(&windows)

	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.MaintenanceWindow, 0, len(windows))
	for i := range windows {
		entities = append(entities, toWindowEntity(&windows[i]))
	}
	return entities, nil
}

// toWindowEntity converts a GORM model to a domain entity
func toWindowEntity(w *MaintenanceWindows) *entity.MaintenanceWindow {
	anomalies := make([]entity.Anomaly, 0, len(w.Anomalies))
	for _, a := range w.Anomalies {
		anomalies = append(anomalies, entity.Anomaly{
			ID:        a.ID,
			WindowID:  a.WindowID,
			Title:     a.Title,
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		})
	}

	return &entity.MaintenanceWindow{
		ID:            w.ID,
		Title:         w.Title,
		ScheduleStart: w.ScheduleStart,
		ScheduleEnd:   w.ScheduleEnd,
		Status:        w.Status,
		Anomalies:     anomalies,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
