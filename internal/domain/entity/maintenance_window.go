package entity

import (
	"time"
)

// Maintenance window lifecycle status
const (
	WindowStatusPlanned    = "planned"
	WindowStatusInProgress = "in_progress"
	WindowStatusCompleted  = "completed"
	WindowStatusCancelled  = "cancelled"
)

// MaintenanceWindow represents a scheduled maintenance period with its
// associated anomalies. Windows are reference data owned by the planning
// service; this service reads them, it never writes them.
type MaintenanceWindow struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ScheduleStart time.Time `json:"scheduleStart"`
	ScheduleEnd   time.Time `json:"scheduleEnd"`
	Status        string    `json:"status"`
	Anomalies     []Anomaly `json:"anomalies,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsFinished reports whether the window is done: either explicitly marked
// completed, or its planned period has elapsed.
func (w *MaintenanceWindow) IsFinished(now time.Time) bool {
	return w.Status == WindowStatusCompleted || w.ScheduleEnd.Before(now)
}
