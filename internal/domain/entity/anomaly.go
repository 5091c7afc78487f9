package entity

import (
	"time"
)

// Anomaly lifecycle status
const (
	AnomalyStatusOpen       = "OPEN"
	AnomalyStatusInProgress = "IN_PROGRESS"
	AnomalyStatusTreated    = "TREATED"
	AnomalyStatusClosed     = "CLOSED"
)

// Anomaly represents a defect tracked against a maintenance window
type Anomaly struct {
	ID        string    `json:"id"`
	WindowID  string    `json:"windowId"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsResolved reports whether the anomaly reached a terminal state
func (a Anomaly) IsResolved() bool {
	return a.Status == AnomalyStatusClosed || a.Status == AnomalyStatusTreated
}
