package entity

import (
	"time"
)

// RexOpportunity is the summary card shown for a finished window that still
// deserves a REX record. It is derived on demand and never stored.
type RexOpportunity struct {
	WindowID      string     `json:"windowId"`
	WindowTitle   string     `json:"windowTitle"`
	AnomalyCount  int        `json:"anomalyCount"`
	ResolvedCount int        `json:"resolvedCount"`
	RexCount      int        `json:"rexCount"`
	LastRexAt     *time.Time `json:"lastRexAt,omitempty"`
	EditorURL     string     `json:"editorUrl"`
}
