package usecase

import (
	"time"

	"rexlog-service/internal/domain/entity"
	"rexlog-service/pkg/utils"
)

// IsOpportunity reports whether a window deserves a REX prompt: the window
// is finished (marked completed, or its scheduled period elapsed) and at
// least one anomaly was tracked against it. Pure function of the window
// state and the given clock.
func IsOpportunity(window *entity.MaintenanceWindow, now time.Time) bool {
	if len(window.Anomalies) == 0 {
		return false
	}
	return window.IsFinished(now)
}

// ResolvedAnomalyCount counts the anomalies of a window that reached a
// terminal state. Returns 0 when the window carries no anomalies.
func ResolvedAnomalyCount(window *entity.MaintenanceWindow) int {
	count := 0
	for _, a := range window.Anomalies {
		if a.IsResolved() {
			count++
		}
	}
	return count
}

// BuildOpportunity assembles the summary card for a window, including the
// deep link into the full REX editor.
func BuildOpportunity(window *entity.MaintenanceWindow, rexCount int, editorBaseURL string) *entity.RexOpportunity {
	return &entity.RexOpportunity{
		WindowID:      window.ID,
		WindowTitle:   window.Title,
		AnomalyCount:  len(window.Anomalies),
		ResolvedCount: ResolvedAnomalyCount(window),
		RexCount:      rexCount,
		EditorURL:     utils.EditorDeepLink(editorBaseURL, window.ID),
	}
}
