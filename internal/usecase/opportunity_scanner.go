package usecase

import (
	"context"
	"time"

	"rexlog-service/internal/domain/repository"
	"rexlog-service/pkg/logger"
	"rexlog-service/pkg/metrics"
)

// OpportunityScanner periodically looks for finished maintenance windows
// that have anomalies but no REX record yet, and pushes a prompt to the
// notification service. Notifications are fire-and-forget: a failed push is
// logged and retried on the next scan.
type OpportunityScanner struct {
	windowRepo    repository.MaintenanceWindowRepository
	rexRepo       repository.RexRepository
	notifier      repository.NotifierRepository
	metrics       *metrics.Metrics
	logger        logger.Logger
	editorBaseURL string
	batchSize     int

	// windows already notified in this process lifetime; only the scan
	// goroutine touches it
	notified map[string]bool
}

// NewOpportunityScanner creates a new opportunity scanner
func NewOpportunityScanner(
	windowRepo repository.MaintenanceWindowRepository,
	rexRepo repository.RexRepository,
	notifier repository.NotifierRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	editorBaseURL string,
	batchSize int,
) *OpportunityScanner {
	return &OpportunityScanner{
		windowRepo:    windowRepo,
		rexRepo:       rexRepo,
		notifier:      notifier,
		metrics:       m,
		logger:        logger,
		editorBaseURL: editorBaseURL,
		batchSize:     batchSize,
		notified:      make(map[string]bool),
	}
}

// ScanOnce runs a single pass over finished windows
func (s *OpportunityScanner) ScanOnce(ctx context.Context) error {
	started := time.Now()
	defer func() {
		s.metrics.ScanDuration.Observe(time.Since(started).Seconds())
	}()

	now := time.Now().UTC()
	windows, err := s.windowRepo.ListFinished(ctx, now, s.batchSize)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("scan_windows").Inc()
		return err
	}

	for _, window := range windows {
		if s.notified[window.ID] {
			continue
		}
		if !IsOpportunity(window, now) {
			continue
		}

		count, err := s.rexRepo.CountByWindow(ctx, window.ID)
		if err != nil {
			s.logger.Error("Failed to count REX records", "windowId", window.ID, "error", err)
			s.metrics.ErrorsCount.WithLabelValues("count_rex").Inc()
			continue
		}
		if count > 0 {
			// Someone already captured a REX; no prompt needed
			s.notified[window.ID] = true
			continue
		}

		opp := BuildOpportunity(window, 0, s.editorBaseURL)
		taskID, err := s.notifier.NotifyOpportunity(ctx, opp)
		if err != nil {
			s.logger.Error("Failed to notify REX opportunity", "windowId", window.ID, "error", err)
			s.metrics.ErrorsCount.WithLabelValues("notify_opportunity").Inc()
			continue
		}

		s.notified[window.ID] = true
		s.metrics.OpportunitiesNotified.Inc()
		s.logger.Info("REX opportunity notified",
			"windowId", window.ID,
			"windowTitle", opp.WindowTitle,
			"taskId", taskID)
	}

	return nil
}

// Run scans on a fixed interval until the context is cancelled
func (s *OpportunityScanner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Opportunity scanner stopped")
			return
		case <-ticker.C:
			if err := s.ScanOnce(ctx); err != nil {
				s.logger.Error("Opportunity scan failed", "error", err)
			}
		}
	}
}
