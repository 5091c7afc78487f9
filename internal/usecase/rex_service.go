package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rexlog-service/internal/domain/entity"
	"rexlog-service/internal/domain/repository"
	"rexlog-service/pkg/logger"
	"rexlog-service/pkg/metrics"

	"github.com/google/uuid"
)

// ValidationError is returned when a mandatory REX field is missing
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is required", e.Field)
}

// NewRexID generates a record id. The legacy front-end derived ids from the
// wall clock, which collides under concurrent creation; a UUID behind the
// same prefix keeps existing consumers working.
func NewRexID() string {
	return entity.RexIDPrefix + uuid.NewString()
}

// BuildRecord constructs a new REX record from submitted form input.
// Summary and root cause must be non-blank; author is the identifier of the
// submitting user. Pure construction, nothing is persisted here.
func BuildRecord(windowID string, input entity.RexInput, author string, now time.Time) (*entity.ReturnOfExperience, error) {
	if strings.TrimSpace(input.Summary) == "" {
		return nil, &ValidationError{Field: "summary"}
	}
	if strings.TrimSpace(input.RootCause) == "" {
		return nil, &ValidationError{Field: "rootCause"}
	}

	return &entity.ReturnOfExperience{
		ID:               NewRexID(),
		WindowID:         windowID,
		Summary:          input.Summary,
		RootCause:        input.RootCause,
		CorrectionAction: input.CorrectionAction,
		PreventiveAction: input.PreventiveAction,
		LessonsLearned:   input.LessonsLearned,
		Recommendations:  input.Recommendations,
		Attachments:      []entity.Attachment{},
		CreatedBy:        author,
		CreatedAt:        now,
	}, nil
}

// FilterByWindow returns the records belonging to window, preserving input
// order and leaving inputs untouched. Records carrying a windowId match on
// it exactly; legacy records with an empty windowId fall back to the old
// heuristic in matchesLegacy.
func FilterByWindow(records []*entity.ReturnOfExperience, window *entity.MaintenanceWindow) []*entity.ReturnOfExperience {
	matched := make([]*entity.ReturnOfExperience, 0, len(records))
	for _, r := range records {
		if r.WindowID != "" {
			if r.WindowID == window.ID {
				matched = append(matched, r)
			}
			continue
		}
		if matchesLegacy(r, window) {
			matched = append(matched, r)
		}
	}
	return matched
}

// matchesLegacy reproduces the association heuristic used before records
// carried a windowId: the window title appearing inside the summary, or the
// window id appearing inside the record id. A window without an id matches
// nothing; the old behavior matched every record in that case.
func matchesLegacy(r *entity.ReturnOfExperience, w *entity.MaintenanceWindow) bool {
	if w.Title != "" && strings.Contains(r.Summary, w.Title) {
		return true
	}
	if w.ID != "" && strings.Contains(r.ID, w.ID) {
		return true
	}
	return false
}

// LastRecordTimestamp returns the creation time of the last record by input
// order. It does not sort; callers are expected to pass records ordered the
// way the store returned them.
func LastRecordTimestamp(records []*entity.ReturnOfExperience) (time.Time, bool) {
	if len(records) == 0 {
		return time.Time{}, false
	}
	return records[len(records)-1].CreatedAt, true
}

// RexService handles creation and retrieval of REX records
type RexService struct {
	windowRepo    repository.MaintenanceWindowRepository
	rexRepo       repository.RexRepository
	metrics       *metrics.Metrics
	logger        logger.Logger
	editorBaseURL string
	now           func() time.Time
}

// NewRexService creates a new REX service
func NewRexService(
	windowRepo repository.MaintenanceWindowRepository,
	rexRepo repository.RexRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	editorBaseURL string,
) *RexService {
	return &RexService{
		windowRepo:    windowRepo,
		rexRepo:       rexRepo,
		metrics:       m,
		logger:        logger,
		editorBaseURL: editorBaseURL,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateRex validates the input against the target window and persists a new
// record. Exactly one Create call reaches the store per successful
// submission; on validation failure nothing is written.
func (s *RexService) CreateRex(ctx context.Context, windowID string, input entity.RexInput, author string) (*entity.ReturnOfExperience, error) {
	window, err := s.windowRepo.GetByID(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("load window %s: %w", windowID, err)
	}

	record, err := BuildRecord(window.ID, input, author, s.now())
	if err != nil {
		s.metrics.ValidationFailures.Inc()
		return nil, err
	}

	if err := s.rexRepo.Create(ctx, record); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("create_rex").Inc()
		return nil, fmt.Errorf("store rex record: %w", err)
	}

	s.metrics.RexCreated.Inc()
	s.logger.Info("REX record created",
		"rexId", record.ID,
		"windowId", window.ID,
		"createdBy", author)

	return record, nil
}

// ListByWindow returns the records for a window, oldest first
func (s *RexService) ListByWindow(ctx context.Context, windowID string) ([]*entity.ReturnOfExperience, error) {
	records, err := s.rexRepo.ListByWindow(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("list rex records for window %s: %w", windowID, err)
	}
	return records, nil
}

// OpportunityForWindow evaluates whether window deserves a REX prompt.
// Returns nil when no opportunity applies.
func (s *RexService) OpportunityForWindow(ctx context.Context, windowID string, now time.Time) (*entity.RexOpportunity, error) {
	window, err := s.windowRepo.GetByID(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("load window %s: %w", windowID, err)
	}

	if !IsOpportunity(window, now) {
		return nil, nil
	}

	records, err := s.rexRepo.ListByWindow(ctx, window.ID)
	if err != nil {
		return nil, fmt.Errorf("list rex records for window %s: %w", window.ID, err)
	}

	opp := BuildOpportunity(window, len(records), s.editorBaseURL)
	if last, ok := LastRecordTimestamp(records); ok {
		opp.LastRexAt = &last
	}
	return opp, nil
}
