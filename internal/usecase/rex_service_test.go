package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"rexlog-service/internal/domain/entity"
	"rexlog-service/internal/domain/repository"
	"rexlog-service/pkg/logger"
	"rexlog-service/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// one shared metrics instance: promauto registers on the default registry
var testMetrics = metrics.NewMetrics("rexlog_test")

type stubWindowRepo struct {
	windows map[string]*entity.MaintenanceWindow
}

func (s *stubWindowRepo) GetByID(_ context.Context, id string) (*entity.MaintenanceWindow, error) {
	w, ok := s.windows[id]
	if !ok {
		return nil, repository.ErrWindowNotFound
	}
	return w, nil
}

func (s *stubWindowRepo) ListFinished(_ context.Context, before time.Time, limit int) ([]*entity.MaintenanceWindow, error) {
	var out []*entity.MaintenanceWindow
	for _, w := range s.windows {
		if w.IsFinished(before) && len(out) < limit {
			out = append(out, w)
		}
	}
	return out, nil
}

type memRexRepo struct {
	records   []*entity.ReturnOfExperience
	createErr error
}

func (m *memRexRepo) Create(_ context.Context, rex *entity.ReturnOfExperience) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, rex)
	return nil
}

func (m *memRexRepo) FindByID(_ context.Context, id string) (*entity.ReturnOfExperience, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memRexRepo) ListByWindow(_ context.Context, windowID string) ([]*entity.ReturnOfExperience, error) {
	out := make([]*entity.ReturnOfExperience, 0)
	for _, r := range m.records {
		if r.WindowID == windowID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRexRepo) CountByWindow(ctx context.Context, windowID string) (int64, error) {
	records, _ := m.ListByWindow(ctx, windowID)
	return int64(len(records)), nil
}

type stubNotifier struct {
	calls []*entity.RexOpportunity
	err   error
}

func (s *stubNotifier) NotifyOpportunity(_ context.Context, opp *entity.RexOpportunity) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.calls = append(s.calls, opp)
	return fmt.Sprintf("task-%d", len(s.calls)), nil
}

func completedWindow(id, title string, anomalyStatuses ...string) *entity.MaintenanceWindow {
	w := &entity.MaintenanceWindow{
		ID:            id,
		Title:         title,
		ScheduleStart: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		ScheduleEnd:   time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		Status:        entity.WindowStatusCompleted,
	}
	for i, status := range anomalyStatuses {
		w.Anomalies = append(w.Anomalies, entity.Anomaly{
			ID:       fmt.Sprintf("an-%d", i+1),
			WindowID: id,
			Status:   status,
		})
	}
	return w
}

func newTestService(windowRepo *stubWindowRepo, rexRepo *memRexRepo) *RexService {
	svc := NewRexService(windowRepo, rexRepo, testMetrics, logger.NewNopLogger(), "https://app.example.com/rex/new")
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestBuildRecord(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	t.Run("missing summary", func(t *testing.T) {
		_, err := BuildRecord("mw-1", entity.RexInput{RootCause: "bearing wear"}, "u-7", now)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "summary", vErr.Field)
	})

	t.Run("whitespace root cause", func(t *testing.T) {
		_, err := BuildRecord("mw-1", entity.RexInput{Summary: "pump failure", RootCause: "   "}, "u-7", now)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "rootCause", vErr.Field)
	})

	t.Run("valid input", func(t *testing.T) {
		record, err := BuildRecord("mw-1", entity.RexInput{
			Summary:        "pump failure on line 3",
			RootCause:      "bearing wear",
			LessonsLearned: "inspect bearings quarterly",
		}, "u-7", now)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(record.ID, entity.RexIDPrefix))
		assert.Equal(t, "mw-1", record.WindowID)
		assert.Equal(t, "u-7", record.CreatedBy)
		assert.Equal(t, now, record.CreatedAt)
		assert.NotNil(t, record.Attachments)
		assert.Empty(t, record.Attachments)
		assert.Empty(t, record.CorrectionAction)
	})

	t.Run("ids do not collide", func(t *testing.T) {
		a, err := BuildRecord("mw-1", entity.RexInput{Summary: "s", RootCause: "r"}, "u-7", now)
		require.NoError(t, err)
		b, err := BuildRecord("mw-1", entity.RexInput{Summary: "s", RootCause: "r"}, "u-7", now)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestFilterByWindow(t *testing.T) {
	window := &entity.MaintenanceWindow{ID: "mw-1", Title: "Line 3 overhaul"}

	mine := &entity.ReturnOfExperience{ID: "rex_a", WindowID: "mw-1", Summary: "pump failure"}
	other := &entity.ReturnOfExperience{ID: "rex_b", WindowID: "mw-2", Summary: "Line 3 overhaul findings"}
	legacyByTitle := &entity.ReturnOfExperience{ID: "rex_c", Summary: "notes from Line 3 overhaul"}
	legacyByID := &entity.ReturnOfExperience{ID: "rex_mw-1_legacy", Summary: "old notes"}
	legacyUnrelated := &entity.ReturnOfExperience{ID: "rex_d", Summary: "boiler inspection"}

	records := []*entity.ReturnOfExperience{mine, other, legacyByTitle, legacyByID, legacyUnrelated}

	matched := FilterByWindow(records, window)

	// order preserved, explicit windowId wins over summary content
	require.Len(t, matched, 3)
	assert.Same(t, mine, matched[0])
	assert.Same(t, legacyByTitle, matched[1])
	assert.Same(t, legacyByID, matched[2])
	assert.Len(t, records, 5)
}

func TestFilterByWindowEmptyWindowID(t *testing.T) {
	// a window without an id must not vacuum up every legacy record
	window := &entity.MaintenanceWindow{Title: ""}
	legacy := &entity.ReturnOfExperience{ID: "rex_x", Summary: "anything"}

	matched := FilterByWindow([]*entity.ReturnOfExperience{legacy}, window)
	assert.Empty(t, matched)
}

func TestLastRecordTimestamp(t *testing.T) {
	_, ok := LastRecordTimestamp(nil)
	assert.False(t, ok)

	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// relies on input order, never sorts
	last, ok := LastRecordTimestamp([]*entity.ReturnOfExperience{
		{ID: "rex_1", CreatedAt: late},
		{ID: "rex_2", CreatedAt: early},
	})
	require.True(t, ok)
	assert.Equal(t, early, last)
}

func TestCreateRex(t *testing.T) {
	windowRepo := &stubWindowRepo{windows: map[string]*entity.MaintenanceWindow{
		"mw-1": completedWindow("mw-1", "Line 3 overhaul", entity.AnomalyStatusClosed),
	}}

	t.Run("success stores exactly one record", func(t *testing.T) {
		rexRepo := &memRexRepo{}
		svc := newTestService(windowRepo, rexRepo)

		record, err := svc.CreateRex(context.Background(), "mw-1", entity.RexInput{
			Summary:   "pump failure",
			RootCause: "bearing wear",
		}, "u-7")
		require.NoError(t, err)

		require.Len(t, rexRepo.records, 1)
		assert.Same(t, record, rexRepo.records[0])
		assert.Equal(t, "mw-1", record.WindowID)
	})

	t.Run("unknown window", func(t *testing.T) {
		rexRepo := &memRexRepo{}
		svc := newTestService(windowRepo, rexRepo)

		_, err := svc.CreateRex(context.Background(), "mw-404", entity.RexInput{
			Summary:   "pump failure",
			RootCause: "bearing wear",
		}, "u-7")
		assert.ErrorIs(t, err, repository.ErrWindowNotFound)
		assert.Empty(t, rexRepo.records)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		rexRepo := &memRexRepo{}
		svc := newTestService(windowRepo, rexRepo)

		_, err := svc.CreateRex(context.Background(), "mw-1", entity.RexInput{RootCause: "bearing wear"}, "u-7")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Empty(t, rexRepo.records)
	})
}

func TestOpportunityForWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	t.Run("finished window with records", func(t *testing.T) {
		windowRepo := &stubWindowRepo{windows: map[string]*entity.MaintenanceWindow{
			"mw-1": completedWindow("mw-1", "Line 3 overhaul",
				entity.AnomalyStatusClosed, entity.AnomalyStatusOpen, entity.AnomalyStatusTreated),
		}}
		lastAt := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
		rexRepo := &memRexRepo{records: []*entity.ReturnOfExperience{
			{ID: "rex_1", WindowID: "mw-1", CreatedAt: time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)},
			{ID: "rex_2", WindowID: "mw-1", CreatedAt: lastAt},
		}}
		svc := newTestService(windowRepo, rexRepo)

		card, err := svc.OpportunityForWindow(context.Background(), "mw-1", now)
		require.NoError(t, err)
		require.NotNil(t, card)

		assert.Equal(t, "mw-1", card.WindowID)
		assert.Equal(t, "Line 3 overhaul", card.WindowTitle)
		assert.Equal(t, 3, card.AnomalyCount)
		assert.Equal(t, 2, card.ResolvedCount)
		assert.Equal(t, 2, card.RexCount)
		require.NotNil(t, card.LastRexAt)
		assert.Equal(t, lastAt, *card.LastRexAt)
		assert.Equal(t, "https://app.example.com/rex/new?source=maintenance&windowId=mw-1", card.EditorURL)
	})

	t.Run("window still in progress", func(t *testing.T) {
		w := completedWindow("mw-2", "Boiler check", entity.AnomalyStatusOpen)
		w.Status = entity.WindowStatusInProgress
		w.ScheduleEnd = now.Add(24 * time.Hour)
		windowRepo := &stubWindowRepo{windows: map[string]*entity.MaintenanceWindow{"mw-2": w}}
		svc := newTestService(windowRepo, &memRexRepo{})

		card, err := svc.OpportunityForWindow(context.Background(), "mw-2", now)
		require.NoError(t, err)
		assert.Nil(t, card)
	})
}
