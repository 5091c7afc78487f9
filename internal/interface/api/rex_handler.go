package api

import (
	"errors"
	"net/http"
	"time"

	"rexlog-service/internal/domain/entity"
	"rexlog-service/internal/domain/repository"
	"rexlog-service/internal/usecase"
	"rexlog-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// RexHandler exposes the REX record endpoints
type RexHandler struct {
	service *usecase.RexService
	logger  logger.Logger
}

// NewRexHandler creates a new REX handler
func NewRexHandler(service *usecase.RexService, logger logger.Logger) *RexHandler {
	return &RexHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the handler's routes
func (h *RexHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/windows/{windowID}", func(r chi.Router) {
		r.Post("/rex", h.CreateRex)
		r.Get("/rex", h.ListRex)
		r.Get("/opportunity", h.GetOpportunity)
	})
}

// OpportunityResponse wraps the opportunity card; Opportunity is false when
// the window does not deserve a prompt.
type OpportunityResponse struct {
	Opportunity bool                   `json:"opportunity"`
	Card        *entity.RexOpportunity `json:"card,omitempty"`
}

// CreateRex handles POST /api/v1/windows/{windowID}/rex
func (h *RexHandler) CreateRex(w http.ResponseWriter, r *http.Request) {
	windowID := chi.URLParam(r, "windowID")

	author := r.Header.Get("X-User-Id")
	if author == "" {
		Fail(w, r, http.StatusBadRequest, "missing X-User-Id header")
		return
	}

	var input entity.RexInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.CreateRex(r.Context(), windowID, input, author)
	if err != nil {
		var vErr *usecase.ValidationError
		switch {
		case errors.As(err, &vErr):
			Fail(w, r, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, repository.ErrWindowNotFound):
			Fail(w, r, http.StatusNotFound, "maintenance window not found")
		default:
			h.logger.Error("Failed to create REX record", "windowId", windowID, "error", err)
			Fail(w, r, http.StatusInternalServerError, "failed to create REX record")
		}
		return
	}

	Created(w, r, record)
}

// ListRex handles GET /api/v1/windows/{windowID}/rex
func (h *RexHandler) ListRex(w http.ResponseWriter, r *http.Request) {
	windowID := chi.URLParam(r, "windowID")

	records, err := h.service.ListByWindow(r.Context(), windowID)
	if err != nil {
		h.logger.Error("Failed to list REX records", "windowId", windowID, "error", err)
		Fail(w, r, http.StatusInternalServerError, "failed to list REX records")
		return
	}

	OK(w, r, records)
}

// GetOpportunity handles GET /api/v1/windows/{windowID}/opportunity
func (h *RexHandler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	windowID := chi.URLParam(r, "windowID")

	card, err := h.service.OpportunityForWindow(r.Context(), windowID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrWindowNotFound) {
			Fail(w, r, http.StatusNotFound, "maintenance window not found")
			return
		}
		h.logger.Error("Failed to evaluate opportunity", "windowId", windowID, "error", err)
		Fail(w, r, http.StatusInternalServerError, "failed to evaluate opportunity")
		return
	}

	OK(w, r, &OpportunityResponse{
		Opportunity: card != nil,
		Card:        card,
	})
}
