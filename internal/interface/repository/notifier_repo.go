package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rexlog-service/internal/domain/entity"
	"rexlog-service/internal/domain/repository"
	"rexlog-service/pkg/logger"
	"rexlog-service/templates"
)

// HTTPNotifierRepository pushes REX opportunity prompts to the notification service
type HTTPNotifierRepository struct {
	logger  logger.Logger
	baseURL string
	client  *http.Client
}

// NewHTTPNotifierRepository creates a new notifier repository. The client is
// expected to carry service auth; a default client is used when nil.
func NewHTTPNotifierRepository(baseURL string, client *http.Client, logger logger.Logger) repository.NotifierRepository {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPNotifierRepository{
		logger:  logger,
		baseURL: baseURL,
		client:  client,
	}
}

type notifyRequest struct {
	Type     string `json:"type"`
	WindowID string `json:"windowId"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Link     string `json:"link"`
}

// NotifyOpportunity sends an opportunity prompt and returns the notification task ID
func (r *HTTPNotifierRepository) NotifyOpportunity(ctx context.Context, opportunity *entity.RexOpportunity) (string, error) {
	req := notifyRequest{
		Type:     "rex_opportunity",
		WindowID: opportunity.WindowID,
		Title:    templates.OpportunityTitle(opportunity),
		Message:  templates.OpportunityMessage(opportunity),
		Link:     opportunity.EditorURL,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications", r.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("notification service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
			Status string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return "", fmt.Errorf("notification rejected: %s (%s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Opportunity notification sent",
		"taskId", response.Data.TaskID,
		"windowId", opportunity.WindowID)

	return response.Data.TaskID, nil
}
