package repository

import (
	"context"

	"rexlog-service/internal/domain/entity"
)

// NotifierRepository defines the interface for pushing REX opportunity
// prompts to the notification service. Returns the notification task ID.
type NotifierRepository interface {
	NotifyOpportunity(ctx context.Context, opportunity *entity.RexOpportunity) (string, error)
}
