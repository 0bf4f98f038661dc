package webhookevent

import (
	"context"

	"casecraft/internal/domain"
)

// Repository tracks processed provider event ids. The payment provider
// delivers at least once; a recorded id lets a re-delivery short-circuit
// before any order mutation or email dispatch.
type Repository interface {
	// Create records an event id; a duplicate yields domain.ErrAlreadyExists.
	Create(ctx context.Context, ev domain.WebhookEvent) error
	// Delete releases an event id after a mid-flight failure so the
	// provider's retry is processed instead of swallowed.
	Delete(ctx context.Context, eventID string) error
}
