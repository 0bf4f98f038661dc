package user

import (
	"context"

	"casecraft/internal/domain"
)

// Repository persists storefront users. Checkout creates users lazily by
// email; there is no authentication flow in this service.
type Repository interface {
	UpsertByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
