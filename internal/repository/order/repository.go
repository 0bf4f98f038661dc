package order

import (
	"context"

	"casecraft/internal/domain"
)

type CreateOrderInput struct {
	ConfigurationID string
	UserID          string
	AmountCents     int64
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// GetUnpaidByConfiguration finds an existing unpaid order for a
	// configuration/user pair so repeated checkouts reuse it.
	GetUnpaidByConfiguration(ctx context.Context, configurationID, userID string) (*domain.Order, error)
	// MarkPaid flips the order to paid and creates exactly one shipping
	// and one billing address record in the same transaction. An order
	// that is already paid yields domain.ErrAlreadyExists.
	MarkPaid(ctx context.Context, orderID string, shipping, billing domain.Address) (*domain.Order, error)
}
