// Package mailer sends transactional email for paid orders.
package mailer

import (
	"context"

	"casecraft/internal/domain"
)

// OrderReceived is the payload for the order confirmation template.
type OrderReceived struct {
	OrderID         string
	OrderDate       string
	ShippingAddress domain.Address
}

// Mailer dispatches a confirmation email. Delivery is fire-and-forget
// beyond the send call's own acknowledgment.
type Mailer interface {
	SendOrderReceived(ctx context.Context, to string, data OrderReceived) error
}
