package domain

import "time"

// Order statuses. Payment state is tracked separately via IsPaid; status
// describes fulfillment and defaults to awaiting shipment.
const (
	OrderStatusAwaitingShipment = "awaiting_shipment"
	OrderStatusShipped          = "shipped"
	OrderStatusFulfilled        = "fulfilled"
)

type Order struct {
	ID                string    `json:"id"`
	ConfigurationID   string    `json:"configurationId"`
	UserID            string    `json:"userId"`
	AmountCents       int64     `json:"amountCents"`
	IsPaid            bool      `json:"isPaid"`
	Status            string    `json:"status"`
	ShippingAddressID *string   `json:"shippingAddressId,omitempty"`
	BillingAddressID  *string   `json:"billingAddressId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Address is a postal address captured from a completed checkout. Shipping
// and billing records share the shape and are created exactly once, on the
// unpaid to paid transition.
type Address struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether every required address field is present.
func (a Address) Complete() bool {
	return a.Name != "" && a.Street != "" && a.City != "" &&
		a.State != "" && a.PostalCode != "" && a.Country != ""
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// WebhookEvent records a processed provider event id so re-deliveries can
// be acknowledged without re-running order mutation or email dispatch.
type WebhookEvent struct {
	EventID     string    `json:"eventId"`
	Type        string    `json:"type"`
	ProcessedAt time.Time `json:"processedAt"`
}
