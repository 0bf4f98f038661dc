package payments

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client creates hosted checkout sessions.
type Client struct {
	api *client.API
}

func NewClient(apiKey string) *Client {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Client{api: api}
}

// CheckoutSessionInput carries everything a hosted payment page needs.
// OrderID and UserID travel in the session metadata so the webhook can
// resolve the order on completion.
type CheckoutSessionInput struct {
	OrderID     string
	UserID      string
	Email       string
	ProductName string
	ImageURL    string
	AmountCents int64
	SuccessURL  string
	CancelURL   string
}

func (c *Client) CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*stripe.CheckoutSession, error) {
	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(in.ProductName),
	}
	if in.ImageURL != "" {
		productData.Images = stripe.StringSlice([]string{in.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(in.SuccessURL),
		CancelURL:          stripe.String(in.CancelURL),
		CustomerEmail:      stripe.String(in.Email),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		BillingAddressCollection: stripe.String(
			string(stripe.CheckoutSessionBillingAddressCollectionRequired),
		),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US", "GB", "DE", "IN"}),
		},
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount:  stripe.Int64(in.AmountCents),
				ProductData: productData,
			},
		}},
	}
	params.AddMetadata("orderId", in.OrderID)
	params.AddMetadata("userId", in.UserID)

	return c.api.CheckoutSessions.New(params)
}
