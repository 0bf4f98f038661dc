// Package checkout turns a finished configuration into an unpaid order
// and a hosted payment session.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casecraft/internal/catalog"
	"casecraft/internal/domain"
	"casecraft/internal/payments"
	orderrepo "casecraft/internal/repository/order"

	"github.com/stripe/stripe-go/v76"
)

var (
	// ErrNotConfigured means the configuration has not saved all four
	// option values yet and cannot be priced.
	ErrNotConfigured = errors.New("configuration is not complete")
	// ErrUpstream wraps payment-provider failures. The order stays
	// unpaid and checkout may be retried.
	ErrUpstream = errors.New("upstream dependency failed")
)

type configRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Configuration, error)
}

type userRepo interface {
	UpsertByEmail(ctx context.Context, email string) (*domain.User, error)
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetUnpaidByConfiguration(ctx context.Context, configurationID, userID string) (*domain.Order, error)
}

type sessionClient interface {
	CreateCheckoutSession(ctx context.Context, in payments.CheckoutSessionInput) (*stripe.CheckoutSession, error)
}

type Service struct {
	configs  configRepo
	users    userRepo
	orders   orderRepo
	sessions sessionClient
	baseURL  string
}

// New builds the checkout service. baseURL is the storefront origin used
// for the success/cancel redirects.
func New(configs configRepo, users userRepo, orders orderRepo, sessions sessionClient, baseURL string) *Service {
	return &Service{
		configs:  configs,
		users:    users,
		orders:   orders,
		sessions: sessions,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

type CreateInput struct {
	ConfigurationID string `json:"configId"`
	Email           string `json:"email"`
}

type Result struct {
	OrderID     string `json:"orderId"`
	URL         string `json:"url"`
	AmountCents int64  `json:"amountCents"`
}

// Create prices the configuration from the catalog, reuses or creates an
// unpaid order, and opens a hosted payment session carrying the order
// and user ids in its metadata.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Result, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}

	cfg, err := s.configs.GetByID(ctx, in.ConfigurationID)
	if err != nil {
		return nil, err
	}
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	material, ok := catalog.MaterialByValue(cfg.Material)
	if !ok {
		return nil, fmt.Errorf("%w: material %q", ErrNotConfigured, cfg.Material)
	}
	finish, ok := catalog.FinishByValue(cfg.Finish)
	if !ok {
		return nil, fmt.Errorf("%w: finish %q", ErrNotConfigured, cfg.Finish)
	}
	amount := catalog.ComputeTotal(material, finish)

	user, err := s.users.UpsertByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetUnpaidByConfiguration(ctx, cfg.ID, user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		order, err = s.orders.Create(ctx, orderrepo.CreateOrderInput{
			ConfigurationID: cfg.ID,
			UserID:          user.ID,
			AmountCents:     amount,
		})
	}
	if err != nil {
		return nil, err
	}

	model, _ := catalog.ModelByValue(cfg.Model)
	imageURL := cfg.CroppedImageURL
	if imageURL == "" {
		imageURL = cfg.ImageURL
	}

	session, err := s.sessions.CreateCheckoutSession(ctx, payments.CheckoutSessionInput{
		OrderID:     order.ID,
		UserID:      user.ID,
		Email:       user.Email,
		ProductName: fmt.Sprintf("Custom %s Case", model.Label),
		ImageURL:    imageURL,
		AmountCents: order.AmountCents,
		SuccessURL:  fmt.Sprintf("%s/thank-you?orderId=%s", s.baseURL, order.ID),
		CancelURL:   fmt.Sprintf("%s/configure/preview?id=%s", s.baseURL, cfg.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrUpstream, err)
	}

	return &Result{OrderID: order.ID, URL: session.URL, AmountCents: order.AmountCents}, nil
}
