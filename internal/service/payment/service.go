// Package payment owns the only unpaid-to-paid transition: processing
// the provider's completed-checkout notification.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"casecraft/internal/domain"
	"casecraft/internal/mailer"

	"github.com/stripe/stripe-go/v76"
)

// Kind classifies processing failures so callers can tell what is
// retryable. Signature failures are rejected outright; validation
// failures are fatal for the event; upstream and internal failures may
// succeed on a provider re-delivery.
type Kind int

const (
	KindSignature Kind = iota + 1
	KindValidation
	KindUpstream
	KindInternal
)

// Error is a processing failure tagged with its Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from an error chain, or zero.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

const completedCheckout = "checkout.session.completed"

// Result describes a processed (or deliberately skipped) event.
type Result struct {
	EventID   string
	EventType string
	// Ignored is set for valid events of types this handler does not act
	// on; they are acknowledged so the provider stops retrying.
	Ignored bool
	// Duplicate is set when the event id (or the paid transition itself)
	// was already handled; acknowledged without re-running side effects.
	Duplicate bool
	OrderID   string
}

type verifier interface {
	Verify(payload []byte, sigHeader string) (stripe.Event, error)
}

type orderRepo interface {
	MarkPaid(ctx context.Context, orderID string, shipping, billing domain.Address) (*domain.Order, error)
}

type eventRepo interface {
	Create(ctx context.Context, ev domain.WebhookEvent) error
	Delete(ctx context.Context, eventID string) error
}

type Service struct {
	verifier verifier
	orders   orderRepo
	events   eventRepo
	mail     mailer.Mailer
	logger   *log.Logger
}

func New(verifier verifier, orders orderRepo, events eventRepo, mail mailer.Mailer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{verifier: verifier, orders: orders, events: events, mail: mail, logger: logger}
}

// Process verifies, deduplicates, and applies one provider notification.
// The returned error's Kind tells the HTTP layer how to respond; a nil
// error always means the event may be acknowledged.
func (s *Service) Process(ctx context.Context, payload []byte, sigHeader string) (*Result, error) {
	event, err := s.verifier.Verify(payload, sigHeader)
	if err != nil {
		return nil, &Error{Kind: KindSignature, Err: fmt.Errorf("verify signature: %w", err)}
	}

	res := &Result{EventID: event.ID, EventType: string(event.Type)}
	if event.Type != completedCheckout {
		res.Ignored = true
		return res, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, &Error{Kind: KindValidation, Err: fmt.Errorf("decode checkout session: %w", err)}
	}

	if session.CustomerDetails == nil || session.CustomerDetails.Email == "" {
		return nil, &Error{Kind: KindValidation, Err: errors.New("missing customer email")}
	}
	orderID := session.Metadata["orderId"]
	userID := session.Metadata["userId"]
	if orderID == "" || userID == "" {
		return nil, &Error{Kind: KindValidation, Err: errors.New("missing orderId/userId metadata")}
	}

	shipping, err := shippingAddress(&session)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Err: err}
	}
	billing, err := billingAddress(&session)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Err: err}
	}

	if err := s.events.Create(ctx, domain.WebhookEvent{EventID: event.ID, Type: res.EventType}); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Printf("payment: event %s already processed, acknowledging", event.ID)
			res.Duplicate = true
			return res, nil
		}
		return nil, &Error{Kind: KindInternal, Err: fmt.Errorf("record event: %w", err)}
	}

	order, err := s.orders.MarkPaid(ctx, orderID, shipping, billing)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// paid through another delivery; nothing to redo
			res.Duplicate = true
			return res, nil
		}
		// release the event id so the provider's retry is processed
		if derr := s.events.Delete(ctx, event.ID); derr != nil {
			s.logger.Printf("payment: release event %s failed: %v", event.ID, derr)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &Error{Kind: KindValidation, Err: fmt.Errorf("order %s: %w", orderID, err)}
		}
		return nil, &Error{Kind: KindInternal, Err: fmt.Errorf("mark order %s paid: %w", orderID, err)}
	}
	res.OrderID = order.ID

	if err := s.mail.SendOrderReceived(ctx, session.CustomerDetails.Email, mailer.OrderReceived{
		OrderID:         order.ID,
		OrderDate:       order.CreatedAt.Format("January 2, 2006"),
		ShippingAddress: shipping,
	}); err != nil {
		// the order is paid and the event stays recorded: the retry will
		// be acknowledged as a duplicate instead of double-mutating
		s.logger.Printf("payment: confirmation email for order %s failed: %v", order.ID, err)
		return res, &Error{Kind: KindUpstream, Err: fmt.Errorf("send confirmation email: %w", err)}
	}

	return res, nil
}

func shippingAddress(session *stripe.CheckoutSession) (domain.Address, error) {
	if session.ShippingDetails == nil || session.ShippingDetails.Address == nil {
		return domain.Address{}, errors.New("missing shipping address")
	}
	addr := fromStripeAddress(session.CustomerDetails.Name, session.ShippingDetails.Address)
	if session.ShippingDetails.Name != "" {
		addr.Name = session.ShippingDetails.Name
	}
	if !addr.Complete() {
		return domain.Address{}, errors.New("incomplete shipping address")
	}
	return addr, nil
}

func billingAddress(session *stripe.CheckoutSession) (domain.Address, error) {
	if session.CustomerDetails.Address == nil {
		return domain.Address{}, errors.New("missing billing address")
	}
	addr := fromStripeAddress(session.CustomerDetails.Name, session.CustomerDetails.Address)
	if !addr.Complete() {
		return domain.Address{}, errors.New("incomplete billing address")
	}
	return addr, nil
}

func fromStripeAddress(name string, a *stripe.Address) domain.Address {
	return domain.Address{
		Name:       name,
		Street:     a.Line1,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
