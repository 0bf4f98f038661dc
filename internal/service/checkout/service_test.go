package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"casecraft/internal/domain"
	"casecraft/internal/payments"
	orderrepo "casecraft/internal/repository/order"

	"github.com/stripe/stripe-go/v76"
)

type stubConfigRepo struct {
	cfg *domain.Configuration
	err error
}

func (s *stubConfigRepo) GetByID(_ context.Context, _ string) (*domain.Configuration, error) {
	return s.cfg, s.err
}

type stubUserRepo struct {
	user      *domain.User
	err       error
	lastEmail string
}

func (s *stubUserRepo) UpsertByEmail(_ context.Context, email string) (*domain.User, error) {
	s.lastEmail = email
	return s.user, s.err
}

type stubOrderRepo struct {
	existing    *domain.Order
	existingErr error
	created     *domain.Order
	createErr   error
	lastCreate  orderrepo.CreateOrderInput
	createCalls int
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.createCalls++
	s.lastCreate = in
	return s.created, s.createErr
}

func (s *stubOrderRepo) GetUnpaidByConfiguration(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.existing, s.existingErr
}

type stubSessions struct {
	session *stripe.CheckoutSession
	err     error
	lastIn  payments.CheckoutSessionInput
	calls   int
}

func (s *stubSessions) CreateCheckoutSession(_ context.Context, in payments.CheckoutSessionInput) (*stripe.CheckoutSession, error) {
	s.calls++
	s.lastIn = in
	return s.session, s.err
}

func configuredConfig() *domain.Configuration {
	return &domain.Configuration{
		ID:              "cfg-1",
		ImageURL:        "https://img.example/src.png",
		CroppedImageURL: "https://img.example/cropped.png",
		Color:           "black",
		Model:           "iphone15",
		Material:        "polycarbonate",
		Finish:          "textured",
	}
}

func TestCreateRequiresEmail(t *testing.T) {
	svc := New(&stubConfigRepo{}, &stubUserRepo{}, &stubOrderRepo{}, &stubSessions{}, "https://shop.example")
	_, err := svc.Create(context.Background(), CreateInput{ConfigurationID: "cfg-1", Email: "  "})
	if err == nil || err.Error() != "email required" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestCreateRejectsIncompleteConfiguration(t *testing.T) {
	cfg := configuredConfig()
	cfg.Finish = ""
	svc := New(&stubConfigRepo{cfg: cfg}, &stubUserRepo{}, &stubOrderRepo{}, &stubSessions{}, "https://shop.example")
	_, err := svc.Create(context.Background(), CreateInput{ConfigurationID: "cfg-1", Email: "a@b.c"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCreateComputesAmountAndMetadata(t *testing.T) {
	users := &stubUserRepo{user: &domain.User{ID: "user-1", Email: "a@b.c"}}
	orders := &stubOrderRepo{
		existingErr: domain.ErrNotFound,
		created:     &domain.Order{ID: "ord-1", AmountCents: 2200},
	}
	sessions := &stubSessions{session: &stripe.CheckoutSession{URL: "https://pay.example/s1"}}
	svc := New(&stubConfigRepo{cfg: configuredConfig()}, users, orders, sessions, "https://shop.example/")

	res, err := svc.Create(context.Background(), CreateInput{ConfigurationID: "cfg-1", Email: "A@B.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OrderID != "ord-1" || res.URL != "https://pay.example/s1" || res.AmountCents != 2200 {
		t.Fatalf("unexpected result: %+v", res)
	}
	// polycarbonate (500) + textured (300) on the 1400 base
	if orders.lastCreate.AmountCents != 2200 {
		t.Fatalf("amount = %d, want 2200", orders.lastCreate.AmountCents)
	}
	if users.lastEmail != "a@b.c" {
		t.Fatalf("email not normalized: %q", users.lastEmail)
	}
	if sessions.lastIn.OrderID != "ord-1" || sessions.lastIn.UserID != "user-1" {
		t.Fatalf("session metadata incomplete: %+v", sessions.lastIn)
	}
	if sessions.lastIn.ImageURL != "https://img.example/cropped.png" {
		t.Fatalf("expected cropped image on the session, got %q", sessions.lastIn.ImageURL)
	}
	if !strings.Contains(sessions.lastIn.SuccessURL, "orderId=ord-1") {
		t.Fatalf("unexpected success url: %q", sessions.lastIn.SuccessURL)
	}
}

func TestCreateReusesUnpaidOrder(t *testing.T) {
	orders := &stubOrderRepo{existing: &domain.Order{ID: "ord-old", AmountCents: 2200}}
	sessions := &stubSessions{session: &stripe.CheckoutSession{URL: "https://pay.example/s2"}}
	svc := New(
		&stubConfigRepo{cfg: configuredConfig()},
		&stubUserRepo{user: &domain.User{ID: "user-1", Email: "a@b.c"}},
		orders,
		sessions,
		"https://shop.example",
	)

	res, err := svc.Create(context.Background(), CreateInput{ConfigurationID: "cfg-1", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OrderID != "ord-old" {
		t.Fatalf("expected reused order, got %+v", res)
	}
	if orders.createCalls != 0 {
		t.Fatalf("no new order may be created when an unpaid one exists")
	}
}

func TestCreateSessionFailureLeavesOrderUnpaid(t *testing.T) {
	orders := &stubOrderRepo{existing: &domain.Order{ID: "ord-1", AmountCents: 1400}}
	sessions := &stubSessions{err: errors.New("stripe down")}
	svc := New(
		&stubConfigRepo{cfg: configuredConfig()},
		&stubUserRepo{user: &domain.User{ID: "user-1", Email: "a@b.c"}},
		orders,
		sessions,
		"https://shop.example",
	)

	_, err := svc.Create(context.Background(), CreateInput{ConfigurationID: "cfg-1", Email: "a@b.c"})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
