package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"casecraft/internal/domain"
	"casecraft/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_LifecycleIntegration(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	configID := insertConfiguration(ctx, t, pool)
	userID := insertUser(ctx, t, pool, "buyer@example.com")

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, CreateOrderInput{
		ConfigurationID: configID,
		UserID:          userID,
		AmountCents:     2200,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.IsPaid || created.Status != domain.OrderStatusAwaitingShipment {
		t.Fatalf("unexpected new order %+v", created)
	}

	unpaid, err := repo.GetUnpaidByConfiguration(ctx, configID, userID)
	if err != nil {
		t.Fatalf("GetUnpaidByConfiguration: %v", err)
	}
	if unpaid.ID != created.ID {
		t.Fatalf("expected the freshly created order, got %+v", unpaid)
	}

	addr := domain.Address{
		Name:       "Jamie Doe",
		Street:     "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62704",
		Country:    "US",
	}
	paid, err := repo.MarkPaid(ctx, created.ID, addr, addr)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if !paid.IsPaid || paid.ShippingAddressID == nil || paid.BillingAddressID == nil {
		t.Fatalf("paid order incomplete %+v", paid)
	}

	if _, err := repo.MarkPaid(ctx, created.ID, addr, addr); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("second MarkPaid: expected ErrAlreadyExists, got %v", err)
	}

	if _, err := repo.GetUnpaidByConfiguration(ctx, configID, userID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("no unpaid order should remain, got %v", err)
	}

	if _, err := repo.MarkPaid(ctx, "00000000-0000-0000-0000-000000000000", addr, addr); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown order: expected ErrNotFound, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE webhook_events, orders, addresses, users, configurations RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func insertConfiguration(ctx context.Context, t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO configurations (width, height, image_url, image_public_id)
VALUES (800, 1200, 'https://example.com/u.png', 'casecraft/uploads/u')
RETURNING id::text`).Scan(&id)
	if err != nil {
		t.Fatalf("insert configuration: %v", err)
	}
	return id
}

func insertUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `INSERT INTO users (email) VALUES ($1) RETURNING id::text`, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}
