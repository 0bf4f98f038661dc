package webhookevent

import (
	"context"
	"errors"
	"os"
	"testing"

	"casecraft/internal/domain"
	"casecraft/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_DuplicateAndReleaseIntegration(t *testing.T) {
	ctx := context.Background()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE webhook_events`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	repo := NewPostgres(pool)
	ev := domain.WebhookEvent{EventID: "evt_1", Type: "checkout.session.completed"}

	if err := repo.Create(ctx, ev); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, ev); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate Create: expected ErrAlreadyExists, got %v", err)
	}

	if err := repo.Delete(ctx, ev.EventID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Create(ctx, ev); err != nil {
		t.Fatalf("Create after release: %v", err)
	}
}
