package webhookevent

import (
	"context"
	"errors"

	"casecraft/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, ev domain.WebhookEvent) error {
	const q = `
INSERT INTO webhook_events (event_id, event_type)
VALUES ($1, $2)
`
	_, err := r.pool.Exec(ctx, q, ev.EventID, ev.Type)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, eventID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM webhook_events WHERE event_id = $1`, eventID)
	return err
}
