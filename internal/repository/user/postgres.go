package user

import (
	"context"
	"errors"
	"strings"

	"casecraft/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) UpsertByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
INSERT INTO users (email)
VALUES (lower($1))
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id::text, email, created_at
`
	return r.scan(r.pool.QueryRow(ctx, q, strings.TrimSpace(email)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, email, created_at
FROM users
WHERE id = $1
`
	return r.scan(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) scan(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
