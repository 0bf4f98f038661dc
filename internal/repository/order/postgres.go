package order

import (
	"context"
	"errors"
	"io"
	"log"

	"casecraft/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, configuration_id::text, user_id::text, amount_cents, is_paid, status, shipping_address_id::text, billing_address_id::text, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	const q = `
INSERT INTO orders (configuration_id, user_id, amount_cents)
VALUES ($1, $2, $3)
RETURNING ` + orderColumns
	return scanOrder(r.pool.QueryRow(ctx, q, in.ConfigurationID, in.UserID, in.AmountCents))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	return scanOrder(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetUnpaidByConfiguration(ctx context.Context, configurationID, userID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE configuration_id = $1 AND user_id = $2 AND NOT is_paid
ORDER BY created_at DESC
LIMIT 1
`
	return scanOrder(r.pool.QueryRow(ctx, q, configurationID, userID))
}

func (r *postgresRepo) MarkPaid(ctx context.Context, orderID string, shipping, billing domain.Address) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	shippingID, err := insertAddress(ctx, tx, shipping)
	if err != nil {
		return nil, err
	}
	billingID, err := insertAddress(ctx, tx, billing)
	if err != nil {
		return nil, err
	}

	const q = `
UPDATE orders
SET is_paid = true,
    shipping_address_id = $2,
    billing_address_id = $3,
    updated_at = now()
WHERE id = $1 AND NOT is_paid
RETURNING ` + orderColumns
	updated, err := scanOrder(tx.QueryRow(ctx, q, orderID, shippingID, billingID))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// 0 rows: either the order is unknown or it is already paid.
		var isPaid bool
		checkErr := tx.QueryRow(ctx, `SELECT is_paid FROM orders WHERE id = $1`, orderID).Scan(&isPaid)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if checkErr != nil {
			return nil, checkErr
		}
		if isPaid {
			r.logger.Printf("order repo: mark paid skipped, order %s already paid", orderID)
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func insertAddress(ctx context.Context, tx pgx.Tx, a domain.Address) (string, error) {
	const q = `
INSERT INTO addresses (name, street, city, state, postal_code, country)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`
	var id string
	err := tx.QueryRow(ctx, q, a.Name, a.Street, a.City, a.State, a.PostalCode, a.Country).Scan(&id)
	return id, err
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var shippingID, billingID *string
	err := row.Scan(
		&o.ID,
		&o.ConfigurationID,
		&o.UserID,
		&o.AmountCents,
		&o.IsPaid,
		&o.Status,
		&shippingID,
		&billingID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.ShippingAddressID = shippingID
	o.BillingAddressID = billingID
	return &o, nil
}
