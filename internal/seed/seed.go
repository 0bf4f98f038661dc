package seed

import (
	"context"
	"fmt"

	"casecraft/internal/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed ids keep reruns idempotent: the same demo rows are updated in
// place instead of accumulating.
const (
	demoConfigurationID = "5a9f1c2e-0b57-4a7d-9e2f-3d8c41b6a001"
	demoUserEmail       = "demo@casecraft.example"
)

// Apply inserts demo data for manual testing: a finished configuration
// owned by a demo user, with an unpaid order ready for checkout.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := upsertConfiguration(ctx, pool); err != nil {
		return fmt.Errorf("upsert configuration: %w", err)
	}

	userID, err := ensureUser(ctx, pool, demoUserEmail)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	if err := ensureOrder(ctx, pool, demoConfigurationID, userID); err != nil {
		return fmt.Errorf("ensure order: %w", err)
	}

	return nil
}

func upsertConfiguration(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO configurations (id, width, height, image_url, image_public_id, cropped_image_url, cropped_public_id, color, model, material, finish)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
    color    = EXCLUDED.color,
    model    = EXCLUDED.model,
    material = EXCLUDED.material,
    finish   = EXCLUDED.finish
`
	_, err := pool.Exec(ctx, q,
		demoConfigurationID,
		800, 1200,
		"https://res.cloudinary.com/demo/image/upload/casecraft/uploads/demo.png",
		"casecraft/uploads/demo",
		"https://res.cloudinary.com/demo/image/upload/casecraft/cropped/demo.png",
		"casecraft/cropped/demo",
		"black", "iphone14", "silicone", "smooth",
	)
	return err
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email string) (string, error) {
	const q = `
INSERT INTO users (email)
VALUES (lower($1))
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id::text
`
	var id string
	err := pool.QueryRow(ctx, q, email).Scan(&id)
	return id, err
}

func ensureOrder(ctx context.Context, pool *pgxpool.Pool, configurationID, userID string) error {
	const existsQ = `
SELECT count(*) FROM orders
WHERE configuration_id = $1 AND user_id = $2 AND NOT is_paid
`
	var n int
	if err := pool.QueryRow(ctx, existsQ, configurationID, userID).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	material, _ := catalog.MaterialByValue("silicone")
	finish, _ := catalog.FinishByValue("smooth")
	const insertQ = `
INSERT INTO orders (configuration_id, user_id, amount_cents)
VALUES ($1, $2, $3)
`
	_, err := pool.Exec(ctx, insertQ, configurationID, userID, catalog.ComputeTotal(material, finish))
	return err
}
