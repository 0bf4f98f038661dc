package configuration

import (
	"context"
	"errors"

	"casecraft/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Option and cropped-artifact columns are NULL until the design step
// saves them; they coalesce to the empty string domain encoding.
const configurationColumns = `id::text, width, height, image_url, image_public_id,
	COALESCE(cropped_image_url, ''), COALESCE(cropped_public_id, ''),
	COALESCE(color, ''), COALESCE(model, ''), COALESCE(material, ''), COALESCE(finish, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Configuration, error) {
	const q = `
INSERT INTO configurations (width, height, image_url, image_public_id)
VALUES ($1, $2, $3, $4)
RETURNING ` + configurationColumns
	return r.scan(r.pool.QueryRow(ctx, q, in.Width, in.Height, in.ImageURL, in.ImagePublicID))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Configuration, error) {
	const q = `
SELECT ` + configurationColumns + `
FROM configurations
WHERE id = $1
`
	return r.scan(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) SetImage(ctx context.Context, id string, in CreateInput) (*domain.Configuration, error) {
	const q = `
UPDATE configurations
SET width = $2, height = $3, image_url = $4, image_public_id = $5
WHERE id = $1
RETURNING ` + configurationColumns
	return r.scan(r.pool.QueryRow(ctx, q, id, in.Width, in.Height, in.ImageURL, in.ImagePublicID))
}

func (r *postgresRepo) SaveOptions(ctx context.Context, id string, in SaveOptionsInput) (*domain.Configuration, error) {
	const q = `
UPDATE configurations
SET color = $2, model = $3, material = $4, finish = $5, cropped_image_url = $6, cropped_public_id = $7
WHERE id = $1
RETURNING ` + configurationColumns
	return r.scan(r.pool.QueryRow(ctx, q, id, in.Color, in.Model, in.Material, in.Finish, in.CroppedImageURL, in.CroppedPublicID))
}

func (r *postgresRepo) scan(row pgx.Row) (*domain.Configuration, error) {
	var c domain.Configuration
	err := row.Scan(
		&c.ID,
		&c.Width,
		&c.Height,
		&c.ImageURL,
		&c.ImagePublicID,
		&c.CroppedImageURL,
		&c.CroppedPublicID,
		&c.Color,
		&c.Model,
		&c.Material,
		&c.Finish,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
