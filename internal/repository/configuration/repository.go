package configuration

import (
	"context"

	"casecraft/internal/domain"
)

// CreateInput holds the fields known right after the first upload.
type CreateInput struct {
	Width         int
	Height        int
	ImageURL      string
	ImagePublicID string
}

// SaveOptionsInput persists the selected option tokens together with the
// composited artifact reference. Values are validated by the service
// before they reach the repository.
type SaveOptionsInput struct {
	Color           string
	Model           string
	Material        string
	Finish          string
	CroppedImageURL string
	CroppedPublicID string
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Configuration, error)
	GetByID(ctx context.Context, id string) (*domain.Configuration, error)
	SetImage(ctx context.Context, id string, in CreateInput) (*domain.Configuration, error)
	SaveOptions(ctx context.Context, id string, in SaveOptionsInput) (*domain.Configuration, error)
}
