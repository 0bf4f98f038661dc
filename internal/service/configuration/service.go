// Package configuration drives the case customization flow: first
// upload, then finalize, which composites the positioned image against
// the case template and persists the selected options.
package configuration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"casecraft/internal/catalog"
	"casecraft/internal/domain"
	configrepo "casecraft/internal/repository/configuration"
	"casecraft/internal/render"
	"casecraft/internal/storage"
)

var (
	// ErrInvalidOption means an option token does not resolve to a
	// catalog entry. Fatal for the request; nothing is uploaded.
	ErrInvalidOption = errors.New("unknown option value")
	// ErrUpstream wraps storage or fetch failures. The user may retry;
	// local state is untouched.
	ErrUpstream = errors.New("upstream dependency failed")
)

const (
	sourceFolder  = "casecraft/uploads"
	croppedFolder = "casecraft/cropped"
)

type repo interface {
	Create(ctx context.Context, in configrepo.CreateInput) (*domain.Configuration, error)
	GetByID(ctx context.Context, id string) (*domain.Configuration, error)
	SetImage(ctx context.Context, id string, in configrepo.CreateInput) (*domain.Configuration, error)
	SaveOptions(ctx context.Context, id string, in configrepo.SaveOptionsInput) (*domain.Configuration, error)
}

type imageFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

type Service struct {
	repo    repo
	store   storage.Store
	fetcher imageFetcher
	logger  *log.Logger
}

func New(repo configrepo.Repository, store storage.Store, fetcher imageFetcher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, store: store, fetcher: fetcher, logger: logger}
}

// CreateFromUpload stores the source image and creates (or refreshes) a
// configuration record. When configID is empty a new id is minted by the
// repository and returned to the caller, which continues the flow keyed
// by it.
func (s *Service) CreateFromUpload(ctx context.Context, r io.Reader, configID string) (*domain.Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	width, height, err := render.DecodeBounds(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	up, err := s.store.Upload(ctx, bytes.NewReader(data), sourceFolder)
	if err != nil {
		return nil, fmt.Errorf("%w: upload source image: %v", ErrUpstream, err)
	}

	in := configrepo.CreateInput{
		Width:         width,
		Height:        height,
		ImageURL:      up.SecureURL,
		ImagePublicID: up.PublicID,
	}
	if configID == "" {
		return s.repo.Create(ctx, in)
	}
	return s.repo.SetImage(ctx, configID, in)
}

// FinalizeInput is the snapshot taken at "continue" time: the measured
// bounding boxes, the crop transform, and the selected option tokens.
type FinalizeInput struct {
	CaseBox      render.Rect
	ContainerBox render.Rect
	Transform    render.Transform
	Color        string
	Model        string
	Material     string
	Finish       string
}

func (in FinalizeInput) validateOptions() error {
	if _, ok := catalog.ColorByValue(in.Color); !ok {
		return fmt.Errorf("%w: color %q", ErrInvalidOption, in.Color)
	}
	if _, ok := catalog.ModelByValue(in.Model); !ok {
		return fmt.Errorf("%w: model %q", ErrInvalidOption, in.Model)
	}
	if _, ok := catalog.MaterialByValue(in.Material); !ok {
		return fmt.Errorf("%w: material %q", ErrInvalidOption, in.Material)
	}
	if _, ok := catalog.FinishByValue(in.Finish); !ok {
		return fmt.Errorf("%w: finish %q", ErrInvalidOption, in.Finish)
	}
	return nil
}

// Finalize rasterizes the positioned image and persists the selected
// options as a two-step saga: upload the composited artifact, then save
// the option values. If the save fails the uploaded artifact is
// destroyed so no orphan is left behind.
func (s *Service) Finalize(ctx context.Context, configID string, in FinalizeInput) (*domain.Configuration, error) {
	if err := in.validateOptions(); err != nil {
		return nil, err
	}

	cfg, err := s.repo.GetByID(ctx, configID)
	if err != nil {
		return nil, err
	}

	src, err := s.fetcher.Fetch(ctx, cfg.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch source image: %v", ErrUpstream, err)
	}

	composed, err := render.Composite(src, in.CaseBox, in.ContainerBox, in.Transform)
	if err != nil {
		return nil, err
	}
	blob, err := render.EncodePNG(composed)
	if err != nil {
		return nil, err
	}

	up, err := s.store.Upload(ctx, bytes.NewReader(blob), croppedFolder)
	if err != nil {
		return nil, fmt.Errorf("%w: upload composited image: %v", ErrUpstream, err)
	}

	saved, err := s.repo.SaveOptions(ctx, configID, configrepo.SaveOptionsInput{
		Color:           in.Color,
		Model:           in.Model,
		Material:        in.Material,
		Finish:          in.Finish,
		CroppedImageURL: up.SecureURL,
		CroppedPublicID: up.PublicID,
	})
	if err != nil {
		// compensate: the composited upload must not be orphaned
		if derr := s.store.Destroy(ctx, up.PublicID); derr != nil {
			s.logger.Printf("configuration: compensation destroy %s failed: %v", up.PublicID, derr)
		}
		return nil, err
	}
	return saved, nil
}

// Get returns a configuration by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Configuration, error) {
	return s.repo.GetByID(ctx, id)
}
