// Package storage holds uploaded artifacts with a hosted image service.
package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored file.
type UploadResult struct {
	PublicID  string
	SecureURL string
	Width     int
	Height    int
}

// Store uploads image blobs and destroys them again when a flow has to
// compensate for a partial failure.
type Store interface {
	Upload(ctx context.Context, r io.Reader, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}
