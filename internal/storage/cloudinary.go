package storage

import (
	"context"
	"io"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Cloudinary implements Store on top of the Cloudinary upload API.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	logger *log.Logger
}

// NewCloudinary builds a Store from a cloudinary:// URL.
func NewCloudinary(cloudURL string, logger *log.Logger) (*Cloudinary, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld, logger: logger}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, folder string) (*UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   folder,
	})
	if err != nil {
		c.logger.Printf("storage: upload to folder %s failed: %v", folder, err)
		return nil, err
	}
	return &UploadResult{
		PublicID:  res.PublicID,
		SecureURL: res.SecureURL,
		Width:     res.Width,
		Height:    res.Height,
	}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		c.logger.Printf("storage: destroy %s failed: %v", publicID, err)
	}
	return err
}
