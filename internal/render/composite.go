// Package render rasterizes a user's positioned image onto a case-template
// sized canvas, producing the final printable artifact.
package render

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrUnmeasured is returned when a bounding box has not been measured
	// yet (zero or negative dimensions). Compositing fails fast rather
	// than producing a partial rasterization.
	ErrUnmeasured = errors.New("bounding box not measured")
	// ErrUnsupportedImage is returned for anything that is not PNG or JPEG.
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// Rect is a screen-space bounding box, as measured by the client.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width" binding:"required"`
	Height float64 `json:"height" binding:"required"`
}

// Transform is the user-chosen crop: position and rendered dimensions of
// the uploaded image relative to the on-screen container.
type Transform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" binding:"required"`
	Height float64 `json:"height" binding:"required"`
}

// DefaultTransform mirrors the configurator's initial placement: quarter
// of the image's natural size at a fixed offset.
func DefaultTransform(imageWidth, imageHeight int) Transform {
	return Transform{
		X:      150,
		Y:      205,
		Width:  float64(imageWidth) / 4,
		Height: float64(imageHeight) / 4,
	}
}

// Composite draws src onto a canvas sized to the case template's bounding
// box. The render position is translated from container space into
// template-local space by subtracting the template's screen offset, and
// the source is resampled to the rendered dimensions before drawing.
// The result is deterministic for fixed inputs.
func Composite(src image.Image, caseBox, containerBox Rect, t Transform) (image.Image, error) {
	if caseBox.Width <= 0 || caseBox.Height <= 0 || containerBox.Width <= 0 || containerBox.Height <= 0 {
		return nil, ErrUnmeasured
	}
	if t.Width <= 0 || t.Height <= 0 {
		return nil, errors.New("render dimensions must be positive")
	}

	leftOffset := caseBox.Left - containerBox.Left
	topOffset := caseBox.Top - containerBox.Top
	actualX := t.X - leftOffset
	actualY := t.Y - topOffset

	canvas := image.NewNRGBA(image.Rect(0, 0, round(caseBox.Width), round(caseBox.Height)))
	scaled := imaging.Resize(src, round(t.Width), round(t.Height), imaging.Lanczos)

	offset := image.Pt(round(actualX), round(actualY))
	draw.Draw(canvas, scaled.Bounds().Add(offset), scaled, image.Point{}, draw.Over)
	return canvas, nil
}

// EncodePNG encodes the composited canvas to a PNG blob.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBounds reads the natural dimensions of an uploaded image without
// decoding the full pixel data. Only PNG and JPEG are accepted.
func DecodeBounds(r io.Reader) (width, height int, err error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, ErrUnsupportedImage
	}
	switch format {
	case "png", "jpeg":
	default:
		return 0, 0, ErrUnsupportedImage
	}
	return cfg.Width, cfg.Height, nil
}

// Decode reads a full source image for compositing.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func round(v float64) int {
	return int(math.Round(v))
}
