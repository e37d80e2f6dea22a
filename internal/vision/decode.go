package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"

	"github.com/agriempower/backend/internal/domain"
)

// DefaultMaxPixels bounds the declared width*height of an upload before its pixels are decoded
const DefaultMaxPixels = 50_000_000

// Decode reads a JPEG, PNG or WebP image of at most DefaultMaxPixels pixels.
// Empty or undecodable input fails with domain.ErrInvalidImage.
func Decode(r io.Reader) (image.Image, string, error) {
	return DecodeLimit(r, DefaultMaxPixels)
}

// DecodeLimit is Decode with a caller-chosen pixel cap; maxPixels <= 0 uses DefaultMaxPixels.
// The dimensions in the image header are checked before any pixel buffer is allocated.
func DecodeLimit(r io.Reader, maxPixels int) (image.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("vision: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("vision: empty upload: %w", domain.ErrInvalidImage)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("vision: decode image header: %v: %w", err, domain.ErrInvalidImage)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("vision: empty image bounds: %w", domain.ErrInvalidImage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, "", fmt.Errorf("vision: image too large: %dx%d: %w", cfg.Width, cfg.Height, domain.ErrInvalidImage)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("vision: decode image: %v: %w", err, domain.ErrInvalidImage)
	}
	return img, format, nil
}
