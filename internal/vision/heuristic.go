// Package vision classifies crop condition from the mean brightness of an image.
package vision

import (
	"fmt"
	"image"
	"image/color"

	"github.com/agriempower/backend/internal/domain"
)

const (
	healthyAbove  = 150.0
	stressedAbove = 100.0
)

const (
	healthyDescription  = "Crop appears vibrant and well-maintained."
	stressedDescription = "Crop shows signs of stress, possibly due to water or nutrient deficiency."
	failureDescription  = "Crop shows severe damage, likely due to pests or disease."
)

// ConditionFor maps a brightness value in 0..255 to a condition, first match wins
func ConditionFor(brightness float64) domain.ImageConditionResult {
	switch {
	case brightness > healthyAbove:
		return domain.ImageConditionResult{Condition: domain.ConditionHealthy, Description: healthyDescription, Brightness: brightness}
	case brightness > stressedAbove:
		return domain.ImageConditionResult{Condition: domain.ConditionStressed, Description: stressedDescription, Brightness: brightness}
	default:
		return domain.ImageConditionResult{Condition: domain.ConditionFailure, Description: failureDescription, Brightness: brightness}
	}
}

// Classify computes the mean of the R, G and B channels over every pixel of img.
// Alpha is ignored and color values are taken non-premultiplied.
func Classify(img image.Image) (domain.ImageConditionResult, error) {
	brightness, err := Brightness(img)
	if err != nil {
		return domain.ImageConditionResult{}, err
	}
	return ConditionFor(brightness), nil
}

// ClassifyRGB classifies a raw buffer of interleaved 8-bit RGB triples
func ClassifyRGB(pix []byte) (domain.ImageConditionResult, error) {
	if len(pix) == 0 {
		return domain.ImageConditionResult{}, fmt.Errorf("vision: empty pixel buffer: %w", domain.ErrInvalidImage)
	}
	if len(pix)%3 != 0 {
		return domain.ImageConditionResult{}, fmt.Errorf("vision: buffer length %d is not a multiple of 3: %w", len(pix), domain.ErrInvalidImage)
	}

	var sum uint64
	for _, v := range pix {
		sum += uint64(v)
	}
	return ConditionFor(float64(sum) / float64(len(pix))), nil
}

// Brightness returns the mean channel value of img on a 0..255 scale
func Brightness(img image.Image) (float64, error) {
	if img == nil {
		return 0, fmt.Errorf("vision: nil image: %w", domain.ErrInvalidImage)
	}
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("vision: image has no pixels: %w", domain.ErrInvalidImage)
	}

	var sum uint64
	switch src := img.(type) {
	case *image.NRGBA:
		sum = sumPix(src.Pix, src.Stride, b.Dx(), b.Dy(), src.PixOffset(b.Min.X, b.Min.Y))
	case *image.RGBA:
		if src.Opaque() {
			sum = sumPix(src.Pix, src.Stride, b.Dx(), b.Dy(), src.PixOffset(b.Min.X, b.Min.Y))
		} else {
			sum = sumGeneric(img, b)
		}
	default:
		sum = sumGeneric(img, b)
	}

	return float64(sum) / float64(3*b.Dx()*b.Dy()), nil
}

// sumPix adds the R, G and B bytes of 4-byte pixels row by row
func sumPix(pix []uint8, stride, w, h, offset int) uint64 {
	var sum uint64
	for y := 0; y < h; y++ {
		row := pix[offset+y*stride : offset+y*stride+4*w]
		for x := 0; x < len(row); x += 4 {
			sum += uint64(row[x]) + uint64(row[x+1]) + uint64(row[x+2])
		}
	}
	return sum
}

func sumGeneric(img image.Image, b image.Rectangle) uint64 {
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sum += uint64(c.R) + uint64(c.G) + uint64(c.B)
		}
	}
	return sum
}
