package vision

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriempower/backend/internal/domain"
)

func uniformRGB(pixels int, v byte) []byte {
	return bytes.Repeat([]byte{v}, 3*pixels)
}

func uniformRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestClassifyRGB_Thresholds(t *testing.T) {
	tests := []struct {
		name  string
		value byte
		want  domain.CropCondition
	}{
		{"bright", 200, domain.ConditionHealthy},
		{"just above healthy threshold", 151, domain.ConditionHealthy},
		{"healthy threshold is exclusive", 150, domain.ConditionStressed},
		{"just above stressed threshold", 101, domain.ConditionStressed},
		{"stressed threshold is exclusive", 100, domain.ConditionFailure},
		{"dark", 50, domain.ConditionFailure},
		{"black", 0, domain.ConditionFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ClassifyRGB(uniformRGB(16, tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Condition)
			assert.Equal(t, float64(tt.value), res.Brightness)
		})
	}
}

func TestClassifyRGB_Descriptions(t *testing.T) {
	res, err := ClassifyRGB(uniformRGB(4, 200))
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionHealthy, res.Condition)
	assert.Equal(t, "Crop appears vibrant and well-maintained.", res.Description)

	res, err = ClassifyRGB(uniformRGB(4, 120))
	require.NoError(t, err)
	assert.Equal(t, "Crop shows signs of stress, possibly due to water or nutrient deficiency.", res.Description)

	res, err = ClassifyRGB(uniformRGB(4, 50))
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionFailure, res.Condition)
	assert.Equal(t, "Crop shows severe damage, likely due to pests or disease.", res.Description)
}

func TestClassifyRGB_MixedChannels(t *testing.T) {
	// (255+255+0)/3 = 170 and (0+0+90)/3 = 30 average to 100
	res, err := ClassifyRGB([]byte{255, 255, 0, 0, 0, 90})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Brightness)
	assert.Equal(t, domain.ConditionFailure, res.Condition)
}

func TestClassifyRGB_Invalid(t *testing.T) {
	_, err := ClassifyRGB(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	_, err = ClassifyRGB([]byte{1, 2, 3, 4})
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestClassify_IsPure(t *testing.T) {
	pix := []byte{10, 200, 30, 140, 220, 90, 255, 255, 255}
	first, err := ClassifyRGB(pix)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ClassifyRGB(pix)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	img := uniformRGBA(8, 8, color.RGBA{R: 180, G: 120, B: 90, A: 255})
	a, err := Classify(img)
	require.NoError(t, err)
	b, err := Classify(img)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClassify_ImageTypes(t *testing.T) {
	t.Run("rgba", func(t *testing.T) {
		res, err := Classify(uniformRGBA(10, 6, color.RGBA{R: 200, G: 200, B: 200, A: 255}))
		require.NoError(t, err)
		assert.Equal(t, 200.0, res.Brightness)
		assert.Equal(t, domain.ConditionHealthy, res.Condition)
	})

	t.Run("nrgba ignores alpha", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 50, 50, 50, 10
		}
		res, err := Classify(img)
		require.NoError(t, err)
		assert.Equal(t, 50.0, res.Brightness)
		assert.Equal(t, domain.ConditionFailure, res.Condition)
	})

	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 5, 5))
		for i := range img.Pix {
			img.Pix[i] = 150
		}
		res, err := Classify(img)
		require.NoError(t, err)
		assert.Equal(t, 150.0, res.Brightness)
		assert.Equal(t, domain.ConditionStressed, res.Condition)
	})

	t.Run("sub image", func(t *testing.T) {
		img := uniformRGBA(10, 10, color.RGBA{A: 255})
		for y := 5; y < 10; y++ {
			for x := 5; x < 10; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
			}
		}
		sub := img.SubImage(image.Rect(5, 5, 10, 10))
		res, err := Classify(sub)
		require.NoError(t, err)
		assert.Equal(t, 240.0, res.Brightness)
	})
}

func TestClassify_Invalid(t *testing.T) {
	_, err := Classify(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	_, err = Classify(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}
