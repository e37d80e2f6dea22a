package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 20.0, Clamp(3, 20, 80))
	assert.Equal(t, 80.0, Clamp(95.5, 20, 80))
	assert.Equal(t, 42.0, Clamp(42, 20, 80))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 10))
	assert.Equal(t, 10, ClampInt(11, 1, 10))
	assert.Equal(t, 5, ClampInt(5, 1, 10))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.67, RoundTo(0.666666, 2))
	assert.Equal(t, 12.0, RoundTo(12.04, 0))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 20.0, Lerp(20, 80, 0))
	assert.Equal(t, 50.0, Lerp(20, 80, 0.5))
	assert.Equal(t, 80.0, Lerp(20, 80, 1))
}
