package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverage_FullWindow(t *testing.T) {
	vals := []float64{1, 2, 3, 4}

	avg, ok := Average(vals, 3, 2)
	assert.True(t, ok)
	assert.Equal(t, 3.5, avg)

	avg, ok = Average(vals, 3, 4)
	assert.True(t, ok)
	assert.Equal(t, 2.5, avg)
}

func TestAverage_WindowOfOne(t *testing.T) {
	avg, ok := Average([]float64{7.5}, 0, 1)
	assert.True(t, ok)
	assert.Equal(t, 7.5, avg)
}

func TestAverage_WarmUp(t *testing.T) {
	vals := []float64{1, 2, 3}

	// no hay suficiente historial todavía
	_, ok := Average(vals, 1, 3)
	assert.False(t, ok)

	// slice vacío
	_, ok = Average(nil, -1, 1)
	assert.False(t, ok)
}

func TestAverage_BadArgs(t *testing.T) {
	vals := []float64{1, 2, 3}

	_, ok := Average(vals, 2, 0)
	assert.False(t, ok)

	_, ok = Average(vals, 3, 1)
	assert.False(t, ok)
}
