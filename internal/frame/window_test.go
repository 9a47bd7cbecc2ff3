package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_SixtyHertz(t *testing.T) {
	var w Window
	for k := 0; k <= 120; k++ {
		w.Append(float64(k) / 60)
	}
	assert.InDelta(t, 60, w.Count(), 1)
}

func TestWindow_OneTwentyHertz(t *testing.T) {
	var w Window
	for k := 0; k <= 360; k++ {
		w.Append(float64(k) / 120)
	}
	assert.InDelta(t, 120, w.Count(), 1)
}

func TestWindow_Eviction(t *testing.T) {
	var w Window
	assert.Equal(t, 0, w.Count())

	w.Append(0.0)
	w.Append(0.5)
	w.Append(1.0)
	assert.Equal(t, 3, w.Count(), "a timestamp exactly one second old is retained")

	w.Append(1.2)
	assert.Equal(t, 3, w.Count())

	w.Append(5.0)
	assert.Equal(t, 1, w.Count())
}

func TestWindow_Reset(t *testing.T) {
	var w Window
	for k := 0; k < 30; k++ {
		w.Append(float64(k) / 60)
	}
	w.Reset()
	assert.Equal(t, 0, w.Count())
	w.Append(10)
	assert.Equal(t, 1, w.Count())
}

func TestWindow_CompactionKeepsOrder(t *testing.T) {
	var w Window
	for k := 0; k < 10000; k++ {
		w.Append(float64(k) / 60)
		assert.LessOrEqual(t, w.Count(), 61)
	}
	assert.LessOrEqual(t, cap(w.stamps), 256)
	for i := w.head + 1; i < len(w.stamps); i++ {
		assert.Less(t, w.stamps[i-1], w.stamps[i])
	}
}
