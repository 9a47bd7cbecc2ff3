package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate_ConstantInput(t *testing.T) {
	var prev *RunningStat
	for n := 0; n < 10; n++ {
		next := Update(5.0, prev, n)
		assert.Equal(t, 5.0, next.Current)
		assert.InDelta(t, 5.0, next.Average, 1e-12)
		assert.Equal(t, 5.0, next.Max)
		assert.Equal(t, 5.0, next.Min)
		prev = &next
	}
}

func TestUpdate_Seed(t *testing.T) {
	s := Update(-3, nil, 0)
	// max is seeded at zero, so a negative first sample leaves it there
	assert.Equal(t, 0.0, s.Max)
	assert.Equal(t, -3.0, s.Min)
	assert.Equal(t, -3.0, s.Average)

	s = Update(7, nil, 0)
	assert.Equal(t, 7.0, s.Max)
	assert.Equal(t, 7.0, s.Min)
}

func TestUpdate_Mean(t *testing.T) {
	samples := []float64{2, 4, 6, 8}
	var prev *RunningStat
	for n, x := range samples {
		next := Update(x, prev, n)
		prev = &next
	}
	assert.InDelta(t, 5.0, prev.Average, 1e-12)
	assert.Equal(t, 8.0, prev.Max)
	assert.Equal(t, 2.0, prev.Min)
	assert.Equal(t, 8.0, prev.Current)
}

func TestUpdate_ExtremaMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var prev *RunningStat
	lastMax, lastMin := 0.0, math.Inf(1)
	for n := 0; n < 500; n++ {
		next := Update(rng.Float64()*200, prev, n)
		assert.GreaterOrEqual(t, next.Max, lastMax)
		assert.LessOrEqual(t, next.Min, lastMin)
		lastMax, lastMin = next.Max, next.Min
		prev = &next
	}
}

func TestUpdate_NegativeCount(t *testing.T) {
	s := Update(4, &RunningStat{Average: 100, Max: 100, Min: 1}, -2)
	assert.Equal(t, 4.0, s.Average)
}
