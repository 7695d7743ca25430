package difficulty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nandhub_backend/internal/difficulty"
)

func f(v float64) *float64 { return &v }

func TestCalculate_NoRating(t *testing.T) {
	// With a nil rating the score is the pure logistic term.
	score := difficulty.Calculate(0, nil)
	assert.InDelta(t, 0, score, 1e-9, "zero average time should score zero")

	score = difficulty.Calculate(300, nil)
	assert.InDelta(t, 1/(1+1/2.718281828459045)-0.5, score, 1e-9)
}

func TestCalculate_RatingBoost(t *testing.T) {
	base := difficulty.Calculate(100, nil)
	boosted := difficulty.Calculate(100, f(2))
	assert.InDelta(t, base+0.5, boosted, 1e-9, "max rating adds 2/4")
}

func TestCalculate_MonotonicInTime(t *testing.T) {
	prev := difficulty.Calculate(0, f(1))
	for _, tm := range []float64{10, 60, 120, 300, 600, 3600, 86400} {
		cur := difficulty.Calculate(tm, f(1))
		assert.GreaterOrEqual(t, cur, prev, "score must not decrease as average time grows")
		prev = cur
	}
}

func TestCalculate_StaysBelowOne(t *testing.T) {
	// Ratings are capped at 2, so even absurd times stay under 1.0.
	score := difficulty.Calculate(1e9, f(2))
	assert.Less(t, score, 1.0)
}

func TestLabelFor_Buckets(t *testing.T) {
	cases := []struct {
		score float64
		label string
	}{
		{0, "easy"},
		{0.29999, "easy"},
		{0.3, "medium"}, // boundary belongs to the upper bucket
		{0.5, "medium"},
		{0.69999, "medium"},
		{0.7, "hard"},
		{1.0, "hard"},
	}
	for _, c := range cases {
		got := difficulty.LabelFor(&c.score)
		require.NotNil(t, got, "score %v", c.score)
		assert.Equal(t, c.label, *got, "score %v", c.score)
	}
}

func TestLabelFor_Nil(t *testing.T) {
	assert.Nil(t, difficulty.LabelFor(nil))
}

func TestLabelFor_PartitionsContiguously(t *testing.T) {
	// Every score in [0, 1.1) lands in exactly one bucket.
	for s := 0.0; s < 1.1; s += 0.01 {
		score := s
		assert.NotNil(t, difficulty.LabelFor(&score), "score %v has no bucket", s)
	}
}

func TestTrophies(t *testing.T) {
	assert.Equal(t, 100, difficulty.Trophies(0))
	assert.Equal(t, 100, difficulty.Trophies(0.29))
	assert.Equal(t, 200, difficulty.Trophies(0.3))
	assert.Equal(t, 200, difficulty.Trophies(0.69))
	assert.Equal(t, 400, difficulty.Trophies(0.7))
	assert.Equal(t, 400, difficulty.Trophies(2))
}

func TestRatingIndex(t *testing.T) {
	idx, ok := difficulty.RatingIndex("easy")
	require.True(t, ok)
	require.NotNil(t, idx)
	assert.Equal(t, 0, *idx)

	idx, ok = difficulty.RatingIndex("hard")
	require.True(t, ok)
	assert.Equal(t, 2, *idx)

	idx, ok = difficulty.RatingIndex("")
	assert.True(t, ok)
	assert.Nil(t, idx)

	_, ok = difficulty.RatingIndex("impossible")
	assert.False(t, ok)
}

func TestRatingLabel_RoundTrip(t *testing.T) {
	for i, want := range difficulty.Labels {
		idx := i
		got := difficulty.RatingLabel(&idx)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	}
	assert.Nil(t, difficulty.RatingLabel(nil))
}
