package timing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storyreel/storyreel/internal/config"
)

func cfg() *config.Config {
	c := config.Default()
	return &c
}

func TestCompute_AdaptiveTransitionWidening(t *testing.T) {
	// 40s audio over 4 images: the first split gives 9.4s per image,
	// above the 8s comfort bound, so the transition widens to
	// min(1.5, 9.4*0.15) = 1.41 and the split runs once more.
	p := Compute(cfg(), 40, 4, 0)

	assert.InDelta(t, 1.41, p.TransitionDuration, 0.0001)
	assert.InDelta(t, (40-3*1.41)/4, p.ImageDuration, 0.0001) // ≈ 8.9425
	assert.Equal(t, 40.0, p.TotalDuration)
}

func TestCompute_NoWideningUnderComfortBound(t *testing.T) {
	// 20s over 4 images: (20 - 3*0.8) / 4 = 4.4s, comfortably short.
	p := Compute(cfg(), 20, 4, 0)

	assert.Equal(t, 0.8, p.TransitionDuration)
	assert.InDelta(t, 4.4, p.ImageDuration, 0.0001)
}

func TestCompute_SingleImageFullDuration(t *testing.T) {
	p := Compute(cfg(), 12, 1, 0)

	// One image displays the whole track; no transitions enter the split.
	assert.InDelta(t, 12.0, p.ImageDuration, 0.0001)
}

func TestCompute_ZeroImages(t *testing.T) {
	p := Compute(cfg(), 25, 0, 0)

	assert.Equal(t, 25.0, p.TotalDuration)
	assert.Zero(t, p.ImageDuration)
	assert.Zero(t, p.TransitionDuration)
}

func TestCompute_TotalDurationPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		audio    float64
		override float64
		want     float64
	}{
		{"override wins", 40, 15, 15},
		{"audio when no override", 40, 0, 40},
		{"default floor when nothing known", 0, 0, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(cfg(), tt.audio, 3, tt.override)
			assert.Equal(t, tt.want, p.TotalDuration)
		})
	}
}

func TestCompute_MinimumFloorOnShortAudio(t *testing.T) {
	// 5s of audio cannot give 4 images their 2s floor plus transitions;
	// the floor wins and the duration invariant is knowingly broken.
	p := Compute(cfg(), 5, 4, 0)

	assert.Equal(t, 2.0, p.ImageDuration)
}

func TestCompute_DurationInvariant(t *testing.T) {
	// For unconstrained inputs, N*image + (N-1)*transition reassembles
	// the total within floating tolerance.
	for _, n := range []int{2, 3, 5, 8} {
		p := Compute(cfg(), 60, n, 0)
		got := float64(n)*p.ImageDuration + float64(n-1)*p.TransitionDuration
		assert.InDelta(t, p.TotalDuration, got, 0.0001, "n=%d", n)
	}
}

func TestCompute_SinglePassCorrection(t *testing.T) {
	// Very long audio leaves the per-image duration above the comfort
	// bound even after the capped widening; the correction must not
	// iterate further.
	p := Compute(cfg(), 300, 4, 0)

	assert.Equal(t, 1.5, p.TransitionDuration) // cap reached
	assert.Greater(t, p.ImageDuration, 8.0)    // still long, left alone
	assert.False(t, math.IsNaN(p.ImageDuration))
}

func TestCompute_CarriesGeometry(t *testing.T) {
	p := Compute(cfg(), 30, 2, 0)

	assert.Equal(t, 1024, p.Width)
	assert.Equal(t, 576, p.Height)
	assert.Equal(t, 24, p.FPS)
}
