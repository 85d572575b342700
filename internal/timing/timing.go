// Package timing derives the render parameters (total, per-image, and
// transition durations) from the acquired assets and configuration.
package timing

import "github.com/storyreel/storyreel/internal/config"

// Params holds the derived timing and layout values for one composition.
// TotalDuration ≈ N*ImageDuration + (N-1)*TransitionDuration within the
// tolerance introduced by the minimum-duration floor.
type Params struct {
	Width  int
	Height int
	FPS    int

	TotalDuration      float64 // seconds
	ImageDuration      float64 // seconds per image; 0 when no images
	TransitionDuration float64 // seconds between consecutive images
}

// transitionScale sizes the widened transition relative to an over-long
// per-image duration during the adaptive pass.
const transitionScale = 0.15

// Compute derives Params. Total duration resolves as: explicit override if
// positive, else the measured audio duration, else the configured default
// floor. With N images the per-image duration is the remaining time split
// evenly after transitions, floored at the configured minimum.
//
// When the per-image duration lands above the comfort bound, the transition
// is widened once (capped, scaled to 15% of the over-long duration) and the
// split recomputed. The correction is deliberately single-pass: a second
// iteration could oscillate against the floor.
func Compute(cfg *config.Config, audioDuration float64, imageCount int, override float64) Params {
	p := Params{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
	}

	switch {
	case override > 0:
		p.TotalDuration = override
	case audioDuration > 0:
		p.TotalDuration = audioDuration
	default:
		p.TotalDuration = cfg.DefaultTotalDuration
	}

	if imageCount <= 0 {
		return p
	}

	p.TransitionDuration = cfg.TransitionDuration
	p.ImageDuration = split(p.TotalDuration, p.TransitionDuration, imageCount, cfg.MinImageDuration)

	if p.ImageDuration > cfg.MaxImageDuration {
		widened := p.ImageDuration * transitionScale
		if widened > cfg.MaxTransitionDuration {
			widened = cfg.MaxTransitionDuration
		}
		p.TransitionDuration = widened
		p.ImageDuration = split(p.TotalDuration, p.TransitionDuration, imageCount, cfg.MinImageDuration)
	}

	return p
}

// split divides total across n images after reserving n-1 transitions,
// floored at min.
func split(total, transition float64, n int, min float64) float64 {
	d := (total - float64(n-1)*transition) / float64(n)
	if d < min {
		return min
	}
	return d
}
