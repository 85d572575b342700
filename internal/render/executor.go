package render

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storyreel/storyreel/internal/assets"
	"github.com/storyreel/storyreel/internal/ffmpeg"
	"github.com/storyreel/storyreel/internal/metrics"
	"github.com/storyreel/storyreel/internal/plan"
	"github.com/storyreel/storyreel/internal/timing"
)

// Outcome reports which tier produced the output and any fallback notes
// accumulated along the way.
type Outcome struct {
	Tier  Tier
	Notes []string
}

// Executor drives the tier fallback chain for one composition.
type Executor struct {
	Runner ffmpeg.Runner

	SlideshowTimeout  time.Duration // image-bearing tiers
	BackgroundTimeout time.Duration // background-only tiers

	Metrics *metrics.Metrics
	Log     zerolog.Logger
}

// attempt is one render strategy: a tier, its argument list, and its
// process bound. Strategies are tried in slice order.
type attempt struct {
	tier    Tier
	args    []string
	timeout time.Duration
}

// Render produces outputPath from the bundle and plan. Encoder absence
// short-circuits to the placeholder tier before any attempt; otherwise the
// applicable strategies run in descending sophistication and the failure
// of the last one is terminal.
func (e *Executor) Render(ctx context.Context, b *assets.Bundle, comp *plan.Composition, outputPath string) (Outcome, error) {
	if !e.Runner.Available() {
		e.Log.Warn().Msg("encoder unavailable, emitting placeholder output")
		e.Metrics.RenderAttempt(TierPlaceholder.String(), "success")
		note, err := writePlaceholder(b.Audio.Path, outputPath)
		if err != nil {
			return Outcome{Tier: TierPlaceholder}, err
		}
		return Outcome{Tier: TierPlaceholder, Notes: []string{note}}, nil
	}

	var attempts []attempt
	if len(b.Images) > 0 {
		paths := imagePaths(b)
		attempts = []attempt{
			{TierAnimated, ffmpeg.BuildSlideshowArgs(comp, b.Audio.Path, paths, outputPath), e.SlideshowTimeout},
			{TierSimple, ffmpeg.BuildSimpleSlideshowArgs(comp.Params, b.Audio.Path, paths, outputPath), e.SlideshowTimeout},
		}
	} else {
		attempts = []attempt{
			{TierAnimatedBackground, ffmpeg.BuildAnimatedBackgroundArgs(comp.Params, b.Audio.Path, outputPath), e.BackgroundTimeout},
			{TierStaticBackground, ffmpeg.BuildStaticBackgroundArgs(comp.Params, b.Audio.Path, outputPath), e.BackgroundTimeout},
		}
	}

	return e.run(ctx, attempts)
}

func (e *Executor) run(ctx context.Context, attempts []attempt) (Outcome, error) {
	var out Outcome
	for i, a := range attempts {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		e.Log.Info().Str("tier", a.tier.String()).Msg("render attempt")
		res := e.Runner.Run(ctx, a.args, a.timeout)
		if res.Err == nil {
			e.Metrics.RenderAttempt(a.tier.String(), "success")
			out.Tier = a.tier
			return out, nil
		}

		e.Metrics.RenderAttempt(a.tier.String(), "failure")
		e.Log.Warn().
			Str("tier", a.tier.String()).
			Bool("timed_out", res.TimedOut).
			Err(res.Err).
			Msg("render attempt failed")

		if i == len(attempts)-1 {
			return out, fmt.Errorf("render tier %s failed: %w: %s",
				a.tier, res.Err, tailOf(res.Stderr))
		}
		out.Notes = append(out.Notes,
			fmt.Sprintf("tier %s failed, falling back to %s", a.tier, attempts[i+1].tier))
	}
	return out, fmt.Errorf("no render strategy applicable")
}

func imagePaths(b *assets.Bundle) []string {
	paths := make([]string, len(b.Images))
	for i, img := range b.Images {
		paths[i] = img.Path
	}
	return paths
}

// tailOf trims encoder stderr to its last line for error messages.
func tailOf(stderr string) string {
	const max = 300
	if len(stderr) > max {
		stderr = stderr[len(stderr)-max:]
	}
	return stderr
}

// BackgroundPlan builds the minimal composition wrapper used when zero
// images were acquired: parameters only, no stages.
func BackgroundPlan(p timing.Params) *plan.Composition {
	return &plan.Composition{Params: p}
}
