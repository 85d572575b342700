// Package compose orchestrates one composition request end to end:
// acquire assets, derive timing, build the animation plan, render through
// the tier chain, validate, and store the produced video.
package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storyreel/storyreel/internal/assets"
	"github.com/storyreel/storyreel/internal/config"
	"github.com/storyreel/storyreel/internal/ffmpeg"
	"github.com/storyreel/storyreel/internal/metrics"
	"github.com/storyreel/storyreel/internal/plan"
	"github.com/storyreel/storyreel/internal/probe"
	"github.com/storyreel/storyreel/internal/render"
	"github.com/storyreel/storyreel/internal/storage"
	"github.com/storyreel/storyreel/internal/timing"
	"github.com/storyreel/storyreel/internal/validate"
)

// Composer owns the collaborators of the composition pipeline. It is safe
// for concurrent use: every request gets its own working directory and no
// state is shared between runs.
type Composer struct {
	Cfg     *config.Config
	Store   storage.Accessor
	Prober  probe.Prober
	Encoder ffmpeg.Runner
	Metrics *metrics.Metrics
	Log     zerolog.Logger
}

// New wires a Composer with the production prober and encoder runner.
func New(cfg *config.Config, store storage.Accessor, m *metrics.Metrics, log zerolog.Logger) *Composer {
	return &Composer{
		Cfg:     cfg,
		Store:   store,
		Prober:  probe.FFProbe{Timeout: cfg.ProbeTimeout},
		Encoder: ffmpeg.ExecRunner{},
		Metrics: m,
		Log:     log,
	}
}

// Compose runs one request to completion. It never panics and never
// returns an error: every failure is folded into a failed Result with the
// first fatal cause, and all non-fatal issues accumulate as warnings on a
// successful one. The working area is removed on every exit path.
func (c *Composer) Compose(ctx context.Context, req assets.Request) Result {
	start := time.Now()
	log := c.Log.With().Str("request", uuid.NewString()[:8]).Logger()

	dir, err := os.MkdirTemp("", "storyreel-")
	if err != nil {
		return c.fail(req, start, log, fmt.Errorf("create working area: %w", err))
	}
	defer os.RemoveAll(dir)

	// --- Acquire ---
	acq := assets.Acquirer{
		Store:            c.Store,
		Prober:           c.Prober,
		FallbackDuration: c.Cfg.DefaultTotalDuration,
		Log:              log,
	}
	bundle, err := acq.Acquire(ctx, req, dir)
	if err != nil {
		return c.fail(req, start, log, err)
	}

	// --- Timing ---
	params := timing.Compute(c.Cfg, bundle.Audio.Duration, len(bundle.Images), req.Duration)
	log.Info().
		Float64("total", params.TotalDuration).
		Float64("per_image", params.ImageDuration).
		Float64("transition", params.TransitionDuration).
		Int("images", len(bundle.Images)).
		Msg("timing derived")

	// --- Plan ---
	comp := plan.Build(params, len(bundle.Images), c.Cfg.FadeDuration)

	// --- Render ---
	outputPath := filepath.Join(dir, "output_video.mp4")
	exec := render.Executor{
		Runner:            c.Encoder,
		SlideshowTimeout:  c.Cfg.SlideshowTimeout,
		BackgroundTimeout: c.Cfg.BackgroundTimeout,
		Metrics:           c.Metrics,
		Log:               log,
	}
	outcome, err := exec.Render(ctx, bundle, comp, outputPath)
	if err != nil {
		return c.fail(req, start, log, err)
	}

	// --- Validate ---
	report := validate.Check(ctx, outputPath, c.Prober)
	if !report.Valid {
		return c.fail(req, start, log,
			fmt.Errorf("output validation: %s", strings.Join(report.Issues, "; ")))
	}

	// --- Store ---
	data, err := os.ReadFile(outputPath)
	if err != nil {
		return c.fail(req, start, log, fmt.Errorf("read output: %w", err))
	}
	filename := fmt.Sprintf("video_%s.mp4", strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	stored, err := c.Store.StoreBytes(ctx, data, c.Cfg.VideoFolder, filename, "video/mp4")
	if err != nil {
		return c.fail(req, start, log, fmt.Errorf("store video: %w", err))
	}

	warnings := make([]string, 0, len(bundle.Warnings)+len(outcome.Notes)+len(report.Warnings))
	warnings = append(warnings, bundle.Warnings...)
	warnings = append(warnings, outcome.Notes...)
	warnings = append(warnings, report.Warnings...)

	elapsed := time.Since(start)
	c.Metrics.Composition(StatusSuccess, elapsed)
	log.Info().
		Str("location", stored.Location).
		Str("tier", outcome.Tier.String()).
		Int64("bytes", stored.ByteSize).
		Dur("elapsed", elapsed).
		Msg("composition complete")

	return Result{
		Status:            StatusSuccess,
		VideoLocation:     stored.Location,
		PublicLocation:    stored.PublicLocation,
		Duration:          params.TotalDuration,
		Width:             params.Width,
		Height:            params.Height,
		ByteSize:          int64(len(data)),
		Tier:              outcome.Tier.String(),
		ImageCountUsed:    len(bundle.Images),
		AudioDurationUsed: bundle.Audio.Duration,
		Warnings:          warnings,
	}
}

func (c *Composer) fail(req assets.Request, start time.Time, log zerolog.Logger, err error) Result {
	c.Metrics.Composition(StatusFailed, time.Since(start))
	log.Error().Err(err).Msg("composition failed")
	return Result{
		Status: StatusFailed,
		Error:  fmt.Sprintf("failed to assemble video: %v", err),
		Inputs: &EchoedInputs{
			AudioRef:   req.AudioRef,
			ImagesRef:  truncateRef(req.ImagesRef),
			CaptionRef: req.CaptionRef,
		},
	}
}
