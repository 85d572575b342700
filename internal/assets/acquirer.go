package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/storyreel/storyreel/internal/probe"
	"github.com/storyreel/storyreel/internal/storage"
)

// Acquirer fetches and measures the assets of one composition request.
type Acquirer struct {
	Store  storage.Accessor
	Prober probe.Prober

	// FallbackDuration substitutes the audio duration when measurement
	// fails or is unavailable.
	FallbackDuration float64

	Log zerolog.Logger
}

// Acquire downloads audio, images, and caption into dir. Audio failure is
// fatal; image and caption failures degrade with warnings recorded on the
// bundle.
func (a *Acquirer) Acquire(ctx context.Context, req Request, dir string) (*Bundle, error) {
	b := &Bundle{}

	if err := a.fetchAudio(ctx, req.AudioRef, dir, b); err != nil {
		return nil, err
	}
	a.fetchImages(ctx, req.ImagesRef, dir, b)
	a.fetchCaption(ctx, req.CaptionRef, b)

	return b, nil
}

func (a *Acquirer) fetchAudio(ctx context.Context, locator, dir string, b *Bundle) error {
	data, err := a.Store.FetchBytes(ctx, locator)
	if err != nil {
		return fmt.Errorf("fetch audio %q: %w", locator, err)
	}

	path := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}

	b.Audio = AudioAsset{
		Path:     path,
		ByteSize: int64(len(data)),
		Duration: a.FallbackDuration,
	}

	// Duration measurement is a convenience, not a correctness
	// requirement; the fallback keeps the pipeline moving.
	if a.Prober != nil && a.Prober.Available() {
		d, err := a.Prober.Duration(ctx, path)
		switch {
		case err != nil:
			b.warnf("audio duration probe failed: %v", err)
			a.Log.Warn().Err(err).Msg("audio duration probe failed, using fallback")
		case d <= 0:
			b.warnf("audio duration probe returned %0.1fs, using fallback", d)
		default:
			b.Audio.Duration = d
			b.Audio.Measured = true
		}
	} else {
		b.warnf("ffprobe unavailable, assuming %.0fs audio", a.FallbackDuration)
	}

	a.Log.Info().
		Int64("bytes", b.Audio.ByteSize).
		Float64("duration", b.Audio.Duration).
		Bool("measured", b.Audio.Measured).
		Msg("audio acquired")
	return nil
}

func (a *Acquirer) fetchImages(ctx context.Context, ref, dir string, b *Bundle) {
	if ref == "" {
		return
	}

	entries, err := a.resolveImageList(ctx, ref)
	if err != nil {
		// Parse failure degrades to an audio-only composition.
		b.warnf("image list unusable: %v", err)
		a.Log.Warn().Err(err).Msg("image list unusable, continuing without images")
		return
	}

	for i, entry := range entries {
		locator := entry.locator()
		if locator == "" {
			b.warnf("image %d has no locator field, skipped", i+1)
			continue
		}

		data, err := a.Store.FetchBytes(ctx, locator)
		if err != nil {
			b.warnf("image %d fetch failed: %v", i+1, err)
			a.Log.Warn().Err(err).Int("image", i+1).Msg("image fetch failed, skipped")
			continue
		}

		idx := len(b.Images) + 1
		path := filepath.Join(dir, fmt.Sprintf("image_%02d.png", idx))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			b.warnf("image %d write failed: %v", i+1, err)
			continue
		}

		b.Images = append(b.Images, ImageAsset{
			Index:    idx,
			Path:     path,
			ByteSize: int64(len(data)),
			Locator:  locator,
			Prompt:   entry.Prompt,
		})
	}

	a.Log.Info().
		Int("requested", len(entries)).
		Int("acquired", len(b.Images)).
		Msg("images acquired")
}

func (a *Acquirer) fetchCaption(ctx context.Context, locator string, b *Bundle) {
	if locator == "" {
		return
	}
	text, err := a.Store.FetchText(ctx, locator)
	if err != nil {
		b.warnf("caption fetch failed: %v", err)
		a.Log.Warn().Err(err).Msg("caption fetch failed, continuing without caption")
		return
	}
	b.Caption = &CaptionAsset{Text: text}
}
