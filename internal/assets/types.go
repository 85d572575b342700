package assets

import "fmt"

// Request names the input locators of one composition.
type Request struct {
	AudioRef   string  // required
	ImagesRef  string  // inline JSON or locator to a JSON document; may be empty
	CaptionRef string  // optional
	Duration   float64 // optional total-duration override in seconds
}

// AudioAsset is the downloaded narration track.
type AudioAsset struct {
	Path     string
	ByteSize int64
	Duration float64 // seconds; fallback value when Measured is false
	Measured bool
}

// ImageAsset is one downloaded still image. Index is 1-based and contiguous
// over the bundle; order defines screen order.
type ImageAsset struct {
	Index    int
	Path     string
	ByteSize int64
	Locator  string
	Prompt   string // originating prompt text, for diagnostics
}

// CaptionAsset is the optional caption text.
type CaptionAsset struct {
	Text string
}

// Bundle is the acquired input set for one composition run. It lives inside
// the run's working directory and is discarded with it.
type Bundle struct {
	Audio    AudioAsset
	Images   []ImageAsset
	Caption  *CaptionAsset
	Warnings []string
}

func (b *Bundle) warnf(format string, args ...any) {
	b.Warnings = append(b.Warnings, fmt.Sprintf(format, args...))
}
