package ffmpeg

import (
	"strconv"

	"github.com/storyreel/storyreel/internal/plan"
	"github.com/storyreel/storyreel/internal/timing"
)

// BuildSlideshowArgs constructs the argument slice for the animated
// composition tier: audio plus one input per image, the composition's
// filter graph, and the quality settings tuned for motion (crf 20).
func BuildSlideshowArgs(c *plan.Composition, audioPath string, imagePaths []string, outputPath string) []string {
	args := preamble()

	args = append(args, "-i", audioPath)
	for _, p := range imagePaths {
		args = append(args, "-i", p)
	}

	args = append(args,
		"-filter_complex", c.FilterComplex(),
		"-map", c.FinalLabel(),
		"-map", "0:a",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "20",
		"-pix_fmt", "yuv420p",
	)

	return appendAudioAndTail(args, c.Params, outputPath)
}

// BuildSimpleSlideshowArgs constructs the fallback tier: plain scale/pad
// stages with fixed offsets, no motion, standard quality (crf 23).
func BuildSimpleSlideshowArgs(p timing.Params, audioPath string, imagePaths []string, outputPath string) []string {
	args := preamble()

	args = append(args, "-i", audioPath)
	for _, ip := range imagePaths {
		args = append(args, "-i", ip)
	}

	args = append(args,
		"-filter_complex", plan.SimpleFilterComplex(p, len(imagePaths)),
		"-map", "[slideshow]",
		"-map", "0:a",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "23",
	)

	return appendAudioAndTail(args, p, outputPath)
}

// BuildAnimatedBackgroundArgs constructs the zero-image tier: a procedural
// color-field source muxed with the audio track.
func BuildAnimatedBackgroundArgs(p timing.Params, audioPath, outputPath string) []string {
	args := preamble()

	args = append(args,
		"-f", "lavfi",
		"-i", plan.AnimatedBackgroundSource(p),
		"-i", audioPath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "28",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "128k",
		"-shortest",
		"-t", formatDuration(p.TotalDuration),
		outputPath,
	)
	return args
}

// BuildStaticBackgroundArgs constructs the flat-color last resort before
// the placeholder tier.
func BuildStaticBackgroundArgs(p timing.Params, audioPath, outputPath string) []string {
	args := preamble()

	args = append(args,
		"-f", "lavfi",
		"-i", plan.StaticBackgroundSource(p),
		"-i", audioPath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "28",
		"-c:a", "aac",
		"-b:a", "128k",
		"-shortest",
		"-t", formatDuration(p.TotalDuration),
		outputPath,
	)
	return args
}

// preamble returns the shared argument skeleton every tier starts from.
func preamble() []string {
	return []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
	}
}

// appendAudioAndTail adds the common audio codec, frame rate, duration cap,
// and output path shared by the two slideshow tiers.
func appendAudioAndTail(args []string, p timing.Params, outputPath string) []string {
	return append(args,
		"-c:a", "aac",
		"-b:a", "128k",
		"-r", strconv.Itoa(p.FPS),
		"-t", formatDuration(p.TotalDuration),
		outputPath,
	)
}

func formatDuration(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
