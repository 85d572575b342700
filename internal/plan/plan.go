package plan

import (
	"fmt"
	"strings"

	"github.com/storyreel/storyreel/internal/timing"
)

// Stage is one per-image transform: scale/letterbox onto an oversized
// canvas, the assigned motion, and fade-in/out at the boundaries.
type Stage struct {
	Index  int // 1-based, matches the image asset index
	Kind   Kind
	Filter string // full filter chain, ends at OutLabel
}

// OutLabel returns the stage's output pad label.
func (s Stage) OutLabel() string {
	return fmt.Sprintf("[animated%d]", s.Index-1)
}

// Composition is the immutable render plan for an image-bearing run:
// ordered stages plus one final concatenation. Build it once and hand it to
// the executor; fallbacks construct their own simpler graphs.
type Composition struct {
	Params timing.Params
	Stages []Stage
}

// Build constructs the animated composition plan for n images. fade is the
// fixed boundary fade length in seconds.
func Build(p timing.Params, n int, fade float64) *Composition {
	c := &Composition{Params: p}
	for i := 0; i < n; i++ {
		c.Stages = append(c.Stages, Stage{
			Index:  i + 1,
			Kind:   KindFor(i),
			Filter: stageFilter(p, i, KindFor(i), fade),
		})
	}
	return c
}

// FilterComplex renders the full filter_complex string: every stage in
// index order, then a hard concatenation. Cross-fade blending between
// stages is deliberately absent; it fights the per-image zoom/pan motion.
func (c *Composition) FilterComplex() string {
	var parts []string
	for _, s := range c.Stages {
		parts = append(parts, s.Filter+s.OutLabel())
	}

	if len(c.Stages) > 1 {
		var concat strings.Builder
		for _, s := range c.Stages {
			concat.WriteString(s.OutLabel())
		}
		fmt.Fprintf(&concat, "concat=n=%d:v=1:a=0[final]", len(c.Stages))
		parts = append(parts, concat.String())
	}

	return strings.Join(parts, ";")
}

// FinalLabel returns the pad the output video should be mapped from.
func (c *Composition) FinalLabel() string {
	if len(c.Stages) > 1 {
		return "[final]"
	}
	if len(c.Stages) == 1 {
		return c.Stages[0].OutLabel()
	}
	return ""
}

// SimpleFilterComplex builds the fallback graph for n images: plain
// scale/pad with fixed timestamp offsets and a concatenation, no motion or
// fades.
func SimpleFilterComplex(p timing.Params, n int) string {
	var parts []string
	for i := 0; i < n; i++ {
		offset := float64(i) * (p.ImageDuration + p.TransitionDuration)
		parts = append(parts, fmt.Sprintf(
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,"+
				"pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setpts=PTS-STARTPTS+%s/TB[img%d]",
			i+1, p.Width, p.Height, p.Width, p.Height, formatSeconds(offset), i))
	}

	var concat strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&concat, "[img%d]", i)
	}
	fmt.Fprintf(&concat, "concat=n=%d:v=1:a=0[slideshow]", n)
	parts = append(parts, concat.String())

	return strings.Join(parts, ";")
}

// AnimatedBackgroundSource returns the lavfi source for the zero-image
// tier: a dark base with slow periodic color modulation. The per-channel
// sine periods are co-prime so the field never visibly repeats.
func AnimatedBackgroundSource(p timing.Params) string {
	return fmt.Sprintf(
		"color=c=0x1a1a2e:size=%dx%d:rate=%d,"+
			"geq=r='128+64*sin(2*PI*t/10)':g='64+32*sin(2*PI*t/7)':b='96+48*sin(2*PI*t/13)'",
		p.Width, p.Height, p.FPS)
}

// StaticBackgroundSource returns the lavfi source for the flat-color
// fallback tier.
func StaticBackgroundSource(p timing.Params) string {
	return fmt.Sprintf("color=c=black:size=%dx%d:rate=%d", p.Width, p.Height, p.FPS)
}
