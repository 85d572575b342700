package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/storyreel/storyreel/internal/timing"
)

// zoomStep is the per-frame zoom decay used by the zoom treatments.
const zoomStep = 0.0015

// panZoom is the fixed zoom level that gives pan treatments room to move.
const panZoom = 1.3

// stageFilter builds the per-image filter chain: oversized letterbox,
// motion transform sized to exactly ImageDuration at the target frame
// rate, and boundary fades. The chain is label-free; the caller appends
// the output pad.
func stageFilter(p timing.Params, i int, kind Kind, fade float64) string {
	// Scale onto a 2x canvas so the zoompan sampling window never runs
	// out of pixels at the frame edges.
	base := fmt.Sprintf(
		"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,"+
			"pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		i+1, p.Width*2, p.Height*2, p.Width*2, p.Height*2)

	frames := int(p.ImageDuration * float64(p.FPS))
	motion := base + "," + motionExpr(kind, frames, p.Width, p.Height)

	return fmt.Sprintf(
		"%s,fade=t=in:st=0:d=%s:alpha=1,fade=t=out:st=%s:d=%s:alpha=1",
		motion,
		formatSeconds(fade),
		formatSeconds(p.ImageDuration-fade),
		formatSeconds(fade))
}

// motionExpr returns the zoompan filter for one animation kind. d (the
// frame count) doubles as the pan distance multiplier so the sweep spans
// the stage regardless of duration.
func motionExpr(kind Kind, frames, w, h int) string {
	size := fmt.Sprintf("s=%dx%d", w, h)
	centerX := "x='iw/2-(iw/zoom/2)'"
	centerY := "y='ih/2-(ih/zoom/2)'"

	switch kind {
	case ZoomIn:
		return fmt.Sprintf(
			"zoompan=z='if(lte(zoom,1.0),1.5,max(1.00,zoom-%s))':d=%d:%s:%s:%s",
			formatSeconds(zoomStep), frames, centerX, centerY, size)
	case ZoomOut:
		return fmt.Sprintf(
			"zoompan=z='if(lte(zoom,1.0),1.0,max(1.00,zoom-%s))':d=%d:%s:%s:%s",
			formatSeconds(zoomStep), frames, centerX, centerY, size)
	case PanLeft:
		return fmt.Sprintf(
			"zoompan=z='%v':d=%d:x='iw-iw/zoom-%d*3':%s:%s",
			panZoom, frames, frames, centerY, size)
	case PanRight:
		return fmt.Sprintf(
			"zoompan=z='%v':d=%d:x='%d*3':%s:%s",
			panZoom, frames, frames, centerY, size)
	case PanUp:
		return fmt.Sprintf(
			"zoompan=z='%v':d=%d:%s:y='ih-ih/zoom-%d*2':%s",
			panZoom, frames, centerX, frames, size)
	default: // PanDown
		return fmt.Sprintf(
			"zoompan=z='%v':d=%d:%s:y='%d*2':%s",
			panZoom, frames, centerX, frames, size)
	}
}

// formatSeconds renders a float without a trailing zero tail, matching the
// compact style ffmpeg expressions conventionally use.
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
