package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Result is the fully parsed output of a single ffprobe JSON call.
type Result struct {
	FormatName string
	Duration   float64 // seconds; 0 when the container reports none
	Size       int64
	Video      *VideoStream // first video stream, nil if none
	AudioCount int
}

// VideoStream holds the parsed properties of a video stream.
type VideoStream struct {
	Codec  string
	Width  int
	Height int
}

// Prober is the introspection contract consumed by assets and validate.
// The zero-value FFProbe is the production implementation.
type Prober interface {
	Probe(ctx context.Context, path string) (*Result, error)
	Duration(ctx context.Context, path string) (float64, error)
	Available() bool
}

// FFProbe shells out to the ffprobe binary. Timeout bounds each call;
// zero means 30 seconds.
type FFProbe struct {
	Timeout time.Duration
}

func (p FFProbe) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return 30 * time.Second
}

// Available reports whether ffprobe is on PATH.
func (p FFProbe) Available() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

// Probe runs one ffprobe JSON call against path and returns the parsed
// result.
func (p FFProbe) Probe(ctx context.Context, path string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseJSON(out)
}

// Duration returns the container duration of path in seconds.
func (p FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	r, err := p.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return r.Duration, nil
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	r := &Result{
		FormatName: raw.Format.FormatName,
		Duration:   parseFloat(raw.Format.Duration),
		Size:       parseInt64(raw.Format.Size),
	}
	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if r.Video == nil {
				r.Video = &VideoStream{Codec: s.CodecName, Width: s.Width, Height: s.Height}
			}
		case "audio":
			r.AudioCount++
		}
	}
	return r, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

type ffprobeStream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// --- numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
