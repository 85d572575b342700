// Package validate inspects the produced video file for existence, size,
// and stream sanity. Validation is purely diagnostic: it never mutates or
// re-renders, and warnings do not fail the composition.
package validate

import (
	"context"
	"fmt"
	"os"

	"github.com/storyreel/storyreel/internal/probe"
)

// Size bands outside which a warning is recorded.
const (
	minSaneBytes = 100 << 10  // 100 KiB
	maxSaneBytes = 100 << 20  // 100 MiB
	minSaneSecs  = 5.0
)

// Report is the validation verdict for one output file.
type Report struct {
	Valid    bool
	Issues   []string // hard problems: the file is not a usable output
	Warnings []string // suspicious but acceptable findings
	ByteSize int64
	Duration float64 // probed seconds; 0 when introspection was unavailable
}

// Check validates the file at path. The prober is optional; when it is nil
// or ffprobe is absent, duration checks are skipped.
func Check(ctx context.Context, path string, prober probe.Prober) Report {
	var r Report

	fi, err := os.Stat(path)
	if err != nil {
		r.Issues = append(r.Issues, "output file does not exist")
		return r
	}
	r.ByteSize = fi.Size()

	switch {
	case r.ByteSize == 0:
		r.Issues = append(r.Issues, "output file is empty")
	case r.ByteSize < minSaneBytes:
		r.Warnings = append(r.Warnings, fmt.Sprintf("output file is very small (%d bytes)", r.ByteSize))
	case r.ByteSize > maxSaneBytes:
		r.Warnings = append(r.Warnings, fmt.Sprintf("output file is large (%d MiB)", r.ByteSize>>20))
	}

	if prober != nil && prober.Available() {
		pr, err := prober.Probe(ctx, path)
		if err != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("output introspection failed: %v", err))
		} else {
			r.Duration = pr.Duration
			switch {
			case pr.Duration == 0:
				r.Warnings = append(r.Warnings, "output reports no duration")
			case pr.Duration < minSaneSecs:
				r.Warnings = append(r.Warnings, fmt.Sprintf("output is very short (%.1fs)", pr.Duration))
			}
		}
	}

	r.Valid = len(r.Issues) == 0
	return r
}
