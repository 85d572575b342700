package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// ExecResult holds the outcome of a single encoder invocation.
type ExecResult struct {
	Stderr   string
	Err      error
	TimedOut bool
}

// Runner executes an encoder command under a deadline. Implemented by
// [ExecRunner] in production; test doubles substitute it to exercise the
// tier fallback logic without a binary.
type Runner interface {
	Run(ctx context.Context, args []string, timeout time.Duration) ExecResult
	Available() bool
}

// ExecRunner runs the real ffmpeg process. args[0] is the binary name.
type ExecRunner struct{}

// Run executes args with stderr captured for diagnostics. A timeout is
// reported as a failed run; the tier state machine falls through exactly
// as on any other execution error.
func (ExecRunner) Run(ctx context.Context, args []string, timeout time.Duration) ExecResult {
	if len(args) == 0 {
		return ExecResult{Err: errors.New("ffmpeg: empty command")}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return ExecResult{
		Stderr:   stderrBuf.String(),
		Err:      err,
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
	}
}

// Available reports whether the ffmpeg binary is present and responds to
// -version within a short bound.
func (ExecRunner) Available() bool {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffmpeg", "-version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
