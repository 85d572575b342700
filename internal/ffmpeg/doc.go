// Package ffmpeg builds encoder argument lists for each render tier and
// executes the external process under a bounded context. The Runner
// interface isolates process execution so render logic is testable without
// the binary.
package ffmpeg
