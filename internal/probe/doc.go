// Package probe wraps ffprobe for media introspection. A single JSON call
// per file yields container duration, size, and stream geometry; parsing is
// exposed separately so tests run without the binary.
package probe
