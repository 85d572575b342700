// Package assets acquires the raw inputs of a composition (audio, images,
// optional caption) into the request's working directory and measures the
// audio duration. Audio is mandatory; everything else degrades gracefully
// with warnings.
package assets
