package render

import (
	"os"
	"path/filepath"
	"strings"
)

// minimalMP4 is an empty but well-formed MP4 ftyp box, emitted when the
// encoder is absent and the audio cannot be relabeled.
var minimalMP4 = []byte("\x00\x00\x00\x20ftypmp42\x00\x00\x00\x00mp42isom")

// relabelableExts are audio containers that players accept when handed
// over with an .mp4 name (MPEG audio and MP4-family audio).
var relabelableExts = map[string]bool{
	".mp3": true,
	".m4a": true,
	".aac": true,
}

// writePlaceholder emits the last-resort output: the audio payload
// relabeled as the final container when its format allows, otherwise a
// minimal empty container. It never fails the request; an unwritable
// output path is the only error surfaced.
func writePlaceholder(audioPath, outputPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(audioPath))
	if audioPath != "" && relabelableExts[ext] {
		data, err := os.ReadFile(audioPath)
		if err == nil {
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return "", err
			}
			return "placeholder output: audio payload relabeled as video container", nil
		}
	}

	if err := os.WriteFile(outputPath, minimalMP4, 0o644); err != nil {
		return "", err
	}
	return "placeholder output: minimal empty container", nil
}
