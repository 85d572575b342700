package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// imageEntry is one element of the image-set document. Locator fields are
// tried in priority order; Prompt is carried for diagnostics.
type imageEntry struct {
	URL      string `json:"url"`
	GCSURL   string `json:"gcs_url"`
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
}

// locator returns the first populated locator field.
func (e imageEntry) locator() string {
	for _, l := range []string{e.URL, e.GCSURL, e.ImageURL} {
		if l != "" {
			return l
		}
	}
	return ""
}

// imageDocument is the object form of the image-set document.
type imageDocument struct {
	Images []imageEntry `json:"images"`
}

// resolveImageList accepts either an inline JSON document (object with an
// "images" array, or a bare array) or a locator pointing at such a
// document, and returns the parsed entries.
func (a *Acquirer) resolveImageList(ctx context.Context, ref string) ([]imageEntry, error) {
	raw := strings.TrimSpace(ref)

	if !strings.HasPrefix(raw, "{") && !strings.HasPrefix(raw, "[") {
		text, err := a.Store.FetchText(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("fetch image list %q: %w", raw, err)
		}
		raw = strings.TrimSpace(text)
	}

	return parseImageList(raw)
}

func parseImageList(raw string) ([]imageEntry, error) {
	if strings.HasPrefix(raw, "[") {
		var entries []imageEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return nil, fmt.Errorf("parse image array: %w", err)
		}
		return entries, nil
	}

	var doc imageDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse image document: %w", err)
	}
	return doc.Images, nil
}
