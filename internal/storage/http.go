package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFetchBytes bounds a single asset download (images and audio clips are
// small; anything larger indicates a wrong locator).
const maxFetchBytes = 256 << 20

// HTTPFetcher is a read-only accessor for http(s) locators. Produced videos
// are never stored over HTTP, so StoreBytes always fails.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a bounded default client.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 60 * time.Second}}
}

// FetchBytes downloads the object at the given URL.
func (f *HTTPFetcher) FetchBytes(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: build request for %q: %w", locator, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage: fetch %q: %w", locator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, locator)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage: fetch %q: unexpected status %s", locator, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("storage: read body of %q: %w", locator, err)
	}
	if len(data) > maxFetchBytes {
		return nil, fmt.Errorf("storage: object %q exceeds %d bytes", locator, maxFetchBytes)
	}
	return data, nil
}

// FetchText downloads the object at the given URL as a string.
func (f *HTTPFetcher) FetchText(ctx context.Context, locator string) (string, error) {
	data, err := f.FetchBytes(ctx, locator)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// StoreBytes is unsupported on the HTTP accessor.
func (f *HTTPFetcher) StoreBytes(context.Context, []byte, string, string, string) (StoredObject, error) {
	return StoredObject{}, errors.New("storage: http accessor is read-only")
}
