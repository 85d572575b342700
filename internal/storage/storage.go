// Package storage provides the object-storage boundary used by the
// composition pipeline: fetching input assets by locator and storing the
// produced video.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by accessor implementations.
var (
	ErrEmptyLocator = errors.New("storage: empty locator")
	ErrNotFound     = errors.New("storage: object not found")
)

// StoredObject describes a successfully stored output object.
type StoredObject struct {
	Location       string // canonical locator usable with FetchBytes
	PublicLocation string // externally reachable location, if any
	ByteSize       int64
}

// Accessor is the object-storage contract consumed by the pipeline. Every
// call may fail; callers apply their own tolerance rules per asset kind.
type Accessor interface {
	FetchBytes(ctx context.Context, locator string) ([]byte, error)
	FetchText(ctx context.Context, locator string) (string, error)
	StoreBytes(ctx context.Context, data []byte, folder, filename, contentType string) (StoredObject, error)
}

// Resolver dispatches locators to the accessor that understands their
// scheme: http(s) locators go to the fetcher, everything else to the store.
type Resolver struct {
	Store   Accessor
	Fetcher Accessor // read-only; may be nil
}

func (r *Resolver) pick(locator string) (Accessor, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, ErrEmptyLocator
	}
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		if r.Fetcher == nil {
			return nil, fmt.Errorf("storage: no fetcher configured for %q", locator)
		}
		return r.Fetcher, nil
	}
	if r.Store == nil {
		return nil, fmt.Errorf("storage: no store configured for %q", locator)
	}
	return r.Store, nil
}

// FetchBytes fetches the object behind locator via the matching accessor.
func (r *Resolver) FetchBytes(ctx context.Context, locator string) ([]byte, error) {
	a, err := r.pick(locator)
	if err != nil {
		return nil, err
	}
	return a.FetchBytes(ctx, locator)
}

// FetchText fetches the object behind locator and returns it as a string.
func (r *Resolver) FetchText(ctx context.Context, locator string) (string, error) {
	a, err := r.pick(locator)
	if err != nil {
		return "", err
	}
	return a.FetchText(ctx, locator)
}

// StoreBytes always writes through the store accessor.
func (r *Resolver) StoreBytes(ctx context.Context, data []byte, folder, filename, contentType string) (StoredObject, error) {
	if r.Store == nil {
		return StoredObject{}, errors.New("storage: no store configured")
	}
	return r.Store.StoreBytes(ctx, data, folder, filename, contentType)
}
