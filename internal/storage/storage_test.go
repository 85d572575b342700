package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	obj, err := s.StoreBytes(context.Background(), []byte("payload"), "videos", "v1.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "videos/v1.mp4", obj.Location)
	assert.Equal(t, int64(7), obj.ByteSize)
	assert.FileExists(t, obj.PublicLocation)

	data, err := s.FetchBytes(context.Background(), obj.Location)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	text, err := s.FetchText(context.Background(), "file://videos/v1.mp4")
	require.NoError(t, err)
	assert.Equal(t, "payload", text)
}

func TestFileStore_NotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.FetchBytes(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../etc/passwd", "a/../../b"} {
		_, err := s.FetchBytes(context.Background(), key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestSanitizeKey_Normalizes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"videos/v.mp4", "videos/v.mp4"},
		{"/videos/v.mp4", "videos/v.mp4"},
		{"./videos/v.mp4", "videos/v.mp4"},
		{`videos\v.mp4`, "videos/v.mp4"},
	}
	for _, tt := range tests {
		got, err := sanitizeKey(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("body"))
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher()

	data, err := f.FetchBytes(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), data)

	_, err = f.FetchBytes(context.Background(), srv.URL+"/gone")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.FetchBytes(context.Background(), srv.URL+"/boom")
	assert.Error(t, err)

	_, err = f.StoreBytes(context.Background(), nil, "f", "n", "t")
	assert.Error(t, err)
}

func TestResolver_Dispatch(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.txt"), []byte("local"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	r := &Resolver{Store: store, Fetcher: NewHTTPFetcher()}

	local, err := r.FetchText(context.Background(), "local.txt")
	require.NoError(t, err)
	assert.Equal(t, "local", local)

	remote, err := r.FetchText(context.Background(), srv.URL+"/x")
	require.NoError(t, err)
	assert.Equal(t, "remote", remote)

	_, err = r.FetchBytes(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyLocator)
}

func TestResolver_NoFetcherConfigured(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	r := &Resolver{Store: store}
	_, err = r.FetchBytes(context.Background(), "https://example.com/a.png")
	assert.Error(t, err)
}
