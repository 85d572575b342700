package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyreel/storyreel/internal/probe"
	"github.com/storyreel/storyreel/internal/storage"
)

// fakeStore serves objects from a map; missing keys fail.
type fakeStore struct {
	objects map[string][]byte
}

func (f *fakeStore) FetchBytes(_ context.Context, locator string) ([]byte, error) {
	if data, ok := f.objects[locator]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, locator)
}

func (f *fakeStore) FetchText(ctx context.Context, locator string) (string, error) {
	data, err := f.FetchBytes(ctx, locator)
	return string(data), err
}

func (f *fakeStore) StoreBytes(context.Context, []byte, string, string, string) (storage.StoredObject, error) {
	return storage.StoredObject{}, errors.New("read-only")
}

// fakeProber reports a scripted duration.
type fakeProber struct {
	duration float64
	err      error
	avail    bool
}

func (f fakeProber) Available() bool { return f.avail }

func (f fakeProber) Duration(context.Context, string) (float64, error) {
	return f.duration, f.err
}

func (f fakeProber) Probe(context.Context, string) (*probe.Result, error) {
	return &probe.Result{Duration: f.duration}, f.err
}

func newAcquirer(store *fakeStore, p fakeProber) *Acquirer {
	return &Acquirer{
		Store:            store,
		Prober:           p,
		FallbackDuration: 30,
		Log:              zerolog.Nop(),
	}
}

func imagesJSON(n int) string {
	doc := `{"images":[`
	for i := 0; i < n; i++ {
		if i > 0 {
			doc += ","
		}
		doc += fmt.Sprintf(`{"url":"img-%d","prompt":"prompt %d"}`, i, i)
	}
	return doc + `]}`
}

func storeWith(n int) *fakeStore {
	s := &fakeStore{objects: map[string][]byte{"audio-loc": []byte("mp3bytes")}}
	for i := 0; i < n; i++ {
		s.objects[fmt.Sprintf("img-%d", i)] = []byte("png")
	}
	return s
}

func TestAcquire_FullBundle(t *testing.T) {
	a := newAcquirer(storeWith(3), fakeProber{avail: true, duration: 42.5})
	b, err := a.Acquire(context.Background(), Request{
		AudioRef:  "audio-loc",
		ImagesRef: imagesJSON(3),
	}, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 42.5, b.Audio.Duration)
	assert.True(t, b.Audio.Measured)
	assert.Equal(t, int64(8), b.Audio.ByteSize)
	require.Len(t, b.Images, 3)
	for i, img := range b.Images {
		assert.Equal(t, i+1, img.Index)
		assert.Equal(t, fmt.Sprintf("prompt %d", i), img.Prompt)
		assert.FileExists(t, img.Path)
	}
	assert.Empty(t, b.Warnings)
}

func TestAcquire_AudioFailureIsFatal(t *testing.T) {
	a := newAcquirer(&fakeStore{objects: map[string][]byte{}}, fakeProber{})
	_, err := a.Acquire(context.Background(), Request{AudioRef: "missing-audio"}, t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-audio")
}

func TestAcquire_ProbeFailureFallsBack(t *testing.T) {
	a := newAcquirer(storeWith(0), fakeProber{avail: true, err: errors.New("corrupt header")})
	b, err := a.Acquire(context.Background(), Request{AudioRef: "audio-loc"}, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 30.0, b.Audio.Duration)
	assert.False(t, b.Audio.Measured)
	require.NotEmpty(t, b.Warnings)
	assert.Contains(t, b.Warnings[0], "probe failed")
}

func TestAcquire_ProberUnavailableFallsBack(t *testing.T) {
	a := newAcquirer(storeWith(0), fakeProber{avail: false})
	b, err := a.Acquire(context.Background(), Request{AudioRef: "audio-loc"}, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 30.0, b.Audio.Duration)
	assert.False(t, b.Audio.Measured)
}

func TestAcquire_UnparsableImageListDegrades(t *testing.T) {
	a := newAcquirer(storeWith(0), fakeProber{avail: true, duration: 10})
	b, err := a.Acquire(context.Background(), Request{
		AudioRef:  "audio-loc",
		ImagesRef: "{not json at all",
	}, t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, b.Images)
	require.NotEmpty(t, b.Warnings)
	assert.Contains(t, b.Warnings[0], "image list unusable")
}

func TestAcquire_ImageListByLocator(t *testing.T) {
	store := storeWith(2)
	store.objects["list-loc"] = []byte(imagesJSON(2))

	a := newAcquirer(store, fakeProber{avail: true, duration: 10})
	b, err := a.Acquire(context.Background(), Request{
		AudioRef:  "audio-loc",
		ImagesRef: "list-loc",
	}, t.TempDir())

	require.NoError(t, err)
	assert.Len(t, b.Images, 2)
}

func TestAcquire_BareArrayForm(t *testing.T) {
	a := newAcquirer(storeWith(1), fakeProber{avail: true, duration: 10})
	b, err := a.Acquire(context.Background(), Request{
		AudioRef:  "audio-loc",
		ImagesRef: `[{"gcs_url":"img-0"}]`,
	}, t.TempDir())

	require.NoError(t, err)
	require.Len(t, b.Images, 1)
	assert.Equal(t, "img-0", b.Images[0].Locator)
}

func TestAcquire_PerImageFailureSkips(t *testing.T) {
	// Second of three images is missing from the store: the run keeps
	// the other two with contiguous indices.
	store := storeWith(3)
	delete(store.objects, "img-1")

	a := newAcquirer(store, fakeProber{avail: true, duration: 10})
	b, err := a.Acquire(context.Background(), Request{
		AudioRef:  "audio-loc",
		ImagesRef: imagesJSON(3),
	}, t.TempDir())

	require.NoError(t, err)
	require.Len(t, b.Images, 2)
	assert.Equal(t, 1, b.Images[0].Index)
	assert.Equal(t, 2, b.Images[1].Index)
	require.Len(t, b.Warnings, 1)
	assert.Contains(t, b.Warnings[0], "image 2")
}

func TestAcquire_EntryWithoutLocatorSkipped(t *testing.T) {
	a := newAcquirer(storeWith(1), fakeProber{avail: true, duration: 10})
	b, err := a.Acquire(context.Background(), Request{
		AudioRef:  "audio-loc",
		ImagesRef: `[{"prompt":"no locator"},{"url":"img-0"}]`,
	}, t.TempDir())

	require.NoError(t, err)
	require.Len(t, b.Images, 1)
	assert.Contains(t, b.Warnings[0], "no locator")
}

func TestAcquire_CaptionBestEffort(t *testing.T) {
	store := storeWith(0)
	store.objects["caption-loc"] = []byte("hello caption")

	a := newAcquirer(store, fakeProber{avail: true, duration: 10})
	b, err := a.Acquire(context.Background(), Request{
		AudioRef:   "audio-loc",
		CaptionRef: "caption-loc",
	}, t.TempDir())

	require.NoError(t, err)
	require.NotNil(t, b.Caption)
	assert.Equal(t, "hello caption", b.Caption.Text)

	// Missing caption degrades with a warning, not an error.
	b, err = a.Acquire(context.Background(), Request{
		AudioRef:   "audio-loc",
		CaptionRef: "nope",
	}, t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, b.Caption)
	assert.NotEmpty(t, b.Warnings)
}

func TestAcquire_AudioWrittenToWorkdir(t *testing.T) {
	dir := t.TempDir()
	a := newAcquirer(storeWith(0), fakeProber{avail: true, duration: 10})
	b, err := a.Acquire(context.Background(), Request{AudioRef: "audio-loc"}, dir)

	require.NoError(t, err)
	data, err := os.ReadFile(b.Audio.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3bytes"), data)
}
