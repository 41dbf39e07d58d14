package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/riv/internal/imaging"
)

// countingSource serves fixed files from memory and counts reads.
type countingSource struct {
	files map[string][]byte
	reads map[string]int
}

func newCountingSource() *countingSource {
	return &countingSource{files: make(map[string][]byte), reads: make(map[string]int)}
}

func (s *countingSource) ReadFile(path string) ([]byte, error) {
	s.reads[path]++
	data, ok := s.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

// countingDecoder wraps ImageDecoder and counts calls.
type countingDecoder struct {
	calls int
}

func (d *countingDecoder) Decode(data []byte) (*imaging.Surface, error) {
	d.calls++
	return ImageDecoder.Decode(data)
}

// failingBackend fails texture creation.
type failingBackend struct{}

func (failingBackend) CreateTexture(int, int, imaging.PixelFormat, Access) (Texture, error) {
	return nil, errors.New("out of graphics memory")
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newTestCache(t *testing.T, cfg Config) (*Cache, *countingSource, *countingDecoder, *MemBackend) {
	t.Helper()
	src := newCountingSource()
	for i := 0; i < 6; i++ {
		src.files[fmt.Sprintf("img%d.png", i)] = pngBytes(t, 8+i, 6)
	}
	dec := &countingDecoder{}
	backend := NewMemBackend()
	return New(backend, src, dec, cfg), src, dec, backend
}

func TestLoadForIndexCachesDecode(t *testing.T) {
	c, src, dec, backend := newTestCache(t, DefaultConfig())

	for i := 0; i < 2; i++ {
		tex, err := c.LoadForIndex(3, "img3.png")
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if w, h := tex.Size(); w != 11 || h != 6 {
			t.Errorf("size = %dx%d, want 11x6", w, h)
		}
	}

	if src.reads["img3.png"] != 1 {
		t.Errorf("file reads = %d, want 1", src.reads["img3.png"])
	}
	if dec.calls != 1 {
		t.Errorf("decodes = %d, want 1", dec.calls)
	}
	if backend.Created() != 2 {
		t.Errorf("textures created = %d, want 2 (one per display)", backend.Created())
	}
	if backend.Live() != 1 {
		t.Errorf("live textures = %d, want 1", backend.Live())
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Entries != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.HitRate() != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", st.HitRate())
	}
	if r := c.LastReport(); !r.Hit || r.Index != 3 || r.Chunks != 1 {
		t.Errorf("report = %+v", r)
	}
}

func TestLoadForIndexUploadsPixels(t *testing.T) {
	c, _, _, _ := newTestCache(t, Config{ChunkPixels: 10})

	tex, err := c.LoadForIndex(0, "img0.png")
	if err != nil {
		t.Fatalf("LoadForIndex: %v", err)
	}
	mt := tex.(*MemTexture)
	if mt.Format() != imaging.TextureFormat {
		t.Errorf("format = %v, want %v", mt.Format(), imaging.TextureFormat)
	}
	if mt.Updates() != 3 {
		// 48 pixels / 10 = 4 bands of ceil(6/4) = 2 rows, so three bands.
		t.Errorf("updates = %d, want 3", mt.Updates())
	}
	s := mt.Surface()
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			i := y*s.Stride + x*4
			if s.Pix[i] != uint8(x) || s.Pix[i+1] != uint8(y) || s.Pix[i+2] != 7 || s.Pix[i+3] != 255 {
				t.Fatalf("pixel (%d,%d) = %v", x, y, s.Pix[i:i+4])
			}
		}
	}
}

func TestLoadForIndexMissingFile(t *testing.T) {
	c, _, _, _ := newTestCache(t, DefaultConfig())

	if _, err := c.LoadForIndex(1, "img1.png"); err != nil {
		t.Fatalf("LoadForIndex: %v", err)
	}
	before := c.Current()

	_, err := c.LoadForIndex(7, "missing.png")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrRead) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want ErrRead wrapping ErrNotExist", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Path != "missing.png" || le.Index != 7 || le.Op != OpRead {
		t.Errorf("LoadError = %+v", le)
	}
	if idx, ok := c.LastIndex(); !ok || idx != 1 {
		t.Errorf("LastIndex() = (%d, %v), want (1, true)", idx, ok)
	}
	if c.Current() != before {
		t.Error("current texture replaced by a failed load")
	}
}

func TestLoadForIndexErrors(t *testing.T) {
	src := newCountingSource()
	src.files["bad.png"] = []byte("not an image")
	src.files["good.png"] = pngBytes(t, 4, 4)

	tests := []struct {
		name    string
		backend Backend
		index   int
		path    string
		class   error
		op      Op
	}{
		{"decode", NewMemBackend(), 0, "bad.png", ErrDecode, OpDecode},
		{"texture", failingBackend{}, 0, "good.png", ErrBackend, OpTexture},
		{"too large", &MemBackend{MaxPixels: 1}, 0, "good.png", ErrBackend, OpTexture},
		{"negative index", NewMemBackend(), -1, "good.png", ErrRead, OpRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.backend, src, nil, DefaultConfig())
			_, err := c.LoadForIndex(tt.index, tt.path)
			if !errors.Is(err, tt.class) {
				t.Fatalf("error = %v, want %v", err, tt.class)
			}
			var le *LoadError
			if !errors.As(err, &le) || le.Op != tt.op {
				t.Errorf("op = %v, want %v", le, tt.op)
			}
			if _, ok := c.LastIndex(); ok {
				t.Error("LastIndex set after failed load")
			}
		})
	}
}

func TestBackendErrorKeepsSurface(t *testing.T) {
	src := newCountingSource()
	src.files["a.png"] = pngBytes(t, 4, 4)
	c := New(failingBackend{}, src, nil, DefaultConfig())

	_, err := c.LoadForIndex(0, "a.png")
	if !IsBackend(err) {
		t.Fatalf("IsBackend(%v) = false", err)
	}
	if _, ok := c.Surface(0); !ok {
		t.Error("decoded surface should stay cached after a backend failure")
	}
}

func TestUploadFailureDestroysTexture(t *testing.T) {
	src := newCountingSource()
	src.files["a.png"] = pngBytes(t, 4, 4)
	backend := &shortBackend{MemBackend: NewMemBackend()}
	c := New(backend, src, nil, DefaultConfig())

	_, err := c.LoadForIndex(0, "a.png")
	var le *LoadError
	if !errors.As(err, &le) || le.Op != OpUpload {
		t.Fatalf("error = %v, want upload failure", err)
	}
	if backend.Live() != 0 {
		t.Errorf("live textures = %d, want 0", backend.Live())
	}
}

// shortBackend creates textures whose Update always fails.
type shortBackend struct {
	*MemBackend
}

type brokenTexture struct {
	Texture
}

func (brokenTexture) Update(image.Rectangle, []byte, int) error {
	return errors.New("device lost")
}

func (b *shortBackend) CreateTexture(w, h int, f imaging.PixelFormat, a Access) (Texture, error) {
	tex, err := b.MemBackend.CreateTexture(w, h, f, a)
	if err != nil {
		return nil, err
	}
	return brokenTexture{tex}, nil
}

func TestPathChangeAtIndex(t *testing.T) {
	c, src, dec, _ := newTestCache(t, DefaultConfig())

	if _, err := c.LoadForIndex(0, "img0.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.LoadForIndex(0, "img1.png"); err != nil {
		t.Fatal(err)
	}
	if dec.calls != 2 || src.reads["img1.png"] != 1 {
		t.Errorf("decodes = %d, reads = %d; a new path at the same index must reload", dec.calls, src.reads["img1.png"])
	}
	if w, _ := c.Current().Size(); w != 9 {
		t.Errorf("current width = %d, want 9", w)
	}
}

func TestUnboundedByDefault(t *testing.T) {
	c, _, _, _ := newTestCache(t, DefaultConfig())
	for i := 0; i < 6; i++ {
		if _, err := c.LoadForIndex(i, fmt.Sprintf("img%d.png", i)); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 6 {
		t.Errorf("Len() = %d, want 6", c.Len())
	}
	if c.Stats().Evictions != 0 {
		t.Errorf("evictions = %d, want 0", c.Stats().Evictions)
	}
}

func TestCapacityEvictsLRU(t *testing.T) {
	c, src, _, _ := newTestCache(t, Config{Capacity: 2})

	load := func(i int) {
		t.Helper()
		if _, err := c.LoadForIndex(i, fmt.Sprintf("img%d.png", i)); err != nil {
			t.Fatal(err)
		}
	}
	load(0)
	load(1)
	load(0) // 0 is now most recent
	load(2) // evicts 1

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Surface(1); ok {
		t.Error("index 1 should have been evicted")
	}
	if _, ok := c.Surface(0); !ok {
		t.Error("index 0 should be cached")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("evictions = %d, want 1", c.Stats().Evictions)
	}

	load(1)
	if src.reads["img1.png"] != 2 {
		t.Errorf("reads of evicted file = %d, want 2", src.reads["img1.png"])
	}
}

func TestCapacityKeepsDisplayed(t *testing.T) {
	c, _, _, _ := newTestCache(t, Config{Capacity: 1})

	if _, err := c.LoadForIndex(0, "img0.png"); err != nil {
		t.Fatal(err)
	}
	// Loading 1 may not evict 0 while 0 is displayed, and may not evict 1
	// while it is being loaded.
	if _, err := c.LoadForIndex(1, "img1.png"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Surface(1); !ok {
		t.Error("loaded index must be cached")
	}
	if _, err := c.LoadForIndex(2, "img2.png"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Surface(0); ok {
		t.Error("index 0 is no longer displayed and should be evicted")
	}
	if _, ok := c.Surface(2); !ok {
		t.Error("index 2 must be cached")
	}
}

func TestInvalidateMarksDirty(t *testing.T) {
	c, src, _, _ := newTestCache(t, DefaultConfig())

	if _, err := c.LoadForIndex(2, "img2.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.LoadForIndex(4, "img4.png"); err != nil {
		t.Fatal(err)
	}
	if c.Dirty() || c.NeedsLoad(4) {
		t.Fatal("fresh load should not be dirty")
	}
	if !c.NeedsLoad(2) {
		t.Error("a different index needs a load")
	}

	if n := c.InvalidatePath("img2.png"); n != 1 {
		t.Errorf("InvalidatePath = %d, want 1", n)
	}
	if c.Dirty() {
		t.Error("invalidating a non-displayed index must not mark dirty")
	}

	if n := c.InvalidatePath("img4.png"); n != 1 {
		t.Errorf("InvalidatePath = %d, want 1", n)
	}
	if !c.Dirty() || !c.NeedsLoad(4) {
		t.Error("invalidating the displayed index must mark dirty")
	}
	if c.InvalidatePath("img4.png") != 0 {
		t.Error("second invalidation should drop nothing")
	}

	if _, err := c.LoadForIndex(4, "img4.png"); err != nil {
		t.Fatal(err)
	}
	if c.Dirty() {
		t.Error("reload should clear dirty")
	}
	if src.reads["img4.png"] != 2 {
		t.Errorf("reads = %d, want 2", src.reads["img4.png"])
	}
	if c.Stats().Invalidations != 2 {
		t.Errorf("invalidations = %d, want 2", c.Stats().Invalidations)
	}
}

func TestClearAndClose(t *testing.T) {
	c, _, _, backend := newTestCache(t, DefaultConfig())
	if _, err := c.LoadForIndex(0, "img0.png"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Info(0); !ok {
		t.Error("Info(0) missing")
	}
	if got := c.Paths(); len(got) != 1 || got[0] != "img0.png" {
		t.Errorf("Paths() = %v", got)
	}

	c.Clear()
	if c.Len() != 0 || !c.Dirty() {
		t.Errorf("after Clear: Len = %d, Dirty = %v", c.Len(), c.Dirty())
	}
	if c.Current() == nil {
		t.Error("Clear must keep the displayed texture")
	}

	c.Close()
	if backend.Live() != 0 {
		t.Errorf("live textures after Close = %d", backend.Live())
	}
	if _, err := c.LoadForIndex(0, "img0.png"); !errors.Is(err, ErrClosed) {
		t.Errorf("load after Close = %v, want ErrClosed", err)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.png")
	if err := os.WriteFile(path, pngBytes(t, 3, 2), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(NewMemBackend(), nil, nil, DefaultConfig())
	tex, err := c.LoadForIndex(0, path)
	if err != nil {
		t.Fatalf("LoadForIndex: %v", err)
	}
	if w, h := tex.Size(); w != 3 || h != 2 {
		t.Errorf("size = %dx%d", w, h)
	}
	if info, _ := c.Info(0); info.Format != "png" {
		t.Errorf("info = %+v", info)
	}
}
