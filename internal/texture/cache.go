package texture

import (
	"container/list"
	"time"

	"github.com/dshills/riv/internal/imaging"
)

// Config configures a Cache.
type Config struct {
	// Capacity bounds the number of cached surfaces. Zero means unbounded.
	Capacity int

	// ChunkPixels is the upload budget per Update call.
	ChunkPixels int

	// Access is passed to Backend.CreateTexture.
	Access Access
}

// DefaultConfig returns an unbounded cache with the default chunk budget.
func DefaultConfig() Config {
	return Config{
		Capacity:    0,
		ChunkPixels: DefaultChunkPixels,
		Access:      AccessStatic,
	}
}

// entry is a decoded image cached for one index.
type entry struct {
	index   int
	path    string
	surface *imaging.Surface
	info    *imaging.Info
	element *list.Element
}

// Stats contains cache statistics for monitoring.
type Stats struct {
	// Entries is the number of cached surfaces.
	Entries int
	// Hits is the number of loads served without reading the file.
	Hits uint64
	// Misses is the number of loads that read and decoded the file.
	Misses uint64
	// Evictions is the number of surfaces dropped by the capacity bound.
	Evictions uint64
	// Invalidations is the number of surfaces dropped because their file changed.
	Invalidations uint64
	// Uploads is the number of Update calls made.
	Uploads uint64
}

// HitRate returns hits / (hits + misses), or 0 with no loads.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Report describes the most recent successful load.
type Report struct {
	Index    int
	Path     string
	Hit      bool
	Width    int
	Height   int
	Chunks   int
	Duration time.Duration
}

// Cache maps navigation indices to decoded surfaces and keeps the texture
// for the displayed index.
//
// A load reads and decodes the file on first use of an index. Every load,
// hit or miss, creates a fresh texture and uploads the surface in bounded
// chunks. The previous texture is destroyed once the new one is ready.
//
// Cache is not safe for concurrent use; it belongs to the event loop.
type Cache struct {
	backend Backend
	source  Source
	decoder Decoder
	config  Config

	entries map[int]*entry
	lru     *list.List // front = most recent

	current   Texture
	lastIndex int
	hasLast   bool
	dirty     bool
	closed    bool

	stats  Stats
	report Report
	now    func() time.Time
}

// New creates a cache that uploads to backend. A nil source reads from the
// file system and a nil decoder uses ImageDecoder.
func New(backend Backend, source Source, decoder Decoder, config Config) *Cache {
	if source == nil {
		source = FileSource
	}
	if decoder == nil {
		decoder = ImageDecoder
	}
	if config.ChunkPixels <= 0 {
		config.ChunkPixels = DefaultChunkPixels
	}
	if config.Capacity < 0 {
		config.Capacity = 0
	}
	return &Cache{
		backend: backend,
		source:  source,
		decoder: decoder,
		config:  config,
		entries: make(map[int]*entry),
		lru:     list.New(),
		now:     time.Now,
	}
}

// LoadForIndex makes the image at path, shown at position index, the
// current texture. On failure the current texture and LastIndex are left
// as they were and the error is a *LoadError.
func (c *Cache) LoadForIndex(index int, path string) (Texture, error) {
	if c.closed {
		return nil, &LoadError{Op: OpTexture, Path: path, Index: index, Err: ErrClosed}
	}
	if index < 0 {
		return nil, &LoadError{Op: OpRead, Path: path, Index: index, Err: ErrInvalidIndex}
	}
	start := c.now()

	e, hit := c.lookup(index, path)
	if !hit {
		var err error
		e, err = c.decode(index, path)
		if err != nil {
			return nil, err
		}
	}

	s := e.surface
	tex, err := c.backend.CreateTexture(s.Width, s.Height, s.Format, c.config.Access)
	if err != nil {
		return nil, &LoadError{Op: OpTexture, Path: path, Index: index, Err: err}
	}
	chunks, err := Upload(tex, s, c.config.ChunkPixels)
	c.stats.Uploads += uint64(chunks)
	if err != nil {
		tex.Destroy()
		return nil, &LoadError{Op: OpUpload, Path: path, Index: index, Err: err}
	}

	if c.current != nil {
		c.current.Destroy()
	}
	c.current = tex
	c.lastIndex = index
	c.hasLast = true
	c.dirty = false
	c.report = Report{
		Index:    index,
		Path:     path,
		Hit:      hit,
		Width:    s.Width,
		Height:   s.Height,
		Chunks:   chunks,
		Duration: c.now().Sub(start),
	}
	return tex, nil
}

// lookup returns the cached entry for index if it was decoded from path.
// An entry for a different path is stale and dropped.
func (c *Cache) lookup(index int, path string) (*entry, bool) {
	e, ok := c.entries[index]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if e.path != path {
		c.remove(e)
		c.stats.Misses++
		return nil, false
	}
	c.lru.MoveToFront(e.element)
	c.stats.Hits++
	return e, true
}

func (c *Cache) decode(index int, path string) (*entry, error) {
	data, err := c.source.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Op: OpRead, Path: path, Index: index, Err: err}
	}
	s, err := c.decoder.Decode(data)
	if err != nil {
		return nil, &LoadError{Op: OpDecode, Path: path, Index: index, Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, &LoadError{Op: OpDecode, Path: path, Index: index, Err: err}
	}
	info, err := imaging.DecodeInfo(data)
	if err != nil {
		info = &imaging.Info{Width: s.Width, Height: s.Height, Size: int64(len(data))}
	}

	e := &entry{index: index, path: path, surface: s, info: info}
	e.element = c.lru.PushFront(e)
	c.entries[index] = e
	c.evict(index)
	return e, nil
}

// evict drops least recently used entries over capacity, never the entry
// being loaded nor the displayed one.
func (c *Cache) evict(loading int) {
	if c.config.Capacity <= 0 {
		return
	}
	for el := c.lru.Back(); el != nil && len(c.entries) > c.config.Capacity; {
		prev := el.Prev()
		e := el.Value.(*entry)
		if e.index != loading && !(c.hasLast && e.index == c.lastIndex) {
			c.remove(e)
			c.stats.Evictions++
		}
		el = prev
	}
}

func (c *Cache) remove(e *entry) {
	c.lru.Remove(e.element)
	delete(c.entries, e.index)
}

// Current returns the displayed texture, or nil before the first load.
func (c *Cache) Current() Texture {
	return c.current
}

// LastIndex returns the index of the displayed texture.
func (c *Cache) LastIndex() (int, bool) {
	return c.lastIndex, c.hasLast
}

// Dirty reports whether the displayed texture is stale and must be
// reloaded before the next draw.
func (c *Cache) Dirty() bool {
	return c.dirty
}

// MarkDirty flags the displayed texture as stale.
func (c *Cache) MarkDirty() {
	c.dirty = true
}

// NeedsLoad reports whether index must be loaded before drawing: it is not
// the displayed index, or the displayed texture is dirty.
func (c *Cache) NeedsLoad(index int) bool {
	return c.dirty || !c.hasLast || c.lastIndex != index || c.current == nil
}

// Surface returns the cached surface for index.
func (c *Cache) Surface(index int) (*imaging.Surface, bool) {
	e, ok := c.entries[index]
	if !ok {
		return nil, false
	}
	return e.surface, true
}

// Info returns the metadata cached for index.
func (c *Cache) Info(index int) (*imaging.Info, bool) {
	e, ok := c.entries[index]
	if !ok {
		return nil, false
	}
	return e.info, true
}

// Invalidate drops the surface cached for index. If index is displayed the
// cache becomes dirty.
func (c *Cache) Invalidate(index int) bool {
	e, ok := c.entries[index]
	if !ok {
		return false
	}
	c.remove(e)
	c.stats.Invalidations++
	if c.hasLast && c.lastIndex == index {
		c.dirty = true
	}
	return true
}

// InvalidatePath drops every surface decoded from path and returns how
// many were dropped.
func (c *Cache) InvalidatePath(path string) int {
	var n int
	for idx, e := range c.entries {
		if e.path == path && c.Invalidate(idx) {
			n++
		}
	}
	return n
}

// Paths returns the paths of all cached surfaces.
func (c *Cache) Paths() []string {
	paths := make([]string, 0, len(c.entries))
	for el := c.lru.Front(); el != nil; el = el.Next() {
		paths = append(paths, el.Value.(*entry).path)
	}
	return paths
}

// Clear drops all cached surfaces. The displayed texture is kept but
// marked dirty.
func (c *Cache) Clear() {
	c.entries = make(map[int]*entry)
	c.lru.Init()
	if c.hasLast {
		c.dirty = true
	}
}

// Len returns the number of cached surfaces.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// LastReport describes the most recent successful load.
func (c *Cache) LastReport() Report {
	return c.report
}

// Close destroys the displayed texture and drops all entries.
func (c *Cache) Close() {
	if c.current != nil {
		c.current.Destroy()
		c.current = nil
	}
	c.entries = make(map[int]*entry)
	c.lru.Init()
	c.closed = true
}
