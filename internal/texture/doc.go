// Package texture turns image files into backend textures and caches the
// decoded pixels by navigation index.
//
// The first load of an index reads the file, decodes it into a surface in
// imaging.TextureFormat and keeps the surface. Every load, including cache
// hits, creates a fresh texture and uploads the surface in row bands of at
// most Config.ChunkPixels pixels, so a single upload call never moves an
// unbounded amount of data.
//
// The cache is unbounded unless Config.Capacity is set, in which case the
// least recently used surfaces are evicted. The displayed index is never
// evicted.
//
// Failures are returned as *LoadError and classified as ErrRead, ErrDecode
// or ErrBackend. Nothing is retried.
package texture
