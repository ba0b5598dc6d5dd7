package field

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Cache provides thread-safe caching of loaded grids to avoid re-reading sources.
//
// Grids are keyed by the exact path string passed to Load. Sources are
// dispatched by file extension:
//   - ".csv", ".txt": LoadCSV
//   - ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff": LoadHeightmap
//
// Cached grids are immutable and may be handed to concurrent analyses.
type Cache struct {
	mu        sync.RWMutex
	grids     map[string]*Grid
	heightmap HeightmapOptions
}

// NewCache creates an empty cache. opts applies to every image source it loads.
func NewCache(opts HeightmapOptions) *Cache {
	return &Cache{
		grids:     make(map[string]*Grid),
		heightmap: opts,
	}
}

// Load returns the cached grid for path, reading the source on first use.
//
// Errors:
//   - ErrUnsupportedFormat if the extension has no loader
//   - any ingestion error from LoadCSV or LoadHeightmap
func (c *Cache) Load(path string) (*Grid, error) {
	c.mu.RLock()
	if g, ok := c.grids[path]; ok {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	var (
		g   *Grid
		err error
	)
	switch format := FormatOf(path); format {
	case "csv":
		g, err = LoadCSV(path)
	case "image":
		g, err = LoadHeightmap(path, c.heightmap)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.grids[path] = g
	c.mu.Unlock()

	return g, nil
}

// Clear drops every cached grid.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.grids = make(map[string]*Grid)
	c.mu.Unlock()
}

// Evict drops the grid cached for path, if any.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.grids, path)
	c.mu.Unlock()
}

// Len reports how many grids are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.grids)
}

// FormatOf classifies a path by extension as "csv", "image" or "unknown".
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return "csv"
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return "image"
	}
	return "unknown"
}

// Info summarizes a grid.
type Info struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	XMin   float64 `json:"x_min"`
	XMax   float64 `json:"x_max"`
	YMin   float64 `json:"y_min"`
	YMax   float64 `json:"y_max"`
	SMin   float64 `json:"s_min"`
	SMax   float64 `json:"s_max"`
	SMean  float64 `json:"s_mean"`

	// Format is "csv" or "image"; empty for grids not loaded from a file.
	Format string `json:"format,omitempty"`

	// FileSizeBytes is the size of the source on disk; 0 when not loaded from a file.
	FileSizeBytes int64 `json:"file_size_bytes,omitempty"`
}

// Describe computes axis extents and value statistics for g.
func Describe(g *Grid) *Info {
	all := make([]float64, 0, g.Width()*g.Height())
	row := make([]float64, g.Width())
	for r := 0; r < g.Height(); r++ {
		all = append(all, g.Row(r, row)...)
	}

	return &Info{
		Width:  g.Width(),
		Height: g.Height(),
		XMin:   g.xs[0],
		XMax:   g.xs[len(g.xs)-1],
		YMin:   g.ys[0],
		YMax:   g.ys[len(g.ys)-1],
		SMin:   floats.Min(all),
		SMax:   floats.Max(all),
		SMean:  floats.Sum(all) / float64(len(all)),
	}
}

// LoadInfo loads path through the cache and describes it, adding the source
// format and file size. FileSizeBytes stays 0 when the file is no longer on
// disk but its grid is still cached.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	g, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	info := Describe(g)
	info.Format = FormatOf(path)
	if stat, err := os.Stat(path); err == nil {
		info.FileSizeBytes = stat.Size()
	}
	return info, nil
}
