// Package render turns a design snapshot into a flattened raster image:
// it resolves catalog paths to decoded images through a session cache and
// composites them with the current view transform.
package render

import (
	"fmt"
	"image"
	_ "image/gif" // register stdlib decoders
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	_ "golang.org/x/image/webp" // catalog art is often web-exported
)

// LoadFunc decodes the image at path. Swappable so tests and tools can
// feed in-memory images instead of files.
type LoadFunc func(path string) (image.Image, error)

// DecodeFile is the default LoadFunc, reading from disk.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// ImageCache maps catalog paths to decoded images, decoding each distinct
// path at most once for the life of the process. Failures are cached too:
// the catalogs are fixed, so a broken asset stays broken until restart.
// Safe for concurrent use; racing resolves of the same path share one decode.
type ImageCache struct {
	mu     sync.Mutex
	load   LoadFunc
	images map[string]image.Image
	errs   map[string]error
	group  singleflight.Group
}

// NewImageCache creates a cache backed by load, or by DecodeFile when load
// is nil.
func NewImageCache(load LoadFunc) *ImageCache {
	if load == nil {
		load = DecodeFile
	}
	return &ImageCache{
		load:   load,
		images: make(map[string]image.Image),
		errs:   make(map[string]error),
	}
}

// Resolve returns the decoded image for path, or the recorded failure.
func (c *ImageCache) Resolve(path string) (image.Image, error) {
	c.mu.Lock()
	if img, ok := c.images[path]; ok {
		c.mu.Unlock()
		return img, nil
	}
	if err, ok := c.errs[path]; ok {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		img, err := c.load(path)
		c.mu.Lock()
		if err != nil {
			c.errs[path] = err
		} else {
			c.images[path] = img
		}
		c.mu.Unlock()
		return img, err
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Len reports how many paths have resolved successfully.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}
