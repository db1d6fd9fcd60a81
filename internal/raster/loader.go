package raster

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Cache provides thread-safe caching of decoded raster images to avoid
// redundant disk reads.
//
// Decoded images are keyed by their exact file path string. Cache is safe for
// concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Long-running processes converting many images should evict entries
// once conversion finishes.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewCache creates and initializes a new empty image cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached.
//
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, and WebP. The decoded image
// is normalized to a row-major RGBA8 buffer regardless of source color model.
//
// The image is cached using the exact path string provided; relative and
// absolute paths to the same file produce separate entries.
func (c *Cache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadResized is Load with an additional maximum-dimension constraint.
//
// If the decoded image's larger dimension exceeds maxDim, it is downscaled
// with Lanczos resampling so that the larger dimension equals maxDim.
// Aspect ratio is preserved. maxDim <= 0 disables resizing.
//
// Resized variants are cached under a synthetic key so the full-size decode
// is not repeated for different maxDim values of the same file.
func (c *Cache) LoadResized(path string, maxDim int) (*Image, error) {
	if maxDim <= 0 {
		return c.Load(path)
	}

	key := fmt.Sprintf("%s#max=%d", path, maxDim)
	c.mu.RLock()
	if img, ok := c.images[key]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	full, err := c.Load(path)
	if err != nil {
		return nil, err
	}

	img := full
	if full.Width > maxDim || full.Height > maxDim {
		src := full.ToImage()
		var resized image.Image
		if full.Width >= full.Height {
			resized = imaging.Resize(src, maxDim, 0, imaging.Lanczos)
		} else {
			resized = imaging.Resize(src, 0, maxDim, imaging.Lanczos)
		}
		img = FromImage(resized)
	}

	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a single cached entry, freeing its memory.
// Evicting a path that is not cached is a no-op.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes all images from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// decodeFile opens and decodes an image file into a raster Image.
func decodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img), nil
}
