package scan

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/scanquiz/internal/catalog"
)

// Library caches decoded and generated scans. Concurrent requests for the
// same scan share one load.
type Library struct {
	mu     sync.RWMutex
	images map[string]*image.Gray
	sf     singleflight.Group
	load   func(catalog.ScanRef) (*image.Gray, error)
}

// NewLibrary returns an empty cache backed by Load.
func NewLibrary() *Library {
	return &Library{
		images: make(map[string]*image.Gray),
		load:   Load,
	}
}

// Get returns the image for ref, loading it on first use. Failed loads are
// not cached.
func (l *Library) Get(ref catalog.ScanRef) (*image.Gray, error) {
	key := cacheKey(ref)

	l.mu.RLock()
	img, ok := l.images[key]
	l.mu.RUnlock()
	if ok {
		return img, nil
	}

	v, err, _ := l.sf.Do(key, func() (any, error) {
		// Re-check in case another caller filled it.
		l.mu.RLock()
		img, ok := l.images[key]
		l.mu.RUnlock()
		if ok {
			return img, nil
		}

		img, err := l.load(ref)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.images[key] = img
		l.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*image.Gray), nil
}

// Len returns the number of cached scans.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images)
}

func cacheKey(ref catalog.ScanRef) string {
	if !ref.Synthetic() {
		return "file:" + ref.Path
	}
	return fmt.Sprintf("phantom:%d:%s:%t", ref.Seed, strings.Join(ref.Findings, ","), ref.Annotate)
}
