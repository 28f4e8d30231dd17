package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// FSHost loads images from a list of file systems, tried in order.
// Decoding happens on a background goroutine; concurrent opens of the same
// path share one decode and successful decodes are cached.
type FSHost struct {
	fsys  []fs.FS
	group singleflight.Group

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewFSHost creates a host over the given file systems.
func NewFSHost(fsys ...fs.FS) *FSHost {
	return &FSHost{fsys: fsys, cache: make(map[string]image.Image)}
}

// Open starts loading path. A path decoded earlier yields a resource that is
// already complete.
func (h *FSHost) Open(p string) Resource {
	r := &fileResource{path: p}
	key := cleanAssetPath(p)

	h.mu.Lock()
	img, ok := h.cache[key]
	h.mu.Unlock()
	if ok {
		r.finish(img, nil)
		return r
	}

	go func() {
		v, err, _ := h.group.Do(key, func() (any, error) {
			img, err := h.decode(p, key)
			if err != nil {
				return nil, err
			}
			h.mu.Lock()
			h.cache[key] = img
			h.mu.Unlock()
			return img, nil
		})
		if err != nil {
			r.finish(nil, err)
			return
		}
		r.finish(v.(image.Image), nil)
	}()
	return r
}

func (h *FSHost) decode(p, key string) (image.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image path")
	}
	tried := []string{key, path.Join("assets", key), path.Base(key)}
	for _, fsys := range h.fsys {
		for _, name := range tried {
			if !fs.ValidPath(name) {
				continue
			}
			b, err := fs.ReadFile(fsys, name)
			if err != nil {
				continue
			}
			img, _, err := image.Decode(bytes.NewReader(b))
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", name, err)
			}
			return img, nil
		}
	}
	if filepath.IsAbs(p) {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("image %s not found", p)
}

// fileResource mirrors a browser image element: handlers registered after
// the load finished are never called.
type fileResource struct {
	path string

	mu      sync.Mutex
	done    bool
	img     image.Image
	err     error
	onLoad  func()
	onError func(error)
}

func (r *fileResource) Path() string { return r.path }

func (r *fileResource) Complete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *fileResource) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *fileResource) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.img
}

func (r *fileResource) OnLoad(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.done {
		r.onLoad = fn
	}
}

func (r *fileResource) OnError(fn func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.done {
		r.onError = fn
	}
}

func (r *fileResource) finish(img image.Image, err error) {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	r.done = true
	r.img = img
	r.err = err
	onLoad, onError := r.onLoad, r.onError
	r.onLoad, r.onError = nil, nil
	r.mu.Unlock()

	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	if onLoad != nil {
		onLoad()
	}
}

func cleanAssetPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		s := filepath.ToSlash(p)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(p)
	}
	s := path.Clean(filepath.ToSlash(p))
	s = strings.TrimPrefix(s, "./")
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
