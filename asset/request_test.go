package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"testing/fstest"
	"time"
)

// fakeResource is driven by the test instead of a decoder.
type fakeResource struct {
	path string

	mu        sync.Mutex
	complete  bool
	img       image.Image
	err       error
	onLoad    func()
	onError   func(error)
	loadRegs  int
	errorRegs int
}

func (r *fakeResource) Path() string { return r.path }

func (r *fakeResource) Complete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.complete
}

func (r *fakeResource) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *fakeResource) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.img
}

func (r *fakeResource) OnLoad(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadRegs++
	r.onLoad = fn
}

func (r *fakeResource) OnError(fn func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorRegs++
	r.onError = fn
}

func (r *fakeResource) load(img image.Image) {
	r.mu.Lock()
	r.complete = true
	r.img = img
	fn := r.onLoad
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (r *fakeResource) failWith(err error) {
	r.mu.Lock()
	r.complete = true
	r.err = err
	fn := r.onError
	r.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

type fakeHost struct {
	mu        sync.Mutex
	resources map[string]*fakeResource
	opened    []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{resources: make(map[string]*fakeResource)}
}

func (h *fakeHost) Open(path string) Resource {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = append(h.opened, path)
	r, ok := h.resources[path]
	if !ok {
		r = &fakeResource{path: path}
		h.resources[path] = r
	}
	return r
}

func (h *fakeHost) resource(path string) *fakeResource {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resources[path]
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRequestResolvesOnLoad(t *testing.T) {
	host := newFakeHost()
	req := Load(host, "man-ne", "assets/man-ne.png")
	if req.State() != Pending {
		t.Fatalf("expected pending, got %v", req.State())
	}
	res := host.resource("assets/man-ne.png")
	if res.loadRegs != 1 || res.errorRegs != 1 {
		t.Fatalf("expected one handler of each kind, got load=%d error=%d", res.loadRegs, res.errorRegs)
	}

	res.load(solid(4, 8))
	img, err := req.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if img.Name != "man-ne" || img.Width() != 4 || img.Height() != 8 {
		t.Fatalf("unexpected image %+v (%dx%d)", img, img.Width(), img.Height())
	}
	if req.State() != Loaded {
		t.Fatalf("expected loaded, got %v", req.State())
	}
}

func TestRequestResolvesOnError(t *testing.T) {
	host := newFakeHost()
	req := Load(host, "b", "b.png")
	cause := errors.New("404")
	host.resource("b.png").failWith(cause)

	img, err := req.Wait()
	if img != nil {
		t.Fatalf("expected no image, got %+v", img)
	}
	if !errors.Is(err, ErrLoad) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrLoad wrapping cause, got %v", err)
	}
	if req.State() != Failed {
		t.Fatalf("expected failed, got %v", req.State())
	}
}

func TestRequestAlreadyCompleteSkipsHandlers(t *testing.T) {
	host := newFakeHost()
	res := &fakeResource{path: "cached.png", complete: true, img: solid(2, 2)}
	host.resources["cached.png"] = res

	req := Load(host, "cached", "cached.png")

	select {
	case <-req.Done():
	default:
		t.Fatal("request for a cached resource should resolve without waiting")
	}
	if res.loadRegs != 0 || res.errorRegs != 0 {
		t.Fatalf("expected no handlers, got load=%d error=%d", res.loadRegs, res.errorRegs)
	}
	if _, err := req.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestRequestAlreadyFailed(t *testing.T) {
	host := newFakeHost()
	host.resources["broken.png"] = &fakeResource{path: "broken.png", complete: true, err: errors.New("bad data")}

	req := Load(host, "broken", "broken.png")
	if _, err := req.Wait(); !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestRequestSettlesOnce(t *testing.T) {
	host := newFakeHost()
	req := Load(host, "a", "a.png")
	res := host.resource("a.png")

	res.load(solid(1, 1))
	res.failWith(errors.New("late error"))

	for i := 0; i < 3; i++ {
		img, err := req.Wait()
		if err != nil || img == nil {
			t.Fatalf("poll %d: img=%v err=%v", i, img, err)
		}
	}
	if res.loadRegs != 1 || res.errorRegs != 1 {
		t.Fatalf("re-polling must not re-register handlers: load=%d error=%d", res.loadRegs, res.errorRegs)
	}
	if len(host.opened) != 1 {
		t.Fatalf("expected a single open, got %v", host.opened)
	}
}

func TestRequestNilHost(t *testing.T) {
	req := Load(nil, "x", "x.png")
	if _, err := req.Wait(); !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestPreloadStartsAllBeforeWaiting(t *testing.T) {
	host := newFakeHost()
	items := []NamedPath{{"a", "a.png"}, {"b", "b.png"}, {"c", "c.png"}}

	done := make(chan *Table)
	go func() { done <- Preload(host, items) }()

	// Resolve in reverse order; this only finishes if every request was
	// issued before the first Wait.
	deadline := time.After(5 * time.Second)
	for {
		host.mu.Lock()
		n := len(host.opened)
		host.mu.Unlock()
		if n == len(items) {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only %d of %d requests issued", n, len(items))
		case <-time.After(time.Millisecond):
		}
	}
	host.resource("c.png").load(solid(1, 1))
	host.resource("b.png").failWith(errors.New("missing"))
	host.resource("a.png").load(solid(1, 1))

	var table *Table
	select {
	case table = <-done:
	case <-deadline:
		t.Fatal("preload did not finish")
	}
	if got := table.Names(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("unexpected table names %v", got)
	}
}

func TestPreloadWithFSHost(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": &fstest.MapFile{Data: encodePNG(t, solid(3, 5))},
	}
	host := NewFSHost(fsys)

	table := Preload(host, []NamedPath{{"a.png", "a.png"}, {"b.png", "b.png"}})

	if table.Len() != 1 {
		t.Fatalf("expected one image, got %v", table.Names())
	}
	img, ok := table.Get("a.png")
	if !ok {
		t.Fatal("a.png missing from table")
	}
	if img.Width() != 3 || img.Height() != 5 {
		t.Fatalf("expected 3x5, got %dx%d", img.Width(), img.Height())
	}
	if _, ok := table.Get("b.png"); ok {
		t.Fatal("b.png should be absent")
	}
}

func TestFSHostCachesDecodedImages(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/wall-low.png": &fstest.MapFile{Data: encodePNG(t, solid(2, 2))},
	}
	host := NewFSHost(fsys)

	first := Load(host, "wall-low", "assets/wall-low.png")
	if _, err := first.Wait(); err != nil {
		t.Fatalf("first load: %v", err)
	}

	res := host.Open("wall-low.png")
	if !res.Complete() {
		t.Fatal("second open of a decoded path should already be complete")
	}
	second := Load(host, "wall-low", "wall-low.png")
	select {
	case <-second.Done():
	default:
		t.Fatal("cached load should resolve immediately")
	}
}

func TestFSHostDecodeError(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.png": &fstest.MapFile{Data: []byte("not an image")},
	}
	req := Load(NewFSHost(fsys), "bad", "bad.png")
	if _, err := req.Wait(); !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestBasename(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"assets/man-ne.png", "man-ne", true},
		{" assets/man-sw.png", "man-sw", true},
		{"assets/tiles/cretebrick970.png", "cretebrick970", true},
		{"archive.tar.gz", "archive.tar", true},
		{"noext", "", false},
		{"dir/.png", "", false},
		{"trailing.", "", false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			got, ok := Basename(c.path)
			if got != c.want || ok != c.ok {
				t.Fatalf("Basename(%q) = %q,%v want %q,%v", c.path, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestNamedPaths(t *testing.T) {
	named, invalid := NamedPaths("assets/a.png", "bogus", "b.webp")
	if len(named) != 2 || named[0].Name != "a" || named[1].Name != "b" {
		t.Fatalf("unexpected named paths %+v", named)
	}
	if len(invalid) != 1 || invalid[0] != "bogus" {
		t.Fatalf("unexpected invalid paths %v", invalid)
	}
}
