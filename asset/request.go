package asset

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
)

var (
	ErrLoad    = errors.New("asset: load failed")
	ErrNoImage = errors.New("asset: resource has no image")
)

// Resource is a host image object whose load finishes asynchronously.
//
// OnLoad and OnError register one-shot handlers. A host may drop handlers
// registered after the load already finished, so callers must check
// Complete before relying on them.
type Resource interface {
	Path() string
	Complete() bool
	Err() error
	Image() image.Image
	OnLoad(fn func())
	OnError(fn func(error))
}

// Host creates resources. Open starts the load and returns immediately.
type Host interface {
	Open(path string) Resource
}

// State is the lifecycle state of a Request.
type State int

const (
	Pending State = iota
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Request turns the two competing host handlers of one resource into a
// single terminal result.
type Request struct {
	Name string
	Path string

	res   Resource
	once  sync.Once
	done  chan struct{}
	state State
	img   *Image
	err   error
}

// Load opens path on host and returns a request that resolves exactly once.
func Load(host Host, name, path string) *Request {
	r := &Request{Name: name, Path: path, done: make(chan struct{})}
	if host == nil {
		r.fail(fmt.Errorf("no host"))
		return r
	}
	r.res = host.Open(path)
	if r.res == nil {
		r.fail(fmt.Errorf("host returned no resource"))
		return r
	}

	// Handlers attached to an already finished resource would never fire.
	if r.res.Complete() {
		r.settle()
		return r
	}

	r.res.OnLoad(r.settle)
	r.res.OnError(r.fail)

	// The host may have finished between the check and the registration.
	if r.res.Complete() {
		r.settle()
	}
	return r
}

// Wait blocks until the request is Loaded or Failed. Later calls return the
// same result without touching the host.
func (r *Request) Wait() (*Image, error) {
	<-r.done
	return r.img, r.err
}

// Done is closed once the request reaches a terminal state.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// State reports the current state without blocking.
func (r *Request) State() State {
	select {
	case <-r.done:
		return r.state
	default:
		return Pending
	}
}

func (r *Request) settle() {
	if err := r.res.Err(); err != nil {
		r.fail(err)
		return
	}
	src := r.res.Image()
	if src == nil {
		r.fail(ErrNoImage)
		return
	}
	r.resolve(&Image{Name: r.Name, Path: r.Path, Src: src}, nil)
}

func (r *Request) fail(err error) {
	r.resolve(nil, fmt.Errorf("%w: %s: %w", ErrLoad, r.Path, err))
}

func (r *Request) resolve(img *Image, err error) {
	r.once.Do(func() {
		r.img = img
		r.err = err
		if err != nil {
			r.state = Failed
		} else {
			r.state = Loaded
		}
		close(r.done)
	})
}

// Preload starts a request for every item before waiting on any of them,
// then collects the results in order. Failed loads are logged and left out
// of the returned table.
func Preload(host Host, items []NamedPath) *Table {
	reqs := make([]*Request, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, Load(host, it.Name, it.Path))
	}

	table := NewTable()
	for _, r := range reqs {
		img, err := r.Wait()
		if err != nil {
			log.Printf("asset: preload %q: %v", r.Name, err)
			continue
		}
		table.Register(r.Name, img)
	}
	return table
}
