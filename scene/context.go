package scene

import (
	"sync"

	"github.com/milk9111/isomap/asset"
)

// Context owns one scene and serializes preload, grid building, mutation and
// rendering. Hosts create one per scene and pass it explicitly.
type Context struct {
	mu    sync.Mutex
	scene *Scene
}

// NewContext wraps sc.
func NewContext(sc *Scene) *Context {
	return &Context{scene: sc}
}

// Preload fills the scene's image table. It blocks until every request has
// settled.
func (c *Context) Preload(host asset.Host, items []asset.NamedPath) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.LoadImages(host, items)
}

func (c *Context) BuildGrid() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.BuildGrid()
}

func (c *Context) Render() FrameStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Render()
}

// Do runs fn with exclusive access to the scene.
func (c *Context) Do(fn func(*Scene) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.scene)
}

// Scene returns the wrapped scene. Callers must not use it concurrently
// with the context's other methods.
func (c *Context) Scene() *Scene {
	return c.scene
}
