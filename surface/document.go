package surface

import "fmt"

// Registry is an in-memory Document.
type Registry struct {
	elements map[string]any
}

// NewRegistry creates an empty document.
func NewRegistry() *Registry {
	return &Registry{elements: make(map[string]any)}
}

// Register stores elem under id, replacing any previous element.
func (r *Registry) Register(id string, elem any) {
	if r == nil || id == "" {
		return
	}
	if r.elements == nil {
		r.elements = make(map[string]any)
	}
	r.elements[id] = elem
}

// ElementByID implements Document.
func (r *Registry) ElementByID(id string) (any, bool) {
	if r == nil {
		return nil, false
	}
	elem, ok := r.elements[id]
	return elem, ok
}

// Acquire resolves id to a canvas, sizes it and returns its 2D context.
// Every failure wraps ErrConfiguration and names the element.
func Acquire(doc Document, id string, width, height int) (Surface, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", ErrConfiguration)
	}
	elem, ok := doc.ElementByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: canvas id '%s' not found", ErrConfiguration, id)
	}
	canvas, ok := elem.(Canvas)
	if !ok || canvas == nil {
		return nil, fmt.Errorf("%w: element id '%s' is not a valid canvas", ErrConfiguration, id)
	}
	canvas.SetSize(width, height)
	surf, err := canvas.Context2D()
	if err != nil {
		return nil, fmt.Errorf("%w: %s.Context2D() failed: %w", ErrConfiguration, id, err)
	}
	if surf == nil {
		return nil, fmt.Errorf("%w: %s.Context2D() returned no surface", ErrConfiguration, id)
	}
	return surf, nil
}
