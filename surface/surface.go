// Package surface defines the 2D drawing surface the renderer paints on and
// the document lookup used to acquire one.
package surface

import (
	"errors"
	"image/color"

	"github.com/milk9111/isomap/asset"
)

var (
	ErrConfiguration = errors.New("surface: configuration failure")
	ErrInvalidImage  = errors.New("surface: invalid image")
)

// Surface is a stateful canvas-style drawing context in pixel coordinates.
type Surface interface {
	Size() (width, height int)
	ClearRect(x, y, w, h float64)

	Save()
	Restore()
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	Fill()

	StrokeRect(x, y, w, h float64)
	FillText(s string, x, y float64)

	DrawImage(img *asset.Image, dx, dy float64) error
	DrawImageScaled(img *asset.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error
}

// Canvas is a document element that can provide a Surface.
type Canvas interface {
	SetSize(width, height int)
	Context2D() (Surface, error)
}

// Document resolves elements by identifier.
type Document interface {
	ElementByID(id string) (any, bool)
}

// State is the part of a surface saved and restored by Save/Restore.
type State struct {
	Fill      color.Color
	Stroke    color.Color
	LineWidth float64
}

// DefaultState matches a fresh 2D context: black fill and stroke, 1px lines.
func DefaultState() State {
	return State{Fill: color.Black, Stroke: color.Black, LineWidth: 1}
}

// StateStack implements Save/Restore bookkeeping for Surface implementations.
type StateStack struct {
	Current State
	saved   []State
}

// NewStateStack starts from DefaultState.
func NewStateStack() StateStack {
	return StateStack{Current: DefaultState()}
}

func (s *StateStack) Save() {
	s.saved = append(s.saved, s.Current)
}

// Restore pops the last saved state; an unbalanced Restore is ignored.
func (s *StateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.Current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// ValidImage reports whether img can be blitted.
func ValidImage(img *asset.Image) bool {
	return img != nil && img.Src != nil && img.Width() > 0 && img.Height() > 0
}
