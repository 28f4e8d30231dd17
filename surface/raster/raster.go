// Package raster is a software Surface backed by an *image.RGBA. It needs no
// window or GPU and is used for headless snapshots and pixel tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/milk9111/isomap/asset"
	"github.com/milk9111/isomap/surface"
)

// Canvas is a document element that allocates its pixels on SetSize.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates an unsized canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (c *Canvas) Context2D() (surface.Surface, error) {
	if c.img == nil || c.img.Bounds().Empty() {
		return nil, fmt.Errorf("raster: canvas has no pixels")
	}
	return New(c.img), nil
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Surface draws into an RGBA image.
type Surface struct {
	dst   *image.RGBA
	state surface.StateStack
	path  surface.Path
	face  font.Face
}

// New wraps dst.
func New(dst *image.RGBA) *Surface {
	return &Surface{dst: dst, state: surface.NewStateStack(), face: basicfont.Face7x13}
}

func (s *Surface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	r := rect(x, y, w, h).Intersect(s.dst.Bounds())
	draw.Draw(s.dst, r, image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) Save()    { s.state.Save() }
func (s *Surface) Restore() { s.state.Restore() }

func (s *Surface) SetFillColor(c color.Color) {
	if c != nil {
		s.state.Current.Fill = c
	}
}

func (s *Surface) SetStrokeColor(c color.Color) {
	if c != nil {
		s.state.Current.Stroke = c
	}
}

func (s *Surface) BeginPath()          { s.path.Begin() }
func (s *Surface) MoveTo(x, y float64) { s.path.MoveTo(x, y) }
func (s *Surface) LineTo(x, y float64) { s.path.LineTo(x, y) }
func (s *Surface) ClosePath()          { s.path.Close() }

func (s *Surface) Stroke() {
	s.strokePath(&s.path)
}

func (s *Surface) Fill() {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return
	}
	r := vector.NewRasterizer(w, h)
	drawn := false
	for _, sp := range s.path.Subpaths {
		if len(sp.Points) < 3 {
			continue
		}
		r.MoveTo(float32(sp.Points[0].X), float32(sp.Points[0].Y))
		for _, p := range sp.Points[1:] {
			r.LineTo(float32(p.X), float32(p.Y))
		}
		r.ClosePath()
		drawn = true
	}
	if drawn {
		r.Draw(s.dst, s.dst.Bounds(), image.NewUniform(s.state.Current.Fill), image.Point{})
	}
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	p := surface.RectPath(x, y, w, h)
	s.strokePath(&p)
}

// FillText draws s with its baseline at y.
func (s *Surface) FillText(text string, x, y float64) {
	d := font.Drawer{
		Dst:  s.dst,
		Src:  image.NewUniform(s.state.Current.Fill),
		Face: s.face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(text)
}

func (s *Surface) DrawImage(img *asset.Image, dx, dy float64) error {
	if !surface.ValidImage(img) {
		return fmt.Errorf("%w: %s", surface.ErrInvalidImage, imageName(img))
	}
	src := img.Src
	b := src.Bounds()
	dr := rect(dx, dy, float64(b.Dx()), float64(b.Dy()))
	draw.Draw(s.dst, dr, src, b.Min, draw.Over)
	return nil
}

func (s *Surface) DrawImageScaled(img *asset.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	if !surface.ValidImage(img) {
		return fmt.Errorf("%w: %s", surface.ErrInvalidImage, imageName(img))
	}
	src := img.Src
	sr := rect(sx, sy, sw, sh).Add(src.Bounds().Min).Intersect(src.Bounds())
	dr := rect(dx, dy, dw, dh)
	if sr.Empty() || dr.Empty() {
		return fmt.Errorf("%w: %s: empty region src=%v dst=%v", surface.ErrInvalidImage, img.Name, sr, dr)
	}
	draw.ApproxBiLinear.Scale(s.dst, dr, src, sr, draw.Over, nil)
	return nil
}

// strokePath rasterizes every segment as a quad of the current line width.
func (s *Surface) strokePath(p *surface.Path) {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return
	}
	hw := s.state.Current.LineWidth / 2
	if hw <= 0 {
		hw = 0.5
	}
	r := vector.NewRasterizer(w, h)
	drawn := false
	p.Segments(func(a, b surface.Point) {
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			return
		}
		// Extend by half a width so corners meet.
		ux, uy := dx/l*hw, dy/l*hw
		nx, ny := -uy, ux
		ax, ay := a.X-ux, a.Y-uy
		bx, by := b.X+ux, b.Y+uy
		r.MoveTo(float32(ax+nx), float32(ay+ny))
		r.LineTo(float32(bx+nx), float32(by+ny))
		r.LineTo(float32(bx-nx), float32(by-ny))
		r.LineTo(float32(ax-nx), float32(ay-ny))
		r.ClosePath()
		drawn = true
	})
	if drawn {
		r.Draw(s.dst, s.dst.Bounds(), image.NewUniform(s.state.Current.Stroke), image.Point{})
	}
}

func rect(x, y, w, h float64) image.Rectangle {
	x0 := int(math.Round(x))
	y0 := int(math.Round(y))
	return image.Rect(x0, y0, x0+int(math.Round(w)), y0+int(math.Round(h)))
}

func imageName(img *asset.Image) string {
	if img == nil {
		return "<nil>"
	}
	return img.Name
}
