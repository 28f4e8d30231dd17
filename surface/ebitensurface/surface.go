// Package ebitensurface implements surface.Surface on an offscreen
// *ebiten.Image so the windowed host can blit it each frame.
package ebitensurface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/isomap/asset"
	"github.com/milk9111/isomap/surface"
)

// Canvas owns an offscreen ebiten image.
type Canvas struct {
	img  *ebiten.Image
	surf *Surface
}

// NewCanvas creates an unsized canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) SetSize(width, height int) {
	if c.img != nil {
		c.img.Deallocate()
	}
	c.img = nil
	c.surf = nil
	if width > 0 && height > 0 {
		c.img = ebiten.NewImage(width, height)
	}
}

func (c *Canvas) Context2D() (surface.Surface, error) {
	if c.img == nil {
		return nil, fmt.Errorf("ebitensurface: canvas has no pixels")
	}
	if c.surf == nil {
		c.surf = New(c.img)
	}
	return c.surf, nil
}

// Image returns the offscreen image, or nil before SetSize.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// Surface draws into an ebiten image.
type Surface struct {
	dst   *ebiten.Image
	state surface.StateStack
	path  surface.Path
	face  text.Face

	white  *ebiten.Image
	images map[*asset.Image]*ebiten.Image
}

// New wraps dst.
func New(dst *ebiten.Image) *Surface {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Surface{
		dst:    dst,
		state:  surface.NewStateStack(),
		face:   text.NewGoXFace(basicfont.Face7x13),
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		images: make(map[*asset.Image]*ebiten.Image),
	}
}

func (s *Surface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(s.dst.Bounds())
	if r.Eq(s.dst.Bounds()) {
		s.dst.Clear()
		return
	}
	if r.Empty() {
		return
	}
	if sub, ok := s.dst.SubImage(r).(*ebiten.Image); ok {
		sub.Clear()
	}
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
	st := s.state.Current
	s.path.Segments(func(a, b surface.Point) {
		vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(st.LineWidth), st.Stroke, true)
	})
}

func (s *Surface) Fill() {
	var p vector.Path
	for _, sp := range s.path.Subpaths {
		if len(sp.Points) < 3 {
			continue
		}
		p.MoveTo(float32(sp.Points[0].X), float32(sp.Points[0].Y))
		for _, pt := range sp.Points[1:] {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
		p.Close()
	}
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(is) == 0 {
		return
	}
	c := color.NRGBAModel.Convert(s.state.Current.Fill).(color.NRGBA)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	s.dst.DrawTriangles(vs, is, s.white, op)
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	st := s.state.Current
	vector.StrokeRect(s.dst, float32(x), float32(y), float32(w), float32(h), float32(st.LineWidth), st.Stroke, true)
}

// FillText draws with the baseline at y, like a canvas context.
func (s *Surface) FillText(str string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-s.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(s.state.Current.Fill)
	text.Draw(s.dst, str, s.face, op)
}

func (s *Surface) DrawImage(img *asset.Image, dx, dy float64) error {
	eimg, err := s.ebitenImage(img)
	if err != nil {
		return err
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(dx, dy)
	s.dst.DrawImage(eimg, op)
	return nil
}

func (s *Surface) DrawImageScaled(img *asset.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	eimg, err := s.ebitenImage(img)
	if err != nil {
		return err
	}
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return fmt.Errorf("%w: %s: empty region", surface.ErrInvalidImage, img.Name)
	}
	sr := image.Rect(int(sx), int(sy), int(sx+sw), int(sy+sh)).Intersect(eimg.Bounds())
	sub, ok := eimg.SubImage(sr).(*ebiten.Image)
	if !ok || sr.Empty() {
		return fmt.Errorf("%w: %s: bad source region %v", surface.ErrInvalidImage, img.Name, sr)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dw/float64(sr.Dx()), dh/float64(sr.Dy()))
	op.GeoM.Translate(dx, dy)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(sub, op)
	return nil
}

// ebitenImage uploads a handle once and reuses the GPU image afterwards.
func (s *Surface) ebitenImage(img *asset.Image) (*ebiten.Image, error) {
	if !surface.ValidImage(img) {
		name := "<nil>"
		if img != nil {
			name = img.Name
		}
		return nil, fmt.Errorf("%w: %s", surface.ErrInvalidImage, name)
	}
	if eimg, ok := s.images[img]; ok {
		return eimg, nil
	}
	eimg := ebiten.NewImageFromImage(img.Src)
	s.images[img] = eimg
	return eimg, nil
}
