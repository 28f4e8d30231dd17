package scene

import (
	"image/color"

	"github.com/milk9111/isomap/iso"
	"github.com/milk9111/isomap/surface"
)

// Sprite is an image entity standing on the tile at its screen position.
type Sprite struct {
	Image string
	pos   iso.Position
}

// NewSprite creates a sprite drawing the named image at screenPos.
func NewSprite(image string, screenPos iso.Position) *Sprite {
	return &Sprite{Image: image, pos: screenPos}
}

func (s *Sprite) ScreenPos() iso.Position {
	if s == nil {
		return iso.Position{}
	}
	return s.pos
}

func (s *Sprite) Paint(sc *Scene, surf surface.Surface) error {
	if s == nil {
		return ErrNilEntity
	}
	return sc.RenderImage(surf, s.Image, s.pos)
}

var (
	prismTop   = surface.MustParseColor("#555555")
	prismLeft  = surface.MustParseColor("#444444")
	prismRight = surface.MustParseColor("#777777")
)

// Prism is a one-tile block drawn as three shaded faces.
type Prism struct {
	pos iso.Position
}

// NewPrism creates a prism anchored at screenPos.
func NewPrism(screenPos iso.Position) *Prism {
	return &Prism{pos: screenPos}
}

func (p *Prism) ScreenPos() iso.Position {
	if p == nil {
		return iso.Position{}
	}
	return p.pos
}

func (p *Prism) Paint(sc *Scene, surf surface.Surface) error {
	if p == nil {
		return ErrNilEntity
	}
	x, y := p.pos.X, p.pos.Y
	w := float64(sc.tileSize.Width)
	h := float64(sc.tileSize.Height)

	surf.Save()
	defer surf.Restore()

	face := func(c color.Color, pts ...[2]float64) {
		surf.BeginPath()
		surf.MoveTo(pts[0][0], pts[0][1])
		for _, pt := range pts[1:] {
			surf.LineTo(pt[0], pt[1])
		}
		surf.ClosePath()
		surf.SetFillColor(c)
		surf.Fill()
	}

	face(prismTop,
		[2]float64{x - w/2, y - h},
		[2]float64{x - w, y - h/2},
		[2]float64{x - w/2, y},
		[2]float64{x, y - h/2},
	)
	face(prismLeft,
		[2]float64{x - w, y - h/2},
		[2]float64{x - w, y + h/2},
		[2]float64{x - w/2, y + h},
		[2]float64{x - w/2, y},
	)
	face(prismRight,
		[2]float64{x - w/2, y},
		[2]float64{x, y - h/2},
		[2]float64{x, y + h/2},
		[2]float64{x - w/2, y + h},
	)
	return nil
}
