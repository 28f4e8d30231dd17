package scene

import (
	"cmp"
	"fmt"
	"image/color"

	"github.com/milk9111/isomap/iso"
	"github.com/milk9111/isomap/surface"
)

var (
	outlineColor   = color.Black
	highlightColor = surface.MustParseColor("#ffff00")
	labelColor     = color.Black
)

// Tile is one grid cell. Its screen position is fixed when the grid is built.
type Tile struct {
	Highlight bool

	mapPos    iso.Position
	screenPos iso.Position
}

func newTile(mapPos, screenPos iso.Position) *Tile {
	return &Tile{mapPos: mapPos, screenPos: screenPos}
}

func (t *Tile) MapPos() iso.Position    { return t.mapPos }
func (t *Tile) ScreenPos() iso.Position { return t.screenPos }

// compareTiles puts every plain tile before every highlighted one, then
// orders by screen y.
func compareTiles(a, b *Tile) int {
	if a.Highlight != b.Highlight {
		if a.Highlight {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.screenPos.Y, b.screenPos.Y)
}

// Paint draws the tile diamond. A highlighted tile also draws its bounding
// rectangle and map coordinates.
func (t *Tile) Paint(sc *Scene, surf surface.Surface) error {
	surf.Save()
	defer surf.Restore()

	var err error
	if sc.tileImage != "" {
		err = sc.RenderImageScaled(surf, sc.tileImage, t.screenPos, sc.tileSize)
	}

	v := iso.TileVertexAt(t.screenPos, sc.tileSize)
	surf.BeginPath()
	surf.MoveTo(v.Top.X, v.Top.Y)
	surf.LineTo(v.Left.X, v.Left.Y)
	surf.LineTo(v.Bottom.X, v.Bottom.Y)
	surf.LineTo(v.Right.X, v.Right.Y)
	surf.ClosePath()
	if sc.tileImage == "" {
		surf.SetFillColor(sc.tileColor)
		surf.Fill()
	}
	if t.Highlight {
		surf.SetStrokeColor(highlightColor)
	} else {
		surf.SetStrokeColor(outlineColor)
	}
	surf.Stroke()

	if t.Highlight {
		r := iso.TileRectAt(t.screenPos, sc.tileSize)
		surf.SetStrokeColor(outlineColor)
		surf.StrokeRect(r.TopLeft.X, r.TopLeft.Y, float64(sc.tileSize.Width), float64(sc.tileSize.Height))
		surf.SetFillColor(labelColor)
		surf.FillText(fmt.Sprintf("%g,%g", t.mapPos.X, t.mapPos.Y), t.screenPos.X-40, t.screenPos.Y+20)
	}
	return err
}
