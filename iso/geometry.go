package iso

import "math"

// Position is a point in screen or map space.
type Position struct {
	X float64
	Y float64
}

// Add returns p translated by o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Size is a pixel or grid extent.
type Size struct {
	Width  int
	Height int
}

// HalfSize holds half of a Size without truncation.
type HalfSize struct {
	Width  float64
	Height float64
}

// Half returns the half extents of s.
func Half(s Size) HalfSize {
	return HalfSize{Width: float64(s.Width) / 2, Height: float64(s.Height) / 2}
}

// TileRect is the bounding rectangle of a tile, anchored at its top-right corner.
type TileRect struct {
	TopRight    Position
	TopLeft     Position
	BottomRight Position
	BottomLeft  Position
}

// TileVertex holds the four points of a tile's diamond outline.
type TileVertex struct {
	Top    Position
	Left   Position
	Right  Position
	Bottom Position
}

// DefaultOrigin is the screen position of map cell (0,0): horizontally
// centered, two tile heights down from the top edge.
func DefaultOrigin(screen, tile Size) Position {
	return Position{X: float64(screen.Width / 2), Y: float64(tile.Height * 2)}
}

// MapToScreen projects a map coordinate with the 2:1 isometric transform.
func MapToScreen(mapPos Position, half HalfSize, origin Position) Position {
	return Position{
		X: half.Width*(mapPos.X-mapPos.Y) + origin.X,
		Y: half.Height*(mapPos.X+mapPos.Y) + origin.Y,
	}
}

// ScreenToMap maps a screen point back to the map cell containing it.
// Zero-sized tiles map everything to the origin cell.
func ScreenToMap(screen Position, tile Size, origin Position) Position {
	if tile.Width == 0 || tile.Height == 0 {
		return Position{}
	}
	x := (screen.X - origin.X) / float64(tile.Width)
	y := (screen.Y - origin.Y) / float64(tile.Height)
	return Position{X: math.Floor(y + x), Y: math.Floor(y - x)}
}

// OnMap reports whether pos lies inside a map of the given size.
func OnMap(pos Position, mapSize Size) bool {
	return pos.X >= 0 && pos.X < float64(mapSize.Width) &&
		pos.Y >= 0 && pos.Y < float64(mapSize.Height)
}

// TileRectAt returns the tile rectangle whose top-right corner is screenPos.
func TileRectAt(screenPos Position, tile Size) TileRect {
	w := float64(tile.Width)
	h := float64(tile.Height)
	return TileRect{
		TopRight:    screenPos,
		TopLeft:     Position{X: screenPos.X - w, Y: screenPos.Y},
		BottomRight: Position{X: screenPos.X, Y: screenPos.Y + h},
		BottomLeft:  Position{X: screenPos.X - w, Y: screenPos.Y + h},
	}
}

// TileVertexAt returns the diamond outline of the tile anchored at screenPos.
func TileVertexAt(screenPos Position, tile Size) TileVertex {
	w := float64(tile.Width)
	h := float64(tile.Height)
	half := Half(tile)
	return TileVertex{
		Top:    Position{X: screenPos.X - half.Width, Y: screenPos.Y},
		Left:   Position{X: screenPos.X - w, Y: screenPos.Y + half.Height},
		Right:  Position{X: screenPos.X, Y: screenPos.Y + half.Height},
		Bottom: Position{X: screenPos.X - half.Width, Y: screenPos.Y + h},
	}
}
