// Package scene owns the isometric tile grid, the entity layers and the
// image table, and paints them back to front onto a surface.
package scene

import (
	"cmp"
	"fmt"
	"image/color"
	"reflect"
	"slices"

	"github.com/milk9111/isomap/asset"
	"github.com/milk9111/isomap/iso"
	"github.com/milk9111/isomap/surface"
)

// LayerID selects the tile collection or one of the entity layers.
type LayerID int

const (
	LayerTiles LayerID = iota
	LayerPrisms
	LayerPersons
)

// EntityLayerCount is the number of entity layers a scene declares.
const EntityLayerCount = 2

func (l LayerID) String() string {
	switch l {
	case LayerTiles:
		return "tiles"
	case LayerPrisms:
		return "prisms"
	case LayerPersons:
		return "persons"
	default:
		return fmt.Sprintf("LayerID(%d)", int(l))
	}
}

// ParseLayer resolves a layer name as printed by String.
func ParseLayer(name string) (LayerID, error) {
	for _, l := range []LayerID{LayerTiles, LayerPrisms, LayerPersons} {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

func (l LayerID) entityIndex() (int, bool) {
	i := int(l) - int(LayerPrisms)
	return i, i >= 0 && i < EntityLayerCount
}

// Drawable is anything with a screen position that can paint itself.
// Paint must not mutate the scene.
type Drawable interface {
	ScreenPos() iso.Position
	Paint(sc *Scene, surf surface.Surface) error
}

// Scene is not safe for concurrent use; Context serializes access.
type Scene struct {
	surf     surface.Surface
	canvasID string

	screenSize iso.Size
	mapSize    iso.Size
	tileSize   iso.Size
	half       iso.HalfSize
	origin     iso.Position

	tileColor   color.Color
	tileImage   string
	paintLayers int

	images    *asset.Table
	tiles     []*Tile
	tileIndex map[iso.Position]*Tile
	layers    [EntityLayerCount][]Drawable

	logged map[string]struct{}
}

// CompareDepth orders drawables by ascending screen y. Equal y is Equal.
func CompareDepth(a, b Drawable) int {
	return cmp.Compare(a.ScreenPos().Y, b.ScreenPos().Y)
}

// BuildGrid creates a tile for every map cell and sorts the tiles. Calling
// it twice duplicates the grid.
func (s *Scene) BuildGrid() {
	if s == nil {
		return
	}
	for x := 0; x < s.mapSize.Width; x++ {
		for y := 0; y < s.mapSize.Height; y++ {
			mapPos := iso.Position{X: float64(x), Y: float64(y)}
			t := newTile(mapPos, s.ToScreen(mapPos))
			s.tiles = append(s.tiles, t)
			s.tileIndex[mapPos] = t
		}
	}
	s.SortLayer(LayerTiles)
}

// SortLayer re-sorts one layer in place. Sorting is stable, so equal-depth
// members keep their insertion order.
func (s *Scene) SortLayer(layer LayerID) error {
	if s == nil {
		return nil
	}
	if layer == LayerTiles {
		slices.SortStableFunc(s.tiles, compareTiles)
		return nil
	}
	i, ok := layer.entityIndex()
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownLayer, layer)
	}
	slices.SortStableFunc(s.layers[i], CompareDepth)
	return nil
}

// AddEntity appends e to an entity layer. Entities whose screen position
// falls outside the map are rejected. The layer is not re-sorted.
func (s *Scene) AddEntity(layer LayerID, e Drawable) error {
	if s == nil || isNilDrawable(e) {
		return ErrNilEntity
	}
	i, ok := layer.entityIndex()
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownLayer, layer)
	}
	mapPos := s.ToMap(e.ScreenPos())
	if !iso.OnMap(mapPos, s.mapSize) {
		return fmt.Errorf("%w: screen %v is map %v", ErrOffMap, e.ScreenPos(), mapPos)
	}
	s.layers[i] = append(s.layers[i], e)
	return nil
}

// isNilDrawable also catches a nil pointer stored in the interface.
func isNilDrawable(d Drawable) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// LoadImages fills the image table once. Individual load failures only
// leave their names out of the table.
func (s *Scene) LoadImages(host asset.Host, items []asset.NamedPath) error {
	if s == nil {
		return nil
	}
	if s.images != nil {
		return ErrImagesLoaded
	}
	s.images = asset.Preload(host, items)
	return nil
}

// LookupImage returns the loaded image registered under name.
func (s *Scene) LookupImage(name string) (*asset.Image, bool) {
	if s == nil {
		return nil, false
	}
	return s.images.Get(name)
}

// ImageCount returns how many images preload put in the table.
func (s *Scene) ImageCount() int {
	if s == nil {
		return 0
	}
	return s.images.Len()
}

// ImageNames returns the loaded image names in sorted order. The table
// itself is not exposed so it stays read-only after preload.
func (s *Scene) ImageNames() []string {
	if s == nil {
		return nil
	}
	return s.images.Names()
}

// TileAt returns the tile at a map position.
func (s *Scene) TileAt(mapPos iso.Position) (*Tile, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.tileIndex[mapPos]
	return t, ok
}

// SetHighlight toggles a tile's highlight. Callers re-sort LayerTiles before
// the next render.
func (s *Scene) SetHighlight(mapPos iso.Position, on bool) bool {
	t, ok := s.TileAt(mapPos)
	if !ok {
		return false
	}
	t.Highlight = on
	return true
}

// ToScreen projects a map position with this scene's tile size and origin.
func (s *Scene) ToScreen(mapPos iso.Position) iso.Position {
	return iso.MapToScreen(mapPos, s.half, s.origin)
}

// ToMap maps a screen position back to its map cell.
func (s *Scene) ToMap(screenPos iso.Position) iso.Position {
	return iso.ScreenToMap(screenPos, s.tileSize, s.origin)
}

// Tiles returns the tiles in their current order.
func (s *Scene) Tiles() []*Tile {
	if s == nil {
		return nil
	}
	return slices.Clone(s.tiles)
}

// Layer returns the members of an entity layer in their current order.
func (s *Scene) Layer(layer LayerID) []Drawable {
	i, ok := layer.entityIndex()
	if s == nil || !ok {
		return nil
	}
	return slices.Clone(s.layers[i])
}

func (s *Scene) Surface() surface.Surface { return s.surf }
func (s *Scene) CanvasID() string         { return s.canvasID }
func (s *Scene) ScreenSize() iso.Size     { return s.screenSize }
func (s *Scene) MapSize() iso.Size        { return s.mapSize }
func (s *Scene) TileSize() iso.Size       { return s.tileSize }
func (s *Scene) Origin() iso.Position     { return s.origin }
func (s *Scene) PaintLayers() int         { return s.paintLayers }
