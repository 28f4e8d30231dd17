package scene

import (
	"fmt"

	"github.com/milk9111/isomap/iso"
	"github.com/milk9111/isomap/surface"
)

const (
	DefaultCanvasID = "canvas"
	DefaultColor    = "#15B89A"
)

// Builder collects scene construction parameters. The zero value is usable;
// omitted canvas id, color, origin and paint layers take their defaults.
type Builder struct {
	screenSize  iso.Size
	mapSize     iso.Size
	tileSize    iso.Size
	canvasID    string
	color       string
	tileImage   string
	origin      *iso.Position
	paintLayers *int
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

func (b Builder) WithScreenSize(size iso.Size) Builder {
	b.screenSize = size
	return b
}

func (b Builder) WithMapSize(size iso.Size) Builder {
	b.mapSize = size
	return b
}

func (b Builder) WithTileSize(size iso.Size) Builder {
	b.tileSize = size
	return b
}

func (b Builder) WithCanvasID(id string) Builder {
	b.canvasID = id
	return b
}

func (b Builder) WithColor(color string) Builder {
	b.color = color
	return b
}

// WithOrigin overrides the screen position of map cell (0,0).
func (b Builder) WithOrigin(origin iso.Position) Builder {
	b.origin = &origin
	return b
}

// WithPaintLayers sets how many entity layers Render paints, starting at
// LayerPrisms.
func (b Builder) WithPaintLayers(n int) Builder {
	b.paintLayers = &n
	return b
}

// WithTileImage names an image every tile blits scaled to the tile size.
func (b Builder) WithTileImage(name string) Builder {
	b.tileImage = name
	return b
}

// Build resolves the canvas in doc and returns an empty scene drawing on it.
func (b Builder) Build(doc surface.Document) (*Scene, error) {
	canvasID := b.canvasID
	if canvasID == "" {
		canvasID = DefaultCanvasID
	}
	colorName := b.color
	if colorName == "" {
		colorName = DefaultColor
	}
	tileColor, err := surface.ParseColor(colorName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if b.screenSize.Width < 0 || b.screenSize.Height < 0 ||
		b.mapSize.Width < 0 || b.mapSize.Height < 0 ||
		b.tileSize.Width < 0 || b.tileSize.Height < 0 {
		return nil, fmt.Errorf("%w: negative size", ErrConfiguration)
	}
	if b.tileSize.Width == 0 || b.tileSize.Height == 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrConfiguration, b.tileSize.Width, b.tileSize.Height)
	}
	paintLayers := EntityLayerCount
	if b.paintLayers != nil {
		paintLayers = *b.paintLayers
	}
	if paintLayers < 0 || paintLayers > EntityLayerCount {
		return nil, fmt.Errorf("%w: paint layers %d outside [0,%d]", ErrConfiguration, paintLayers, EntityLayerCount)
	}

	surf, err := surface.Acquire(doc, canvasID, b.screenSize.Width, b.screenSize.Height)
	if err != nil {
		return nil, err
	}

	origin := iso.DefaultOrigin(b.screenSize, b.tileSize)
	if b.origin != nil {
		origin = *b.origin
	}

	return &Scene{
		surf:        surf,
		canvasID:    canvasID,
		screenSize:  b.screenSize,
		mapSize:     b.mapSize,
		tileSize:    b.tileSize,
		half:        iso.Half(b.tileSize),
		origin:      origin,
		tileColor:   tileColor,
		tileImage:   b.tileImage,
		paintLayers: paintLayers,
		tileIndex:   make(map[iso.Position]*Tile),
		logged:      make(map[string]struct{}),
	}, nil
}
