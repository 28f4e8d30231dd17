package scenespec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/isomap/asset"
	"github.com/milk9111/isomap/iso"
	"github.com/milk9111/isomap/scene"
)

// DefaultScene is the embedded scene used when no spec is given.
const DefaultScene = "default.yaml"

type SizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (s SizeSpec) Size() iso.Size {
	return iso.Size{Width: s.Width, Height: s.Height}
}

type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PositionSpec) Position() iso.Position {
	return iso.Position{X: p.X, Y: p.Y}
}

// EntitySpec places one entity on a map cell.
type EntitySpec struct {
	Layer string  `yaml:"layer"`
	Kind  string  `yaml:"kind"`
	Image string  `yaml:"image"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

type SceneSpec struct {
	Name        string         `yaml:"name"`
	Screen      SizeSpec       `yaml:"screen"`
	Map         SizeSpec       `yaml:"map"`
	Tile        SizeSpec       `yaml:"tile"`
	CanvasID    string         `yaml:"canvas_id"`
	Color       string         `yaml:"color"`
	TileImage   string         `yaml:"tile_image"`
	PaintLayers *int           `yaml:"paint_layers"`
	Origin      *PositionSpec  `yaml:"origin"`
	Images      []string       `yaml:"images"`
	Entities    []EntitySpec   `yaml:"entities"`
	Highlights  []PositionSpec `yaml:"highlights"`
	Script      string         `yaml:"script"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenespec: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenespec: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec reads a scene file and checks the fields Build cannot.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scenespec: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	if s.Screen.Width <= 0 || s.Screen.Height <= 0 {
		return fmt.Errorf("screen size %dx%d", s.Screen.Width, s.Screen.Height)
	}
	if s.Tile.Width <= 0 || s.Tile.Height <= 0 {
		return fmt.Errorf("tile size %dx%d", s.Tile.Width, s.Tile.Height)
	}
	for i, e := range s.Entities {
		if _, err := scene.ParseLayer(e.Layer); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		if _, err := NewEntity(e.Kind, e.Image, iso.Position{}); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return nil
}

// Builder turns the spec into scene construction parameters.
func (s *SceneSpec) Builder() scene.Builder {
	b := scene.NewBuilder().
		WithScreenSize(s.Screen.Size()).
		WithMapSize(s.Map.Size()).
		WithTileSize(s.Tile.Size()).
		WithCanvasID(s.CanvasID).
		WithColor(s.Color).
		WithTileImage(s.TileImage)
	if s.PaintLayers != nil {
		b = b.WithPaintLayers(*s.PaintLayers)
	}
	if s.Origin != nil {
		b = b.WithOrigin(s.Origin.Position())
	}
	return b
}

// ImagePaths names every image listed in the spec by its file base name.
func (s *SceneSpec) ImagePaths() ([]asset.NamedPath, error) {
	named, invalid := asset.NamedPaths(s.Images...)
	if len(invalid) > 0 {
		return nil, fmt.Errorf("scenespec: image paths without a name: %s", strings.Join(invalid, ", "))
	}
	return named, nil
}

// NewEntity creates a drawable of the given kind at screenPos.
func NewEntity(kind, image string, screenPos iso.Position) (scene.Drawable, error) {
	switch kind {
	case "sprite":
		if image == "" {
			return nil, fmt.Errorf("scenespec: sprite needs an image")
		}
		return scene.NewSprite(image, screenPos), nil
	case "prism":
		return scene.NewPrism(screenPos), nil
	default:
		return nil, fmt.Errorf("scenespec: unknown entity kind %q", kind)
	}
}

// Place adds one entity at a map cell.
func Place(sc *scene.Scene, e EntitySpec) error {
	layer, err := scene.ParseLayer(e.Layer)
	if err != nil {
		return err
	}
	d, err := NewEntity(e.Kind, e.Image, sc.ToScreen(iso.Position{X: e.X, Y: e.Y}))
	if err != nil {
		return err
	}
	return sc.AddEntity(layer, d)
}

// Populate places the spec's entities and highlights, runs its script and
// sorts every layer. The grid must already be built for highlights to apply.
func (s *SceneSpec) Populate(sc *scene.Scene) error {
	for i, e := range s.Entities {
		if err := Place(sc, e); err != nil {
			return fmt.Errorf("scenespec: entity %d: %w", i, err)
		}
	}
	for _, h := range s.Highlights {
		if !sc.SetHighlight(h.Position(), true) {
			return fmt.Errorf("scenespec: highlight %v: %w", h.Position(), scene.ErrOffMap)
		}
	}
	if s.Script != "" {
		src, err := LoadScript(s.Script)
		if err != nil {
			return fmt.Errorf("scenespec: load script %s: %w", s.Script, err)
		}
		if err := RunScript(s.Script, src, sc); err != nil {
			return err
		}
	}
	for _, l := range []scene.LayerID{scene.LayerTiles, scene.LayerPrisms, scene.LayerPersons} {
		if err := sc.SortLayer(l); err != nil {
			return err
		}
	}
	return nil
}
