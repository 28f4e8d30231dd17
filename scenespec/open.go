package scenespec

import (
	"fmt"

	"github.com/milk9111/isomap/asset"
	"github.com/milk9111/isomap/scene"
	"github.com/milk9111/isomap/surface"
)

// Open builds a ready-to-render scene from the spec: it acquires the canvas,
// preloads the images, builds the grid and populates the layers.
func (s *SceneSpec) Open(doc surface.Document, host asset.Host) (*scene.Context, error) {
	items, err := s.ImagePaths()
	if err != nil {
		return nil, err
	}
	sc, err := s.Builder().Build(doc)
	if err != nil {
		return nil, fmt.Errorf("scenespec: %s: %w", s.Name, err)
	}

	ctx := scene.NewContext(sc)
	if err := ctx.Preload(host, items); err != nil {
		return nil, err
	}
	ctx.BuildGrid()
	if err := ctx.Do(s.Populate); err != nil {
		return nil, err
	}
	return ctx, nil
}
