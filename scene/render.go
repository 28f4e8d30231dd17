package scene

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/isomap/iso"
	"github.com/milk9111/isomap/surface"
)

// FrameStats summarizes one Render call.
type FrameStats struct {
	Tiles    int
	Entities int
	Failures int
	Errs     []error
}

func (f *FrameStats) record(err error) {
	if err == nil {
		return
	}
	f.Failures++
	f.Errs = append(f.Errs, err)
}

// Render clears the surface and paints the tiles, then the first
// PaintLayers entity layers, each in its current order. A failed draw is
// counted and logged but never stops the frame.
func (s *Scene) Render() FrameStats {
	var stats FrameStats
	if s == nil || s.surf == nil {
		return stats
	}
	w, h := s.surf.Size()
	s.surf.ClearRect(0, 0, float64(w), float64(h))

	for _, t := range s.tiles {
		stats.record(t.Paint(s, s.surf))
		stats.Tiles++
	}
	for i := 0; i < s.paintLayers && i < EntityLayerCount; i++ {
		for _, e := range s.layers[i] {
			stats.record(e.Paint(s, s.surf))
			stats.Entities++
		}
	}

	for _, err := range stats.Errs {
		s.logOnce(err)
	}
	return stats
}

// logOnce keeps a missing image from being reported every frame.
func (s *Scene) logOnce(err error) {
	msg := err.Error()
	if _, ok := s.logged[msg]; ok {
		return
	}
	s.logged[msg] = struct{}{}
	log.Printf("scene: render: %v", err)
}

// RenderImage blits the named image at its natural size so that its bottom
// edge sits on the bottom of the tile anchored at pos.
func (s *Scene) RenderImage(surf surface.Surface, name string, pos iso.Position) error {
	img, ok := s.LookupImage(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	r := iso.TileRectAt(pos, s.tileSize)
	if err := surf.DrawImage(img, r.BottomLeft.X, r.BottomLeft.Y-float64(img.Height())); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSurfaceDraw, name, err)
	}
	return nil
}

// RenderImageScaled fits the named image inside to, keeping its aspect
// ratio, and bottom-aligns it on the tile anchored at pos.
func (s *Scene) RenderImageScaled(surf surface.Surface, name string, pos iso.Position, to iso.Size) error {
	img, ok := s.LookupImage(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	iw, ih := float64(img.Width()), float64(img.Height())
	ratio := math.Min(float64(to.Width)/iw, float64(to.Height)/ih)
	dw, dh := iw*ratio, ih*ratio
	r := iso.TileRectAt(pos, s.tileSize)
	if err := surf.DrawImageScaled(img, 0, 0, iw, ih, r.BottomLeft.X, r.BottomLeft.Y-dh, dw, dh); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSurfaceDraw, name, err)
	}
	return nil
}
