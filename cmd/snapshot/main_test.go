package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotRendersSpec(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "small.yaml")
	src := `
name: small
screen: {width: 320, height: 240}
map: {width: 3, height: 3}
tile: {width: 64, height: 32}
images: [assets/man-ne.png, assets/wall-low.png]
entities:
  - {layer: persons, kind: sprite, image: man-ne, x: 1, y: 1}
  - {layer: prisms, kind: sprite, image: wall-low, x: 2, y: 0}
`
	if err := os.WriteFile(spec, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, stats, err := snapshot(spec, "")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if stats.Tiles != 9 || stats.Entities != 2 || stats.Failures != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("snapshot is %v", b)
	}
	// Center of tile (0,0) is painted with the default tile color.
	r, g, b, a := img.At(160-32, 64+16).RGBA()
	if a == 0 || g>>8 < r>>8 || g>>8 < b>>8 {
		t.Fatalf("expected tile color at tile center, got %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestSnapshotMissingSpec(t *testing.T) {
	if _, _, err := snapshot(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Fatal("expected error for a missing spec")
	}
}
