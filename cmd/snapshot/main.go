// Command snapshot renders a scene spec once with the software surface and
// writes the frame as a PNG.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"golang.design/x/clipboard"

	"github.com/milk9111/isomap/assets"
	"github.com/milk9111/isomap/scene"
	"github.com/milk9111/isomap/scenespec"
	"github.com/milk9111/isomap/surface"
	"github.com/milk9111/isomap/surface/raster"
)

func main() {
	specName := flag.String("spec", scenespec.DefaultScene, "scene spec in scenespec/ or a path to a .yaml file")
	assetDir := flag.String("assets", "assets", "directory searched for images before the embedded copies")
	out := flag.String("out", "snapshot.png", "output PNG path, - for stdout")
	copyOut := flag.Bool("copy", false, "also put the PNG on the system clipboard")
	flag.Parse()

	data, stats, err := snapshot(*specName, *assetDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("rendered %s: %d tiles, %d entities, %d failed draws", *specName, stats.Tiles, stats.Entities, stats.Failures)

	if *out == "-" {
		_, err = os.Stdout.Write(data)
	} else {
		err = os.WriteFile(*out, data, 0o644)
	}
	if err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			log.Fatalf("clipboard: %v", err)
		}
		clipboard.Write(clipboard.FmtImage, data)
	}
}

func snapshot(specName, assetDir string) ([]byte, scene.FrameStats, error) {
	spec, err := scenespec.LoadSceneSpec(specName)
	if err != nil {
		return nil, scene.FrameStats{}, err
	}
	id := spec.CanvasID
	if id == "" {
		id = scene.DefaultCanvasID
	}
	canvas := raster.NewCanvas()
	doc := surface.NewRegistry()
	doc.Register(id, canvas)

	ctx, err := spec.Open(doc, assets.NewHost(assetDir))
	if err != nil {
		return nil, scene.FrameStats{}, err
	}
	stats := ctx.Render()

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas.Image()); err != nil {
		return nil, stats, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), stats, nil
}
