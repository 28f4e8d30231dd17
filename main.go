package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/isomap/scenespec"
)

func main() {
	specName := flag.String("spec", scenespec.DefaultScene, "scene spec in scenespec/ or a path to a .yaml file")
	assetDir := flag.String("assets", "assets", "directory searched for images before the embedded copies")
	watch := flag.Bool("watch", false, "reload the scene when its spec, scripts or images change")
	hud := flag.Bool("hud", true, "show the status panel")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*specName, *assetDir, *watch, *hud)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	size := game.current.ctx.Scene().ScreenSize()
	ebiten.SetWindowSize(size.Width, size.Height)
	ebiten.SetWindowTitle("isomap")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
