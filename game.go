package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/isomap/assets"
	"github.com/milk9111/isomap/scene"
	"github.com/milk9111/isomap/scenespec"
	"github.com/milk9111/isomap/surface"
	"github.com/milk9111/isomap/surface/ebitensurface"
)

// loadedScene is one fully preloaded scene with the canvas it renders into.
type loadedScene struct {
	spec   *scenespec.SceneSpec
	ctx    *scene.Context
	canvas *ebitensurface.Canvas
	listed int
}

func loadScene(specName, assetDir string) (*loadedScene, error) {
	spec, err := scenespec.LoadSceneSpec(specName)
	if err != nil {
		return nil, err
	}
	id := spec.CanvasID
	if id == "" {
		id = scene.DefaultCanvasID
	}
	canvas := ebitensurface.NewCanvas()
	doc := surface.NewRegistry()
	doc.Register(id, canvas)

	ctx, err := spec.Open(doc, assets.NewHost(assetDir))
	if err != nil {
		canvas.SetSize(0, 0)
		return nil, err
	}
	return &loadedScene{spec: spec, ctx: ctx, canvas: canvas, listed: len(spec.Images)}, nil
}

func (l *loadedScene) release() {
	if l != nil {
		l.canvas.SetSize(0, 0)
	}
}

type Game struct {
	specName string
	assetDir string

	current *loadedScene
	watcher *scenespec.Watcher
	filter  *scenespec.SpecFilter
	hud     *HUD

	stats   scene.FrameStats
	reloads int
}

func NewGame(specName, assetDir string, watch, hud bool) (*Game, error) {
	loaded, err := loadScene(specName, assetDir)
	if err != nil {
		return nil, err
	}
	g := &Game{specName: specName, assetDir: assetDir, current: loaded}
	if hud {
		g.hud = NewHUD()
	}
	if watch {
		w, err := scenespec.NewWatcher(g.watchDirs()...)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
			g.filter = scenespec.NewSpecFilter(specName)
		}
	}
	return g, nil
}

// watchDirs lists the on-disk directories a scene can be reloaded from.
func (g *Game) watchDirs() []string {
	candidates := []string{"scenespec", filepath.Join("scenespec", "scripts")}
	if g.assetDir != "" {
		candidates = append(candidates, g.assetDir, filepath.Join(g.assetDir, "tiles"))
	}
	if dir := filepath.Dir(g.specName); dir != "." {
		candidates = append(candidates, dir)
	}
	var dirs []string
	seen := make(map[string]bool)
	for _, dir := range candidates {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// pollReload swaps in a freshly built scene after a watched file changes.
// Events for a scene file whose modification time is unchanged are ignored.
// A scene that fails to load leaves the current one in place.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	changed := ""
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if g.filter.Changed(name) {
				changed = name
			}
			continue
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
			continue
		default:
		}
		break
	}
	if changed == "" {
		return
	}

	loaded, err := loadScene(g.specName, g.assetDir)
	if err != nil {
		log.Printf("reload %s after change to %s: %v", g.specName, changed, err)
		return
	}
	g.filter.Mark()
	g.current.release()
	g.current = loaded
	g.reloads++
	log.Printf("reloaded %s after change to %s", g.specName, changed)

	size := loaded.ctx.Scene().ScreenSize()
	ebiten.SetWindowSize(size.Width, size.Height)
}

func (g *Game) Update() error {
	g.pollReload()

	if g.hud != nil {
		sc := g.current.ctx.Scene()
		g.hud.Update(hudStatus{
			Scene:    fmt.Sprintf("%s (%s)", g.current.spec.Name, g.specName),
			Loaded:   sc.ImageCount(),
			Listed:   g.current.listed,
			Stats:    g.stats,
			FPS:      ebiten.ActualFPS(),
			Reloaded: g.reloads,
		})
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.stats = g.current.ctx.Render()
	if img := g.current.canvas.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
	g.hud.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.current.ctx.Scene().ScreenSize()
	return size.Width, size.Height
}

// Close stops the file watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
