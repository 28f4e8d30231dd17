package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/isomap/scene"
)

// HUD is a status panel in the top-left corner showing image coverage and
// the last frame's draw counts.
type HUD struct {
	ui     *ebitenui.UI
	title  *widget.Text
	status *widget.Text
}

// hudStatus is everything the panel reports.
type hudStatus struct {
	Scene    string
	Loaded   int
	Listed   int
	Stats    scene.FrameStats
	FPS      float64
	Reloaded int
}

func (s hudStatus) String() string {
	return fmt.Sprintf("images %d/%d\ntiles %d  entities %d\nfailed draws %d\nreloads %d  FPS %.1f",
		s.Loaded, s.Listed, s.Stats.Tiles, s.Stats.Entities, s.Stats.Failures, s.Reloaded, s.FPS)
}

func NewHUD() *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	title := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0x15, G: 0xb8, B: 0x9a, A: 0xff}),
	)
	status := widget.NewText(
		widget.TextOpts.Text("", &face, white),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 8, Left: 8}),
		)),
	)
	root.AddChild(panel)

	return &HUD{ui: &ebitenui.UI{Container: root}, title: title, status: status}
}

func (h *HUD) Update(s hudStatus) {
	if h == nil {
		return
	}
	h.title.Label = s.Scene
	h.status.Label = s.String()
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil {
		return
	}
	h.ui.Draw(screen)
}
