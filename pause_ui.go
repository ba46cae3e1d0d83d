package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

func (g *Game) togglePause() {
	g.paused = !g.paused
}

func (g *Game) resume() {
	g.paused = false
}

// respawn also resumes, so the menu's Respawn drops the player straight back
// into the course.
func (g *Game) respawn() {
	g.scene.Respawn()
	g.camera.snap(g.scene.Body.Position())
	g.paused = false
}

func (g *Game) toggleDebug() {
	g.opts.Debug = !g.opts.Debug
}

func (g *Game) quit() {
	g.quitting = true
}

// menu builds the pause overlay on first use. Its images are only created
// once the game loop is running.
func (g *Game) menu() *ebitenui.UI {
	if g.pauseUI == nil {
		g.pauseUI = newPauseUI(g)
	}
	return g.pauseUI
}

// newPauseUI builds a centred panel of buttons drawn with colour nine-slices
// and the basic bitmap font, so no theme assets are needed.
func newPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x5a, A: 0xff})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	centred := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/4, baseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))

	buttons := []struct {
		label  string
		action func()
	}{
		{"Resume", g.resume},
		{"Respawn", g.respawn},
		{"Toggle debug", g.toggleDebug},
		{"Quit", g.quit},
	}
	for _, b := range buttons {
		action := b.action
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnPressed}),
			widget.ButtonOpts.Text(b.label, &face, &widget.ButtonTextColor{Idle: white}),
			widget.ButtonOpts.WidgetOpts(centred),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				action()
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
