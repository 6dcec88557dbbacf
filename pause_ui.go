package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	menuTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelImg      = imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg        = imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHoverImg   = imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})
)

// NewPauseUI builds a centered pause menu with Resume and Restart buttons.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := menuFace()
	panel := menuPanel()
	panel.AddChild(menuTitle("Paused", &face))
	panel.AddChild(menuButton("Resume", &face, g.resume))
	panel.AddChild(menuButton("Restart", &face, g.restart))
	return menuRoot(panel)
}

// NewGameOverUI builds the game-over panel. The returned text widget shows
// the final survival time and is refreshed by the game every frame.
func NewGameOverUI(g *Game) (*ebitenui.UI, *widget.Text) {
	face := menuFace()
	panel := menuPanel()
	summary := menuTitle("", &face)
	panel.AddChild(menuTitle("You died", &face))
	panel.AddChild(summary)
	panel.AddChild(menuButton("Restart", &face, g.restart))
	return menuRoot(panel), summary
}

func menuFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

func menuTitle(label string, face *ebtext.Face) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, menuTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func menuButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHoverImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: menuTextColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// menuPanel is a vertical panel about a quarter of the screen, centered in
// an anchor layout.
func menuPanel() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/4, baseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
}

func menuRoot(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
