// Package ebitenmap runs a routemap editor on Ebitengine: it polls input into
// editor events, resolves images from a file system and draws the editor with
// vertex triangles.
package ebitenmap

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/routemap"
)

// Background is the clear color of the canvas.
var Background = color.RGBA{R: 0x20, G: 0x24, B: 0x2a, A: 0xff}

// Game implements ebiten.Game around an editor session.
type Game struct {
	editor *routemap.Editor
	canvas *Canvas
	input  inputReader
	events []routemap.Event

	width, height int
}

// NewGame wires editor to Ebitengine. The editor's image source should be the
// Assets the game draws from.
func NewGame(editor *routemap.Editor) *Game {
	return &Game{
		editor: editor,
		canvas: NewCanvas(nil),
	}
}

// Editor returns the editor session driven by the game.
func (g *Game) Editor() *routemap.Editor {
	return g.editor
}

// Update polls input, dispatches it and advances the editor by one tick.
func (g *Game) Update() error {
	g.events = g.input.poll(g.events[:0])
	for _, ev := range g.events {
		g.editor.HandleEvent(ev)
	}
	g.editor.Update(1 / float64(ebiten.TPS()))
	return nil
}

// Draw renders the editor onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(Background)
	g.canvas.SetTarget(screen)
	g.editor.Render(g.canvas)
}

// Layout uses the window size as the canvas size and forwards changes to the
// editor as resize events.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.editor.HandleEvent(routemap.Event{
			Kind:   routemap.InputResize,
			Width:  float64(outsideWidth),
			Height: float64(outsideHeight),
		})
	}
	return outsideWidth, outsideHeight
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

// Run opens a window and runs the editor until the window is closed.
func Run(editor *routemap.Editor, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(editor))
}
