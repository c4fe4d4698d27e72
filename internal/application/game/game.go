// Package game provides the frame driver: an ebiten.Game that ticks the
// current Scene with a fixed delta and keeps it informed of the window size.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/villager/internal/application/scene"
)

// DefaultTPS is used until SetTPS is called
const DefaultTPS = 60

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a new Game with the given initial scene and window size.
// The initial scene's OnEnter and Resize are called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / DefaultTPS,
	}
	g.enter(initialScene)
	return g
}

func (g *Game) enter(s scene.Scene) {
	g.current = s
	s.OnEnter()
	s.Resize(g.screenW, g.screenH)
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.enter(next)
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout follows the window: the logical screen is the outside size, so the
// scene can scale the map itself. Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.screenW, g.screenH
	}
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.current.Resize(outsideWidth, outsideHeight)
	}
	return g.screenW, g.screenH
}

// SetTPS sets the tick rate the delta time is derived from.
// Non-positive values are ignored.
func (g *Game) SetTPS(tps int) {
	if tps > 0 {
		g.dt = 1.0 / float64(tps)
	}
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// DT returns the delta time passed to the scene each tick
func (g *Game) DT() float64 {
	return g.dt
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}
