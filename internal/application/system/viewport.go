package system

import (
	"math"

	"github.com/younwookim/villager/internal/domain/villager"
)

// Viewport maps center-relative scene offsets to window pixels. The map is
// scaled uniformly to fit the window with some padding and centered.
type Viewport struct {
	mapW, mapH    float64
	padding       float64
	villagerScale float64

	screenW, screenH int
	scale            float64
	originX, originY float64
}

// NewViewport creates a viewport for a map of mapW x mapH pixels
func NewViewport(mapW, mapH int, padding, villagerScale float64) *Viewport {
	return &Viewport{
		mapW:          float64(mapW),
		mapH:          float64(mapH),
		padding:       padding,
		villagerScale: villagerScale,
		scale:         1,
	}
}

// Resize recomputes the mapping for a new window size
func (v *Viewport) Resize(w, h int) {
	if w <= 0 || h <= 0 || v.mapW <= 0 || v.mapH <= 0 {
		return
	}
	v.screenW, v.screenH = w, h
	scaleX := float64(w) * v.padding / v.mapW
	scaleY := float64(h) * v.padding / v.mapH
	v.scale = math.Min(scaleX, scaleY)
	v.originX = (float64(w) - v.mapW*v.scale) / 2
	v.originY = (float64(h) - v.mapH*v.scale) / 2
}

// ScreenSize returns the last size passed to Resize
func (v *Viewport) ScreenSize() (int, int) {
	return v.screenW, v.screenH
}

// Scale returns the map scale
func (v *Viewport) Scale() float64 {
	return v.scale
}

// SpriteScale returns the villager sprite scale
func (v *Viewport) SpriteScale() float64 {
	return v.scale * v.villagerScale
}

// MapOrigin returns the screen position of the map's top-left corner
func (v *Viewport) MapOrigin() (float64, float64) {
	return v.originX, v.originY
}

// Center returns the screen position of the map center
func (v *Viewport) Center() (float64, float64) {
	return v.originX + v.mapW*v.scale/2, v.originY + v.mapH*v.scale/2
}

// ToScreen converts a scene offset to screen pixels
func (v *Viewport) ToScreen(p villager.Point) (float64, float64) {
	cx, cy := v.Center()
	return cx + p.X*v.scale, cy + p.Y*v.scale
}
