package entity

import (
	"image/color"
	"math"
)

// TileType represents the terrain of a tile
type TileType int

const (
	TileWater TileType = iota
	TileGrass
	TileElevated
)

// String returns the terrain name used in stage files
func (t TileType) String() string {
	switch t {
	case TileGrass:
		return "grass"
	case TileElevated:
		return "elevated"
	default:
		return "water"
	}
}

// Walkable reports whether a villager can stand on the tile
func (t TileType) Walkable() bool {
	return t == TileGrass || t == TileElevated
}

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Color color.RGBA
}

// DecorationKind names a scenery object
type DecorationKind string

const (
	DecorationTree      DecorationKind = "tree"
	DecorationGold      DecorationKind = "gold"
	DecorationHouse     DecorationKind = "house"
	DecorationBush      DecorationKind = "bush"
	DecorationRock      DecorationKind = "rock"
	DecorationWaterRock DecorationKind = "water_rock"
	DecorationSheep     DecorationKind = "sheep"
	DecorationDuck      DecorationKind = "duck"
)

// Decoration is a scenery object anchored to a tile
type Decoration struct {
	Kind DecorationKind
	X, Y int // tile coordinates
}

// Stage is the read-only village map. Scene offsets are measured from its
// center, so (0, 0) is the middle of the map.
type Stage struct {
	Width       int // tiles
	Height      int // tiles
	TileSize    int
	Tiles       [][]Tile
	Background  color.RGBA
	Decorations []Decoration
}

// GetTile returns the tile at the given tile coordinates. Everything outside
// the map is open water.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWater, Color: s.Background}
	}
	return s.Tiles[ty][tx]
}

// PixelSize returns the map size in pixels at scale 1
func (s *Stage) PixelSize() (int, int) {
	return s.Width * s.TileSize, s.Height * s.TileSize
}

// TileAtOffset converts a center-relative offset to tile coordinates
func (s *Stage) TileAtOffset(x, y float64) (int, int) {
	w, h := s.PixelSize()
	tx := int(math.Floor((x + float64(w)/2) / float64(s.TileSize)))
	ty := int(math.Floor((y + float64(h)/2) / float64(s.TileSize)))
	return tx, ty
}

// WalkableAt reports whether the tile under a center-relative offset is land
func (s *Stage) WalkableAt(x, y float64) bool {
	return s.GetTile(s.TileAtOffset(x, y)).Type.Walkable()
}
