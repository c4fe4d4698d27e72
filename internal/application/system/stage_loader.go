package system

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/younwookim/villager/internal/domain/entity"
	"github.com/younwookim/villager/internal/infrastructure/config"
)

// Fallback colors for tiles without a valid mapping color
var (
	defaultWaterColor    = color.RGBA{R: 0x47, G: 0xab, B: 0xa9, A: 0xff}
	defaultGrassColor    = color.RGBA{R: 0x8f, G: 0xbf, B: 0x5a, A: 0xff}
	defaultElevatedColor = color.RGBA{R: 0x6e, G: 0x9f, B: 0x45, A: 0xff}
)

// LoadStage converts a StageConfig into a Stage entity. Characters without a
// mapping become water.
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Ground)

	background := parseHexColor(cfg.Background.Color, defaultWaterColor)
	water := entity.Tile{Type: entity.TileWater, Color: background}

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Ground {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x := range tiles[y] {
			tiles[y][x] = water
		}
		for x, char := range []rune(row) {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			var tile entity.Tile
			switch mapping.Type {
			case "grass":
				tile = entity.Tile{Type: entity.TileGrass, Color: parseHexColor(mapping.Color, defaultGrassColor)}
			case "elevated":
				tile = entity.Tile{Type: entity.TileElevated, Color: parseHexColor(mapping.Color, defaultElevatedColor)}
			default:
				tile = entity.Tile{Type: entity.TileWater, Color: parseHexColor(mapping.Color, background)}
			}
			tiles[y][x] = tile
		}
	}

	decorations := make([]entity.Decoration, 0, len(cfg.Decorations))
	for _, d := range cfg.Decorations {
		decorations = append(decorations, entity.Decoration{
			Kind: entity.DecorationKind(d.Kind),
			X:    d.X,
			Y:    d.Y,
		})
	}

	return &entity.Stage{
		Width:       tileWidth,
		Height:      tileHeight,
		TileSize:    cfg.Size.TileSize,
		Tiles:       tiles,
		Background:  background,
		Decorations: decorations,
	}
}

// parseHexColor parses "#rrggbb", returning fallback for anything else
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
