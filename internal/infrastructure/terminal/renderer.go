// Package terminal draws the village in a terminal with tcell. Each map tile
// takes two columns and one row so tiles stay roughly square.
package terminal

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/villager/internal/domain/entity"
	"github.com/younwookim/villager/internal/domain/villager"
)

const cellsPerTile = 2

var tileGlyphs = map[entity.TileType]rune{
	entity.TileWater:    '~',
	entity.TileGrass:    ' ',
	entity.TileElevated: '^',
}

var decorationGlyphs = map[entity.DecorationKind]rune{
	entity.DecorationTree:      '♣',
	entity.DecorationGold:      '$',
	entity.DecorationHouse:     '⌂',
	entity.DecorationBush:      '*',
	entity.DecorationRock:      'o',
	entity.DecorationWaterRock: 'o',
	entity.DecorationSheep:     's',
	entity.DecorationDuck:      'd',
}

var (
	styleVillager = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Renderer draws a stage and a villager snapshot
type Renderer struct {
	stage *entity.Stage
}

// NewRenderer creates a renderer for stage
func NewRenderer(stage *entity.Stage) *Renderer {
	return &Renderer{stage: stage}
}

// Size returns the cells needed for the map plus the two status lines
func (r *Renderer) Size() (w, h int) {
	return r.stage.Width * cellsPerTile, r.stage.Height + 2
}

// CellAt maps a scene offset to a screen cell
func (r *Renderer) CellAt(p villager.Point) (col, row int) {
	mapW, mapH := r.stage.PixelSize()
	ts := float64(r.stage.TileSize)
	px := p.X + float64(mapW)/2
	py := p.Y + float64(mapH)/2
	return int(math.Floor(px * cellsPerTile / ts)), int(math.Floor(py / ts))
}

// Render draws the whole frame and shows it
func (r *Renderer) Render(screen tcell.Screen, snap villager.Snapshot) {
	screen.Clear()
	r.drawTiles(screen)
	r.drawDecorations(screen)
	r.drawVillager(screen, snap)
	r.drawStatus(screen, snap)
	screen.Show()
}

func (r *Renderer) drawTiles(screen tcell.Screen) {
	for ty := 0; ty < r.stage.Height; ty++ {
		for tx := 0; tx < r.stage.Width; tx++ {
			tile := r.stage.GetTile(tx, ty)
			style := tcell.StyleDefault.Background(toColor(tile.Color)).Foreground(tcell.ColorWhite)
			for c := 0; c < cellsPerTile; c++ {
				screen.SetContent(tx*cellsPerTile+c, ty, tileGlyphs[tile.Type], nil, style)
			}
		}
	}
}

func (r *Renderer) drawDecorations(screen tcell.Screen) {
	for _, d := range r.stage.Decorations {
		glyph, ok := decorationGlyphs[d.Kind]
		if !ok {
			continue
		}
		bg := toColor(r.stage.GetTile(d.X, d.Y).Color)
		screen.SetContent(d.X*cellsPerTile, d.Y, glyph, nil, tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack))
	}
}

func (r *Renderer) drawVillager(screen tcell.Screen, snap villager.Snapshot) {
	col, row := r.CellAt(snap.Offset)
	w, h := r.Size()
	if col < 0 || row < 0 || col >= w || row >= h-2 {
		return
	}

	tx, ty := col/cellsPerTile, row
	style := styleVillager.Background(toColor(r.stage.GetTile(tx, ty).Color))
	screen.SetContent(col, row, '@', nil, style)

	// Facing marker on the side the villager looks at
	markerCol, marker := col+1, '›'
	if snap.FacingLeft() {
		markerCol, marker = col-1, '‹'
	}
	if markerCol >= 0 && markerCol < w {
		bg := toColor(r.stage.GetTile(markerCol/cellsPerTile, ty).Color)
		screen.SetContent(markerCol, row, marker, nil, styleVillager.Background(bg))
	}
}

func (r *Renderer) drawStatus(screen tcell.Screen, snap villager.Snapshot) {
	_, h := r.Size()
	drawText(screen, 0, h-2, StatusLine(snap), styleStatus)
	drawText(screen, 0, h-1, "g: gold  t: tree  r: return  q: quit", styleHelp)
}

// StatusLine describes a snapshot in one line
func StatusLine(snap villager.Snapshot) string {
	parts := []string{"state: " + strings.ReplaceAll(snap.StateLabel, "_", " ")}
	if snap.Site != "" {
		parts = append(parts, "site: "+string(snap.Site))
	}
	if snap.PendingTask != "" {
		parts = append(parts, "next: "+snap.PendingTask)
	}
	parts = append(parts, fmt.Sprintf("pos: %.0f,%.0f", snap.Offset.X, snap.Offset.Y))
	return strings.Join(parts, "  ")
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
