// Package village provides the village gameplay scene.
package village

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/villager/internal/application/replay"
	"github.com/younwookim/villager/internal/application/scene"
	"github.com/younwookim/villager/internal/application/session"
	"github.com/younwookim/villager/internal/application/state"
	"github.com/younwookim/villager/internal/application/system"
	"github.com/younwookim/villager/internal/domain/entity"
	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorVillager = color.RGBA{60, 90, 200, 255}
	colorGoldLoad = color.RGBA{255, 215, 0, 255}
	colorWoodLoad = color.RGBA{139, 90, 43, 255}
	colorPath     = color.RGBA{255, 255, 255, 90}
	colorHome     = color.RGBA{200, 60, 60, 255}
)

var decorationColors = map[entity.DecorationKind]color.RGBA{
	entity.DecorationTree:      {34, 110, 50, 255},
	entity.DecorationGold:      {230, 190, 40, 255},
	entity.DecorationHouse:     {170, 80, 60, 255},
	entity.DecorationBush:      {70, 150, 70, 255},
	entity.DecorationRock:      {130, 130, 130, 255},
	entity.DecorationWaterRock: {100, 110, 120, 255},
	entity.DecorationSheep:     {240, 240, 240, 255},
	entity.DecorationDuck:      {250, 250, 200, 255},
}

// Village is the gameplay scene
type Village struct {
	settings *config.GameSettings
	stage    *entity.Stage
	session  *session.Session
	state    state.GameState
	input    *system.InputSystem
	viewport *system.Viewport
	animator system.Animator
	panel    *Panel
	logger   *log.Logger

	triggers <-chan villager.Trigger

	// Hot reload
	loader       *config.Loader
	reloads      <-chan string
	pendingSites *config.VillagerConfig

	// Trigger recording
	recorder       *replay.Recorder
	recordFilename string

	snap villager.Snapshot
}

// Option configures a Village scene
type Option func(*Village)

// WithTriggers drains external triggers from ch at the start of each tick
func WithTriggers(ch <-chan villager.Trigger) Option {
	return func(v *Village) { v.triggers = ch }
}

// WithReload re-reads villager.yaml through loader whenever its name arrives on ch
func WithReload(loader *config.Loader, ch <-chan string) Option {
	return func(v *Village) {
		v.loader = loader
		v.reloads = ch
	}
}

// WithRecording saves rec to path on F5 and when the scene exits
func WithRecording(rec *replay.Recorder, path string) Option {
	return func(v *Village) {
		v.recorder = rec
		v.recordFilename = path
	}
}

// WithPanel shows the manual control panel
func WithPanel(p *Panel) Option {
	return func(v *Village) { v.panel = p }
}

// WithLogger sets the scene logger
func WithLogger(l *log.Logger) Option {
	return func(v *Village) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a new Village scene around an existing session
func New(settings *config.GameSettings, stage *entity.Stage, sess *session.Session, opts ...Option) *Village {
	mapW, mapH := stage.PixelSize()
	v := &Village{
		settings: settings,
		stage:    stage,
		session:  sess,
		state:    state.StateLoading,
		input:    system.NewInputSystem(),
		viewport: system.NewViewport(mapW, mapH, settings.Display.Padding, settings.Display.VillagerScale),
		logger:   log.Default(),
		snap:     sess.Snapshot(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Update proceeds the scene (implements scene.Scene)
func (v *Village) Update(dt float64) (scene.Scene, error) {
	if v.panel != nil {
		v.panel.Update()
	}
	v.update(dt, v.input.GetInput())
	return nil, nil
}

func (v *Village) update(dt float64, input system.InputState) {
	// Triggers are drained while paused too; only motion stops.
	v.drainTriggers()
	v.drainReloads()
	v.applyPendingSites()

	if input.Save {
		v.saveRecording()
	}
	if input.Pause {
		v.state = v.state.Toggle()
	}
	if v.state != state.StateRunning {
		return
	}

	intents := v.input.Intents(input)
	if v.panel != nil {
		intents = append(intents, v.panel.TakeIntents()...)
	}
	v.session.Manual(intents)

	v.snap = v.session.Step(dt, v.viewport.Scale())
	v.animator.Update(v.snap.State)
	if v.panel != nil {
		v.panel.Sync(v.snap.State)
	}
}

func (v *Village) drainTriggers() {
	if v.triggers == nil {
		return
	}
	for {
		select {
		case t, ok := <-v.triggers:
			if !ok {
				v.triggers = nil
				return
			}
			v.session.Trigger(t)
		default:
			return
		}
	}
}

func (v *Village) drainReloads() {
	if v.reloads == nil {
		return
	}
	for {
		select {
		case name, ok := <-v.reloads:
			if !ok {
				v.reloads = nil
				return
			}
			if filepath.Base(name) == config.VillagerFile {
				v.reloadSites()
			}
		default:
			return
		}
	}
}

func (v *Village) reloadSites() {
	cfg, err := v.loader.LoadVillager()
	if err != nil {
		v.logger.Printf("Failed to reload sites: %v", err)
		return
	}
	if _, err := system.LoadSites(cfg); err != nil {
		v.logger.Printf("Failed to reload sites: %v", err)
		return
	}
	v.pendingSites = cfg
}

// applyPendingSites swaps the site table once the villager is home
func (v *Village) applyPendingSites() {
	if v.pendingSites == nil {
		return
	}
	applied, err := v.session.ReloadSites(v.pendingSites)
	if err != nil {
		v.logger.Printf("Failed to reload sites: %v", err)
		v.pendingSites = nil
		return
	}
	if applied {
		v.pendingSites = nil
	}
}

func (v *Village) saveRecording() {
	if v.recorder == nil || v.recorder.FrameCount() == 0 {
		return
	}

	filename := v.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := v.recorder.Save(filename); err != nil {
		v.logger.Printf("Failed to save recording: %v", err)
	} else {
		v.logger.Printf("Recording saved: %s (%d frames, %d events)", filename, v.recorder.FrameCount(), v.recorder.EventCount())
	}
}

// Draw renders the scene (implements scene.Scene)
func (v *Village) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	v.drawTiles(screen)
	v.drawDecorations(screen)
	v.drawPath(screen)
	v.drawVillager(screen)
	v.drawUI(screen)

	if v.panel != nil {
		v.panel.Draw(screen)
	}

	if v.state == state.StatePaused {
		v.drawPauseOverlay(screen)
	}
}

func (v *Village) drawTiles(screen *ebiten.Image) {
	ox, oy := v.viewport.MapOrigin()
	size := float64(v.stage.TileSize) * v.viewport.Scale()
	for ty := 0; ty < v.stage.Height; ty++ {
		for tx := 0; tx < v.stage.Width; tx++ {
			tile := v.stage.GetTile(tx, ty)
			ebitenutil.DrawRect(screen, ox+float64(tx)*size, oy+float64(ty)*size, size+1, size+1, tile.Color)
		}
	}
}

func (v *Village) drawDecorations(screen *ebiten.Image) {
	ox, oy := v.viewport.MapOrigin()
	tile := float64(v.stage.TileSize) * v.viewport.Scale()
	for _, d := range v.stage.Decorations {
		c, ok := decorationColors[d.Kind]
		if !ok {
			continue
		}
		size := tile * 0.6
		if d.Kind == entity.DecorationHouse {
			size = tile * 1.6
		}
		x := ox + (float64(d.X)+0.5)*tile - size/2
		y := oy + (float64(d.Y)+0.5)*tile - size/2
		ebitenutil.DrawRect(screen, x, y, size, size, c)
	}

	hx, hy := v.viewport.ToScreen(v.session.Controller().Sites().Home)
	ebitenutil.DrawRect(screen, hx-2, hy-2, 4, 4, colorHome)
}

func (v *Village) drawPath(screen *ebiten.Image) {
	path := v.session.Controller().Path()
	for i := v.snap.Waypoint; i < len(path); i++ {
		x, y := v.viewport.ToScreen(path[i])
		ebitenutil.DrawRect(screen, x-2, y-2, 4, 4, colorPath)
	}
}

func (v *Village) drawVillager(screen *ebiten.Image) {
	x, y := v.viewport.ToScreen(v.snap.Offset)
	size := 64 * v.viewport.SpriteScale()

	// Bob on odd animation frames
	bob := 0.0
	if v.animator.Frame()%2 == 1 {
		bob = size * 0.06
	}

	ebitenutil.DrawRect(screen, x-size/4, y-size/2-bob, size/2, size/2, colorVillager)

	// Facing marker
	markerX := x + size/4
	if v.snap.FacingLeft() {
		markerX = x - size/4 - size/8
	}
	ebitenutil.DrawRect(screen, markerX, y-size/3-bob, size/8, size/8, colorVillager)

	// Carried load on the way home
	switch v.snap.State {
	case villager.StateReturningGold:
		ebitenutil.DrawRect(screen, x-size/8, y-size/2-size/4-bob, size/4, size/4, colorGoldLoad)
	case villager.StateReturningWood:
		ebitenutil.DrawRect(screen, x-size/8, y-size/2-size/4-bob, size/4, size/4, colorWoodLoad)
	}
}

func (v *Village) drawUI(screen *ebiten.Image) {
	anim := v.animator.Current()
	info := fmt.Sprintf("State: %s  Anim: %s[%d]  Frame: %d", v.snap.StateLabel, anim.Key, v.animator.Frame(), v.session.Frame())
	if v.snap.PendingTask != "" {
		info += "  Next: " + v.snap.PendingTask
	}
	ebitenutil.DebugPrintAt(screen, info, 8, 8)
	ebitenutil.DebugPrintAt(screen, "G: gold  T: tree  R: return  ESC: pause", 8, 24)

	if v.recorder != nil && v.recorder.IsRecording() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("REC %d", v.recorder.EventCount()), 8, 40)
	}
}

func (v *Village) drawPauseOverlay(screen *ebiten.Image) {
	w, h := v.viewport.ScreenSize()

	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(w), float64(h), overlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, w/2-50, h/2-20)
}

// Resize updates the viewport (implements scene.Scene)
func (v *Village) Resize(w, h int) {
	v.viewport.Resize(w, h)
}

// OnEnter is called when entering the scene
func (v *Village) OnEnter() {
	v.state = state.StateRunning
	v.snap = v.session.Snapshot()
	v.animator.Update(v.snap.State)
	if v.panel != nil {
		v.panel.Sync(v.snap.State)
	}
}

// OnExit is called when leaving the scene
func (v *Village) OnExit() {
	v.saveRecording()
	if v.recorder != nil {
		v.recorder.Stop()
	}
}

// State returns the scene state
func (v *Village) State() state.GameState {
	return v.state
}

// Snapshot returns the villager state drawn last tick
func (v *Village) Snapshot() villager.Snapshot {
	return v.snap
}
