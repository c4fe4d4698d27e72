package village

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/villager/internal/application/system"
	"github.com/younwookim/villager/internal/domain/villager"
)

// Panel is the manual control panel: a state label and Gold, Tree and Return
// buttons. Clicks are queued as intents and taken by the scene each tick.
type Panel struct {
	ui     *ebitenui.UI
	label  *widget.Text
	gold   *widget.Button
	tree   *widget.Button
	ret    *widget.Button
	queued []system.Intent
}

// NewPanel builds the panel anchored to the bottom-left corner
func NewPanel() *Panel {
	p := &Panel{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := &widget.ButtonImage{
		Idle:     imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		Hover:    imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 255}),
		Pressed:  imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}),
		Disabled: imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 120}),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{
		Idle:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Disabled: color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
	}

	p.label = widget.NewText(
		widget.TextOpts.Text(PanelLabel(villager.StateIdle), &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
	)

	newButton := func(label string, intent system.Intent) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				p.press(intent)
			}),
		)
	}
	p.gold = newButton("Gold", system.DispatchIntent{Category: villager.Gold})
	p.tree = newButton("Tree", system.DispatchIntent{Category: villager.Wood})
	p.ret = newButton("Return", system.ReturnIntent{})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	panel.AddChild(p.label)
	panel.AddChild(p.gold)
	panel.AddChild(p.tree)
	panel.AddChild(p.ret)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.ui = &ebitenui.UI{Container: root}
	p.Sync(villager.StateIdle)
	return p
}

func (p *Panel) press(intent system.Intent) {
	p.queued = append(p.queued, intent)
}

// TakeIntents returns and clears the intents queued by clicks
func (p *Panel) TakeIntents() []system.Intent {
	out := p.queued
	p.queued = nil
	return out
}

// Sync updates the label and button availability for state
func (p *Panel) Sync(state villager.BehaviorState) {
	p.label.Label = PanelLabel(state)
	gold, tree, ret := ButtonsEnabled(state)
	p.gold.GetWidget().Disabled = !gold
	p.tree.GetWidget().Disabled = !tree
	p.ret.GetWidget().Disabled = !ret
}

// Update processes mouse input on the panel
func (p *Panel) Update() {
	p.ui.Update()
}

// Draw renders the panel
func (p *Panel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}

// Label returns the text currently shown on the panel
func (p *Panel) Label() string {
	return p.label.Label
}

// PanelLabel formats a state for display ("walking_to_mine" -> "walking to mine")
func PanelLabel(state villager.BehaviorState) string {
	return strings.ReplaceAll(state.String(), "_", " ")
}

// ButtonsEnabled reports which buttons accept clicks in state. Dispatch only
// does something while idle and Return only while working.
func ButtonsEnabled(state villager.BehaviorState) (gold, tree, ret bool) {
	idle := state == villager.StateIdle
	return idle, idle, state.IsWorking()
}
