package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/villager/internal/domain/villager"
)

// InputSystem handles keyboard controls
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the keys pressed this frame
type InputState struct {
	Gold   bool // G
	Tree   bool // T
	Return bool // R
	Pause  bool // Escape
	Save   bool // F5, save the trigger recording
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Gold:   inpututil.IsKeyJustPressed(ebiten.KeyG),
		Tree:   inpututil.IsKeyJustPressed(ebiten.KeyT),
		Return: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Pause:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Save:   inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}

// Intents converts the villager keys of an input state into intents.
// Dispatches are passed through as-is; the controller ignores them unless idle.
func (s *InputSystem) Intents(input InputState) []Intent {
	var intents []Intent
	if input.Gold {
		intents = append(intents, DispatchIntent{Category: villager.Gold})
	}
	if input.Tree {
		intents = append(intents, DispatchIntent{Category: villager.Wood})
	}
	if input.Return {
		intents = append(intents, ReturnIntent{})
	}
	return intents
}
