package terminal

import "github.com/gdamore/tcell/v2"

// Action is a user command read from the keyboard
type Action int

const (
	ActionNone Action = iota
	ActionGold
	ActionTree
	ActionReturn
	ActionQuit
)

// ActionFor maps a key event to an action. Keys match the windowed app
// where the terminal allows.
func ActionFor(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'g', 'G':
			return ActionGold
		case 't', 'T':
			return ActionTree
		case 'r', 'R':
			return ActionReturn
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}
