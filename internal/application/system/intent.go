package system

import "github.com/younwookim/villager/internal/domain/villager"

// Commander is the command surface of the villager controller
type Commander interface {
	Dispatch(cat villager.Category)
	QueueTask(cat villager.Category)
	ReturnHome()
	State() villager.BehaviorState
}

// Intent represents a command that should be applied to the villager
type Intent interface {
	isIntent()
	Apply(c Commander)
}

// DispatchIntent sends an idle villager to a site of the category
type DispatchIntent struct {
	Category villager.Category
}

func (DispatchIntent) isIntent() {}

func (i DispatchIntent) Apply(c Commander) { c.Dispatch(i.Category) }

// QueueIntent remembers a category for after the villager is back home
type QueueIntent struct {
	Category villager.Category
}

func (QueueIntent) isIntent() {}

func (i QueueIntent) Apply(c Commander) { c.QueueTask(i.Category) }

// ReturnIntent requests an early return home
type ReturnIntent struct{}

func (ReturnIntent) isIntent() {}

func (ReturnIntent) Apply(c Commander) { c.ReturnHome() }

// ApplyIntents applies intents in order
func ApplyIntents(c Commander, intents []Intent) {
	for _, in := range intents {
		in.Apply(c)
	}
}
