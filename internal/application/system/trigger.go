package system

import (
	"time"

	"github.com/younwookim/villager/internal/domain/villager"
)

// TriggerRouter turns external triggers into villager intents. It alternates
// categories on every prompt submission, starting from the opposite of the
// seed it was created with.
type TriggerRouter struct {
	last villager.Category
}

// NewTriggerRouter creates a router that treats last as the category handed
// out most recently. An invalid seed is treated as Wood, so Gold comes first.
func NewTriggerRouter(last villager.Category) *TriggerRouter {
	if !last.Valid() {
		last = villager.Wood
	}
	return &TriggerRouter{last: last}
}

// SeedFromClock picks the router seed from the hour of day so sessions do not
// always start with the same resource: even hours start with Gold.
func SeedFromClock(now time.Time) villager.Category {
	if now.Hour()%2 == 0 {
		return villager.Wood
	}
	return villager.Gold
}

// Last returns the category handed out most recently
func (r *TriggerRouter) Last() villager.Category {
	return r.last
}

// Route returns the intents for a trigger given the current villager state.
// Unknown triggers produce no intents.
func (r *TriggerRouter) Route(state villager.BehaviorState, t villager.Trigger) []Intent {
	switch t {
	case villager.TriggerPromptSubmit:
		next := r.last.Other()
		r.last = next
		if state == villager.StateIdle {
			return []Intent{DispatchIntent{Category: next}}
		}
		// still out: drop off first, then head to the next resource
		return []Intent{QueueIntent{Category: next}, ReturnIntent{}}

	case villager.TriggerStop, villager.TriggerInterrupt:
		if state.IsWalking() || state.IsWorking() {
			return []Intent{ReturnIntent{}}
		}
	}
	return nil
}

// Handle routes a trigger against c's current state and applies the result
func (r *TriggerRouter) Handle(c Commander, t villager.Trigger) []Intent {
	intents := r.Route(c.State(), t)
	ApplyIntents(c, intents)
	return intents
}
