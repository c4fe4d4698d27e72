// Package villager implements the motion and behavior controller for the
// village worker: a small state machine that turns discrete commands into
// waypoint-following position updates, one Advance call per frame.
package villager

// BehaviorState is the current behavior phase of the villager
type BehaviorState int

const (
	StateIdle BehaviorState = iota
	StateWalkingToMine
	StateMining
	StateWalkingToTree
	StateChopping
	StateReturningGold
	StateReturningWood
)

// String returns the presentation label of the state
func (s BehaviorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalkingToMine:
		return "walking_to_mine"
	case StateMining:
		return "mining"
	case StateWalkingToTree:
		return "walking_to_tree"
	case StateChopping:
		return "chopping"
	case StateReturningGold:
		return "returning_gold"
	case StateReturningWood:
		return "returning_wood"
	default:
		return "unknown"
	}
}

// IsWalking reports whether the villager is on an outbound journey
func (s BehaviorState) IsWalking() bool {
	return s == StateWalkingToMine || s == StateWalkingToTree
}

// IsWorking reports whether the villager is working at a site
func (s BehaviorState) IsWorking() bool {
	return s == StateMining || s == StateChopping
}

// IsReturning reports whether the villager is on the way home
func (s BehaviorState) IsReturning() bool {
	return s == StateReturningGold || s == StateReturningWood
}

// IsMoving reports whether the state follows a path
func (s BehaviorState) IsMoving() bool {
	return s.IsWalking() || s.IsReturning()
}

// Category identifies a resource category. The zero value means no category.
type Category int

const (
	CategoryNone Category = iota
	Gold
	Wood
)

// String returns the category label
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case Gold:
		return "gold"
	case Wood:
		return "wood"
	default:
		return "unknown"
	}
}

// Valid reports whether c names a real category
func (c Category) Valid() bool {
	return c == Gold || c == Wood
}

// Other returns the opposite category. CategoryNone maps to itself.
func (c Category) Other() Category {
	switch c {
	case Gold:
		return Wood
	case Wood:
		return Gold
	default:
		return CategoryNone
	}
}

// ParseCategory parses a category label ("gold" or "wood")
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "gold":
		return Gold, true
	case "wood", "tree":
		return Wood, true
	default:
		return CategoryNone, false
	}
}

func walkingState(c Category) BehaviorState {
	if c == Gold {
		return StateWalkingToMine
	}
	return StateWalkingToTree
}

func workingState(c Category) BehaviorState {
	if c == Gold {
		return StateMining
	}
	return StateChopping
}

func returningState(c Category) BehaviorState {
	if c == Gold {
		return StateReturningGold
	}
	return StateReturningWood
}

// Facing is the horizontal facing direction of the villager sprite
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// String returns "left" or "right"
func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// ParseFacing parses "left" or "right"
func ParseFacing(s string) (Facing, bool) {
	switch s {
	case "left":
		return FacingLeft, true
	case "right":
		return FacingRight, true
	default:
		return FacingRight, false
	}
}
