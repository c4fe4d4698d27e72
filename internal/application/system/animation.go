package system

import "github.com/younwookim/villager/internal/domain/villager"

// Playback speeds in frames advanced per tick
const (
	MovingAnimationSpeed = 0.2
	IdleAnimationSpeed   = 0.14
)

// Animation describes the sprite strip shown for a behavior state
type Animation struct {
	Key    string
	Frames int
	Speed  float64
}

var animations = map[villager.BehaviorState]Animation{
	villager.StateIdle:          {Key: "idle", Frames: 8},
	villager.StateWalkingToMine: {Key: "run_pickaxe", Frames: 6},
	villager.StateMining:        {Key: "mining", Frames: 6},
	villager.StateReturningGold: {Key: "run_gold", Frames: 6},
	villager.StateWalkingToTree: {Key: "run_axe", Frames: 6},
	villager.StateChopping:      {Key: "chopping", Frames: 6},
	villager.StateReturningWood: {Key: "run_wood", Frames: 6},
}

// SelectAnimation returns the animation for a state. Unknown states fall
// back to idle.
func SelectAnimation(state villager.BehaviorState) Animation {
	anim, ok := animations[state]
	if !ok {
		anim = animations[villager.StateIdle]
	}
	anim.Speed = IdleAnimationSpeed
	if state.IsMoving() {
		anim.Speed = MovingAnimationSpeed
	}
	return anim
}

// Animator tracks the current frame of the villager animation. Switching to
// a different animation restarts it from the first frame.
type Animator struct {
	current  Animation
	progress float64
}

// Update advances the animation for state by one tick
func (a *Animator) Update(state villager.BehaviorState) {
	anim := SelectAnimation(state)
	if anim.Key != a.current.Key {
		a.current = anim
		a.progress = 0
		return
	}
	a.current.Speed = anim.Speed
	a.progress += anim.Speed
	if frames := float64(a.current.Frames); frames > 0 && a.progress >= frames {
		a.progress -= frames
	}
}

// Current returns the active animation
func (a *Animator) Current() Animation {
	return a.current
}

// Frame returns the index of the frame to draw
func (a *Animator) Frame() int {
	if a.current.Frames == 0 {
		return 0
	}
	return int(a.progress) % a.current.Frames
}
