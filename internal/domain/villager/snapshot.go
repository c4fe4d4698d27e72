package villager

// Snapshot is an immutable copy of the controller state for readers
// (renderer, bridge stream, recorder).
type Snapshot struct {
	State       BehaviorState `json:"-"`
	StateLabel  string        `json:"state"`
	Offset      Point         `json:"offset"`
	Facing      Facing        `json:"-"`
	FacingLabel string        `json:"facing"`
	Site        SiteID        `json:"site,omitempty"`
	Pending     Category      `json:"-"`
	PendingTask string        `json:"pendingTask,omitempty"`
	Waypoint    int           `json:"waypoint"`
	PathLen     int           `json:"pathLen"`
	ReturnTimer float64       `json:"returnTimer,omitempty"`
}

// Moving reports whether the villager is following a path
func (s Snapshot) Moving() bool {
	return s.State.IsMoving()
}

// FacingLeft reports whether the sprite should be mirrored
func (s Snapshot) FacingLeft() bool {
	return s.Facing == FacingLeft
}

// Snapshot returns the current state as a value
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:       c.state,
		StateLabel:  c.state.String(),
		Offset:      c.offset,
		Facing:      c.Facing(),
		Pending:     c.pending,
		Waypoint:    c.waypoint,
		PathLen:     len(c.path),
		ReturnTimer: c.returnTimer,
	}
	snap.FacingLabel = snap.Facing.String()
	if c.site != nil {
		snap.Site = c.site.ID
	}
	if c.pending.Valid() {
		snap.PendingTask = c.pending.String()
	}
	return snap
}
