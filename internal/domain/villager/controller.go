package villager

// Default tuning, in scene pixels at scale 1
const (
	DefaultSpeed            = 150.0 // pixels per second
	DefaultArrivalThreshold = 5.0
	DefaultReturnDelay      = 0.8 // seconds spent working before an early return
)

// Config configures a Controller. Zero tuning values fall back to the defaults.
type Config struct {
	Sites            *SiteTable
	Speed            float64
	ArrivalThreshold float64
	ReturnDelay      float64

	// LastSelected seeds the round-robin memory per category, so the first
	// dispatch of a category picks the other site.
	LastSelected map[Category]SiteID
}

// Controller owns the villager's logical state. It is not safe for
// concurrent use: commands and Advance must be called from one goroutine.
type Controller struct {
	sites            *SiteTable
	speed            float64
	arrivalThreshold float64
	returnDelay      float64

	state    BehaviorState
	offset   Point
	facing   Facing
	path     []Point
	waypoint int
	site     *Site

	lastSelected    map[Category]SiteID
	returnOnArrival bool
	returnTimer     float64
	pending         Category

	// OnTransition is called after every state change
	OnTransition func(from, to BehaviorState)
}

// NewController creates an idle controller standing at home
func NewController(cfg Config) *Controller {
	sites := cfg.Sites
	if sites == nil {
		sites = DefaultSiteTable()
	}
	c := &Controller{
		sites:            sites,
		speed:            orDefault(cfg.Speed, DefaultSpeed),
		arrivalThreshold: orDefault(cfg.ArrivalThreshold, DefaultArrivalThreshold),
		returnDelay:      orDefault(cfg.ReturnDelay, DefaultReturnDelay),
		state:            StateIdle,
		offset:           sites.Home,
		facing:           FacingRight,
		lastSelected:     make(map[Category]SiteID),
	}
	for cat, id := range cfg.LastSelected {
		c.lastSelected[cat] = id
	}
	return c
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// Dispatch sends an idle villager to the next site of the category.
// It is a no-op unless the villager is idle.
func (c *Controller) Dispatch(cat Category) {
	if c.state != StateIdle || !cat.Valid() {
		return
	}
	c.startJourney(cat)
}

// QueueTask remembers a category to dispatch to once the villager is back
// home, replacing any previously queued one.
func (c *Controller) QueueTask(cat Category) {
	if !cat.Valid() {
		return
	}
	c.pending = cat
}

// ReturnHome requests an early return. Working villagers turn back at once;
// walking villagers finish the trip, work briefly, then turn back.
func (c *Controller) ReturnHome() {
	switch {
	case c.state.IsWorking() && c.site != nil:
		c.returnTimer = 0
		c.startReturn()
	case c.state.IsWalking():
		c.returnOnArrival = true
	}
}

// SetSites replaces the site table. It only applies while idle so that a
// journey never switches paths midway; the result reports whether it applied.
func (c *Controller) SetSites(t *SiteTable) bool {
	if t == nil || c.state != StateIdle || len(c.path) > 0 {
		return false
	}
	c.sites = t
	c.site = nil
	c.offset = t.Home
	return true
}

// Advance moves the simulation forward by dt seconds. Negative or
// non-finite dt is treated as zero. Offsets are kept in scene units, so scale
// does not change how far the villager moves.
func (c *Controller) Advance(dt, scale float64) Snapshot {
	_ = scale
	dt = sanitizeDelta(dt)
	if dt == 0 {
		return c.Snapshot()
	}

	if c.returnTimer > 0 {
		c.returnTimer -= dt
		if c.returnTimer <= 0 {
			c.returnTimer = 0
			c.startReturn()
		}
		return c.Snapshot()
	}

	if len(c.path) == 0 || c.waypoint >= len(c.path) {
		return c.Snapshot()
	}

	target := c.path[c.waypoint]
	delta := target.Sub(c.offset)
	dist := delta.Len()

	if dist < c.arrivalThreshold {
		c.offset = target
		if c.waypoint == len(c.path)-1 {
			c.arrive()
		} else {
			c.waypoint++
		}
		return c.Snapshot()
	}

	ratio := c.speed * dt / dist
	if ratio > 1 {
		ratio = 1
	}
	c.offset = Point{X: c.offset.X + delta.X*ratio, Y: c.offset.Y + delta.Y*ratio}
	c.updateFacing(delta)
	return c.Snapshot()
}

func (c *Controller) updateFacing(delta Point) {
	if c.state.IsReturning() && c.site != nil && c.site.PinReturnFacing {
		c.facing = c.site.ReturnFacing
		return
	}
	switch {
	case delta.X < 0:
		c.facing = FacingLeft
	case delta.X > 0:
		c.facing = FacingRight
	}
}

// arrive handles reaching the last waypoint of the current path
func (c *Controller) arrive() {
	if c.state.IsReturning() && c.pending.Valid() {
		next := c.pending
		c.pending = CategoryNone
		c.startJourney(next)
		return
	}

	var next BehaviorState
	switch c.state {
	case StateWalkingToMine:
		next = StateMining
	case StateWalkingToTree:
		next = StateChopping
	default:
		next = StateIdle
	}

	c.clearPath()
	if next == StateIdle {
		c.site = nil
	}
	if c.returnOnArrival && next.IsWorking() {
		c.returnOnArrival = false
		c.returnTimer = c.returnDelay
	}
	c.setState(next)
}

func (c *Controller) startJourney(cat Category) {
	site := c.sites.next(cat, c.lastSelected[cat])
	c.lastSelected[cat] = site.ID
	c.site = site
	c.path = site.Waypoints
	c.waypoint = 0
	c.setState(walkingState(cat))
}

func (c *Controller) startReturn() {
	if c.site == nil {
		return
	}
	c.path = ReturnPath(c.site.Waypoints, c.sites.Home)
	c.waypoint = 0
	c.setState(returningState(c.site.Category))
}

func (c *Controller) clearPath() {
	c.path = nil
	c.waypoint = 0
}

func (c *Controller) setState(next BehaviorState) {
	prev := c.state
	c.state = next
	if prev != next && c.OnTransition != nil {
		c.OnTransition(prev, next)
	}
}

// State returns the current behavior state
func (c *Controller) State() BehaviorState {
	return c.state
}

// Offset returns the current position
func (c *Controller) Offset() Point {
	return c.offset
}

// Facing returns the facing to draw with. While working it is the site's
// work facing, otherwise the direction of the last horizontal movement.
func (c *Controller) Facing() Facing {
	if c.state.IsWorking() && c.site != nil {
		return c.site.WorkFacing
	}
	return c.facing
}

// Site returns the site of the current or last journey, nil when idle
func (c *Controller) Site() *Site {
	return c.site
}

// PendingTask returns the queued category, CategoryNone when nothing is queued
func (c *Controller) PendingTask() Category {
	return c.pending
}

// ReturnTimer returns the remaining seconds before an early return, 0 if inactive
func (c *Controller) ReturnTimer() float64 {
	return c.returnTimer
}

// Path returns a copy of the active path
func (c *Controller) Path() []Point {
	return append([]Point(nil), c.path...)
}

// WaypointIndex returns the index of the waypoint being walked to
func (c *Controller) WaypointIndex() int {
	return c.waypoint
}

// Sites returns the active site table
func (c *Controller) Sites() *SiteTable {
	return c.sites
}
