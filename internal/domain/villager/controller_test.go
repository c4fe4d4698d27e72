package villager

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60.0

// testSites builds a table with home at the origin
func testSites(t *testing.T) *SiteTable {
	t.Helper()
	table, err := NewSiteTable(Point{}, []Site{
		{ID: "a1", Category: Gold, Waypoints: []Point{{X: -100, Y: 0}, {X: -100, Y: 50}, {X: -150, Y: 50}}, WorkFacing: FacingRight},
		{ID: "a2", Category: Gold, Waypoints: []Point{{X: 100, Y: 0}, {X: 120, Y: 60}, {X: 60, Y: 60}}, WorkFacing: FacingLeft, PinReturnFacing: true, ReturnFacing: FacingLeft},
		{ID: "b1", Category: Wood, Waypoints: []Point{{X: 0, Y: -80}, {X: -40, Y: -80}}, WorkFacing: FacingLeft},
		{ID: "b2", Category: Wood, Waypoints: []Point{{X: 0, Y: 80}, {X: 40, Y: 80}}, WorkFacing: FacingRight},
	})
	require.NoError(t, err)
	return table
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewController(Config{Sites: testSites(t)})
}

// runUntil advances frame by frame until the controller reaches want and
// returns the simulated time it took.
func runUntil(t *testing.T, c *Controller, want BehaviorState) float64 {
	t.Helper()
	elapsed := 0.0
	for i := 0; i < 100000; i++ {
		if c.State() == want {
			return elapsed
		}
		c.Advance(frame, 1)
		elapsed += frame
	}
	require.Failf(t, "state not reached", "want %s, still %s", want, c.State())
	return elapsed
}

func TestNewController(t *testing.T) {
	c := NewController(Config{})

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, DefaultHome, c.Offset())
	assert.Equal(t, FacingRight, c.Facing())
	assert.Empty(t, c.Path())
	assert.Equal(t, CategoryNone, c.PendingTask())
	assert.Nil(t, c.Site())
}

func TestController_DispatchScenario(t *testing.T) {
	c := NewController(Config{
		Sites:        testSites(t),
		LastSelected: map[Category]SiteID{Gold: "a1"},
	})

	c.Dispatch(Gold)

	require.Equal(t, StateWalkingToMine, c.State())
	require.NotNil(t, c.Site())
	assert.Equal(t, SiteID("a2"), c.Site().ID)
	assert.Len(t, c.Path(), 3)
	assert.Equal(t, 0, c.WaypointIndex())

	site := c.Site()
	length := PathLength(Point{}, site.Waypoints)
	elapsed := runUntil(t, c, StateMining)

	tolerance := float64(len(site.Waypoints)) * (DefaultArrivalThreshold/DefaultSpeed + 2*frame)
	assert.InDelta(t, length/DefaultSpeed, elapsed, tolerance)
	assert.Equal(t, site.Destination(), c.Offset())
	assert.Equal(t, FacingLeft, c.Facing(), "working facing comes from the site")
	assert.Empty(t, c.Path())
	assert.Equal(t, 0, c.WaypointIndex())
}

func TestController_DispatchWhileBusyIsNoop(t *testing.T) {
	c := newTestController(t)

	c.Dispatch(Gold)
	c.Advance(frame, 1)
	before := c.Snapshot()

	c.Dispatch(Wood)

	assert.Equal(t, StateWalkingToMine, c.State())
	assert.Equal(t, before, c.Snapshot())
}

func TestController_DispatchInvalidCategory(t *testing.T) {
	c := newTestController(t)

	c.Dispatch(CategoryNone)
	c.Dispatch(Category(42))
	c.QueueTask(Category(42))

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, CategoryNone, c.PendingTask())
}

func TestController_RoundRobin(t *testing.T) {
	for _, cat := range []Category{Gold, Wood} {
		t.Run(cat.String(), func(t *testing.T) {
			c := newTestController(t)
			var picked []SiteID

			for i := 0; i < 4; i++ {
				c.Dispatch(cat)
				require.NotNil(t, c.Site())
				picked = append(picked, c.Site().ID)

				runUntil(t, c, workingState(cat))
				c.ReturnHome()
				runUntil(t, c, StateIdle)
			}

			for i := 1; i < len(picked); i++ {
				assert.NotEqual(t, picked[i-1], picked[i], "dispatch %d repeated a site", i)
			}
			assert.Equal(t, picked[0], picked[2])
		})
	}
}

func TestController_AdvanceZeroIsIdempotent(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Wood)
	for i := 0; i < 10; i++ {
		c.Advance(frame, 1)
	}

	before := c.Snapshot()
	for i := 0; i < 5; i++ {
		c.Advance(0, 1)
	}
	assert.Equal(t, before, c.Snapshot())
}

func TestController_AdvanceInvalidDelta(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"negative", -1},
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			c.Dispatch(Gold)
			c.Advance(frame, 1)
			before := c.Snapshot()

			c.Advance(tt.dt, 1)

			assert.Equal(t, before, c.Snapshot())
		})
	}
}

func TestController_ArrivalSnapsExactly(t *testing.T) {
	table, err := NewSiteTable(Point{}, []Site{
		{ID: "a1", Category: Gold, Waypoints: []Point{{X: 3, Y: 0}, {X: 200, Y: 0}}},
		{ID: "a2", Category: Gold, Waypoints: []Point{{X: 50, Y: 0}}},
		{ID: "b1", Category: Wood, Waypoints: []Point{{X: 0, Y: 50}}},
		{ID: "b2", Category: Wood, Waypoints: []Point{{X: 0, Y: -50}}},
	})
	require.NoError(t, err)
	c := NewController(Config{Sites: table})

	c.Dispatch(Gold)
	c.Advance(frame, 1)

	assert.Equal(t, Point{X: 3, Y: 0}, c.Offset())
	assert.Equal(t, 1, c.WaypointIndex())
	assert.Equal(t, StateWalkingToMine, c.State())
}

func TestController_MoveNeverOvershoots(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Wood) // b1: first waypoint (0,-80)

	c.Advance(10, 1)
	assert.Equal(t, Point{X: 0, Y: -80}, c.Offset())
	assert.Equal(t, 0, c.WaypointIndex(), "arrival is registered on the next tick")

	c.Advance(10, 1)
	assert.Equal(t, 1, c.WaypointIndex())
}

func TestController_MovesAtFixedSpeed(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Wood)

	c.Advance(0.1, 1)
	assert.InDelta(t, 15.0, c.Offset().DistanceTo(Point{}), 1e-9)

	c.Advance(0.1, 4)
	assert.InDelta(t, 30.0, c.Offset().DistanceTo(Point{}), 1e-9, "scale does not change scene-space speed")
}

func TestController_ReturnPathAndHome(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Gold)
	runUntil(t, c, StateMining)

	site := c.Site()
	c.ReturnHome()

	assert.Equal(t, StateReturningGold, c.State())
	assert.Equal(t, ReturnPath(site.Waypoints, Point{}), c.Path())
	assert.Equal(t, 0, c.WaypointIndex())

	runUntil(t, c, StateIdle)
	assert.Equal(t, Point{}, c.Offset())
	assert.Empty(t, c.Path())
	assert.Nil(t, c.Site())
}

func TestController_ReturnHomeIgnoredWhenIdleOrReturning(t *testing.T) {
	c := newTestController(t)

	c.ReturnHome()
	assert.Equal(t, StateIdle, c.State())

	c.Dispatch(Wood)
	runUntil(t, c, StateChopping)
	c.ReturnHome()
	c.Advance(frame, 1)
	before := c.Snapshot()

	c.ReturnHome()
	assert.Equal(t, before, c.Snapshot())
}

func TestController_QueuedTaskRedispatchesWithoutIdle(t *testing.T) {
	c := newTestController(t)
	var transitions [][2]BehaviorState
	c.OnTransition = func(from, to BehaviorState) {
		transitions = append(transitions, [2]BehaviorState{from, to})
	}

	c.Dispatch(Gold)
	runUntil(t, c, StateMining)
	transitions = nil

	c.QueueTask(Wood)
	c.ReturnHome()
	assert.Equal(t, Wood, c.PendingTask())

	runUntil(t, c, StateWalkingToTree)

	assert.Equal(t, [][2]BehaviorState{
		{StateMining, StateReturningGold},
		{StateReturningGold, StateWalkingToTree},
	}, transitions)
	assert.Equal(t, CategoryNone, c.PendingTask())
	assert.Equal(t, Point{}, c.Offset())
	assert.Equal(t, Wood, c.Site().Category)
	assert.Equal(t, c.Site().Waypoints, c.Path())
}

func TestController_QueueTaskOverwrites(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Gold)

	c.QueueTask(Wood)
	c.QueueTask(Gold)

	assert.Equal(t, Gold, c.PendingTask())
}

func TestController_EarlyReturnWhileWalking(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Gold)
	c.Advance(frame, 1)

	c.ReturnHome()
	assert.Equal(t, StateWalkingToMine, c.State(), "walking villagers finish the trip first")

	runUntil(t, c, StateMining)
	assert.InDelta(t, DefaultReturnDelay, c.ReturnTimer(), 1e-9)

	ticks := 0
	for c.State() == StateMining && ticks < 1000 {
		c.Advance(frame, 1)
		ticks++
	}

	assert.InDelta(t, DefaultReturnDelay, float64(ticks)*frame, 2*frame)
	assert.Equal(t, StateReturningGold, c.State())
	assert.Equal(t, 0.0, c.ReturnTimer())
}

func TestController_EarlyReturnKeepsQueuedTask(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Gold)
	c.QueueTask(Wood)
	c.ReturnHome()

	runUntil(t, c, StateMining)
	runUntil(t, c, StateReturningGold)
	assert.Equal(t, Wood, c.PendingTask())

	runUntil(t, c, StateWalkingToTree)
	assert.Equal(t, CategoryNone, c.PendingTask())
}

func TestController_ReturnHomeDisarmsTimer(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Wood)
	c.ReturnHome()
	runUntil(t, c, StateChopping)
	require.Greater(t, c.ReturnTimer(), 0.0)

	c.ReturnHome()
	assert.Equal(t, StateReturningWood, c.State())
	assert.Equal(t, 0.0, c.ReturnTimer())

	for i := 0; i < 30; i++ {
		c.Advance(frame, 1)
	}
	assert.Equal(t, StateReturningWood, c.State())
	assert.Positive(t, c.WaypointIndex(), "return trip keeps its progress")
}

func TestController_FacingFollowsMovement(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Gold) // a1 heads left first

	c.Advance(frame, 1)
	assert.Equal(t, FacingLeft, c.Facing())
}

func TestController_FacingKeptOnVerticalMovement(t *testing.T) {
	c := newTestController(t)
	c.Dispatch(Gold) // a1: (-100,0) then straight down to (-100,50)

	for c.WaypointIndex() < 1 {
		c.Advance(frame, 1)
	}
	require.Equal(t, FacingLeft, c.Facing())

	c.Advance(frame, 1)
	assert.Equal(t, FacingLeft, c.Facing())
	assert.Equal(t, -100.0, c.Offset().X)
}

func TestController_PinnedReturnFacing(t *testing.T) {
	c := NewController(Config{
		Sites:        testSites(t),
		LastSelected: map[Category]SiteID{Gold: "a1"},
	})
	c.Dispatch(Gold)
	require.Equal(t, SiteID("a2"), c.Site().ID)
	runUntil(t, c, StateMining)

	c.ReturnHome()
	for c.State() == StateReturningGold {
		c.Advance(frame, 1)
		if c.State() == StateReturningGold {
			require.Equal(t, FacingLeft, c.Facing())
		}
	}
	assert.Equal(t, StateIdle, c.State())
}

func TestController_SetSites(t *testing.T) {
	c := newTestController(t)
	table, err := NewSiteTable(Point{X: 10, Y: 10}, DefaultSites())
	require.NoError(t, err)

	c.Dispatch(Gold)
	assert.False(t, c.SetSites(table), "never swapped mid-journey")

	c = newTestController(t)
	assert.True(t, c.SetSites(table))
	assert.Equal(t, Point{X: 10, Y: 10}, c.Offset())
	assert.Same(t, table, c.Sites())
}

func TestController_TransitionsNeverSkipPhases(t *testing.T) {
	allowed := map[[2]BehaviorState]bool{
		{StateIdle, StateWalkingToMine}:          true,
		{StateIdle, StateWalkingToTree}:          true,
		{StateWalkingToMine, StateMining}:        true,
		{StateWalkingToTree, StateChopping}:      true,
		{StateMining, StateReturningGold}:        true,
		{StateChopping, StateReturningWood}:      true,
		{StateReturningGold, StateIdle}:          true,
		{StateReturningWood, StateIdle}:          true,
		{StateReturningGold, StateWalkingToMine}: true,
		{StateReturningGold, StateWalkingToTree}: true,
		{StateReturningWood, StateWalkingToMine}: true,
		{StateReturningWood, StateWalkingToTree}: true,
	}

	rng := rand.New(rand.NewSource(7))
	c := newTestController(t)
	c.OnTransition = func(from, to BehaviorState) {
		require.True(t, allowed[[2]BehaviorState{from, to}], "illegal transition %s -> %s", from, to)
	}

	for i := 0; i < 20000; i++ {
		switch rng.Intn(40) {
		case 0:
			c.Dispatch(Gold)
		case 1:
			c.Dispatch(Wood)
		case 2:
			c.ReturnHome()
		case 3:
			c.QueueTask(Category(1 + rng.Intn(2)))
		}
		c.Advance(frame*rng.Float64()*3, 1)
	}
}
