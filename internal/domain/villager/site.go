package villager

import "fmt"

// SiteID names a resource site (e.g. "mine21", "tree1")
type SiteID string

// Site is one fixed work location with its hand-authored outbound path.
// Sites are read-only once built into a SiteTable.
type Site struct {
	ID        SiteID
	Category  Category
	Waypoints []Point
	// WorkFacing is applied while working at the site
	WorkFacing Facing
	// PinReturnFacing pins ReturnFacing for the whole return trip, for paths
	// whose net horizontal direction disagrees with where the villager heads.
	PinReturnFacing bool
	ReturnFacing    Facing
}

// Destination returns the last outbound waypoint
func (s *Site) Destination() Point {
	return s.Waypoints[len(s.Waypoints)-1]
}

// SiteTable holds home and the two sites of each category
type SiteTable struct {
	Home  Point
	sites map[Category][2]*Site
}

// NewSiteTable validates the sites and builds a table. Exactly two sites per
// category are required, each with at least one waypoint and a unique ID.
func NewSiteTable(home Point, sites []Site) (*SiteTable, error) {
	byCategory := make(map[Category][]*Site)
	seen := make(map[SiteID]bool)
	for i := range sites {
		s := sites[i]
		if !s.Category.Valid() {
			return nil, fmt.Errorf("site %q: invalid category %v", s.ID, s.Category)
		}
		if s.ID == "" {
			return nil, fmt.Errorf("site %d: missing id", i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("site %q: duplicate id", s.ID)
		}
		if len(s.Waypoints) == 0 {
			return nil, fmt.Errorf("site %q: no waypoints", s.ID)
		}
		seen[s.ID] = true
		s.Waypoints = append([]Point(nil), s.Waypoints...)
		byCategory[s.Category] = append(byCategory[s.Category], &s)
	}

	t := &SiteTable{Home: home, sites: make(map[Category][2]*Site)}
	for _, c := range []Category{Gold, Wood} {
		list := byCategory[c]
		if len(list) != 2 {
			return nil, fmt.Errorf("category %s: want 2 sites, got %d", c, len(list))
		}
		t.sites[c] = [2]*Site{list[0], list[1]}
	}
	return t, nil
}

// Sites returns the two sites of a category
func (t *SiteTable) Sites(c Category) [2]*Site {
	return t.sites[c]
}

// Lookup finds a site by ID
func (t *SiteTable) Lookup(id SiteID) (*Site, bool) {
	for _, pair := range t.sites {
		for _, s := range pair {
			if s.ID == id {
				return s, true
			}
		}
	}
	return nil, false
}

// next picks the site of c that is not last. With no previous selection
// (or an unknown one) the first site is chosen.
func (t *SiteTable) next(c Category, last SiteID) *Site {
	pair := t.sites[c]
	if pair[0].ID == last {
		return pair[1]
	}
	return pair[0]
}

// DefaultHome is the spot in front of the house
var DefaultHome = Point{X: 0, Y: -112}

// DefaultSites returns the hand-authored village sites
func DefaultSites() []Site {
	return []Site{
		{
			ID:       "mine21",
			Category: Gold,
			Waypoints: []Point{
				{X: -288, Y: 56},
				{X: -310, Y: 90},
				{X: -221, Y: 152},
			},
			WorkFacing: FacingRight,
		},
		{
			ID:       "mine22",
			Category: Gold,
			Waypoints: []Point{
				{X: 224, Y: 38},
				{X: 288, Y: 72},
				{X: 285, Y: -72},
			},
			WorkFacing:      FacingLeft,
			PinReturnFacing: true,
			ReturnFacing:    FacingLeft,
		},
		{
			ID:       "tree1",
			Category: Wood,
			Waypoints: []Point{
				{X: -96, Y: -104},
				{X: -144, Y: -91},
			},
			WorkFacing: FacingLeft,
		},
		{
			ID:       "tree2",
			Category: Wood,
			Waypoints: []Point{
				{X: 48, Y: -140},
				{X: 90, Y: -190},
			},
			WorkFacing: FacingRight,
		},
	}
}

// DefaultSiteTable builds the table for DefaultHome and DefaultSites
func DefaultSiteTable() *SiteTable {
	t, err := NewSiteTable(DefaultHome, DefaultSites())
	if err != nil {
		panic("villager: default sites invalid: " + err.Error())
	}
	return t
}
