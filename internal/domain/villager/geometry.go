package villager

import "math"

// Point is a position in scene pixels at scale 1, relative to the map center
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the euclidean length of p as a vector
func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// DistanceTo returns the euclidean distance between p and q
func (p Point) DistanceTo(q Point) float64 {
	return q.Sub(p).Len()
}

// ReturnPath builds the inbound journey for an outbound waypoint list:
// the outbound points in reverse order with home appended.
// The input slice is never modified.
func ReturnPath(outbound []Point, home Point) []Point {
	path := make([]Point, 0, len(outbound)+1)
	for i := len(outbound) - 1; i >= 0; i-- {
		path = append(path, outbound[i])
	}
	return append(path, home)
}

// PathLength returns the total length of walking from start through every waypoint
func PathLength(start Point, path []Point) float64 {
	total := 0.0
	prev := start
	for _, wp := range path {
		total += prev.DistanceTo(wp)
		prev = wp
	}
	return total
}

func sanitizeDelta(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0
	}
	return dt
}
