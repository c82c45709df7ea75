package measure

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Geometry supplies the earth-surface primitives a session needs.
type Geometry interface {
	// Distance returns the great-circle distance in meters.
	Distance(a, b orb.Point) float64
	// Area returns the geodesic area in square meters of the polygon
	// described by the ordered vertices. The ring may be open.
	Area(vertices []orb.Point) float64
}

// Geodesic implements Geometry with orb/geo on a sphere of radius
// orb.EarthRadius.
type Geodesic struct{}

func (Geodesic) Distance(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

func (Geodesic) Area(vertices []orb.Point) float64 {
	if len(vertices) < 3 {
		return 0
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	ring = append(ring, vertices...)
	if !ring.Closed() {
		ring = append(ring, vertices[0])
	}
	return math.Abs(geo.Area(orb.Polygon{ring}))
}

func validPoint(p orb.Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p.Lat() >= -90 && p.Lat() <= 90
}

// segmentsCross reports whether segment ab properly intersects cd.
// Touching endpoints do not count.
func segmentsCross(a, b, c, d orb.Point) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// wouldSelfIntersect reports whether appending next to the open ring
// vertices produces an edge crossing an earlier non-adjacent edge, either
// on the new edge or on the implied closing edge back to the first vertex.
func wouldSelfIntersect(vertices []orb.Point, next orb.Point) bool {
	n := len(vertices)
	if n < 2 {
		return false
	}
	last := vertices[n-1]
	// new edge last->next against edges 0..n-3
	for i := 0; i+1 < n-1; i++ {
		if segmentsCross(last, next, vertices[i], vertices[i+1]) {
			return true
		}
	}
	// closing edge next->first against edges 1..n-2
	first := vertices[0]
	for i := 1; i+1 < n; i++ {
		if segmentsCross(next, first, vertices[i], vertices[i+1]) {
			return true
		}
	}
	return false
}
