// Package geom loads reference datasets that are drawn underneath
// measurements.
package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// Data is a flattened geometry container for rendering.
type Data struct {
	Points   []orb.Point
	Lines    []orb.LineString
	Polygons []orb.Polygon
	Bound    orb.Bound

	n int
}

// Empty reports whether nothing was loaded.
func (d *Data) Empty() bool { return d.n == 0 }

// Add flattens g into the container. Multi geometries and collections are
// split into their parts.
func (d *Data) Add(g orb.Geometry) {
	switch g := g.(type) {
	case nil:
	case orb.Point:
		d.Points = append(d.Points, g)
		d.extend(g.Bound())
	case orb.MultiPoint:
		for _, p := range g {
			d.Add(p)
		}
	case orb.LineString:
		if len(g) == 0 {
			return
		}
		d.Lines = append(d.Lines, g)
		d.extend(g.Bound())
	case orb.MultiLineString:
		for _, ls := range g {
			d.Add(ls)
		}
	case orb.Ring:
		d.Add(orb.Polygon{g})
	case orb.Polygon:
		if len(g) == 0 || len(g[0]) == 0 {
			return
		}
		d.Polygons = append(d.Polygons, g)
		d.extend(g.Bound())
	case orb.MultiPolygon:
		for _, p := range g {
			d.Add(p)
		}
	case orb.Collection:
		for _, c := range g {
			d.Add(c)
		}
	case orb.Bound:
		d.Add(g.ToPolygon())
	}
}

func (d *Data) extend(b orb.Bound) {
	if d.n == 0 {
		d.Bound = b
	} else {
		d.Bound = d.Bound.Union(b)
	}
	d.n++
}

// Simplified returns a copy with lines and rings reduced by Douglas-Peucker
// at the given threshold in degrees. Points are shared.
func (d Data) Simplified(threshold float64) Data {
	if threshold <= 0 {
		return d
	}
	s := simplify.DouglasPeucker(threshold)
	out := Data{Points: d.Points, Bound: d.Bound, n: d.n}
	for _, ls := range d.Lines {
		out.Lines = append(out.Lines, s.LineString(ls.Clone()))
	}
	for _, p := range d.Polygons {
		out.Polygons = append(out.Polygons, s.Polygon(p.Clone()))
	}
	return out
}

// Nearest returns the loaded vertex or segment closest to p, in degrees.
func (d Data) Nearest(p orb.Point) (orb.Point, float64, bool) {
	best, bestD, ok := orb.Point{}, 0.0, false
	try := func(q orb.Point, dist float64) {
		if !ok || dist < bestD {
			best, bestD, ok = q, dist, true
		}
	}
	for _, q := range d.Points {
		try(q, planar.Distance(p, q))
	}
	segs := func(pts []orb.Point) {
		for i := 1; i < len(pts); i++ {
			try(pts[i-1], planar.DistanceFromSegment(pts[i-1], pts[i], p))
		}
	}
	for _, ls := range d.Lines {
		segs(ls)
	}
	for _, poly := range d.Polygons {
		for _, r := range poly {
			segs(r)
		}
	}
	return best, bestD, ok
}
