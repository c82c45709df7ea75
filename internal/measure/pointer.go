package measure

import (
	"slices"

	"github.com/paulmach/orb"
)

func (c *Control) handleClick(s *Session, e PointerEvent) {
	if c.session != s || !e.HasPoint || !validPoint(e.Point) {
		return
	}
	switch s.mode {
	case ModeDistance:
		c.clickDistance(s, e.Point)
	case ModeArea:
		c.clickArea(s, e.Point)
	}
}

func (c *Control) handleMove(s *Session, e PointerEvent) {
	if c.session != s || !e.HasPoint || !validPoint(e.Point) {
		return
	}
	if len(s.points) == 0 {
		return
	}
	switch s.mode {
	case ModeDistance:
		c.moveDistance(s, e.Point)
	case ModeArea:
		c.moveArea(s, e.Point)
	}
}

func (c *Control) clickDistance(s *Session, p orb.Point) {
	layers := c.host.Layers()
	s.points = append(s.points, p)
	s.vertices++
	s.total = pathLength(c.geo, s.points)

	if s.tooltip == nil {
		s.tooltip = layers.AddTooltip(p)
	}
	if n := len(s.points); n > 1 {
		s.delta = c.geo.Distance(s.points[n-2], p)
		s.tooltip.Move(p)
		c.show(s, display{total: s.total, delta: s.delta})

		if s.shape == noLayer {
			s.shape = layers.AddPolyline(orb.LineString(slices.Clone(s.points)), c.opts.Polyline.ShapeOptions)
		} else {
			layers.SetPoints(s.shape, s.points)
		}
	}
	c.dropPreview(s)

	// only the tip of the line carries a marker; clicking it ends the session
	if s.tip != noLayer {
		layers.Remove(s.tip)
	}
	s.tip = layers.AddMarker(p, func() { c.finish(s) })
}

func (c *Control) clickArea(s *Session, p orb.Point) {
	if !c.opts.Polygon.AllowIntersection && wouldSelfIntersect(s.points, p) {
		c.drawError()
		return
	}
	layers := c.host.Layers()
	s.points = append(s.points, p)
	s.vertices++
	s.total = c.geo.Area(s.points)

	s.markers = append(s.markers, layers.AddMarker(p, nil))
	if s.shape == noLayer {
		s.shape = layers.AddPolygon(orb.Ring(slices.Clone(s.points)), c.opts.Polygon.ShapeOptions)
	} else {
		layers.SetPoints(s.shape, s.points)
	}
	c.dropPreview(s)

	if s.vertices >= 3 {
		if s.tooltip == nil {
			s.tooltip = layers.AddTooltip(p)
		}
		s.tooltip.Move(p)
		c.show(s, display{total: s.total})
	}
}

func (c *Control) moveDistance(s *Session, p orb.Point) {
	last, _ := s.lastPoint()
	c.setPreview(s, []orb.Point{last, p})
	if s.tooltip == nil {
		return
	}
	d := c.geo.Distance(last, p)
	s.tooltip.Move(p)
	c.show(s, display{total: s.total + d, delta: d})
}

func (c *Control) moveArea(s *Session, p orb.Point) {
	last, _ := s.lastPoint()
	outline := []orb.Point{last, p}
	if len(s.points) > 1 {
		outline = append(outline, s.points[0])
	}
	c.setPreview(s, outline)
	if s.tooltip == nil {
		return
	}
	hypothetical := append(slices.Clone(s.points), p)
	s.tooltip.Move(p)
	c.show(s, display{total: c.geo.Area(hypothetical)})
}

func (c *Control) setPreview(s *Session, pts []orb.Point) {
	layers := c.host.Layers()
	if s.preview == noLayer {
		style := c.opts.Polyline.ShapeOptions
		if s.mode == ModeArea {
			style = c.opts.Polygon.ShapeOptions
		}
		style.Dashed = true
		s.preview = layers.AddPolyline(orb.LineString(pts), style)
		return
	}
	layers.SetPoints(s.preview, pts)
}

func (c *Control) dropPreview(s *Session) {
	if s.preview == noLayer {
		return
	}
	c.host.Layers().Remove(s.preview)
	s.preview = noLayer
}

func (c *Control) drawError() {
	for _, fn := range c.onDrawError {
		fn(c.opts.Polygon.DrawError)
	}
}
