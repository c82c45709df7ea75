package measure

import (
	"slices"

	"github.com/paulmach/orb"
)

// fakeHost records registrations and shapes so tests can drive a Control
// with synthetic events.
type fakeHost struct {
	next  int
	click map[int]func(PointerEvent)
	move  map[int]func(PointerEvent)
	dbl   map[int]func(PointerEvent)
	keys  map[int]func(KeyEvent)
	zoom  bool
	group *fakeGroup
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		click: map[int]func(PointerEvent){},
		move:  map[int]func(PointerEvent){},
		dbl:   map[int]func(PointerEvent){},
		keys:  map[int]func(KeyEvent){},
		zoom:  true,
		group: &fakeGroup{shapes: map[LayerID]*fakeShape{}},
	}
}

func register[T any](h *fakeHost, m map[int]T, fn T) func() {
	h.next++
	id := h.next
	m[id] = fn
	return func() { delete(m, id) }
}

func (h *fakeHost) OnPointerClick(fn func(PointerEvent)) func() { return register(h, h.click, fn) }
func (h *fakeHost) OnPointerMove(fn func(PointerEvent)) func()  { return register(h, h.move, fn) }
func (h *fakeHost) OnDoubleClick(fn func(PointerEvent)) func()  { return register(h, h.dbl, fn) }
func (h *fakeHost) OnKeyDown(fn func(KeyEvent)) func()          { return register(h, h.keys, fn) }
func (h *fakeHost) DoubleClickZoomEnabled() bool                { return h.zoom }
func (h *fakeHost) DisableDoubleClickZoom()                     { h.zoom = false }
func (h *fakeHost) EnableDoubleClickZoom()                      { h.zoom = true }
func (h *fakeHost) Layers() LayerGroup                          { return h.group }

func (h *fakeHost) listeners() int {
	return len(h.click) + len(h.move) + len(h.dbl) + len(h.keys)
}

func each[T any](m map[int]func(T), ev T) {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := m[id]; ok {
			fn(ev)
		}
	}
}

func (h *fakeHost) clickAt(lon, lat float64)     { each(h.click, At(lon, lat)) }
func (h *fakeHost) moveTo(lon, lat float64)      { each(h.move, At(lon, lat)) }
func (h *fakeHost) doubleClick(lon, lat float64) { each(h.dbl, At(lon, lat)) }
func (h *fakeHost) key(k string)                 { each(h.keys, KeyEvent{Key: k}) }

type fakeShape struct {
	kind    string
	pts     []orb.Point
	onClick func()
}

type fakeTooltip struct {
	pos       orb.Point
	lines     []string
	destroyed bool
}

func (t *fakeTooltip) Move(p orb.Point)        { t.pos = p }
func (t *fakeTooltip) SetText(lines ...string) { t.lines = slices.Clone(lines) }
func (t *fakeTooltip) Destroy()                { t.destroyed = true }

type fakeGroup struct {
	next     LayerID
	shapes   map[LayerID]*fakeShape
	tooltips []*fakeTooltip
	clears   int
}

func (g *fakeGroup) add(s *fakeShape) LayerID {
	g.next++
	g.shapes[g.next] = s
	return g.next
}

func (g *fakeGroup) AddMarker(p orb.Point, onClick func()) LayerID {
	return g.add(&fakeShape{kind: "marker", pts: []orb.Point{p}, onClick: onClick})
}

func (g *fakeGroup) AddPolyline(line orb.LineString, _ PathStyle) LayerID {
	return g.add(&fakeShape{kind: "polyline", pts: slices.Clone(line)})
}

func (g *fakeGroup) AddPolygon(ring orb.Ring, _ PathStyle) LayerID {
	return g.add(&fakeShape{kind: "polygon", pts: slices.Clone(ring)})
}

func (g *fakeGroup) SetPoints(id LayerID, pts []orb.Point) {
	if s, ok := g.shapes[id]; ok {
		s.pts = slices.Clone(pts)
	}
}

func (g *fakeGroup) Remove(id LayerID) { delete(g.shapes, id) }

func (g *fakeGroup) AddTooltip(p orb.Point) Tooltip {
	t := &fakeTooltip{pos: p}
	g.tooltips = append(g.tooltips, t)
	return t
}

func (g *fakeGroup) Clear() {
	g.clears++
	g.shapes = map[LayerID]*fakeShape{}
	g.tooltips = nil
}

func (g *fakeGroup) count(kind string) int {
	n := 0
	for _, s := range g.shapes {
		if s.kind == kind {
			n++
		}
	}
	return n
}

func (g *fakeGroup) marker() *fakeShape {
	for _, s := range g.shapes {
		if s.kind == "marker" {
			return s
		}
	}
	return nil
}
