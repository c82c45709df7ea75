package tui

import (
	"slices"

	"github.com/paulmach/orb"

	"geomeasure/internal/measure"
)

// registry keeps handlers in registration order. Dispatch walks a copy of
// the id list so handlers may unregister themselves or others mid-dispatch.
type registry[T any] struct {
	next int
	ids  []int
	fns  map[int]func(T)
}

func (r *registry[T]) add(fn func(T)) func() {
	if r.fns == nil {
		r.fns = map[int]func(T){}
	}
	r.next++
	id := r.next
	r.ids = append(r.ids, id)
	r.fns[id] = fn
	return func() {
		delete(r.fns, id)
		r.ids = slices.DeleteFunc(r.ids, func(v int) bool { return v == id })
	}
}

func (r *registry[T]) dispatch(ev T) {
	for _, id := range slices.Clone(r.ids) {
		if fn, ok := r.fns[id]; ok {
			fn(ev)
		}
	}
}

func (r *registry[T]) len() int { return len(r.fns) }

// mapHost is the canvas side of the measurement control: it fans terminal
// mouse and key input out to subscribers and stores the shapes they draw.
type mapHost struct {
	click registry[measure.PointerEvent]
	move  registry[measure.PointerEvent]
	dbl   registry[measure.PointerEvent]
	keys  registry[measure.KeyEvent]

	dblZoom bool
	group   *layerGroup
}

func newMapHost() *mapHost {
	return &mapHost{dblZoom: true, group: newLayerGroup()}
}

func (h *mapHost) OnPointerClick(fn func(measure.PointerEvent)) func() { return h.click.add(fn) }
func (h *mapHost) OnPointerMove(fn func(measure.PointerEvent)) func()  { return h.move.add(fn) }
func (h *mapHost) OnDoubleClick(fn func(measure.PointerEvent)) func()  { return h.dbl.add(fn) }
func (h *mapHost) OnKeyDown(fn func(measure.KeyEvent)) func()          { return h.keys.add(fn) }

func (h *mapHost) DoubleClickZoomEnabled() bool { return h.dblZoom }
func (h *mapHost) DisableDoubleClickZoom()      { h.dblZoom = false }
func (h *mapHost) EnableDoubleClickZoom()       { h.dblZoom = true }
func (h *mapHost) Layers() measure.LayerGroup   { return h.group }

func (h *mapHost) listeners() int {
	return h.click.len() + h.move.len() + h.dbl.len() + h.keys.len()
}

type layerKind uint8

const (
	kindMarker layerKind = iota + 1
	kindPolyline
	kindPolygon
)

type drawable struct {
	kind    layerKind
	pts     []orb.Point
	style   measure.PathStyle
	onClick func()
}

type layerGroup struct {
	next   measure.LayerID
	order  []measure.LayerID
	shapes map[measure.LayerID]*drawable
	tips   []*tooltip
}

func newLayerGroup() *layerGroup {
	return &layerGroup{shapes: map[measure.LayerID]*drawable{}}
}

func (g *layerGroup) add(d *drawable) measure.LayerID {
	g.next++
	g.shapes[g.next] = d
	g.order = append(g.order, g.next)
	return g.next
}

func (g *layerGroup) AddMarker(p orb.Point, onClick func()) measure.LayerID {
	return g.add(&drawable{kind: kindMarker, pts: []orb.Point{p}, onClick: onClick})
}

func (g *layerGroup) AddPolyline(line orb.LineString, style measure.PathStyle) measure.LayerID {
	return g.add(&drawable{kind: kindPolyline, pts: slices.Clone(line), style: style})
}

func (g *layerGroup) AddPolygon(ring orb.Ring, style measure.PathStyle) measure.LayerID {
	return g.add(&drawable{kind: kindPolygon, pts: slices.Clone(ring), style: style})
}

func (g *layerGroup) SetPoints(id measure.LayerID, pts []orb.Point) {
	if d, ok := g.shapes[id]; ok {
		d.pts = slices.Clone(pts)
	}
}

func (g *layerGroup) Remove(id measure.LayerID) {
	if _, ok := g.shapes[id]; !ok {
		return
	}
	delete(g.shapes, id)
	g.order = slices.DeleteFunc(g.order, func(v measure.LayerID) bool { return v == id })
}

func (g *layerGroup) AddTooltip(p orb.Point) measure.Tooltip {
	t := &tooltip{group: g, pos: p}
	g.tips = append(g.tips, t)
	return t
}

func (g *layerGroup) Clear() {
	clear(g.shapes)
	g.order = nil
	g.tips = nil
}

// each visits shapes in draw order.
func (g *layerGroup) each(fn func(*drawable)) {
	for _, id := range g.order {
		fn(g.shapes[id])
	}
}

type tooltip struct {
	group *layerGroup
	pos   orb.Point
	lines []string
}

func (t *tooltip) Move(p orb.Point)        { t.pos = p }
func (t *tooltip) SetText(lines ...string) { t.lines = slices.Clone(lines) }
func (t *tooltip) Destroy() {
	t.group.tips = slices.DeleteFunc(t.group.tips, func(v *tooltip) bool { return v == t })
}
