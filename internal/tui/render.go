package tui

import (
	"math"

	"github.com/paulmach/orb"

	"geomeasure/internal/measure"
)

// unproject converts a map cell coordinate back to lon/lat using the view,
// zoom, and pan.
func (m Model) unproject(cx, cy, w, h int) (orb.Point, bool) {
	if !validView(m.view) || w <= 1 || h <= 1 {
		return orb.Point{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.view.Min.Lon() + nx*(m.view.Max.Lon()-m.view.Min.Lon())
	lat := m.view.Min.Lat() + ny*(m.view.Max.Lat()-m.view.Min.Lat())
	return orb.Point{lon, lat}, true
}

// normalized places p in [0,1] view space after zoom around the centre.
func (m Model) normalized(p orb.Point) (float64, float64) {
	nx := (p.Lon() - m.view.Min.Lon()) / (m.view.Max.Lon() - m.view.Min.Lon())
	ny := (p.Lat() - m.view.Min.Lat()) / (m.view.Max.Lat() - m.view.Min.Lat())
	return 0.5 + (nx-0.5)*m.zoom, 0.5 + (ny-0.5)*m.zoom
}

// project maps p to the nearest cell, the inverse of unproject.
func (m Model) project(p orb.Point, w, h int) (int, int, bool) {
	if !validView(m.view) {
		return 0, 0, false
	}
	zx, zy := m.normalized(p)
	sx := int(math.Round(zx*float64(w-1))) + m.offsetX
	sy := int(math.Round((1.0-zy)*float64(h-1))) + m.offsetY
	return sx, sy, true
}

// projectMicro maps p into the 2x4 braille microgrid.
func (m Model) projectMicro(p orb.Point, w, h int) (int, int, bool) {
	if !validView(m.view) {
		return 0, 0, false
	}
	zx, zy := m.normalized(p)
	return int(zx*float64(w*2-1)) + m.offsetX*2, int((1.0-zy)*float64(h*4-1)) + m.offsetY*4, true
}

func (m Model) microPath(pts []orb.Point, w, h int) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		if mx, my, ok := m.projectMicro(p, w, h); ok {
			out = append(out, [2]int{mx, my})
		}
	}
	return out
}

func validView(b orb.Bound) bool {
	return b.Max.Lon() > b.Min.Lon() && b.Max.Lat() > b.Min.Lat()
}

// setView resets pan and zoom and maps b onto the canvas. Degenerate
// extents (a single point) are padded.
func (m *Model) setView(b orb.Bound) {
	if b.Right()-b.Left() < 1e-9 || b.Top()-b.Bottom() < 1e-9 {
		b = b.Pad(0.01)
	}
	m.view = b
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
}

// zoomAt scales by factor keeping the cell (cx, cy) over the same spot.
func (m *Model) zoomAt(cx, cy int, factor float64, w, h int) {
	p, ok := m.unproject(cx, cy, w, h)
	if !ok {
		return
	}
	m.zoom = min(max(m.zoom*factor, 0.05), 1<<16)
	if sx, sy, ok := m.project(p, w, h); ok {
		m.offsetX += cx - sx
		m.offsetY += cy - sy
	}
}

func (m Model) renderMap(w, h int) *canvas {
	c := newCanvas(w, h)
	c.blit(m.renderData(w, h), inkBase)
	m.renderMeasure(c, w, h)

	// Hover highlight: an orange circle at the hovered vertex cell
	if m.hovering {
		c.set(m.hoverMicX/2, m.hoverMicY/4, '◯', inkHover)
	}
	m.renderPanel(c)
	return c
}

// renderData draws the loaded dataset on a braille buffer. Paths are
// simplified to one braille dot at the current zoom.
func (m Model) renderData(w, h int) *brailleBuf {
	br := newBrailleBuf(w, h)
	data := m.data
	if validView(m.view) {
		data = data.Simplified((m.view.Right() - m.view.Left()) / m.zoom / float64(w*2))
	}
	if m.showPolys {
		for _, poly := range data.Polygons {
			for i, ring := range poly {
				mic := m.microPath(ring, w, h)
				if i == 0 {
					br.fillRing(mic)
				}
				br.drawPath(mic, true)
			}
		}
	}
	// Draw points only when dataset has no lines or polygons
	if m.showPoints && len(data.Lines) == 0 && len(data.Polygons) == 0 {
		for _, p := range data.Points {
			if mx, my, ok := m.projectMicro(p, w, h); ok {
				br.setPixel(mx, my)
			}
		}
	}
	if m.showLines {
		for _, ls := range data.Lines {
			br.drawPath(m.microPath(ls, w, h), false)
		}
	}
	return br
}

// renderMeasure draws the measurement shapes, vertex markers and
// tooltips over the dataset.
func (m Model) renderMeasure(c *canvas, w, h int) {
	g := m.host.group
	shape := inkShape
	if m.notes.flashing {
		shape = inkError
	}
	committed := newBrailleBuf(w, h)
	preview := newBrailleBuf(w, h)
	var markers []orb.Point
	g.each(func(d *drawable) {
		switch d.kind {
		case kindMarker:
			markers = append(markers, d.pts[0])
		case kindPolyline, kindPolygon:
			buf := committed
			if d.style.Dashed {
				buf = preview
			}
			buf.drawPath(m.microPath(d.pts, w, h), d.kind == kindPolygon)
		}
	})
	c.blit(preview, inkPreview)
	c.blit(committed, shape)
	for _, p := range markers {
		if x, y, ok := m.project(p, w, h); ok {
			c.set(x, y, '●', shape)
		}
	}
	for _, t := range g.tips {
		if len(t.lines) == 0 {
			continue
		}
		x, y, ok := m.project(t.pos, w, h)
		if !ok {
			continue
		}
		width := 0
		for _, l := range t.lines {
			width = max(width, len([]rune(l))+2)
		}
		tx := x + 2
		if tx+width > w {
			tx = x - 1 - width
		}
		for i, l := range t.lines {
			c.text(tx, y+i, " "+l+" ", inkTip)
		}
	}
}

// renderPanel docks the control panel to the configured corner.
func (m Model) renderPanel(c *canvas) {
	mode := "off"
	if m.ctl.On() {
		mode = "on"
	}
	if md := m.ctl.Mode(); md != measure.ModeNone {
		mode = md.String()
	}
	head := " measure: " + mode + " "
	opts := m.ctl.UnitOptions()
	sel := m.ctl.SelectedUnit()
	width := len([]rune(head))
	unitsW := 1
	for _, u := range opts {
		unitsW += len(u) + 1
	}
	width = max(width, unitsW)

	x, y := 0, 0
	switch m.position {
	case measure.TopRight:
		x = c.w - width
	case measure.BottomLeft:
		y = c.h - 2
	case measure.BottomRight:
		x, y = c.w-width, c.h-2
	}
	for i := 0; i < width; i++ {
		c.set(x+i, y, ' ', inkPanel)
		c.set(x+i, y+1, ' ', inkPanel)
	}
	c.text(x, y, head, inkPanelOn)
	cx := x + 1
	for _, u := range opts {
		k := inkPanel
		if u == sel {
			k = inkPanelOn
		}
		cx = c.text(cx, y+1, string(u), k) + 1
	}
}

// markerAt returns the clickable marker drawn in cell (cx, cy).
func (m Model) markerAt(cx, cy, w, h int) *drawable {
	var hit *drawable
	m.host.group.each(func(d *drawable) {
		if d.kind != kindMarker || d.onClick == nil {
			return
		}
		if x, y, ok := m.project(d.pts[0], w, h); ok && x == cx && y == cy {
			hit = d
		}
	})
	return hit
}

// nearestMicro finds the dataset vertex closest to a micro coordinate.
func (m Model) nearestMicro(hx, hy, w, h int) (int, int) {
	best := 1<<31 - 1
	bx, by := hx, hy
	try := func(p orb.Point) {
		mx, my, ok := m.projectMicro(p, w, h)
		if !ok {
			return
		}
		dx, dy := mx-hx, my-hy
		if d := dx*dx + dy*dy; d < best {
			best = d
			bx, by = mx, my
		}
	}
	for _, p := range m.data.Points {
		try(p)
	}
	for _, ls := range m.data.Lines {
		for _, p := range ls {
			try(p)
		}
	}
	for _, poly := range m.data.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				try(p)
			}
		}
	}
	return bx, by
}
