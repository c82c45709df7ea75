package tui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geomeasure/internal/export"
	"geomeasure/internal/geom"
	"geomeasure/internal/measure"
)

// flashDoneMsg ends the draw error highlight started with sequence seq.
type flashDoneMsg struct{ seq int }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tileJSONMsg:
		m.applyTileJSON(msg.tj)
		return m, nil
	case tileErrMsg:
		m.tileFailed(msg.err)
		return m, nil
	case flashDoneMsg:
		if msg.seq == m.notes.flashSeq {
			m.notes.flashing = false
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			return m, nil
		case "enter":
			w := strings.TrimSpace(m.ta.Value())
			if w == "" {
				m.status = "paste: empty"
				return m, nil
			}
			d, err := geom.ParseWKT(w)
			if err != nil {
				m.status = "wkt error: " + err.Error()
				return m, nil
			}
			m.selPath = ""
			m.setData(d)
			m.status = "rendered WKT  " + m.counts()
			m.pasteMode = false
			m.ta.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}

	key := msg.String()
	m.host.keys.dispatch(measure.KeyEvent{Key: key})

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "m":
		m.ctl.Toggle()
	case "d":
		m.ctl.SelectMode(measure.ModeDistance)
	case "a":
		m.ctl.SelectMode(measure.ModeArea)
	case "u":
		u := m.ctl.CycleUnit()
		m.status = "units: " + u.Label()
	case "t":
		m.toggleLegs()
	case "x":
		m.exportMeasurement("xlsx")
	case "e":
		m.exportMeasurement("geojson")
	case "esc":
		m.inspectPopup = ""
		m.showLegs = false
	case "1":
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case "2":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "3":
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polys: %v", m.showPolys)
	case "l":
		// toggle all layers
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints = !all
		m.showLines = !all
		m.showPolys = !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
	case "+", "=":
		if m.zoom < 1<<16 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "0":
		if !m.data.Empty() {
			m.setView(m.data.Bound)
		} else {
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
		}
		m.status = "view reset"
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "i":
		m.inspect()
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up", "down":
		if m.showLegs {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		if key == "up" {
			m.offsetY -= 1
		} else {
			m.offsetY += 1
		}
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	return m, m.drainNotices()
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lay := m.layout()
	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	inMap := cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH && !m.showLegs && !m.pasteMode
	if !inMap {
		m.hovering = false
		m.hoverHasGeo = false
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	p, ok := m.unproject(cx, cy, lay.mapW, lay.mapH)
	m.hoverHasGeo = ok
	m.hoverLon, m.hoverLat = p.Lon(), p.Lat()
	m.hoverMicX, m.hoverMicY = m.nearestMicro(cx*2, cy*4, lay.mapW, lay.mapH)
	ev := measure.PointerEvent{Point: p, HasPoint: ok}

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.host.move.dispatch(ev)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.leftPress(cx, cy, ev, lay)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.zoomAt(cx, cy, 1.2, lay.mapW, lay.mapH)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.zoomAt(cx, cy, 1/1.2, lay.mapW, lay.mapH)
	}
	return m, m.drainNotices()
}

// leftPress turns a left press into a click, a marker click or, when it lands
// on the previous press cell in time, a double click.
func (m *Model) leftPress(cx, cy int, ev measure.PointerEvent, lay layout) {
	now := m.now()
	last := m.lastPress
	if last.ok && last.x == cx && last.y == cy && now.Sub(last.at) <= doubleClickWindow {
		m.lastPress = press{}
		zoom := m.host.DoubleClickZoomEnabled()
		m.host.dbl.dispatch(ev)
		if zoom {
			m.zoomAt(cx, cy, 2, lay.mapW, lay.mapH)
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
		return
	}
	m.lastPress = press{x: cx, y: cy, at: now, ok: true}
	if d := m.markerAt(cx, cy, lay.mapW, lay.mapH); d != nil {
		d.onClick()
		return
	}
	m.host.click.dispatch(ev)
}

// drainNotices converts control callbacks collected during the last
// dispatch into status text and, for draw errors, a highlight timer.
func (m *Model) drainNotices() tea.Cmd {
	n := m.notes
	for _, md := range n.disabled {
		m.status = md.String() + " measurement ended"
	}
	for _, md := range n.enabled {
		m.status = "measuring " + md.String() + "  click to add points, double-click to finish"
	}
	n.enabled, n.disabled = n.enabled[:0], n.disabled[:0]
	if m.showLegs {
		if len(m.ctl.Session().Points) == 0 {
			m.showLegs = false
		} else {
			m.refreshLegs()
		}
	}
	e := n.drawError
	if e == nil {
		return nil
	}
	n.drawError = nil
	n.flashSeq++
	n.flashing = true
	m.status = e.Message
	seq := n.flashSeq
	return tea.Tick(e.Timeout, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *Model) exportMeasurement(format string) {
	r, err := export.FromControl(m.ctl)
	if err != nil {
		m.status = "export: " + err.Error()
		return
	}
	path := export.Filename(m.exportDir, r, m.now(), format)
	if format == "xlsx" {
		err = export.WriteXLSX(path, r)
	} else {
		err = export.WriteGeoJSON(path, r)
	}
	if err != nil {
		log.Printf("export %s: %v", path, err)
		m.status = "export error: " + err.Error()
		return
	}
	m.status = "exported " + filepath.Base(path) + "  " + r.Label()
}

func (m *Model) inspect() {
	lay := m.layout()
	cx, cy := lay.mapW/2, lay.mapH/2
	if m.hovering {
		cx, cy = m.hoverCellX, m.hoverCellY
	}
	at, ok := m.unproject(cx, cy, lay.mapW, lay.mapH)
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	b := m.data.Bound
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.Left(), b.Bottom(), b.Right(), b.Top()),
		m.counts(),
		fmt.Sprintf("at: lon=%.6f lat=%.6f", at.Lon(), at.Lat()),
	}
	if q, _, ok := m.data.Nearest(at); ok {
		meta = append(meta, fmt.Sprintf("nearest: lon=%.6f lat=%.6f", q.Lon(), q.Lat()))
		meta = append(meta, "distance: "+measure.FormatDistance(measure.Geodesic{}.Distance(at, q), m.ctl.Units().Distance))
	}
	meta = append(meta, m.tileInfo(at, lay.mapW)...)
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}
