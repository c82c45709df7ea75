package tui

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"geomeasure/internal/tiles"
)

const tileJSONTimeout = 15 * time.Second

type tileJSONMsg struct{ tj *tiles.TileJSON }

type tileErrMsg struct{ err error }

// fetchTileJSON loads basemap metadata off the update loop.
func fetchTileJSON(url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), tileJSONTimeout)
		defer cancel()
		tj, err := tiles.FetchTileJSON(ctx, nil, url)
		if err != nil {
			return tileErrMsg{err: err}
		}
		return tileJSONMsg{tj: tj}
	}
}

func (m *Model) applyTileJSON(tj *tiles.TileJSON) {
	if m.basemap == nil {
		return
	}
	if err := m.basemap.SetTileJSON(tj); err != nil {
		m.tileFailed(err)
		return
	}
	m.status = "basemap ready"
	if a := m.basemap.Attribution(); a != "" {
		m.status += ": " + a
	}
	// adopt the tileset extent when nothing else picked the view
	if m.data.Empty() {
		if b, ok := m.basemap.Bounds(); ok && b.Left() < b.Right() && b.Bottom() < b.Top() {
			m.setView(b)
		}
	}
}

func (m *Model) tileFailed(err error) {
	if m.basemap == nil {
		return
	}
	le := m.basemap.Fail(err)
	log.Printf("basemap: %v", le)
	m.status = tiles.LoadErrorMessage
}

// tileZoom is the web mercator zoom whose tiles best match the current
// canvas resolution, limited to what the tileset serves.
func (m Model) tileZoom(mapW int) maptile.Zoom {
	span := (m.view.Right() - m.view.Left()) / m.zoom
	if span <= 0 || mapW <= 0 {
		return 0
	}
	// one 256px tile across roughly 32 cells
	z := int(math.Round(math.Log2(360 / span * float64(mapW) / 32)))
	lo, hi := 0, 22
	if m.basemap != nil && m.basemap.Ready() {
		lo, hi = m.basemap.ZoomRange()
	}
	return maptile.Zoom(clamp(z, lo, hi))
}

// tileInfo describes the basemap tile under p for the inspect popup.
func (m Model) tileInfo(p orb.Point, mapW int) []string {
	if m.basemap == nil {
		return nil
	}
	if !m.basemap.Ready() {
		if err := m.basemap.Err(); err != nil {
			return []string{"tile: " + err.Message}
		}
		return []string{"tile: loading"}
	}
	t := m.basemap.TileAt(p, m.tileZoom(mapW))
	lines := []string{fmt.Sprintf("tile: %d/%d/%d", t.Z, t.X, t.Y)}
	if u, err := m.basemap.TileURL(t); err == nil {
		lines = append(lines, "url: "+u)
	}
	if u, err := m.basemap.GridURL(t); err == nil {
		lines = append(lines, "grid: "+u)
	}
	return lines
}
