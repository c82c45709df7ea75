package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"geomeasure/internal/measure"
)

func TestRegistryUnregisterDuringDispatch(t *testing.T) {
	var r registry[int]
	var calls []string
	var offB func()
	offA := r.add(func(int) {
		calls = append(calls, "a")
		offB()
	})
	offB = r.add(func(int) { calls = append(calls, "b") })
	r.add(func(int) { calls = append(calls, "c") })

	r.dispatch(1)
	require.Equal(t, []string{"a", "c"}, calls)

	offA()
	calls = nil
	r.dispatch(2)
	require.Equal(t, []string{"c"}, calls)
	require.Equal(t, 1, r.len())
}

func TestLayerGroup(t *testing.T) {
	h := newMapHost()
	g := h.Layers()
	m := g.AddMarker(orb.Point{1, 1}, nil)
	l := g.AddPolyline(orb.LineString{{0, 0}, {1, 1}}, measure.PathStyle{Color: "red"})
	require.Equal(t, measure.LayerID(1), m)
	require.Equal(t, measure.LayerID(2), l)

	g.SetPoints(l, []orb.Point{{0, 0}, {2, 2}, {3, 3}})
	require.Len(t, h.group.shapes[l].pts, 3)
	g.Remove(m)
	require.Equal(t, []measure.LayerID{l}, h.group.order)

	tip := g.AddTooltip(orb.Point{0, 0})
	tip.SetText("1.00 mi")
	tip.Move(orb.Point{2, 2})
	require.Equal(t, []string{"1.00 mi"}, h.group.tips[0].lines)
	tip.Destroy()
	require.Empty(t, h.group.tips)

	g.AddTooltip(orb.Point{})
	g.Clear()
	require.Empty(t, h.group.order)
	require.Empty(t, h.group.shapes)
	require.Empty(t, h.group.tips)
	require.Equal(t, measure.LayerID(3), g.AddMarker(orb.Point{}, nil), "ids keep counting after Clear")
}

func TestCanvasRunsAndClipping(t *testing.T) {
	c := newCanvas(6, 2)
	c.text(4, 0, "abc", inkTip)
	c.set(-1, 0, 'x', inkShape)
	c.set(0, 1, '●', inkMarker)
	require.Equal(t, "    ab\n●     ", c.String())

	var styled []ink
	c.render(func(k ink) lipgloss.Style {
		styled = append(styled, k)
		return lipgloss.NewStyle()
	})
	require.Equal(t, []ink{inkTip, inkMarker}, styled)
}

func TestBrailleFillRing(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.fillRing([][2]int{{0, 0}, {3, 0}, {3, 3}, {0, 3}})
	require.Equal(t, rune(0x2800+0x3f), b.glyph(0, 0), "top three micro rows of the left cell")
	require.NotZero(t, b.glyph(1, 0))
}

func TestCSSColor(t *testing.T) {
	require.Equal(t, lipgloss.Color("#ff0000"), cssColor("rgb(255, 0, 0)", "#000000"))
	require.Equal(t, lipgloss.Color("#f06eaa"), cssColor("#f06eaa", "#000000"))
	require.Equal(t, lipgloss.Color("#000000"), cssColor("tomato", "#000000"))
}
