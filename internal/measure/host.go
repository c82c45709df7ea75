package measure

import "github.com/paulmach/orb"

// PointerEvent is a click, move or double-click delivered by the host.
// HasPoint is false when the host could not resolve a map position.
type PointerEvent struct {
	Point    orb.Point
	HasPoint bool
}

// At builds a PointerEvent positioned at lon/lat.
func At(lon, lat float64) PointerEvent {
	return PointerEvent{Point: orb.Point{lon, lat}, HasPoint: true}
}

// KeyEvent carries a key name in bubbletea notation ("esc", "enter", "a").
type KeyEvent struct {
	Key string
}

// Host is the map widget the control is bound to. Every On* method returns
// a function that removes the handler again.
type Host interface {
	OnPointerClick(func(PointerEvent)) (unregister func())
	OnPointerMove(func(PointerEvent)) (unregister func())
	OnDoubleClick(func(PointerEvent)) (unregister func())
	OnKeyDown(func(KeyEvent)) (unregister func())

	DoubleClickZoomEnabled() bool
	DisableDoubleClickZoom()
	EnableDoubleClickZoom()

	// Layers is the drawn-shapes group owned by the control.
	Layers() LayerGroup
}

// LayerID identifies a shape inside a LayerGroup.
type LayerID int

// LayerGroup holds the shapes drawn during a measurement.
type LayerGroup interface {
	// AddMarker draws a vertex marker. onClick may be nil.
	AddMarker(p orb.Point, onClick func()) LayerID
	AddPolyline(line orb.LineString, style PathStyle) LayerID
	AddPolygon(ring orb.Ring, style PathStyle) LayerID
	// SetPoints replaces the vertices of a polyline or polygon.
	SetPoints(id LayerID, pts []orb.Point)
	Remove(id LayerID)
	AddTooltip(p orb.Point) Tooltip
	Clear()
}

// Tooltip is a floating label anchored to a map position.
type Tooltip interface {
	Move(p orb.Point)
	SetText(lines ...string)
	Destroy()
}
