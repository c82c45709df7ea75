// Package measure implements an interactive distance and area measurement
// control on top of a map host. The control owns a small state machine
// (idle, measuring distance, measuring area), accumulates clicked points
// into a session and keeps a floating tooltip updated with the running
// total in the selected unit.
//
// All methods must be called from the host's event loop; the control is
// not safe for concurrent use.
package measure

import (
	"fmt"
	"slices"
)

// Control is the measurement control bound to one host.
type Control struct {
	host  Host
	geo   Geometry
	opts  Options
	units UnitState

	on      bool
	session *Session
	unsubs  []func()
	// whether double-click zoom was on before the session disabled it
	restoreZoom bool

	onEnable    []func(Mode)
	onDisable   []func(Mode)
	onDrawError []func(DrawError)
}

// New creates an idle control. A nil geometry selects Geodesic.
func New(host Host, g Geometry, opts Options) *Control {
	if g == nil {
		g = Geodesic{}
	}
	return &Control{
		host:  host,
		geo:   g,
		opts:  opts,
		units: DefaultUnits(),
	}
}

func (c *Control) Options() Options { return c.opts }

// On reports whether the control is toggled on.
func (c *Control) On() bool { return c.on }

// Mode returns the active mode, ModeNone when idle.
func (c *Control) Mode() Mode {
	if c.session == nil {
		return ModeNone
	}
	return c.session.mode
}

func (c *Control) OnEnable(fn func(Mode))         { c.onEnable = append(c.onEnable, fn) }
func (c *Control) OnDisable(fn func(Mode))        { c.onDisable = append(c.onDisable, fn) }
func (c *Control) OnDrawError(fn func(DrawError)) { c.onDrawError = append(c.onDrawError, fn) }

// Toggle switches the whole control. Turning it on starts a distance
// measurement; turning it off ends any session.
func (c *Control) Toggle() {
	if c.on {
		c.Disable()
		c.on = false
		return
	}
	c.on = true
	c.EnableMode(ModeDistance)
}

// SelectMode behaves like pressing a mode button: it ends the mode when
// it is already active and enables it otherwise.
func (c *Control) SelectMode(m Mode) {
	if c.Mode() == m {
		c.Disable()
		return
	}
	c.EnableMode(m)
}

// EnableMode starts a fresh session in mode m. A session in another mode
// is torn down completely before the new one starts.
func (c *Control) EnableMode(m Mode) {
	if m != ModeDistance && m != ModeArea {
		return
	}
	if c.Mode() == m {
		return
	}
	if c.session != nil {
		c.Disable()
	}
	c.on = true

	c.restoreZoom = c.host.DoubleClickZoomEnabled()
	c.host.DisableDoubleClickZoom()

	s := newSession(m)
	c.session = s
	c.unsubs = []func(){
		c.host.OnPointerClick(func(e PointerEvent) { c.handleClick(s, e) }),
		c.host.OnPointerMove(func(e PointerEvent) { c.handleMove(s, e) }),
		c.host.OnDoubleClick(func(PointerEvent) { c.finish(s) }),
		c.host.OnKeyDown(func(e KeyEvent) { c.handleKey(s, e) }),
	}
	for _, fn := range c.onEnable {
		fn(m)
	}
}

// Disable returns the control to idle: listeners are removed, drawn
// shapes and the tooltip are cleared and double-click zoom is restored.
func (c *Control) Disable() {
	s := c.session
	if s == nil {
		return
	}
	for _, unsub := range c.unsubs {
		if unsub != nil {
			unsub()
		}
	}
	c.unsubs = nil
	if s.tooltip != nil {
		s.tooltip.Destroy()
	}
	c.host.Layers().Clear()
	if c.restoreZoom {
		c.host.EnableDoubleClickZoom()
	}
	c.restoreZoom = false
	c.session = nil
	for _, fn := range c.onDisable {
		fn(s.mode)
	}
}

// finish ends s if it is still the live session.
func (c *Control) finish(s *Session) {
	if c.session != s {
		return
	}
	c.Disable()
}

func (c *Control) handleKey(s *Session, e KeyEvent) {
	if c.session != s {
		return
	}
	if e.Key == "esc" {
		c.Toggle()
	}
}

// Session returns a copy of the live session state.
func (c *Control) Session() Snapshot {
	s := c.session
	if s == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		Mode:     s.mode,
		Points:   slices.Clone(s.points),
		Total:    s.total,
		Delta:    s.delta,
		Vertices: s.vertices,
	}
	if s.tooltip != nil && s.shown.ok {
		snap.Label = c.labelLines(s, s.shown)
	}
	return snap
}

// Legs returns the edges of the live session; area sessions include the
// closing edge.
func (c *Control) Legs() []Leg {
	if c.session == nil {
		return nil
	}
	return legs(c.geo, c.session.points, c.session.mode == ModeArea)
}

// Units returns the current unit selection.
func (c *Control) Units() UnitState { return c.units }

// SetUnits replaces the unit selection, typically from configuration.
func (c *Control) SetUnits(u UnitState) error {
	if !u.Distance.IsDistance() {
		return fmt.Errorf("%w: %q is not a distance unit", ErrUnknownUnit, u.Distance)
	}
	if !u.Area.IsArea() {
		return fmt.Errorf("%w: %q is not an area unit", ErrUnknownUnit, u.Area)
	}
	c.units = u
	c.rerender()
	return nil
}

// UnitOptions lists the units offered for the active mode. Idle controls
// offer distance units.
func (c *Control) UnitOptions() []Unit {
	if c.Mode() == ModeArea {
		return slices.Clone(AreaUnits)
	}
	return slices.Clone(DistanceUnits)
}

// SelectedUnit is the unit the active mode renders in.
func (c *Control) SelectedUnit() Unit {
	if c.Mode() == ModeArea {
		return c.units.Area
	}
	return c.units.Distance
}

// SelectUnit applies a unit code picked by the user. Unknown codes leave
// the display untouched.
func (c *Control) SelectUnit(code string) error {
	u, err := ParseUnit(code)
	if err != nil {
		return err
	}
	if u.IsArea() {
		c.units.Previous = c.units.Area
		c.units.Area = u
	} else {
		c.units.Previous = c.units.Distance
		c.units.Distance = u
	}
	c.rerender()
	return nil
}

// CycleUnit advances to the next unit offered for the active mode.
func (c *Control) CycleUnit() Unit {
	opts := c.UnitOptions()
	cur := c.SelectedUnit()
	next := opts[0]
	if i := slices.Index(opts, cur); i >= 0 {
		next = opts[(i+1)%len(opts)]
	}
	_ = c.SelectUnit(string(next))
	return next
}

func (c *Control) rerender() {
	s := c.session
	if s == nil || s.tooltip == nil || !s.shown.ok {
		return
	}
	c.show(s, s.shown)
}

func (c *Control) show(s *Session, d display) {
	s.shown = d
	s.shown.ok = true
	s.tooltip.SetText(c.labelLines(s, d)...)
}

func (c *Control) labelLines(s *Session, d display) []string {
	if s.mode == ModeArea {
		return []string{FormatArea(d.total, c.units.Area)}
	}
	total := FormatDistance(d.total, c.units.Distance)
	lines := []string{total}
	if d.delta != 0 {
		if delta := FormatDistance(d.delta, c.units.Distance); delta != total {
			lines = append(lines, "(+"+delta+")")
		}
	}
	return lines
}
