package measure

import "github.com/paulmach/orb"

// Mode is the active measurement type.
type Mode int

const (
	ModeNone Mode = iota
	ModeDistance
	ModeArea
)

func (m Mode) String() string {
	switch m {
	case ModeDistance:
		return "distance"
	case ModeArea:
		return "area"
	}
	return "none"
}

// noLayer marks an unset layer handle; hosts hand out ids from 1.
const noLayer LayerID = 0

// Session is the accumulation state of one in-progress measurement.
type Session struct {
	mode     Mode
	points   []orb.Point
	total    float64 // meters (distance) or square meters (area)
	delta    float64 // last committed leg in meters
	vertices int

	tooltip Tooltip
	shown   display

	shape   LayerID
	preview LayerID
	tip     LayerID
	markers []LayerID
}

// display is the raw value pair the tooltip currently shows, so a unit
// change can re-render it without reading text back.
type display struct {
	total float64
	delta float64
	ok    bool
}

func newSession(m Mode) *Session {
	return &Session{mode: m}
}

func (s *Session) lastPoint() (orb.Point, bool) {
	if len(s.points) == 0 {
		return orb.Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Mode     Mode
	Points   []orb.Point
	Total    float64
	Delta    float64
	Vertices int
	// Label holds the lines currently shown in the tooltip, nil when no
	// tooltip is visible.
	Label []string
}

// Leg is one edge of the measured path.
type Leg struct {
	From   orb.Point
	To     orb.Point
	Meters float64
}

func legs(g Geometry, pts []orb.Point, closed bool) []Leg {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Leg, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		out = append(out, Leg{From: pts[i-1], To: pts[i], Meters: g.Distance(pts[i-1], pts[i])})
	}
	if closed && len(pts) >= 3 {
		a, b := pts[len(pts)-1], pts[0]
		out = append(out, Leg{From: a, To: b, Meters: g.Distance(a, b)})
	}
	return out
}

func pathLength(g Geometry, pts []orb.Point) float64 {
	var sum float64
	for i := 1; i < len(pts); i++ {
		sum += g.Distance(pts[i-1], pts[i])
	}
	return sum
}
