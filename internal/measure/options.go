package measure

import "time"

// PathStyle is the stroke used for measurement shapes.
type PathStyle struct {
	Color  string `yaml:"color"`
	Weight int    `yaml:"weight"`
	// Dashed marks guide lines that follow the pointer.
	Dashed bool `yaml:"dashed"`
}

// DrawError is raised when a vertex is rejected.
type DrawError struct {
	Color   string        `yaml:"color"`
	Timeout time.Duration `yaml:"timeout"`
	Message string        `yaml:"message"`
}

type PolygonOptions struct {
	AllowIntersection bool      `yaml:"allow_intersection"`
	DrawError         DrawError `yaml:"draw_error"`
	ShapeOptions      PathStyle `yaml:"shape_options"`
	RepeatMode        bool      `yaml:"repeat_mode"`
}

type PolylineOptions struct {
	ShapeOptions PathStyle `yaml:"shape_options"`
	RepeatMode   bool      `yaml:"repeat_mode"`
}

// Position is the corner the control panel is docked to.
type Position string

const (
	TopLeft     Position = "topleft"
	TopRight    Position = "topright"
	BottomLeft  Position = "bottomleft"
	BottomRight Position = "bottomright"
)

// Options configures a Control.
type Options struct {
	Polygon  PolygonOptions  `yaml:"polygon"`
	Polyline PolylineOptions `yaml:"polyline"`
	Position Position        `yaml:"position"`
}

// DefaultOptions mirrors the stock look: red 2px strokes, no self
// intersecting polygons, docked top left.
func DefaultOptions() Options {
	red := PathStyle{Color: "rgb(255, 0, 0)", Weight: 2}
	return Options{
		Polygon: PolygonOptions{
			AllowIntersection: false,
			DrawError: DrawError{
				Color:   "#f06eaa",
				Timeout: 400 * time.Millisecond,
				Message: "Invalid geometry",
			},
			ShapeOptions: red,
			RepeatMode:   true,
		},
		Polyline: PolylineOptions{
			ShapeOptions: red,
			RepeatMode:   true,
		},
		Position: TopLeft,
	}
}
