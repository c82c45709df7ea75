package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"geomeasure/internal/config"
	"geomeasure/internal/geom"
	"geomeasure/internal/measure"
	"geomeasure/internal/tiles"
)

// doubleClickWindow is how close two presses on the same cell must be to
// count as a double click.
const doubleClickWindow = 400 * time.Millisecond

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	// view is the extent mapped onto the canvas at zoom 1.
	view    orb.Bound
	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	data geom.Data

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// measurement legs table
	showLegs bool
	tbl      table.Model

	// measurement
	ctl       *measure.Control
	host      *mapHost
	notes     *notices
	inks      inkStyles
	position  measure.Position
	exportDir string
	lastPress press
	now       func() time.Time

	basemap *tiles.Layer
}

// press remembers the previous left press for double-click detection.
type press struct {
	x, y int
	at   time.Time
	ok   bool
}

// notices collects control callbacks fired during a dispatch so Update
// can turn them into status text and commands afterwards.
type notices struct {
	enabled   []measure.Mode
	disabled  []measure.Mode
	drawError *measure.DrawError
	flashSeq  int
	flashing  bool
}

func New(cfg config.Config) (Model, error) {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geomeasure ready  m measure",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		exportDir:   cfg.Export.Dir,
		position:    cfg.Measure.Position,
		now:         time.Now,
	}
	if b, ok := cfg.Bound(); ok {
		m.view = b
	} else {
		m.view, _ = config.Default().Bound()
	}

	m.host = newMapHost()
	m.ctl = measure.New(m.host, nil, cfg.Measure)
	units, err := cfg.UnitState()
	if err != nil {
		return Model{}, err
	}
	if err := m.ctl.SetUnits(units); err != nil {
		return Model{}, err
	}
	notes := &notices{}
	m.notes = notes
	m.ctl.OnEnable(func(md measure.Mode) { notes.enabled = append(notes.enabled, md) })
	m.ctl.OnDisable(func(md measure.Mode) { notes.disabled = append(notes.disabled, md) })
	m.ctl.OnDrawError(func(e measure.DrawError) { notes.drawError = &e })
	m.inks = newInkStyles(cfg.Measure.Polyline.ShapeOptions.Color, cfg.Measure.Polygon.DrawError.Color)

	if cfg.Mapbox != nil {
		layer, err := tiles.New(*cfg.Mapbox)
		if err != nil {
			return Model{}, err
		}
		m.basemap = layer
	}

	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here, one geometry per line. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m, nil
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, path string) (Model, error) {
	m, err := New(cfg)
	if err != nil {
		return Model{}, err
	}
	m.loadPath(path)
	return m, nil
}

// Control exposes the measurement control, mainly for embedding callers.
func (m Model) Control() *measure.Control { return m.ctl }

func (m Model) Init() tea.Cmd {
	if m.basemap != nil && !m.basemap.Ready() {
		return fetchTileJSON(m.basemap.TileJSONURL())
	}
	return nil
}
