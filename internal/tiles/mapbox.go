// Package tiles adapts MapBox hosted raster tilesets: it resolves a
// tileset id to its TileJSON metadata and turns tile coordinates into
// image URLs. Tiles are never fetched or drawn here.
package tiles

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// Formats are the image formats MapBox serves.
var Formats = []string{"jpg70", "jpg80", "jpg90", "png", "png32", "png64", "png128", "png256"}

const DefaultBaseURL = "https://a.tiles.mapbox.com"

// LoadErrorMessage is the message attached to failed metadata loads.
const LoadErrorMessage = "There was an error loading the data from Mapbox."

var (
	ErrNoSource  = errors.New("mapbox layers require either an id or a tilejson")
	ErrBadFormat = errors.New("mapbox: unsupported format")
	ErrNotReady  = errors.New("mapbox: tilejson not loaded")
	ErrNoGrid    = errors.New("mapbox: layer has no grids")
)

// Options configures a Layer. Zero values fall back to the TileJSON.
type Options struct {
	ID          string    `yaml:"id"`
	TileJSON    *TileJSON `yaml:"-"`
	AccessToken string    `yaml:"access_token"`
	Format      string    `yaml:"format"`
	Subdomains  []string  `yaml:"subdomains"`
	Attribution string    `yaml:"attribution"`
	MinZoom     *int      `yaml:"min_zoom"`
	MaxZoom     *int      `yaml:"max_zoom"`
	// Autoscale requests @2x tiles on retina displays when the tileset
	// supports it.
	Autoscale bool `yaml:"autoscale"`
	Retina    bool `yaml:"retina"`
	// Clickable=false suppresses grid interactivity.
	Clickable *bool  `yaml:"clickable"`
	Secure    bool   `yaml:"secure"`
	BaseURL   string `yaml:"base_url"`
}

// LoadError is reported to error handlers when metadata cannot be loaded.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message + ": " + e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }

// Layer is a MapBox raster tile layer.
type Layer struct {
	opts     Options
	tileJSON *TileJSON

	// resolved from options and TileJSON
	tiles       []string
	grids       []string
	attribution string
	minZoom     int
	maxZoom     int
	bound       orb.Bound
	hasBound    bool
	tms         bool
	autoscale   bool

	interactive bool
	ready       bool
	lastErr     *LoadError

	onReady []func(*TileJSON)
	onError []func(*LoadError)
}

// New validates opts and, when a TileJSON document is supplied inline,
// applies it immediately.
func New(opts Options) (*Layer, error) {
	if opts.ID == "" && opts.TileJSON == nil {
		return nil, ErrNoSource
	}
	if opts.Format == "" {
		opts.Format = "png"
	} else if !slices.Contains(Formats, opts.Format) {
		return nil, fmt.Errorf("%w: %q (one of %s)", ErrBadFormat, opts.Format, strings.Join(Formats, ", "))
	}
	if len(opts.Subdomains) == 0 {
		opts.Subdomains = []string{"a", "b", "c", "d"}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	l := &Layer{opts: opts}
	if opts.TileJSON != nil {
		if err := l.SetTileJSON(opts.TileJSON); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Layer) OnReady(fn func(*TileJSON))  { l.onReady = append(l.onReady, fn) }
func (l *Layer) OnError(fn func(*LoadError)) { l.onError = append(l.onError, fn) }

func (l *Layer) Ready() bool           { return l.ready }
func (l *Layer) Err() *LoadError       { return l.lastErr }
func (l *Layer) TileJSON() *TileJSON   { return l.tileJSON }
func (l *Layer) Attribution() string   { return l.attribution }
func (l *Layer) Interactive() bool     { return l.interactive }
func (l *Layer) ZoomRange() (int, int) { return l.minZoom, l.maxZoom }

// Bounds returns the tileset extent when the TileJSON declares one.
func (l *Layer) Bounds() (orb.Bound, bool) { return l.bound, l.hasBound }

// TileJSONURL is the metadata endpoint for the configured tileset id.
func (l *Layer) TileJSONURL() string {
	u := strings.TrimRight(l.opts.BaseURL, "/") + "/v4/" + url.PathEscape(l.opts.ID) + ".json"
	q := url.Values{}
	q.Set("access_token", l.opts.AccessToken)
	if l.opts.Secure {
		q.Set("secure", "1")
	}
	return u + "?" + q.Encode()
}

// Load fetches the TileJSON for the configured id and applies it. Failures
// are wrapped in a LoadError and also delivered to error handlers.
func (l *Layer) Load(ctx context.Context, client *http.Client) error {
	if l.opts.ID == "" {
		if l.ready {
			return nil
		}
		return ErrNoSource
	}
	tj, err := FetchTileJSON(ctx, client, l.TileJSONURL())
	if err != nil {
		return l.Fail(err)
	}
	return l.SetTileJSON(tj)
}

// Fail records a load failure and notifies error handlers.
func (l *Layer) Fail(err error) error {
	le := &LoadError{Message: LoadErrorMessage, Err: err}
	l.lastErr = le
	for _, fn := range l.onError {
		fn(le)
	}
	return le
}

// SetTileJSON merges tileset metadata into the layer. Explicit options win
// over the document for attribution and zoom limits.
func (l *Layer) SetTileJSON(tj *TileJSON) error {
	if tj == nil {
		return ErrNoTiles
	}
	if err := tj.validate(); err != nil {
		return err
	}
	l.tileJSON = tj
	l.tiles = slices.Clone(tj.Tiles)
	l.grids = slices.Clone(tj.Grids)
	l.attribution = tj.Attribution
	if l.opts.Attribution != "" {
		l.attribution = l.opts.Attribution
	}
	l.minZoom, l.maxZoom = 0, 22
	if tj.MinZoom != nil {
		l.minZoom = *tj.MinZoom
	}
	if tj.MaxZoom != nil {
		l.maxZoom = *tj.MaxZoom
	}
	if l.opts.MinZoom != nil {
		l.minZoom = *l.opts.MinZoom
	}
	if l.opts.MaxZoom != nil {
		l.maxZoom = *l.opts.MaxZoom
	}
	l.bound, l.hasBound = tj.Bound()
	l.tms = tj.Scheme == "tms"
	l.autoscale = tj.Autoscale || l.opts.Autoscale
	l.interactive = len(tj.Grids) > 0 && (l.opts.Clickable == nil || *l.opts.Clickable)
	l.ready = true
	l.lastErr = nil
	for _, fn := range l.onReady {
		fn(tj)
	}
	return nil
}

// TileURL returns the image URL for t. Templates are spread over tiles by
// |x+y| so neighbouring tiles hit different hosts.
func (l *Layer) TileURL(t maptile.Tile) (string, error) {
	if !l.ready {
		return "", ErrNotReady
	}
	u := l.template(l.tiles, t)
	scale := ""
	if l.autoscale && l.opts.Retina {
		scale = "@2x"
	}
	return strings.Replace(u, ".png", scale+"."+l.opts.Format, 1), nil
}

// GridURL returns the UTFGrid URL for t.
func (l *Layer) GridURL(t maptile.Tile) (string, error) {
	if !l.ready {
		return "", ErrNotReady
	}
	if !l.interactive {
		return "", ErrNoGrid
	}
	return l.template(l.grids, t), nil
}

// InZoomRange reports whether z is servable.
func (l *Layer) InZoomRange(z maptile.Zoom) bool {
	return int(z) >= l.minZoom && int(z) <= l.maxZoom
}

// TileAt returns the tile containing p at zoom z.
func (l *Layer) TileAt(p orb.Point, z maptile.Zoom) maptile.Tile {
	return maptile.At(p, z)
}

func (l *Layer) template(templates []string, t maptile.Tile) string {
	n := int(math.Abs(float64(int64(t.X) + int64(t.Y))))
	y := uint64(t.Y)
	if l.tms {
		y = (uint64(1) << t.Z) - 1 - y
	}
	sub := l.opts.Subdomains[n%len(l.opts.Subdomains)]
	r := strings.NewReplacer(
		"{z}", strconv.FormatUint(uint64(t.Z), 10),
		"{x}", strconv.FormatUint(uint64(t.X), 10),
		"{y}", strconv.FormatUint(y, 10),
		"{s}", sub,
	)
	return r.Replace(templates[n%len(templates)])
}
