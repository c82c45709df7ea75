package tiles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func sampleTileJSON() *TileJSON {
	return &TileJSON{
		TileJSON:    "2.0.0",
		Attribution: "© Mapbox",
		Bounds:      []float64{-180, -85, 180, 85},
		MinZoom:     intp(0),
		MaxZoom:     intp(19),
		Tiles: []string{
			"https://a.tiles.mapbox.com/v4/nps.park/{z}/{x}/{y}.png",
			"https://b.tiles.mapbox.com/v4/nps.park/{z}/{x}/{y}.png",
		},
		Grids: []string{"https://a.tiles.mapbox.com/v4/nps.park/{z}/{x}/{y}.grid.json"},
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(Options{})
	require.ErrorIs(t, err, ErrNoSource)

	_, err = New(Options{ID: "nps.park", Format: "gif"})
	require.ErrorIs(t, err, ErrBadFormat)

	l, err := New(Options{ID: "nps.park", Format: "jpg80"})
	require.NoError(t, err)
	require.False(t, l.Ready())
	_, err = l.TileURL(maptile.New(0, 0, 0))
	require.ErrorIs(t, err, ErrNotReady)
}

func TestTileURL(t *testing.T) {
	l, err := New(Options{TileJSON: sampleTileJSON(), Format: "png256"})
	require.NoError(t, err)
	require.True(t, l.Ready())

	u, err := l.TileURL(maptile.New(3, 4, 5))
	require.NoError(t, err)
	require.Equal(t, "https://b.tiles.mapbox.com/v4/nps.park/5/3/4.png256", u)

	u, err = l.TileURL(maptile.New(2, 4, 5))
	require.NoError(t, err)
	require.Equal(t, "https://a.tiles.mapbox.com/v4/nps.park/5/2/4.png256", u)
}

func TestTileURLRetina(t *testing.T) {
	tj := sampleTileJSON()
	tj.Autoscale = true
	l, err := New(Options{TileJSON: tj, Retina: true})
	require.NoError(t, err)
	u, err := l.TileURL(maptile.New(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, "https://a.tiles.mapbox.com/v4/nps.park/1/0/0@2x.png", u)

	l, err = New(Options{TileJSON: sampleTileJSON(), Retina: true})
	require.NoError(t, err)
	u, err = l.TileURL(maptile.New(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, "https://a.tiles.mapbox.com/v4/nps.park/1/0/0.png", u, "no @2x without autoscale")
}

func TestTileURLTMS(t *testing.T) {
	tj := sampleTileJSON()
	tj.Scheme = "tms"
	tj.Tiles = []string{"https://{s}.example.com/{z}/{x}/{y}.png"}
	l, err := New(Options{TileJSON: tj})
	require.NoError(t, err)
	u, err := l.TileURL(maptile.New(1, 0, 2))
	require.NoError(t, err)
	require.Equal(t, "https://b.example.com/2/1/3.png", u)
}

func TestOptionsOverrideTileJSON(t *testing.T) {
	clickable := false
	l, err := New(Options{
		TileJSON:    sampleTileJSON(),
		Attribution: "NPS",
		MaxZoom:     intp(12),
		Clickable:   &clickable,
	})
	require.NoError(t, err)
	require.Equal(t, "NPS", l.Attribution())
	minZ, maxZ := l.ZoomRange()
	require.Equal(t, 0, minZ)
	require.Equal(t, 12, maxZ)
	require.False(t, l.InZoomRange(13))
	require.False(t, l.Interactive())
	_, err = l.GridURL(maptile.New(0, 0, 0))
	require.ErrorIs(t, err, ErrNoGrid)

	b, ok := l.Bounds()
	require.True(t, ok)
	require.Equal(t, orb.Bound{Min: orb.Point{-180, -85}, Max: orb.Point{180, 85}}, b)
}

func TestGridURL(t *testing.T) {
	l, err := New(Options{TileJSON: sampleTileJSON()})
	require.NoError(t, err)
	require.True(t, l.Interactive())
	u, err := l.GridURL(maptile.New(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, "https://a.tiles.mapbox.com/v4/nps.park/3/1/2.grid.json", u)
}

func TestLoadFromServer(t *testing.T) {
	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleTileJSON())
	}))
	defer srv.Close()

	l, err := New(Options{ID: "nps.park", AccessToken: "pk.test", BaseURL: srv.URL})
	require.NoError(t, err)
	var ready int
	l.OnReady(func(*TileJSON) { ready++ })

	require.NoError(t, l.Load(context.Background(), srv.Client()))
	require.Equal(t, "/v4/nps.park.json", gotPath)
	require.Equal(t, "pk.test", gotToken)
	require.Equal(t, 1, ready)
	require.True(t, l.Ready())
	require.Equal(t, "© Mapbox", l.Attribution())
}

func TestLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	l, err := New(Options{ID: "nps.park", BaseURL: srv.URL})
	require.NoError(t, err)
	var got *LoadError
	l.OnError(func(e *LoadError) { got = e })

	err = l.Load(context.Background(), srv.Client())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrHTTPStatus)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	require.Equal(t, LoadErrorMessage, le.Message)
	require.Same(t, le, got)
	require.False(t, l.Ready())
}

func TestFetchRejectsEmptyTiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tilejson":"2.0.0","tiles":[]}`))
	}))
	defer srv.Close()
	_, err := FetchTileJSON(context.Background(), srv.Client(), srv.URL)
	require.ErrorIs(t, err, ErrNoTiles)
}

func TestTileJSONURL(t *testing.T) {
	l, err := New(Options{ID: "nps.park", AccessToken: "pk.x", Secure: true})
	require.NoError(t, err)
	require.Equal(t, "https://a.tiles.mapbox.com/v4/nps.park.json?access_token=pk.x&secure=1", l.TileJSONURL())
}
