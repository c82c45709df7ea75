package tiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/paulmach/orb"
)

// TileJSON is the subset of the TileJSON 2.x document the layer reads.
type TileJSON struct {
	TileJSON    string    `json:"tilejson,omitempty"`
	Name        string    `json:"name,omitempty"`
	Attribution string    `json:"attribution,omitempty"`
	Autoscale   bool      `json:"autoscale,omitempty"`
	Bounds      []float64 `json:"bounds,omitempty"`
	Center      []float64 `json:"center,omitempty"`
	Grids       []string  `json:"grids,omitempty"`
	MinZoom     *int      `json:"minzoom,omitempty"`
	MaxZoom     *int      `json:"maxzoom,omitempty"`
	Tiles       []string  `json:"tiles"`
	Scheme      string    `json:"scheme,omitempty"`
}

var (
	ErrNoTiles    = errors.New("tilejson: no tile templates")
	ErrBadBounds  = errors.New("tilejson: bounds must have 4 values")
	ErrHTTPStatus = errors.New("tilejson: unexpected status")
)

// Bound converts the [west, south, east, north] bounds array.
func (tj *TileJSON) Bound() (orb.Bound, bool) {
	if len(tj.Bounds) != 4 {
		return orb.Bound{}, false
	}
	return orb.Bound{
		Min: orb.Point{tj.Bounds[0], tj.Bounds[1]},
		Max: orb.Point{tj.Bounds[2], tj.Bounds[3]},
	}, true
}

func (tj *TileJSON) validate() error {
	if len(tj.Tiles) == 0 {
		return ErrNoTiles
	}
	if tj.Bounds != nil && len(tj.Bounds) != 4 {
		return ErrBadBounds
	}
	return nil
}

// FetchTileJSON downloads and decodes a TileJSON document.
func FetchTileJSON(ctx context.Context, client *http.Client, url string) (*TileJSON, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	var tj TileJSON
	if err := json.NewDecoder(resp.Body).Decode(&tj); err != nil {
		return nil, fmt.Errorf("tilejson: decode: %w", err)
	}
	if err := tj.validate(); err != nil {
		return nil, err
	}
	return &tj, nil
}
