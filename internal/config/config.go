// Package config loads geomeasure settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"geomeasure/internal/measure"
	"geomeasure/internal/tiles"
)

type Config struct {
	Measure measure.Options `yaml:"measure"`
	Units   Units           `yaml:"units"`
	View    View            `yaml:"view"`
	// Mapbox is optional; nil disables the basemap metadata lookup.
	Mapbox *tiles.Options `yaml:"mapbox"`
	Export Export         `yaml:"export"`
}

type Units struct {
	Distance string `yaml:"distance"`
	Area     string `yaml:"area"`
}

// View is the extent shown when no dataset is loaded, as
// [west, south, east, north].
type View struct {
	Bounds []float64 `yaml:"bounds"`
}

type Export struct {
	Dir string `yaml:"dir"`
}

var ErrInvalid = errors.New("invalid config")

func Default() Config {
	return Config{
		Measure: measure.DefaultOptions(),
		Units:   Units{Distance: string(measure.Meters), Area: string(measure.Acres)},
		View:    View{Bounds: []float64{-0.05, -0.05, 0.05, 0.05}},
		Export:  Export{Dir: "."},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/geomeasure/config.yaml or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "geomeasure.yaml"
	}
	return filepath.Join(dir, "geomeasure", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.UnitState(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, ok := c.Bound(); !ok {
		return fmt.Errorf("%w: view.bounds must be [west, south, east, north]", ErrInvalid)
	}
	switch c.Measure.Position {
	case measure.TopLeft, measure.TopRight, measure.BottomLeft, measure.BottomRight:
	default:
		return fmt.Errorf("%w: measure.position %q", ErrInvalid, c.Measure.Position)
	}
	return nil
}

// UnitState converts the configured unit codes.
func (c Config) UnitState() (measure.UnitState, error) {
	d, err := measure.ParseUnit(c.Units.Distance)
	if err != nil {
		return measure.UnitState{}, err
	}
	if !d.IsDistance() {
		return measure.UnitState{}, fmt.Errorf("%w: %q is not a distance unit", measure.ErrUnknownUnit, d)
	}
	a, err := measure.ParseUnit(c.Units.Area)
	if err != nil {
		return measure.UnitState{}, err
	}
	if !a.IsArea() {
		return measure.UnitState{}, fmt.Errorf("%w: %q is not an area unit", measure.ErrUnknownUnit, a)
	}
	return measure.UnitState{Distance: d, Area: a, Previous: d}, nil
}

// Bound returns the initial view extent.
func (c Config) Bound() (orb.Bound, bool) {
	b := c.View.Bounds
	if len(b) != 4 || b[0] >= b[2] || b[1] >= b[3] {
		return orb.Bound{}, false
	}
	return orb.Bound{Min: orb.Point{b[0], b[1]}, Max: orb.Point{b[2], b[3]}}, true
}
