package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/spf13/cobra"

	"geomeasure/internal/tiles"
)

var tileFlags struct {
	id      string
	token   string
	format  string
	retina  bool
	z       uint32
	x, y    uint32
	lon     float64
	lat     float64
	timeout time.Duration
}

var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Resolve a MapBox tileset and print tile URLs",
	Long: `tiles loads the TileJSON of a MapBox tileset and prints the image URL of
one tile, given either as --z/--x/--y or as a --lon/--lat position at --z.
Settings not given as flags come from the mapbox section of the config.`,
	Args: cobra.NoArgs,
	RunE: runTiles,
}

func init() {
	rootCmd.AddCommand(tilesCmd)
	f := tilesCmd.Flags()
	f.StringVar(&tileFlags.id, "id", "", "tileset id, e.g. mapbox.streets")
	f.StringVar(&tileFlags.token, "token", "", "access token")
	f.StringVar(&tileFlags.format, "format", "", "image format (png, jpg80, ...)")
	f.BoolVar(&tileFlags.retina, "retina", false, "request @2x tiles when the tileset autoscales")
	f.Uint32VarP(&tileFlags.z, "zoom", "z", 0, "zoom level")
	f.Uint32Var(&tileFlags.x, "x", 0, "tile column")
	f.Uint32Var(&tileFlags.y, "y", 0, "tile row")
	f.Float64Var(&tileFlags.lon, "lon", 0, "longitude, used with --lat instead of --x/--y")
	f.Float64Var(&tileFlags.lat, "lat", 0, "latitude")
	f.DurationVar(&tileFlags.timeout, "timeout", 15*time.Second, "metadata request timeout")
}

func runTiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var opts tiles.Options
	if cfg.Mapbox != nil {
		opts = *cfg.Mapbox
	}
	if tileFlags.id != "" {
		opts.ID = tileFlags.id
	}
	if tileFlags.token != "" {
		opts.AccessToken = tileFlags.token
	}
	if tileFlags.format != "" {
		opts.Format = tileFlags.format
	}
	if tileFlags.retina {
		opts.Retina = true
	}
	layer, err := tiles.New(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), tileFlags.timeout)
	defer cancel()
	if err := layer.Load(ctx, nil); err != nil {
		return err
	}

	z := maptile.Zoom(tileFlags.z)
	if !layer.InZoomRange(z) {
		lo, hi := layer.ZoomRange()
		return fmt.Errorf("zoom %d outside tileset range %d-%d", z, lo, hi)
	}
	t := maptile.New(tileFlags.x, tileFlags.y, z)
	if cmd.Flags().Changed("lon") || cmd.Flags().Changed("lat") {
		t = layer.TileAt(orb.Point{tileFlags.lon, tileFlags.lat}, z)
	}

	out := cmd.OutOrStdout()
	tj := layer.TileJSON()
	if tj.Name != "" {
		fmt.Fprintf(out, "name:        %s\n", tj.Name)
	}
	if a := layer.Attribution(); a != "" {
		fmt.Fprintf(out, "attribution: %s\n", a)
	}
	lo, hi := layer.ZoomRange()
	fmt.Fprintf(out, "zoom:        %d-%d\n", lo, hi)
	fmt.Fprintf(out, "tile:        %d/%d/%d\n", t.Z, t.X, t.Y)
	u, err := layer.TileURL(t)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "url:         %s\n", u)
	if g, err := layer.GridURL(t); err == nil {
		fmt.Fprintf(out, "grid:        %s\n", g)
	} else if !errors.Is(err, tiles.ErrNoGrid) {
		return err
	}
	return nil
}
