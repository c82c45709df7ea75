package main

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"geomeasure/internal/geom"
	"geomeasure/internal/measure"
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Print the length of every line and the area of every polygon in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	units, err := cfg.UnitState()
	if err != nil {
		return err
	}
	d, err := geom.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, ls := range d.Lines {
		fmt.Fprintf(out, "line %d: %s\n", i+1, measure.FormatDistance(lineLength(ls), units.Distance))
	}
	for i, p := range d.Polygons {
		fmt.Fprintf(out, "polygon %d: %s\n", i+1, measure.FormatArea(polygonArea(p), units.Area))
	}
	if len(d.Lines) == 0 && len(d.Polygons) == 0 {
		fmt.Fprintf(out, "%d points, nothing to measure\n", len(d.Points))
	}
	return nil
}

var geodesic measure.Geodesic

func lineLength(ls orb.LineString) float64 {
	var sum float64
	for i := 1; i < len(ls); i++ {
		sum += geodesic.Distance(ls[i-1], ls[i])
	}
	return sum
}

// polygonArea subtracts holes from the outer ring.
func polygonArea(p orb.Polygon) float64 {
	if len(p) == 0 {
		return 0
	}
	a := geodesic.Area(p[0])
	for _, hole := range p[1:] {
		a -= geodesic.Area(hole)
	}
	return a
}
