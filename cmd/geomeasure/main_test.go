package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"geomeasure/internal/measure"
)

func TestConvertLabel(t *testing.T) {
	tests := []struct {
		text, from, to string
		want           string
	}{
		{"1113.19 meters", "", "mi", "0.69 mi"},
		{"(+0.69 mi)", "", "ft", "3643.20 ft"},
		{"2.47", "acres", "ha", "1.00 ha"},
		{"1.00 ha", "", "acres", "2.47 acres"},
	}
	for _, tt := range tests {
		got, err := convertLabel(tt.text, tt.from, tt.to)
		require.NoError(t, err, tt.text)
		require.Equal(t, tt.want, got, tt.text)
	}

	_, err := convertLabel("12", "", "mi")
	require.ErrorIs(t, err, errNoValue)
	_, err = convertLabel("12.00", "", "mi")
	require.Error(t, err)
	_, err = convertLabel("1.00 mi", "", "ha")
	require.ErrorIs(t, err, measure.ErrUnknownUnit)
	_, err = convertLabel("1.00 mi", "", "furlong")
	require.ErrorIs(t, err, measure.ErrUnknownUnit)
}

func TestGeometryTotals(t *testing.T) {
	require.InDelta(t, 2226.39, lineLength(orb.LineString{{0, 0}, {0, 0.01}, {0, 0.02}}), 0.01)

	outer := orb.Ring{{0, 0}, {0.02, 0}, {0.02, 0.02}, {0, 0.02}, {0, 0}}
	hole := orb.Ring{{0.005, 0.005}, {0.015, 0.005}, {0.015, 0.015}, {0.005, 0.015}, {0.005, 0.005}}
	full := polygonArea(orb.Polygon{outer})
	require.InDelta(t, full*0.75, polygonArea(orb.Polygon{outer, hole}), full*0.001)
	require.Zero(t, polygonArea(nil))
}

func TestMeasureCommand(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "path.wkt")
	require.NoError(t, os.WriteFile(p, []byte("LINESTRING(0 0, 0 0.01)\n"), 0o644))

	configPath = filepath.Join(dir, "config.yaml")
	t.Cleanup(func() { configPath = "" })
	require.NoError(t, os.WriteFile(configPath, []byte("units: {distance: meters}\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"measure", p})
	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "line 1: 1113.19 meters\n", out.String())
}
