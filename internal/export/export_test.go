package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"geomeasure/internal/measure"
)

func distanceReport() Report {
	pts := []orb.Point{{0, 0}, {0, 0.01}, {0, 0.02}}
	return Report{
		Mode:   measure.ModeDistance,
		Points: pts,
		Legs: []measure.Leg{
			{From: pts[0], To: pts[1], Meters: 1113.1949},
			{From: pts[1], To: pts[2], Meters: 1113.1949},
		},
		Total: 2226.3898,
		Units: measure.UnitState{Distance: measure.Miles, Area: measure.Acres, Previous: measure.Meters},
	}
}

func TestFromIdleControl(t *testing.T) {
	_, err := FromControl(measure.New(nil, nil, measure.DefaultOptions()))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLabel(t *testing.T) {
	r := distanceReport()
	require.Equal(t, "1.38 mi", r.Label())

	r = Report{Mode: measure.ModeArea, Total: 10000, Units: measure.UnitState{Area: measure.Hectares}}
	require.Equal(t, "1.00 ha", r.Label())
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	require.Equal(t, filepath.Join("out", "distance-20240309-140506.xlsx"), Filename("out", distanceReport(), now, "xlsx"))
}

func TestWriteXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "legs.xlsx")
	require.NoError(t, WriteXLSX(p, distanceReport()))

	f, err := excelize.OpenFile(p)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{sheetName}, f.GetSheetList())
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Equal(t, "Distance (mi)", rows[0][6])
	require.Equal(t, "1", rows[1][0])
	require.Equal(t, "0.01", rows[1][4])
	require.Equal(t, []string{"distance", "1.38 mi"}, rows[len(rows)-1])

	require.ErrorIs(t, WriteXLSX(p, Report{}), ErrEmpty)
}

func TestFeature(t *testing.T) {
	f, err := Feature(distanceReport())
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{0, 0}, {0, 0.01}, {0, 0.02}}, f.Geometry)
	require.Equal(t, 2226.3898, f.Properties["meters"])

	area := Report{
		Mode:   measure.ModeArea,
		Points: []orb.Point{{0, 0}, {1, 0}, {1, 1}},
		Total:  1.2e10,
		Units:  measure.DefaultUnits(),
	}
	f, err = Feature(area)
	require.NoError(t, err)
	poly, ok := f.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Equal(t, orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, poly[0])
	require.Len(t, area.Points, 3, "input untouched")
	require.Equal(t, "area", f.Properties["mode"])
}

func TestWriteGeoJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.geojson")
	require.NoError(t, WriteGeoJSON(p, distanceReport()))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.True(t, json.Valid(b))

	fc, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	require.Equal(t, "1.38 mi", fc.Features[0].Properties["label"])
}
