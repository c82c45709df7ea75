// Package export writes finished measurements to disk.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/xuri/excelize/v2"

	"geomeasure/internal/measure"
)

var ErrEmpty = errors.New("export: nothing measured")

const sheetName = "Measurement"

// Report is a frozen measurement.
type Report struct {
	Mode   measure.Mode
	Points []orb.Point
	Legs   []measure.Leg
	// Total is meters for distance and square meters for area.
	Total float64
	Units measure.UnitState
}

// FromControl captures the live session of c.
func FromControl(c *measure.Control) (Report, error) {
	snap := c.Session()
	if len(snap.Points) == 0 {
		return Report{}, ErrEmpty
	}
	return Report{
		Mode:   snap.Mode,
		Points: snap.Points,
		Legs:   c.Legs(),
		Total:  snap.Total,
		Units:  c.Units(),
	}, nil
}

// Label is the total in the selected unit.
func (r Report) Label() string {
	if r.Mode == measure.ModeArea {
		return measure.FormatArea(r.Total, r.Units.Area)
	}
	return measure.FormatDistance(r.Total, r.Units.Distance)
}

// Filename builds a timestamped file name inside dir.
func Filename(dir string, r Report, now time.Time, ext string) string {
	name := fmt.Sprintf("%s-%s.%s", strings.ToLower(r.Mode.String()), now.Format("20060102-150405"), ext)
	return filepath.Join(dir, name)
}

// WriteXLSX writes one row per leg followed by a total row.
func WriteXLSX(path string, r Report) error {
	if len(r.Points) == 0 {
		return ErrEmpty
	}
	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	u := r.Units.Distance
	headers := []interface{}{
		"Leg", "From Lon", "From Lat", "To Lon", "To Lat",
		"Distance (m)", "Distance (" + string(u) + ")",
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}
	rowNum := 2
	for i, l := range r.Legs {
		conv, err := measure.ConvertDistance(l.Meters, measure.Meters, u)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		row := []interface{}{
			i + 1, l.From.Lon(), l.From.Lat(), l.To.Lon(), l.To.Lat(),
			l.Meters, conv,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
		rowNum++
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum+1)
	if err := sw.SetRow(cell, []interface{}{r.Mode.String(), r.Label()}); err != nil {
		return err
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")
	return f.SaveAs(path)
}

// Feature turns the report into a LineString or, for areas, a closed
// Polygon feature.
func Feature(r Report) (*geojson.Feature, error) {
	if len(r.Points) == 0 {
		return nil, ErrEmpty
	}
	var g orb.Geometry
	if r.Mode == measure.ModeArea && len(r.Points) >= 3 {
		ring := append(orb.Ring{}, r.Points...)
		ring = append(ring, r.Points[0])
		g = orb.Polygon{ring}
	} else {
		g = orb.LineString(append([]orb.Point{}, r.Points...))
	}
	f := geojson.NewFeature(g)
	f.Properties["mode"] = r.Mode.String()
	f.Properties["label"] = r.Label()
	if r.Mode == measure.ModeArea {
		f.Properties["square_meters"] = r.Total
	} else {
		f.Properties["meters"] = r.Total
	}
	return f, nil
}

// WriteGeoJSON writes a FeatureCollection holding the report feature.
func WriteGeoJSON(path string, r Report) error {
	feat, err := Feature(r)
	if err != nil {
		return err
	}
	fc := geojson.NewFeatureCollection()
	fc.Append(feat)
	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
