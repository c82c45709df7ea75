package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns points.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func ReadCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, err
	}
	d, err := pointRows(recs)
	if err != nil {
		return Data{}, fmt.Errorf("csv: %w", err)
	}
	return d, nil
}

// pointRows reads a header row followed by records holding a coordinate
// pair. Rows that do not parse are skipped.
func pointRows(recs [][]string) (Data, error) {
	if len(recs) == 0 {
		return Data{}, errors.New("no rows")
	}
	idxLat, idxLon := -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Data{}, errors.New("latitude/longitude columns not found")
	}
	var d Data
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := parseCoord(row[idxLon])
		lat, err2 := parseCoord(row[idxLat])
		if err1 != nil || err2 != nil {
			continue
		}
		d.Add(orb.Point{lon, lat})
	}
	if d.Empty() {
		return Data{}, errors.New("no valid points parsed")
	}
	return d, nil
}

// parseCoord accepts both 40.5 and 40,5.
func parseCoord(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}
