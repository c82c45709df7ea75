package geom

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	Ring kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlGeometry struct {
	Points   []kmlCoords   `xml:"Point"`
	Lines    []kmlCoords   `xml:"LineString"`
	Polygons []kmlPolygon  `xml:"Polygon"`
	Multi    []kmlGeometry `xml:"MultiGeometry"`
}

type kmlPlacemark struct {
	kmlGeometry
}

type kmlContainer struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlContainer `xml:"Folder"`
	Documents  []kmlContainer `xml:"Document"`
}

// LoadKML extracts Point, LineString and Polygon placemarks from a KML
// file, descending into Documents, Folders and MultiGeometry.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseKML(b)
}

func ParseKML(b []byte) (Data, error) {
	var doc kmlContainer
	if err := xml.Unmarshal(b, &doc); err != nil {
		return Data{}, fmt.Errorf("kml: %w", err)
	}
	var d Data
	doc.walk(&d)
	if d.Empty() {
		return Data{}, fmt.Errorf("kml: %w", ErrNoGeometry)
	}
	return d, nil
}

func (c kmlContainer) walk(d *Data) {
	for _, pm := range c.Placemarks {
		pm.add(d)
	}
	for _, f := range c.Folders {
		f.walk(d)
	}
	for _, sub := range c.Documents {
		sub.walk(d)
	}
}

func (g kmlGeometry) add(d *Data) {
	for _, p := range g.Points {
		for _, pt := range parseKMLCoords(p.Coordinates) {
			d.Add(pt)
		}
	}
	for _, l := range g.Lines {
		d.Add(orb.LineString(parseKMLCoords(l.Coordinates)))
	}
	for _, p := range g.Polygons {
		outer := orb.Ring(parseKMLCoords(p.Outer.Ring.Coordinates))
		if len(outer) == 0 {
			continue
		}
		poly := orb.Polygon{outer}
		for _, in := range p.Inner {
			poly = append(poly, orb.Ring(parseKMLCoords(in.Ring.Coordinates)))
		}
		d.Add(poly)
	}
	for _, m := range g.Multi {
		m.add(d)
	}
}

// parseKMLCoords splits whitespace separated "lon,lat[,alt]" tuples,
// skipping malformed ones.
func parseKMLCoords(s string) []orb.Point {
	var pts []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(vals[0], 64)
		lat, err2 := strconv.ParseFloat(vals[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, orb.Point{lon, lat})
	}
	return pts
}
