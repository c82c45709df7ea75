package geom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupported = errors.New("unsupported file type")

// Supported reports whether Load knows the extension of name.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".geojson", ".json", ".csv", ".kml", ".wkt", ".txt", ".xlsx":
		return true
	}
	return false
}

// Load picks a loader by file extension. Plain .txt files are read as WKT.
func Load(path string) (Data, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".xlsx":
		return LoadXLSX(path)
	case ".wkt", ".txt":
		return LoadWKT(path)
	}
	if _, err := os.Stat(path); err != nil {
		return Data{}, err
	}
	return Data{}, ErrUnsupported
}
