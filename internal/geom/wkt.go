package geom

import (
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKT parses one WKT geometry per non-empty line.
func ParseWKT(s string) (Data, error) {
	var d Data
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return Data{}, fmt.Errorf("wkt line %d: %w", i+1, err)
		}
		d.Add(g)
	}
	if d.Empty() {
		return Data{}, fmt.Errorf("wkt: %w", ErrNoGeometry)
	}
	return d, nil
}

func LoadWKT(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseWKT(string(b))
}
