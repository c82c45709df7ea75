package measure

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestGeodesicArea(t *testing.T) {
	g := Geodesic{}
	require.Zero(t, g.Area([]orb.Point{{0, 0}, {1, 1}}))

	open := []orb.Point{{0, 0}, {0, 0.01}, {0.01, 0.01}, {0.01, 0}}
	closed := append(append([]orb.Point{}, open...), open[0])
	require.InDelta(t, g.Area(open), g.Area(closed), 1e-6)

	// roughly 1113m x 1113m near the equator
	require.InDelta(t, 1.239e6, g.Area(open), 0.01e6)

	reversed := []orb.Point{open[3], open[2], open[1], open[0]}
	require.InDelta(t, g.Area(open), g.Area(reversed), 1e-6)
}

func TestWouldSelfIntersect(t *testing.T) {
	tests := []struct {
		name string
		ring []orb.Point
		next orb.Point
		want bool
	}{
		{"too short", []orb.Point{{0, 0}}, orb.Point{1, 1}, false},
		{"triangle", []orb.Point{{0, 0}, {1, 0}}, orb.Point{1, 1}, false},
		{"square", []orb.Point{{0, 0}, {1, 0}, {1, 1}}, orb.Point{0, 1}, false},
		{"bowtie", []orb.Point{{0, 0}, {1, 1}, {1, 0}}, orb.Point{0, 1}, true},
		{"new edge crosses", []orb.Point{{0, 0}, {4, 0}, {4, 4}, {2, 4}}, orb.Point{2, -1}, true},
		{"closing edge crosses", []orb.Point{{0, 0}, {4, 0}, {4, 4}}, orb.Point{8, 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, wouldSelfIntersect(tt.ring, tt.next))
		})
	}
}
