package measure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertDistanceFactors(t *testing.T) {
	tests := []struct {
		from, to Unit
		in, want float64
	}{
		{Meters, Miles, 1609.34, 1609.34 * 0.000621371},
		{Meters, Feet, 1, 3.28084},
		{Miles, Meters, 1, 1609.34},
		{Miles, Feet, 1, 5280},
		{Feet, Meters, 1, 0.3048},
		{Feet, Miles, 5280, 5280 * 0.000189394},
		{Feet, Feet, 12.5, 12.5},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			got, err := ConvertDistance(tt.in, tt.from, tt.to)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, 123.45, 98765.43} {
		ft, err := ConvertDistance(v, Meters, Feet)
		require.NoError(t, err)
		back, err := ConvertDistance(ft, Feet, Meters)
		require.NoError(t, err)
		require.InDelta(t, v, back, 0.005)

		ha, err := ConvertArea(v, Acres, Hectares)
		require.NoError(t, err)
		back, err = ConvertArea(ha, Hectares, Acres)
		require.NoError(t, err)
		require.InDelta(t, v, back, 0.005)
	}
}

func TestConvertRejectsMixedKinds(t *testing.T) {
	_, err := ConvertDistance(1, Meters, Acres)
	require.ErrorIs(t, err, ErrUnknownUnit)
	_, err = ConvertArea(1, Feet, Acres)
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "1113.19 meters", FormatDistance(1113.1949, Meters))
	require.Equal(t, "0.69 mi", FormatDistance(1113.1949, Miles))
	require.Equal(t, "0.00 meters", FormatDistance(0, Meters))
	require.Equal(t, "2.47 acres", FormatArea(10000, Acres))
	require.Equal(t, "1.00 ha", FormatArea(10000, Hectares))
}

func TestParseDisplayed(t *testing.T) {
	v, u, ok := ParseDisplayed("1113.19 meters")
	require.True(t, ok)
	require.Equal(t, 1113.19, v)
	require.Equal(t, Meters, u)

	v, u, ok = ParseDisplayed("(+0.69 mi)")
	require.True(t, ok)
	require.Equal(t, 0.69, v)
	require.Equal(t, Miles, u)

	_, _, ok = ParseDisplayed("")
	require.False(t, ok)
	_, _, ok = ParseDisplayed("12 meters")
	require.False(t, ok)
	_, _, ok = ParseDisplayed("1.234 meters")
	require.False(t, ok)
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("Hectares")
	require.NoError(t, err)
	require.Equal(t, Hectares, u)
	require.True(t, u.IsArea())
	require.False(t, u.IsDistance())

	_, err = ParseUnit("parsec")
	require.ErrorIs(t, err, ErrUnknownUnit)
}
