package measure

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a measurement unit code as shown in the tooltip.
type Unit string

const (
	Meters   Unit = "meters"
	Miles    Unit = "mi"
	Feet     Unit = "ft"
	Acres    Unit = "acres"
	Hectares Unit = "ha"
)

// SquareMetersToAcres converts a geodesic area result into acres.
const SquareMetersToAcres = 0.000247105

var ErrUnknownUnit = errors.New("unknown unit")

// distanceFactors holds one direct factor per unit pair. Conversions never
// chain through an intermediate unit.
var distanceFactors = map[Unit]map[Unit]float64{
	Meters: {Meters: 1, Miles: 0.000621371, Feet: 3.28084},
	Miles:  {Miles: 1, Meters: 1609.34, Feet: 5280},
	Feet:   {Feet: 1, Meters: 0.3048, Miles: 0.000189394},
}

var areaFactors = map[Unit]map[Unit]float64{
	Acres:    {Acres: 1, Hectares: 0.404686},
	Hectares: {Hectares: 1, Acres: 2.47105},
}

// DistanceUnits lists the distance units in selector order.
var DistanceUnits = []Unit{Miles, Meters, Feet}

// AreaUnits lists the area units in selector order.
var AreaUnits = []Unit{Acres, Hectares}

func (u Unit) IsDistance() bool {
	_, ok := distanceFactors[u]
	return ok
}

func (u Unit) IsArea() bool {
	_, ok := areaFactors[u]
	return ok
}

// Label is the human name used in unit selectors.
func (u Unit) Label() string {
	switch u {
	case Meters:
		return "Meters"
	case Miles:
		return "Miles"
	case Feet:
		return "Feet"
	case Acres:
		return "Acres"
	case Hectares:
		return "Hectares"
	}
	return string(u)
}

// ParseUnit maps a unit code or label to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "meters", "meter", "m", "Meters":
		return Meters, nil
	case "mi", "mile", "miles", "Miles":
		return Miles, nil
	case "ft", "feet", "foot", "Feet":
		return Feet, nil
	case "acres", "acre", "Acres":
		return Acres, nil
	case "ha", "hectare", "hectares", "Hectares":
		return Hectares, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// ConvertDistance converts v between two distance units.
func ConvertDistance(v float64, from, to Unit) (float64, error) {
	row, ok := distanceFactors[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a distance unit", ErrUnknownUnit, from)
	}
	f, ok := row[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a distance unit", ErrUnknownUnit, to)
	}
	return v * f, nil
}

// ConvertArea converts v between two area units.
func ConvertArea(v float64, from, to Unit) (float64, error) {
	row, ok := areaFactors[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not an area unit", ErrUnknownUnit, from)
	}
	f, ok := row[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not an area unit", ErrUnknownUnit, to)
	}
	return v * f, nil
}

// FormatValue renders v with two decimals followed by the unit code.
func FormatValue(v float64, u Unit) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + string(u)
}

// FormatDistance renders a raw meter value in unit u.
func FormatDistance(meters float64, u Unit) string {
	v, err := ConvertDistance(meters, Meters, u)
	if err != nil {
		return FormatValue(meters, Meters)
	}
	return FormatValue(v, u)
}

// FormatArea renders a raw square meter value in unit u.
func FormatArea(squareMeters float64, u Unit) string {
	acres := squareMeters * SquareMetersToAcres
	v, err := ConvertArea(acres, Acres, u)
	if err != nil {
		return FormatValue(acres, Acres)
	}
	return FormatValue(v, u)
}

var displayedValue = regexp.MustCompile(`^\(?\+?(\d+\.\d\d)(?:\s+([A-Za-z]+))?\)?$`)

// ParseDisplayed recovers the number and unit from a formatted label such
// as "1113.19 meters" or "(+0.69 mi)". ok is false when the text holds no
// two-decimal number.
func ParseDisplayed(text string) (v float64, u Unit, ok bool) {
	m := displayedValue.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	if m[2] != "" {
		if pu, err := ParseUnit(m[2]); err == nil {
			u = pu
		}
	}
	return v, u, true
}

// UnitState is the user's unit selection. It outlives sessions.
type UnitState struct {
	Distance Unit
	Area     Unit
	Previous Unit
}

// DefaultUnits starts in meters and acres.
func DefaultUnits() UnitState {
	return UnitState{Distance: Meters, Area: Acres, Previous: Meters}
}
