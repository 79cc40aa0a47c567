// Package mapping holds the pure value-to-visual functions used by the diagram
// renderer: affine scaling, three-level classification and label formatting.
package mapping

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solhycool/visualizations/pkg/errors"
)

// Level is a three-way classification of a value inside its range.
type Level int

const (
	LevelLow Level = iota + 1
	LevelMedium
	LevelHigh
)

// UnitDegreeCelsius is rendered as DegreeGlyph.
const (
	UnitDegreeCelsius = "degree_celsius"
	DegreeGlyph       = "⁰C"
)

// Scale maps value from [domainMin, domainMax] onto [rangeMin, rangeMax].
// Values outside the domain extrapolate linearly.
func Scale(value, domainMin, domainMax, rangeMin, rangeMax float64) (float64, error) {
	if domainMax == domainMin {
		return 0, errors.InvalidRange(domainMin, domainMax)
	}
	return (rangeMax-rangeMin)/(domainMax-domainMin)*(value-domainMin) + rangeMin, nil
}

// ClassifyLevel splits [min, max] into three equal thirds. Edges classify to
// the lower level and out-of-range values are not clamped.
func ClassifyLevel(value, min, max float64) Level {
	span := max - min
	switch {
	case value < min+span/3:
		return LevelLow
	case value < min+2*span/3:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// RoundToSignificantDigit truncates n toward zero at the order of magnitude
// of its leading digit: 1234 → 1000, 0.0734 → 0.07, -56 → -50.
func RoundToSignificantDigit(n float64) float64 {
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	d := decimal.NewFromFloat(n)
	digits := int32(len(new(big.Int).Abs(d.Coefficient()).String()))
	magnitude := d.Exponent() + digits - 1

	f, _ := d.Shift(-magnitude).Truncate(0).Shift(magnitude).Float64()
	return f
}

// CoerceNumeric returns value as int64 or float64 when it holds a number,
// otherwise value unchanged. JSON integers stay integers.
func CoerceNumeric(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if !strings.ContainsAny(v.String(), ".eE") {
			if i, err := v.Int64(); err == nil {
				return i
			}
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
		return v
	case float32:
		return float64(v)
	case int:
		return int64(v)
	case int32:
		return int64(v)
	default:
		return value
	}
}

// FormatValue renders integers and strings as is and anything numeric
// through RoundToSignificantDigit.
func FormatValue(value interface{}) string {
	switch v := CoerceNumeric(value).(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(RoundToSignificantDigit(v), 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// FormatLabel builds "<value> <unit>".
func FormatLabel(value interface{}, unit string) string {
	if unit == UnitDegreeCelsius {
		unit = DegreeGlyph
	}
	return FormatValue(value) + " " + unit
}

//Personal.AI order the ending
