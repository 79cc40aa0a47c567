package summary

import (
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"

	"github.com/solhycool/visualizations/pkg/errors"
)

// ConditionSummary aggregates the points of one operating condition.
type ConditionSummary struct {
	Condition      string  `csv:"condition" json:"condition"`
	Points         int     `csv:"points" json:"points"`
	Pareto         int     `csv:"pareto" json:"pareto"`
	MinElectricity float64 `csv:"min_ce" json:"min_ce"`
	MaxElectricity float64 `csv:"max_ce" json:"max_ce"`
	MinWater       float64 `csv:"min_cw" json:"min_cw"`
	MaxWater       float64 `csv:"max_cw" json:"max_cw"`
}

// Summarize groups points by condition, in the order they are given.
// Consumption bounds only cover points with costs and stay zero otherwise.
func Summarize(points []Point) []ConditionSummary {
	var out []ConditionSummary
	for start := 0; start < len(points); {
		end := start
		for end < len(points) && points[end].Key.Condition == points[start].Key.Condition {
			end++
		}
		out = append(out, summarizeCondition(points[start:end]))
		start = end
	}
	return out
}

func summarizeCondition(points []Point) ConditionSummary {
	s := ConditionSummary{Condition: points[0].Key.Condition, Points: len(points)}
	var ce, cw []float64
	for _, p := range points {
		if p.Pareto {
			s.Pareto++
		}
		if p.HasCosts {
			ce = append(ce, p.Electricity)
			cw = append(cw, p.Water)
		}
	}
	if len(ce) > 0 {
		s.MinElectricity, s.MaxElectricity = floats.Min(ce), floats.Max(ce)
		s.MinWater, s.MaxWater = floats.Min(cw), floats.Max(cw)
	}
	return s
}

// WriteSummaryCSV writes one row per condition with a header.
func WriteSummaryCSV(w io.Writer, rows []ConditionSummary) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "write summary csv")
	}
	return nil
}

//Personal.AI order the ending
