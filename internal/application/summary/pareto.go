// Package summary derives tabular views of the consolidated index: the
// flattened export, the Pareto front per operating condition and
// per-condition consumption statistics.
package summary

import (
	"github.com/solhycool/visualizations/internal/domain/result"
)

// Consumption variables. Totals fall back to the sum of their parts.
var (
	electricityTotal = "Ce"
	electricityParts = []string{"Ce_dc", "Ce_wct", "Ce_c"}
	waterTotal       = "Cw"
	waterParts       = []string{"Cw_wct"}
)

// Point is one operating point reduced to its two consumptions.
type Point struct {
	Key         result.Key
	Record      *result.OperatingPoint
	Electricity float64
	Water       float64
	// HasCosts is false when either consumption could not be derived; such
	// points never sit on the Pareto front.
	HasCosts bool
	Pareto   bool
}

// consumption returns the total or, when absent, the sum of the parts that
// are present.
func consumption(op *result.OperatingPoint, total string, parts []string) (float64, bool) {
	if v, err := op.Float(result.GroupCosts, total); err == nil {
		return v, true
	}
	sum, found := 0.0, false
	for _, name := range parts {
		if v, err := op.Float(result.GroupCosts, name); err == nil {
			sum += v
			found = true
		}
	}
	return sum, found
}

// Points decodes every record of idx in key order and flags the Pareto front
// of each condition.
func Points(idx result.Index) ([]Point, error) {
	keys := idx.Keys()
	points := make([]Point, 0, len(keys))
	start := 0
	for i, key := range keys {
		raw, _ := idx.Get(key)
		op, err := result.DecodeOperatingPoint(raw)
		if err != nil {
			return nil, err
		}
		p := Point{Key: key, Record: op}
		ce, okE := consumption(op, electricityTotal, electricityParts)
		cw, okW := consumption(op, waterTotal, waterParts)
		p.Electricity, p.Water, p.HasCosts = ce, cw, okE && okW
		points = append(points, p)

		if i == len(keys)-1 || keys[i+1].Condition != key.Condition {
			MarkPareto(points[start:])
			start = len(points)
		}
	}
	return points, nil
}

// MarkPareto flags the points no other point dominates. A point dominates
// another when it consumes no more of both and strictly less of one.
func MarkPareto(points []Point) {
	for i := range points {
		points[i].Pareto = points[i].HasCosts
		if !points[i].HasCosts {
			continue
		}
		for j := range points {
			if i == j || !points[j].HasCosts {
				continue
			}
			if dominates(points[j], points[i]) {
				points[i].Pareto = false
				break
			}
		}
	}
}

func dominates(a, b Point) bool {
	return a.Electricity <= b.Electricity && a.Water <= b.Water &&
		(a.Electricity < b.Electricity || a.Water < b.Water)
}

//Personal.AI order the ending
