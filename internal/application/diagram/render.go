package diagram

import (
	"fmt"

	"github.com/solhycool/visualizations/internal/domain/mapping"
	"github.com/solhycool/visualizations/internal/domain/result"
	"github.com/solhycool/visualizations/internal/infrastructure/svg"
)

// renderer applies one operating point to one document.
type renderer struct {
	doc    *svg.Document
	op     *result.OperatingPoint
	layout FacilityLayout
	assets AssetStore
}

// LineWidths are the stroke widths of the split network.
type LineWidths struct {
	Main            float64
	Recirculation   float64
	Complement      float64
	ComplementRest  float64
	ComplementSplit float64
	Tower           float64
}

// ComputeLineWidths derives every branch width from the loop flow and the
// two split ratios.
func ComputeLineWidths(flow, flowMin, flowMax, firstSplit, secondSplit, minWidth, maxWidth float64) (LineWidths, error) {
	main, err := mapping.Scale(flow, flowMin, flowMax, minWidth, maxWidth)
	if err != nil {
		return LineWidths{}, err
	}
	w := LineWidths{Main: main}
	w.Recirculation = main * firstSplit
	w.Complement = main * (1 - firstSplit)
	w.ComplementRest = w.Complement * (1 - secondSplit)
	w.ComplementSplit = w.Complement * secondSplit
	w.Tower = w.Recirculation + w.ComplementSplit
	return w, nil
}

func (r *renderer) lines() error {
	l := r.layout.Lines
	flow, err := r.op.Float(l.Group, l.Flow)
	if err != nil {
		return err
	}
	flowMin, flowMax, err := r.op.Range(l.Flow)
	if err != nil {
		return err
	}
	first, err := r.op.Float(l.Group, l.FirstSplit)
	if err != nil {
		return err
	}
	second, err := r.op.Float(l.Group, l.SecondSplit)
	if err != nil {
		return err
	}

	w, err := ComputeLineWidths(flow, flowMin, flowMax, first, second, l.MinWidth, l.MaxWidth)
	if err != nil {
		return err
	}

	for _, set := range []struct {
		cells []string
		width float64
	}{
		{l.Main, w.Main},
		{l.Recirculation, w.Recirculation},
		{l.Complement, w.Complement},
		{l.ComplementRest, w.ComplementRest},
		{l.ComplementSplit, w.ComplementSplit},
		{l.RecirculationJoin, w.Tower},
	} {
		for _, id := range set.cells {
			cell, err := r.doc.Cell(id)
			if err != nil {
				return err
			}
			cell.SetStrokeWidth(set.width)
		}
	}
	return nil
}

// icon resizes cell to size, labels it and optionally draws its boundary.
func (r *renderer) icon(cell *svg.Cell, iconID string, size float64, label string, boundaryMax *float64) error {
	pos, err := cell.ResizeIcon(iconID, size)
	if err != nil {
		return err
	}
	cell.SetText(label)
	if boundaryMax != nil {
		center := svg.Point{X: pos.X + size/2, Y: pos.Y + size/2}
		cell.InsertBoundary(iconID, center, r.layout.BoundarySize, fmt.Sprintf("%.0f", *boundaryMax))
	}
	return nil
}

func (r *renderer) icons() error {
	for _, spec := range r.layout.Icons {
		cell, err := r.doc.Cell(spec.Cell)
		if err != nil {
			return err
		}
		raw, err := r.op.Value(spec.Group, spec.Variable)
		if err != nil {
			return err
		}
		value, err := r.op.Float(spec.Group, spec.Variable)
		if err != nil {
			return err
		}
		lo, hi, err := r.op.Range(spec.Variable)
		if err != nil {
			return err
		}
		size, err := mapping.Scale(value, lo, hi, r.layout.IconMinSize, r.layout.IconMaxSize)
		if err != nil {
			return err
		}

		var boundary *float64
		if spec.Boundary {
			boundary = &hi
		}
		if err := r.icon(cell, spec.Variable, size, mapping.FormatLabel(raw, spec.Unit), boundary); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) texts() error {
	for _, spec := range r.layout.Texts {
		if spec.Optional && (!r.doc.HasCell(spec.Cell) || !r.op.Has(spec.Group, spec.Variable)) {
			continue
		}
		cell, err := r.doc.Cell(spec.Cell)
		if err != nil {
			return err
		}
		raw, err := r.op.Value(spec.Group, spec.Variable)
		if err != nil {
			return err
		}
		cell.SetText(mapping.FormatLabel(raw, spec.Unit))
	}
	return nil
}

func (r *renderer) cooling() error {
	spec := r.layout.Cooling
	cell, err := r.doc.Cell(spec.Cell)
	if err != nil {
		return err
	}
	power, err := r.op.Float(spec.Group, spec.Power)
	if err != nil {
		return err
	}
	flow, err := r.op.Float(spec.Group, spec.Flow)
	if err != nil {
		return err
	}
	temp, err := r.op.Float(spec.Group, spec.Temperature)
	if err != nil {
		return err
	}
	lo, hi, err := r.op.Range(spec.Power)
	if err != nil {
		return err
	}
	size, err := mapping.Scale(power, lo, hi, r.layout.IconMinSize, r.layout.IconMaxSize)
	if err != nil {
		return err
	}
	label := fmt.Sprintf(spec.LabelFormat, power, flow, temp)
	return r.icon(cell, spec.Cell, size, label, &hi)
}

func (r *renderer) costs() error {
	for _, spec := range r.layout.Costs {
		cell, err := r.doc.Cell(spec.Cell)
		if err != nil {
			return err
		}
		raw, err := r.op.Value(result.GroupCosts, spec.Variable)
		if err != nil {
			return err
		}
		value, err := r.op.Float(result.GroupCosts, spec.Variable)
		if err != nil {
			return err
		}
		lo := 0.0
		if spec.MinKey != "" {
			if lo, err = r.op.Float(result.GroupOperatingRange, spec.MinKey); err != nil {
				return err
			}
		}
		hi, err := r.op.Float(result.GroupOperatingRange, spec.MaxKey)
		if err != nil {
			return err
		}

		level := mapping.ClassifyLevel(value, lo, hi)
		url, err := r.assets.DataURL(fmt.Sprintf(spec.AssetFormat, level))
		if err != nil {
			return err
		}
		cell.SetImage(url)

		label := mapping.FormatLabel(raw, spec.Unit)
		if err := r.icon(cell, spec.Variable, r.layout.CostIconSize, label, nil); err != nil {
			return err
		}
	}
	return nil
}

//Personal.AI order the ending
