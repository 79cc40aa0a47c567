package summary

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/solhycool/visualizations/internal/domain/mapping"
	"github.com/solhycool/visualizations/pkg/errors"
)

// Leading columns of the flattened export.
const (
	ColumnCondition = "condition"
	ColumnPoint     = "point"
	ColumnPareto    = "pareto"
)

// Table is the flattened index: one row per operating point, one column per
// numeric record field named <group>_<field>.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Flatten builds the table from decoded points. Field columns are sorted;
// a field missing from a record leaves an empty cell.
func Flatten(points []Point) *Table {
	values := make([]map[string]string, len(points))
	seen := make(map[string]bool)
	for i, p := range points {
		values[i] = make(map[string]string)
		for _, group := range p.Record.Groups() {
			for name, raw := range p.Record.Fields(group) {
				cell, ok := numericCell(raw)
				if !ok {
					continue
				}
				column := group + "_" + name
				values[i][column] = cell
				seen[column] = true
			}
		}
	}

	fields := make([]string, 0, len(seen))
	for column := range seen {
		fields = append(fields, column)
	}
	sort.Strings(fields)

	t := &Table{Columns: append([]string{ColumnCondition, ColumnPoint, ColumnPareto}, fields...)}
	for i, p := range points {
		row := make([]string, 0, len(t.Columns))
		row = append(row, p.Key.Condition, p.Key.Point, strconv.FormatBool(p.Pareto))
		for _, column := range fields {
			row = append(row, values[i][column])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func numericCell(raw interface{}) (string, bool) {
	switch v := mapping.CoerceNumeric(raw).(type) {
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// WriteCSV writes the header and every row.
func (t *Table) WriteCSV(w io.Writer) error {
	out := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := out.Write(t.Columns); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "write export header")
	}
	for _, row := range t.Rows {
		if err := out.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "write export row")
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "flush export")
	}
	return nil
}

//Personal.AI order the ending
