package result

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/solhycool/visualizations/internal/domain/mapping"
	"github.com/solhycool/visualizations/pkg/errors"
)

// Record groups.
const (
	GroupDecisionVariables   = "decision_variables"
	GroupControlVariables    = "control_variables"
	GroupOthers              = "others"
	GroupEnvironment         = "environment"
	GroupCoolingRequirements = "cooling_requirements"
	GroupCosts               = "costs"
	GroupOperatingRange      = "operating_range"
)

// OperatingPoint is a decoded view over one result record. The raw bytes are
// kept so the index never re-encodes a record field by field.
type OperatingPoint struct {
	raw    json.RawMessage
	groups map[string]map[string]interface{}
}

// DecodeOperatingPoint parses a record. Groups that are not JSON objects are
// ignored; numbers are kept as json.Number.
func DecodeOperatingPoint(raw []byte) (*OperatingPoint, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidRecord, "operating point is not a JSON object")
	}

	op := &OperatingPoint{
		raw:    append(json.RawMessage(nil), raw...),
		groups: make(map[string]map[string]interface{}, len(top)),
	}
	for name, body := range top {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var fields map[string]interface{}
		if err := dec.Decode(&fields); err != nil {
			continue
		}
		op.groups[name] = fields
	}
	return op, nil
}

// Raw returns the record exactly as it was read.
func (p *OperatingPoint) Raw() json.RawMessage { return p.raw }

// Groups returns the sorted group names.
func (p *OperatingPoint) Groups() []string {
	names := make([]string, 0, len(p.groups))
	for name := range p.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns the fields of a group, nil if absent.
func (p *OperatingPoint) Fields(group string) map[string]interface{} {
	return p.groups[group]
}

// Has reports whether group.name is present.
func (p *OperatingPoint) Has(group, name string) bool {
	_, ok := p.groups[group][name]
	return ok
}

// Value returns group.name as decoded, or a MissingVariable error.
func (p *OperatingPoint) Value(group, name string) (interface{}, error) {
	v, ok := p.groups[group][name]
	if !ok {
		return nil, errors.MissingVariable(group, name)
	}
	return v, nil
}

// Float returns group.name as a float64.
func (p *OperatingPoint) Float(group, name string) (float64, error) {
	v, err := p.Value(group, name)
	if err != nil {
		return 0, err
	}
	switch n := mapping.CoerceNumeric(v).(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, errors.MissingVariable(group, name).
			WithDetail(group + "." + name + " is not numeric")
	}
}

// Range returns operating_range.<name>_min and <name>_max.
func (p *OperatingPoint) Range(name string) (float64, float64, error) {
	lo, err := p.Float(GroupOperatingRange, name+"_min")
	if err != nil {
		return 0, 0, err
	}
	hi, err := p.Float(GroupOperatingRange, name+"_max")
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

//Personal.AI order the ending
