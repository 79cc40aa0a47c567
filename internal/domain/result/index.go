package result

import (
	"encoding/json"
	"sort"

	"github.com/solhycool/visualizations/pkg/errors"
)

// Index maps condition key → point key → record. Records are stored raw and
// replaced whole.
type Index map[string]map[string]json.RawMessage

// PutResult reports what Put changed.
type PutResult struct {
	NewCondition bool
	NewPoint     bool
}

// Put inserts or replaces the record under key.
func (idx Index) Put(key Key, record json.RawMessage) PutResult {
	var res PutResult
	points, ok := idx[key.Condition]
	if !ok {
		points = make(map[string]json.RawMessage)
		idx[key.Condition] = points
		res.NewCondition = true
	}
	if _, ok := points[key.Point]; !ok {
		res.NewPoint = true
	}
	points[key.Point] = record
	return res
}

// Get returns the record stored under key.
func (idx Index) Get(key Key) (json.RawMessage, bool) {
	rec, ok := idx[key.Condition][key.Point]
	return rec, ok
}

// Conditions returns the sorted condition keys.
func (idx Index) Conditions() []string {
	out := make([]string, 0, len(idx))
	for c := range idx {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Keys returns every (condition, point) pair in sorted order.
func (idx Index) Keys() []Key {
	var keys []Key
	for _, c := range idx.Conditions() {
		points := make([]string, 0, len(idx[c]))
		for p := range idx[c] {
			points = append(points, p)
		}
		sort.Strings(points)
		for _, p := range points {
			keys = append(keys, Key{Condition: c, Point: p})
		}
	}
	return keys
}

// Len returns the number of operating points across all conditions.
func (idx Index) Len() int {
	n := 0
	for _, points := range idx {
		n += len(points)
	}
	return n
}

// Marshal encodes the index with 4-space indentation. Map keys are sorted,
// so an unchanged index always encodes to the same bytes.
func (idx Index) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(idx, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "encode result index")
	}
	return data, nil
}

// ParseIndex decodes a consolidated index document.
func ParseIndex(data []byte) (Index, error) {
	idx := Index{}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "decode result index")
	}
	if idx == nil {
		idx = Index{}
	}
	return idx, nil
}

//Personal.AI order the ending
