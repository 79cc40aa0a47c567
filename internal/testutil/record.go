package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RecordBuilder assembles an operating point result record.
type RecordBuilder struct {
	groups map[string]map[string]interface{}
}

// NewRecord returns a builder pre-filled with a complete, in-range record.
func NewRecord() *RecordBuilder {
	return &RecordBuilder{groups: map[string]map[string]interface{}{
		"decision_variables": {
			"R1": 0.3, "R2": 0.6, "qc": 20, "Tdc_out": 40.5, "Twct_out": 33.2,
		},
		"control_variables": {
			"w_fan_dc": 55.5, "w_fan_wct": 40,
		},
		"others": {
			"Tc_in": 30.1, "Tc_out": 41.7, "Twct_in": 36.4, "q_wct": 8.2, "q_dc": 11.8,
		},
		"environment": {
			"Tamb": 25, "HR": 40,
		},
		"cooling_requirements": {
			"Pth": 550, "Mv": 0.214, "Tv": 45,
		},
		"costs": {
			"Ce_dc": 1.2, "Ce_wct": 7.9, "Ce_c": 0.4, "Cw_wct": 120.5, "Ce": 9.5, "Cw": 120.5,
		},
		"operating_range": {
			"qc_min": 10, "qc_max": 30,
			"R1_min": 0, "R1_max": 1,
			"R2_min": 0, "R2_max": 1,
			"w_fan_dc_min": 0, "w_fan_dc_max": 100,
			"w_fan_wct_min": 0, "w_fan_wct_max": 100,
			"Tamb_min": 0, "Tamb_max": 50,
			"HR_min": 0, "HR_max": 100,
			"Twct_out_min": 20, "Twct_out_max": 45,
			"Tdc_out_min": 20, "Tdc_out_max": 55,
			"Pth_min": 100, "Pth_max": 1000,
			"Ce_min": 0, "Ce_max": 9,
			"Cw_max": 300,
		},
	}}
}

// Set assigns group.name, creating the group if needed.
func (b *RecordBuilder) Set(group, name string, value interface{}) *RecordBuilder {
	if b.groups[group] == nil {
		b.groups[group] = make(map[string]interface{})
	}
	b.groups[group][name] = value
	return b
}

// Delete removes group.name.
func (b *RecordBuilder) Delete(group, name string) *RecordBuilder {
	delete(b.groups[group], name)
	return b
}

// JSON encodes the record.
func (b *RecordBuilder) JSON() []byte {
	data, err := json.Marshal(b.groups)
	if err != nil {
		panic(err)
	}
	return data
}

// WriteResultFile writes the record as dir/name and returns its path.
func WriteResultFile(t testing.TB, dir, name string, b *RecordBuilder) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b.JSON(), 0o644))
	return path
}

//Personal.AI order the ending
