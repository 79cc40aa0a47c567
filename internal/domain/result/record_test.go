package result

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhycool/visualizations/pkg/errors"
)

const sampleRecord = `{
  "decision_variables": {"R1": 0.5, "qc": 20},
  "operating_range": {"qc_min": 10, "qc_max": 30},
  "meta": "free text",
  "costs": {"label": "high"}
}`

func TestDecodeOperatingPoint(t *testing.T) {
	op, err := DecodeOperatingPoint([]byte(sampleRecord))
	require.NoError(t, err)

	assert.Equal(t, []string{"costs", "decision_variables", "operating_range"}, op.Groups())
	assert.JSONEq(t, sampleRecord, string(op.Raw()))

	v, err := op.Value(GroupDecisionVariables, "qc")
	require.NoError(t, err)
	assert.Equal(t, json.Number("20"), v)

	f, err := op.Float(GroupDecisionVariables, "R1")
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)
	assert.True(t, op.Has(GroupDecisionVariables, "R1"))
	assert.False(t, op.Has(GroupOthers, "Tc_in"))
}

func TestDecodeOperatingPoint_NotObject(t *testing.T) {
	_, err := DecodeOperatingPoint([]byte(`[1,2]`))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRecord))
}

func TestOperatingPoint_MissingVariable(t *testing.T) {
	op, err := DecodeOperatingPoint([]byte(sampleRecord))
	require.NoError(t, err)

	_, err = op.Float(GroupEnvironment, "Tamb")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingVariable))

	_, err = op.Float(GroupCosts, "label")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingVariable))
}

func TestOperatingPoint_Range(t *testing.T) {
	op, err := DecodeOperatingPoint([]byte(sampleRecord))
	require.NoError(t, err)

	lo, hi, err := op.Range("qc")
	require.NoError(t, err)
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 30.0, hi)

	_, _, err = op.Range("R2")
	assert.Error(t, err)
}

//Personal.AI order the ending
