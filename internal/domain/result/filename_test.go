package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhycool/visualizations/pkg/errors"
)

func TestParseFilename(t *testing.T) {
	key, err := ParseFilename("ptop_Tamb25_HR40_Tv90_Pth500_R10_R250_mc12.0_Tdc45.0_Twct38.0.json")
	require.NoError(t, err)
	assert.Equal(t, "Tamb25_HR40_Tv90_Pth500", key.Condition)
	assert.Equal(t, "R10_R250_mc12.0_Tdc45.0_Twct38.0", key.Point)
	assert.Equal(t, "Tamb25_HR40_Tv90_Pth500_R10_R250_mc12.0_Tdc45.0_Twct38.0", key.String())
}

func TestParseFilename_FirstMarkerSplits(t *testing.T) {
	key, err := ParseFilename("ptop_A_R1x_R1y.json")
	require.NoError(t, err)
	assert.Equal(t, "A", key.Condition)
	assert.Equal(t, "R1x_R1y", key.Point)
}

func TestParseFilename_Malformed(t *testing.T) {
	for _, name := range []string{
		"ptop_Tamb25_HR40.json",
		"ptop__R10.json",
		"ptop_.json",
		"results.json",
		"ptop_A_R1.txt",
	} {
		_, err := ParseFilename(name)
		require.Error(t, err, name)
		assert.True(t, errors.IsMalformedFilename(err), name)
	}
}

func TestKey_FilenameRoundTrip(t *testing.T) {
	key := Key{Condition: "Tamb30_HR20", Point: "R10.5_R20"}
	parsed, err := ParseFilename(key.Filename())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestIsResultFile(t *testing.T) {
	assert.True(t, IsResultFile("ptop_x.json"))
	assert.False(t, IsResultFile("results.json"))
	assert.False(t, IsResultFile("ptop_x.json.tmp"))
}

//Personal.AI order the ending
