package localfs

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhycool/visualizations/pkg/errors"
)

// failAfterHalf writes half of data and then fails as a full disk would.
func failAfterHalf(data []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		if _, err := w.Write(data[:len(data)/2]); err != nil {
			return err
		}
		return syscall.ENOSPC
	}
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteFile_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")

	require.NoError(t, WriteFile(path, []byte("first"), 0o644))
	require.NoError(t, WriteFile(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	assert.Equal(t, []string{"results.json"}, entries(t, dir))
}

func TestWriteAtomic_FailedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A_R10.svg")

	err := WriteAtomic(path, 0o644, failAfterHalf([]byte("<svg></svg>")))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeIO))
	assert.ErrorIs(t, err, syscall.ENOSPC)

	assert.NoFileExists(t, path)
	assert.Empty(t, entries(t, dir))
}

func TestWriteAtomic_FailedWriteKeepsPreviousContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	require.NoError(t, WriteFile(path, []byte(`{"A": {}}`), 0o644))

	err := WriteAtomic(path, 0o644, failAfterHalf([]byte(`{"A": {}, "B": {}}`)))
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"A": {}}`, string(data))
	assert.Equal(t, []string{"results.json"}, entries(t, dir))
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.svg"), []byte("x"), 0o644)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeIO))
}

func TestIsTempFile(t *testing.T) {
	assert.True(t, IsTempFile("/data/.results.json.tmp-123456"))
	assert.True(t, IsTempFile(".A_R10.svg.tmp-1"))
	assert.False(t, IsTempFile("/data/results.json"))
	assert.False(t, IsTempFile("/data/.hidden"))
	assert.False(t, IsTempFile("/data/ptop_a.tmp-1.json"))
}

//Personal.AI order the ending
