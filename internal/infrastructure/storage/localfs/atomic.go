// Package localfs writes pipeline outputs to the local filesystem.
//
// Outputs are written to a hidden sibling and renamed into place, so a reader
// or a later run sees either the previous file or the complete new one, never
// a truncated write.
package localfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/solhycool/visualizations/pkg/errors"
)

// tempMarker is part of every in-flight file name.
const tempMarker = ".tmp-"

// WriteFunc writes data to path with perm.
type WriteFunc func(path string, data []byte, perm os.FileMode) error

// WriteFile replaces path with data.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteAtomic replaces path with whatever write produces. On any error the
// temporary file is removed and path is left as it was.
func WriteAtomic(path string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+tempMarker+"*")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "create temporary file").WithDetail(path)
	}
	tmp := f.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = os.Remove(tmp)
	}()

	if err := write(f); err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "write temporary file").WithDetail(tmp)
	}
	if err := f.Sync(); err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "sync temporary file").WithDetail(tmp)
	}
	if err := f.Chmod(perm); err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "set file mode").WithDetail(tmp)
	}
	closed = true
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "close temporary file").WithDetail(tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "replace file").WithDetail(path)
	}
	return nil
}

// IsTempFile reports whether path names a file still being written.
func IsTempFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && strings.Contains(base, tempMarker)
}

//Personal.AI order the ending
