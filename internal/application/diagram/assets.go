package diagram

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/solhycool/visualizations/internal/infrastructure/svg"
	"github.com/solhycool/visualizations/pkg/errors"
)

// AssetStore resolves asset file names to embeddable data URLs.
type AssetStore interface {
	DataURL(name string) (string, error)
}

// DirAssets reads assets from a directory and caches their encodings.
type DirAssets struct {
	dir   string
	mu    sync.Mutex
	cache map[string]string
}

// NewDirAssets creates a store rooted at dir.
func NewDirAssets(dir string) *DirAssets {
	return &DirAssets{dir: dir, cache: make(map[string]string)}
}

// Dir returns the asset directory.
func (a *DirAssets) Dir() string { return a.dir }

// DataURL returns the asset as data:image/<ext>;base64,...
func (a *DirAssets) DataURL(name string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if url, ok := a.cache[name]; ok {
		return url, nil
	}
	path := filepath.Join(a.dir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAssetUnavailable, "read diagram asset").WithDetail(path)
	}
	url := svg.DataURL(name, content)
	a.cache[name] = url
	return url, nil
}

//Personal.AI order the ending
