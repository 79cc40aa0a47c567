package result

import (
	"strings"

	"github.com/solhycool/visualizations/pkg/errors"
)

// Result file naming: ptop_<condition>_R1<rest>.json.
const (
	FilePrefix  = "ptop_"
	FileSuffix  = ".json"
	pointMarker = "_R1"
)

// Key identifies one operating point inside the index.
type Key struct {
	Condition string
	Point     string
}

// String returns "<condition>_<point>", the diagram basename.
func (k Key) String() string {
	return k.Condition + "_" + k.Point
}

// Filename returns the result file name the key was parsed from.
func (k Key) Filename() string {
	return FilePrefix + k.String() + FileSuffix
}

// IsResultFile reports whether name is selected for aggregation.
func IsResultFile(name string) bool {
	return strings.HasPrefix(name, FilePrefix) && strings.HasSuffix(name, FileSuffix)
}

// ParseFilename extracts the condition and point keys from a result file
// name. The condition ends at the first "_R1"; the point keeps the "R1".
func ParseFilename(name string) (Key, error) {
	if !IsResultFile(name) {
		return Key{}, errors.MalformedFilename(name)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)

	idx := strings.Index(body, pointMarker)
	if idx <= 0 {
		return Key{}, errors.MalformedFilename(name)
	}
	return Key{
		Condition: body[:idx],
		Point:     body[idx+1:],
	}, nil
}

//Personal.AI order the ending
