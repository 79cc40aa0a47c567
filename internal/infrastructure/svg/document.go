// Package svg is the template accessor for the facility diagram. It parses
// the vector template once, hands out independent deep copies, and resolves
// cells (groups whose id is "cell-<identifier>") inside a copy. Element
// addressing lives here only; renderers work on *Cell.
package svg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/solhycool/visualizations/pkg/errors"
)

// CellPrefix is prepended to a cell identifier to form the group id.
const CellPrefix = "cell-"

const cellGroupPath = "//g[@id]"

// ─────────────────────────────────────────────────────────────────────────────
// Template
// ─────────────────────────────────────────────────────────────────────────────

// Template is an immutable parsed diagram. It is never rendered into
// directly; every diagram starts from NewDocument.
type Template struct {
	path string
	doc  *etree.Document
}

// LoadTemplate reads and parses the template at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIO, "read diagram template").WithDetail(path)
	}
	tpl, err := ParseTemplate(data)
	if err != nil {
		return nil, err
	}
	tpl.path = path
	return tpl, nil
}

// ParseTemplate parses an in-memory template.
func ParseTemplate(data []byte) (*Template, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTemplateUnparsable, "parse diagram template")
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrCodeTemplateUnparsable, "diagram template has no root element")
	}
	return &Template{doc: doc}, nil
}

// Path returns the file the template was loaded from, empty when parsed from memory.
func (t *Template) Path() string { return t.path }

// Dir returns the template's directory, where its assets live by default.
func (t *Template) Dir() string {
	if t.path == "" {
		return ""
	}
	return filepath.Dir(t.path)
}

// NewDocument returns a deep copy of the template ready to be rewritten.
func (t *Template) NewDocument() *Document {
	return newDocument(t.doc.Copy())
}

// ─────────────────────────────────────────────────────────────────────────────
// Document
// ─────────────────────────────────────────────────────────────────────────────

// Document is one diagram being rendered.
type Document struct {
	doc   *etree.Document
	cells map[string][]*etree.Element
}

func newDocument(doc *etree.Document) *Document {
	cells := make(map[string][]*etree.Element)
	for _, el := range doc.FindElements(cellGroupPath) {
		id := el.SelectAttrValue("id", "")
		if !strings.HasPrefix(id, CellPrefix) {
			continue
		}
		key := strings.TrimPrefix(id, CellPrefix)
		cells[key] = append(cells[key], el)
	}
	return &Document{doc: doc, cells: cells}
}

// Cell resolves the unique cell with the given identifier. Zero or several
// matches are a TemplateMismatch.
func (d *Document) Cell(id string) (*Cell, error) {
	matches := d.cells[id]
	switch len(matches) {
	case 1:
		return &Cell{id: id, el: matches[0]}, nil
	case 0:
		return nil, errors.TemplateMismatch(id)
	default:
		return nil, errors.TemplateMismatch(id).WithDetail(CellPrefix + id + " is not unique")
	}
}

// HasCell reports whether id resolves to exactly one cell.
func (d *Document) HasCell(id string) bool {
	return len(d.cells[id]) == 1
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "serialize diagram")
	}
	return data, nil
}

//Personal.AI order the ending
