package svg

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/solhycool/visualizations/pkg/errors"
)

// Point is a position in template user units.
type Point struct {
	X, Y float64
}

// Cell is a resolved template group.
type Cell struct {
	id string
	el *etree.Element
}

// ID returns the identifier without the "cell-" prefix.
func (c *Cell) ID() string { return c.id }

// SetStrokeWidth sets stroke-width on every child. A line's body and its
// arrowhead share the cell.
func (c *Cell) SetStrokeWidth(width float64) {
	w := formatFloat(width)
	for _, child := range c.el.ChildElements() {
		child.CreateAttr("stroke-width", w)
	}
}

// ResizeIcon sets every image child of the cell to size×size, keeping its
// center fixed, and tags it with template-id="icon-<iconID>". It returns the
// new top-left corner of the last image resized.
func (c *Cell) ResizeIcon(iconID string, size float64) (Point, error) {
	var pos Point
	found := false
	for _, child := range c.el.ChildElements() {
		if child.Tag != "image" {
			continue
		}
		width, err := floatAttr(child, "width")
		if err != nil {
			return Point{}, errors.TemplateMismatch(c.id).WithCause(err)
		}
		x, err := floatAttr(child, "x")
		if err != nil {
			return Point{}, errors.TemplateMismatch(c.id).WithCause(err)
		}
		y, err := floatAttr(child, "y")
		if err != nil {
			return Point{}, errors.TemplateMismatch(c.id).WithCause(err)
		}

		delta := size - width
		pos = Point{X: x - delta/2, Y: y - delta/2}

		child.CreateAttr("width", formatFloat(size))
		child.CreateAttr("height", formatFloat(size))
		child.CreateAttr("x", formatFloat(pos.X))
		child.CreateAttr("y", formatFloat(pos.Y))
		child.CreateAttr("template-id", "icon-"+iconID)
		found = true
	}
	if !found {
		return Point{}, errors.TemplateMismatch(c.id).WithDetail(CellPrefix + c.id + " has no image")
	}
	return pos, nil
}

// SetText replaces the content of every text run nested one group deep.
func (c *Cell) SetText(text string) {
	for _, run := range c.textRuns() {
		run.SetText(text)
	}
}

// Text returns the first nested text run, empty when none.
func (c *Cell) Text() string {
	runs := c.textRuns()
	if len(runs) == 0 {
		return ""
	}
	return runs[0].Text()
}

// SetImage points every image child at href and returns how many were set.
func (c *Cell) SetImage(href string) int {
	n := 0
	for _, child := range c.el.ChildElements() {
		if child.Tag == "image" {
			child.CreateAttr("xlink:href", href)
			n++
		}
	}
	return n
}

// SetTextColor fills both the wrapping group (multi-line text) and each
// nested text run (single-run text).
func (c *Cell) SetTextColor(color string) {
	for _, child := range c.el.ChildElements() {
		if child.Tag != "g" {
			continue
		}
		child.CreateAttr("fill", color)
		for _, run := range child.ChildElements() {
			if run.Tag == "text" {
				run.CreateAttr("fill", color)
			}
		}
	}
}

// RecolorLegend recolors a legend entry. A cell made of a single rect is the
// box background; text runs nested in groups get textColor.
func (c *Cell) RecolorLegend(fill, stroke, textColor string) {
	children := c.el.ChildElements()
	for _, child := range children {
		switch child.Tag {
		case "rect":
			if len(children) == 1 {
				child.CreateAttr("fill", fill)
				child.CreateAttr("stroke", stroke)
			}
		case "g":
			for _, run := range child.ChildElements() {
				if run.Tag == "text" {
					run.CreateAttr("fill", textColor)
				}
			}
		}
	}
}

// Boundary styling.
const (
	boundaryStroke    = "#ececec"
	boundaryLabelFill = "#ECECEC"
	boundaryFont      = "Helvetica"
	boundaryFontSize  = "10px"
)

// InsertBoundary draws a dashed circle of the given diameter centered on
// center, labelled at its right edge, as the cell's first child so it renders
// behind the icon.
func (c *Cell) InsertBoundary(id string, center Point, diameter float64, label string) {
	r := diameter / 2

	g := etree.NewElement("g")
	g.CreateAttr("id", "boundary-"+id)

	ellipse := g.CreateElement("ellipse")
	ellipse.CreateAttr("cx", formatFloat(center.X))
	ellipse.CreateAttr("cy", formatFloat(center.Y))
	ellipse.CreateAttr("rx", formatFloat(r))
	ellipse.CreateAttr("ry", formatFloat(r))
	ellipse.CreateAttr("fill-opacity", "0")
	ellipse.CreateAttr("fill", "rgb(255, 255, 255)")
	ellipse.CreateAttr("stroke", boundaryStroke)
	ellipse.CreateAttr("stroke-dasharray", "3 3")
	ellipse.CreateAttr("pointer-events", "all")

	font := g.CreateElement("g")
	font.CreateAttr("fill", boundaryLabelFill)
	font.CreateAttr("font-family", boundaryFont)
	font.CreateAttr("font-size", boundaryFontSize)

	text := font.CreateElement("text")
	text.CreateAttr("x", formatFloat(center.X+r))
	text.CreateAttr("y", formatFloat(center.Y))
	text.SetText(label)

	idx := 0
	if children := c.el.ChildElements(); len(children) > 0 {
		idx = children[0].Index()
	}
	c.el.InsertChildAt(idx, g)
}

func (c *Cell) textRuns() []*etree.Element {
	var runs []*etree.Element
	for _, child := range c.el.ChildElements() {
		if child.Tag != "g" {
			continue
		}
		for _, run := range child.ChildElements() {
			if run.Tag == "text" {
				runs = append(runs, run)
			}
		}
	}
	return runs
}

// DataURL embeds an asset as data:image/<subtype>;base64. The subtype is the
// file extension, with svg mapped to svg+xml.
func DataURL(name string, content []byte) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "svg" {
		ext = "svg+xml"
	}
	return "data:image/" + ext + ";base64," + base64.StdEncoding.EncodeToString(content)
}

func floatAttr(el *etree.Element, key string) (float64, error) {
	raw := el.SelectAttrValue(key, "")
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

//Personal.AI order the ending
