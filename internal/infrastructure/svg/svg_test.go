package svg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhycool/visualizations/pkg/errors"
)

const testTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="800" height="600">
  <g>
    <g id="cell-line_a"><path d="M 0 0 L 10 0" stroke-width="1"/><path d="M 10 0 L 12 2"/></g>
    <g id="cell-fan">
      <image x="100" y="200" width="50" height="50" xlink:href="data:image/png;base64,AAAA"/>
      <g><text x="110" y="270">0 %</text></g>
    </g>
    <g id="cell-title"><g fill="#000000"><text>Title</text></g></g>
    <g id="cell-legend"><rect fill="#ffffff" stroke="#000000"/></g>
    <g id="cell-legend-text"><rect fill="#ffffff"/><g><text fill="#000">Fan</text></g></g>
    <g id="cell-dup"/>
    <g id="cell-dup"/>
    <g id="cell-noimage"><g><text>x</text></g></g>
  </g>
</svg>`

func newTestDocument(t *testing.T) *Document {
	tpl, err := ParseTemplate([]byte(testTemplate))
	require.NoError(t, err)
	return tpl.NewDocument()
}

func mustCell(t *testing.T, d *Document, id string) *Cell {
	c, err := d.Cell(id)
	require.NoError(t, err)
	return c
}

func TestParseTemplate_Invalid(t *testing.T) {
	_, err := ParseTemplate([]byte("<svg><g></svg>"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTemplateUnparsable))

	_, err = ParseTemplate([]byte(""))
	assert.Error(t, err)
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.svg")
	require.NoError(t, os.WriteFile(path, []byte(testTemplate), 0644))

	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, path, tpl.Path())
	assert.Equal(t, dir, tpl.Dir())

	_, err = LoadTemplate(filepath.Join(dir, "missing.svg"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeIO))
}

func TestDocument_Cell(t *testing.T) {
	d := newTestDocument(t)

	c, err := d.Cell("fan")
	require.NoError(t, err)
	assert.Equal(t, "fan", c.ID())
	assert.True(t, d.HasCell("fan"))

	_, err = d.Cell("missing")
	require.Error(t, err)
	assert.True(t, errors.IsTemplateMismatch(err))
	assert.Contains(t, err.Error(), "cell-missing")

	_, err = d.Cell("dup")
	assert.True(t, errors.IsTemplateMismatch(err))
	assert.False(t, d.HasCell("dup"))
}

func TestTemplate_DocumentsAreIndependent(t *testing.T) {
	tpl, err := ParseTemplate([]byte(testTemplate))
	require.NoError(t, err)

	first := tpl.NewDocument()
	mustCell(t, first, "fan").SetText("changed")

	second := tpl.NewDocument()
	assert.Equal(t, "0 %", mustCell(t, second, "fan").Text())
}

func TestCell_SetStrokeWidth(t *testing.T) {
	d := newTestDocument(t)
	mustCell(t, d, "line_a").SetStrokeWidth(12.5)

	out, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), `stroke-width="12.5"`))
}

func TestCell_ResizeIcon_CenterPreserved(t *testing.T) {
	for _, size := range []float64{30, 50, 64.25, 70} {
		d := newTestDocument(t)
		c := mustCell(t, d, "fan")

		pos, err := c.ResizeIcon("w_fan", size)
		require.NoError(t, err)

		// original center (125, 225)
		assert.InDelta(t, 125, pos.X+size/2, 1e-9)
		assert.InDelta(t, 225, pos.Y+size/2, 1e-9)
	}
}

func TestCell_ResizeIcon_Attributes(t *testing.T) {
	d := newTestDocument(t)
	_, err := mustCell(t, d, "fan").ResizeIcon("w_fan", 70)
	require.NoError(t, err)

	out, err := d.Bytes()
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `x="90"`)
	assert.Contains(t, s, `y="190"`)
	assert.Contains(t, s, `width="70"`)
	assert.Contains(t, s, `height="70"`)
	assert.Contains(t, s, `template-id="icon-w_fan"`)
}

func TestCell_ResizeIcon_NoImage(t *testing.T) {
	d := newTestDocument(t)
	_, err := mustCell(t, d, "noimage").ResizeIcon("x", 40)
	assert.True(t, errors.IsTemplateMismatch(err))
}

func TestCell_SetText(t *testing.T) {
	d := newTestDocument(t)
	c := mustCell(t, d, "fan")
	c.SetText("45 %")
	assert.Equal(t, "45 %", c.Text())
}

func TestCell_SetImage(t *testing.T) {
	d := newTestDocument(t)
	n := mustCell(t, d, "fan").SetImage("data:image/svg+xml;base64,Zm9v")
	assert.Equal(t, 1, n)

	out, err := d.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), `xlink:href="data:image/svg+xml;base64,Zm9v"`)
	assert.NotContains(t, string(out), "AAAA")
}

func TestCell_SetTextColor(t *testing.T) {
	d := newTestDocument(t)
	mustCell(t, d, "title").SetTextColor("#ECECEC")

	out, err := d.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), `<g fill="#ECECEC"><text fill="#ECECEC">Title</text></g>`)
}

func TestCell_RecolorLegend(t *testing.T) {
	d := newTestDocument(t)
	mustCell(t, d, "legend").RecolorLegend("#333333", "#ECECEC", "#ECECEC")
	mustCell(t, d, "legend-text").RecolorLegend("#333333", "#ECECEC", "#ECECEC")

	out, err := d.Bytes()
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<g id="cell-legend"><rect fill="#333333" stroke="#ECECEC"/></g>`)
	// multi-child cells keep their rect
	assert.Contains(t, s, `<g id="cell-legend-text"><rect fill="#ffffff"/><g><text fill="#ECECEC">Fan</text></g></g>`)
}

func TestCell_InsertBoundary(t *testing.T) {
	d := newTestDocument(t)
	c := mustCell(t, d, "fan")
	pos, err := c.ResizeIcon("w_fan", 40)
	require.NoError(t, err)
	c.InsertBoundary("w_fan", Point{X: pos.X + 20, Y: pos.Y + 20}, 70, "100")

	out, err := d.Bytes()
	require.NoError(t, err)
	s := string(out)

	boundary := strings.Index(s, `<g id="boundary-w_fan">`)
	image := strings.Index(s, `<image`)
	require.NotEqual(t, -1, boundary)
	assert.Less(t, boundary, image)
	assert.Contains(t, s, `<ellipse cx="125" cy="225" rx="35" ry="35" fill-opacity="0" fill="rgb(255, 255, 255)" stroke="#ececec" stroke-dasharray="3 3" pointer-events="all"/>`)
	assert.Contains(t, s, `<text x="160" y="225">100</text>`)
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/svg+xml;base64,Zm9v", DataURL("icons/x.svg", []byte("foo")))
	assert.Equal(t, "data:image/jpg;base64,Zm9v", DataURL("background_dark.jpg", []byte("foo")))
}

//Personal.AI order the ending
