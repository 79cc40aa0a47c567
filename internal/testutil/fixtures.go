package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Cells present in the fixture template, grouped by shape.
var (
	LineCells = []string{
		"line_c_in", "line_c_out", "line_pump_in", "line_r1",
		"line_dc_in", "line_dc_out", "line_r2_out1", "line_r2_out2",
		"line_wct_in", "line_wct_out",
	}
	IconCells = []string{
		"fan_dc", "fan_wct", "valve_r1", "valve_r2", "temp_amb", "hr_amb",
		"temp_wct", "temp_dc", "cooling_req", "cost_e_wct", "cost_e_dc", "cost_w_wct",
		"background-image", "logo-gobierno", "logo-psa",
	}
	TextCells = []string{
		"line_c_in_text", "line_c_out_text", "pump_c_text", "Twct_in", "qwct", "qdc",
		"titulo", "subtitulo",
	}
	// LegendIndices are the legend entries present; the rest of 28..56 is absent.
	LegendIndices = []int{28, 29, 40}
)

// LegendCell returns the legend cell identifier for index i.
func LegendCell(i int) string {
	return fmt.Sprintf("juWprjBz31KtaNW54uK3-%d", i)
}

// IconOrigin is the untouched image position and size of every fixture icon.
const (
	IconOriginX    = 100.0
	IconOriginY    = 200.0
	IconOriginSize = 50.0
)

// FixtureTemplate returns a diagram template containing every fixture cell
// except those listed in omit.
func FixtureTemplate(omit ...string) string {
	skip := make(map[string]bool, len(omit))
	for _, id := range omit {
		skip[id] = true
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="1200" height="800" viewBox="0 0 1200 800">` + "\n")
	b.WriteString("<g>\n")

	for _, id := range LineCells {
		if skip[id] {
			continue
		}
		fmt.Fprintf(&b, `<g id="cell-%s"><path d="M 0 0 L 100 0" fill="none" stroke="#1f77b4" stroke-width="4"/><path d="M 100 0 L 95 -3 L 95 3 Z" fill="#1f77b4" stroke="#1f77b4" stroke-width="4"/></g>`+"\n", id)
	}
	for _, id := range IconCells {
		if skip[id] {
			continue
		}
		fmt.Fprintf(&b, `<g id="cell-%s"><image x="%g" y="%g" width="%g" height="%g" xlink:href="data:image/png;base64,AAAA" preserveAspectRatio="none"/><g fill="#000000" font-family="Helvetica" font-size="12px"><text x="125" y="265">-</text></g></g>`+"\n",
			id, IconOriginX, IconOriginY, IconOriginSize, IconOriginSize)
	}
	for _, id := range TextCells {
		if skip[id] {
			continue
		}
		fmt.Fprintf(&b, `<g id="cell-%s"><g fill="#000000" font-family="Helvetica" font-size="12px"><text x="10" y="10">-</text></g></g>`+"\n", id)
	}
	for _, i := range LegendIndices {
		id := LegendCell(i)
		if skip[id] {
			continue
		}
		switch i {
		case 28:
			fmt.Fprintf(&b, `<g id="cell-%s"><rect x="0" y="0" width="200" height="300" fill="#ffffff" stroke="#000000"/></g>`+"\n", id)
		default:
			fmt.Fprintf(&b, `<g id="cell-%s"><rect x="0" y="0" width="20" height="20" fill="#ffffff" stroke="#000000"/><g fill="#000000"><text x="30" y="10">entry %d</text></g></g>`+"\n", id, i)
		}
	}

	b.WriteString("</g>\n</svg>\n")
	return b.String()
}

// WriteFixtureTemplate writes the fixture template and its assets to dir and
// returns the template path.
func WriteFixtureTemplate(t testing.TB, dir string, omit ...string) string {
	t.Helper()
	path := filepath.Join(dir, "diagram_template.svg")
	require.NoError(t, os.WriteFile(path, []byte(FixtureTemplate(omit...)), 0o644))
	WriteFixtureAssets(t, dir)
	return path
}

// FixtureAssets maps every asset the renderer may embed to its content.
func FixtureAssets() map[string][]byte {
	assets := map[string][]byte{
		"background_dark.jpg":                   []byte("jpeg-bytes"),
		"micin-uefeder-aei_letras_blancas.svg":  []byte(`<svg id="gobierno-dark"/>`),
		"logo_psa_letras_blancas_sin_fondo.svg": []byte(`<svg id="psa-dark"/>`),
	}
	for level := 1; level <= 3; level++ {
		assets[fmt.Sprintf("electrical_consumption_x%d.svg", level)] = []byte(fmt.Sprintf(`<svg id="electrical-%d"/>`, level))
		assets[fmt.Sprintf("water_consumption_x%d.svg", level)] = []byte(fmt.Sprintf(`<svg id="water-%d"/>`, level))
	}
	return assets
}

// WriteFixtureAssets writes FixtureAssets to dir.
func WriteFixtureAssets(t testing.TB, dir string) {
	t.Helper()
	for name, content := range FixtureAssets() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
	}
}

//Personal.AI order the ending
