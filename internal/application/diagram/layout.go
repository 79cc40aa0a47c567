package diagram

import (
	"fmt"

	"github.com/solhycool/visualizations/internal/domain/result"
)

// IconSpec sizes an icon by a variable inside its operating range and labels
// it with the value.
type IconSpec struct {
	Cell     string
	Group    string
	Variable string
	Unit     string
	Boundary bool
}

// TextSpec writes "<value> <unit>" into a text box. Optional cells are only
// written when both the cell and the variable are present.
type TextSpec struct {
	Cell     string
	Group    string
	Variable string
	Unit     string
	Optional bool
}

// LineLayout describes the condenser loop split network. The main width is
// scaled from the loop flow; the loop splits by FirstSplit into the
// recirculation branch and its complement, the complement splits again by
// SecondSplit, and the tower carries recirculation plus the SecondSplit share.
type LineLayout struct {
	Group       string
	Flow        string
	FirstSplit  string
	SecondSplit string
	MinWidth    float64
	MaxWidth    float64

	Main              []string // × 1
	Recirculation     []string // × FirstSplit
	Complement        []string // × (1 − FirstSplit)
	ComplementRest    []string // complement × (1 − SecondSplit)
	ComplementSplit   []string // complement × SecondSplit
	RecirculationJoin []string // recirculation + complement split
}

// CoolingSpec is the cooling requirement icon.
type CoolingSpec struct {
	Cell        string
	Group       string
	Power       string
	Flow        string
	Temperature string
	LabelFormat string
}

// CostIconSpec picks one of three consumption images by level. An empty
// MinKey means a lower bound of zero.
type CostIconSpec struct {
	Cell        string
	Variable    string
	MinKey      string
	MaxKey      string
	AssetFormat string
	Unit        string
}

// ImageSwap replaces a cell's image with an asset.
type ImageSwap struct {
	Cell  string
	Asset string
}

// DarkTheme lists what the dark pass rewrites.
type DarkTheme struct {
	Images       []ImageSwap
	LegendFormat string
	LegendFirst  int
	LegendEnd    int // exclusive
	TitleCells   []string
	BoxFill      string
	BoxStroke    string
	TextColor    string
}

// LegendCells returns the legend cell identifiers in order.
func (d DarkTheme) LegendCells() []string {
	var ids []string
	for i := d.LegendFirst; i < d.LegendEnd; i++ {
		ids = append(ids, fmt.Sprintf(d.LegendFormat, i))
	}
	return ids
}

// FacilityLayout binds template cells to operating point variables.
type FacilityLayout struct {
	Lines        LineLayout
	IconMinSize  float64
	IconMaxSize  float64
	BoundarySize float64
	Icons        []IconSpec
	Texts        []TextSpec
	Cooling      CoolingSpec
	CostIconSize float64
	Costs        []CostIconSpec
	Dark         DarkTheme
}

// RequiredCells returns every cell a light diagram must resolve.
func (l FacilityLayout) RequiredCells() []string {
	var ids []string
	ids = append(ids, l.Lines.Main...)
	ids = append(ids, l.Lines.Recirculation...)
	ids = append(ids, l.Lines.Complement...)
	ids = append(ids, l.Lines.ComplementRest...)
	ids = append(ids, l.Lines.ComplementSplit...)
	ids = append(ids, l.Lines.RecirculationJoin...)
	for _, ic := range l.Icons {
		ids = append(ids, ic.Cell)
	}
	for _, tx := range l.Texts {
		if !tx.Optional {
			ids = append(ids, tx.Cell)
		}
	}
	ids = append(ids, l.Cooling.Cell)
	for _, c := range l.Costs {
		ids = append(ids, c.Cell)
	}
	return ids
}

// DarkCells returns the cells the dark pass requires. Legend cells are
// optional and not listed.
func (l FacilityLayout) DarkCells() []string {
	var ids []string
	for _, sw := range l.Dark.Images {
		ids = append(ids, sw.Cell)
	}
	return append(ids, l.Dark.TitleCells...)
}

// DarkAssets returns the asset files the dark pass embeds.
func (l FacilityLayout) DarkAssets() []string {
	var names []string
	for _, sw := range l.Dark.Images {
		names = append(names, sw.Asset)
	}
	return names
}

// DefaultFacilityLayout is the SolHyCool pilot plant diagram.
func DefaultFacilityLayout() FacilityLayout {
	return FacilityLayout{
		Lines: LineLayout{
			Group:             result.GroupDecisionVariables,
			Flow:              "qc",
			FirstSplit:        "R1",
			SecondSplit:       "R2",
			MinWidth:          10,
			MaxWidth:          15,
			Main:              []string{"line_c_in", "line_c_out", "line_pump_in"},
			Recirculation:     []string{"line_r1"},
			Complement:        []string{"line_dc_in", "line_dc_out"},
			ComplementRest:    []string{"line_r2_out1"},
			ComplementSplit:   []string{"line_r2_out2"},
			RecirculationJoin: []string{"line_wct_in", "line_wct_out"},
		},
		IconMinSize:  30,
		IconMaxSize:  70,
		BoundarySize: 70,
		Icons: []IconSpec{
			{Cell: "fan_dc", Group: result.GroupControlVariables, Variable: "w_fan_dc", Unit: "%", Boundary: true},
			{Cell: "fan_wct", Group: result.GroupControlVariables, Variable: "w_fan_wct", Unit: "%", Boundary: true},
			{Cell: "valve_r1", Group: result.GroupDecisionVariables, Variable: "R1", Unit: ""},
			{Cell: "valve_r2", Group: result.GroupDecisionVariables, Variable: "R2", Unit: ""},
			{Cell: "temp_amb", Group: result.GroupEnvironment, Variable: "Tamb", Unit: "degree_celsius", Boundary: true},
			{Cell: "hr_amb", Group: result.GroupEnvironment, Variable: "HR", Unit: "%", Boundary: true},
			{Cell: "temp_wct", Group: result.GroupDecisionVariables, Variable: "Twct_out", Unit: "degree_celsius", Boundary: true},
			{Cell: "temp_dc", Group: result.GroupDecisionVariables, Variable: "Tdc_out", Unit: "degree_celsius", Boundary: true},
		},
		Texts: []TextSpec{
			{Cell: "line_c_in_text", Group: result.GroupOthers, Variable: "Tc_in", Unit: "°C"},
			{Cell: "line_c_out_text", Group: result.GroupOthers, Variable: "Tc_out", Unit: "°C"},
			{Cell: "pump_c_text", Group: result.GroupDecisionVariables, Variable: "qc", Unit: "m³/h"},
			{Cell: "Twct_in", Group: result.GroupOthers, Variable: "Twct_in", Unit: "°C", Optional: true},
			{Cell: "qwct", Group: result.GroupOthers, Variable: "q_wct", Unit: "m³/h", Optional: true},
			{Cell: "qdc", Group: result.GroupOthers, Variable: "q_dc", Unit: "m³/h", Optional: true},
		},
		Cooling: CoolingSpec{
			Cell:        "cooling_req",
			Group:       result.GroupCoolingRequirements,
			Power:       "Pth",
			Flow:        "Mv",
			Temperature: "Tv",
			// Pth is a thermal power, so kWth and not kWhth.
			LabelFormat: "%.0f kWth, %.2f kg/s, %.0f ⁰C",
		},
		CostIconSize: 70,
		Costs: []CostIconSpec{
			{Cell: "cost_e_wct", Variable: "Ce_wct", MinKey: "Ce_min", MaxKey: "Ce_max", AssetFormat: "electrical_consumption_x%d.svg", Unit: "kWhe"},
			{Cell: "cost_e_dc", Variable: "Ce_dc", MinKey: "Ce_min", MaxKey: "Ce_max", AssetFormat: "electrical_consumption_x%d.svg", Unit: "kWhe"},
			{Cell: "cost_w_wct", Variable: "Cw_wct", MaxKey: "Cw_max", AssetFormat: "water_consumption_x%d.svg", Unit: "L/h"},
		},
		Dark: DarkTheme{
			Images: []ImageSwap{
				{Cell: "background-image", Asset: "background_dark.jpg"},
				{Cell: "logo-gobierno", Asset: "micin-uefeder-aei_letras_blancas.svg"},
				{Cell: "logo-psa", Asset: "logo_psa_letras_blancas_sin_fondo.svg"},
			},
			LegendFormat: "juWprjBz31KtaNW54uK3-%d",
			LegendFirst:  28,
			LegendEnd:    57,
			TitleCells:   []string{"titulo", "subtitulo"},
			BoxFill:      "#333333",
			BoxStroke:    "#ECECEC",
			TextColor:    "#ECECEC",
		},
	}
}

//Personal.AI order the ending
