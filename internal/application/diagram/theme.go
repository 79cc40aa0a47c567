package diagram

import (
	"github.com/solhycool/visualizations/internal/infrastructure/svg"
)

// applyDarkTheme swaps backgrounds and logos, recolors the legend box and the
// titles. The light theme is the template itself.
func applyDarkTheme(doc *svg.Document, theme DarkTheme, assets AssetStore) error {
	for _, sw := range theme.Images {
		cell, err := doc.Cell(sw.Cell)
		if err != nil {
			return err
		}
		url, err := assets.DataURL(sw.Asset)
		if err != nil {
			return err
		}
		cell.SetImage(url)
	}

	for _, id := range theme.LegendCells() {
		if !doc.HasCell(id) {
			continue
		}
		cell, err := doc.Cell(id)
		if err != nil {
			return err
		}
		cell.RecolorLegend(theme.BoxFill, theme.BoxStroke, theme.TextColor)
	}

	for _, id := range theme.TitleCells {
		cell, err := doc.Cell(id)
		if err != nil {
			return err
		}
		cell.SetTextColor(theme.TextColor)
	}
	return nil
}

//Personal.AI order the ending
