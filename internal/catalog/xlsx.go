// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Literature Review"

// xlsxHeaders follows the literature-review template: the metadata
// columns are filled by the catalog, the note-taking columns are left
// blank for manual entry.
var xlsxHeaders = []string{
	"Concept", "Author", "Year", "Title", "Journal",
	"Main idea", "Conclusion", "Notes 1", "Notes 2",
	"Cross-ref", "Excerpts", "URL",
	"Filename", "Categories", "File Path",
}

// xlsxColWidths maps column letters to widths matching the template.
var xlsxColWidths = map[string]float64{
	"A": 25, "B": 20, "C": 8, "D": 50, "E": 20,
	"F": 30, "G": 30, "H": 25, "I": 25, "J": 15,
	"K": 30, "L": 40, "M": 40, "N": 25, "O": 50,
}

// WriteXLSX writes the catalog to an .xlsx workbook with a bold,
// shaded, frozen header row. Row order is the catalog's documented
// sort; one row per paper.
func (c *Catalog) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for col, h := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(xlsxHeaders), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range c.Records {
		row := i + 2
		rel := r.SourcePath
		if p, err := filepath.Rel(c.Root, r.SourcePath); err == nil {
			rel = p
		}

		values := map[int]any{
			1:  r.PrimaryCategory("Uncategorized"),
			2:  strings.Join(r.Authors, "; "),
			4:  r.Title,
			13: filepath.Base(r.SourcePath),
			14: strings.Join(r.Categories, "; "),
			15: rel,
		}
		if r.HasYear() {
			values[3] = r.Year
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", col, row, err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	for col, width := range xlsxColWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("setting width for column %s: %w", col, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
