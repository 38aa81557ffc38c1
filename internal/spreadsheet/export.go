package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"crafting-catalogue/internal/catalog"
)

// exportSheet is the sheet name used for xlsx exports.
const exportSheet = "Components"

// maxColWidth caps auto-sized xlsx column widths, in characters.
const maxColWidth = 50

// Export writes the record set to w in the given format: one header row with
// the registry's display headers, then one row per record in registry column
// order. Identifiers and timestamps are not exported, so an exported file can
// be re-imported as-is.
func Export(w io.Writer, recs []catalog.Component, format Format) error {
	switch format {
	case FormatCSV:
		return exportCSV(w, recs)
	case FormatXLSX:
		return exportXLSX(w, recs)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func exportCSV(w io.Writer, recs []catalog.Component) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(catalog.Headers()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, rec := range recs {
		if err := cw.Write(recordCells(rec)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func exportXLSX(w io.Writer, recs []catalog.Component) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headers := catalog.Headers()
	widths := make([]int, len(headers))

	writeRow := func(rowNum int, cells []string) error {
		for i, v := range cells {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
		return nil
	}

	if err := writeRow(1, headers); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	for i, rec := range recs {
		if err := writeRow(i+2, recordCells(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	// Bold header with a grey fill, same look the catalogue has always
	// exported.
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("resolving last column: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("resolving column %d: %w", i+1, err)
		}
		adjusted := width + 2
		if adjusted > maxColWidth {
			adjusted = maxColWidth
		}
		if err := f.SetColWidth(exportSheet, col, col, float64(adjusted)); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// recordCells renders a component as export cells in registry column order.
func recordCells(c catalog.Component) []string {
	return []string{
		c.Name,
		c.Category,
		c.Description,
		strconv.FormatInt(c.Quantity, 10),
		c.Unit,
		c.CostPerUnit.String(),
		c.Supplier,
		c.Location,
		c.Notes,
	}
}
