// Package spreadsheet converts between tabular files (CSV, XLSX) and
// catalogue components. Both directions are stateless: import produces
// records for the caller to persist, export writes the records it is given.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"crafting-catalogue/internal/catalog"
	"crafting-catalogue/internal/convert"
)

// Format identifies a supported tabular file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatForFilename resolves a file name to a Format by extension.
func FormatForFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (use .csv or .xlsx)", filepath.Ext(name))
	}
}

// SkippedRow records why a data row was not imported.
type SkippedRow struct {
	Line   int    `json:"line"` // 1-based row number in the file
	Reason string `json:"reason"`
}

// ImportResult is the outcome of parsing an import file.
type ImportResult struct {
	Components []catalog.Component `json:"components"`
	Skipped    []SkippedRow        `json:"skipped,omitempty"`
}

// SkippedCount returns the number of rows that were rejected.
func (r *ImportResult) SkippedCount() int {
	return len(r.Skipped)
}

// Import reads a tabular file and converts its rows to components.
//
// The first non-empty row is the header. Headers are matched
// case-insensitively against the field registry, synonyms included;
// unrecognized columns are ignored. A file without any name column is
// rejected outright. Data rows missing the name are skipped and counted,
// not fatal; unparseable numeric cells fall back to the field default.
func Import(r io.Reader, format Format) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return parseRows(rows)
}

// readCSV reads all rows from a CSV stream. Ragged rows are tolerated; the
// row parser pads or ignores as needed.
func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rows, nil
}

// readXLSX reads all rows from the first sheet of an xlsx workbook.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// parseRows converts raw rows into components. The returned error covers
// structural problems (empty file, no name column); per-row problems land in
// ImportResult.Skipped.
func parseRows(rows [][]string) (*ImportResult, error) {
	headerIdx := -1
	for i, row := range rows {
		if !rowEmpty(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	// Map column positions to catalogue fields. When two headers resolve
	// to the same field the leftmost column wins.
	cols := make(map[int]catalog.Field)
	claimed := make(map[string]bool)
	hasName := false
	for i, h := range rows[headerIdx] {
		f, ok := catalog.MatchHeader(convert.CleanCell(h))
		if !ok || claimed[f.Key] {
			continue
		}
		claimed[f.Key] = true
		cols[i] = f
		if f.Key == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, fmt.Errorf("missing required column %q (or a synonym such as %q)",
			"Component Name", "Name")
	}

	result := &ImportResult{}
	for i, row := range rows[headerIdx+1:] {
		line := headerIdx + i + 2 // 1-based file line for user-facing messages
		if rowEmpty(row) {
			continue
		}

		rec, reason := buildComponent(row, cols)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}
		result.Components = append(result.Components, rec)
	}

	return result, nil
}

// buildComponent converts one data row. A non-empty reason means the row
// must be skipped.
func buildComponent(row []string, cols map[int]catalog.Field) (catalog.Component, string) {
	var c catalog.Component

	for pos, f := range cols {
		if pos >= len(row) {
			continue
		}
		raw := convert.CleanCell(row[pos])
		if raw == "" {
			continue
		}

		switch f.Key {
		case "name":
			c.Name = raw
		case "category":
			c.Category = raw
		case "description":
			c.Description = raw
		case "quantity":
			// Unparseable quantities fall back to 0 rather than
			// rejecting the row.
			if q, ok := convert.ParseQuantity(raw); ok {
				c.Quantity = q
			}
		case "unit":
			c.Unit = raw
		case "cost_per_unit":
			if d, ok := convert.ParseCost(raw); ok {
				c.CostPerUnit = d
			}
		case "supplier":
			c.Supplier = raw
		case "location":
			c.Location = raw
		case "notes":
			c.Notes = raw
		}
	}

	c.Normalize()
	if err := c.Validate(); err != nil {
		return catalog.Component{}, err.Error()
	}
	return c, ""
}

func rowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
