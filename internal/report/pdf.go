// Package report renders the catalogue into paginated PDF documents.
// Like the spreadsheet converters it is stateless: callers pass the record
// set (already filtered, if the user filtered the view) and a writer.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"crafting-catalogue/internal/catalog"
)

// Kind selects one of the report layouts.
type Kind string

const (
	// KindCatalogue is the full table with a summary line and a details
	// section for records carrying descriptions or notes.
	KindCatalogue Kind = "catalogue"
	// KindDetails is one numbered detail block per component.
	KindDetails Kind = "details"
	// KindCategories groups components by category with per-category totals.
	KindCategories Kind = "categories"
)

// pageBreakY is the Y position (mm) past which a new page is started before
// drawing the next table row, leaving room for the footer.
const pageBreakY = 265

// Generate renders the record set as a PDF of the given kind.
func Generate(w io.Writer, kind Kind, title string, recs []catalog.Component) error {
	switch kind {
	case KindCatalogue:
		return Catalogue(w, title, recs)
	case KindDetails:
		return Details(w, title, recs)
	case KindCategories:
		return CategorySummary(w, title, recs)
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}
}

// newDoc creates an A4 portrait document with the shared title block and a
// "Page N of M" footer on every page.
func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	generated := time.Now().Format("January 2, 2006 at 3:04 PM")
	pdf.CellFormat(0, 6, "Generated on "+generated, "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetTextColor(0, 0, 0)

	return pdf
}

// Catalogue renders the summary line, the full component table, and a
// details section for components with descriptions or notes.
func Catalogue(w io.Writer, title string, recs []catalog.Component) error {
	pdf := newDoc(title)

	writeSummaryLine(pdf, recs)

	if len(recs) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No components found in the catalogue.", "", 1, "L", false, 0, "")
		return output(pdf, w)
	}

	writeComponentTable(pdf, recs)

	// Details section for records with free text.
	hasDetails := false
	for _, rec := range recs {
		if rec.Description != "" || rec.Notes != "" {
			hasDetails = true
			break
		}
	}
	if hasDetails {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "Component Details", "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 9)
		for _, rec := range recs {
			if rec.Description == "" && rec.Notes == "" {
				continue
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 6, rec.Name, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			if rec.Description != "" {
				pdf.MultiCell(0, 5, "Description: "+rec.Description, "", "L", false)
			}
			if rec.Notes != "" {
				pdf.MultiCell(0, 5, "Notes: "+rec.Notes, "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	return output(pdf, w)
}

// Details renders a numbered detail block for every component.
func Details(w io.Writer, title string, recs []catalog.Component) error {
	pdf := newDoc(title)

	for i, rec := range recs {
		if pdf.GetY() > pageBreakY-40 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 120)
		pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s", i+1, rec.Name), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		writeDetailRow(pdf, "Category:", orNA(rec.Category))
		writeDetailRow(pdf, "Quantity:", fmt.Sprintf("%d %s", rec.Quantity, rec.Unit))
		writeDetailRow(pdf, "Cost per Unit:", "$"+rec.CostPerUnit.StringFixed(2))
		writeDetailRow(pdf, "Total Value:", "$"+rec.TotalValue().StringFixed(2))
		writeDetailRow(pdf, "Supplier:", orNA(rec.Supplier))
		writeDetailRow(pdf, "Location:", orNA(rec.Location))

		pdf.SetFont("Helvetica", "", 9)
		if rec.Description != "" {
			pdf.MultiCell(0, 5, "Description: "+rec.Description, "", "L", false)
		}
		if rec.Notes != "" {
			pdf.MultiCell(0, 5, "Notes: "+rec.Notes, "", "L", false)
		}
		pdf.Ln(5)
	}

	return output(pdf, w)
}

// CategorySummary renders per-category statistics and tables, categories
// sorted alphabetically with the blank category shown as "Uncategorized".
func CategorySummary(w io.Writer, title string, recs []catalog.Component) error {
	pdf := newDoc(title)

	groups := make(map[string][]catalog.Component)
	for _, rec := range recs {
		cat := rec.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		groups[cat] = append(groups[cat], rec)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		members := groups[name]
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

		if pdf.GetY() > pageBreakY-40 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(0, 100, 0)
		pdf.CellFormat(0, 8, "Category: "+name, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		var totalQty int64
		totalValue := decimal.Zero
		for _, rec := range members {
			totalQty += rec.Quantity
			totalValue = totalValue.Add(rec.TotalValue())
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("Components: %d  |  Total Items: %d  |  Total Value: $%s",
			len(members), totalQty, totalValue.StringFixed(2)), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		writeCategoryTable(pdf, members)
		pdf.Ln(6)
	}

	return output(pdf, w)
}

// writeSummaryLine writes the catalogue totals block.
func writeSummaryLine(pdf *fpdf.Fpdf, recs []catalog.Component) {
	var totalQty int64
	totalValue := decimal.Zero
	for _, rec := range recs {
		totalQty += rec.Quantity
		totalValue = totalValue.Add(rec.TotalValue())
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Catalogue Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Total Components: %d", len(recs)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Total Items: %d", totalQty), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Total Estimated Value: $"+totalValue.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

// catalogue table column widths (mm); sums to the printable width of A4.
var tableCols = []struct {
	title string
	width float64
	align string
}{
	{"Name", 36, "L"},
	{"Category", 24, "L"},
	{"Qty", 13, "R"},
	{"Unit", 16, "L"},
	{"Cost/Unit", 20, "R"},
	{"Total Value", 23, "R"},
	{"Supplier", 29, "L"},
	{"Location", 29, "L"},
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(105, 105, 105)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range tableCols {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// writeComponentTable draws the main table, repeating the header row when a
// page break occurs.
func writeComponentTable(pdf *fpdf.Fpdf, recs []catalog.Component) {
	writeTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 8)
	for i, rec := range recs {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 8)
		}

		// Alternating row shading.
		fill := i%2 == 1
		pdf.SetFillColor(230, 230, 230)

		cells := []string{
			truncate(rec.Name, 28),
			truncate(rec.Category, 18),
			fmt.Sprintf("%d", rec.Quantity),
			truncate(rec.Unit, 12),
			"$" + rec.CostPerUnit.StringFixed(2),
			"$" + rec.TotalValue().StringFixed(2),
			truncate(rec.Supplier, 22),
			truncate(rec.Location, 22),
		}
		for j, col := range tableCols {
			pdf.CellFormat(col.width, 6, cells[j], "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

// writeCategoryTable draws the smaller per-category table.
func writeCategoryTable(pdf *fpdf.Fpdf, recs []catalog.Component) {
	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Name", 70, "L"},
		{"Quantity", 25, "R"},
		{"Unit", 25, "L"},
		{"Cost/Unit", 35, "R"},
		{"Total Value", 35, "R"},
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(173, 216, 230)
		for _, col := range cols {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	pdf.SetFont("Helvetica", "", 8)
	for i, rec := range recs {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
		}

		fill := i%2 == 1
		pdf.SetFillColor(230, 230, 230)

		cells := []string{
			truncate(rec.Name, 40),
			fmt.Sprintf("%d", rec.Quantity),
			truncate(rec.Unit, 15),
			"$" + rec.CostPerUnit.StringFixed(2),
			"$" + rec.TotalValue().StringFixed(2),
		}
		for j, col := range cols {
			pdf.CellFormat(col.width, 6, cells[j], "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeDetailRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(40, 6, label, "", 0, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
