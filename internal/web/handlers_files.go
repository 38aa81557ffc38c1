package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"crafting-catalogue/internal/core"
	"crafting-catalogue/internal/report"
	"crafting-catalogue/internal/spreadsheet"
)

// runImport reads the uploaded file from the multipart form and feeds it to
// the importer. Shared by the page form and the JSON API.
func (s *Server) runImport(r *http.Request) (*core.ImportSummary, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.maxImportSize)

	if err := r.ParseMultipartForm(s.maxImportSize); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("invalid request body: missing file field: %w", err)
	}
	defer file.Close()

	return s.service.ImportFile(r.Context(), header.Filename, file)
}

// handleImport is the JSON import endpoint.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.runImport(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleExport streams the catalogue as a spreadsheet download. The search
// and category parameters apply the same filter as the table view.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := spreadsheet.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = spreadsheet.FormatCSV
	}

	var contentType string
	switch format {
	case spreadsheet.FormatCSV:
		contentType = "text/csv; charset=utf-8"
	case spreadsheet.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		respondError(w, r, fmt.Errorf("unsupported format %q", format))
		return
	}

	// Generated into memory so a failure can still produce an error
	// response instead of a truncated download.
	var buf bytes.Buffer
	_, err := s.service.ExportComponents(r.Context(), &buf, format,
		r.URL.Query().Get("search"), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	name := fmt.Sprintf("components_%s.%s", time.Now().Format("20060102"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// handleReport streams a PDF report download.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind := report.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = report.KindCatalogue
	}

	var buf bytes.Buffer
	err := s.service.GenerateReport(r.Context(), &buf, kind,
		r.URL.Query().Get("search"), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	name := fmt.Sprintf("%s_report_%s.pdf", kind, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
