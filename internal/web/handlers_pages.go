package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crafting-catalogue/internal/catalog"
	"crafting-catalogue/internal/convert"
	"crafting-catalogue/internal/web/templates"
)

// handleDashboard renders the main page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := s.service.Settings(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	stats, err := s.service.Stats(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	categories, err := s.service.Categories(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	recs, err := s.service.ListComponents(ctx, "", "")
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.Dashboard(templates.DashboardData{
		Title:      settings.Title,
		Stats:      stats,
		Categories: categories,
		Components: recs,
	}).Render(ctx, w)
}

// handleComponentsFragment returns the table fragment for the current search
// and category filter.
func (s *Server) handleComponentsFragment(w http.ResponseWriter, r *http.Request) {
	recs, err := s.service.ListComponents(r.Context(),
		r.URL.Query().Get("search"), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.ComponentsTable(recs).Render(r.Context(), w)
}

// handleCreateFragment adds a component from the entry form and returns the
// refreshed table, with the stats panel swapped out-of-band.
func (s *Server) handleCreateFragment(w http.ResponseWriter, r *http.Request) {
	rec, err := componentFromForm(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if _, err := s.service.CreateComponent(r.Context(), rec); err != nil {
		respondError(w, r, err)
		return
	}

	s.renderTableWithStats(w, r)
}

// handleDeleteFragment removes a component and returns the refreshed table.
func (s *Server) handleDeleteFragment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.service.DeleteComponent(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	s.renderTableWithStats(w, r)
}

// handleImportFragment runs a spreadsheet import from the page form. The
// primary target is the notice area; the table and stats refresh out-of-band.
func (s *Server) handleImportFragment(w http.ResponseWriter, r *http.Request) {
	summary, err := s.runImport(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recs, err := s.service.ListComponents(r.Context(), "", "")
	if err != nil {
		respondError(w, r, err)
		return
	}
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	notice := fmt.Sprintf("Imported %d %s from %s (%d %s skipped)",
		summary.Imported, plural(summary.Imported, "component"),
		summary.FileName,
		summary.Skipped, plural(summary.Skipped, "row"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	ctx := r.Context()
	_ = templates.Notice(notice).Render(ctx, w)
	_ = templates.ComponentsTableOOB(recs).Render(ctx, w)
	_ = templates.StatsPanel(stats).Render(ctx, w)
}

// renderTableWithStats writes the refreshed table plus an out-of-band stats
// panel after a mutation.
func (s *Server) renderTableWithStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recs, err := s.service.ListComponents(ctx, "", "")
	if err != nil {
		respondError(w, r, err)
		return
	}
	stats, err := s.service.Stats(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.ComponentsTable(recs).Render(ctx, w)
	_ = templates.StatsPanel(stats).Render(ctx, w)
}

// componentFromForm builds a component from the entry form fields. Numeric
// fields are parsed with the same tolerant cleaners the importer uses, but a
// value that still fails to parse is rejected rather than defaulted.
func componentFromForm(r *http.Request) (catalog.Component, error) {
	if err := r.ParseForm(); err != nil {
		return catalog.Component{}, fmt.Errorf("invalid request body: %w", err)
	}

	rec := catalog.Component{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Unit:        r.FormValue("unit"),
		Supplier:    r.FormValue("supplier"),
		Location:    r.FormValue("location"),
		Notes:       r.FormValue("notes"),
	}

	if raw := convert.CleanCell(r.FormValue("quantity")); raw != "" {
		qty, ok := convert.ParseQuantity(raw)
		if !ok {
			return catalog.Component{}, catalog.ValidationError{Field: "quantity", Message: "must be a number"}
		}
		rec.Quantity = qty
	}
	if raw := convert.CleanCell(r.FormValue("cost_per_unit")); raw != "" {
		cost, ok := convert.ParseCost(raw)
		if !ok {
			return catalog.Component{}, catalog.ValidationError{Field: "cost_per_unit", Message: "must be a number"}
		}
		rec.CostPerUnit = cost
	}

	return rec, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
