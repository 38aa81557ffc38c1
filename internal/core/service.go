// Package core provides the business logic for the catalogue: validation,
// orchestration of the store and the file converters, and mapping of
// technical errors to user-facing messages. This package has no UI
// dependencies and can be used by any frontend.
package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"crafting-catalogue/internal/catalog"
	"crafting-catalogue/internal/logging"
	"crafting-catalogue/internal/report"
	"crafting-catalogue/internal/spreadsheet"
	"crafting-catalogue/internal/store"
)

// Service wires the persistence layer to the converters. It owns no state
// of its own; the store is the single owner of durable data.
type Service struct {
	store *store.Store
}

// NewService creates a Service over an opened store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CreateComponent validates and persists a new component, returning it with
// its assigned ID and timestamps.
func (s *Service) CreateComponent(ctx context.Context, c catalog.Component) (catalog.Component, error) {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return catalog.Component{}, err
	}

	id, err := s.store.Create(ctx, c)
	if err != nil {
		return catalog.Component{}, err
	}
	return s.store.Get(ctx, id)
}

// UpdateComponent validates the record and overwrites all non-ID fields of
// the component with the given ID.
func (s *Service) UpdateComponent(ctx context.Context, id int64, c catalog.Component) (catalog.Component, error) {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return catalog.Component{}, err
	}

	if err := s.store.Update(ctx, id, c); err != nil {
		return catalog.Component{}, err
	}
	return s.store.Get(ctx, id)
}

// DeleteComponent removes a component by ID.
func (s *Service) DeleteComponent(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// GetComponent retrieves a single component by ID.
func (s *Service) GetComponent(ctx context.Context, id int64) (catalog.Component, error) {
	return s.store.Get(ctx, id)
}

// ListComponents returns components matching the search text and category
// filter. Both filters are optional; with neither set, the full catalogue is
// returned, ordered by name. A category filter without search text takes the
// plain indexed lookup.
func (s *Service) ListComponents(ctx context.Context, search, category string) ([]catalog.Component, error) {
	if strings.TrimSpace(search) == "" && category != "" {
		return s.store.ListByCategory(ctx, category)
	}
	return s.store.Search(ctx, search, category)
}

// Categories returns the distinct non-empty categories, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

// Stats returns the catalogue totals for the dashboard.
func (s *Service) Stats(ctx context.Context) (store.Stats, error) {
	return s.store.Stats(ctx)
}

// Settings returns the catalogue settings.
func (s *Service) Settings(ctx context.Context) (store.Settings, error) {
	return s.store.Settings(ctx)
}

// SaveSettings persists the catalogue settings. A blank title falls back to
// the default.
func (s *Service) SaveSettings(ctx context.Context, in store.Settings) (store.Settings, error) {
	if in.Title == "" {
		in.Title = store.DefaultTitle
	}
	if err := s.store.SaveSettings(ctx, in); err != nil {
		return store.Settings{}, err
	}
	return s.store.Settings(ctx)
}

// ImportSummary reports the outcome of a spreadsheet import.
type ImportSummary struct {
	ImportID string                  `json:"import_id"`
	FileName string                  `json:"file_name"`
	Imported int                     `json:"imported"`
	Skipped  int                     `json:"skipped"`
	Rows     []spreadsheet.SkippedRow `json:"skipped_rows,omitempty"`
	Duration string                  `json:"duration"`
}

// ImportFile parses a spreadsheet and appends every valid row to the
// catalogue. Rows missing the required name are skipped and counted, never
// fatal; a storage error aborts the import and is returned as-is.
//
// Duplicate policy is append: rows are never matched against existing
// components, so re-importing a file duplicates its rows.
func (s *Service) ImportFile(ctx context.Context, fileName string, r io.Reader) (*ImportSummary, error) {
	start := time.Now()
	importID := uuid.NewString()
	logger := logging.FromContext(ctx).With("import_id", importID, "file", fileName)

	format, err := spreadsheet.FormatForFilename(fileName)
	if err != nil {
		return nil, err
	}

	result, err := spreadsheet.Import(r, format)
	if err != nil {
		return nil, err
	}

	inserted := 0
	for _, rec := range result.Components {
		if _, err := s.store.Create(ctx, rec); err != nil {
			logger.Error("import aborted by storage error",
				"inserted", inserted, "error", err)
			return nil, fmt.Errorf("import aborted after %d rows: %w", inserted, err)
		}
		inserted++
	}

	logger.Info("import complete",
		"imported", inserted,
		"skipped", result.SkippedCount(),
		"duration", time.Since(start),
	)

	return &ImportSummary{
		ImportID: importID,
		FileName: fileName,
		Imported: inserted,
		Skipped:  result.SkippedCount(),
		Rows:     result.Skipped,
		Duration: time.Since(start).String(),
	}, nil
}

// ExportComponents writes the current record set (optionally filtered the
// same way the table view filters) to w and returns the exported row count.
func (s *Service) ExportComponents(ctx context.Context, w io.Writer, format spreadsheet.Format, search, category string) (int, error) {
	recs, err := s.store.Search(ctx, search, category)
	if err != nil {
		return 0, err
	}
	if err := spreadsheet.Export(w, recs, format); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// GenerateReport renders a PDF report of the current (optionally filtered)
// record set to w.
func (s *Service) GenerateReport(ctx context.Context, w io.Writer, kind report.Kind, search, category string) error {
	recs, err := s.store.Search(ctx, search, category)
	if err != nil {
		return err
	}

	title, err := s.reportTitle(ctx, kind)
	if err != nil {
		return err
	}

	return report.Generate(w, kind, title, recs)
}

// reportTitle picks the document title: the configured catalogue title for
// the main report, fixed titles for the other kinds.
func (s *Service) reportTitle(ctx context.Context, kind report.Kind) (string, error) {
	switch kind {
	case report.KindDetails:
		return "Detailed Component Information", nil
	case report.KindCategories:
		return "Component Summary by Category", nil
	default:
		settings, err := s.store.Settings(ctx)
		if err != nil {
			return "", err
		}
		return settings.Title, nil
	}
}
