package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTitle is the catalogue title before the user configures one.
const DefaultTitle = "Crafting Components Catalogue"

// Settings is the single catalogue configuration row.
type Settings struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Stats summarizes the catalogue for the dashboard and report headers.
type Stats struct {
	Components    int64           `json:"components"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Categories    int64           `json:"categories"`
}

// Settings returns the catalogue settings, or defaults if none were saved.
func (s *Store) Settings(ctx context.Context) (Settings, error) {
	var (
		out      Settings
		created  string
		modified string
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT title, created_at, updated_at FROM catalogue_settings WHERE id = 1`).
		Scan(&out.Title, &created, &modified)
	if err == sql.ErrNoRows {
		return Settings{Title: DefaultTitle}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	if out.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return Settings{}, fmt.Errorf("parsing settings created_at: %w", err)
	}
	if out.UpdatedAt, err = time.Parse(time.RFC3339, modified); err != nil {
		return Settings{}, fmt.Errorf("parsing settings updated_at: %w", err)
	}
	return out, nil
}

// SaveSettings upserts the single settings row.
func (s *Store) SaveSettings(ctx context.Context, in Settings) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalogue_settings (id, title, created_at, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			updated_at = excluded.updated_at`,
		in.Title, now, now,
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// Stats computes catalogue totals. Total value is summed in Go because costs
// are stored as exact decimal strings, not floats.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var out Stats

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(quantity), 0),
		       COUNT(DISTINCT CASE WHEN category != '' THEN category END)
		FROM components`).
		Scan(&out.Components, &out.TotalQuantity, &out.Categories)
	if err != nil {
		return Stats{}, fmt.Errorf("computing stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT quantity, cost_per_unit FROM components`)
	if err != nil {
		return Stats{}, fmt.Errorf("computing total value: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var (
			qty  int64
			cost string
		)
		if err := rows.Scan(&qty, &cost); err != nil {
			return Stats{}, fmt.Errorf("scanning value row: %w", err)
		}
		d, err := decimal.NewFromString(cost)
		if err != nil {
			return Stats{}, fmt.Errorf("parsing cost %q: %w", cost, err)
		}
		total = total.Add(d.Mul(decimal.NewFromInt(qty)))
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterating value rows: %w", err)
	}

	out.TotalValue = total
	return out, nil
}
