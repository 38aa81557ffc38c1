package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crafting-catalogue/internal/catalog"
)

const componentColumns = `id, name, category, description, quantity, unit,
	cost_per_unit, supplier, location, notes, created_at, updated_at`

// Create inserts a new component and returns its assigned ID.
// Timestamps are stamped here; the caller is expected to have validated the
// record already.
func (s *Store) Create(ctx context.Context, c catalog.Component) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO components (
			name, category, description, quantity, unit,
			cost_per_unit, supplier, location, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Category, c.Description, c.Quantity, c.Unit,
		c.CostPerUnit.String(), c.Supplier, c.Location, c.Notes,
		now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("creating component: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new component id: %w", err)
	}
	return id, nil
}

// Get retrieves a component by ID. Returns ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (catalog.Component, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+componentColumns+` FROM components WHERE id = ?`, id)

	c, err := scanComponent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.Component{}, ErrNotFound
		}
		return catalog.Component{}, fmt.Errorf("getting component %d: %w", id, err)
	}
	return c, nil
}

// Update overwrites all non-ID fields of an existing component and bumps its
// modified timestamp. Returns ErrNotFound if the ID does not exist.
func (s *Store) Update(ctx context.Context, id int64, c catalog.Component) error {
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx, `
		UPDATE components SET
			name = ?, category = ?, description = ?, quantity = ?,
			unit = ?, cost_per_unit = ?, supplier = ?, location = ?,
			notes = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Category, c.Description, c.Quantity,
		c.Unit, c.CostPerUnit.String(), c.Supplier, c.Location,
		c.Notes, now, id,
	)
	if err != nil {
		return fmt.Errorf("updating component %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for component %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a component. Returns ErrNotFound if the ID does not exist.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting component %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for component %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all components ordered by name.
func (s *Store) List(ctx context.Context) ([]catalog.Component, error) {
	return s.query(ctx,
		`SELECT `+componentColumns+` FROM components ORDER BY name`)
}

// ListByCategory returns all components with the exact category, ordered by
// name.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]catalog.Component, error) {
	return s.query(ctx,
		`SELECT `+componentColumns+` FROM components WHERE category = ? ORDER BY name`,
		category)
}

// Search returns components whose name, category, or description contains
// text (case-insensitive substring match), optionally restricted to an exact
// category. Empty text matches everything, so Search("", cat) is a plain
// category filter and Search("", "") is List.
func (s *Store) Search(ctx context.Context, text, category string) ([]catalog.Component, error) {
	var (
		clauses []string
		args    []any
	)

	if text = strings.TrimSpace(text); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		clauses = append(clauses,
			`(lower(name) LIKE ? OR lower(category) LIKE ? OR lower(description) LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}
	if category != "" {
		clauses = append(clauses, `category = ?`)
		args = append(args, category)
	}

	q := `SELECT ` + componentColumns + ` FROM components`
	if len(clauses) > 0 {
		q += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	q += ` ORDER BY name`

	return s.query(ctx, q, args...)
}

// Categories returns all distinct non-empty categories, sorted.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM components WHERE category != '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}

// query runs a SELECT over componentColumns and scans the result set.
func (s *Store) query(ctx context.Context, q string, args ...any) ([]catalog.Component, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	defer rows.Close()

	var out []catalog.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning component: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating components: %w", err)
	}
	return out, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanComponent(row scanner) (catalog.Component, error) {
	var (
		c        catalog.Component
		cost     string
		created  string
		modified string
	)

	err := row.Scan(
		&c.ID, &c.Name, &c.Category, &c.Description, &c.Quantity, &c.Unit,
		&cost, &c.Supplier, &c.Location, &c.Notes, &created, &modified,
	)
	if err != nil {
		return catalog.Component{}, err
	}

	if c.CostPerUnit, err = decimal.NewFromString(cost); err != nil {
		return catalog.Component{}, fmt.Errorf("parsing cost %q: %w", cost, err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return catalog.Component{}, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, modified); err != nil {
		return catalog.Component{}, fmt.Errorf("parsing updated_at %q: %w", modified, err)
	}
	return c, nil
}
