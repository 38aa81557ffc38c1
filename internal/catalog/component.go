// Package catalog defines the Component record and the catalogue field
// registry. This package has no storage or UI dependencies and is shared by
// the store, the spreadsheet converters, the report generator, and the web
// layer.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Component is a single inventory item in the catalogue.
type Component struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Supplier    string          `json:"supplier"`
	Location    string          `json:"location"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// DefaultUnit is used when a component is created or imported without a unit.
const DefaultUnit = "pieces"

// TotalValue returns quantity multiplied by cost per unit.
func (c Component) TotalValue() decimal.Decimal {
	return c.CostPerUnit.Mul(decimal.NewFromInt(c.Quantity))
}

// ValidationError describes a single invalid field on a component.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Normalize trims whitespace from all text fields and applies the default
// unit. Call before Validate so that a whitespace-only name is rejected.
func (c *Component) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Category = strings.TrimSpace(c.Category)
	c.Description = strings.TrimSpace(c.Description)
	c.Unit = strings.TrimSpace(c.Unit)
	c.Supplier = strings.TrimSpace(c.Supplier)
	c.Location = strings.TrimSpace(c.Location)
	c.Notes = strings.TrimSpace(c.Notes)

	if c.Unit == "" {
		c.Unit = DefaultUnit
	}
}

// Validate checks the record invariants: non-empty name, non-negative
// quantity and cost. Returns the first violation found.
func (c Component) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{Field: "name", Message: "required field is empty"}
	}
	if c.Quantity < 0 {
		return ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	if c.CostPerUnit.IsNegative() {
		return ValidationError{Field: "cost_per_unit", Message: "must not be negative"}
	}
	return nil
}
