package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error falls back",
			err:      nil,
			wantCode: "ERR000",
		},
		{
			name:     "empty name",
			err:      errors.New("name: required field is empty"),
			wantCode: "VAL001",
		},
		{
			name:     "negative quantity",
			err:      errors.New("quantity: must not be negative"),
			wantCode: "VAL002",
		},
		{
			name:     "non-numeric form value",
			err:      errors.New("cost_per_unit: must be a number"),
			wantCode: "VAL003",
		},
		{
			name:     "missing component",
			err:      errors.New("component not found"),
			wantCode: "CAT001",
		},
		{
			name:     "wrapped missing component",
			err:      fmt.Errorf("getting component 7: %w", errors.New("component not found")),
			wantCode: "CAT001",
		},
		{
			name:     "no name column",
			err:      errors.New(`missing required column "Component Name" (or a synonym such as "Name")`),
			wantCode: "IMP001",
		},
		{
			name:     "empty import file",
			err:      errors.New("file has no rows"),
			wantCode: "IMP002",
		},
		{
			name:     "bad extension",
			err:      errors.New(`unsupported file type ".pdf" (use .csv or .xlsx)`),
			wantCode: "FILE001",
		},
		{
			name:     "malformed csv",
			err:      errors.New("reading csv: record on line 3: wrong number of fields"),
			wantCode: "FILE002",
		},
		{
			name:     "malformed workbook",
			err:      errors.New("reading workbook: zip: not a valid zip file"),
			wantCode: "FILE002",
		},
		{
			name:     "empty workbook",
			err:      errors.New("workbook has no sheets"),
			wantCode: "FILE003",
		},
		{
			name:     "locked database",
			err:      errors.New("creating component: database is locked (5) (SQLITE_BUSY)"),
			wantCode: "DB001",
		},
		{
			name:     "missing schema",
			err:      errors.New("listing components: SQL logic error: no such table: components (1)"),
			wantCode: "DB003",
		},
		{
			name:     "cancelled request",
			err:      context.Canceled,
			wantCode: "REQ001",
		},
		{
			name:     "timed out request",
			err:      context.DeadlineExceeded,
			wantCode: "REQ002",
		},
		{
			name:     "unknown error falls back",
			err:      errors.New("something inexplicable"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" || got.Action == "" {
				t.Errorf("MapError(%v) returned empty message or action: %+v", tt.err, got)
			}
		})
	}
}

// Case must not matter: driver error strings vary in capitalization.
func TestMapError_CaseInsensitive(t *testing.T) {
	got := MapError(errors.New("DATABASE IS LOCKED"))
	if got.Code != "DB001" {
		t.Errorf("MapError uppercase code = %q, want DB001", got.Code)
	}
}
