package core

// error_messages.go maps technical errors to user-friendly messages with
// support codes. When users report a problem, the code pins down what
// happened without exposing internals in the UI.
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are listed
// before general ones.
//
// Code groups:
//
//	VAL001-VAL099  validation (rejected before any write)
//	CAT001-CAT099  catalogue lookups
//	FILE001-FILE099 import/export file handling
//	IMP001-IMP099  import structure
//	DB001-DB099    storage
//	REQ001-REQ099  request lifecycle
//	ERR000         fallback

import "strings"

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Validation
	{"required field is empty", UserMessage{
		Message: "The component name is required",
		Action:  "Enter a name before saving",
		Code:    "VAL001",
	}},
	{"must not be negative", UserMessage{
		Message: "Quantity and cost must not be negative",
		Action:  "Enter zero or a positive value",
		Code:    "VAL002",
	}},
	{"must be a number", UserMessage{
		Message: "Quantity and cost must be numbers",
		Action:  "Enter a plain number, like 12 or 3.50",
		Code:    "VAL003",
	}},

	// Catalogue lookups
	{"component not found", UserMessage{
		Message: "That component no longer exists",
		Action:  "Refresh the table and try again",
		Code:    "CAT001",
	}},

	// Import structure
	{"missing required column", UserMessage{
		Message: "The file has no name column",
		Action:  `Add a "Component Name" (or "Name") column to the header row`,
		Code:    "IMP001",
	}},
	{"file has no rows", UserMessage{
		Message: "The file is empty",
		Action:  "Select a file with a header row and data rows",
		Code:    "IMP002",
	}},

	// Files
	{"unsupported file type", UserMessage{
		Message: "Unsupported file type",
		Action:  "Use a .csv or .xlsx file",
		Code:    "FILE001",
	}},
	{"unsupported format", UserMessage{
		Message: "Unsupported file format",
		Action:  "Use CSV or XLSX",
		Code:    "FILE001",
	}},
	{"reading csv", UserMessage{
		Message: "The file could not be read as CSV",
		Action:  "Check that the file is comma-separated with consistent quoting",
		Code:    "FILE002",
	}},
	{"reading workbook", UserMessage{
		Message: "The file could not be read as a spreadsheet",
		Action:  "Check that the file is a valid .xlsx workbook",
		Code:    "FILE002",
	}},
	{"no sheets", UserMessage{
		Message: "The workbook contains no sheets",
		Action:  "Add a sheet with a header row and data rows",
		Code:    "FILE003",
	}},

	// Storage
	{"database is locked", UserMessage{
		Message: "The catalogue database is busy",
		Action:  "Close other copies of the application and try again",
		Code:    "DB001",
	}},
	{"unable to open database", UserMessage{
		Message: "The catalogue database could not be opened",
		Action:  "Check the database path and file permissions",
		Code:    "DB002",
	}},
	{"no such table", UserMessage{
		Message: "The catalogue database is missing its schema",
		Action:  "Restart the application to recreate it",
		Code:    "DB003",
	}},

	// Request lifecycle
	{"context canceled", UserMessage{
		Message: "The request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "The request timed out",
		Action:  "Try again, or with a smaller file",
		Code:    "REQ002",
	}},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message with a
// support code. Safe to call with nil; returns the fallback message.
func MapError(err error) UserMessage {
	if err == nil {
		return defaultMessage
	}

	text := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(text, p.pattern) {
			return p.msg
		}
	}
	return defaultMessage
}
