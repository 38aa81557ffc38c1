package convert

import "testing"

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain value",
			input: "Bolt M4",
			want:  "Bolt M4",
		},
		{
			name:  "surrounding whitespace",
			input: "  Bolt M4  ",
			want:  "Bolt M4",
		},
		{
			name:  "excel formula prefix",
			input: `="00123"`,
			want:  "00123",
		},
		{
			name:  "bare equals prefix",
			input: "=Bolt",
			want:  "Bolt",
		},
		{
			name:  "surrounding double quotes",
			input: `"Bolt"`,
			want:  "Bolt",
		},
		{
			name:  "surrounding single quotes",
			input: "'Bolt'",
			want:  "Bolt",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue string
	}{
		// Valid: basic numbers
		{
			name:      "positive integer",
			input:     "123",
			wantValid: true,
			wantValue: "123",
		},
		{
			name:      "zero",
			input:     "0",
			wantValid: true,
			wantValue: "0",
		},
		{
			name:      "decimal number",
			input:     "123.45",
			wantValid: true,
			wantValue: "123.45",
		},
		{
			name:      "leading decimal point",
			input:     ".99",
			wantValid: true,
			wantValue: "0.99",
		},

		// Valid: currency symbols
		{
			name:      "dollar sign",
			input:     "$1,234.56",
			wantValid: true,
			wantValue: "1234.56",
		},
		{
			name:      "euro sign",
			input:     "€1234.56",
			wantValid: true,
			wantValue: "1234.56",
		},
		{
			name:      "pound sign",
			input:     "£1234.56",
			wantValid: true,
			wantValue: "1234.56",
		},

		// Valid: thousands separators
		{
			name:      "thousands separator",
			input:     "1,234,567.89",
			wantValid: true,
			wantValue: "1234567.89",
		},

		// Valid: accounting format
		{
			name:      "accounting negative parentheses",
			input:     "(123.45)",
			wantValid: true,
			wantValue: "-123.45",
		},
		{
			name:      "accounting negative with dollar sign",
			input:     "($1,234.56)",
			wantValid: true,
			wantValue: "-1234.56",
		},

		// Valid: scientific notation
		{
			name:      "scientific notation",
			input:     "1.5e2",
			wantValid: true,
			wantValue: "150",
		},

		// Invalid
		{
			name:      "empty string",
			input:     "",
			wantValid: false,
		},
		{
			name:      "text",
			input:     "free",
			wantValid: false,
		},
		{
			name:      "mixed text and number",
			input:     "12 dollars",
			wantValid: false,
		},
		{
			name:      "double decimal point",
			input:     "1.2.3",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCost(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseCost(%q) ok = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if !tt.wantValid {
				return
			}
			if got.String() != tt.wantValue {
				t.Errorf("ParseCost(%q) = %s, want %s", tt.input, got.String(), tt.wantValue)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue int64
	}{
		{
			name:      "integer",
			input:     "10",
			wantValid: true,
			wantValue: 10,
		},
		{
			name:      "fraction truncates toward zero",
			input:     "10.9",
			wantValid: true,
			wantValue: 10,
		},
		{
			name:      "negative fraction truncates toward zero",
			input:     "-10.9",
			wantValid: true,
			wantValue: -10,
		},
		{
			name:      "thousands separator",
			input:     "1,000",
			wantValid: true,
			wantValue: 1000,
		},
		{
			name:      "empty string",
			input:     "",
			wantValid: false,
		},
		{
			name:      "text",
			input:     "many",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseQuantity(%q) ok = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if tt.wantValid && got != tt.wantValue {
				t.Errorf("ParseQuantity(%q) = %d, want %d", tt.input, got, tt.wantValue)
			}
		})
	}
}
