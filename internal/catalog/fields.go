package catalog

import "strings"

// Kind is the value type of a catalogue field, used by the spreadsheet
// converters to decide how to parse a cell.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindDecimal
)

// Field describes one data column of the catalogue: its canonical key, the
// header used for export and display, the header spellings accepted on
// import, and how its cells are parsed.
type Field struct {
	Key      string   // canonical key, matches the database column
	Header   string   // display header, used in exports and reports
	Synonyms []string // lowercase header names accepted on import
	Kind     Kind
	Required bool
}

// fields is the registry, in export column order. Import header matching,
// export columns, the entry form, and report layouts are all derived from
// this list so they cannot drift apart.
var fields = []Field{
	{
		Key:      "name",
		Header:   "Component Name",
		Synonyms: []string{"name", "component name", "item name"},
		Kind:     KindText,
		Required: true,
	},
	{
		Key:      "category",
		Header:   "Category",
		Synonyms: []string{"category", "type", "group"},
		Kind:     KindText,
	},
	{
		Key:      "description",
		Header:   "Description",
		Synonyms: []string{"description", "desc", "details"},
		Kind:     KindText,
	},
	{
		Key:      "quantity",
		Header:   "Quantity",
		Synonyms: []string{"quantity", "qty", "amount", "count"},
		Kind:     KindInt,
	},
	{
		Key:      "unit",
		Header:   "Unit",
		Synonyms: []string{"unit", "units", "measurement"},
		Kind:     KindText,
	},
	{
		Key:      "cost_per_unit",
		Header:   "Cost per Unit",
		Synonyms: []string{"cost per unit", "cost/unit", "price", "unit cost", "cost"},
		Kind:     KindDecimal,
	},
	{
		Key:      "supplier",
		Header:   "Supplier",
		Synonyms: []string{"supplier", "vendor", "source"},
		Kind:     KindText,
	},
	{
		Key:      "location",
		Header:   "Location",
		Synonyms: []string{"location", "storage", "place"},
		Kind:     KindText,
	},
	{
		Key:      "notes",
		Header:   "Notes",
		Synonyms: []string{"notes", "comments", "remarks"},
		Kind:     KindText,
	},
}

// Fields returns the registry in export column order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Headers returns the display headers in export column order.
func Headers() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

// MatchHeader resolves a spreadsheet header cell to a catalogue field.
// Matching is case-insensitive and accepts each field's synonyms, so
// "Qty", "PRICE" and "Component Name" all resolve. Returns false for
// unrecognized headers, which import ignores.
func MatchHeader(header string) (Field, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return Field{}, false
	}
	for _, f := range fields {
		if h == strings.ToLower(f.Header) {
			return f, true
		}
		for _, syn := range f.Synonyms {
			if h == syn {
				return f, true
			}
		}
	}
	return Field{}, false
}
