package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"crafting-catalogue/internal/catalog"
	"crafting-catalogue/internal/store"
)

// DashboardData carries everything the main page renders.
type DashboardData struct {
	Title      string
	Stats      store.Stats
	Categories []string
	Components []catalog.Component
	Search     string
	Category   string
}

// Dashboard renders the full catalogue page.
func Dashboard(data DashboardData) templ.Component {
	return page(data.Title,
		topbar(data.Title),
		raw(`<main>`),
		raw(`<div id="notice"></div>`),
		StatsPanel(data.Stats),
		entryForm(data.Categories),
		importExportPanel(),
		browsePanel(data),
		raw(`</main>`),
	)
}

func topbar(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<header class="topbar"><h1>%s</h1></header>
`, esc(title))
		return err
	})
}

// StatsPanel renders the totals block. It is also returned out-of-band after
// mutations so the numbers stay current without a page reload.
func StatsPanel(stats store.Stats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="panel stats" id="stats" hx-swap-oob="true">
<div><div class="num">%d</div>Components</div>
<div><div class="num">%d</div>Total Items</div>
<div><div class="num">$%s</div>Estimated Value</div>
<div><div class="num">%d</div>Categories</div>
</section>
`,
			stats.Components,
			stats.TotalQuantity,
			esc(stats.TotalValue.StringFixed(2)),
			stats.Categories,
		)
		return err
	})
}

func entryForm(categories []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="panel">
<h2>Add Component</h2>
<form class="entry" hx-post="/components" hx-target="#components-table" hx-swap="outerHTML" hx-on::after-request="if(event.detail.successful) this.reset()">
<label>Name <input name="name" required></label>
<label>Category <input name="category" list="category-options">`); err != nil {
			return err
		}
		if err := categoryDatalist(w, categories); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</label>
<label>Quantity <input name="quantity" type="number" min="0" value="0"></label>
<label>Unit <input name="unit" value="pieces"></label>
<label>Cost per Unit <input name="cost_per_unit" value="0"></label>
<label>Supplier <input name="supplier"></label>
<label>Location <input name="location"></label>
<label>Description <input name="description"></label>
<label>Notes <input name="notes"></label>
<div class="actions"><button type="submit">Add Component</button></div>
</form>
</section>
`)
		return err
	})
}

func categoryDatalist(w io.Writer, categories []string) error {
	if _, err := io.WriteString(w, `<datalist id="category-options">`); err != nil {
		return err
	}
	for _, c := range categories {
		if _, err := fmt.Fprintf(w, `<option value="%s">`, esc(c)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</datalist>`)
	return err
}

func importExportPanel() templ.Component {
	return raw(`<section class="panel">
<h2>Import and Export</h2>
<div class="toolbar">
<form hx-post="/import" hx-target="#notice" hx-encoding="multipart/form-data">
<input type="file" name="file" accept=".csv,.xlsx,.xlsm" required>
<button type="submit">Import</button>
</form>
<a class="button secondary" href="/api/export?format=csv">Export CSV</a>
<a class="button secondary" href="/api/export?format=xlsx">Export XLSX</a>
<a class="button secondary" href="/api/report?kind=catalogue">Catalogue PDF</a>
<a class="button secondary" href="/api/report?kind=details">Details PDF</a>
<a class="button secondary" href="/api/report?kind=categories">Categories PDF</a>
</div>
</section>
`)
}

func browsePanel(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="panel">
<h2>Components</h2>
<div class="toolbar">
<input type="search" name="search" placeholder="Search components" value="%s"
 hx-get="/components" hx-target="#components-table" hx-swap="outerHTML"
 hx-trigger="input changed delay:300ms, search" hx-include="[name='category']">
<select name="category" hx-get="/components" hx-target="#components-table" hx-swap="outerHTML" hx-include="[name='search']">
<option value="">All Categories</option>
`, esc(data.Search)); err != nil {
			return err
		}
		for _, c := range data.Categories {
			selected := ""
			if c == data.Category {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, "<option value=\"%s\"%s>%s</option>\n", esc(c), selected, esc(c)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</select>\n</div>\n"); err != nil {
			return err
		}
		if err := ComponentsTable(data.Components).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

// ComponentsTable renders the component table fragment that HTMX swaps in
// after searches and mutations.
func ComponentsTable(recs []catalog.Component) templ.Component {
	return componentsTable(recs, false)
}

// ComponentsTableOOB renders the table as an out-of-band swap, for responses
// whose primary target is elsewhere (the import notice area).
func ComponentsTableOOB(recs []catalog.Component) templ.Component {
	return componentsTable(recs, true)
}

func componentsTable(recs []catalog.Component, oob bool) templ.Component {
	attr := ""
	if oob {
		attr = ` hx-swap-oob="true"`
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(recs) == 0 {
			_, err := fmt.Fprintf(w,
				`<div id="components-table"%s><p class="empty">No components found.</p></div>`, attr)
			return err
		}

		if _, err := fmt.Fprintf(w, `<div id="components-table"%s>
<table class="catalogue">`, attr); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `
<thead><tr>
<th>Name</th><th>Category</th><th>Quantity</th><th>Unit</th><th>Cost/Unit</th><th>Total Value</th><th>Supplier</th><th>Location</th><th></th>
</tr></thead>
<tbody>
`); err != nil {
			return err
		}

		for _, rec := range recs {
			if err := componentRow(w, rec); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</tbody>\n</table>\n</div>")
		return err
	})
}

func componentRow(w io.Writer, rec catalog.Component) error {
	id := strconv.FormatInt(rec.ID, 10)
	_, err := fmt.Fprintf(w, `<tr>
<td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>$%s</td><td>$%s</td><td>%s</td><td>%s</td>
<td><button class="danger" hx-delete="/components/%s" hx-target="#components-table" hx-swap="outerHTML" hx-confirm="Delete %s?">Delete</button></td>
</tr>
`,
		esc(rec.Name), esc(rec.Category), rec.Quantity, esc(rec.Unit),
		esc(rec.CostPerUnit.StringFixed(2)), esc(rec.TotalValue().StringFixed(2)),
		esc(rec.Supplier), esc(rec.Location),
		id, esc(rec.Name),
	)
	return err
}
