// Package templates renders the catalogue pages and HTMX fragments as templ
// components. The components are composed by hand around
// templ.ComponentFunc; all user-provided values pass through
// templ.EscapeString before reaching the page.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc shortens templ.EscapeString for the builders below.
func esc(s string) string {
	return templ.EscapeString(s)
}

// page wraps body components in the HTML shell shared by all pages.
func page(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f5f4; color: #1c1917; }
header.topbar { background: #292524; color: #fafaf9; padding: 12px 24px; }
header.topbar h1 { margin: 0; font-size: 1.2rem; }
main { max-width: 1200px; margin: 0 auto; padding: 16px 24px; }
section.panel { background: #fff; border: 1px solid #d6d3d1; border-radius: 8px; padding: 16px; margin-bottom: 16px; }
.stats { display: flex; gap: 24px; flex-wrap: wrap; }
.stats div { min-width: 140px; }
.stats .num { font-size: 1.4rem; font-weight: 600; }
form.entry { display: grid; grid-template-columns: repeat(3, 1fr); gap: 8px 16px; }
form.entry label { display: flex; flex-direction: column; font-size: 0.85rem; gap: 2px; }
form.entry input, form.entry select, form.entry textarea { padding: 6px; border: 1px solid #a8a29e; border-radius: 4px; }
form.entry .actions { grid-column: 1 / -1; display: flex; gap: 8px; }
button, a.button { background: #1d4ed8; color: #fff; border: 0; border-radius: 4px; padding: 8px 14px; cursor: pointer; text-decoration: none; font-size: 0.9rem; }
button.danger { background: #b91c1c; }
button.secondary, a.button.secondary { background: #57534e; }
table.catalogue { width: 100%%; border-collapse: collapse; font-size: 0.9rem; }
table.catalogue th, table.catalogue td { border: 1px solid #d6d3d1; padding: 6px 8px; text-align: left; }
table.catalogue th { background: #e7e5e4; }
table.catalogue tr:nth-child(even) { background: #fafaf9; }
.toolbar { display: flex; gap: 12px; align-items: center; margin-bottom: 12px; flex-wrap: wrap; }
.toolbar input, .toolbar select { padding: 6px; border: 1px solid #a8a29e; border-radius: 4px; }
.alert { border-radius: 6px; padding: 10px 14px; margin-bottom: 12px; }
.alert.error { background: #fee2e2; border: 1px solid #b91c1c; }
.alert.ok { background: #dcfce7; border: 1px solid #15803d; }
.alert .code { color: #78716c; font-size: 0.8rem; }
.empty { color: #78716c; padding: 24px; text-align: center; }
</style>
</head>
<body>
`, esc(title)); err != nil {
			return err
		}
		for _, c := range body {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// raw writes a fixed HTML snippet.
func raw(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// ErrorAlert renders an error notification fragment for HTMX swaps.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="alert error" role="alert">%s. %s <span class="code">(%s)</span></div>`,
			esc(message), esc(action), esc(code))
		return err
	})
}

// Notice renders a success notification fragment.
func Notice(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="alert ok">%s</div>`, esc(message))
		return err
	})
}
