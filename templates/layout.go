// Package templates renders the HTMX web shell: layout, estimate pages and
// the partials swapped in by measurement edits.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

// Layout wraps page content with the HTML shell: htmx, styling and the
// toast listener wired to the showToast HX-Trigger event.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en" data-theme="corporate">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link href="https://cdn.jsdelivr.net/npm/daisyui@4.12.10/dist/full.min.css" rel="stylesheet" type="text/css"/>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="min-h-screen bg-base-200">
<div id="toast-container" class="toast toast-top toast-end z-50"></div>
<script>
document.body.addEventListener("showToast", function(evt) {
  var d = evt.detail;
  var el = document.createElement("div");
  el.className = "alert " + (d.type === "error" ? "alert-error" : "alert-success");
  el.textContent = d.message;
  document.getElementById("toast-container").appendChild(el);
  setTimeout(function() { el.remove(); }, 4000);
});
</script>
<main class="container mx-auto p-6">
`, esc(title)); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
