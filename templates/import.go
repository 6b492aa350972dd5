package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"estimatecalc/services"
)

// ImportPageData feeds the measurement import page for one table.
type ImportPageData struct {
	EstimateID string
	Kind       string
	TableLabel string
}

// ImportContent renders the upload form with template download link.
func ImportContent(data ImportPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="max-w-xl mx-auto bg-base-100 p-6 rounded-box">
<h1 class="text-2xl font-bold mb-2">Import %s</h1>
<p class="mb-4 text-sm">Upload a .csv or .xlsx measurement sheet.
<a href="/estimates/%s/import/%s/template" class="link">Download template</a></p>
<form hx-post="/estimates/%s/import/%s" hx-encoding="multipart/form-data" hx-target="#import-result" class="space-y-4">
<input type="file" name="file" accept=".csv,.xlsx" class="file-input file-input-bordered w-full"/>
<button type="submit" class="btn btn-primary">Validate</button>
</form>
<div id="import-result" class="mt-4"></div>
<a href="/estimates/%s" class="btn btn-ghost btn-sm mt-4">Back to estimate</a>
</div>
`, esc(data.TableLabel), esc(data.EstimateID), esc(data.Kind),
			esc(data.EstimateID), esc(data.Kind), esc(data.EstimateID))
		return err
	})
}

// ImportPage renders the full import page.
func ImportPage(data ImportPageData) templ.Component {
	return Layout("Import "+data.TableLabel, ImportContent(data))
}

// ImportResult renders the validation summary returned after an upload.
// When every row is valid it offers the commit button; the parsed rows ride
// along in a hidden field so the commit needs no server-side upload state.
func ImportResult(data ImportPageData, result *services.ValidationResult, parsedRowsJSON, errorsJSON string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="stats shadow mb-2">
<div class="stat"><div class="stat-title">Rows</div><div class="stat-value text-lg">%d</div></div>
<div class="stat"><div class="stat-title">Valid</div><div class="stat-value text-lg text-success">%d</div></div>
<div class="stat"><div class="stat-title">Errors</div><div class="stat-value text-lg text-error">%d</div></div>
</div>
`, result.TotalRows, result.ValidRows, result.ErrorRows); err != nil {
			return err
		}

		if len(result.Errors) > 0 {
			if _, err := io.WriteString(w, `<table class="table table-xs">
<thead><tr><th>Row</th><th>Field</th><th>Error</th></tr></thead>
<tbody>
`); err != nil {
				return err
			}
			for _, e := range result.Errors {
				if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>`+"\n",
					e.Row, esc(e.Field), esc(e.Message)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `</tbody>
</table>
<form method="post" action="/estimates/%s/import/%s/errors" class="mt-2">
<input type="hidden" name="errors_json" value="%s"/>
<button type="submit" class="btn btn-outline btn-sm">Download error report</button>
</form>
`, esc(data.EstimateID), esc(data.Kind), esc(errorsJSON)); err != nil {
				return err
			}
			return nil
		}

		_, err := fmt.Fprintf(w, `<form hx-post="/estimates/%s/import/%s/commit" hx-swap="none">
<input type="hidden" name="parsed_rows_json" value="%s"/>
<button type="submit" class="btn btn-success">Import %d rows</button>
</form>
`, esc(data.EstimateID), esc(data.Kind), esc(parsedRowsJSON), result.ValidRows)
		return err
	})
}
