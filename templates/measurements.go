package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// MeasurementRowView is one stored measurement row, pre-formatted for display.
type MeasurementRowView struct {
	ID       string
	Location string
	ItemType string
	Quantity string
	Width    string
	Height   string
}

// MeasurementTableData feeds one measurement table partial.
type MeasurementTableData struct {
	EstimateID  string
	Kind        string
	Label       string
	Geometry    bool
	ItemOptions []string
	Rows        []MeasurementRowView
}

// MeasurementTable renders one editable measurement table. Every mutation
// targets the totals partial as well via hx-trigger on the wrapper.
func MeasurementTable(data MeasurementTableData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="table-%s" class="bg-base-100 p-4 rounded-box mb-4">
<div class="flex justify-between items-center mb-2">
<h2 class="text-lg font-semibold">%s</h2>
<a href="/estimates/%s/import/%s" class="btn btn-ghost btn-xs">Import</a>
</div>
<table class="table table-sm">
`, esc(data.Kind), esc(data.Label), esc(data.EstimateID), esc(data.Kind)); err != nil {
			return err
		}

		if data.Geometry {
			if err := renderGeometryRows(w, data); err != nil {
				return err
			}
		} else {
			if err := renderItemizedRows(w, data); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</table>\n</div>\n")
		return err
	})
}

func renderItemizedRows(w io.Writer, data MeasurementTableData) error {
	if _, err := io.WriteString(w, `<thead><tr><th>Location</th><th>Item</th><th>Quantity</th><th></th></tr></thead>
<tbody>
`); err != nil {
		return err
	}
	for _, r := range data.Rows {
		if _, err := fmt.Fprintf(w, `<tr>
<td><input type="text" name="location" value="%s" class="input input-bordered input-xs w-full" hx-patch="/measurements/%s" hx-include="closest tr" hx-trigger="change" hx-swap="none"/></td>
<td><select name="item_type" class="select select-bordered select-xs w-full" hx-patch="/measurements/%s" hx-include="closest tr" hx-trigger="change" hx-swap="none">
<option value=""></option>
`, esc(r.Location), esc(r.ID), esc(r.ID)); err != nil {
			return err
		}
		for _, opt := range data.ItemOptions {
			selected := ""
			if opt == r.ItemType {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`+"\n", esc(opt), selected, esc(opt)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</select></td>
<td><input type="number" step="any" name="quantity" value="%s" class="input input-bordered input-xs w-24" hx-patch="/measurements/%s" hx-include="closest tr" hx-trigger="change" hx-swap="none"/></td>
<td><button class="btn btn-ghost btn-xs text-error" hx-delete="/measurements/%s" hx-swap="none">✕</button></td>
</tr>
`, esc(r.Quantity), esc(r.ID), esc(r.ID)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `</tbody>
<tfoot><tr><td colspan="4">
<button class="btn btn-outline btn-xs" hx-post="/estimates/%s/rows/%s" hx-swap="none">+ Add Row</button>
</td></tr></tfoot>
`, esc(data.EstimateID), esc(data.Kind))
	return err
}

func renderGeometryRows(w io.Writer, data MeasurementTableData) error {
	if _, err := io.WriteString(w, `<thead><tr><th>Location</th><th>Width (in)</th><th>Height (in)</th><th></th></tr></thead>
<tbody>
`); err != nil {
		return err
	}
	for _, r := range data.Rows {
		if _, err := fmt.Fprintf(w, `<tr>
<td><input type="text" name="location" value="%s" class="input input-bordered input-xs w-full" hx-patch="/measurements/%s" hx-include="closest tr" hx-trigger="change" hx-swap="none"/></td>
<td><input type="number" step="any" name="width" value="%s" class="input input-bordered input-xs w-24" hx-patch="/measurements/%s" hx-include="closest tr" hx-trigger="change" hx-swap="none"/></td>
<td><input type="number" step="any" name="height" value="%s" class="input input-bordered input-xs w-24" hx-patch="/measurements/%s" hx-include="closest tr" hx-trigger="change" hx-swap="none"/></td>
<td><button class="btn btn-ghost btn-xs text-error" hx-delete="/measurements/%s" hx-swap="none">✕</button></td>
</tr>
`, esc(r.Location), esc(r.ID), esc(r.Width), esc(r.ID), esc(r.Height), esc(r.ID), esc(r.ID)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `</tbody>
<tfoot><tr><td colspan="4">
<button class="btn btn-outline btn-xs" hx-post="/estimates/%s/rows/%s" hx-swap="none">+ Add Row</button>
</td></tr></tfoot>
`, esc(data.EstimateID), esc(data.Kind))
	return err
}

// MiscItemRow is one standalone flat-rate item with its entered quantity.
type MiscItemRow struct {
	Name      string
	Unit      string
	UnitPrice string
	Quantity  string
}

// MiscItemsData feeds the stucco flat-rate items partial.
type MiscItemsData struct {
	EstimateID string
	Items      []MiscItemRow
}

// MiscItemsTable renders the standalone flat-rate quantity editor.
func MiscItemsTable(data MiscItemsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="misc-items" class="bg-base-100 p-4 rounded-box mb-4">
<h2 class="text-lg font-semibold mb-2">Additional Items</h2>
<table class="table table-sm">
<thead><tr><th>Item</th><th>Unit</th><th>Unit Price</th><th>Quantity</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, it := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td><td>%s</td><td>%s</td>
<td><input type="number" step="any" name="quantity" value="%s" class="input input-bordered input-xs w-24" hx-post="/estimates/%s/misc?item=%s" hx-trigger="change" hx-swap="none"/></td>
</tr>
`, esc(it.Name), esc(it.Unit), esc(it.UnitPrice), esc(it.Quantity), esc(data.EstimateID), url.QueryEscape(it.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n</div>\n")
		return err
	})
}
