package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// EstimateViewData feeds the single-estimate page: customer block,
// measurement tables, optional misc items and the totals panel.
type EstimateViewData struct {
	ID               string
	CustomerName     string
	ProjectAddress   string
	SalesRep         string
	Service          string
	ServiceName      string
	IsStone          bool
	StoneInstallType string
	Repair           bool
	Rigging          bool
	Tables           []MeasurementTableData
	MiscItems        *MiscItemsData
	Totals           TotalsData
}

func checked(b bool) string {
	if b {
		return " checked"
	}
	return ""
}

func selectedIf(b bool) string {
	if b {
		return " selected"
	}
	return ""
}

// EstimateViewContent renders the estimate editor: the left column holds the
// customer form and measurement tables, the right column the live totals.
// Every control that changes stored data refreshes the totals panel through
// the recalculated event.
func EstimateViewContent(data EstimateViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="flex justify-between items-center mb-4">
<h1 class="text-2xl font-bold">%s</h1>
<div class="flex gap-2">
<a href="/estimates/%s/export/pdf" class="btn btn-primary btn-sm">Download PDF</a>
<a href="/estimates/%s/export/excel" class="btn btn-secondary btn-sm">Download Excel</a>
<a href="/estimates" class="btn btn-ghost btn-sm">Back</a>
</div>
</div>
<div class="grid grid-cols-1 lg:grid-cols-2 gap-4">
<div>
<div class="bg-base-100 p-4 rounded-box mb-4">
<h2 class="text-lg font-semibold mb-2">Customer</h2>
<form hx-patch="/estimates/%s" hx-trigger="change" hx-swap="none" class="space-y-2">
<label class="form-control"><span class="label-text">Customer Name</span>
<input type="text" name="customer_name" value="%s" class="input input-bordered input-sm"/></label>
<label class="form-control"><span class="label-text">Project Address</span>
<input type="text" name="project_address" value="%s" class="input input-bordered input-sm"/></label>
<label class="form-control"><span class="label-text">Sales Representative</span>
<input type="text" name="sales_rep" value="%s" class="input input-bordered input-sm"/></label>
`, esc(data.ServiceName), esc(data.ID), esc(data.ID), esc(data.ID),
			esc(data.CustomerName), esc(data.ProjectAddress), esc(data.SalesRep)); err != nil {
			return err
		}

		if data.IsStone {
			if _, err := fmt.Fprintf(w, `<label class="form-control"><span class="label-text">Stone Type</span>
<select name="stone_install_type" class="select select-bordered select-sm">
<option value="cultured"%s>Cultured Stone</option>
<option value="natural"%s>Natural Stone</option>
</select></label>
`, selectedIf(data.StoneInstallType != "natural"), selectedIf(data.StoneInstallType == "natural")); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<label class="label cursor-pointer justify-start gap-2">
<input type="checkbox" name="repair" class="checkbox checkbox-sm"%s/><span class="label-text">Repair (+$2,100)</span></label>
<label class="label cursor-pointer justify-start gap-2">
<input type="checkbox" name="rigging" class="checkbox checkbox-sm"%s/><span class="label-text">Rigging (+$1,400)</span></label>
</form>
</div>
`, checked(data.Repair), checked(data.Rigging)); err != nil {
			return err
		}

		for _, table := range data.Tables {
			if err := MeasurementTable(table).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.MiscItems != nil {
			if err := MiscItemsTable(*data.MiscItems).Render(ctx, w); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `</div>
<div hx-get="/estimates/%s/totals" hx-trigger="recalculated from:body" hx-target="#totals" hx-swap="outerHTML">
`, esc(data.ID)); err != nil {
			return err
		}
		if err := TotalsPartial(data.Totals).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>\n</div>\n")
		return err
	})
}

// EstimateViewPage renders the full estimate editor page.
func EstimateViewPage(data EstimateViewData) templ.Component {
	return Layout(data.ServiceName+" Estimate", EstimateViewContent(data))
}
