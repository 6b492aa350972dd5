package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// EstimateListItem is one row of the estimate index.
type EstimateListItem struct {
	ID             string
	CustomerName   string
	ProjectAddress string
	SalesRep       string
	ServiceName    string
	CreatedDate    string
}

// EstimateListData feeds the estimate index page.
type EstimateListData struct {
	Items      []EstimateListItem
	TotalCount int
}

// ServiceOption is one entry of the service picker on the new-estimate form.
type ServiceOption struct {
	Value string
	Label string
}

// EstimateListContent renders the estimate table partial.
func EstimateListContent(data EstimateListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="estimate-list">
<div class="flex justify-between items-center mb-4">
<h1 class="text-2xl font-bold">Estimates (%d)</h1>
<a href="/estimates/new" class="btn btn-primary">New Estimate</a>
</div>
<table class="table bg-base-100">
<thead><tr><th>Customer</th><th>Address</th><th>Sales Rep</th><th>Service</th><th>Created</th><th></th></tr></thead>
<tbody>
`, data.TotalCount); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			if _, err := io.WriteString(w, `<tr><td colspan="6" class="text-center opacity-60">No estimates yet</td></tr>`+"\n"); err != nil {
				return err
			}
		}
		for _, it := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/estimates/%s" class="link">%s</a></td>
<td>%s</td><td>%s</td><td>%s</td><td>%s</td>
<td><button class="btn btn-ghost btn-xs text-error" hx-delete="/estimates/%s" hx-confirm="Delete this estimate?" hx-target="#estimate-list" hx-swap="outerHTML">Delete</button></td>
</tr>
`, esc(it.ID), esc(it.CustomerName), esc(it.ProjectAddress), esc(it.SalesRep), esc(it.ServiceName), esc(it.CreatedDate), esc(it.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n</div>\n")
		return err
	})
}

// EstimateListPage renders the full estimate index page.
func EstimateListPage(data EstimateListData) templ.Component {
	return Layout("Estimates", EstimateListContent(data))
}

// EstimateFormContent renders the new-estimate form.
func EstimateFormContent(options []ServiceOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="max-w-lg mx-auto bg-base-100 p-6 rounded-box">
<h1 class="text-2xl font-bold mb-4">New Estimate</h1>
<form hx-post="/estimates" hx-swap="none" class="space-y-4">
<label class="form-control"><span class="label-text">Customer Name</span>
<input type="text" name="customer_name" class="input input-bordered"/></label>
<label class="form-control"><span class="label-text">Project Address</span>
<input type="text" name="project_address" class="input input-bordered"/></label>
<label class="form-control"><span class="label-text">Sales Representative</span>
<input type="text" name="sales_rep" class="input input-bordered"/></label>
<label class="form-control"><span class="label-text">Service</span>
<select name="service" class="select select-bordered">
`); err != nil {
			return err
		}
		for _, opt := range options {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`+"\n", esc(opt.Value), esc(opt.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>
<button type="submit" class="btn btn-primary w-full">Create Estimate</button>
</form>
</div>
`)
		return err
	})
}

// EstimateFormPage renders the full new-estimate page.
func EstimateFormPage(options []ServiceOption) templ.Component {
	return Layout("New Estimate", EstimateFormContent(options))
}
