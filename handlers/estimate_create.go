package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
	"estimatecalc/templates"
)

// HandleEstimateNew renders the new-estimate form.
// Route: GET /estimates/new
func HandleEstimateNew(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var options []templates.ServiceOption
		for _, s := range services.Services {
			options = append(options, templates.ServiceOption{
				Value: string(s),
				Label: c.DisplayName(s),
			})
		}

		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.EstimateFormContent(options).Render(e.Request.Context(), e.Response)
		}
		return templates.EstimateFormPage(options).Render(e.Request.Context(), e.Response)
	}
}

// HandleEstimateCreate creates an estimate and redirects to its editor.
// Route: POST /estimates
func HandleEstimateCreate(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		service := services.Service(e.Request.FormValue("service"))
		if !services.ValidService(service) {
			return ErrorToast(e, http.StatusBadRequest, "Please choose a valid service")
		}

		col, err := app.FindCollectionByNameOrId("estimates")
		if err != nil {
			log.Printf("estimate_create: could not find estimates collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("customer_name", e.Request.FormValue("customer_name"))
		record.Set("project_address", e.Request.FormValue("project_address"))
		record.Set("sales_rep", e.Request.FormValue("sales_rep"))
		record.Set("service", string(service))
		if service == services.ServiceStone {
			record.Set("stone_install_type", "cultured")
		}

		if err := app.Save(record); err != nil {
			log.Printf("estimate_create: could not save estimate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Start each measurement table with one blank row.
		rowsCol, err := app.FindCollectionByNameOrId("measurement_rows")
		if err == nil {
			for i, kind := range services.TableKindsFor(service) {
				row := core.NewRecord(rowsCol)
				row.Set("estimate", record.Id)
				row.Set("table_kind", string(kind))
				row.Set("sort_order", i+1)
				if err := app.Save(row); err != nil {
					log.Printf("estimate_create: could not save starter row: %v", err)
				}
			}
		}

		SetToast(e, "success", "Estimate created")
		e.Response.Header().Set("HX-Redirect", "/estimates/"+record.Id)
		return e.NoContent(http.StatusOK)
	}
}
