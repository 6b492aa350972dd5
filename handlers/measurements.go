package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
	"estimatecalc/templates"
)

// validTableKind reports whether kind belongs to the estimate's service.
func validTableKind(service services.Service, kind services.TableKind) bool {
	for _, k := range services.TableKindsFor(service) {
		if k == kind {
			return true
		}
	}
	return false
}

// renderTable re-renders one measurement table partial after a mutation.
func renderTable(e *core.RequestEvent, app *pocketbase.PocketBase, c *services.Catalog, estimate *core.Record, kind services.TableKind) error {
	tables, err := buildTableViews(app, c, estimate)
	if err != nil {
		log.Printf("measurements: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	for _, t := range tables {
		if t.Kind == string(kind) {
			e.Response.Header().Set("HX-Retarget", "#table-"+t.Kind)
			e.Response.Header().Set("HX-Reswap", "outerHTML")
			return templates.MeasurementTable(t).Render(e.Request.Context(), e.Response)
		}
	}
	return e.NoContent(http.StatusOK)
}

// HandleRowAdd appends a blank row to one measurement table.
// Route: POST /estimates/{estimateId}/rows/{kind}
func HandleRowAdd(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Estimate not found")
		}

		kind := services.TableKind(e.Request.PathValue("kind"))
		if !validTableKind(services.Service(estimate.GetString("service")), kind) {
			return ErrorToast(e, http.StatusBadRequest, "Unknown measurement table")
		}

		col, err := app.FindCollectionByNameOrId("measurement_rows")
		if err != nil {
			log.Printf("measurements: could not find measurement_rows collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		row := core.NewRecord(col)
		row.Set("estimate", estimate.Id)
		row.Set("table_kind", string(kind))
		row.Set("sort_order", nextSortOrder(app, estimate.Id, string(kind)))
		if err := app.Save(row); err != nil {
			log.Printf("measurements: could not save row: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		TriggerRecalculated(e)
		return renderTable(e, app, c, estimate, kind)
	}
}

// parseMeasureField parses a numeric form value; an empty or malformed entry
// stores zero, matching the calculator's leniency toward half-filled rows.
func parseMeasureField(v string) float64 {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// HandleRowPatch updates the editable cells of a measurement row.
// Route: PATCH /measurements/{rowId}
func HandleRowPatch(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		row, err := app.FindRecordById("measurement_rows", e.Request.PathValue("rowId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Measurement row not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		form := e.Request.Form

		if form.Has("location") {
			row.Set("location", form.Get("location"))
		}
		if form.Has("item_type") {
			row.Set("item_type", form.Get("item_type"))
		}
		for _, field := range []string{"quantity", "width", "height"} {
			if form.Has(field) {
				row.Set(field, parseMeasureField(form.Get(field)))
			}
		}

		if err := app.Save(row); err != nil {
			log.Printf("measurements: could not save row: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		TriggerRecalculated(e)
		return e.NoContent(http.StatusOK)
	}
}

// HandleRowDelete removes a measurement row and re-renders its table.
// Route: DELETE /measurements/{rowId}
func HandleRowDelete(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		row, err := app.FindRecordById("measurement_rows", e.Request.PathValue("rowId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Measurement row not found")
		}

		estimate, err := app.FindRecordById("estimates", row.GetString("estimate"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Estimate not found")
		}
		kind := services.TableKind(row.GetString("table_kind"))

		if err := app.Delete(row); err != nil {
			log.Printf("measurements: could not delete row: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		TriggerRecalculated(e)
		return renderTable(e, app, c, estimate, kind)
	}
}
