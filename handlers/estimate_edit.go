package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
)

// HandleEstimateUpdate patches the customer block, stone install type and
// add-on flags. Checkbox fields are always applied: an unchecked box simply
// posts no value.
// Route: PATCH /estimates/{estimateId}
func HandleEstimateUpdate(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Estimate not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		form := e.Request.Form

		for _, field := range []string{"customer_name", "project_address", "sales_rep"} {
			if form.Has(field) {
				estimate.Set(field, form.Get(field))
			}
		}
		if form.Has("stone_install_type") {
			v := form.Get("stone_install_type")
			if v != "natural" && v != "cultured" {
				return ErrorToast(e, http.StatusBadRequest, "Unknown stone type")
			}
			estimate.Set("stone_install_type", v)
		}
		estimate.Set("repair", form.Has("repair"))
		estimate.Set("rigging", form.Has("rigging"))

		if err := app.Save(estimate); err != nil {
			log.Printf("estimate_edit: could not save estimate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		TriggerRecalculated(e)
		return e.NoContent(http.StatusOK)
	}
}

// HandleEstimateDelete removes an estimate; measurement rows and misc
// quantities cascade. Returns the refreshed list partial.
// Route: DELETE /estimates/{estimateId}
func HandleEstimateDelete(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Estimate not found")
		}

		if err := app.Delete(estimate); err != nil {
			log.Printf("estimate_edit: could not delete estimate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Estimate deleted")
		return HandleEstimateList(app, c)(e)
	}
}
