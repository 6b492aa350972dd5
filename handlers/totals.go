package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
	"estimatecalc/templates"
)

// HandleTotalsPartial recomputes the calculation panel from the stored rows.
// Nothing is cached: every request rebuilds the snapshot and reprices it.
// Route: GET /estimates/{estimateId}/totals
func HandleTotalsPartial(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Estimate not found")
		}

		in, err := loadEstimateInput(app, estimate)
		if err != nil {
			log.Printf("totals: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return templates.TotalsPartial(buildTotalsView(c, estimate, in)).Render(e.Request.Context(), e.Response)
	}
}
