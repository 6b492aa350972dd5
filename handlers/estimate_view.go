package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
	"estimatecalc/templates"
)

// HandleEstimateView renders the estimate editor.
// Route: GET /estimates/{estimateId}
func HandleEstimateView(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Estimate not found")
		}

		in, err := loadEstimateInput(app, estimate)
		if err != nil {
			log.Printf("estimate_view: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		tables, err := buildTableViews(app, c, estimate)
		if err != nil {
			log.Printf("estimate_view: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		service := services.Service(estimate.GetString("service"))
		data := templates.EstimateViewData{
			ID:               estimate.Id,
			CustomerName:     estimate.GetString("customer_name"),
			ProjectAddress:   estimate.GetString("project_address"),
			SalesRep:         estimate.GetString("sales_rep"),
			Service:          string(service),
			ServiceName:      c.DisplayName(service),
			IsStone:          service == services.ServiceStone,
			StoneInstallType: estimate.GetString("stone_install_type"),
			Repair:           estimate.GetBool("repair"),
			Rigging:          estimate.GetBool("rigging"),
			Tables:           tables,
			MiscItems:        buildMiscView(c, estimate, in),
			Totals:           buildTotalsView(c, estimate, in),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EstimateViewContent(data)
		} else {
			component = templates.EstimateViewPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
