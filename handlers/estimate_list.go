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

// HandleEstimateList renders the estimate index.
// Route: GET /estimates
func HandleEstimateList(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimatesCol, err := app.FindCollectionByNameOrId("estimates")
		if err != nil {
			log.Printf("estimate_list: could not find estimates collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(estimatesCol, "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("estimate_list: could not query estimates: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var items []templates.EstimateListItem
		for _, rec := range records {
			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			customerName := rec.GetString("customer_name")
			if customerName == "" {
				customerName = "(no customer)"
			}

			items = append(items, templates.EstimateListItem{
				ID:             rec.Id,
				CustomerName:   customerName,
				ProjectAddress: rec.GetString("project_address"),
				SalesRep:       rec.GetString("sales_rep"),
				ServiceName:    c.DisplayName(services.Service(rec.GetString("service"))),
				CreatedDate:    createdDate,
			})
		}

		data := templates.EstimateListData{
			Items:      items,
			TotalCount: len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EstimateListContent(data)
		} else {
			component = templates.EstimateListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
