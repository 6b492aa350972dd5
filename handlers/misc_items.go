package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
)

// HandleMiscSet stores the quantity of one standalone flat-rate item,
// upserting on (estimate, item).
// Route: POST /estimates/{estimateId}/misc?item={name}
func HandleMiscSet(app *pocketbase.PocketBase, c *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("estimateId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Estimate not found")
		}

		itemName := e.Request.URL.Query().Get("item")
		service := services.Service(estimate.GetString("service"))
		if _, err := c.PriceOf(service, itemName); err != nil {
			if errors.Is(err, services.ErrItemNotFound) {
				return ErrorToast(e, http.StatusBadRequest, "Unknown item")
			}
			log.Printf("misc_items: price lookup: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		quantity := parseMeasureField(e.Request.FormValue("quantity"))

		existing, err := app.FindRecordsByFilter(
			"misc_quantities",
			"estimate = {:estimateId} && item_name = {:item}",
			"", 1, 0,
			map[string]any{"estimateId": estimate.Id, "item": itemName},
		)
		if err != nil {
			log.Printf("misc_items: could not query misc_quantities: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var record *core.Record
		if len(existing) > 0 {
			record = existing[0]
		} else {
			col, err := app.FindCollectionByNameOrId("misc_quantities")
			if err != nil {
				log.Printf("misc_items: could not find misc_quantities collection: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record = core.NewRecord(col)
			record.Set("estimate", estimate.Id)
			record.Set("item_name", itemName)
		}
		record.Set("quantity", quantity)

		if err := app.Save(record); err != nil {
			log.Printf("misc_items: could not save misc quantity: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		TriggerRecalculated(e)
		return e.NoContent(http.StatusOK)
	}
}
