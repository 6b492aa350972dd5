package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
)

type rowDef struct {
	tableKind string
	location  string
	itemType  string
	quantity  float64
	width     float64
	height    float64
}

// Seed populates the catalog_items collection from the built-in price book
// and inserts one demo estimate. It is safe to call on every startup: the
// catalog is seeded only when empty, and the demo estimate only when no
// estimates exist.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedCatalog(app); err != nil {
		return err
	}
	return seedDemoEstimate(app)
}

func seedCatalog(app *pocketbase.PocketBase) error {
	catalogCol, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_items collection: %w", err)
	}
	existing, err := app.FindAllRecords(catalogCol)
	if err != nil {
		return fmt.Errorf("seed: could not query catalog_items: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: catalog_items collection is empty – inserting price book …")

	c := services.DefaultCatalog()
	for _, service := range services.Services {
		sortOrder := 0
		insert := func(item services.CatalogItem) error {
			sortOrder++
			r := core.NewRecord(catalogCol)
			r.Set("service", string(service))
			r.Set("name", item.Name)
			r.Set("unit_price", item.UnitPrice.String())
			r.Set("unit", string(item.Unit))
			r.Set("category", string(item.Category))
			r.Set("misc", item.Misc)
			r.Set("sort_order", sortOrder)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save catalog item %q: %w", item.Name, err)
			}
			return nil
		}

		for _, item := range c.Items(service) {
			if err := insert(item); err != nil {
				return err
			}
		}
		for _, item := range c.MiscItems(service) {
			if err := insert(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedDemoEstimate(app *pocketbase.PocketBase) error {
	estimatesCol, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("seed: could not find estimates collection: %w", err)
	}
	existing, err := app.FindAllRecords(estimatesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query estimates: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	rowsCol, err := app.FindCollectionByNameOrId("measurement_rows")
	if err != nil {
		return fmt.Errorf("seed: could not find measurement_rows collection: %w", err)
	}

	log.Println("seed: estimates collection is empty – inserting demo estimate …")

	estimate := core.NewRecord(estimatesCol)
	estimate.Set("customer_name", "Pat Morrison")
	estimate.Set("project_address", "48 Birchwood Dr, Westfield NJ")
	estimate.Set("sales_rep", "Chris Delgado")
	estimate.Set("service", "gutters")
	if err := app.Save(estimate); err != nil {
		return fmt.Errorf("seed: save demo estimate: %w", err)
	}

	rows := []rowDef{
		{tableKind: "gutters", location: "Front", itemType: `Gutter 5" white`, quantity: 42},
		{tableKind: "gutters", location: "Back", itemType: `Gutter 5" white`, quantity: 38},
		{tableKind: "leaders", location: "Front left", itemType: "Leaders 2x3 white", quantity: 24},
		{tableKind: "leaders", location: "Back right", itemType: "Leaders 2x3 white", quantity: 24},
		{tableKind: "guards", location: "Front", itemType: `Screen 5"`, quantity: 42},
	}
	for i, d := range rows {
		r := core.NewRecord(rowsCol)
		r.Set("estimate", estimate.Id)
		r.Set("table_kind", d.tableKind)
		r.Set("sort_order", i+1)
		r.Set("location", d.location)
		r.Set("item_type", d.itemType)
		r.Set("quantity", d.quantity)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save demo measurement row: %w", err)
		}
	}

	return nil
}
