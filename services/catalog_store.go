package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"
)

// LoadCatalog builds the price book from the catalog_items collection. The
// built-in catalog supplies the per-service metadata (display names, specs,
// notices, minimums, delivery fees); the stored records supply the priced
// item lists, so a deployment can adjust prices without a rebuild. Falls
// back to DefaultCatalog when the collection is missing or empty.
func LoadCatalog(app *pocketbase.PocketBase) *Catalog {
	records, err := app.FindRecordsByFilter(
		"catalog_items",
		"id != ''",
		"sort_order",
		0,
		0,
	)
	if err != nil || len(records) == 0 {
		log.Printf("catalog_store: LoadCatalog: using built-in price book (%d stored items)", len(records))
		return DefaultCatalog()
	}

	defaults := DefaultCatalog()
	configs := make(map[Service]*ServiceCatalog, len(Services))
	for _, s := range Services {
		base := defaults.ServiceConfig(s)
		configs[s] = &ServiceCatalog{
			DisplayName: base.DisplayName,
			DeliveryFee: base.DeliveryFee,
			Specs:       base.Specs,
			Notices:     base.Notices,
			Minimums:    base.Minimums,
		}
	}

	for _, r := range records {
		service := Service(r.GetString("service"))
		sc, ok := configs[service]
		if !ok {
			log.Printf("catalog_store: LoadCatalog: skipping item %q with unknown service %q", r.GetString("name"), service)
			continue
		}

		price, err := decimal.NewFromString(r.GetString("unit_price"))
		if err != nil {
			log.Printf("catalog_store: LoadCatalog: skipping item %q with bad price %q: %v", r.GetString("name"), r.GetString("unit_price"), err)
			continue
		}

		item := CatalogItem{
			Name:      r.GetString("name"),
			UnitPrice: price,
			Unit:      Unit(r.GetString("unit")),
			Category:  Category(r.GetString("category")),
			Misc:      r.GetBool("misc"),
		}
		if item.Misc {
			sc.MiscItems = append(sc.MiscItems, item)
		} else {
			sc.Items = append(sc.Items, item)
		}
	}

	// A service with no stored items keeps its built-in price list.
	for _, s := range Services {
		sc := configs[s]
		if len(sc.Items) == 0 && len(sc.MiscItems) == 0 {
			base := defaults.ServiceConfig(s)
			sc.Items = base.Items
			sc.MiscItems = base.MiscItems
		}
	}

	return NewCatalog(configs)
}

// CatalogItemCount returns the number of stored catalog items, used by the
// seed routine to decide whether seeding is needed.
func CatalogItemCount(app *pocketbase.PocketBase) (int, error) {
	records, err := app.FindRecordsByFilter("catalog_items", "id != ''", "", 0, 0)
	if err != nil {
		return 0, fmt.Errorf("count catalog items: %w", err)
	}
	return len(records), nil
}
