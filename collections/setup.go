package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the estimates, measurement_rows,
// misc_quantities and catalog_items collections exist.
func Setup(app *pocketbase.PocketBase) {
	estimates := ensureCollection(app, "estimates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "project_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "sales_rep", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "service",
			Required:  true,
			Values:    []string{"gutters", "stone", "stucco", "painting"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "stone_install_type",
			Required:  false,
			Values:    []string{"natural", "cultured"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "repair"})
		c.Fields.Add(&core.BoolField{Name: "rigging"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "measurement_rows", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "estimate",
			Required:      true,
			CollectionId:  estimates.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:     "table_kind",
			Required: true,
			Values: []string{
				"gutters", "leaders", "guards",
				"stone_flats", "stone_corners", "stone_sills", "stone_surfaces",
				"surfaces",
			},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		// Half-filled rows are allowed; the calculator skips them.
		c.Fields.Add(&core.TextField{Name: "item_type", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "width", Required: false})
		c.Fields.Add(&core.NumberField{Name: "height", Required: false})
	})

	ensureCollection(app, "misc_quantities", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "estimate",
			Required:      true,
			CollectionId:  estimates.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "item_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
	})

	ensureCollection(app, "catalog_items", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "service",
			Required:  true,
			Values:    []string{"gutters", "stone", "stucco", "painting"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		// Stored as a string so prices survive as exact decimals.
		c.Fields.Add(&core.TextField{Name: "unit_price", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.BoolField{Name: "misc"})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
