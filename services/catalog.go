// Package services provides the pricing core for estimate calculation:
// catalog lookups, geometry conversion, quantity aggregation, totals
// building and the cascading-discount pricing engine.
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is the billing unit of a catalog item.
type Unit string

const (
	UnitLF   Unit = "LF"
	UnitSF   Unit = "SF"
	UnitEach Unit = "Each"
	UnitPair Unit = "Pair"
	UnitItem Unit = "Item"
	UnitSide Unit = "Side"
)

// Category groups catalog items within a service. For the gutter family it
// routes measurement rows to the correct sub-table (gutters, leaders,
// guards); for stone it only groups the price list for display.
type Category string

const (
	CategoryGutters      Category = "gutters"
	CategoryLeaders      Category = "leaders"
	CategoryGuards       Category = "guards"
	CategoryDemolition   Category = "demolition"
	CategoryInstallation Category = "installation"
	CategoryTrim         Category = "trim"
)

// Service identifies one of the four estimate services.
type Service string

const (
	ServiceGutters  Service = "gutters"
	ServiceStone    Service = "stone"
	ServiceStucco   Service = "stucco"
	ServicePainting Service = "painting"
)

// Services lists all valid services in display order.
var Services = []Service{ServiceGutters, ServiceStone, ServiceStucco, ServicePainting}

// ValidService reports whether s is one of the known services.
func ValidService(s Service) bool {
	switch s {
	case ServiceGutters, ServiceStone, ServiceStucco, ServicePainting:
		return true
	}
	return false
}

// ErrItemNotFound is returned by PriceOf when an item name is not in the
// catalog for the requested service.
var ErrItemNotFound = errors.New("catalog item not found")

// CatalogItem is one line of the price book. Name is the unique,
// case-sensitive join key used by measurement rows.
type CatalogItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Unit      Unit
	Category  Category
	Misc      bool // standalone flat-rate item (no measurement row)
}

// ServiceCatalog holds the price book and document metadata for one service.
type ServiceCatalog struct {
	DisplayName string
	Items       []CatalogItem // ordered as they appear on the estimate
	MiscItems   []CatalogItem // stucco's standalone flat-rate items
	DeliveryFee decimal.Decimal

	// Static document metadata rendered alongside the totals.
	Specs    []string // contract specification bullets (gutters, stone)
	Notices  []string // deposit / job minimum notices (gutters)
	Minimums []Minimum
}

// Minimum is one row of the job-minimums table shown for stucco and painting.
type Minimum struct {
	Label  string
	Amount string
}

// Catalog is the immutable price book for all services. It is built once at
// startup (from DefaultCatalog or the catalog_items collection) and never
// mutated afterwards.
type Catalog struct {
	services map[Service]*ServiceCatalog
}

// NewCatalog builds a Catalog from per-service configurations.
func NewCatalog(configs map[Service]*ServiceCatalog) *Catalog {
	return &Catalog{services: configs}
}

// ServiceConfig returns the configuration for a service, or nil if unknown.
func (c *Catalog) ServiceConfig(s Service) *ServiceCatalog {
	return c.services[s]
}

// DisplayName returns the human-readable service name.
func (c *Catalog) DisplayName(s Service) string {
	if sc := c.services[s]; sc != nil {
		return sc.DisplayName
	}
	return string(s)
}

// Items returns the ordered item list for a service (misc items excluded).
func (c *Catalog) Items(s Service) []CatalogItem {
	if sc := c.services[s]; sc != nil {
		return sc.Items
	}
	return nil
}

// MiscItems returns the standalone flat-rate items for a service.
func (c *Catalog) MiscItems(s Service) []CatalogItem {
	if sc := c.services[s]; sc != nil {
		return sc.MiscItems
	}
	return nil
}

// DeliveryFee returns the flat per-estimate delivery fee for a service.
// Zero for every service except stone.
func (c *Catalog) DeliveryFee(s Service) decimal.Decimal {
	if sc := c.services[s]; sc != nil {
		return sc.DeliveryFee
	}
	return decimal.Zero
}

// PriceOf looks up the unit price of an item by its exact name, searching
// both the regular and misc item lists.
func (c *Catalog) PriceOf(s Service, name string) (decimal.Decimal, error) {
	sc := c.services[s]
	if sc == nil {
		return decimal.Zero, fmt.Errorf("service %q: %w", s, ErrItemNotFound)
	}
	for _, it := range sc.Items {
		if it.Name == name {
			return it.UnitPrice, nil
		}
	}
	for _, it := range sc.MiscItems {
		if it.Name == name {
			return it.UnitPrice, nil
		}
	}
	return decimal.Zero, fmt.Errorf("item %q: %w", name, ErrItemNotFound)
}

// ItemsInCategory returns the names of all items in the given category,
// preserving catalog order.
func (c *Catalog) ItemsInCategory(s Service, cat Category) []string {
	sc := c.services[s]
	if sc == nil {
		return nil
	}
	var names []string
	for _, it := range sc.Items {
		if it.Category == cat {
			names = append(names, it.Name)
		}
	}
	return names
}

// usd parses a literal dollar amount. The price book is compiled in, so a
// malformed literal is a programming error.
func usd(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Fixed stone catalog item names the three geometry tables bill to.
const (
	StoneItemNatural  = "Natural Stone Installation"
	StoneItemCultured = "Cultured Stone Installation"
	StoneItemCorners  = "Corner Trim Installation"
	StoneItemSills    = "Stone Sill Installation"
)

// DefaultCatalog returns the built-in price book. Prices are policy data:
// a deployment may override them through the catalog_items collection, but
// the shape (name-keyed, category-tagged) is part of the core contract.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Service]*ServiceCatalog{
		ServiceGutters: {
			DisplayName: "Gutters and Leaders",
			Items: []CatalogItem{
				{Name: `Gutter 5" white`, UnitPrice: usd("13"), Unit: UnitLF, Category: CategoryGutters},
				{Name: `Gutter 5" all colors`, UnitPrice: usd("15"), Unit: UnitLF, Category: CategoryGutters},
				{Name: `Gutter 6" white`, UnitPrice: usd("18"), Unit: UnitLF, Category: CategoryGutters},
				{Name: `Gutter 6" all colors`, UnitPrice: usd("19"), Unit: UnitLF, Category: CategoryGutters},
				{Name: "Extra Gauge (0.032 gauge)", UnitPrice: usd("1"), Unit: UnitLF, Category: CategoryGutters},
				{Name: "Leaders 2x3 white", UnitPrice: usd("12"), Unit: UnitLF, Category: CategoryLeaders},
				{Name: "Leaders 2x3 all colors", UnitPrice: usd("13"), Unit: UnitLF, Category: CategoryLeaders},
				{Name: "Leader 2x3 white - PVC", UnitPrice: usd("18"), Unit: UnitLF, Category: CategoryLeaders},
				{Name: "Leaders 3x4 white", UnitPrice: usd("15"), Unit: UnitLF, Category: CategoryLeaders},
				{Name: "Leaders 3x4 all colors", UnitPrice: usd("16"), Unit: UnitLF, Category: CategoryLeaders},
				{Name: `Leader 3" Round Corrugated`, UnitPrice: usd("47"), Unit: UnitLF, Category: CategoryLeaders},
				{Name: `Shur-flow 5" (white)`, UnitPrice: usd("15"), Unit: UnitLF, Category: CategoryGuards},
				{Name: `Shur-flow 5" (black or aluminum)`, UnitPrice: usd("16"), Unit: UnitLF, Category: CategoryGuards},
				{Name: `Shur-flow 6" (white)`, UnitPrice: usd("16"), Unit: UnitLF, Category: CategoryGuards},
				{Name: `Shur-flow 6" (black or aluminum)`, UnitPrice: usd("18"), Unit: UnitLF, Category: CategoryGuards},
				{Name: `Screen 5"`, UnitPrice: usd("10"), Unit: UnitLF, Category: CategoryGuards},
				{Name: `Screen 6"`, UnitPrice: usd("12"), Unit: UnitLF, Category: CategoryGuards},
			},
			Notices: []string{
				"50% deposit required for all gutter and leader projects",
				"JOB MINIMUM IS $650 IF COMBINED WITH OTHER WORK - STAND ALONE JOB MINIMUM IS $2800",
			},
			Specs: []string{
				"Work area and Location",
				"Type of removal (if any)",
				"Install gutters and leaders on entire home",
				`5" gutters @ .27 gauge`,
				"2x3 leaders @ .19 gauge",
				"Install metal gutter screens (if any)",
				"Color is White",
			},
		},
		ServiceStone: {
			DisplayName: "Stone Veneer",
			Items: []CatalogItem{
				{Name: "Remove vinyl or aluminum siding", UnitPrice: usd("2.37"), Unit: UnitSF, Category: CategoryDemolition},
				{Name: "Remove wood siding (simple)", UnitPrice: usd("2.67"), Unit: UnitSF, Category: CategoryDemolition},
				{Name: "Remove wood siding (complex)", UnitPrice: usd("2.97"), Unit: UnitSF, Category: CategoryDemolition},
				{Name: "Remove EIFS up to 8ft", UnitPrice: usd("4.00"), Unit: UnitSF, Category: CategoryDemolition},
				{Name: StoneItemNatural, UnitPrice: usd("45"), Unit: UnitSF, Category: CategoryInstallation},
				{Name: StoneItemCultured, UnitPrice: usd("35"), Unit: UnitSF, Category: CategoryInstallation},
				{Name: StoneItemCorners, UnitPrice: usd("25"), Unit: UnitLF, Category: CategoryTrim},
				{Name: StoneItemSills, UnitPrice: usd("28"), Unit: UnitLF, Category: CategoryTrim},
			},
			DeliveryFee: usd("222"),
			Specs: []string{
				"Work area and Location",
				"Type of removal (if any)",
				"Layers of removal (if any)",
				"Any other special requirements",
				"Install two layers of jumbo tex felt paper (only if over plywood)",
				"Install wire lathe",
				"Install metal j-channel where required",
				"Install cement scratch coat",
				"Install stone flats",
				"Install stone corners (only when required)",
				"Install stone sill (only when required)",
				`Stone to be installed as "1/2" joint`,
				"Caulk where required",
				"Install mortar into joints as required",
				"Dispose of debris",
				"Stone Selection",
				"Sill Color",
				"Joint Color",
			},
		},
		ServiceStucco: {
			DisplayName: "Stucco Painting",
			Items: []CatalogItem{
				{Name: "LOXON XP (200-499 SF)", UnitPrice: usd("14.27"), Unit: UnitSF},
				{Name: "LOXON XP (500-999 SF)", UnitPrice: usd("13.0"), Unit: UnitSF},
				{Name: "LOXON XP (1000-1699 SF)", UnitPrice: usd("12.45"), Unit: UnitSF},
				{Name: "LOXON XP (1700-2999 SF)", UnitPrice: usd("11.78"), Unit: UnitSF},
				{Name: "LOXON XP (3000-4499 SF)", UnitPrice: usd("11.38"), Unit: UnitSF},
			},
			MiscItems: []CatalogItem{
				{Name: "Remove, Paint and Re-Install Shutters (per pair)", UnitPrice: usd("290"), Unit: UnitPair, Misc: true},
				{Name: "Stainless Steel Chimney Cover", UnitPrice: usd("1509"), Unit: UnitItem, Misc: true},
				{Name: "Plywood (demo, debris, install 1 sheet) 32 sf", UnitPrice: usd("439"), Unit: UnitItem, Misc: true},
				{Name: "Remove and Re-Install Existing Gutters", UnitPrice: usd("6"), Unit: UnitLF, Misc: true},
				{Name: "Additional Rigging (For Caulking Only Projects)", UnitPrice: usd("435"), Unit: UnitSide, Misc: true},
				{Name: "Clear Sealer, Ladders, Powerwash", UnitPrice: usd("7"), Unit: UnitSF, Misc: true},
				{Name: "Additional Heavy Duty Powerwash", UnitPrice: usd("2"), Unit: UnitSF, Misc: true},
				{Name: `Additional stucco crack repair above 50 lf (1" or less)`, UnitPrice: usd("7"), Unit: UnitLF, Misc: true},
				{Name: "Spot Point Brick (* See rules page)", UnitPrice: usd("29"), Unit: UnitSF, Misc: true},
				{Name: "Full Cut and Re-Point (Under 500sf)", UnitPrice: usd("29"), Unit: UnitSF, Misc: true},
				{Name: "Full Cut and Re-Point (Over 500sf)", UnitPrice: usd("24"), Unit: UnitSF, Misc: true},
				{Name: `Full Coping over Parapet Wall up to 12"`, UnitPrice: usd("85"), Unit: UnitLF, Misc: true},
				{Name: "Paint Samples (Includes 1 Color Sample)", UnitPrice: usd("108"), Unit: UnitItem, Misc: true},
			},
			Minimums: standardMinimums(),
		},
		ServicePainting: {
			DisplayName: "House Painting",
			Items: []CatalogItem{
				{Name: "Vinyl and Aluminum Siding", UnitPrice: usd("8.06"), Unit: UnitSF},
				{Name: "Wood Clapboard (simple)", UnitPrice: usd("9.28"), Unit: UnitSF},
				{Name: "Wood Clapboard (complex)", UnitPrice: usd("11.5"), Unit: UnitSF},
				{Name: "Wood Shake (simple)", UnitPrice: usd("10.02"), Unit: UnitSF},
				{Name: "Wood Shake (complex)", UnitPrice: usd("12.19"), Unit: UnitSF},
				{Name: "Window Trim", UnitPrice: usd("15.50"), Unit: UnitLF},
				{Name: "Door Trim", UnitPrice: usd("18.75"), Unit: UnitLF},
			},
			Minimums: standardMinimums(),
		},
	})
}

// standardMinimums is the job-minimums table for standard 2 1/2 story homes
// under 26 feet, shared by the stucco and painting services.
func standardMinimums() []Minimum {
	return []Minimum{
		{Label: "LOXON", Amount: "$4,200"},
		{Label: "CLEAR SEALER", Amount: "$3,500"},
		{Label: "WOODPECKER HOLES (INCLUDES UP TO 6 HOLES) ADD $500 PER HOLE", Amount: "$3,500"},
		{Label: "BCMA", Amount: "$4,200"},
		{Label: "SPOT POINTING", Amount: "$4,900"},
		{Label: "FULL POINTING", Amount: "$5,600"},
		{Label: "CAULKING", Amount: "$5,600"},
	}
}
