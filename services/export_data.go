package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EstimateRow is a single printable line of the itemized estimate table.
type EstimateRow struct {
	Item      string
	Quantity  float64
	Unit      Unit
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// CategorySubtotal is one labeled subtotal line (gutter family only).
type CategorySubtotal struct {
	Label  string
	Amount decimal.Decimal
}

// EstimateDocData holds everything the document renderers need: customer
// block, dated itemized table, category subtotals, delivery fee, the full
// pricing cascade and the contract-specification bullets.
type EstimateDocData struct {
	Title             string
	ServiceName       string
	Customer          CustomerInfo
	Date              string
	Rows              []EstimateRow
	CategorySubtotals []CategorySubtotal
	DeliveryFee       decimal.Decimal
	Pricing           PricingBreakdown
	Specs             []string
}

// gutterCategoryLabels orders the gutter-family subtotal lines.
var gutterCategoryLabels = []struct {
	Category Category
	Label    string
}{
	{CategoryGutters, "Gutters"},
	{CategoryLeaders, "Leaders"},
	{CategoryGuards, "Gutter Guards"},
}

// BuildEstimateDoc assembles the renderable estimate document for one
// service. Customer info must be complete; everything else is derived from
// the measurement snapshot. Lines with zero quantity are filtered out, and
// rows keep catalog order so the document is deterministic.
func BuildEstimateDoc(c *Catalog, in EstimateInput, customer CustomerInfo, repair, rigging bool, now time.Time) (EstimateDocData, error) {
	if err := customer.Validate(); err != nil {
		return EstimateDocData{}, err
	}

	totals := BuildTotals(c, in)
	pricing := PriceProject(totals.Subtotal, repair, rigging)

	var rows []EstimateRow
	appendRows := func(items []CatalogItem) {
		for _, item := range items {
			line, ok := totals.Lines[item.Name]
			if !ok || line.Quantity <= 0 {
				continue
			}
			rows = append(rows, EstimateRow{
				Item:      item.Name,
				Quantity:  line.Quantity,
				Unit:      item.Unit,
				UnitPrice: line.UnitPrice,
				Total:     line.Total,
			})
		}
	}
	appendRows(c.Items(in.Service))
	appendRows(c.MiscItems(in.Service))

	var categorySubtotals []CategorySubtotal
	if totals.CategorySubtotals != nil {
		for _, cl := range gutterCategoryLabels {
			categorySubtotals = append(categorySubtotals, CategorySubtotal{
				Label:  cl.Label,
				Amount: totals.CategorySubtotals[cl.Category],
			})
		}
	}

	sc := c.ServiceConfig(in.Service)
	var specs []string
	if sc != nil {
		specs = sc.Specs
	}

	return EstimateDocData{
		Title:             "CONSTRUCTION ESTIMATE",
		ServiceName:       c.DisplayName(in.Service),
		Customer:          customer,
		Date:              now.Format("January 2, 2006"),
		Rows:              rows,
		CategorySubtotals: categorySubtotals,
		DeliveryFee:       totals.DeliveryFee,
		Pricing:           pricing,
		Specs:             specs,
	}, nil
}

// EstimateFilename builds the download filename for a generated document:
// {customerName}_{salesRep}_{YYYYMMDD}.{ext} with spaces replaced by
// underscores. Path separators are stripped so the name is always safe to
// hand to a browser.
func EstimateFilename(customerName, salesRep string, date time.Time, ext string) string {
	name := customerName + "_" + salesRep + "_" + date.Format("20060102") + "." + ext
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, ":", "-")
	return name
}
