package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// MeasurementRow is one data-entry row joined to the catalog by item name.
// An empty ItemType or NaN Quantity marks the row incomplete; incomplete
// rows are skipped during aggregation without error.
type MeasurementRow struct {
	Location string
	ItemType string
	Quantity float64
}

// GeometryRow is one raw width/height entry (inches) for the stone
// flats/corners/sills tables. The billable quantity is derived via Convert.
type GeometryRow struct {
	Location string
	Width    float64
	Height   float64
}

// LineTotal is the aggregated result for a single catalog item.
// Total is exactly Quantity × UnitPrice; rounding happens only at display.
type LineTotal struct {
	Quantity  float64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// ServiceTotals maps item name → aggregated line. It is recomputed from
// scratch on every calculation request and never persisted.
type ServiceTotals map[string]LineTotal

// lineFor builds a LineTotal from an accumulated quantity and a unit price.
func lineFor(qty float64, unitPrice decimal.Decimal) LineTotal {
	return LineTotal{
		Quantity:  qty,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromFloat(qty)),
	}
}

// AggregateRows reduces measurement rows into per-item lines for the given
// catalog items. When category is non-empty only items in that category
// participate (the gutter family routes each sub-table to its own category).
//
// Rows referencing unknown item names contribute nothing: operators may
// leave rows half-filled, so a lookup miss is leniency, not an error.
// Accumulation is a commutative sum, so row order never affects the result.
func AggregateRows(rows []MeasurementRow, items []CatalogItem, category Category) ServiceTotals {
	totals := make(ServiceTotals)
	quantities := make(map[string]float64)

	for _, row := range rows {
		if row.ItemType == "" || math.IsNaN(row.Quantity) {
			continue
		}
		quantities[row.ItemType] += row.Quantity
	}

	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		totals[item.Name] = lineFor(quantities[item.Name], item.UnitPrice)
	}
	return totals
}

// AggregateGeometry converts and sums raw width/height rows into a single
// billable quantity (SF for ModeArea, LF for ModeLength).
func AggregateGeometry(rows []GeometryRow, mode ConvertMode) float64 {
	var sum float64
	for _, row := range rows {
		sum += Convert(row.Width, row.Height, mode)
	}
	return sum
}

// mergeMisc folds standalone flat-rate quantities into an existing totals
// mapping. Items absent from quantities get a zero line so the full misc
// rate card shows up in the calculation.
func mergeMisc(totals ServiceTotals, miscItems []CatalogItem, quantities map[string]float64) {
	for _, item := range miscItems {
		totals[item.Name] = lineFor(quantities[item.Name], item.UnitPrice)
	}
}
