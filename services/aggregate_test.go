package services

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func gutterItems() []CatalogItem {
	return DefaultCatalog().Items(ServiceGutters)
}

func TestAggregateRows(t *testing.T) {
	rows := []MeasurementRow{
		{Location: "front", ItemType: `Gutter 5" white`, Quantity: 10},
		{Location: "back", ItemType: `Gutter 5" white`, Quantity: 20},
		{Location: "side", ItemType: `Gutter 5" white`, Quantity: 5},
	}

	totals := AggregateRows(rows, gutterItems(), CategoryGutters)

	line, ok := totals[`Gutter 5" white`]
	if !ok {
		t.Fatal("no line for aggregated item")
	}
	if line.Quantity != 35 {
		t.Errorf("Quantity = %v, want 35", line.Quantity)
	}
	if !line.Total.Equal(decimal.NewFromInt(455)) {
		t.Errorf("Total = %s, want 455", line.Total)
	}
}

func TestAggregateRowsOrderIndependent(t *testing.T) {
	forward := []MeasurementRow{
		{ItemType: `Gutter 5" white`, Quantity: 10},
		{ItemType: `Gutter 6" white`, Quantity: 7},
		{ItemType: `Gutter 5" white`, Quantity: 3},
	}
	reversed := []MeasurementRow{
		{ItemType: `Gutter 5" white`, Quantity: 3},
		{ItemType: `Gutter 6" white`, Quantity: 7},
		{ItemType: `Gutter 5" white`, Quantity: 10},
	}

	a := AggregateRows(forward, gutterItems(), CategoryGutters)
	b := AggregateRows(reversed, gutterItems(), CategoryGutters)

	if len(a) != len(b) {
		t.Fatalf("line counts differ: %d vs %d", len(a), len(b))
	}
	for name, la := range a {
		lb := b[name]
		if la.Quantity != lb.Quantity || !la.Total.Equal(lb.Total) {
			t.Errorf("%s: %+v vs %+v", name, la, lb)
		}
	}
}

func TestAggregateRowsSkipsIncomplete(t *testing.T) {
	rows := []MeasurementRow{
		{ItemType: "", Quantity: 100},
		{ItemType: `Gutter 5" white`, Quantity: math.NaN()},
		{ItemType: `Gutter 5" white`, Quantity: 10},
	}

	totals := AggregateRows(rows, gutterItems(), CategoryGutters)
	if got := totals[`Gutter 5" white`].Quantity; got != 10 {
		t.Errorf("Quantity = %v, want 10 (incomplete rows skipped)", got)
	}
}

func TestAggregateRowsUnknownItemContributesZero(t *testing.T) {
	rows := []MeasurementRow{
		{ItemType: "No Such Item", Quantity: 50},
		{ItemType: `Gutter 5" white`, Quantity: 10},
	}

	totals := AggregateRows(rows, gutterItems(), CategoryGutters)

	if _, ok := totals["No Such Item"]; ok {
		t.Error("unknown item produced a line")
	}
	sum := decimal.Zero
	for _, line := range totals {
		sum = sum.Add(line.Total)
	}
	if !sum.Equal(decimal.NewFromInt(130)) {
		t.Errorf("sum = %s, want 130 (unknown item contributes nothing)", sum)
	}
}

func TestAggregateRowsCategoryFilter(t *testing.T) {
	rows := []MeasurementRow{
		{ItemType: `Gutter 5" white`, Quantity: 10},
		{ItemType: "Leaders 2x3 white", Quantity: 8},
	}

	totals := AggregateRows(rows, gutterItems(), CategoryLeaders)

	if _, ok := totals[`Gutter 5" white`]; ok {
		t.Error("gutter item appeared in leaders-only aggregation")
	}
	if got := totals["Leaders 2x3 white"].Quantity; got != 8 {
		t.Errorf("leader Quantity = %v, want 8", got)
	}
	// Every leader item gets a line, matched or not.
	if _, ok := totals["Leaders 3x4 white"]; !ok {
		t.Error("unmatched leader item missing its zero line")
	}
}

func TestAggregateRowsEmptyInput(t *testing.T) {
	totals := AggregateRows(nil, gutterItems(), CategoryGutters)
	for name, line := range totals {
		if line.Quantity != 0 || !line.Total.IsZero() {
			t.Errorf("%s: nonzero line from empty input: %+v", name, line)
		}
	}
}

func TestMergeMisc(t *testing.T) {
	c := DefaultCatalog()
	totals := make(ServiceTotals)

	mergeMisc(totals, c.MiscItems(ServiceStucco), map[string]float64{
		"Stainless Steel Chimney Cover": 2,
	})

	line := totals["Stainless Steel Chimney Cover"]
	if line.Quantity != 2 {
		t.Errorf("Quantity = %v, want 2", line.Quantity)
	}
	if !line.Total.Equal(decimal.NewFromInt(3018)) {
		t.Errorf("Total = %s, want 3018", line.Total)
	}

	// Absent items still get a zero line.
	if _, ok := totals["Paint Samples (Includes 1 Color Sample)"]; !ok {
		t.Error("misc item without a quantity missing its zero line")
	}
}
