package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildGutterTotals(t *testing.T) {
	c := DefaultCatalog()
	in := EstimateInput{
		Service: ServiceGutters,
		Gutters: []MeasurementRow{
			{ItemType: `Gutter 5" white`, Quantity: 100}, // 100 × 13 = 1300
		},
		Leaders: []MeasurementRow{
			{ItemType: "Leaders 2x3 white", Quantity: 40}, // 40 × 12 = 480
		},
		Guards: []MeasurementRow{
			{ItemType: `Screen 5"`, Quantity: 60}, // 60 × 10 = 600
		},
	}

	got := BuildTotals(c, in)

	if !got.Subtotal.Equal(decimal.NewFromInt(2380)) {
		t.Errorf("Subtotal = %s, want 2380", got.Subtotal)
	}
	if !got.CategorySubtotals[CategoryGutters].Equal(decimal.NewFromInt(1300)) {
		t.Errorf("gutters subtotal = %s, want 1300", got.CategorySubtotals[CategoryGutters])
	}
	if !got.CategorySubtotals[CategoryLeaders].Equal(decimal.NewFromInt(480)) {
		t.Errorf("leaders subtotal = %s, want 480", got.CategorySubtotals[CategoryLeaders])
	}
	if !got.CategorySubtotals[CategoryGuards].Equal(decimal.NewFromInt(600)) {
		t.Errorf("guards subtotal = %s, want 600", got.CategorySubtotals[CategoryGuards])
	}
	if !got.DeliveryFee.IsZero() {
		t.Errorf("DeliveryFee = %s, want 0", got.DeliveryFee)
	}
}

func TestBuildStoneTotals(t *testing.T) {
	c := DefaultCatalog()
	in := EstimateInput{
		Service:          ServiceStone,
		StoneInstallItem: StoneItemNatural,
		StoneFlats: []GeometryRow{
			{Width: 144, Height: 144}, // 144 SF
		},
		StoneCorners: []GeometryRow{
			{Width: 24, Height: 1}, // 2 LF
		},
		StoneSills: []GeometryRow{
			{Width: 36, Height: 1}, // 3 LF
		},
		StoneSurfaces: []MeasurementRow{
			{ItemType: "Remove vinyl or aluminum siding", Quantity: 100}, // 237
		},
	}

	got := BuildTotals(c, in)

	if line := got.Lines[StoneItemNatural]; line.Quantity != 144 {
		t.Errorf("natural stone qty = %v, want 144", line.Quantity)
	}
	if _, ok := got.Lines[StoneItemCultured]; ok {
		t.Error("cultured stone line present when natural selected")
	}
	if line := got.Lines[StoneItemCorners]; line.Quantity != 2 {
		t.Errorf("corners qty = %v, want 2", line.Quantity)
	}
	if line := got.Lines[StoneItemSills]; line.Quantity != 3 {
		t.Errorf("sills qty = %v, want 3", line.Quantity)
	}

	if !got.DeliveryFee.Equal(decimal.NewFromInt(222)) {
		t.Errorf("DeliveryFee = %s, want 222", got.DeliveryFee)
	}

	// 144×45 + 2×25 + 3×28 + 100×2.37 + 222 = 6480 + 50 + 84 + 237 + 222
	want := decimal.RequireFromString("7073")
	if !got.Subtotal.Equal(want) {
		t.Errorf("Subtotal = %s, want %s", got.Subtotal, want)
	}
}

func TestBuildStoneTotalsDefaultsToCultured(t *testing.T) {
	c := DefaultCatalog()
	in := EstimateInput{
		Service: ServiceStone,
		StoneFlats: []GeometryRow{
			{Width: 144, Height: 144},
		},
	}

	got := BuildTotals(c, in)

	if line := got.Lines[StoneItemCultured]; line.Quantity != 144 {
		t.Errorf("cultured stone qty = %v, want 144", line.Quantity)
	}
	if _, ok := got.Lines[StoneItemNatural]; ok {
		t.Error("natural stone line present without selection")
	}
}

func TestBuildStoneTotalsUnknownInstallItem(t *testing.T) {
	c := DefaultCatalog()
	in := EstimateInput{
		Service:          ServiceStone,
		StoneInstallItem: "Granite Monolith Installation",
		StoneFlats: []GeometryRow{
			{Width: 144, Height: 144},
		},
	}

	got := BuildTotals(c, in)

	// Unknown install item contributes zero; only the delivery fee remains.
	if !got.Subtotal.Equal(decimal.NewFromInt(222)) {
		t.Errorf("Subtotal = %s, want 222", got.Subtotal)
	}
}

func TestBuildStuccoTotalsIncludesMisc(t *testing.T) {
	c := DefaultCatalog()
	in := EstimateInput{
		Service: ServiceStucco,
		Surfaces: []MeasurementRow{
			{ItemType: "LOXON XP (500-999 SF)", Quantity: 600}, // 600 × 13 = 7800
		},
		MiscQuantities: map[string]float64{
			"Stainless Steel Chimney Cover": 1, // 1509
		},
	}

	got := BuildTotals(c, in)

	want := decimal.RequireFromString("9309")
	if !got.Subtotal.Equal(want) {
		t.Errorf("Subtotal = %s, want %s", got.Subtotal, want)
	}
}

func TestBuildPaintingTotalsIgnoresMisc(t *testing.T) {
	c := DefaultCatalog()
	in := EstimateInput{
		Service: ServicePainting,
		Surfaces: []MeasurementRow{
			{ItemType: "Vinyl and Aluminum Siding", Quantity: 100}, // 806
		},
		MiscQuantities: map[string]float64{
			"Stainless Steel Chimney Cover": 5,
		},
	}

	got := BuildTotals(c, in)

	want := decimal.RequireFromString("806")
	if !got.Subtotal.Equal(want) {
		t.Errorf("Subtotal = %s, want %s (misc not billable for painting)", got.Subtotal, want)
	}
}

func TestBuildTotalsIdempotent(t *testing.T) {
	c := DefaultCatalog()
	in := EstimateInput{
		Service: ServiceGutters,
		Gutters: []MeasurementRow{
			{ItemType: `Gutter 5" white`, Quantity: 10},
			{ItemType: `Gutter 6" all colors`, Quantity: 25.5},
		},
	}

	a := BuildTotals(c, in)
	b := BuildTotals(c, in)

	if !a.Subtotal.Equal(b.Subtotal) {
		t.Errorf("repeated builds differ: %s vs %s", a.Subtotal, b.Subtotal)
	}
	for name, la := range a.Lines {
		lb := b.Lines[name]
		if la.Quantity != lb.Quantity || !la.Total.Equal(lb.Total) {
			t.Errorf("%s: %+v vs %+v", name, la, lb)
		}
	}
}

func TestBuildTotalsUnknownService(t *testing.T) {
	c := DefaultCatalog()
	got := BuildTotals(c, EstimateInput{Service: "roofing"})
	if len(got.Lines) != 0 {
		t.Errorf("unknown service produced %d lines", len(got.Lines))
	}
	if !got.Subtotal.IsZero() {
		t.Errorf("Subtotal = %s, want 0", got.Subtotal)
	}
}
