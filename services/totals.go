package services

import "github.com/shopspring/decimal"

// EstimateInput is a snapshot of every measurement source for one estimate.
// Handlers assemble it from stored rows; the totals builder never reads or
// mutates shared state, so rebuilding from the same snapshot always yields
// the same result.
type EstimateInput struct {
	Service Service

	// Gutter family: one row set per category.
	Gutters []MeasurementRow
	Leaders []MeasurementRow
	Guards  []MeasurementRow

	// Stone: three geometry tables billed to fixed items, plus itemized
	// surface rows for demolition/removal work.
	StoneFlats       []GeometryRow
	StoneCorners     []GeometryRow
	StoneSills       []GeometryRow
	StoneSurfaces    []MeasurementRow
	StoneInstallItem string // StoneItemNatural or StoneItemCultured

	// Stucco and painting: itemized surface rows.
	Surfaces []MeasurementRow

	// Stucco: standalone flat-rate quantities keyed by misc item name.
	MiscQuantities map[string]float64
}

// TotalsResult is the output of one totals build: all per-item lines, the
// gutter-family category subtotals, the stone delivery fee (zero elsewhere)
// and the grand subtotal fed into the pricing cascade.
type TotalsResult struct {
	Lines             ServiceTotals
	CategorySubtotals map[Category]decimal.Decimal
	DeliveryFee       decimal.Decimal
	Subtotal          decimal.Decimal
}

// BuildTotals combines aggregated quantities with catalog prices into the
// totals table and grand subtotal for one service.
func BuildTotals(c *Catalog, in EstimateInput) TotalsResult {
	switch in.Service {
	case ServiceGutters:
		return buildGutterTotals(c, in)
	case ServiceStone:
		return buildStoneTotals(c, in)
	case ServiceStucco:
		return buildSurfaceTotals(c, in, true)
	case ServicePainting:
		return buildSurfaceTotals(c, in, false)
	}
	return TotalsResult{Lines: make(ServiceTotals)}
}

func buildGutterTotals(c *Catalog, in EstimateInput) TotalsResult {
	items := c.Items(ServiceGutters)

	lines := AggregateRows(in.Gutters, items, CategoryGutters)
	for name, line := range AggregateRows(in.Leaders, items, CategoryLeaders) {
		lines[name] = line
	}
	for name, line := range AggregateRows(in.Guards, items, CategoryGuards) {
		lines[name] = line
	}

	categorySubtotals := map[Category]decimal.Decimal{
		CategoryGutters: decimal.Zero,
		CategoryLeaders: decimal.Zero,
		CategoryGuards:  decimal.Zero,
	}
	for _, item := range items {
		if line, ok := lines[item.Name]; ok {
			categorySubtotals[item.Category] = categorySubtotals[item.Category].Add(line.Total)
		}
	}

	return TotalsResult{
		Lines:             lines,
		CategorySubtotals: categorySubtotals,
		Subtotal:          sumLines(lines),
	}
}

func buildStoneTotals(c *Catalog, in EstimateInput) TotalsResult {
	items := c.Items(ServiceStone)
	lines := AggregateRows(in.StoneSurfaces, items, CategoryDemolition)

	installItem := in.StoneInstallItem
	if installItem == "" {
		installItem = StoneItemCultured
	}

	// Each geometry table bills exactly one fixed catalog item.
	fixed := []struct {
		name string
		qty  float64
	}{
		{installItem, AggregateGeometry(in.StoneFlats, ModeArea)},
		{StoneItemCorners, AggregateGeometry(in.StoneCorners, ModeLength)},
		{StoneItemSills, AggregateGeometry(in.StoneSills, ModeLength)},
	}
	for _, f := range fixed {
		price, err := c.PriceOf(ServiceStone, f.name)
		if err != nil {
			continue // unknown install item contributes zero, same as any lookup miss
		}
		lines[f.name] = lineFor(f.qty, price)
	}

	fee := c.DeliveryFee(ServiceStone)
	return TotalsResult{
		Lines:       lines,
		DeliveryFee: fee,
		Subtotal:    sumLines(lines).Add(fee),
	}
}

func buildSurfaceTotals(c *Catalog, in EstimateInput, withMisc bool) TotalsResult {
	lines := AggregateRows(in.Surfaces, c.Items(in.Service), "")
	if withMisc {
		mergeMisc(lines, c.MiscItems(in.Service), in.MiscQuantities)
	}
	return TotalsResult{
		Lines:    lines,
		Subtotal: sumLines(lines),
	}
}

func sumLines(lines ServiceTotals) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Total)
	}
	return sum
}
