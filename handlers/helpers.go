package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatecalc/services"
	"estimatecalc/templates"
)

// loadEstimateInput assembles the calculation snapshot for one estimate from
// its stored measurement rows and misc quantities.
func loadEstimateInput(app *pocketbase.PocketBase, estimate *core.Record) (services.EstimateInput, error) {
	in := services.EstimateInput{
		Service: services.Service(estimate.GetString("service")),
	}

	switch estimate.GetString("stone_install_type") {
	case "natural":
		in.StoneInstallItem = services.StoneItemNatural
	case "cultured":
		in.StoneInstallItem = services.StoneItemCultured
	}

	rows, err := app.FindRecordsByFilter(
		"measurement_rows",
		"estimate = {:estimateId}",
		"sort_order", 0, 0,
		map[string]any{"estimateId": estimate.Id},
	)
	if err != nil {
		return in, fmt.Errorf("load measurement rows: %w", err)
	}

	for _, r := range rows {
		kind := services.TableKind(r.GetString("table_kind"))
		if services.GeometryTable(kind) {
			g := services.GeometryRow{
				Location: r.GetString("location"),
				Width:    r.GetFloat("width"),
				Height:   r.GetFloat("height"),
			}
			switch kind {
			case services.TableStoneFlats:
				in.StoneFlats = append(in.StoneFlats, g)
			case services.TableStoneCorners:
				in.StoneCorners = append(in.StoneCorners, g)
			case services.TableStoneSills:
				in.StoneSills = append(in.StoneSills, g)
			}
			continue
		}

		m := services.MeasurementRow{
			Location: r.GetString("location"),
			ItemType: r.GetString("item_type"),
			Quantity: r.GetFloat("quantity"),
		}
		switch kind {
		case services.TableGutters:
			in.Gutters = append(in.Gutters, m)
		case services.TableLeaders:
			in.Leaders = append(in.Leaders, m)
		case services.TableGuards:
			in.Guards = append(in.Guards, m)
		case services.TableStoneSurfaces:
			in.StoneSurfaces = append(in.StoneSurfaces, m)
		case services.TableSurfaces:
			in.Surfaces = append(in.Surfaces, m)
		}
	}

	miscRecords, err := app.FindRecordsByFilter(
		"misc_quantities",
		"estimate = {:estimateId}",
		"", 0, 0,
		map[string]any{"estimateId": estimate.Id},
	)
	if err != nil {
		return in, fmt.Errorf("load misc quantities: %w", err)
	}
	if len(miscRecords) > 0 {
		in.MiscQuantities = make(map[string]float64, len(miscRecords))
		for _, r := range miscRecords {
			in.MiscQuantities[r.GetString("item_name")] = r.GetFloat("quantity")
		}
	}

	return in, nil
}

// customerFromRecord extracts the customer block of an estimate.
func customerFromRecord(estimate *core.Record) services.CustomerInfo {
	return services.CustomerInfo{
		CustomerName:   estimate.GetString("customer_name"),
		ProjectAddress: estimate.GetString("project_address"),
		SalesRep:       estimate.GetString("sales_rep"),
	}
}

// buildTotalsView recomputes the totals for an estimate and formats them for
// the totals partial.
func buildTotalsView(c *services.Catalog, estimate *core.Record, in services.EstimateInput) templates.TotalsData {
	totals := services.BuildTotals(c, in)
	pricing := services.PriceProject(totals.Subtotal, estimate.GetBool("repair"), estimate.GetBool("rigging"))
	service := in.Service

	var lines []templates.TotalsLineView
	appendLines := func(items []services.CatalogItem) {
		for _, item := range items {
			line, ok := totals.Lines[item.Name]
			if !ok || line.Quantity <= 0 {
				continue
			}
			lines = append(lines, templates.TotalsLineView{
				Name:      item.Name,
				Quantity:  services.FormatQty(line.Quantity),
				Unit:      string(item.Unit),
				UnitPrice: services.FormatUSD(line.UnitPrice),
				Total:     services.FormatUSD(line.Total),
			})
		}
	}
	appendLines(c.Items(service))
	appendLines(c.MiscItems(service))

	var categorySubtotals []templates.SubtotalView
	if totals.CategorySubtotals != nil {
		ordered := []struct {
			cat   services.Category
			label string
		}{
			{services.CategoryGutters, "Gutters"},
			{services.CategoryLeaders, "Leaders"},
			{services.CategoryGuards, "Gutter Guards"},
		}
		for _, o := range ordered {
			categorySubtotals = append(categorySubtotals, templates.SubtotalView{
				Label:  o.label,
				Amount: services.FormatUSD(totals.CategorySubtotals[o.cat]),
			})
		}
	}

	deliveryFee := ""
	if totals.DeliveryFee.IsPositive() {
		deliveryFee = services.FormatUSD(totals.DeliveryFee)
	}

	pricingView := templates.PricingView{
		OneYearPrice:    services.FormatUSD(pricing.OneYearPrice),
		DeductTenFirst:  services.FormatUSD(pricing.DeductTenFirst),
		ThirtyDayPrice:  services.FormatUSD(pricing.ThirtyDayPrice),
		DeductTenSecond: services.FormatUSD(pricing.DeductTenSecond),
		DayOfPrice:      services.FormatUSD(pricing.DayOfPrice),
		DeductThree:     services.FormatUSD(pricing.DeductThree),
		FinalSellPrice:  services.FormatUSD(pricing.FinalSellPrice),
	}
	if pricing.RepairAdded.IsPositive() {
		pricingView.RepairAdded = services.FormatUSD(pricing.RepairAdded)
	}
	if pricing.RiggingAdded.IsPositive() {
		pricingView.RiggingAdded = services.FormatUSD(pricing.RiggingAdded)
	}

	data := templates.TotalsData{
		EstimateID:        estimate.Id,
		Lines:             lines,
		CategorySubtotals: categorySubtotals,
		DeliveryFee:       deliveryFee,
		Subtotal:          services.FormatUSD(totals.Subtotal),
		Pricing:           pricingView,
	}

	if sc := c.ServiceConfig(service); sc != nil {
		data.Notices = sc.Notices
		for _, m := range sc.Minimums {
			data.Minimums = append(data.Minimums, templates.SubtotalView{
				Label:  m.Label,
				Amount: m.Amount,
			})
		}
	}
	return data
}

// formatMeasure renders a stored numeric cell, hiding unset zeroes so empty
// rows stay visually empty.
func formatMeasure(v float64) string {
	if v == 0 {
		return ""
	}
	return services.FormatQty(v)
}

// buildTableViews loads and groups the estimate's measurement rows into
// per-table views in display order.
func buildTableViews(app *pocketbase.PocketBase, c *services.Catalog, estimate *core.Record) ([]templates.MeasurementTableData, error) {
	service := services.Service(estimate.GetString("service"))

	records, err := app.FindRecordsByFilter(
		"measurement_rows",
		"estimate = {:estimateId}",
		"sort_order", 0, 0,
		map[string]any{"estimateId": estimate.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("load measurement rows: %w", err)
	}

	byKind := make(map[services.TableKind][]templates.MeasurementRowView)
	for _, r := range records {
		kind := services.TableKind(r.GetString("table_kind"))
		byKind[kind] = append(byKind[kind], templates.MeasurementRowView{
			ID:       r.Id,
			Location: r.GetString("location"),
			ItemType: r.GetString("item_type"),
			Quantity: formatMeasure(r.GetFloat("quantity")),
			Width:    formatMeasure(r.GetFloat("width")),
			Height:   formatMeasure(r.GetFloat("height")),
		})
	}

	var tables []templates.MeasurementTableData
	for _, kind := range services.TableKindsFor(service) {
		tables = append(tables, templates.MeasurementTableData{
			EstimateID:  estimate.Id,
			Kind:        string(kind),
			Label:       services.TableLabel(kind),
			Geometry:    services.GeometryTable(kind),
			ItemOptions: tableItemOptions(c, service, kind),
			Rows:        byKind[kind],
		})
	}
	return tables, nil
}

// tableItemOptions lists the item names selectable on one table.
func tableItemOptions(c *services.Catalog, service services.Service, kind services.TableKind) []string {
	switch kind {
	case services.TableGutters:
		return c.ItemsInCategory(services.ServiceGutters, services.CategoryGutters)
	case services.TableLeaders:
		return c.ItemsInCategory(services.ServiceGutters, services.CategoryLeaders)
	case services.TableGuards:
		return c.ItemsInCategory(services.ServiceGutters, services.CategoryGuards)
	case services.TableStoneSurfaces:
		return c.ItemsInCategory(services.ServiceStone, services.CategoryDemolition)
	case services.TableSurfaces:
		var names []string
		for _, it := range c.Items(service) {
			names = append(names, it.Name)
		}
		return names
	}
	return nil
}

// buildMiscView assembles the stucco flat-rate editor with stored quantities.
func buildMiscView(c *services.Catalog, estimate *core.Record, in services.EstimateInput) *templates.MiscItemsData {
	miscItems := c.MiscItems(in.Service)
	if len(miscItems) == 0 {
		return nil
	}

	data := &templates.MiscItemsData{EstimateID: estimate.Id}
	for _, item := range miscItems {
		qty := ""
		if q, ok := in.MiscQuantities[item.Name]; ok && q != 0 {
			qty = services.FormatQty(q)
		}
		data.Items = append(data.Items, templates.MiscItemRow{
			Name:      item.Name,
			Unit:      string(item.Unit),
			UnitPrice: services.FormatUSD(item.UnitPrice),
			Quantity:  qty,
		})
	}
	return data
}

// nextSortOrder returns the next sort_order value for a table.
func nextSortOrder(app *pocketbase.PocketBase, estimateID string, kind string) int {
	records, err := app.FindRecordsByFilter(
		"measurement_rows",
		"estimate = {:estimateId} && table_kind = {:kind}",
		"-sort_order", 1, 0,
		map[string]any{"estimateId": estimateID, "kind": kind},
	)
	if err != nil || len(records) == 0 {
		return 1
	}
	return int(records[0].GetFloat("sort_order")) + 1
}
