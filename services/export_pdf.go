package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the estimate document as a PDF using maroto/v2 and
// returns the raw bytes.
func GeneratePDF(data EstimateDocData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	addItemsTable(m, data)
	addPricingCascade(m, data)
	addContractSpecs(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addEstimateHeader adds the document title, customer block and date.
func addEstimateHeader(m core.Maroto, data EstimateDocData) {
	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: &props.Color{Red: 44, Green: 62, Blue: 80},
				}),
			),
		),
	)

	infoText := props.Text{Size: 10, Align: align.Left}
	infoLines := []string{
		fmt.Sprintf("Customer Name: %s", data.Customer.CustomerName),
		fmt.Sprintf("Project Address: %s", data.Customer.ProjectAddress),
		fmt.Sprintf("Sales Representative: %s", data.Customer.SalesRep),
		fmt.Sprintf("Date: %s", data.Date),
	}
	for _, line := range infoLines {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(line, infoText))))
	}

	m.AddRows(row.New(4))
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(data.ServiceName, props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
	m.AddRows(row.New(2))
}

// addItemsTable adds the itemized table: header, one row per line with
// quantity > 0, category subtotals for gutters and the delivery fee for
// stone.
func addItemsTable(m core.Maroto, data EstimateDocData) {
	headerBg := &props.Color{Red: 52, Green: 73, Blue: 94}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Quantity", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	bodyText := props.Text{Size: 8, Align: align.Left}
	rightText := bodyText
	rightText.Align = align.Right
	stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 240}}

	for i, r := range data.Rows {
		itemCol := col.New(6).Add(text.New(r.Item, bodyText))
		qtyCol := col.New(2).Add(text.New(FormatQty(r.Quantity), rightText))
		priceCol := col.New(2).Add(text.New(FormatUSD(r.UnitPrice), rightText))
		totalCol := col.New(2).Add(text.New(FormatUSD(r.Total), rightText))

		if i%2 == 1 {
			itemCol = itemCol.WithStyle(stripe)
			qtyCol = qtyCol.WithStyle(stripe)
			priceCol = priceCol.WithStyle(stripe)
			totalCol = totalCol.WithStyle(stripe)
		}
		m.AddRows(row.New(7).Add(itemCol, qtyCol, priceCol, totalCol))
	}

	subtotalText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	for _, cs := range data.CategorySubtotals {
		m.AddRows(
			row.New(7).Add(
				col.New(10).Add(text.New(cs.Label, subtotalText)),
				col.New(2).Add(text.New(FormatUSD(cs.Amount), subtotalText)),
			),
		)
	}
	if data.DeliveryFee.IsPositive() {
		m.AddRows(
			row.New(7).Add(
				col.New(10).Add(text.New("Delivery Fee", subtotalText)),
				col.New(2).Add(text.New(FormatUSD(data.DeliveryFee), subtotalText)),
			),
		)
	}
	m.AddRows(row.New(4))
}

// addPricingCascade adds the project calculation table: each cascade step,
// the optional add-on lines and the highlighted final sell price.
func addPricingCascade(m core.Maroto, data EstimateDocData) {
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New("PROJECT CALCULATION", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	labelText := props.Text{Size: 9, Align: align.Left}
	valueText := props.Text{Size: 9, Align: align.Right}
	addLine := func(label, value string) {
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(label, labelText)),
				col.New(4).Add(text.New(value, valueText)),
			),
		)
	}

	p := data.Pricing
	addLine("1 Year Price", FormatUSD(p.OneYearPrice))
	addLine("Deduct 10%", "("+FormatUSD(p.DeductTenFirst)+")")
	addLine("30 Day Price", FormatUSD(p.ThirtyDayPrice))
	addLine("Deduct 10%", "("+FormatUSD(p.DeductTenSecond)+")")
	addLine("Day of Price", FormatUSD(p.DayOfPrice))
	addLine("Deduct 3% for 33% Deposit", "("+FormatUSD(p.DeductThree)+")")
	if p.RepairAdded.IsPositive() {
		addLine("Add: Repair", FormatUSD(p.RepairAdded))
	}
	if p.RiggingAdded.IsPositive() {
		addLine("Add: Rigging", FormatUSD(p.RiggingAdded))
	}

	finalBg := &props.Color{Red: 39, Green: 174, Blue: 96}
	finalCell := props.Cell{BackgroundColor: finalBg}
	finalText := props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	finalValue := finalText
	finalValue.Align = align.Right
	m.AddRows(
		row.New(9).Add(
			col.New(8).Add(text.New("FINAL SELL PRICE", finalText)).WithStyle(&finalCell),
			col.New(4).Add(text.New(FormatUSD(p.FinalSellPrice), finalValue)).WithStyle(&finalCell),
		),
	)
}

// addContractSpecs adds the contract-specification bullet list when the
// service carries one (gutters and stone).
func addContractSpecs(m core.Maroto, data EstimateDocData) {
	if len(data.Specs) == 0 {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Contract Specifications", props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
	bullet := props.Text{Size: 8, Align: align.Left}
	for _, spec := range data.Specs {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New("• "+spec, bullet))))
	}
}
