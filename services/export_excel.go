package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel renders the estimate document as an Excel workbook and
// returns the file contents as a byte slice.
func GenerateExcel(data EstimateDocData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names cap at 31 chars.
	sheetName := data.ServiceName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{44, 10, 8, 14, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#34495E"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	subtotalLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal label style: %w", err)
	}

	subtotalValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal value style: %w", err)
	}

	finalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  12,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#27AE60"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create final style: %w", err)
	}

	// ── Header Rows (1-5) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	info := []string{
		"Customer: " + data.Customer.CustomerName,
		"Address: " + data.Customer.ProjectAddress,
		"Sales Rep: " + data.Customer.SalesRep,
		"Date: " + data.Date,
	}
	for i, line := range info {
		rowStr := fmt.Sprintf("%d", 2+i)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge info row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(line))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, subtitleStyle)
	}

	// ── Row 7: Column Headers ───────────────────────────────────────────

	headers := []string{"Item", "Quantity", "Unit", "Unit Price", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+"7", h)
	}
	f.SetCellStyle(sheetName, "A7", lastCol+"7", headerStyle)

	// ── Data Rows (starting row 8) ──────────────────────────────────────

	row := 8
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.Item))
		f.SetCellValue(sheetName, "B"+rowStr, FormatQty(r.Quantity))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(string(r.Unit)))
		f.SetCellValue(sheetName, "D"+rowStr, FormatUSD(r.UnitPrice))
		f.SetCellValue(sheetName, "E"+rowStr, FormatUSD(r.Total))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
		row++
	}

	// ── Subtotal Rows ───────────────────────────────────────────────────

	writeSummary := func(label, value string) {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+rowStr, label)
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, subtotalLabelStyle)
		f.SetCellValue(sheetName, "E"+rowStr, value)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, subtotalValueStyle)
		row++
	}

	for _, cs := range data.CategorySubtotals {
		writeSummary(cs.Label+":", FormatUSD(cs.Amount))
	}
	if data.DeliveryFee.IsPositive() {
		writeSummary("Delivery Fee:", FormatUSD(data.DeliveryFee))
	}

	// ── Pricing Cascade ─────────────────────────────────────────────────

	row++
	cascadeHeader := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheetName, "A"+cascadeHeader, lastCol+cascadeHeader); err != nil {
		return nil, fmt.Errorf("merge cascade header: %w", err)
	}
	f.SetCellValue(sheetName, "A"+cascadeHeader, "PROJECT CALCULATION")
	f.SetCellStyle(sheetName, "A"+cascadeHeader, lastCol+cascadeHeader, headerStyle)
	row++

	p := data.Pricing
	writeCascade := func(label, value string) {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, label)
		f.SetCellValue(sheetName, "E"+rowStr, value)
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
		row++
	}
	writeCascade("1 Year Price", FormatUSD(p.OneYearPrice))
	writeCascade("Deduct 10%", "("+FormatUSD(p.DeductTenFirst)+")")
	writeCascade("30 Day Price", FormatUSD(p.ThirtyDayPrice))
	writeCascade("Deduct 10%", "("+FormatUSD(p.DeductTenSecond)+")")
	writeCascade("Day of Price", FormatUSD(p.DayOfPrice))
	writeCascade("Deduct 3% for 33% Deposit", "("+FormatUSD(p.DeductThree)+")")
	if p.RepairAdded.IsPositive() {
		writeCascade("Add: Repair", FormatUSD(p.RepairAdded))
	}
	if p.RiggingAdded.IsPositive() {
		writeCascade("Add: Rigging", FormatUSD(p.RiggingAdded))
	}

	finalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "A"+finalRow, "FINAL SELL PRICE")
	f.SetCellValue(sheetName, "E"+finalRow, FormatUSD(p.FinalSellPrice))
	f.SetCellStyle(sheetName, "A"+finalRow, lastCol+finalRow, finalStyle)
	row += 2

	// ── Contract Specifications ─────────────────────────────────────────

	if len(data.Specs) > 0 {
		specHeader := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+specHeader, "Contract Specifications")
		f.SetCellStyle(sheetName, "A"+specHeader, "A"+specHeader, subtotalValueStyle)
		row++
		for _, spec := range data.Specs {
			rowStr := fmt.Sprintf("%d", row)
			if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
				return nil, fmt.Errorf("merge spec row: %w", err)
			}
			f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell("• "+spec))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, subtitleStyle)
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
