package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TableKind identifies one measurement table of an estimate. The gutter
// family has three itemized tables, stone has three geometry tables plus an
// itemized removal table, and stucco/painting share a single surface table.
type TableKind string

const (
	TableGutters       TableKind = "gutters"
	TableLeaders       TableKind = "leaders"
	TableGuards        TableKind = "guards"
	TableStoneFlats    TableKind = "stone_flats"
	TableStoneCorners  TableKind = "stone_corners"
	TableStoneSills    TableKind = "stone_sills"
	TableStoneSurfaces TableKind = "stone_surfaces"
	TableSurfaces      TableKind = "surfaces"
)

// TableKindsFor returns the measurement tables an estimate of the given
// service carries, in display order.
func TableKindsFor(s Service) []TableKind {
	switch s {
	case ServiceGutters:
		return []TableKind{TableGutters, TableLeaders, TableGuards}
	case ServiceStone:
		return []TableKind{TableStoneFlats, TableStoneCorners, TableStoneSills, TableStoneSurfaces}
	case ServiceStucco, ServicePainting:
		return []TableKind{TableSurfaces}
	}
	return nil
}

// GeometryTable reports whether rows of this table carry width/height
// dimensions instead of an item + quantity pair.
func GeometryTable(kind TableKind) bool {
	switch kind {
	case TableStoneFlats, TableStoneCorners, TableStoneSills:
		return true
	}
	return false
}

// TableLabel returns the human-readable name of a measurement table.
func TableLabel(kind TableKind) string {
	switch kind {
	case TableGutters:
		return "Gutters"
	case TableLeaders:
		return "Leaders"
	case TableGuards:
		return "Gutter Guards"
	case TableStoneFlats:
		return "Stone Flats"
	case TableStoneCorners:
		return "Stone Corners"
	case TableStoneSills:
		return "Stone Sills"
	case TableStoneSurfaces:
		return "Removal / Demolition"
	case TableSurfaces:
		return "Surfaces"
	}
	return string(kind)
}

// tableItemNames returns the valid item names for an itemized table, or nil
// for geometry tables (which bill fixed catalog items).
func tableItemNames(c *Catalog, service Service, kind TableKind) []string {
	switch kind {
	case TableGutters:
		return c.ItemsInCategory(ServiceGutters, CategoryGutters)
	case TableLeaders:
		return c.ItemsInCategory(ServiceGutters, CategoryLeaders)
	case TableGuards:
		return c.ItemsInCategory(ServiceGutters, CategoryGuards)
	case TableStoneSurfaces:
		return c.ItemsInCategory(ServiceStone, CategoryDemolition)
	case TableSurfaces:
		var names []string
		for _, it := range c.Items(service) {
			names = append(names, it.Name)
		}
		return names
	}
	return nil
}

// TemplateField describes one column of an import template.
type TemplateField struct {
	Key          string
	Label        string
	Required     bool
	FormatRule   string
	Description  string
	ExampleValue string
}

// MeasurementTemplateFields returns the column layout for a table kind.
// Geometry tables take raw inch dimensions; itemized tables take an item
// name and a quantity in the item's billing unit.
func MeasurementTemplateFields(kind TableKind) []TemplateField {
	if GeometryTable(kind) {
		return []TemplateField{
			{Key: "location", Label: "Location", Description: "Where on the structure this measurement was taken", ExampleValue: "Front left wall"},
			{Key: "width", Label: "Width", Required: true, FormatRule: "Number (inches)", Description: "Measured width in inches", ExampleValue: "144"},
			{Key: "height", Label: "Height", Required: true, FormatRule: "Number (inches)", Description: "Measured height in inches", ExampleValue: "96"},
		}
	}
	return []TemplateField{
		{Key: "location", Label: "Location", Description: "Where on the structure this measurement was taken", ExampleValue: "North side"},
		{Key: "item", Label: "Item", Required: true, FormatRule: "Exact catalog item name", Description: "Must match a price-list item for this table", ExampleValue: `Gutter 5" white`},
		{Key: "quantity", Label: "Quantity", Required: true, FormatRule: "Number", Description: "Quantity in the item's billing unit", ExampleValue: "25"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Returns an ordered list of field keys (one per column) and any
// unrecognized columns.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		normalized := strings.ToLower(strings.TrimSpace(f.Label))
		labelToKey[normalized] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that our template adds for required fields
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateMeasurementFile parses and validates an uploaded measurement sheet
// for one table of an estimate. Unlike the calculation path, the import is
// strict: unknown item names and non-numeric quantities are reported as
// errors so bad data never reaches the stored rows.
func ValidateMeasurementFile(
	c *Catalog,
	service Service,
	kind TableKind,
	file io.Reader,
	fileName string,
) (*ValidationResult, error) {
	fields := MeasurementTemplateFields(kind)

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	isRequired := make(map[string]bool, len(fields))
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
		if f.Required {
			isRequired[f.Key] = true
		}
	}

	var validItems map[string]bool
	if names := tableItemNames(c, service, kind); names != nil {
		validItems = make(map[string]bool, len(names))
		for _, n := range names {
			validItems[n] = true
		}
	}

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		for key := range isRequired {
			if rowData[key] == "" {
				label := keyToLabel[key]
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   label,
					Message: fmt.Sprintf("%s is required", label),
				})
			}
		}

		for _, key := range []string{"width", "height", "quantity"} {
			v := rowData[key]
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				label := keyToLabel[key]
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   label,
					Message: fmt.Sprintf("%s must be a number", label),
				})
			}
		}

		if validItems != nil {
			if item := rowData["item"]; item != "" && !validItems[item] {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "Item",
					Message: fmt.Sprintf("%q is not a price-list item for %s", item, TableLabel(kind)),
				})
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
		}
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// ImportedMeasurementRows converts validated parsed rows into itemized
// measurement rows. Malformed numbers were already rejected; a stray parse
// failure falls back to zero, same as the calculation path.
func ImportedMeasurementRows(parsed []map[string]string) []MeasurementRow {
	rows := make([]MeasurementRow, 0, len(parsed))
	for _, p := range parsed {
		qty, _ := strconv.ParseFloat(p["quantity"], 64)
		rows = append(rows, MeasurementRow{
			Location: p["location"],
			ItemType: p["item"],
			Quantity: qty,
		})
	}
	return rows
}

// ImportedGeometryRows converts validated parsed rows into geometry rows.
func ImportedGeometryRows(parsed []map[string]string) []GeometryRow {
	rows := make([]GeometryRow, 0, len(parsed))
	for _, p := range parsed {
		width, _ := strconv.ParseFloat(p["width"], 64)
		height, _ := strconv.ParseFloat(p["height"], 64)
		rows = append(rows, GeometryRow{
			Location: p["location"],
			Width:    width,
			Height:   height,
		})
	}
	return rows
}

// GenerateMeasurementTemplate creates a downloadable .xlsx template for one
// measurement table, with an item dropdown for itemized tables.
func GenerateMeasurementTemplate(c *Catalog, service Service, kind TableKind) ([]byte, error) {
	fields := MeasurementTemplateFields(kind)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := TableLabel(kind)
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheetName)

	requiredHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	optionalHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	columns := columnLetters(len(fields))
	for i, field := range fields {
		cell := fmt.Sprintf("%s1", columns[i])

		headerText := field.Label
		if field.Required {
			headerText += " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if field.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredHeaderStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, optionalHeaderStyle)
		}

		width := float64(len(field.Label)) * 1.3
		if field.Key == "item" {
			width = 40
		}
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, columns[i], columns[i], width)
	}

	// Item dropdown for itemized tables.
	if names := tableItemNames(c, service, kind); names != nil {
		for i, field := range fields {
			if field.Key != "item" {
				continue
			}
			col := columns[i]
			dv := excelize.NewDataValidation(true)
			dv.Sqref = fmt.Sprintf("%s2:%s1048576", col, col)
			dv.SetDropList(names)
			f.AddDataValidation(sheetName, dv)
		}
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	addInstructionsSheet(f, fields, kind)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}

// addInstructionsSheet creates a hidden sheet with field descriptions.
func addInstructionsSheet(f *excelize.File, fields []TemplateField, kind TableKind) {
	instSheet := "Instructions"
	f.NewSheet(instSheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(instSheet, "A1", fmt.Sprintf("%s Measurement Import - Instructions", TableLabel(kind)))
	f.SetCellStyle(instSheet, "A1", "A1", titleStyle)

	instructionHeaders := []string{"Field Name", "Required?", "Format Rule", "Description", "Example"}
	cols := columnLetters(5)
	for i, h := range instructionHeaders {
		cell := fmt.Sprintf("%s3", cols[i])
		f.SetCellValue(instSheet, cell, h)
		f.SetCellStyle(instSheet, cell, cell, headerStyle)
	}

	for i, field := range fields {
		row := fmt.Sprintf("%d", i+4)
		reqLabel := "Optional"
		if field.Required {
			reqLabel = "Required"
		}
		f.SetCellValue(instSheet, cols[0]+row, field.Label)
		f.SetCellValue(instSheet, cols[1]+row, reqLabel)
		f.SetCellValue(instSheet, cols[2]+row, field.FormatRule)
		f.SetCellValue(instSheet, cols[3]+row, field.Description)
		f.SetCellValue(instSheet, cols[4]+row, field.ExampleValue)
	}

	widths := []float64{20, 12, 30, 45, 25}
	for i, w := range widths {
		f.SetColWidth(instSheet, cols[i], cols[i], w)
	}

	f.SetSheetVisible(instSheet, false)
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA, AB ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
