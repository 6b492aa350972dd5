package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_GutterEstimate(t *testing.T) {
	doc := estimateDocFixture(t, ServiceGutters, EstimateInput{
		Gutters: []MeasurementRow{
			{ItemType: `Gutter 5" white`, Quantity: 100},
		},
	})

	result, err := GenerateExcel(doc)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
	// xlsx files are zip archives, magic bytes PK
	if result[0] != 'P' || result[1] != 'K' {
		t.Errorf("result does not start with zip header, got %q", result[:2])
	}
}

func TestGenerateExcel_RoundTripContent(t *testing.T) {
	doc := estimateDocFixture(t, ServiceStucco, EstimateInput{
		Surfaces: []MeasurementRow{
			{ItemType: "LOXON XP (500-999 SF)", Quantity: 600},
		},
	})

	result, err := GenerateExcel(doc)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("generated workbook unreadable: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	title, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("read title: %v", err)
	}
	if title != "CONSTRUCTION ESTIMATE" {
		t.Errorf("A1 = %q, want title", title)
	}

	item, err := f.GetCellValue(sheet, "A8")
	if err != nil {
		t.Fatalf("read first item: %v", err)
	}
	if item != "LOXON XP (500-999 SF)" {
		t.Errorf("A8 = %q, want first estimate row", item)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Gutter 5\" white", "Gutter 5\" white"},
		{"empty", "", ""},
		{"formula", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"plus", "+1234", "'+1234"},
		{"minus", "-1234", "'-1234"},
		{"at", "@cmd", "'@cmd"},
		{"tab", "\tdata", "'\tdata"},
		{"pipe", "|pipe", "'|pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
