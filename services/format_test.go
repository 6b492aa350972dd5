package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"zero", "0", "$0.00"},
		{"small", "13", "$13.00"},
		{"cents", "785.7", "$785.70"},
		{"thousands", "2380", "$2,380.00"},
		{"tens of thousands", "12345.60", "$12,345.60"},
		{"millions", "1234567.89", "$1,234,567.89"},
		{"negative", "-78.57", "-$78.57"},
		{"negative thousands", "-1500", "-$1,500.00"},
		{"rounds to cents", "24.299", "$24.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUSD(decimal.RequireFromString(tt.input))
			if got != tt.want {
				t.Errorf("FormatUSD(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole", 35, "35"},
		{"zero", 0, "0"},
		{"fractional", 2.5, "2.50"},
		{"sq footage", 143.75, "143.75"},
		{"truncates beyond cents", 1.333, "1.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQty(tt.input)
			if got != tt.want {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
