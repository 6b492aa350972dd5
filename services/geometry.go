package services

import "math"

// ConvertMode selects how a raw width/height measurement is billed.
type ConvertMode int

const (
	// ModeArea bills by square footage (stone flats).
	ModeArea ConvertMode = iota
	// ModeLength bills by linear footage (stone corners and sills).
	ModeLength
)

// Convert turns a width/height pair of inch measurements into a billable
// quantity. A NaN (missing entry) or exact zero in either operand yields 0:
// the row is incomplete, not an error.
//
// ModeLength bills by width alone; the height column is accepted on input
// rows but does not enter the result.
func Convert(width, height float64, mode ConvertMode) float64 {
	if math.IsNaN(width) || math.IsNaN(height) || width == 0 || height == 0 {
		return 0
	}
	switch mode {
	case ModeArea:
		return (width * height) / 144 // square inches → square feet
	case ModeLength:
		return width / 12 // inches → feet
	}
	return 0
}
