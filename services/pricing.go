package services

import "github.com/shopspring/decimal"

// Policy constants of the discount schedule. They are fixed domain values,
// not inputs: a deployment that needs different rates ships a new build.
var (
	firstDeductRate   = decimal.RequireFromString("0.10")
	secondDeductRate  = decimal.RequireFromString("0.10")
	depositDeductRate = decimal.RequireFromString("0.03")

	// Flat add-ons applied after all percentage deductions.
	RepairAddOn  = decimal.NewFromInt(2100)
	RiggingAddOn = decimal.NewFromInt(1400)
)

// PricingBreakdown is the full cascading-discount record for one subtotal.
// Every intermediate value is carried because the rendered estimate shows
// the whole cascade, not just the final number. The fields form a strict
// derivation chain from Subtotal; only the two add-on flags vary it.
type PricingBreakdown struct {
	Subtotal        decimal.Decimal
	OneYearPrice    decimal.Decimal
	DeductTenFirst  decimal.Decimal
	ThirtyDayPrice  decimal.Decimal
	DeductTenSecond decimal.Decimal
	DayOfPrice      decimal.Decimal
	DeductThree     decimal.Decimal
	RepairAdded     decimal.Decimal
	RiggingAdded    decimal.Decimal
	FinalSellPrice  decimal.Decimal
}

// PriceProject applies the cascading discount sequence to a subtotal.
// Each deduction applies to the result of the previous step, so the order
// is significant. Any finite subtotal is accepted; a negative value
// propagates through the arithmetic unchanged.
func PriceProject(subtotal decimal.Decimal, repair, rigging bool) PricingBreakdown {
	b := PricingBreakdown{
		Subtotal:     subtotal,
		OneYearPrice: subtotal,
		RepairAdded:  decimal.Zero,
		RiggingAdded: decimal.Zero,
	}

	b.DeductTenFirst = b.OneYearPrice.Mul(firstDeductRate)
	b.ThirtyDayPrice = b.OneYearPrice.Sub(b.DeductTenFirst)

	b.DeductTenSecond = b.ThirtyDayPrice.Mul(secondDeductRate)
	b.DayOfPrice = b.ThirtyDayPrice.Sub(b.DeductTenSecond)

	b.DeductThree = b.DayOfPrice.Mul(depositDeductRate)
	b.FinalSellPrice = b.DayOfPrice.Sub(b.DeductThree)

	if repair {
		b.RepairAdded = RepairAddOn
		b.FinalSellPrice = b.FinalSellPrice.Add(RepairAddOn)
	}
	if rigging {
		b.RiggingAdded = RiggingAddOn
		b.FinalSellPrice = b.FinalSellPrice.Add(RiggingAddOn)
	}
	return b
}
