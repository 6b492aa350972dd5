package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// TotalsLineView is one pre-formatted line of the calculation table.
type TotalsLineView struct {
	Name      string
	Quantity  string
	Unit      string
	UnitPrice string
	Total     string
}

// SubtotalView is one labeled amount line.
type SubtotalView struct {
	Label  string
	Amount string
}

// PricingView is the pre-formatted cascade.
type PricingView struct {
	OneYearPrice    string
	DeductTenFirst  string
	ThirtyDayPrice  string
	DeductTenSecond string
	DayOfPrice      string
	DeductThree     string
	RepairAdded     string
	RiggingAdded    string
	FinalSellPrice  string
}

// TotalsData feeds the totals partial, recomputed on every request.
type TotalsData struct {
	EstimateID        string
	Lines             []TotalsLineView
	CategorySubtotals []SubtotalView
	DeliveryFee       string
	Subtotal          string
	Pricing           PricingView
	Notices           []string
	Minimums          []SubtotalView
}

// TotalsPartial renders the live calculation panel: per-item lines, category
// subtotals, the pricing cascade and the service notices.
func TotalsPartial(data TotalsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="totals" class="bg-base-100 p-4 rounded-box">
<h2 class="text-lg font-semibold mb-2">Calculation</h2>
<table class="table table-sm">
<thead><tr><th>Item</th><th class="text-right">Qty</th><th>Unit</th><th class="text-right">Unit Price</th><th class="text-right">Total</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, l := range data.Lines {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td class="text-right">%s</td><td>%s</td><td class="text-right">%s</td><td class="text-right">%s</td></tr>`+"\n",
				esc(l.Name), esc(l.Quantity), esc(l.Unit), esc(l.UnitPrice), esc(l.Total)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tbody>\n</table>\n"); err != nil {
			return err
		}

		for _, cs := range data.CategorySubtotals {
			if _, err := fmt.Fprintf(w, `<div class="flex justify-between font-semibold px-2"><span>%s</span><span>%s</span></div>`+"\n",
				esc(cs.Label), esc(cs.Amount)); err != nil {
				return err
			}
		}
		if data.DeliveryFee != "" {
			if _, err := fmt.Fprintf(w, `<div class="flex justify-between font-semibold px-2"><span>Delivery Fee</span><span>%s</span></div>`+"\n",
				esc(data.DeliveryFee)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<div class="flex justify-between font-bold px-2 border-t mt-1 pt-1"><span>Subtotal</span><span>%s</span></div>`+"\n",
			esc(data.Subtotal)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<h3 class="font-semibold mt-4 mb-1">Project Calculation</h3>
<table class="table table-sm">
<tbody>
`); err != nil {
			return err
		}
		p := data.Pricing
		cascade := []struct{ label, value string }{
			{"1 Year Price", p.OneYearPrice},
			{"Deduct 10%", "(" + p.DeductTenFirst + ")"},
			{"30 Day Price", p.ThirtyDayPrice},
			{"Deduct 10%", "(" + p.DeductTenSecond + ")"},
			{"Day of Price", p.DayOfPrice},
			{"Deduct 3% for 33% Deposit", "(" + p.DeductThree + ")"},
		}
		for _, c := range cascade {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td class="text-right">%s</td></tr>`+"\n", esc(c.label), esc(c.value)); err != nil {
				return err
			}
		}
		if p.RepairAdded != "" {
			if _, err := fmt.Fprintf(w, `<tr><td>Add: Repair</td><td class="text-right">%s</td></tr>`+"\n", esc(p.RepairAdded)); err != nil {
				return err
			}
		}
		if p.RiggingAdded != "" {
			if _, err := fmt.Fprintf(w, `<tr><td>Add: Rigging</td><td class="text-right">%s</td></tr>`+"\n", esc(p.RiggingAdded)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<tr class="font-bold bg-success text-success-content"><td>FINAL SELL PRICE</td><td class="text-right">%s</td></tr>
</tbody>
</table>
`, esc(p.FinalSellPrice)); err != nil {
			return err
		}

		for _, n := range data.Notices {
			if _, err := fmt.Fprintf(w, `<p class="text-sm mt-2 text-warning">%s</p>`+"\n", esc(n)); err != nil {
				return err
			}
		}
		if len(data.Minimums) > 0 {
			if _, err := io.WriteString(w, `<h3 class="font-semibold mt-4 mb-1">Job Minimums</h3>
<table class="table table-xs"><tbody>
`); err != nil {
				return err
			}
			for _, m := range data.Minimums {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td class="text-right">%s</td></tr>`+"\n", esc(m.Label), esc(m.Amount)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</tbody></table>\n"); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}
