package invoice

import "github.com/shopspring/decimal"

// Totals is the result of pricing a list of items.
type Totals struct {
	Items     []Item  `json:"items"`
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// ComputeTotals prices items as quantity × rate and applies taxRate (a percentage).
// Every amount is rounded to cents. Nothing calls this implicitly; stored totals are
// whatever the caller saves.
func ComputeTotals(items []Item, taxRate float64) Totals {
	out := make([]Item, len(items))
	subtotal := decimal.Zero

	for i, it := range items {
		amount := decimal.NewFromFloat(it.Quantity).
			Mul(decimal.NewFromFloat(it.Rate)).
			Round(2)

		it.Amount = amount.InexactFloat64()
		out[i] = it
		subtotal = subtotal.Add(amount)
	}

	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(decimal.NewFromInt(100)).Round(2)

	return Totals{
		Items:     out,
		Subtotal:  subtotal.InexactFloat64(),
		TaxAmount: tax.InexactFloat64(),
		Total:     subtotal.Add(tax).InexactFloat64(),
	}
}
