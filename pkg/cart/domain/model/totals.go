package model

import "github.com/shopspring/decimal"

var (
	taxRate               = decimal.RequireFromString("0.08")
	freeShippingThreshold = decimal.RequireFromString("50.00")
	shippingFee           = decimal.RequireFromString("9.99")
)

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	// FreeShippingRemaining is how much more must be spent before shipping
	// becomes free; zero once it is.
	FreeShippingRemaining decimal.Decimal
}

// DeriveTotals computes the order summary for items. It keeps no state and
// is meant to be called again whenever the items change.
func DeriveTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(taxRate).Round(2)

	shipping := decimal.Zero
	remaining := decimal.Zero
	if !subtotal.GreaterThan(freeShippingThreshold) {
		shipping = shippingFee
		remaining = freeShippingThreshold.Sub(subtotal)
	}

	return Totals{
		Subtotal:              subtotal,
		Tax:                   tax,
		Shipping:              shipping,
		Total:                 subtotal.Add(tax).Add(shipping),
		FreeShippingRemaining: remaining,
	}
}
