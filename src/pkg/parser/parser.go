// Package parser implements the vendor-routed parsers (C3): each turns
// OCR text into a NormalizedReceipt with dense, ordered line items and
// validation warnings for anything that didn't fully reconcile.
package parser

import (
	"time"

	"curlysbooks/src/pkg/money"
	"curlysbooks/src/pkg/receipt"
)

// NormalizedLine is one parsed line item, before a receipt ID exists.
type NormalizedLine struct {
	LineType    receipt.LineType
	RawText     string
	SKU         *string
	UPC         *string
	Quantity    *money.Amount
	UnitPrice   *money.Amount
	LineTotal   money.Amount
	TaxFlag     receipt.TaxFlag
	TaxAmount   *money.Amount
}

// NormalizedReceipt is what every parser produces: the parser contract
// of §4.3, independent of persistence.
type NormalizedReceipt struct {
	VendorGuess        string
	PurchaseDate        time.Time
	InvoiceNumber       string
	Subtotal            money.Amount
	TaxTotal            money.Amount
	Total               money.Amount
	Lines               []NormalizedLine
	ValidationWarnings  []receipt.ValidationWarning
}

// Parser is implemented by every vendor-specific parser and by the
// Generic fallback. DetectFormat is a sanity check only — dispatch is
// always decided by the vendor identifier (C2), never by a parser's own
// opinion of whether a receipt is "its".
type Parser interface {
	VendorKey() string
	Parse(text string, entity receipt.Entity) NormalizedReceipt
	DetectFormat(text string) bool
}

// subtotalMismatchTolerance is the §4.3 tolerance for the
// subtotal-mismatch check (distinct from the §3 invariant tolerance of
// $0.02, which governs subtotal+tax==total).
var subtotalMismatchTolerance = money.FromFloat(0.10)

// reconcileSubtotal applies the subtotal-mismatch policy: compare
// Σ(item+fee) − |Σdiscount| against the parsed subtotal and append a
// warning on mismatch. It never inserts a placeholder line.
func reconcileSubtotal(nr *NormalizedReceipt) {
	var itemsAndFees, discounts money.Amount
	itemsAndFees = money.Zero
	discounts = money.Zero

	for _, line := range nr.Lines {
		switch line.LineType {
		case receipt.LineTypeItem, receipt.LineTypeFee:
			itemsAndFees = itemsAndFees.Add(line.LineTotal)
		case receipt.LineTypeDiscount:
			discounts = discounts.Add(line.LineTotal.Abs())
		}
	}

	foundTotal := itemsAndFees.Sub(discounts)
	if money.WithinTolerance(foundTotal, nr.Subtotal, subtotalMismatchTolerance) {
		return
	}

	nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
		receipt.WarningSubtotalMismatch,
		"sum of item and fee lines did not reconcile with parsed subtotal",
		map[string]any{
			"found_total":    foundTotal.StringFixed(2),
			"expected_total": nr.Subtotal.StringFixed(2),
			"difference":     foundTotal.Sub(nr.Subtotal).Abs().StringFixed(2),
		},
	))
}
