package parser

import (
	"regexp"
	"strings"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// WalmartParser handles Walmart Supercentre receipts: TC# header,
// dense item lines terminated by a one-letter tax code, and a
// subtotal/tax/total footer.
type WalmartParser struct{}

func NewWalmartParser() *WalmartParser { return &WalmartParser{} }

func (p *WalmartParser) VendorKey() string { return "walmart" }

func (p *WalmartParser) DetectFormat(text string) bool {
	return strings.Contains(strings.ToLower(text), "tc#") || strings.Contains(strings.ToLower(text), "walmart")
}

var walmartTaxTable = map[string]receipt.TaxFlag{
	"H": receipt.TaxFlagTaxable,
	"X": receipt.TaxFlagTaxable,
	"N": receipt.TaxFlagExempt,
}

// walmartItemLineRegexp matches "DESCRIPTION 012345678901   12.97 H"
var walmartItemLineRegexp = regexp.MustCompile(`(?m)^(.{3,40}?)\s+(\d{12})\s+([\d.]+)\s*([HXN])?\s*$`)
var walmartDateRegexp = regexp.MustCompile(`(\d{2}/\d{2}/\d{2,4})`)

func (p *WalmartParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{VendorGuess: "Walmart"}

	if m := walmartDateRegexp.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("01/02/06", m[1]); err == nil {
			nr.PurchaseDate = t
		} else if t, err := time.Parse("01/02/2006", m[1]); err == nil {
			nr.PurchaseDate = t
		} else {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningDateParseFailed, "unable to parse Walmart date", map[string]any{"raw": m[1]}))
		}
	}

	if m := genericSubtotalRegexp.FindStringSubmatch(text); m != nil {
		if v, ok := NormalizePrice(m[1]); ok {
			nr.Subtotal = v
		}
	}
	if m := genericTaxRegexp.FindStringSubmatch(text); m != nil {
		if v, ok := NormalizePrice(m[1]); ok {
			nr.TaxTotal = v
		}
	}
	if m := genericTotalRegexp.FindStringSubmatch(text); m != nil {
		if v, ok := NormalizePrice(m[1]); ok {
			nr.Total = v
		}
	}

	for _, m := range walmartItemLineRegexp.FindAllStringSubmatch(text, -1) {
		amount, ok := NormalizePrice(m[3])
		if !ok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed, "unable to parse Walmart line price", map[string]any{"raw": m[3]}))
			continue
		}
		upc := m[2]
		nr.Lines = append(nr.Lines, NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[1]),
			UPC:       &upc,
			LineTotal: amount,
			TaxFlag:   MapTaxCode(m[4], walmartTaxTable),
		})
	}

	reconcileSubtotal(&nr)
	return nr
}
