package parser

import (
	"regexp"
	"strings"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// GrosnorParser handles Grosnor Distribution invoices (greeting cards
// and gift wrap), which key items by a short alpha-numeric SKU and
// always charge HST.
type GrosnorParser struct{}

func NewGrosnorParser() *GrosnorParser { return &GrosnorParser{} }

func (p *GrosnorParser) VendorKey() string { return "grosnor" }

func (p *GrosnorParser) DetectFormat(text string) bool {
	return strings.Contains(strings.ToLower(text), "grosnor")
}

var grosnorItemLineRegexp = regexp.MustCompile(`(?m)^([A-Z0-9]{4,10})\s+(.{3,40}?)\s+([\d.]+)\s*$`)
var grosnorInvoiceNumberRegexp = regexp.MustCompile(`(?i)invoice number\D{0,10}(\d+)`)
var grosnorDateRegexp = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

func (p *GrosnorParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{VendorGuess: "Grosnor Distribution"}

	if m := grosnorInvoiceNumberRegexp.FindStringSubmatch(text); m != nil {
		nr.InvoiceNumber = m[1]
	}
	if m := grosnorDateRegexp.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("01/02/2006", m[1]); err == nil {
			nr.PurchaseDate = t
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

	for _, m := range grosnorItemLineRegexp.FindAllStringSubmatch(text, -1) {
		amount, ok := NormalizePrice(m[3])
		if !ok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed, "unable to parse Grosnor line price", map[string]any{"raw": m[3]}))
			continue
		}
		sku := m[1]
		nr.Lines = append(nr.Lines, NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[2]),
			SKU:       &sku,
			LineTotal: amount,
			TaxFlag:   receipt.TaxFlagTaxable,
		})
	}

	reconcileSubtotal(&nr)
	return nr
}
