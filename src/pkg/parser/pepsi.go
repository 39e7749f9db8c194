package parser

import (
	"regexp"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// PepsiParser handles PepsiCo Beverages Canada route invoices. Product
// lines carry a GS1 UPC with the 69000 PepsiCo company prefix, but that
// prefix alone is not distinctive enough to trust: plenty of unrelated
// receipts contain a 12-digit number that happens to start with 69000.
// DetectFormat therefore requires company/invoice context in addition
// to the prefix before this parser accepts a document.
type PepsiParser struct{}

func NewPepsiParser() *PepsiParser { return &PepsiParser{} }

func (p *PepsiParser) VendorKey() string { return "pepsi" }

const pepsiGS1CompanyPrefix = "69000"

var pepsiContextRegexp = regexp.MustCompile(`(?i)pepsico|invoice details|route\s*#?\s*\d+`)
var pepsiUPCRegexp = regexp.MustCompile(`\b` + pepsiGS1CompanyPrefix + `\d{7}\b`)

func (p *PepsiParser) DetectFormat(text string) bool {
	if !pepsiContextRegexp.MatchString(text) {
		return false
	}
	return pepsiUPCRegexp.MatchString(text)
}

var pepsiInvoiceNumberRegexp = regexp.MustCompile(`(?i)invoice\s*#?\s*(\d+)`)
var pepsiRouteRegexp = regexp.MustCompile(`(?i)route\s*#?\s*(\d+)`)
var pepsiDateRegexp = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

// pepsiItemLineRegexp matches "690001234567 PEPSI 24PK CANS   2  11.98  23.96"
var pepsiItemLineRegexp = regexp.MustCompile(`(?m)^(` + pepsiGS1CompanyPrefix + `\d{7})\s+(.{3,40}?)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s*$`)

func (p *PepsiParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{VendorGuess: "PepsiCo Beverages Canada"}

	if m := pepsiInvoiceNumberRegexp.FindStringSubmatch(text); m != nil {
		nr.InvoiceNumber = m[1]
	}
	if m := pepsiRouteRegexp.FindStringSubmatch(text); m != nil && nr.InvoiceNumber == "" {
		nr.InvoiceNumber = m[1]
	}
	if m := pepsiDateRegexp.FindStringSubmatch(text); m != nil {
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

	for _, m := range pepsiItemLineRegexp.FindAllStringSubmatch(text, -1) {
		quantity, qok := NormalizePrice(m[3])
		unitPrice, uok := NormalizePrice(m[4])
		lineTotal, lok := NormalizePrice(m[5])
		if !lok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed, "unable to parse Pepsi line total", map[string]any{"raw": m[5]}))
			continue
		}
		upc := m[1]
		line := NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[2]),
			UPC:       &upc,
			LineTotal: lineTotal,
			TaxFlag:   receipt.TaxFlagTaxable,
		}
		if qok {
			line.Quantity = &quantity
		}
		if uok {
			line.UnitPrice = &unitPrice
		}
		nr.Lines = append(nr.Lines, line)
	}

	reconcileSubtotal(&nr)
	return nr
}
