package parser

import (
	"regexp"
	"strings"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// GFSParser handles Gordon Food Service invoices: SKU, quantity, unit
// price, and extended line total are all present, unlike retail
// receipts which usually only carry the line total.
type GFSParser struct{}

func NewGFSParser() *GFSParser { return &GFSParser{} }

func (p *GFSParser) VendorKey() string { return "gfs" }

func (p *GFSParser) DetectFormat(text string) bool {
	folded := strings.ToLower(text)
	return strings.Contains(folded, "gordon food service") || strings.Contains(folded, "gfs canada")
}

var gfsTaxTable = map[string]receipt.TaxFlag{
	"T": receipt.TaxFlagTaxable,
	"G": receipt.TaxFlagZeroRated,
	"N": receipt.TaxFlagExempt,
}

// gfsItemLineRegexp matches "123456 2 CS  WHOLE WHEAT BUN  18.50  37.00 T"
var gfsItemLineRegexp = regexp.MustCompile(`(?m)^(\d{5,8})\s+([\d.]+)\s+\w{2,4}\s+(.{3,40}?)\s+([\d.]+)\s+([\d.]+)\s*([TGN])?\s*$`)
var gfsInvoiceNumberRegexp = regexp.MustCompile(`(?i)invoice number\D{0,10}(\d+)`)
var gfsDateRegexp = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

func (p *GFSParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{VendorGuess: "Gordon Food Service"}

	if m := gfsInvoiceNumberRegexp.FindStringSubmatch(text); m != nil {
		nr.InvoiceNumber = m[1]
	}
	if m := gfsDateRegexp.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
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

	for _, m := range gfsItemLineRegexp.FindAllStringSubmatch(text, -1) {
		quantity, qok := NormalizePrice(m[2])
		unitPrice, uok := NormalizePrice(m[4])
		lineTotal, lok := NormalizePrice(m[5])
		if !lok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed, "unable to parse GFS line total", map[string]any{"raw": m[5]}))
			continue
		}
		sku := m[1]
		line := NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[3]),
			SKU:       &sku,
			LineTotal: lineTotal,
			TaxFlag:   MapTaxCode(m[6], gfsTaxTable),
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
