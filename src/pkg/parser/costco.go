package parser

import (
	"regexp"
	"strings"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// CostcoParser handles Costco Wholesale receipts: item number (SKU)
// prefixes each line, a trailing letter marks tax code, and deposits
// are a distinct line type the spec requires be fee, not item.
type CostcoParser struct{}

func NewCostcoParser() *CostcoParser { return &CostcoParser{} }

func (p *CostcoParser) VendorKey() string { return "costco" }

func (p *CostcoParser) DetectFormat(text string) bool {
	return strings.Contains(strings.ToLower(text), "costco")
}

var costcoTaxTable = map[string]receipt.TaxFlag{
	"H": receipt.TaxFlagTaxable,
	"E": receipt.TaxFlagExempt,
	"Z": receipt.TaxFlagZeroRated,
}

// costcoItemLineRegexp matches "123456 HOT ROD 40CT   14.99 H"
var costcoItemLineRegexp = regexp.MustCompile(`(?m)^(\d{4,7})\s+(.{3,40}?)\s+([\d.]+)\s*([HEZ])?\s*$`)
var costcoDepositRegexp = regexp.MustCompile(`(?i)\bdeposit\b.{0,20}?([\d.]+)`)
var costcoDateRegexp = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

func (p *CostcoParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{VendorGuess: "Costco Wholesale"}

	if m := costcoDateRegexp.FindStringSubmatch(text); m != nil {
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

	for _, m := range costcoItemLineRegexp.FindAllStringSubmatch(text, -1) {
		amount, ok := NormalizePrice(m[3])
		if !ok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed, "unable to parse Costco line price", map[string]any{"raw": m[3]}))
			continue
		}
		sku := m[1]
		nr.Lines = append(nr.Lines, NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[2]),
			SKU:       &sku,
			LineTotal: amount,
			TaxFlag:   MapTaxCode(m[4], costcoTaxTable),
		})
	}

	for _, m := range costcoDepositRegexp.FindAllStringSubmatch(text, -1) {
		amount, ok := NormalizePrice(m[1])
		if !ok {
			continue
		}
		nr.Lines = append(nr.Lines, NormalizedLine{
			LineType:  receipt.LineTypeFee,
			RawText:   "Container deposit",
			LineTotal: amount,
			TaxFlag:   receipt.TaxFlagExempt,
		})
	}

	reconcileSubtotal(&nr)
	return nr
}
