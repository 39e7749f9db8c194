package parser

import (
	"regexp"
	"strings"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// PharmasaveParser handles Pharmasave drugstore receipts: item lines
// are dense with no SKU, and zero-rated items (most over-the-counter
// health products) are common alongside taxable front-of-store goods.
type PharmasaveParser struct{}

func NewPharmasaveParser() *PharmasaveParser { return &PharmasaveParser{} }

func (p *PharmasaveParser) VendorKey() string { return "pharmasave" }

func (p *PharmasaveParser) DetectFormat(text string) bool {
	return strings.Contains(strings.ToLower(text), "pharmasave")
}

var pharmasaveTaxTable = map[string]receipt.TaxFlag{
	"T": receipt.TaxFlagTaxable,
	"Z": receipt.TaxFlagZeroRated,
}

// pharmasaveItemLineRegexp matches "ADVIL LIQUID GELS 20CT   9.99 Z"
var pharmasaveItemLineRegexp = regexp.MustCompile(`(?m)^(.{3,40}?)\s+([\d.]+)\s*([TZ])\s*$`)
var pharmasaveDateRegexp = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

func (p *PharmasaveParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{VendorGuess: "Pharmasave"}

	if m := pharmasaveDateRegexp.FindStringSubmatch(text); m != nil {
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

	for _, m := range pharmasaveItemLineRegexp.FindAllStringSubmatch(text, -1) {
		amount, ok := NormalizePrice(m[2])
		if !ok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed, "unable to parse Pharmasave line price", map[string]any{"raw": m[2]}))
			continue
		}
		nr.Lines = append(nr.Lines, NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[1]),
			LineTotal: amount,
			TaxFlag:   MapTaxCode(m[3], pharmasaveTaxTable),
		})
	}

	reconcileSubtotal(&nr)
	return nr
}
