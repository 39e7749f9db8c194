package parser

import (
	"regexp"
	"strings"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// AtlanticSuperstoreParser handles Atlantic Superstore (Loblaw banner)
// receipts: a PC Optimum header, dense item lines with a trailing tax
// letter, and an HST line broken out separately from subtotal.
type AtlanticSuperstoreParser struct{}

func NewAtlanticSuperstoreParser() *AtlanticSuperstoreParser { return &AtlanticSuperstoreParser{} }

func (p *AtlanticSuperstoreParser) VendorKey() string { return "atlantic_superstore" }

func (p *AtlanticSuperstoreParser) DetectFormat(text string) bool {
	folded := strings.ToLower(text)
	return strings.Contains(folded, "atlantic superstore") || strings.Contains(folded, "pc optimum")
}

var atlanticSuperstoreTaxTable = map[string]receipt.TaxFlag{
	"H": receipt.TaxFlagTaxable,
	"D": receipt.TaxFlagTaxable,
	"N": receipt.TaxFlagExempt,
}

// atlanticSuperstoreItemLineRegexp matches "MILK 2% 4L   5.49 H"
var atlanticSuperstoreItemLineRegexp = regexp.MustCompile(`(?m)^(.{3,40}?)\s+([\d.]+)\s*([HDN])\s*$`)
var atlanticSuperstoreDateRegexp = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

func (p *AtlanticSuperstoreParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{VendorGuess: "Atlantic Superstore"}

	if m := atlanticSuperstoreDateRegexp.FindStringSubmatch(text); m != nil {
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

	for _, m := range atlanticSuperstoreItemLineRegexp.FindAllStringSubmatch(text, -1) {
		amount, ok := NormalizePrice(m[2])
		if !ok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed, "unable to parse Atlantic Superstore line price", map[string]any{"raw": m[2]}))
			continue
		}
		nr.Lines = append(nr.Lines, NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[1]),
			LineTotal: amount,
			TaxFlag:   MapTaxCode(m[3], atlanticSuperstoreTaxTable),
		})
	}

	reconcileSubtotal(&nr)
	return nr
}
