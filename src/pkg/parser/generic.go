package parser

import (
	"regexp"
	"strings"
	"time"

	"curlysbooks/src/pkg/receipt"
)

// GenericParser always "matches": it does best-effort extraction of
// vendor guess, date, subtotal, tax, and total, and every item or fee
// line it produces is flagged for review further downstream: the
// pipeline sets requires_review on every categorized line of a receipt
// with no identified vendor (the parser itself does not set
// requires_review — that field doesn't exist until classification).
type GenericParser struct{}

func NewGenericParser() *GenericParser { return &GenericParser{} }

func (p *GenericParser) VendorKey() string { return "generic" }

func (p *GenericParser) DetectFormat(text string) bool { return true }

var genericSubtotalRegexp = regexp.MustCompile(`(?i)sub ?total\D{0,10}([\d.,]+)`)
var genericTaxRegexp = regexp.MustCompile(`(?i)\b(?:hst|gst|tax)\D{0,10}([\d.,]+)`)
var genericTotalRegexp = regexp.MustCompile(`(?i)\btotal\D{0,10}([\d.,]+)`)
var genericLineRegexp = regexp.MustCompile(`(?m)^(.{3,40}?)\s{2,}([\d.,]+)\s*$`)

func (p *GenericParser) Parse(text string, entity receipt.Entity) NormalizedReceipt {
	nr := NormalizedReceipt{
		VendorGuess:  "",
		PurchaseDate: time.Time{},
	}

	lines := strings.Split(text, "\n")
	nr.VendorGuess = firstNonEmptyLine(lines)

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

	for _, m := range genericLineRegexp.FindAllStringSubmatch(text, -1) {
		// Subtotal, tax, and total rows are read above, not emitted as items.
		if genericSubtotalRegexp.MatchString(m[0]) || genericTaxRegexp.MatchString(m[0]) || genericTotalRegexp.MatchString(m[0]) {
			continue
		}
		amount, ok := NormalizePrice(m[2])
		if !ok {
			nr.ValidationWarnings = append(nr.ValidationWarnings, receipt.NewWarning(
				receipt.WarningPriceParseFailed,
				"unable to parse numeric token on generic line",
				map[string]any{"raw": m[2]},
			))
			continue
		}
		nr.Lines = append(nr.Lines, NormalizedLine{
			LineType:  receipt.LineTypeItem,
			RawText:   CleanDescription(m[1]),
			LineTotal: amount,
			TaxFlag:   receipt.TaxFlagTaxable,
		})
	}

	reconcileSubtotal(&nr)
	return nr
}

func firstNonEmptyLine(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return CleanDescription(trimmed)
		}
	}
	return ""
}
