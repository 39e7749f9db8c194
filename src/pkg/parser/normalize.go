package parser

import (
	"regexp"
	"strings"

	"curlysbooks/src/pkg/money"
	"curlysbooks/src/pkg/receipt"
)

// ocrDigitConfusions repairs the handful of OCR misreads the spec names
// explicitly: E/O/o standing in for digits in a numeric token.
var ocrDigitConfusions = strings.NewReplacer(
	"E", "9",
	"O", "0",
	"o", "0",
)

var currencySymbolRegexp = regexp.MustCompile(`[$€£]`)
var thousandsSeparatorRegexp = regexp.MustCompile(`,(\d{3})`)

// NormalizePrice strips currency symbols and thousands separators,
// repairs common OCR digit confusions, and interprets parenthesized or
// leading-minus values as negative. It reports ok=false (never panics)
// on an unparseable string so the caller can emit a price_parse_failed
// warning and skip the token.
func NormalizePrice(raw string) (value money.Amount, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return money.Zero, false
	}

	negative := false
	if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		negative = true
		trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "("), ")")
	}
	if strings.HasPrefix(trimmed, "-") {
		negative = true
		trimmed = strings.TrimPrefix(trimmed, "-")
	}

	trimmed = currencySymbolRegexp.ReplaceAllString(trimmed, "")
	trimmed = thousandsSeparatorRegexp.ReplaceAllString(trimmed, "$1")
	trimmed = strings.TrimSpace(trimmed)

	if containsLetterConfusion(trimmed) {
		trimmed = ocrDigitConfusions.Replace(trimmed)
	}

	parsed, err := money.FromString(trimmed)
	if err != nil {
		return money.Zero, false
	}

	if negative {
		parsed = parsed.Neg()
	}

	return money.Round2(parsed), true
}

func containsLetterConfusion(s string) bool {
	for _, r := range s {
		if r == 'E' || r == 'O' || r == 'o' {
			return true
		}
	}
	return false
}

var whitespaceRunRegexp = regexp.MustCompile(`\s{2,}`)
var strayUnderscoreRegexp = regexp.MustCompile(`_+`)

// CleanDescription collapses whitespace runs, replaces OCR's common
// pipe-for-I misread, and strips stray underscores.
func CleanDescription(raw string) string {
	cleaned := strings.ReplaceAll(raw, "|", "I")
	cleaned = strayUnderscoreRegexp.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRunRegexp.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// MapTaxCode translates a per-vendor single-letter tax code to the
// canonical tax flag, falling back to exempt for anything unrecognized
// (the safer default for a deductibility-sensitive ledger).
func MapTaxCode(code string, table map[string]receipt.TaxFlag) receipt.TaxFlag {
	if flag, ok := table[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return flag
	}
	return receipt.TaxFlagExempt
}
