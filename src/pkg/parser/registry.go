package parser

import "curlysbooks/src/pkg/receipt"

// Registry maps a vendor key (as returned by vendor.Registry.Identify)
// to its parser. The Generic parser is the fallback used when the
// vendor identifier returns "".
type Registry struct {
	parsers map[string]Parser
	generic Parser
}

func NewRegistry() *Registry {
	return &Registry{
		parsers: map[string]Parser{
			"gfs":                  NewGFSParser(),
			"costco":               NewCostcoParser(),
			"grosnor":              NewGrosnorParser(),
			"atlantic_superstore":  NewAtlanticSuperstoreParser(),
			"pepsi":                NewPepsiParser(),
			"pharmasave":           NewPharmasaveParser(),
			"walmart":              NewWalmartParser(),
		},
		generic: NewGenericParser(),
	}
}

// Resolve returns the parser for vendorKey, or the Generic fallback when
// vendorKey is "" or unrecognized; usedGeneric reports which. It adds no
// warning itself — Parse appends the vendor_unknown warning.
func (r *Registry) Resolve(vendorKey string) (p Parser, usedGeneric bool) {
	if parser, ok := r.parsers[vendorKey]; ok {
		return parser, false
	}
	return r.generic, true
}

// Parse dispatches to the resolved parser and, if the Generic fallback
// was used, records the vendor_unknown warning described in §7.
func (r *Registry) Parse(vendorKey, text string, entity receipt.Entity) NormalizedReceipt {
	p, usedGeneric := r.Resolve(vendorKey)
	result := p.Parse(text, entity)
	if usedGeneric {
		result.ValidationWarnings = append(result.ValidationWarnings, receipt.NewWarning(
			receipt.WarningVendorUnknown,
			"no vendor matched; used generic best-effort parser",
			nil,
		))
	}
	return result
}
