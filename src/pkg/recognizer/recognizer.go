// Package recognizer implements the item recognizer (Stage 1, C4):
// cache-first lookup by (vendor_canonical, sku), falling back to an LLM
// call with the closed category vocabulary, with a documented
// degradation path when the model output can't be trusted.
package recognizer

import (
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/cache"
	"curlysbooks/src/pkg/llm"
	"curlysbooks/src/pkg/receipt"
)

// Source identifies where a RecognizedItem's classification came from.
type Source string

const (
	SourceCache Source = "cache"
	SourceAI    Source = "ai"
)

// RecognizedItem is the Stage 1 result.
type RecognizedItem struct {
	NormalizedDescription string
	ProductCategory       string
	Brand                 string
	Confidence            float64
	Source                Source
	AICostUSD             float64
}

// Recognizer wraps the categorization cache and the LLM transport behind
// the single recognize operation. Recognize takes the vendor, SKU, raw
// description, and cache-write threshold; it does not take the line
// total — Stage 2 is what reasons about it.
type Recognizer struct {
	cache *cache.Cache
	// pricePerInputToken and pricePerOutputToken price ai_cost_usd from
	// the run metadata's token counts. Values are configured, not
	// hardcoded, since model pricing changes independently of this code.
	pricePerInputToken  float64
	pricePerOutputToken float64
}

func New(c *cache.Cache, pricePerInputToken, pricePerOutputToken float64) *Recognizer {
	return &Recognizer{
		cache:               c,
		pricePerInputToken:  pricePerInputToken,
		pricePerOutputToken: pricePerOutputToken,
	}
}

// Recognize implements the four-step algorithm: cache hit short-circuits
// entirely; a miss (or a blank SKU, which is never cacheable) calls the
// LLM; malformed output degrades to unknown rather than erroring; a
// sufficiently confident AI result on a real SKU is written back to the
// cache for next time.
func (r *Recognizer) Recognize(vendorCanonical, sku, rawDescription string, cacheWriteThreshold float64) (RecognizedItem, *receipt.ValidationWarning, *xerr.Error) {
	if sku != "" {
		entry, hit, e := r.cache.Get(vendorCanonical, sku)
		if e != nil {
			return RecognizedItem{}, nil, e
		}
		if hit {
			tl.Log(tl.Verbose, palette.Cyan, "recognizer cache hit vendor=%s sku=%s category=%s", vendorCanonical, sku, entry.ProductCategory)
			if touchErr := r.cache.TouchSeen(vendorCanonical, sku); touchErr != nil {
				// A failed bookkeeping write must not fail an otherwise
				// successful cache hit.
				tl.Log(tl.Warning, palette.Yellow, "recognizer cache touch failed vendor=%s sku=%s: %v", vendorCanonical, sku, touchErr)
			}
			return RecognizedItem{
				NormalizedDescription: entry.NormalizedDescription,
				ProductCategory:       entry.ProductCategory,
				Brand:                 entry.Brand,
				Confidence:            entry.UserConfidence,
				Source:                SourceCache,
				AICostUSD:             0,
			}, nil, nil
		}
	}

	analysis, e := llm.CategorizeLines([]string{rawDescription}, receipt.Categories)
	if e != nil {
		return RecognizedItem{}, nil, e
	}

	if len(analysis.Classifications) != 1 || analysis.Classifications[0].CategoryKey == "" {
		tl.Log(tl.Warning, palette.Yellow, "recognizer got malformed output for vendor=%s sku=%s", vendorCanonical, sku)
		warning := receipt.NewWarning(
			receipt.WarningRecognizerInvalid,
			"model returned no usable classification for this line",
			map[string]any{"vendor_canonical": vendorCanonical, "sku": sku},
		)
		return RecognizedItem{
			NormalizedDescription: rawDescription,
			ProductCategory:       receipt.CategoryUnknown,
			Confidence:            0.0,
			Source:                SourceAI,
		}, &warning, nil
	}

	classification := analysis.Classifications[0]
	normalizedDescription := classification.NormalizedDescription
	if normalizedDescription == "" {
		normalizedDescription = rawDescription
	}
	item := RecognizedItem{
		NormalizedDescription: normalizedDescription,
		ProductCategory:       classification.CategoryKey,
		Brand:                 classification.Brand,
		Confidence:            classification.Confidence,
		Source:                SourceAI,
		AICostUSD:             estimateCost(analysis, r.pricePerInputToken, r.pricePerOutputToken),
	}

	if sku != "" && item.Confidence >= cacheWriteThreshold && item.ProductCategory != receipt.CategoryUnknown {
		writeErr := r.cache.Put(receipt.ProductMapping{
			VendorCanonical:       vendorCanonical,
			SKU:                   sku,
			NormalizedDescription: item.NormalizedDescription,
			ProductCategory:       item.ProductCategory,
			Brand:                 item.Brand,
			UserConfidence:        item.Confidence,
			TimesSeen:             1,
			FirstSeen:             time.Now(),
			LastSeen:              time.Now(),
		})
		if writeErr != nil {
			// Cache write failure degrades the win but must not fail the
			// receipt: the classification itself already succeeded.
			tl.Log(tl.Warning, palette.Yellow, "recognizer cache write failed vendor=%s sku=%s: %v", vendorCanonical, sku, writeErr)
		}
	}

	return item, nil, nil
}

func estimateCost(analysis llm.ReceiptAnalysis, pricePerInputToken, pricePerOutputToken float64) float64 {
	if analysis.LLMRunMetadata == nil {
		return 0
	}
	meta := analysis.LLMRunMetadata
	return float64(meta.TokensIn)*pricePerInputToken + float64(meta.TokensOut)*pricePerOutputToken
}
