// Package llm wraps the generic openai Responses API transport with the
// prompt, schema, and degradation contract for item categorization (C4).
package llm

import (
	"fmt"
	"sort"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/openai"
)

// LineClassification is one item's categorization result: the product
// category key plus the confidence the model assigns it. An empty
// CategoryKey signals a malformed/unusable response, which the caller
// (recognizer) degrades to "unknown" rather than propagating; a
// non-empty key is passed through with its confidence as given.
type LineClassification struct {
	LineIndex            int     `json:"line_index"`
	NormalizedDescription string `json:"normalized_description"`
	CategoryKey          string  `json:"category_key"`
	Brand                string  `json:"brand,omitempty"`
	Confidence           float64 `json:"confidence"`
}

// ReceiptAnalysis is the structured result of one categorization call: a
// classification per requested line, plus the metadata of the run that
// produced it.
type ReceiptAnalysis struct {
	Classifications []LineClassification  `json:"classifications"`
	LLMRunMetadata  *openai.LLMRunMetadata `json:"llm_run_metadata,omitempty"`
}

// CategorizeLines asks the model to assign one of the allowed category
// keys to each of the given line descriptions, with a calibrated
// confidence. categories maps a closed vocabulary key to a one-line
// description (see receipt.Categories); descriptions key off the
// zero-based index into lineDescriptions so the caller can zip results
// back onto its ReceiptLine rows.
func CategorizeLines(lineDescriptions []string, categories map[string]string) (analysis ReceiptAnalysis, e *xerr.Error) {
	model := "gpt-5-mini"
	reasoningEffort := openai.EffortLow
	tools := []any{}
	toolChoice := "auto"

	tl.Log(
		tl.Notice, palette.BlueBold, "%s with %s model %s, reasoning effort is %s, %d lines",
		"Categorizing receipt lines", "OpenAI", model, reasoningEffort, len(lineDescriptions),
	)

	categoryLines := make([]string, 0, len(categories))
	for key, description := range categories {
		categoryLines = append(categoryLines, fmt.Sprintf("- %s: %s", key, description))
	}
	sort.Strings(categoryLines)
	categoryBlock := strings.Join(categoryLines, "\n")

	var lineBlockBuilder strings.Builder
	for i, desc := range lineDescriptions {
		fmt.Fprintf(&lineBlockBuilder, "%d: %s\n", i, desc)
	}

	instructions := fmt.Sprintf(`
You classify purchase-receipt line item descriptions into a closed set of
accounting categories for a small food-service business with two legal
entities (an incorporated company and a sole proprietorship).

For every numbered line description given in the user message:

1. Expand the raw, often cryptic OCR description into a clear,
   human-readable normalized_description (e.g. "HOT ROD 40CT" becomes
   "Hot Rod Pepperoni Sticks 40 Count"). Preserve the pack size or count
   when the raw description implies one.
2. Identify the brand when the description names or clearly implies one;
   leave it blank when it doesn't.
3. Choose exactly one category_key from the list below, and assign a
   confidence between 0.0 and 1.0 reflecting how certain you are,
   calibrated so that a confidence of 0.8 means roughly 8 times out of 10
   a human reviewer would agree with your category choice on lines like
   it.

If a description is too ambiguous, truncated, or generic to confidently
categorize, use category_key "unknown" and a low confidence rather than
guessing a specific category you are not sure about; still return your
best-effort normalized_description.

Allowed categories:
%s
`, categoryBlock)

	developerMessage := fmt.Sprintf(`
Return only a single JSON object matching the provided schema: one
classification entry per input line, in any order, each carrying the
line_index it corresponds to.

Lines to classify:
%s
`, lineBlockBuilder.String())

	userMessage := "Classify each numbered line into exactly one allowed category."

	schemaProperties := map[string]any{
		"classifications": map[string]any{
			"type":        "array",
			"description": "One classification per input line.",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"line_index": map[string]any{
						"type":        "integer",
						"description": "Zero-based index matching the input line list.",
					},
					"normalized_description": map[string]any{
						"type":        "string",
						"description": "The raw description expanded into a clear, human-readable form.",
					},
					"category_key": map[string]any{
						"type":        "string",
						"description": "One of the allowed category keys, or 'unknown'.",
					},
					"brand": map[string]any{
						"type":        "string",
						"description": "The brand name, if the description names or clearly implies one, else empty.",
					},
					"confidence": map[string]any{
						"type":        "number",
						"description": "Calibrated confidence between 0.0 and 1.0.",
					},
				},
				"required":             []string{"line_index", "normalized_description", "category_key", "brand", "confidence"},
				"additionalProperties": false,
			},
		},
	}

	result, runMetadata, e := openai.UseChatGPTResponsesAPI[ReceiptAnalysis](
		model, reasoningEffort, instructions, developerMessage, userMessage, schemaProperties,
		4096, tools, toolChoice,
	)
	if e != nil {
		return analysis, e
	}
	result.LLMRunMetadata = runMetadata

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s: %d classifications",
		"Categorized receipt lines", len(result.Classifications),
	)

	return result, nil
}
