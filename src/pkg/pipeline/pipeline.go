// Package pipeline wires C1 through C8 into the single entry point named
// in the concurrency model: process_receipt(file_path, entity,
// receipt_id, source) -> ProcessingResult. One receipt's steps run
// single-threaded and in order; independent receipts may run
// concurrently in independent goroutines, each with its own Pipeline
// call sharing the same long-lived collaborators.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/accountmapper"
	"curlysbooks/src/pkg/config"
	"curlysbooks/src/pkg/money"
	"curlysbooks/src/pkg/ocr"
	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/receipt"
	"curlysbooks/src/pkg/recognizer"
	"curlysbooks/src/pkg/repository"
	"curlysbooks/src/pkg/vendor"
)

// totalInvariantTolerance is the universal invariant's "off by 2 cents"
// allowance for subtotal + tax vs. total reconciliation (§8, invariant 1).
var totalInvariantTolerance = money.FromFloat(0.02)

// ProcessingResult is what process_receipt returns: enough for a caller
// to know whether the receipt needs a human and where to find it.
type ProcessingResult struct {
	ReceiptID      string
	Status         receipt.Status
	LineCount      int
	RequiresReview bool
	Warnings       []receipt.ValidationWarning
}

// Pipeline holds the long-lived collaborators for one process: the OCR
// factory, vendor registry, parser registry, recognizer, and repository.
// A single Pipeline instance is safe to call concurrently for different
// receipts; it holds no per-receipt state between calls.
type Pipeline struct {
	ocrFactory    *ocr.Factory
	vendors       *vendor.Registry
	parsers       *parser.Registry
	recognizer    *recognizer.Recognizer
	repo          *repository.Repository
}

func New(ocrFactory *ocr.Factory, vendors *vendor.Registry, parsers *parser.Registry, rec *recognizer.Recognizer, repo *repository.Repository) *Pipeline {
	return &Pipeline{
		ocrFactory: ocrFactory,
		vendors:    vendors,
		parsers:    parsers,
		recognizer: rec,
		repo:       repo,
	}
}

// ProcessReceipt runs one receipt through OCR, vendor identification,
// vendor parsing, two-stage categorization, and persistence, as one
// logical transaction: nothing is written until every line has a
// categorization, and a cancelled context aborts before the repository
// write begins, leaving no partial persisted state.
func (p *Pipeline) ProcessReceipt(ctx context.Context, filePath string, entity receipt.Entity, receiptID string, source receipt.Source) (ProcessingResult, *xerr.Error) {
	if receiptID == "" {
		receiptID = receipt.NewID()
	}

	contentHash, e := hashFile(filePath)
	if e != nil {
		return ProcessingResult{ReceiptID: receiptID, Status: receipt.StatusFailed}, e
	}

	ocrCtx, cancelOCR := context.WithTimeout(ctx, time.Duration(config.Cfg.OCRCallTimeoutSeconds)*time.Second)
	defer cancelOCR()

	ocrResult, e := p.ocrFactory.ExtractText(ocrCtx, filePath)
	if e != nil {
		// Fatal per §7: OCR produced no text via any strategy. Abort
		// before touching the repository at all.
		tl.Log(tl.Error, palette.RedBold, "OCR failed for receipt %s: %v", receiptID, e)
		return ProcessingResult{ReceiptID: receiptID, Status: receipt.StatusFailed}, e
	}
	if ctx.Err() != nil {
		return ProcessingResult{ReceiptID: receiptID, Status: receipt.StatusFailed}, xerr.NewError(ctx.Err(), "receipt processing cancelled after OCR", receiptID)
	}

	vendorKey := p.vendors.Identify(ocrResult.Text)
	normalized := p.parsers.Parse(vendorKey, ocrResult.Text, entity)

	warnings := append([]receipt.ValidationWarning{}, normalized.ValidationWarnings...)
	if ocrResult.Confidence < config.Cfg.TesseractMinConfidence && ocrResult.Method != ocr.MethodPDFTextExtraction {
		warnings = append(warnings, receipt.NewWarning(
			receipt.WarningOCRLowConfidence,
			"OCR confidence below the informational threshold",
			map[string]any{"confidence": ocrResult.Confidence, "method": ocrResult.Method},
		))
	}
	if len(ocrResult.BoundingBoxes) == 0 {
		warnings = append(warnings, receipt.NewWarning(
			receipt.WarningBoundingBoxUnavailable,
			"OCR provider returned no per-line bounding boxes",
			map[string]any{"method": ocrResult.Method},
		))
	}
	if !money.WithinTolerance(normalized.Subtotal.Add(normalized.TaxTotal), normalized.Total, totalInvariantTolerance) {
		warnings = append(warnings, receipt.NewWarning(
			receipt.WarningTotalMismatch,
			"subtotal plus tax did not reconcile with the parsed total",
			map[string]any{
				"subtotal":  normalized.Subtotal.StringFixed(2),
				"tax_total": normalized.TaxTotal.StringFixed(2),
				"total":     normalized.Total.StringFixed(2),
			},
		))
	}

	lines := make([]receipt.ReceiptLine, 0, len(normalized.Lines))
	for i, nl := range normalized.Lines {
		if ctx.Err() != nil {
			return ProcessingResult{ReceiptID: receiptID, Status: receipt.StatusFailed}, xerr.NewError(ctx.Err(), "receipt processing cancelled during categorization", receiptID)
		}

		line, lineWarning := p.categorizeLine(ctx, nl, vendorKey, i)
		if lineWarning != nil {
			warnings = append(warnings, *lineWarning)
		}
		lines = append(lines, line)
	}

	status := receipt.StatusApproved
	requiresReview := false
	for _, line := range lines {
		if line.RequiresReview {
			requiresReview = true
			break
		}
	}
	if requiresReview || len(warnings) > 0 {
		status = receipt.StatusReviewRequired
	}

	rec := receipt.Receipt{
		ID:                 receiptID,
		Entity:             entity,
		ContentHash:        contentHash,
		OriginalPath:       filePath,
		Source:             source,
		UploadedAt:         time.Now(),
		OCRMethod:          ocrResult.Method,
		OCRConfidence:      ocrResult.Confidence,
		PageCount:          ocrResult.PageCount,
		VendorKey:          vendorKey,
		VendorGuess:        normalized.VendorGuess,
		PurchaseDate:       normalized.PurchaseDate,
		InvoiceNumber:      normalized.InvoiceNumber,
		Currency:           "CAD",
		Subtotal:           normalized.Subtotal,
		TaxTotal:           normalized.TaxTotal,
		Total:              normalized.Total,
		ValidationWarnings: warnings,
		Status:             status,
	}

	if ctx.Err() != nil {
		return ProcessingResult{ReceiptID: receiptID, Status: receipt.StatusFailed}, xerr.NewError(ctx.Err(), "receipt processing cancelled before persistence", receiptID)
	}

	if e := p.repo.SaveReceipt(rec); e != nil {
		return ProcessingResult{ReceiptID: receiptID, Status: receipt.StatusFailed}, e
	}
	if e := p.repo.SaveLines(entity, receiptID, lines); e != nil {
		return ProcessingResult{ReceiptID: receiptID, Status: receipt.StatusFailed}, e
	}

	return ProcessingResult{
		ReceiptID:      receiptID,
		Status:         status,
		LineCount:      len(lines),
		RequiresReview: requiresReview,
		Warnings:       warnings,
	}, nil
}

// categorizeLine runs Stage 1 and Stage 2 for one normalized line and
// folds the results into a persistable ReceiptLine. An LLM timeout or
// other Stage 1 failure degrades to unknown/9100 rather than aborting
// the receipt — only OCR failure and repository failure are fatal.
func (p *Pipeline) categorizeLine(ctx context.Context, nl parser.NormalizedLine, vendorKey string, lineIndex int) (receipt.ReceiptLine, *receipt.ValidationWarning) {
	line := receipt.ReceiptLine{
		ID:        receipt.NewID(),
		LineIndex: lineIndex,
		LineType:  nl.LineType,
		SKU:       nl.SKU,
		UPC:       nl.UPC,
		RawText:   nl.RawText,
		Quantity:  nl.Quantity,
		UnitPrice: nl.UnitPrice,
		LineTotal: nl.LineTotal,
		TaxFlag:   nl.TaxFlag,
		TaxAmount: nl.TaxAmount,
	}

	// Only item and fee lines go through categorization; subtotal/tax/
	// total/discount rows have no product category to assign.
	if nl.LineType != receipt.LineTypeItem && nl.LineType != receipt.LineTypeFee {
		line.ProductCategory = receipt.CategoryUnknown
		line.AccountCode = "9100"
		return line, nil
	}

	sku := ""
	if nl.SKU != nil {
		sku = *nl.SKU
	}

	llmCtx, cancel := context.WithTimeout(ctx, time.Duration(config.Cfg.LLMCallTimeoutSeconds)*time.Second)
	defer cancel()

	recognized, recognizerWarning, e := p.runRecognizeWithTimeout(llmCtx, vendorKey, sku, nl.RawText)
	if e != nil {
		timeoutWarning := receipt.NewWarning(
			receipt.WarningRecognizerTimeout,
			"item recognizer call did not complete in time",
			map[string]any{"vendor": vendorKey, "sku": sku},
		)
		line.NormalizedDescription = nl.RawText
		line.ProductCategory = receipt.CategoryUnknown
		line.Confidence = 0.0
		line.AccountCode = "9100"
		line.RequiresReview = true
		return line, &timeoutWarning
	}

	mapping := accountmapper.Map(recognized.ProductCategory, line.LineTotal, money.FromFloat(config.Cfg.CapitalizationThreshold))

	line.NormalizedDescription = recognized.NormalizedDescription
	line.ProductCategory = recognized.ProductCategory
	line.Brand = recognized.Brand
	line.AccountCode = mapping.AccountCode
	line.Confidence = recognized.Confidence
	// vendorKey == "" means the Generic fallback parsed this line, and
	// every line it produces goes to review.
	line.RequiresReview = mapping.RequiresReview ||
		recognized.Confidence < config.Cfg.CategorizationReviewThreshold ||
		recognized.ProductCategory == receipt.CategoryUnknown ||
		vendorKey == ""
	if recognized.AICostUSD > 0 {
		cost := money.FromFloat(recognized.AICostUSD)
		line.AICostUSD = &cost
	}

	return line, recognizerWarning
}

// runRecognizeWithTimeout adapts Recognizer.Recognize, which is not
// itself context-aware (the underlying openai transport issues a plain
// blocking HTTP call), into a cancellable call by racing it against
// ctx.Done(). This is the boundary named in the concurrency model where
// an LLM call must honor a caller's cancellation.
func (p *Pipeline) runRecognizeWithTimeout(ctx context.Context, vendorKey, sku, rawText string) (recognizer.RecognizedItem, *receipt.ValidationWarning, *xerr.Error) {
	type outcome struct {
		item    recognizer.RecognizedItem
		warning *receipt.ValidationWarning
		err     *xerr.Error
	}

	resultCh := make(chan outcome, 1)
	go func() {
		item, warning, err := p.recognizer.Recognize(vendorKey, sku, rawText, config.Cfg.CategorizationCacheWriteThreshold)
		resultCh <- outcome{item, warning, err}
	}()

	select {
	case <-ctx.Done():
		return recognizer.RecognizedItem{}, nil, xerr.NewError(ctx.Err(), "recognizer call timed out", map[string]any{"vendor": vendorKey, "sku": sku})
	case res := <-resultCh:
		return res.item, res.warning, res.err
	}
}

func hashFile(path string) (string, *xerr.Error) {
	f, err := os.Open(path)
	if err != nil {
		return "", xerr.NewError(err, "open receipt file for hashing", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", xerr.NewError(err, "hash receipt file", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
