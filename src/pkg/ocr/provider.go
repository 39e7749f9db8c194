// Package ocr implements the pluggable text-extraction layer (C1): one
// operation, extract_text, backed by a Textract provider (rasters and
// single-page PDFs), a Tesseract provider (PDFs only, via page
// rasterization), and a direct PDF text-layer extractor, selected by a
// small strategy factory keyed on file type.
package ocr

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/config"
	"curlysbooks/src/pkg/receipt"
)

// Method names recorded on the persisted receipt row.
const (
	MethodTextract          = "textract"
	MethodTesseract         = "tesseract"
	MethodPDFTextExtraction = "pdf_text_extraction"
)

// Line is one OCR'd text line with its page-normalized bounding box.
type Line struct {
	Page       int     `json:"page"`
	LineNumber int     `json:"line_number"`
	Text       string  `json:"text"`
	receipt.BoundingBox
}

// Result is the contract every provider returns: text, confidence in
// [0,1], the method used, page count, and per-line bounding boxes (which
// may be empty when a provider cannot produce them — §7's
// bounding_boxes_unavailable warning covers that case).
type Result struct {
	Text        string
	Confidence  float64
	Method      string
	PageCount   int
	BoundingBoxes []Line
}

// ErrOCRUnavailable is returned when the only eligible provider for a
// file type is disabled or unreachable.
var ErrOCRUnavailable = "OCRUnavailable"

// ErrOCRFailed is returned when every eligible provider for a file type
// was attempted and none produced usable text.
var ErrOCRFailed = "OCRFailed"

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".heic": true,
	".heif": true, ".tiff": true, ".tif": true, ".bmp": true,
}

func isImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

func isPDF(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}

// Factory is the single long-lived strategy instance named in the
// concurrency model: providers are constructed lazily and are stateless
// with respect to individual calls.
type Factory struct {
	textract  *TextractProvider
	tesseract *TesseractProvider
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) textractProvider() *TextractProvider {
	if f.textract == nil {
		f.textract = NewTextractProvider(config.Cfg.TextractRegion)
	}
	return f.textract
}

func (f *Factory) tesseractProvider() *TesseractProvider {
	if f.tesseract == nil {
		f.tesseract = NewTesseractProvider()
	}
	return f.tesseract
}

// ExtractText is the one operation C1 presents to the rest of the
// pipeline. It is cancellation-aware: ctx is threaded into the Textract
// and Tesseract calls so a cancelled pipeline abandons in-flight OCR
// requests; the local text-layer read takes no ctx.
func (f *Factory) ExtractText(ctx context.Context, path string) (Result, *xerr.Error) {
	switch {
	case isImage(path):
		return f.extractFromImage(ctx, path)
	case isPDF(path):
		return f.extractFromPDF(ctx, path)
	default:
		return Result{}, xerr.NewError(nil, ErrOCRUnavailable, map[string]any{"path": path, "reason": "unsupported file type"})
	}
}

func (f *Factory) extractFromImage(ctx context.Context, path string) (Result, *xerr.Error) {
	if !config.Cfg.TextractEnabled {
		return Result{}, xerr.NewError(nil, ErrOCRUnavailable, map[string]any{"path": path, "reason": "textract disabled for image input"})
	}
	result, e := f.textractProvider().ExtractText(ctx, path)
	if e != nil {
		return Result{}, xerr.NewError(nil, ErrOCRUnavailable, map[string]any{"path": path, "cause": e})
	}
	return result, nil
}

func (f *Factory) extractFromPDF(ctx context.Context, path string) (Result, *xerr.Error) {
	// 1. direct text-layer extraction always runs first: it's free and,
	// when present, strictly more reliable than either OCR engine.
	if result, e := ExtractEmbeddedPDFText(path); e == nil && strings.TrimSpace(result.Text) != "" {
		return result, nil
	}

	// config.Cfg.OCRBackend chooses the fallback once the text layer is
	// missing. pdf_text means "only the text layer, nothing else" — a
	// vendor known to always carry one, where a silent OCR fallback would
	// mask an extraction regression instead of surfacing it.
	if config.Cfg.OCRBackend == config.OCRBackendPDFText {
		return Result{}, xerr.NewError(nil, ErrOCRFailed, map[string]any{"path": path, "reason": "no embedded text layer"})
	}

	if config.Cfg.OCRBackend == config.OCRBackendTextract {
		if config.Cfg.TextractEnabled {
			if result, e := f.textractProvider().ExtractText(ctx, path); e == nil {
				return result, nil
			}
		}
		if result, e := f.tesseractProvider().ExtractText(ctx, path); e == nil && result.Confidence >= config.Cfg.TesseractMinConfidence {
			return result, nil
		}
		return Result{}, xerr.NewError(nil, ErrOCRFailed, map[string]any{"path": path, "reason": "all OCR strategies exhausted"})
	}

	// Default (and explicit tesseract): Tesseract first, gated on
	// confidence, then Textract as the last resort.
	if result, e := f.tesseractProvider().ExtractText(ctx, path); e == nil {
		if result.Confidence >= config.Cfg.TesseractMinConfidence {
			return result, nil
		}
	}

	if config.Cfg.TextractEnabled {
		if result, e := f.textractProvider().ExtractText(ctx, path); e == nil {
			return result, nil
		}
	}

	return Result{}, xerr.NewError(nil, ErrOCRFailed, map[string]any{"path": path, "reason": "all OCR strategies exhausted"})
}
