package ocr

import (
	"context"
	"os"

	"github.com/otiai10/gosseract/v2"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// TesseractProvider OCRs PDFs only: each page's embedded raster image is
// extracted at its embedded resolution and run through gosseract
// individually (tesseractRasterDPI is passed along, but no page is
// re-rendered or resampled to 300 DPI), and the overall confidence is
// the mean of per-page confidence. It is an optional dependency — a
// missing Tesseract binary surfaces as a provider error, which the
// factory treats as "this strategy is unavailable" rather than fatal.
type TesseractProvider struct{}

func NewTesseractProvider() *TesseractProvider {
	return &TesseractProvider{}
}

const tesseractRasterDPI = 300

func (p *TesseractProvider) ExtractText(ctx context.Context, pdfPath string) (Result, *xerr.Error) {
	tl.Log(tl.Info1, palette.Cyan, "Running Tesseract on '%s' at %d DPI per page", pdfPath, tesseractRasterDPI)

	pageImages, e := rasterizePDFPages(pdfPath, tesseractRasterDPI)
	if e != nil {
		return Result{}, e
	}
	defer cleanupTempFiles(pageImages)

	var allText []string
	var confidenceSum float64
	var lines []Line

	for pageIndex, imagePath := range pageImages {
		select {
		case <-ctx.Done():
			return Result{}, xerr.NewError(ctx.Err(), "tesseract cancelled", map[string]any{"path": pdfPath})
		default:
		}

		processedPath := imagePath + ".clean.png"
		if e := createProcessedImage(imagePath, processedPath); e != nil {
			return Result{}, e
		}

		pageText, pageConfidence, e := ocrSinglePage(processedPath)
		if e != nil {
			return Result{}, e
		}

		allText = append(allText, pageText)
		confidenceSum += pageConfidence
		lines = append(lines, splitIntoLines(pageText, pageIndex)...)
	}

	if len(pageImages) == 0 {
		return Result{}, xerr.NewError(nil, "tesseract produced no pages", map[string]any{"path": pdfPath})
	}

	result := Result{
		Text:          joinLines(allText),
		Confidence:    confidenceSum / float64(len(pageImages)),
		Method:        MethodTesseract,
		PageCount:     len(pageImages),
		BoundingBoxes: lines,
	}

	tl.Log(tl.Info1, palette.Green, "Tesseract finished for '%s': confidence=%.3f pages=%d", pdfPath, result.Confidence, result.PageCount)
	return result, nil
}

// ocrSinglePage runs gosseract against one already-preprocessed page
// image and returns its text plus mean word confidence in [0,1].
func ocrSinglePage(imagePath string) (text string, confidence float64, e *xerr.Error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage("eng"); err != nil {
		return "", 0, xerr.NewError(err, "client.SetLanguage(\"eng\")", map[string]any{"path": imagePath})
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return "", 0, xerr.NewError(err, "client.SetVariable(preserve_interword_spaces)", map[string]any{"path": imagePath})
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", 0, xerr.NewError(err, "client.SetPageSegMode(PSM_AUTO)", map[string]any{"path": imagePath})
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", 0, xerr.NewError(err, "client.SetImage", map[string]any{"path": imagePath})
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return "", 0, xerr.NewError(err, "client.GetBoundingBoxes", map[string]any{"path": imagePath})
	}

	var confidenceSum float64
	var words []string
	for _, box := range boxes {
		words = append(words, box.Word)
		confidenceSum += box.Confidence / 100.0
	}
	if len(boxes) == 0 {
		return "", 0, nil
	}

	text, err = client.Text()
	if err != nil {
		return "", 0, xerr.NewError(err, "client.Text", map[string]any{"path": imagePath})
	}

	return text, confidenceSum / float64(len(boxes)), nil
}

func cleanupTempFiles(paths []string) {
	for _, path := range paths {
		_ = os.Remove(path)
		_ = os.Remove(path + ".clean.png")
	}
}

func joinLines(pages []string) string {
	result := ""
	for i, page := range pages {
		if i > 0 {
			result += "\n"
		}
		result += page
	}
	return result
}

func splitIntoLines(pageText string, pageIndex int) []Line {
	var lines []Line
	lineNumber := 0
	start := 0
	for i := 0; i <= len(pageText); i++ {
		if i == len(pageText) || pageText[i] == '\n' {
			text := pageText[start:i]
			if text != "" {
				lines = append(lines, Line{
					Page:       pageIndex,
					LineNumber: lineNumber,
					Text:       text,
				})
				lineNumber++
			}
			start = i + 1
		}
	}
	return lines
}
