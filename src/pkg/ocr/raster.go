package ocr

import (
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tuumbleweed/xerr"
)

// rasterizePDFPages recovers one raster image per PDF page for the
// Tesseract strategy. Scanned receipts arriving as PDF are, in
// practice, one embedded raster per page wrapped in a minimal PDF
// container, so extracting the embedded images is equivalent to
// rendering the page for OCR purposes without needing a full PDF
// rendering engine. dpi is accepted for interface symmetry with a true
// renderer; pdfcpu's image extraction returns the image at its
// embedded resolution.
func rasterizePDFPages(pdfPath string, dpi int) ([]string, *xerr.Error) {
	outDir, err := os.MkdirTemp("", "ocr-raster-*")
	if err != nil {
		return nil, xerr.NewError(err, "os.MkdirTemp", map[string]any{"path": pdfPath})
	}

	if err := api.ExtractImagesFile(pdfPath, outDir, nil, nil); err != nil {
		return nil, xerr.NewError(err, "api.ExtractImagesFile", map[string]any{"path": pdfPath})
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, xerr.NewError(err, "os.ReadDir", map[string]any{"path": outDir})
	}

	var pages []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pages = append(pages, filepath.Join(outDir, entry.Name()))
	}

	if len(pages) == 0 {
		return nil, xerr.NewError(nil, "no embedded page images found", map[string]any{"path": pdfPath})
	}

	return pages, nil
}
