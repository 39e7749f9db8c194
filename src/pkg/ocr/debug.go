package ocr

import (
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
DumpDebugArtifacts saves a copy of the original file plus the extracted
OCR text into a timestamped run directory under debugRoot, for manual
inspection when an OCR result looks wrong. It is never on the critical
path of process_receipt — a failure here is logged and ignored by the
caller, not propagated as a pipeline error.
*/
func DumpDebugArtifacts(sourcePath string, debugRoot string, result Result) (runDirPath string, e *xerr.Error) {
	normalizedRoot := strings.TrimSpace(debugRoot)
	if normalizedRoot == "" {
		normalizedRoot = "./ocr-debug"
	}

	if e = ensureOutputDirectory(normalizedRoot); e != nil {
		return "", e
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	runDirPath = filepath.Join(normalizedRoot, timestamp)
	if e = ensureOutputDirectory(runDirPath); e != nil {
		return runDirPath, e
	}

	originalExt := strings.ToLower(filepath.Ext(sourcePath))
	if originalExt == "" {
		originalExt = ".bin"
	}
	originalOutPath := filepath.Join(runDirPath, "original"+originalExt)
	if e = copyOriginalImage(sourcePath, originalOutPath); e != nil {
		return runDirPath, e
	}

	ocrOutPath := filepath.Join(runDirPath, "ocr-text.txt")
	if e = saveOcrTextToFile(ocrOutPath, result.Text); e != nil {
		return runDirPath, e
	}

	boxesOutPath := filepath.Join(runDirPath, "bounding-boxes.json")
	if e = saveJSONToFile(boxesOutPath, result.BoundingBoxes); e != nil {
		return runDirPath, e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved OCR debug artifacts for '%s' into '%s' (method=%s, confidence=%.3f)",
		sourcePath, runDirPath, result.Method, result.Confidence,
	)

	return runDirPath, nil
}
