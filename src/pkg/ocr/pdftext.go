package ocr

import (
	"bytes"
	"os"
	"regexp"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tuumbleweed/xerr"
)

// ExtractEmbeddedPDFText implements the "PDF text extraction" provider:
// a direct read of the text already embedded in the PDF, with
// confidence fixed at 1.0 and no OCR involved. It returns an empty
// Result (not an error) when the PDF has no recoverable text layer —
// the factory treats that as "try the next strategy", not a failure.
func ExtractEmbeddedPDFText(pdfPath string) (Result, *xerr.Error) {
	file, err := os.Open(pdfPath)
	if err != nil {
		return Result{}, xerr.NewError(err, "open PDF for text extraction", map[string]any{"path": pdfPath})
	}
	defer func() { _ = file.Close() }()

	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return Result{}, xerr.NewError(err, "api.PageCountFile", map[string]any{"path": pdfPath})
	}

	var allText []string
	var lines []Line
	for page := 1; page <= pageCount; page++ {
		streams, err := api.ExtractContentRaw(file, []string{intToStr(page)})
		if err != nil || len(streams) == 0 {
			continue
		}
		pageText := extractTextFromContentStreams(streams)
		if pageText == "" {
			continue
		}
		allText = append(allText, pageText)
		lines = append(lines, splitIntoLines(pageText, page-1)...)
	}

	if len(allText) == 0 {
		return Result{}, nil
	}

	return Result{
		Text:          joinLines(allText),
		Confidence:    1.0,
		Method:        MethodPDFTextExtraction,
		PageCount:     pageCount,
		BoundingBoxes: lines,
	}, nil
}

func intToStr(n int) string {
	digits := "0123456789"
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%10]}, buf...)
		n /= 10
	}
	return string(buf)
}

// textShowRegexp matches the literal-string operands of the Tj and TJ
// text-showing operators in a decompressed PDF content stream — enough
// to recover a text-bearing receipt's words without a full layout
// engine. Array form (TJ) and simple form (Tj) are both literal-string
// based for the receipts this pipeline sees; hex-string operands are
// rare for text-layer PDFs produced by POS systems and are skipped.
var textShowRegexp = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*Tj|\[((?:\([^()\\]*(?:\\.[^()\\]*)*\)|[-0-9.]+)*)\]\s*TJ`)

var literalInArrayRegexp = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

func extractTextFromContentStreams(streams [][]byte) string {
	var buf bytes.Buffer
	for _, stream := range streams {
		matches := textShowRegexp.FindAllSubmatch(stream, -1)
		for _, m := range matches {
			if len(m[1]) > 0 {
				buf.Write(unescapePDFString(m[1]))
				buf.WriteByte(' ')
				continue
			}
			if len(m[2]) > 0 {
				for _, lit := range literalInArrayRegexp.FindAllSubmatch(m[2], -1) {
					buf.Write(unescapePDFString(lit[1]))
				}
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}

func unescapePDFString(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, raw[i])
			}
			continue
		}
		out = append(out, raw[i])
	}
	return out
}
