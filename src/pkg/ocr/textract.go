package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// TextractProvider wraps AWS Textract's synchronous DetectDocumentText
// call. It accepts rasters (after HEIC/HEIF transcoding to PNG) and
// single-page PDFs, and is the required provider for image input.
type TextractProvider struct {
	region string
	client *textract.Client
}

func NewTextractProvider(region string) *TextractProvider {
	return &TextractProvider{region: region}
}

func (p *TextractProvider) ensureClient(ctx context.Context) (*textract.Client, *xerr.Error) {
	if p.client != nil {
		return p.client, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(p.region))
	if err != nil {
		return nil, xerr.NewError(err, "awsconfig.LoadDefaultConfig", map[string]any{"region": p.region})
	}
	p.client = textract.NewFromConfig(cfg)
	return p.client, nil
}

var heicLikeExtensions = map[string]bool{".heic": true, ".heif": true}

func (p *TextractProvider) ExtractText(ctx context.Context, path string) (Result, *xerr.Error) {
	tl.Log(tl.Info1, palette.Cyan, "Running Textract on '%s'", path)

	client, e := p.ensureClient(ctx)
	if e != nil {
		return Result{}, e
	}

	imageBytes, e := loadAndNormalizeForTextract(path)
	if e != nil {
		return Result{}, e
	}

	resp, err := client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: imageBytes},
	})
	if err != nil {
		return Result{}, xerr.NewError(err, "textract.DetectDocumentText", map[string]any{"path": path})
	}

	var lines []Line
	var textLines []string
	var confidenceSum float64
	var lineCount int

	for _, block := range resp.Blocks {
		if block.BlockType != types.BlockTypeLine {
			continue
		}
		text := aws.ToString(block.Text)
		confidence := float64(aws.ToFloat32(block.Confidence)) / 100.0
		textLines = append(textLines, text)
		confidenceSum += confidence
		lineCount++

		lines = append(lines, textractLineToLine(block, text, lineCount-1))
	}

	if lineCount == 0 {
		return Result{}, xerr.NewError(nil, "textract returned no text lines", map[string]any{"path": path})
	}

	result := Result{
		Text:          strings.Join(textLines, "\n"),
		Confidence:    confidenceSum / float64(lineCount),
		Method:        MethodTextract,
		PageCount:     1,
		BoundingBoxes: lines,
	}

	tl.Log(tl.Info1, palette.Green, "Textract finished for '%s': confidence=%.3f lines=%d", path, result.Confidence, lineCount)
	return result, nil
}

func textractLineToLine(block types.Block, text string, lineNumber int) Line {
	line := Line{Page: 0, LineNumber: lineNumber, Text: text}
	if block.Geometry != nil && block.Geometry.BoundingBox != nil {
		box := block.Geometry.BoundingBox
		line.BoundingBox.Left = float64(aws.ToFloat32(box.Left))
		line.BoundingBox.Top = float64(aws.ToFloat32(box.Top))
		line.BoundingBox.Width = float64(aws.ToFloat32(box.Width))
		line.BoundingBox.Height = float64(aws.ToFloat32(box.Height))
	}
	return line
}

// loadAndNormalizeForTextract transcodes HEIC/HEIF to PNG before
// dispatch, matching Textract's accepted input formats, and otherwise
// passes the file through unchanged.
func loadAndNormalizeForTextract(path string) ([]byte, *xerr.Error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !heicLikeExtensions[ext] {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, xerr.NewError(err, "os.ReadFile", map[string]any{"path": path})
		}
		return raw, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, xerr.NewError(err, "imaging.Open (HEIC/HEIF transcode)", map[string]any{"path": path})
	}
	var buf bytes.Buffer
	if err := encodePNG(&buf, img); err != nil {
		return nil, xerr.NewError(err, "png.Encode (HEIC/HEIF transcode)", map[string]any{"path": path})
	}
	return buf.Bytes(), nil
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}
