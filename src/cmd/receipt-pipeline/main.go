package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"gorm.io/gorm"

	"curlysbooks/src/pkg/cache"
	"curlysbooks/src/pkg/config"
	"curlysbooks/src/pkg/ocr"
	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/pipeline"
	"curlysbooks/src/pkg/receipt"
	"curlysbooks/src/pkg/recognizer"
	"curlysbooks/src/pkg/repository"
	"curlysbooks/src/pkg/util"
	"curlysbooks/src/pkg/vendor"
)

/*
main runs the full receipt pipeline (C1 through C7) over one file or a
directory of files.

-input can be:
  - a single receipt file (.jpg/.jpeg/.png/.pdf)
  - a directory containing receipt files

For each file, process_receipt is called once: OCR, vendor
identification, vendor parsing, two-stage categorization, and
persistence.
*/
func main() {
	config.CheckIfEnvVarsPresent("OPENAI_API_KEY")

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	inputPath := flag.String("input", "", "Path to a receipt file OR a directory of receipt files (.jpg/.jpeg/.png/.pdf).")
	entityFlag := flag.String("entity", "corp", "Entity namespace the receipts belong to: corp or soleprop.")

	flag.Parse()
	util.RequiredFlag(inputPath, "input")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	entity := receipt.Entity(strings.ToLower(strings.TrimSpace(*entityFlag)))
	if !entity.Valid() {
		err := fmt.Errorf("unrecognized entity %q", *entityFlag)
		e := xerr.NewError(err, "invalid -entity flag", *entityFlag)
		e.QuitIf("error")
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s entrypoint. Config path: '%s'",
		"Running full receipt pipeline", *configPath,
	)

	db, e := config.OpenDatabase()
	e.QuitIf("error")
	if err := db.AutoMigrate(&receipt.Receipt{}, &receipt.ReceiptLine{}, &receipt.ProductMapping{}, &receipt.ReviewActivity{}); err != nil {
		e = xerr.NewError(err, "auto-migrate receipt tables", nil)
		e.QuitIf("error")
	}

	pipe := buildPipeline(db)

	filesToProcess, e := resolveFilesToProcess(*inputPath)
	e.QuitIf("error")

	if len(filesToProcess) == 0 {
		tl.Log(
			tl.Warning, palette.PurpleBold, "No .jpg/.jpeg/.png/.pdf files found at: '%s'",
			*inputPath,
		)
		os.Exit(0)
	}

	if len(filesToProcess) > 1 {
		tl.Log(
			tl.Notice1, palette.GreenBold, "Found '%d' receipts to process",
			len(filesToProcess),
		)
	}

	processedCount := 0
	reviewCount := 0
	skippedCount := 0

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for _, filePath := range filesToProcess {
		tl.Log(tl.Notice, palette.BlueBold, "%s '%s'", "Processing receipt", filePath)

		result, e := pipe.ProcessReceipt(ctx, filePath, entity, "", receipt.SourceManual)
		if e != nil {
			skippedCount++
			tl.Log(
				tl.Error, palette.RedBold, "Failed processing '%s': '%s'",
				filePath, e,
			)
			continue
		}

		processedCount++
		if result.RequiresReview {
			reviewCount++
		}
		tl.Log(
			tl.Notice1, palette.GreenBold, "Receipt '%s' saved with status '%s', %d lines, %d warnings",
			result.ReceiptID, result.Status, result.LineCount, len(result.Warnings),
		)
	}

	tl.Log(
		tl.Notice, palette.GreenBold, "Done. Processed: '%d', needs review: '%d', skipped: '%d'",
		processedCount, reviewCount, skippedCount,
	)
}

// buildPipeline wires the long-lived collaborators the way Pipeline.New
// needs them: one Cache and Repository sharing the database connection,
// one Recognizer over that Cache, the vendor and parser registries, and
// the OCR factory. Every collaborator is safe to reuse across receipts.
func buildPipeline(db *gorm.DB) *pipeline.Pipeline {
	c := cache.New(db)
	repo := repository.New(db, c)
	rec := recognizer.New(c, config.Cfg.LLMPricePerInputToken, config.Cfg.LLMPricePerOutputToken)
	vendors := vendor.DefaultRegistry()
	parsers := parser.NewRegistry()
	ocrFactory := ocr.NewFactory()

	return pipeline.New(ocrFactory, vendors, parsers, rec, repo)
}

func resolveFilesToProcess(inputPath string) (files []string, e *xerr.Error) {
	trimmed := strings.TrimSpace(inputPath)
	if trimmed == "" {
		err := fmt.Errorf("input path is empty")
		e = xerr.NewError(err, "missing -input input", inputPath)
		return
	}

	info, statErr := os.Stat(trimmed)
	if statErr != nil {
		e = xerr.NewError(statErr, "stat -input path", trimmed)
		return
	}

	if info.IsDir() {
		return listFilesInDir(trimmed)
	}

	ext := strings.ToLower(filepath.Ext(trimmed))
	if !isAllowedReceiptExt(ext) {
		err := fmt.Errorf("unsupported file extension: %s", ext)
		e = xerr.NewError(err, "input file is not .jpg/.jpeg/.png/.pdf", trimmed)
		return
	}

	return []string{trimmed}, nil
}

func listFilesInDir(dirPath string) (files []string, e *xerr.Error) {
	entries, readErr := os.ReadDir(dirPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read directory", dirPath)
		return
	}

	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(ent.Name()))
		if !isAllowedReceiptExt(ext) {
			continue
		}

		files = append(files, filepath.Join(dirPath, ent.Name()))
	}

	sort.Strings(files)
	return
}

func isAllowedReceiptExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".pdf":
		return true
	default:
		return false
	}
}
