package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/config"
	"curlysbooks/src/pkg/llm"
	"curlysbooks/src/pkg/receipt"
	"curlysbooks/src/pkg/util"
)

/*
main is a standalone debugging tool for Stage 1 (the item recognizer's
LLM call) in isolation from the rest of the pipeline: it reads one line
description per input line and writes the raw classifications
llm.CategorizeLines returns, as JSON, to stage1-classifications.json
beside the lines file, without vendor identification, parsing,
Stage 2 account mapping, or persistence. Useful for iterating on prompt
and category-vocabulary changes without running a whole receipt through
OCR first.
*/
func main() {
	config.CheckIfEnvVarsPresent("OPENAI_API_KEY")

	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	linesPath := flag.String("lines", "", "Path to a text file with one line description per line.")

	flag.Parse()
	util.RequiredFlag(linesPath, "lines")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	tl.Log(
		tl.Notice, palette.BlueBold, "%s entrypoint. Config path: '%s'",
		"Running Stage 1 recognizer in isolation", *configPath,
	)

	lineDescriptions, e := readLines(*linesPath)
	e.QuitIf("error")

	tl.Log(
		tl.Info1, palette.Cyan, "Loaded '%d' line descriptions from '%s'",
		len(lineDescriptions), *linesPath,
	)

	analysis, analysisErr := llm.CategorizeLines(lineDescriptions, receipt.Categories)
	if analysisErr != nil {
		analysisErr.QuitIf("error")
	}

	jsonBytes, marshalErr := json.MarshalIndent(analysis, "", "  ")
	if marshalErr != nil {
		tl.Log(tl.Error, palette.RedBold, "marshal classification output: %v", marshalErr)
		os.Exit(1)
	}

	outputPath := filepath.Join(filepath.Dir(*linesPath), "stage1-classifications.json")
	if writeErr := os.WriteFile(outputPath, jsonBytes, 0o644); writeErr != nil {
		tl.Log(tl.Error, palette.RedBold, "write classification output: %v", writeErr)
		os.Exit(1)
	}

	tl.LogJSON(tl.Verbose, palette.CyanDim, "ReceiptAnalysis", analysis)
	tl.Log(
		tl.Notice, palette.GreenBold, "%s to '%s'",
		"Saved Stage 1 classifications", outputPath,
	)
}

func readLines(path string) (lines []string, e *xerr.Error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerr.NewError(err, "open lines file", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, xerr.NewError(err, "scan lines file", path)
	}
	if len(lines) == 0 {
		return nil, xerr.NewError(fmt.Errorf("no non-blank lines found"), "lines file is empty", path)
	}
	return lines, nil
}
