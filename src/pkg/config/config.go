// Package config loads and exposes the receipt pipeline's runtime
// configuration, following the same init-then-read pattern used by
// every other package in this module (see echomw.InitializeConfig).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// OCRBackend selects the OCR fallback for a PDF with no embedded text
// layer (the text layer is always tried first; images always use
// Textract).
type OCRBackend string

const (
	OCRBackendTextract  OCRBackend = "textract"
	OCRBackendTesseract OCRBackend = "tesseract"
	OCRBackendPDFText   OCRBackend = "pdf_text"
)

// Config is the closed option set named in the external interfaces
// section: every tunable the pipeline reads by name.
type Config struct {
	OCRBackend                       OCRBackend `json:"ocr_backend,omitempty"`
	TextractEnabled                  bool       `json:"textract_enabled,omitempty"`
	TextractRegion                   string     `json:"textract_region,omitempty"`
	TesseractMinConfidence           float64    `json:"tesseract_min_confidence,omitempty"`
	CategorizationReviewThreshold    float64    `json:"categorization_review_threshold,omitempty"`
	CategorizationCacheWriteThreshold float64   `json:"categorization_cache_write_threshold,omitempty"`
	CapitalizationThreshold          float64    `json:"capitalization_threshold,omitempty"`
	OCRCallTimeoutSeconds            int        `json:"ocr_call_timeout_s,omitempty"`
	LLMCallTimeoutSeconds            int        `json:"llm_call_timeout_s,omitempty"`
	ObjectsRoot                      string     `json:"objects_root,omitempty"`
	DatabaseDSN                      string     `json:"database_dsn,omitempty"`
	LLMPricePerInputToken            float64    `json:"llm_price_per_input_token,omitempty"`
	LLMPricePerOutputToken           float64    `json:"llm_price_per_output_token,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		OCRBackend:                        OCRBackendTesseract,
		TextractEnabled:                   false,
		TextractRegion:                    "ca-central-1",
		TesseractMinConfidence:            0.96,
		CategorizationReviewThreshold:     0.80,
		CategorizationCacheWriteThreshold: 0.80,
		CapitalizationThreshold:           2500.00,
		OCRCallTimeoutSeconds:             60,
		LLMCallTimeoutSeconds:             30,
		ObjectsRoot:                       "./objects",
		LLMPricePerInputToken:             0.00000015,
		LLMPricePerOutputToken:            0.0000006,
	}
}

// Cfg holds the package-level, process-wide configuration. Every
// consumer reads from here after InitializeConfig runs, mirroring
// echomw.Cfg.
var Cfg Config = DefaultValueConfig()

var packageName = "curlysbooks"

// GetPackageName returns the name used in config log lines, so every
// package's "field missing, using default" message is attributable.
func GetPackageName() string {
	return packageName
}

// InitializeConfig reads a JSON config file at path (if non-empty and
// present), merges it over the defaults with tl.ApplyDefaults, and logs
// every field that fell back to its default value.
func InitializeConfig(path string) {
	defaultConfig := DefaultValueConfig()

	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		Cfg = defaultConfig
		tl.Log(tl.Info, palette.Purple, "%s config path is %s, keeping %s", packageName, "empty", "default configuration")
		return
	}

	fileBytes, readErr := os.ReadFile(filepath.Clean(trimmedPath))
	if readErr != nil {
		Cfg = defaultConfig
		tl.Log(tl.Warning, palette.YellowBold, "%s config file %s (%s), keeping %s", packageName, "unreadable", readErr.Error(), "default configuration")
		return
	}

	var localConfig Config
	if parseErr := json.Unmarshal(fileBytes, &localConfig); parseErr != nil {
		Cfg = defaultConfig
		tl.Log(tl.Warning, palette.YellowBold, "%s config file %s (%s), keeping %s", packageName, "invalid JSON", parseErr.Error(), "default configuration")
		return
	}

	Cfg = localConfig
	tl.ApplyDefaults(&Cfg, defaultConfig, func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", packageName, tl.PrettyForStderr(defVal),
		)
	})

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", packageName, "provided", "local configuration")
	tl.LogJSON(tl.Verbose, palette.CyanDim, "configuration", Cfg)
}

// CheckIfEnvVarsPresent warns (does not fail) for each env var missing
// from the current process environment.
func CheckIfEnvVarsPresent(names ...string) {
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			tl.Log(tl.Warning, palette.YellowBold, "environment variable %s is %s", name, "not set")
		}
	}
}
