// Package config holds the runtime configuration of the artwork checker:
// input/output paths, OCR behavior, matching tolerances, and logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	DefaultOCRLanguageFast = "eng"
	DefaultOCRLanguageFull = "eng+tha+chi_sim+jpn+ara"

	DefaultSizeToleranceMM = 1e-6
	DefaultMinConfidence   = 0.60
	DefaultPageCacheSize   = 16
	DefaultParallelism     = 4
)

// Config holds all configuration for one checker run.
type Config struct {
	// Input/output paths
	DocumentPath  string
	ChecklistPath string
	OutputPath    string

	// OCR configuration
	EnableOCR           bool
	OCRLanguageFast     string
	OCRLanguageFull     string
	OCROnlySuspectPages bool
	MinConfidence       float64

	// Matching configuration
	SizeToleranceMM float64
	PageCacheSize   int

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64
	Parallelism int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EnableOCR:       true,
		OCRLanguageFast: DefaultOCRLanguageFast,
		OCRLanguageFull: DefaultOCRLanguageFull,
		MinConfidence:   DefaultMinConfidence,
		SizeToleranceMM: DefaultSizeToleranceMM,
		PageCacheSize:   DefaultPageCacheSize,
		Version:         "1.0.0",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
		Parallelism:     DefaultParallelism,
	}
}

// LoadFromFlags parses command line flags and environment variables and
// returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.DocumentPath != "" {
		if expanded, err := filepath.Abs(cfg.DocumentPath); err == nil {
			cfg.DocumentPath = expanded
		}
	}
	if cfg.ChecklistPath != "" {
		if expanded, err := filepath.Abs(cfg.ChecklistPath); err == nil {
			cfg.ChecklistPath = expanded
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("SIGNCHECK")
	viper.AutomaticEnv()

	viper.SetDefault("pdf", cfg.DocumentPath)
	viper.SetDefault("checklist", cfg.ChecklistPath)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("ocr", cfg.EnableOCR)
	viper.SetDefault("ocrlangfast", cfg.OCRLanguageFast)
	viper.SetDefault("ocrlangfull", cfg.OCRLanguageFull)
	viper.SetDefault("ocrsuspectonly", cfg.OCROnlySuspectPages)
	viper.SetDefault("minconfidence", cfg.MinConfidence)
	viper.SetDefault("sizetolerance", cfg.SizeToleranceMM)
	viper.SetDefault("pagecachesize", cfg.PageCacheSize)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("parallelism", cfg.Parallelism)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("pdf", cfg.DocumentPath, "Path to the artwork PDF to check")
	pflag.String("checklist", cfg.ChecklistPath, "Path to the checklist workbook (xlsx)")
	pflag.String("out", cfg.OutputPath, "Path to write the result workbook (xlsx); empty prints a summary only")
	pflag.Bool("ocr", cfg.EnableOCR, "Enable optical recognition fallback")
	pflag.String("ocrlangfast", cfg.OCRLanguageFast, "Tesseract languages for the fast tier (plus-joined)")
	pflag.String("ocrlangfull", cfg.OCRLanguageFull, "Tesseract languages for the full tier (plus-joined)")
	pflag.Bool("ocrsuspectonly", cfg.OCROnlySuspectPages, "Recognize only suspect pages, ignoring embedded images")
	pflag.Float64("minconfidence", cfg.MinConfidence, "Minimum recognition confidence (0..1)")
	pflag.Float64("sizetolerance", cfg.SizeToleranceMM, "Font size comparison tolerance in mm")
	pflag.Int("pagecachesize", cfg.PageCacheSize, "Pages held in the per-run search cache")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("parallelism", cfg.Parallelism, "Concurrent page extractions")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	for _, name := range []string{
		"pdf", "checklist", "out", "ocr", "ocrlangfast", "ocrlangfull",
		"ocrsuspectonly", "minconfidence", "sizetolerance", "pagecachesize",
		"loglevel", "maxfilesize", "parallelism",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nsigncheck - packaging artwork compliance checker\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --pdf artwork.pdf --checklist list.xlsx --out result.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --pdf artwork.pdf --checklist list.xlsx --ocr=false\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SIGNCHECK_PDF             Artwork PDF path\n")
		fmt.Fprintf(os.Stderr, "  SIGNCHECK_CHECKLIST       Checklist workbook path\n")
		fmt.Fprintf(os.Stderr, "  SIGNCHECK_OUT             Result workbook path\n")
		fmt.Fprintf(os.Stderr, "  SIGNCHECK_OCR             Enable OCR fallback\n")
		fmt.Fprintf(os.Stderr, "  SIGNCHECK_OCRLANGFAST     Fast tier languages\n")
		fmt.Fprintf(os.Stderr, "  SIGNCHECK_OCRLANGFULL     Full tier languages\n")
		fmt.Fprintf(os.Stderr, "  SIGNCHECK_LOGLEVEL        Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.DocumentPath = viper.GetString("pdf")
	cfg.ChecklistPath = viper.GetString("checklist")
	cfg.OutputPath = viper.GetString("out")
	cfg.EnableOCR = viper.GetBool("ocr")
	cfg.OCRLanguageFast = viper.GetString("ocrlangfast")
	cfg.OCRLanguageFull = viper.GetString("ocrlangfull")
	cfg.OCROnlySuspectPages = viper.GetBool("ocrsuspectonly")
	cfg.MinConfidence = viper.GetFloat64("minconfidence")
	cfg.SizeToleranceMM = viper.GetFloat64("sizetolerance")
	cfg.PageCacheSize = viper.GetInt("pagecachesize")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Parallelism = viper.GetInt("parallelism")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DocumentPath == "" {
		return errors.New("document path cannot be empty (--pdf)")
	}
	if c.ChecklistPath == "" {
		return errors.New("checklist path cannot be empty (--checklist)")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.New("minimum confidence must be between 0 and 1")
	}
	if c.SizeToleranceMM < 0 {
		return errors.New("size tolerance cannot be negative")
	}
	if c.PageCacheSize <= 0 {
		return errors.New("page cache size must be positive")
	}
	if c.Parallelism <= 0 {
		return errors.New("parallelism must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// FastLanguages returns the fast tier language list.
func (c *Config) FastLanguages() []string {
	return splitLanguages(c.OCRLanguageFast)
}

// FullLanguages returns the full tier language list.
func (c *Config) FullLanguages() []string {
	return splitLanguages(c.OCRLanguageFull)
}

func splitLanguages(spec string) []string {
	var langs []string
	for _, part := range strings.FieldsFunc(spec, func(r rune) bool { return r == '+' || r == ',' }) {
		if part = strings.TrimSpace(part); part != "" {
			langs = append(langs, part)
		}
	}
	return langs
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Document: %s, Checklist: %s, Output: %s, OCR: %t, LogLevel: %s}",
		c.DocumentPath, c.ChecklistPath, c.OutputPath, c.EnableOCR, c.LogLevel)
}
