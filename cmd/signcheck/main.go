package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dsotools/signcheck/internal/checklist"
	"github.com/dsotools/signcheck/internal/classify"
	"github.com/dsotools/signcheck/internal/config"
	"github.com/dsotools/signcheck/internal/extract"
	"github.com/dsotools/signcheck/internal/match"
	"github.com/dsotools/signcheck/internal/ocr"
	"github.com/dsotools/signcheck/internal/report"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// setupLogging builds the process logger from the configured level.
func setupLogging(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			fmt.Printf("signcheck %s (built %s)\n", version, buildTime)
			os.Exit(0)
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "signcheck: %v\n", err)
		os.Exit(2)
	}

	logger := setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		logger.Warn("interrupted, aborting", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}
}

// run drives one check: load the checklist, extract and classify the
// document, evaluate every row, and export or print the results.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	rows, err := checklist.Load(cfg.ChecklistPath, cfg.DocumentPath)
	if err != nil {
		return fmt.Errorf("load checklist: %w", err)
	}
	logger.Info("checklist loaded", "path", cfg.ChecklistPath, "rows", len(rows))

	opts := extract.DefaultOptions()
	opts.EnableOCR = cfg.EnableOCR
	opts.OCROnlySuspectPages = cfg.OCROnlySuspectPages
	opts.MaxFileSize = cfg.MaxFileSize
	opts.Parallelism = cfg.Parallelism
	opts.Policy.Fast.Languages = cfg.FastLanguages()
	opts.Policy.Full.Languages = cfg.FullLanguages()
	opts.Policy.MinConfidence = cfg.MinConfidence

	var engine ocr.Engine
	if cfg.EnableOCR {
		engine = ocr.NewTesseractEngine()
	}

	extractor := extract.NewExtractor(opts, engine, logger)
	doc, err := extractor.ExtractDocument(ctx, cfg.DocumentPath)
	if err != nil {
		return fmt.Errorf("extract document: %w", err)
	}

	classify.ClassifyDocument(doc)
	artworkPages := 0
	for i := range doc.Pages {
		if doc.Pages[i].IsArtwork {
			artworkPages++
		}
	}
	logger.Info("document classified", "pages", len(doc.Pages), "artwork_pages", artworkPages)

	for _, info := range classify.ProductInfoByPage(doc) {
		logger.Debug("product info",
			"page", info.Page, "part_no", info.PartNo, "rev", info.Rev)
	}

	policy := match.DefaultPolicy()
	policy.SizeToleranceMM = cfg.SizeToleranceMM
	policy.CacheSize = cfg.PageCacheSize

	runner := report.NewRunner(match.NewEngine(policy), logger)
	records := runner.Check(doc, rows)

	printSummary(records)

	if cfg.OutputPath != "" {
		if err := report.Export(cfg.OutputPath, records); err != nil {
			return fmt.Errorf("export results: %w", err)
		}
		logger.Info("results exported", "path", cfg.OutputPath)
	}
	return nil
}

func printSummary(records []report.ResultRecord) {
	pass, deviation, notFound, manual := 0, 0, 0, 0
	for _, rec := range records {
		switch {
		case rec.Result.Classification == match.ClassManual:
			manual++
		case rec.Result.Matched:
			pass++
		case rec.Result.Found:
			deviation++
		default:
			notFound++
		}
	}

	fmt.Printf("checked %d terms: %d pass, %d style/size deviations, %d not found, %d manual\n",
		len(records), pass, deviation, notFound, manual)
	for _, rec := range records {
		status := "Not found"
		switch {
		case rec.Result.Classification == match.ClassManual:
			status = "Manual"
		case rec.Result.Matched:
			status = "Pass"
		case rec.Result.Found:
			status = "Deviation"
		}
		fmt.Printf("  [%-9s] %s: %s\n", status, rec.Requirement, rec.Term)
		for _, note := range rec.Result.Notes {
			fmt.Printf("              %s\n", note)
		}
	}
}
