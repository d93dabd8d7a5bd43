// Package extract recovers styled text items from artwork documents. Each
// page is processed in one pass: native glyph runs from the content stream,
// underline reconstruction from vector primitives, compound glyph synthesis,
// line aggregation, and an optical-recognition fallback for pages whose
// native layer is unreliable. The output is an immutable artwork.Document
// safe to reuse across checklist runs.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/ocr"
)

const (
	// minUsableItems is the native item count below which a page is
	// considered suspect and eligible for recognition fallback.
	minUsableItems = 5
	// minReadableMM is the smallest size a native item must reach for the
	// page's native layer to count as readable at all.
	minReadableMM = 0.8
)

// Options configures an Extractor.
type Options struct {
	// EnableOCR turns the recognition fallback on.
	EnableOCR bool
	// OCROnlySuspectPages restricts recognition to pages that are suspect
	// for content reasons (sparse or risk-marked); when false, the presence
	// of embedded raster images alone also triggers recognition.
	OCROnlySuspectPages bool
	// Policy is the two-tier recognition escalation policy.
	Policy ocr.Policy
	// MaxFileSize bounds the document file size in bytes.
	MaxFileSize int64
	// Parallelism bounds concurrent page extraction; <=0 means serial.
	Parallelism int
}

// DefaultOptions returns extractor options with the stock escalation policy.
func DefaultOptions() Options {
	return Options{
		EnableOCR:   true,
		Policy:      ocr.DefaultPolicy(),
		MaxFileSize: 100 * 1024 * 1024,
		Parallelism: 4,
	}
}

// Extractor turns a document path into an ordered sequence of pages.
type Extractor struct {
	opts   Options
	engine ocr.Engine
	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil engine disables recognition even
// when Options.EnableOCR is set; extraction then proceeds native-only.
func NewExtractor(opts Options, engine ocr.Engine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if engine == nil {
		engine = ocr.Noop()
		opts.EnableOCR = false
	}
	return &Extractor{opts: opts, engine: engine, logger: logger}
}

// ExtractDocument extracts every page of the document at path. A corrupt or
// unreadable document aborts with a descriptive error and no partial pages.
func (e *Extractor) ExtractDocument(ctx context.Context, path string) (*artwork.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("document path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("document does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access document: %w", err)
	}
	if err := e.validateFile(path, info); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corrupt document %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("document %s has no pages", path)
	}

	dims, err := pageDimensions(path, numPages)
	if err != nil {
		e.logger.Warn("page dimensions unavailable, using defaults", "path", path, "error", err)
	}

	// Pages are independent; extract them concurrently and slot results by
	// index so page order never depends on scheduling.
	pages := make([]artwork.Page, numPages)
	errs := make([]error, numPages)

	sem := make(chan struct{}, e.parallelism())
	var wg sync.WaitGroup
	for i := 1; i <= numPages; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(pageNum int) {
			defer wg.Done()
			defer func() { <-sem }()
			page, err := e.extractPage(ctx, path, reader, pageNum, dims)
			if err != nil {
				errs[pageNum-1] = err
				return
			}
			pages[pageNum-1] = page
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", path, err)
		}
	}

	e.logger.Info("document extracted", "path", path, "pages", numPages)
	return &artwork.Document{Path: path, Pages: pages}, nil
}

func (e *Extractor) parallelism() int {
	if e.opts.Parallelism <= 0 {
		return 1
	}
	return e.opts.Parallelism
}

// validateFile performs basic validation before parsing begins.
func (e *Extractor) validateFile(path string, info os.FileInfo) error {
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if e.opts.MaxFileSize > 0 && info.Size() > e.opts.MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), e.opts.MaxFileSize)
	}
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("corrupt document %s: %w", path, err)
	}
	return nil
}

// extractPage builds one page: native fragments, vector underline and
// compound glyph synthesis, line aggregates, then the recognition fallback.
func (e *Extractor) extractPage(ctx context.Context, path string, reader *pdf.Reader, pageNum int, dims []pageDim) (artwork.Page, error) {
	select {
	case <-ctx.Done():
		return artwork.Page{}, ctx.Err()
	default:
	}

	p := reader.Page(pageNum)
	if p.V.IsNull() {
		return artwork.Page{}, fmt.Errorf("invalid page %d", pageNum)
	}

	page := artwork.Page{Number: pageNum}
	if len(dims) >= pageNum {
		page.WidthPt = dims[pageNum-1].widthPt
		page.HeightPt = dims[pageNum-1].heightPt
	}

	fragments := nativeFragments(p, pageNum)

	segments, rects := pagePathPrimitives(p)
	applyVectorUnderlines(fragments, segments, rects)

	synthetic := synthesizeCompounds(fragments, segments, rects, pageNum)

	lines := aggregateLines(fragments, pageNum)

	items := make([]artwork.TextItem, 0, len(fragments)+len(lines)+len(synthetic))
	items = append(items, fragments...)
	items = append(items, lines...)
	items = append(items, synthetic...)

	page.HasImages = pageHasImages(p)

	if e.shouldRecognize(items, page.HasImages) {
		recognized := e.recognizePage(ctx, path, pageNum, &page)
		items = mergeRecognized(items, recognized)
	}

	page.Items = items
	return page, nil
}

// shouldRecognize decides whether the recognition fallback runs for a page.
func (e *Extractor) shouldRecognize(items []artwork.TextItem, hasImages bool) bool {
	if !e.opts.EnableOCR {
		return false
	}

	usable := 0
	readable := false
	for i := range items {
		if strings.TrimSpace(items[i].Text) == "" {
			continue
		}
		usable++
		if items[i].SizeMM >= minReadableMM {
			readable = true
		}
	}

	suspect := usable < minUsableItems || !readable || hasRiskMarkers(items)
	if e.opts.OCROnlySuspectPages {
		return suspect
	}
	return suspect || hasImages
}

// recognizePage runs the escalation policy over the page's embedded raster
// images. Engine failures degrade to native-only extraction.
func (e *Extractor) recognizePage(ctx context.Context, path string, pageNum int, page *artwork.Page) []artwork.TextItem {
	images, err := pageImagePayloads(path, pageNum)
	if err != nil {
		e.logger.Warn("image payloads unavailable, skipping recognition", "page", pageNum, "error", err)
		return nil
	}

	var items []artwork.TextItem
	for _, img := range images {
		words, tier, err := e.opts.Policy.Recognize(ctx, e.engine, img.data)
		if err != nil {
			e.logger.Warn("recognition degraded to native layer", "page", pageNum, "error", err)
			return nil
		}
		if len(words) == 0 {
			continue
		}
		e.logger.Debug("page recognized", "page", pageNum, "tier", tier, "words", len(words))
		items = append(items, recognizedItems(words, img, pageNum, page.WidthPt, page.HeightPt)...)
	}
	return items
}
