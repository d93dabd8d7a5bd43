// Package ocr provides optical recognition for artwork pages whose native
// text layer is unreliable or flattened into raster images. Recognition runs
// behind an Engine interface so the extractor can degrade to native-only
// extraction when no engine is available.
//
// The default backend wraps the Tesseract engine via gosseract and requires
// Tesseract to be installed on the system.
package ocr

import (
	"context"

	"github.com/dsotools/signcheck/internal/geom"
)

// Input is a single encoded image submitted for recognition.
type Input struct {
	// Image is the encoded payload (PNG or JPEG).
	Image []byte
	// Languages lists Tesseract language codes (e.g. "eng", "tha") tried
	// together for this input.
	Languages []string
	// DPI is the effective dots-per-inch hint; zero means unknown.
	DPI int
}

// Word is a single recognized token. Bounds are in pixel coordinates with
// the origin in the upper-left corner of the input image.
type Word struct {
	Text       string
	Bounds     geom.BBox
	Confidence float64 // [0, 1]
}

// Line groups words sharing a visual baseline.
type Line struct {
	Text       string
	Bounds     geom.BBox
	Words      []Word
	Confidence float64
}

// Result captures recognition output for one input image.
type Result struct {
	PlainText string
	Words     []Word
}

// Engine is the recognition provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// Noop returns an engine that recognizes nothing. It stands in when optical
// recognition is disabled or unavailable.
func Noop() Engine { return noopEngine{} }

type noopEngine struct{}

func (noopEngine) Name() string { return "noop" }

func (noopEngine) Recognize(_ context.Context, _ Input) (Result, error) {
	return Result{}, nil
}
