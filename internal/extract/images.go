package extract

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	// Registered decoders for embedded raster formats.
	_ "image/jpeg"
	_ "image/png"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pageHasImages reports whether a page carries raster XObjects. Native text
// may be flattened into those pixels, which makes the page a recognition
// candidate.
func pageHasImages(p pdf.Page) (has bool) {
	defer func() {
		if recover() != nil {
			has = false
		}
	}()

	resources := p.V.Key("Resources")
	if resources.IsNull() {
		return false
	}
	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return false
	}

	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}
		if obj.Key("Subtype").Name() == "Image" {
			return true
		}
	}
	return false
}

// imagePayload is one embedded raster decoded far enough for recognition.
type imagePayload struct {
	data     []byte
	widthPx  int
	heightPx int
}

// pageImagePayloads extracts the encoded raster images embedded in one page.
func pageImagePayloads(path string, pageNum int) ([]imagePayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("read document context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("resolve page count: %w", err)
	}

	images, err := pdfcpu.ExtractPageImages(ctx, pageNum, false)
	if err != nil {
		return nil, fmt.Errorf("extract page %d images: %w", pageNum, err)
	}

	payloads := make([]imagePayload, 0, len(images))
	for _, img := range images {
		data, err := io.ReadAll(img)
		if err != nil || len(data) == 0 {
			continue
		}
		payload := imagePayload{data: data}
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			payload.widthPx = cfg.Width
			payload.heightPx = cfg.Height
		}
		if payload.widthPx == 0 || payload.heightPx == 0 {
			continue
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// pageDim carries a page's media box size in points.
type pageDim struct {
	widthPt  float64
	heightPt float64
}

// pageDimensions reads every page's dimensions up front so pixel coordinates
// from recognition can be mapped back into page space.
func pageDimensions(path string, numPages int) ([]pageDim, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return fallbackDims(numPages), err
	}
	out := make([]pageDim, 0, len(dims))
	for _, d := range dims {
		out = append(out, pageDim{widthPt: d.Width, heightPt: d.Height})
	}
	if len(out) < numPages {
		return fallbackDims(numPages), fmt.Errorf("expected %d page dims, got %d", numPages, len(out))
	}
	return out, nil
}

// fallbackDims assumes A4 when dimensions cannot be resolved.
func fallbackDims(numPages int) []pageDim {
	dims := make([]pageDim, numPages)
	for i := range dims {
		dims[i] = pageDim{widthPt: 595.28, heightPt: 841.89}
	}
	return dims
}
