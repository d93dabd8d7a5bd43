package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/geom"
)

// boldKeywords and friends drive the name-based style heuristics. Font
// weight flags are not exposed by the text layer, so the font name carries
// the signal, same as the program's original behavior.
var (
	boldKeywords      = []string{"bold", "black", "heavy", "semibold", "demibold", "extrabold", "ultra"}
	italicKeywords    = []string{"italic", "oblique"}
	underlineKeywords = []string{"underline"}
)

func fontNameHas(font string, keywords []string) bool {
	lower := strings.ToLower(font)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// wordGapFactor times the font size is the horizontal gap that splits two
// glyph runs into separate fragments.
const wordGapFactor = 0.30

// nativeFragments recovers styled fragment items from the page's text layer.
// Malformed content streams are recovered from per page, yielding whatever
// fragments were built up to that point.
func nativeFragments(p pdf.Page, pageNum int) (items []artwork.TextItem) {
	defer func() {
		if recover() != nil {
			// Malformed pages can panic deep inside content parsing; keep
			// the fragments collected so far and move on.
			items = append([]artwork.TextItem(nil), items...)
		}
	}()

	content := p.Content()
	if len(content.Text) == 0 {
		return nil
	}

	glyphs := make([]pdf.Text, len(content.Text))
	copy(glyphs, content.Text)
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y // top of page first
		}
		return glyphs[i].X < glyphs[j].X
	})

	var (
		run   []pdf.Text
		flush = func() {
			if item, ok := buildFragment(run, pageNum); ok {
				items = append(items, item)
			}
			run = run[:0]
		}
	)

	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		if len(run) > 0 && !continuesRun(run[len(run)-1], g) {
			flush()
		}
		run = append(run, g)
	}
	flush()

	return items
}

// continuesRun reports whether glyph g extends the current fragment run.
func continuesRun(prev, g pdf.Text) bool {
	if g.Font != prev.Font || absf(g.FontSize-prev.FontSize) > 0.1 {
		return false
	}
	if absf(g.Y-prev.Y) > 0.5 {
		return false
	}
	gap := g.X - (prev.X + prev.W)
	return gap <= wordGapFactor*prev.FontSize+0.5
}

func buildFragment(run []pdf.Text, pageNum int) (artwork.TextItem, bool) {
	if len(run) == 0 {
		return artwork.TextItem{}, false
	}

	var b strings.Builder
	for _, g := range run {
		b.WriteString(g.S)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return artwork.TextItem{}, false
	}

	first, last := run[0], run[len(run)-1]
	size := first.FontSize

	return artwork.TextItem{
		Text:      text,
		Source:    artwork.SourceNative,
		Bold:      artwork.TriOf(fontNameHas(first.Font, boldKeywords)),
		Italic:    artwork.TriOf(fontNameHas(first.Font, italicKeywords)),
		Underline: artwork.TriOf(fontNameHas(first.Font, underlineKeywords)),
		SizeMM:    artwork.PtToMM(size),
		Level:     artwork.LevelFragment,
		Page:      pageNum,
		// BBox.Y is the baseline; Height spans the nominal glyph box.
		BBox: geom.BBox{
			X:      first.X,
			Y:      first.Y,
			Width:  last.X + last.W - first.X,
			Height: size,
		},
	}, true
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
