package ocr

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dsotools/signcheck/internal/geom"
)

// Tier is one recognition attempt configuration. Later tiers are broader and
// slower and are used only when earlier tiers are insufficient.
type Tier struct {
	Name      string
	Languages []string
	DPI       int
	// Scales lists the image preprocessing variants tried for this tier,
	// as multipliers of the source resolution.
	Scales []float64
}

// Policy bounds the escalation behavior: a fast tier first, a full tier only
// when the fast result is sparse or the anchor glyph is missing.
type Policy struct {
	Fast Tier
	Full Tier

	// MinConfidence drops recognized words below this value, except words on
	// the allow list.
	MinConfidence float64
	// AllowGlyphs are high-value tokens kept even at low confidence.
	AllowGlyphs map[string]bool
	// AnchorGlyph triggers escalation when absent from the joined fast-tier
	// text.
	AnchorGlyph string
	// SparseThreshold triggers escalation when the fast tier yields fewer
	// words than this.
	SparseThreshold int
}

// DefaultPolicy returns the stock two-tier policy: a narrow Latin fast pass
// and a broad multi-script full pass.
func DefaultPolicy() Policy {
	return Policy{
		Fast: Tier{
			Name:      "fast",
			Languages: []string{"eng"},
			DPI:       150,
			Scales:    []float64{1.0, 1.5},
		},
		Full: Tier{
			Name:      "full",
			Languages: []string{"eng", "tha", "chi_sim", "jpn", "ara"},
			DPI:       300,
			Scales:    []float64{1.0, 1.5, 2.0, 3.0},
		},
		MinConfidence:   0.60,
		AllowGlyphs:     map[string]bool{"+": true, "3+": true, "ce": true},
		AnchorGlyph:     "+",
		SparseThreshold: 4,
	}
}

// Recognize runs the two-tier escalation over one page image and returns the
// recognized words of the best attempt together with the name of the tier
// that produced them.
func (p Policy) Recognize(ctx context.Context, engine Engine, image []byte) ([]Word, string, error) {
	if engine == nil {
		engine = Noop()
	}

	fast, err := p.runTier(ctx, engine, p.Fast, image)
	if err != nil {
		return nil, "", err
	}
	if !p.needsEscalation(fast) {
		return fast, p.Fast.Name, nil
	}

	full, err := p.runTier(ctx, engine, p.Full, image)
	if err != nil {
		return nil, "", err
	}
	// The broad tier can still lose to the fast one on clean Latin text.
	if len(full) < len(fast) {
		return fast, p.Fast.Name, nil
	}
	return full, p.Full.Name, nil
}

func (p Policy) needsEscalation(words []Word) bool {
	if len(words) < p.SparseThreshold {
		return true
	}
	if p.AnchorGlyph == "" {
		return false
	}
	var joined strings.Builder
	for _, w := range words {
		joined.WriteString(w.Text)
	}
	return !strings.Contains(joined.String(), p.AnchorGlyph)
}

// runTier tries every preprocessing variant of a tier and keeps the attempt
// with the most confidence-filtered words.
func (p Policy) runTier(ctx context.Context, engine Engine, tier Tier, image []byte) ([]Word, error) {
	var best []Word

	scales := tier.Scales
	if len(scales) == 0 {
		scales = []float64{1.0}
	}

	for _, scale := range scales {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		variant, err := rescaleImage(image, scale)
		if err != nil {
			return nil, fmt.Errorf("prepare %s variant x%.1f: %w", tier.Name, scale, err)
		}

		res, err := engine.Recognize(ctx, Input{
			Image:     variant,
			Languages: tier.Languages,
			DPI:       int(float64(tier.DPI) * scale),
		})
		if err != nil {
			return nil, fmt.Errorf("%s tier x%.1f: %w", tier.Name, scale, err)
		}

		words := p.filterWords(res.Words, scale)
		if len(words) > len(best) {
			best = words
		}
	}

	return best, nil
}

// filterWords drops low-confidence words (allow-listed glyphs excepted) and
// maps bounds back to the unscaled image space.
func (p Policy) filterWords(words []Word, scale float64) []Word {
	kept := make([]Word, 0, len(words))
	for _, w := range words {
		if w.Confidence < p.MinConfidence && !p.AllowGlyphs[strings.ToLower(w.Text)] {
			continue
		}
		if scale != 1.0 && scale > 0 {
			w.Bounds = geom.BBox{
				X:      w.Bounds.X / scale,
				Y:      w.Bounds.Y / scale,
				Width:  w.Bounds.Width / scale,
				Height: w.Bounds.Height / scale,
			}
		}
		kept = append(kept, w)
	}
	return kept
}

// GroupLines clusters recognized words into visual lines by vertical-center
// proximity, ordering each line's words left to right.
func GroupLines(words []Word) []Line {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		ci := sorted[i].Bounds.Center()
		cj := sorted[j].Bounds.Center()
		if ci.Y != cj.Y {
			return ci.Y < cj.Y
		}
		return ci.X < cj.X
	})

	var lines []Line
	var current []Word
	for _, w := range sorted {
		if len(current) == 0 {
			current = []Word{w}
			continue
		}
		last := current[len(current)-1]
		tol := maxf(last.Bounds.Height, w.Bounds.Height) * 0.6
		if absf(w.Bounds.Center().Y-last.Bounds.Center().Y) <= tol {
			current = append(current, w)
			continue
		}
		lines = append(lines, buildLine(current))
		current = []Word{w}
	}
	lines = append(lines, buildLine(current))
	return lines
}

func buildLine(words []Word) Line {
	sort.Slice(words, func(i, j int) bool { return words[i].Bounds.X < words[j].Bounds.X })

	texts := make([]string, 0, len(words))
	bounds := words[0].Bounds
	var confSum float64
	for _, w := range words {
		texts = append(texts, w.Text)
		bounds = bounds.Union(w.Bounds)
		confSum += w.Confidence
	}

	return Line{
		Text:       strings.Join(texts, " "),
		Bounds:     bounds,
		Words:      words,
		Confidence: confSum / float64(len(words)),
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
