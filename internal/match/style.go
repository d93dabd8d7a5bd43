package match

import (
	"fmt"
	"strings"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/textnorm"
)

// validateStyles checks the best variant's matched items against the
// specification and returns the failure notes. Size bookkeeping and the
// size-confirmation note land on res directly; they do not fail the term.
func (e *Engine) validateStyles(doc *artwork.Document, spec StyleSpec, hits []hit, res *Result) []string {
	res.MaxSizeMM, res.HasSize = maxSize(hits)

	if spec.Empty() {
		return nil
	}

	var failures []string

	if spec.Bold && !anyBold(hits) && !e.salvageBold(doc, hits) {
		failures = append(failures, "expected bold, matched text is regular weight")
	}

	if spec.RequireUnderline && !anyUnderlined(hits) && !salvageUnderline(doc, hits) {
		failures = append(failures, "expected underline, none found")
	}
	if spec.ForbidUnderline && anyUnderlined(hits) {
		failures = append(failures, "underline present but not allowed")
	}

	if spec.AllCaps {
		for _, h := range hits {
			letters := textnorm.LettersOnly(h.item.Text)
			if letters == "" {
				continue
			}
			if !textnorm.IsAllCaps(h.item.Text) {
				failures = append(failures, fmt.Sprintf("expected all caps, found %q", h.item.Text))
				break
			}
		}
	}

	if spec.HasMinSize {
		switch {
		case !res.HasSize:
			failures = append(failures, "font size not measurable")
		case res.MaxSizeMM+e.policy.SizeToleranceMM < spec.MinSizeMM:
			failures = append(failures, fmt.Sprintf(
				"font size %.2fmm < required %.2fmm", res.MaxSizeMM, spec.MinSizeMM))
		default:
			res.Notes = appendDeduped(res.Notes, fmt.Sprintf(
				"font size %.2fmm meets required %.2fmm", res.MaxSizeMM, spec.MinSizeMM))
		}
	}

	return failures
}

// salvageBold retries a failed bold check on the matched items' pages:
// a textually overlapping item that is bold, or a line-level all-caps item
// at adequate size, counts as the same text rendered with the expected
// emphasis by a different run.
func (e *Engine) salvageBold(doc *artwork.Document, hits []hit) bool {
	for _, h := range hits {
		page := findPage(doc, h.page)
		if page == nil {
			continue
		}
		target := textnorm.Normalize(h.item.Text)
		for i := range page.Items {
			other := &page.Items[i]
			if other == h.item || !textOverlaps(target, textnorm.Normalize(other.Text)) {
				continue
			}
			if other.Bold.True() {
				return true
			}
			if other.Level == artwork.LevelLine && other.SizeMM >= e.policy.AdequateCapsMM &&
				textnorm.IsAllCaps(other.Text) {
				return true
			}
		}
	}
	return false
}

// salvageUnderline retries a failed underline check against textually
// overlapping items on the same pages.
func salvageUnderline(doc *artwork.Document, hits []hit) bool {
	for _, h := range hits {
		page := findPage(doc, h.page)
		if page == nil {
			continue
		}
		target := textnorm.Normalize(h.item.Text)
		for i := range page.Items {
			other := &page.Items[i]
			if other == h.item {
				continue
			}
			if other.Underline.True() && textOverlaps(target, textnorm.Normalize(other.Text)) {
				return true
			}
		}
	}
	return false
}

// textOverlaps reports whether either normalized string contains the other.
func textOverlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func findPage(doc *artwork.Document, number int) *artwork.Page {
	for i := range doc.Pages {
		if doc.Pages[i].Number == number {
			return &doc.Pages[i]
		}
	}
	return nil
}

func anyBold(hits []hit) bool {
	for _, h := range hits {
		if h.item.Bold.True() {
			return true
		}
	}
	return false
}

// maxSize returns the largest measurable size among the matched items.
func maxSize(hits []hit) (float64, bool) {
	max := 0.0
	found := false
	for _, h := range hits {
		if h.item.SizeMM > 0 {
			found = true
			if h.item.SizeMM > max {
				max = h.item.SizeMM
			}
		}
	}
	return max, found
}
