// Package report routes checklist rows between manual and automated
// verification, runs the matching engine over the automated ones, and
// exports the combined results.
package report

import (
	"strings"

	"github.com/dsotools/signcheck/internal/checklist"
	"github.com/dsotools/signcheck/internal/match"
	"github.com/dsotools/signcheck/internal/terms"
	"github.com/dsotools/signcheck/internal/textnorm"
)

// manualKeywords mark requirements about non-textual artifacts that the
// engine cannot judge: logos, certification marks, symbols, boilerplate
// blocks. Any supported language counts.
var manualKeywords = []string{
	"logo", "symbol", "icon", "mark", "graphic", "trademark", "artwork layout",
	"pictogram", "pictorial", "brandmark", "barcode", "qr code", "hologram",
	"certification", "legal text block", "sorting symbol", "recycling symbol",
	"โลโก้", "สัญลักษณ์", "เครื่องหมาย", "บาร์โค้ด",
	"ロゴ", "マーク", "商标", "标志",
}

// trademarkCues combined with reference images push a row to manual even
// when it has checkable wording.
var trademarkCues = []string{"trademark", "™", "®", "lion mark", "ce mark", "เครื่องหมายการค้า"}

// skipKeywords mark administrative rows that produce no result at all.
var skipKeywords = []string{
	"please refer", "remark only", "see template", "for reference only", "not required",
}

// ShouldSkip reports whether a row is administrative noise to drop entirely.
// Only the wording and specification cells are consulted: a remark that
// points elsewhere ("please refer to template v2") annotates a real
// requirement and must not drop it.
func ShouldSkip(row checklist.RequirementRow) bool {
	joined := textnorm.Normalize(row.Wording + " " + row.Specification)
	for _, k := range skipKeywords {
		if strings.Contains(joined, k) {
			return true
		}
	}
	return false
}

// Classify decides whether a row is verified automatically or handed to a
// human. Manual routing is deliberately eager: a wrong Manual costs one
// human glance, a wrong Verified can hide a compliance failure.
func Classify(row checklist.RequirementRow) match.Classification {
	if row.ManualHint {
		return match.ClassManual
	}

	joined := textnorm.Normalize(row.Requirement + " " + row.Specification + " " + row.Remark)
	for _, k := range manualKeywords {
		if strings.Contains(joined, textnorm.Normalize(k)) {
			return match.ClassManual
		}
	}

	// Underline verification against print artwork is too unreliable to
	// auto-fail on; route to a human instead.
	if match.ParseSpec(row.Specification).RequireUnderline {
		return match.ClassManual
	}

	if len(row.ReferenceImages) > 0 {
		if terms.IsPlaceholder(row.Wording) {
			return match.ClassManual
		}
		withWording := joined + " " + textnorm.Normalize(row.Wording)
		for _, cue := range trademarkCues {
			if strings.Contains(withWording, textnorm.Normalize(cue)) {
				return match.ClassManual
			}
		}
	}

	return match.ClassVerified
}
