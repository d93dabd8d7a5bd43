// Package match searches classified artwork pages for term variants and
// validates style and size constraints, producing an auditable verdict per
// term. All heuristic knobs live in Policy so there is exactly one matching
// pipeline, configured rather than forked.
package match

// Policy carries the named parameters of the matching pipeline.
type Policy struct {
	// StopWords are administrative tokens excluded from ordered-token
	// matching.
	StopWords map[string]bool
	// MinTokenLen is the minimum length of a significant token.
	MinTokenLen int
	// EditSimilarityThreshold gates fuzzy matching of short or symbol-heavy
	// variants against recognized items.
	EditSimilarityThreshold float64
	// ShortVariantLen is the variant length at or below which fuzzy matching
	// is considered.
	ShortVariantLen int
	// SizeToleranceMM absorbs floating rounding in size comparisons. It is
	// not a printing tolerance.
	SizeToleranceMM float64
	// AdequateCapsMM is the size a line-level all-caps item must reach to
	// salvage a failed bold check.
	AdequateCapsMM float64
	// UnderlineBonus is the score bonus for a variant whose matched set
	// already satisfies an explicit underline requirement.
	UnderlineBonus int
	// CacheSize bounds the per-run page search cache.
	CacheSize int
}

// DefaultPolicy returns the stock matching policy.
func DefaultPolicy() Policy {
	return Policy{
		StopWords: map[string]bool{
			"the": true, "and": true, "for": true, "with": true,
			"statement": true, "text": true, "wording": true,
			"section": true, "panel": true,
		},
		MinTokenLen:             3,
		EditSimilarityThreshold: 0.85,
		ShortVariantLen:         6,
		SizeToleranceMM:         1e-6,
		AdequateCapsMM:          1.6,
		UnderlineBonus:          1000,
		CacheSize:               16,
	}
}
