package match

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/terms"
	"github.com/dsotools/signcheck/internal/textnorm"
)

// Classification is the routing decision for a checklist row.
type Classification string

const (
	// ClassVerified rows went through automated matching.
	ClassVerified Classification = "Verified"
	// ClassManual rows need a human; matching is skipped entirely.
	ClassManual Classification = "Manual"
)

// Result is the verdict for one term against a document.
type Result struct {
	Found          bool
	Matched        bool
	Pages          []int
	MaxSizeMM      float64
	HasSize        bool
	Notes          []string
	Classification Classification
}

// Engine matches term variants against an immutable set of artwork pages.
// An Engine is safe for concurrent use and may be shared across documents;
// cached search results are keyed by document path and page.
type Engine struct {
	policy Policy
	cache  *pageCache
}

// NewEngine creates a matching engine with the given policy.
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy, cache: newPageCache(policy.CacheSize)}
}

// hit is one matched item on one page.
type hit struct {
	page int
	item *artwork.TextItem
}

// Evaluate matches a term's variants against the document's artwork pages
// and validates the specification. Multiple variants are scored by hit
// count with a bonus for an already-satisfied underline requirement; the
// best variant's matched set drives style validation, while Pages is the
// union across all variants.
func (e *Engine) Evaluate(doc *artwork.Document, variants []terms.Variant, spec StyleSpec) Result {
	res := Result{Classification: ClassVerified}
	if len(variants) == 0 {
		res.Notes = append(res.Notes, "no checkable wording")
		return res
	}

	pageSet := map[int]bool{}
	var bestHits []hit
	bestScore := -1

	for _, v := range variants {
		hits := e.searchVariant(doc, v.Text)
		if len(hits) == 0 {
			continue
		}
		res.Found = true
		for _, h := range hits {
			pageSet[h.page] = true
		}

		score := len(hits)
		if spec.RequireUnderline && anyUnderlined(hits) {
			score += e.policy.UnderlineBonus
		}
		if spec.ForbidUnderline && noneUnderlined(hits) {
			score += e.policy.UnderlineBonus
		}
		if score > bestScore {
			bestScore = score
			bestHits = hits
		}
	}

	res.Pages = sortedPages(pageSet)
	if !res.Found {
		res.Notes = append(res.Notes, "term not found on any artwork page")
		return res
	}

	res.Matched = true
	notes := e.validateStyles(doc, spec, bestHits, &res)
	if len(notes) > 0 {
		res.Matched = false
	}
	res.Notes = appendDeduped(res.Notes, notes...)
	return res
}

// searchVariant finds the items matching one variant across artwork pages,
// consulting the per-page cache first.
func (e *Engine) searchVariant(doc *artwork.Document, variant string) []hit {
	norm := textnorm.Normalize(variant)
	if norm == "" {
		return nil
	}

	countryKey, hasCountry := terms.RequiredCountry(variant)
	tokens := e.significantTokens(norm)
	fuzzy := e.fuzzyEligible(norm)

	var hits []hit
	for i := range doc.Pages {
		page := &doc.Pages[i]
		if !page.IsArtwork {
			continue
		}

		key := pageKey{path: doc.Path, page: page.Number}
		indices, ok := e.cache.lookup(key, norm)
		if !ok {
			indices = e.searchPage(page, norm, tokens, fuzzy)
			e.cache.store(key, norm, indices)
		}
		if len(indices) == 0 {
			continue
		}
		if hasCountry && !pageNamesCountry(page, countryKey) {
			// Country equivalence is a necessary condition on top of the
			// phrase match, not a substitute for it.
			continue
		}
		for _, idx := range indices {
			hits = append(hits, hit{page: page.Number, item: &page.Items[idx]})
		}
	}
	return hits
}

// searchPage returns the indices of items on one page matching the variant.
func (e *Engine) searchPage(page *artwork.Page, norm string, tokens []string, fuzzy bool) []int {
	var indices []int
	for i := range page.Items {
		item := &page.Items[i]
		itemNorm := textnorm.Normalize(item.Text)
		if itemNorm == "" {
			continue
		}

		switch {
		case strings.Contains(itemNorm, norm):
			indices = append(indices, i)
		case len(tokens) > 0 && tokensInOrder(itemNorm, tokens):
			indices = append(indices, i)
		case fuzzy && item.Source == artwork.SourceRecognized &&
			levenshtein.Similarity(norm, itemNorm, nil) >= e.policy.EditSimilarityThreshold:
			indices = append(indices, i)
		}
	}
	return indices
}

// significantTokens returns the variant's tokens worth ordered matching:
// long enough and not stop words. A variant with no significant tokens
// matches by substring only.
func (e *Engine) significantTokens(norm string) []string {
	var tokens []string
	for _, tok := range strings.Fields(norm) {
		if len([]rune(tok)) < e.policy.MinTokenLen {
			continue
		}
		if e.policy.StopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) < 2 {
		// One token in order is just containment; not worth a second path.
		return nil
	}
	return tokens
}

// tokensInOrder reports whether every token appears in text left to right.
func tokensInOrder(text string, tokens []string) bool {
	rest := text
	for _, tok := range tokens {
		i := strings.Index(rest, tok)
		if i < 0 {
			return false
		}
		rest = rest[i+len(tok):]
	}
	return true
}

// fuzzyEligible limits edit-similarity matching to short or symbol-heavy
// variants, where recognition output plausibly mangles a character or two.
func (e *Engine) fuzzyEligible(norm string) bool {
	runes := []rune(norm)
	if len(runes) <= e.policy.ShortVariantLen {
		return true
	}
	symbols := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			symbols++
		}
	}
	return symbols*2 >= len(runes)
}

// pageNamesCountry reports whether any item on the page carries one of the
// country's name variants.
func pageNamesCountry(page *artwork.Page, key string) bool {
	variants := terms.CountryVariants(key)
	for i := range page.Items {
		norm := textnorm.Normalize(page.Items[i].Text)
		for _, v := range variants {
			if strings.Contains(norm, v) {
				return true
			}
		}
	}
	return false
}

func anyUnderlined(hits []hit) bool {
	for _, h := range hits {
		if h.item.Underline.True() {
			return true
		}
	}
	return false
}

func noneUnderlined(hits []hit) bool {
	return !anyUnderlined(hits)
}

func sortedPages(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// appendDeduped appends notes preserving order and dropping duplicates.
func appendDeduped(notes []string, extra ...string) []string {
	seen := map[string]bool{}
	for _, n := range notes {
		seen[n] = true
	}
	for _, n := range extra {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		notes = append(notes, n)
	}
	return notes
}
