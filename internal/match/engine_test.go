package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/terms"
)

func styledItem(text string, sizeMM float64, bold, underline bool) artwork.TextItem {
	return artwork.TextItem{
		Text:      text,
		Source:    artwork.SourceNative,
		Bold:      artwork.TriOf(bold),
		Underline: artwork.TriOf(underline),
		Italic:    artwork.TriFalse,
		SizeMM:    sizeMM,
		Level:     artwork.LevelLine,
		Page:      1,
	}
}

func artworkDoc(items ...artwork.TextItem) *artwork.Document {
	return &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: items, IsArtwork: true},
	}}
}

func variants(texts ...string) []terms.Variant {
	vs := make([]terms.Variant, 0, len(texts))
	for _, t := range texts {
		vs = append(vs, terms.Variant{Text: t, Origin: t})
	}
	return vs
}

func TestScenarioFullPass(t *testing.T) {
	doc := artworkDoc(styledItem("WARNING: CHOKING HAZARD", 2.1, true, true))
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("WARNING: CHOKING HAZARD"), ParseSpec("Bold, Underline, ≥2.0mm mm"))

	assert.True(t, res.Found)
	assert.True(t, res.Matched)
	assert.Equal(t, []int{1}, res.Pages)
	for _, note := range res.Notes {
		assert.Contains(t, note, "meets required", "a passing term carries at most a size confirmation")
	}
}

func TestScenarioSizeDeviation(t *testing.T) {
	doc := artworkDoc(styledItem("WARNING: CHOKING HAZARD", 1.5, true, true))
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("WARNING: CHOKING HAZARD"), ParseSpec("Bold, Underline, ≥2.0mm mm"))

	assert.True(t, res.Found)
	assert.False(t, res.Matched)
	require.NotEmpty(t, res.Notes)
	joined := ""
	for _, n := range res.Notes {
		joined += n + "\n"
	}
	assert.Contains(t, joined, "1.50mm")
	assert.Contains(t, joined, "2.00mm")
}

func TestSubstringSoundness(t *testing.T) {
	doc := artworkDoc(styledItem("Small parts. Not for children under 3 years.", 1.2, false, false))
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("not for children"), StyleSpec{})
	assert.True(t, res.Found, "normalized substring on an artwork page must be found")
	assert.True(t, res.Matched)
}

func TestMatchedImpliesFound(t *testing.T) {
	docs := []*artwork.Document{
		artworkDoc(styledItem("WARNING: CHOKING HAZARD", 2.1, true, true)),
		artworkDoc(styledItem("unrelated text", 2.1, false, false)),
		artworkDoc(),
	}
	specs := []StyleSpec{{}, ParseSpec("Bold"), ParseSpec("≥2.0mm")}

	e := NewEngine(DefaultPolicy())
	for _, doc := range docs {
		for _, spec := range specs {
			res := e.Evaluate(doc, variants("WARNING: CHOKING HAZARD"), spec)
			if res.Matched {
				assert.True(t, res.Found, "matched must imply found")
			}
		}
	}
}

func TestFontSizeBoundary(t *testing.T) {
	e := NewEngine(DefaultPolicy())
	spec := ParseSpec("≥2.0mm")

	exact := artworkDoc(styledItem("AGE GRADING", 2.0, false, false))
	res := e.Evaluate(exact, variants("AGE GRADING"), spec)
	assert.True(t, res.Matched, "size exactly at the threshold passes")

	below := artworkDoc(styledItem("AGE GRADING", 1.99, false, false))
	res = e.Evaluate(below, variants("AGE GRADING"), spec)
	assert.False(t, res.Matched, "size 0.01mm below the threshold fails")
}

func TestSizeNotMeasurable(t *testing.T) {
	item := styledItem("WARNING", 0, false, false)
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(artworkDoc(item), variants("WARNING"), ParseSpec("≥2.0mm"))
	assert.True(t, res.Found)
	assert.False(t, res.Matched)
	assert.Contains(t, res.Notes, "font size not measurable")
	assert.False(t, res.HasSize)
}

func TestCountryEquivalence(t *testing.T) {
	e := NewEngine(DefaultPolicy())
	vs := terms.Expand("Country of origin: Thailand", nil)
	require.NotEmpty(t, vs)

	phrase := artworkDoc(styledItem("Made in Thailand", 1.2, false, false))
	res := e.Evaluate(phrase, vs, StyleSpec{})
	assert.True(t, res.Found, `"Made in Thailand" satisfies a Thailand origin requirement`)

	bareName := artworkDoc(styledItem("ประเทศไทย", 1.2, false, false))
	res = NewEngine(DefaultPolicy()).Evaluate(bareName, vs, StyleSpec{})
	assert.False(t, res.Found, "a translated country name without an origin phrase must not satisfy it")
}

func TestNonArtworkPagesExcluded(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{styledItem("WARNING", 2.0, false, false)}, IsArtwork: false},
	}}
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("WARNING"), StyleSpec{})
	assert.False(t, res.Found)
}

func TestOrderedTokenMatch(t *testing.T) {
	doc := artworkDoc(styledItem("WARNING: CHOKING HAZARD - Small parts", 1.2, false, false))
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("choking small parts"), StyleSpec{})
	assert.True(t, res.Found, "significant tokens in order must match")

	res = e.Evaluate(doc, variants("parts small choking"), StyleSpec{})
	assert.False(t, res.Found, "tokens out of order must not match")
}

func TestFuzzyMatchRecognizedOnly(t *testing.T) {
	recognized := styledItem("AGE 8+", 1.2, false, false)
	recognized.Source = artwork.SourceRecognized
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(artworkDoc(recognized), variants("AGE 3+"), StyleSpec{})
	assert.False(t, res.Found, "a different digit is a different requirement")

	slightly := styledItem("AGE 3 +", 1.2, false, false)
	slightly.Source = artwork.SourceRecognized
	res = NewEngine(DefaultPolicy()).Evaluate(artworkDoc(slightly), variants("AGE 3+"), StyleSpec{})
	assert.True(t, res.Found, "near-identical recognized text matches fuzzily")

	native := styledItem("AGE 3 +", 1.2, false, false)
	res = NewEngine(DefaultPolicy()).Evaluate(artworkDoc(native), variants("AGE 3+"), StyleSpec{})
	assert.False(t, res.Found, "fuzzy matching never applies to native items")
}

func TestVariantScoringUnionOfPages(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{styledItem("Warning statement", 1.2, false, false)}, IsArtwork: true},
		{Number: 2, Items: []artwork.TextItem{styledItem("Caution statement", 1.2, false, false)}, IsArtwork: true},
	}}
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("Warning statement", "Caution statement"), StyleSpec{})
	assert.True(t, res.Found)
	assert.Equal(t, []int{1, 2}, res.Pages, "pages are the union across variants")
}

func TestUnderlineBonusSelectsVariant(t *testing.T) {
	underlined := styledItem("Warning statement", 1.2, false, true)
	plain := styledItem("Caution statement", 1.2, false, false)
	plain2 := styledItem("Caution statement repeated", 1.2, false, false)
	doc := artworkDoc(underlined, plain, plain2)

	e := NewEngine(DefaultPolicy())
	res := e.Evaluate(doc, variants("Warning statement", "Caution statement"), ParseSpec("Underline"))

	// The plain variant has more hits, but the underlined one already
	// satisfies the style requirement and must win validation.
	assert.True(t, res.Matched)
}

func TestBoldSalvage(t *testing.T) {
	fragment := styledItem("CHOKING HAZARD", 2.0, false, false)
	fragment.Level = artwork.LevelFragment
	boldLine := styledItem("WARNING: CHOKING HAZARD", 2.0, true, false)

	doc := artworkDoc(fragment, boldLine)
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("CHOKING HAZARD"), ParseSpec("Bold"))
	assert.True(t, res.Matched, "overlapping bold line salvages the bold check")
}

func TestNotesDeduplicated(t *testing.T) {
	doc := artworkDoc(
		styledItem("Warning text", 0, false, false),
		styledItem("Warning text", 0, false, false),
	)
	e := NewEngine(DefaultPolicy())

	res := e.Evaluate(doc, variants("Warning text"), ParseSpec("≥2.0mm"))
	count := 0
	for _, n := range res.Notes {
		if n == "font size not measurable" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestPageCacheEviction(t *testing.T) {
	c := newPageCache(2)
	c.store(pageKey{page: 1}, "a", []int{0})
	c.store(pageKey{page: 2}, "a", []int{1})
	c.store(pageKey{page: 3}, "a", []int{2})

	_, ok := c.lookup(pageKey{page: 1}, "a")
	assert.False(t, ok, "least recently used page evicted")
	_, ok = c.lookup(pageKey{page: 3}, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestPageCacheHitStats(t *testing.T) {
	c := newPageCache(4)
	c.store(pageKey{page: 1}, "warning", []int{0, 2})

	got, ok := c.lookup(pageKey{page: 1}, "warning")
	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, got)

	_, ok = c.lookup(pageKey{page: 1}, "other")
	assert.False(t, ok, "page cached but variant not yet searched")

	hits, misses := c.stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestPageCacheKeyedByDocument(t *testing.T) {
	c := newPageCache(4)
	c.store(pageKey{path: "a.pdf", page: 1}, "warning", []int{0})

	_, ok := c.lookup(pageKey{path: "b.pdf", page: 1}, "warning")
	assert.False(t, ok, "same page number of another document must miss")
}

func TestEngineCachesRepeatedQueries(t *testing.T) {
	doc := artworkDoc(styledItem("WARNING", 2.0, false, false))
	e := NewEngine(DefaultPolicy())

	first := e.Evaluate(doc, variants("WARNING"), StyleSpec{})
	second := e.Evaluate(doc, variants("WARNING"), StyleSpec{})
	assert.Equal(t, first.Found, second.Found)

	hits, _ := e.cache.stats()
	assert.Greater(t, hits, int64(0), "second evaluation must hit the cache")
}

func TestEngineSharedAcrossDocuments(t *testing.T) {
	withText := artworkDoc(styledItem("WARNING: CHOKING HAZARD", 2.0, false, false))
	withText.Path = "a.pdf"
	withoutText := artworkDoc(styledItem("Made in Thailand", 2.0, false, false))
	withoutText.Path = "b.pdf"

	e := NewEngine(DefaultPolicy())
	require.True(t, e.Evaluate(withText, variants("WARNING"), StyleSpec{}).Found)

	res := e.Evaluate(withoutText, variants("WARNING"), StyleSpec{})
	assert.False(t, res.Found, "results from one document must not leak into another")
}
