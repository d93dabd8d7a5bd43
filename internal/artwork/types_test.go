package artwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriOr(t *testing.T) {
	assert.Equal(t, TriTrue, TriFalse.Or(TriTrue))
	assert.Equal(t, TriTrue, TriTrue.Or(TriUnknown))
	assert.Equal(t, TriFalse, TriFalse.Or(TriUnknown))
	assert.Equal(t, TriUnknown, TriUnknown.Or(TriUnknown))
}

func TestTriOf(t *testing.T) {
	assert.True(t, TriOf(true).True())
	assert.False(t, TriOf(false).True())
	assert.False(t, TriUnknown.True())
}

func TestJoinedTextPrefersLines(t *testing.T) {
	p := Page{Items: []TextItem{
		{Text: "WARNING:", Level: LevelFragment},
		{Text: "CHOKING", Level: LevelFragment},
		{Text: "WARNING: CHOKING", Level: LevelLine},
	}}
	assert.Equal(t, "WARNING: CHOKING", p.JoinedText())

	fragmentsOnly := Page{Items: []TextItem{
		{Text: "Made", Level: LevelFragment},
		{Text: "in Thailand", Level: LevelFragment},
	}}
	assert.Equal(t, "Made\nin Thailand", fragmentsOnly.JoinedText())
}

func TestArtworkPages(t *testing.T) {
	d := Document{Pages: []Page{
		{Number: 1, IsArtwork: false},
		{Number: 2, IsArtwork: true},
		{Number: 3, IsArtwork: true},
	}}
	pages := d.ArtworkPages()
	assert.Len(t, pages, 2)
	assert.Equal(t, 2, pages[0].Number)
}

func TestUnitConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 25.4, PtToMM(72), 1e-9)
	assert.InDelta(t, 72.0, MMToPt(25.4), 1e-9)
	assert.InDelta(t, 2.0, PtToMM(MMToPt(2.0)), 1e-12)
}
