package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsotools/signcheck/internal/artwork"
)

func item(text string, sizeMM float64) artwork.TextItem {
	return artwork.TextItem{
		Text:   text,
		Source: artwork.SourceNative,
		SizeMM: sizeMM,
		Level:  artwork.LevelFragment,
	}
}

func densePage(number int) artwork.Page {
	p := artwork.Page{Number: number}
	for i := 0; i < 12; i++ {
		p.Items = append(p.Items, item(fmt.Sprintf("line %d", i), 2.0))
	}
	return p
}

func TestClassifyPartNumberPage(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{item("Part: 4LB45-MF4A", 1.0)}},
	}}
	ClassifyDocument(doc)
	assert.True(t, doc.Pages[0].IsArtwork)
}

func TestClassifyDenseLegiblePage(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{densePage(1)}}
	ClassifyDocument(doc)
	assert.True(t, doc.Pages[0].IsArtwork)
}

func TestClassifySparseTinyPage(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{item("rev", 0.5), item("notes", 0.5)}},
		densePage(2), // gives the document a legible page so no fallback fires
	}}
	// No part number anywhere, so fallback would keep non-cover pages; page 1
	// is the cover and stays excluded.
	ClassifyDocument(doc)
	assert.False(t, doc.Pages[0].IsArtwork)
}

func TestClassifyOriginStatementPage(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{item("ผลิตในประเทศไทย", 1.0)}},
	}}
	ClassifyDocument(doc)
	assert.True(t, doc.Pages[0].IsArtwork)
}

func TestClassifyNoPartNumberFallback(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{item("cover sheet", 1.0)}},
		{Number: 2, Items: []artwork.TextItem{item("small print", 0.9)}},
		{Number: 3, HasImages: true},
	}}
	ClassifyDocument(doc)
	assert.False(t, doc.Pages[0].IsArtwork, "cover page stays excluded")
	assert.True(t, doc.Pages[1].IsArtwork)
	assert.True(t, doc.Pages[2].IsArtwork, "image-only page qualifies under fallback")
}

func TestClassifyEmptyPageNeverArtwork(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1},
		{Number: 2},
	}}
	ClassifyDocument(doc)
	for i := range doc.Pages {
		assert.False(t, doc.Pages[i].IsArtwork, "page %d", doc.Pages[i].Number)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{item("Part: 4LB45-MF4A", 1.0)}},
		densePage(2),
		{Number: 3, Items: []artwork.TextItem{item("tiny", 0.2)}},
	}}
	ClassifyDocument(doc)
	first := make([]bool, len(doc.Pages))
	for i := range doc.Pages {
		first[i] = doc.Pages[i].IsArtwork
	}
	ClassifyDocument(doc)
	for i := range doc.Pages {
		assert.Equal(t, first[i], doc.Pages[i].IsArtwork, "page %d drifted", doc.Pages[i].Number)
	}
}

func TestProductInfoByPage(t *testing.T) {
	doc := &artwork.Document{Pages: []artwork.Page{
		{Number: 1, Items: []artwork.TextItem{
			item("SUPER BLOCKS", 3.2),
			item("Deluxe Set", 2.0),
			item("4LB45-MF4A", 1.0),
			item("Rev A2", 1.0),
			item("fine print", 0.8),
		}},
		{Number: 2},
	}}

	infos := ProductInfoByPage(doc)
	require.Len(t, infos, 2)

	assert.Equal(t, 1, infos[0].Page)
	assert.Equal(t, "SUPER BLOCKS Deluxe Set", infos[0].ProductName)
	assert.Equal(t, "4LB45-MF4A", infos[0].PartNo)
	assert.Equal(t, "A2", infos[0].Rev)

	assert.Equal(t, "-", infos[1].ProductName)
	assert.Equal(t, "-", infos[1].PartNo)
	assert.Equal(t, "-", infos[1].Rev)
}
