package extract

import (
	"sort"
	"strings"

	"github.com/dsotools/signcheck/internal/artwork"
)

// lineBaselineTol is the vertical distance (pt) within which two fragments
// are considered to share a visual line.
const lineBaselineTol = 2.0

// aggregateLines emits one additional line-level item per group of
// fragments sharing a visual line: text is the space-joined members,
// bold/underline the OR of members, size the MAX of members.
func aggregateLines(fragments []artwork.TextItem, pageNum int) []artwork.TextItem {
	if len(fragments) == 0 {
		return nil
	}

	idx := make([]int, len(fragments))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		fa, fb := fragments[idx[a]], fragments[idx[b]]
		if fa.BBox.Y != fb.BBox.Y {
			return fa.BBox.Y > fb.BBox.Y // top of page first
		}
		return fa.BBox.X < fb.BBox.X
	})

	var lines []artwork.TextItem
	var group []artwork.TextItem
	flush := func() {
		if len(group) > 0 {
			lines = append(lines, buildLineItem(group, pageNum))
		}
		group = nil
	}

	for _, i := range idx {
		f := fragments[i]
		if len(group) > 0 && absf(group[len(group)-1].BBox.Y-f.BBox.Y) > lineBaselineTol {
			flush()
		}
		group = append(group, f)
	}
	flush()

	return lines
}

func buildLineItem(group []artwork.TextItem, pageNum int) artwork.TextItem {
	sort.SliceStable(group, func(a, b int) bool { return group[a].BBox.X < group[b].BBox.X })

	texts := make([]string, 0, len(group))
	line := artwork.TextItem{
		Source: artwork.SourceNative,
		Bold:   artwork.TriFalse,
		Italic: artwork.TriFalse,
		Level:  artwork.LevelLine,
		Page:   pageNum,
		BBox:   group[0].BBox,
	}
	line.Underline = artwork.TriFalse

	for _, f := range group {
		texts = append(texts, f.Text)
		line.Bold = line.Bold.Or(f.Bold)
		line.Underline = line.Underline.Or(f.Underline)
		line.Italic = line.Italic.Or(f.Italic)
		if f.SizeMM > line.SizeMM {
			line.SizeMM = f.SizeMM
		}
		line.BBox = line.BBox.Union(f.BBox)
		if f.Source == artwork.SourceRecognized {
			line.Source = artwork.SourceRecognized
		}
	}

	line.Text = strings.Join(texts, " ")
	return line
}
