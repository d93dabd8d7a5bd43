package classify

import (
	"strings"

	"github.com/dsotools/signcheck/internal/artwork"
)

// ProductInfo identifies what one page claims to be: the large-print product
// name, the structured part code, and the revision token. Unresolvable
// fields hold "-".
type ProductInfo struct {
	Page        int
	ProductName string
	PartNo      string
	Rev         string
}

// ProductInfoByPage scans every page for product identification. The product
// name is the join of items at legible print size; fragment-level items only,
// so line aggregates do not repeat the same glyphs.
func ProductInfoByPage(doc *artwork.Document) []ProductInfo {
	infos := make([]ProductInfo, 0, len(doc.Pages))
	for i := range doc.Pages {
		page := &doc.Pages[i]
		info := ProductInfo{Page: page.Number, ProductName: "-", PartNo: "-", Rev: "-"}

		var names []string
		for j := range page.Items {
			item := &page.Items[j]
			text := strings.TrimSpace(item.Text)
			if text == "" {
				continue
			}
			if item.Level == artwork.LevelFragment && item.SizeMM >= minLegibleMM {
				names = append(names, text)
			}
			if info.PartNo == "-" {
				if m := partNumberPattern.FindString(text); m != "" {
					info.PartNo = m
				}
			}
			if info.Rev == "-" {
				if m := revisionPattern.FindString(text); m != "" {
					info.Rev = m
				}
			}
		}
		if len(names) > 0 {
			info.ProductName = strings.Join(names, " ")
		}
		infos = append(infos, info)
	}
	return infos
}
