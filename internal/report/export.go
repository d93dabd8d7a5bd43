package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CombinedRow is the per-requirement presentation of result records: rows
// sharing requirement, specification, and classification joined into one
// block with newline-separated fields. It is a pure view transform; the
// records themselves stay one-per-term.
type CombinedRow struct {
	Requirement    string
	Specification  string
	Classification string
	Terms          string
	Pages          string
	Status         string
	Notes          string
}

// CombineByRequirement folds records into presentation rows, preserving the
// order requirements first appear in.
func CombineByRequirement(records []ResultRecord) []CombinedRow {
	type key struct{ req, spec, class string }

	var order []key
	grouped := map[key][]ResultRecord{}
	for _, rec := range records {
		k := key{rec.Requirement, rec.Specification, string(rec.Result.Classification)}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], rec)
	}

	rows := make([]CombinedRow, 0, len(order))
	for _, k := range order {
		recs := grouped[k]

		var termLines, statusLines, noteLines []string
		pageSet := map[int]bool{}
		for _, rec := range recs {
			termLines = append(termLines, rec.Term)
			statusLines = append(statusLines, statusOf(rec))
			if len(rec.Result.Notes) > 0 {
				noteLines = append(noteLines, strings.Join(rec.Result.Notes, "; "))
			}
			for _, p := range rec.Result.Pages {
				pageSet[p] = true
			}
		}

		rows = append(rows, CombinedRow{
			Requirement:    k.req,
			Specification:  k.spec,
			Classification: k.class,
			Terms:          strings.Join(termLines, "\n"),
			Pages:          joinPages(pageSet),
			Status:         strings.Join(statusLines, "\n"),
			Notes:          strings.Join(noteLines, "\n"),
		})
	}
	return rows
}

func statusOf(rec ResultRecord) string {
	switch {
	case rec.Result.Classification != "" && rec.Result.Classification != "Verified":
		return string(rec.Result.Classification)
	case rec.Result.Matched:
		return "Pass"
	case rec.Result.Found:
		return "Found, style/size deviation"
	default:
		return "Not found"
	}
}

func joinPages(set map[int]bool) string {
	if len(set) == 0 {
		return "-"
	}
	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, ", ")
}

var exportHeader = []string{
	"Requirement", "Term", "Specification", "Classification",
	"Found", "Matched", "Pages", "Max size (mm)", "Notes",
}

// Export writes one worksheet of result records, one row per term.
func Export(path string, records []ResultRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range exportHeader {
		axis, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, axis, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, rec := range records {
		values := []interface{}{
			rec.Requirement,
			rec.Term,
			rec.Specification,
			string(rec.Result.Classification),
			rec.Result.Found,
			rec.Result.Matched,
			joinPagesSlice(rec.Result.Pages),
			sizeCell(rec),
			strings.Join(rec.Result.Notes, "\n"),
		}
		for col, v := range values {
			axis, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, axis, v); err != nil {
				return fmt.Errorf("write record %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save results to %s: %w", path, err)
	}
	return nil
}

func joinPagesSlice(pages []int) string {
	set := make(map[int]bool, len(pages))
	for _, p := range pages {
		set[p] = true
	}
	return joinPages(set)
}

func sizeCell(rec ResultRecord) string {
	if !rec.Result.HasSize {
		return "-"
	}
	return fmt.Sprintf("%.2f", rec.Result.MaxSizeMM)
}
