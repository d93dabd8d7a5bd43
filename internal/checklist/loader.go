package checklist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// allowedPartCodes are the part codes that may appear in document filenames
// and select a checklist sheet.
var allowedPartCodes = []string{"UU1_DOM", "2LB", "2XV", "4LB", "19L", "19A", "21A", "DC1"}

// headerScanRows bounds how deep the header search goes.
const headerScanRows = 10

// columns holds the resolved zero-based column indices; -1 means absent.
type columns struct {
	wording     int
	language    int
	spec        int
	requirement int
	remark      int
	panel       int
	procedure   int
	images      int
	manual      int
}

// Load reads the checklist sheet matching the document filename's part code
// and returns its requirement rows, with struck-through red rows dropped,
// requirements forward-filled, and not-applicable rows skipped.
func Load(workbookPath, documentPath string) ([]RequirementRow, error) {
	codes := partCodesFromFilename(documentPath)
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPartCode, filepath.Base(documentPath))
	}

	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("open checklist %s: %w", workbookPath, err)
	}
	defer f.Close()

	sheet, err := matchSheet(f.GetSheetList(), codes)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	headerIdx, ok := findHeaderRow(rows)
	if !ok {
		return nil, fmt.Errorf("%w in sheet %s", ErrNoHeaderRow, sheet)
	}

	cols := resolveColumns(rows[headerIdx])
	if cols.wording < 0 {
		return nil, fmt.Errorf("%w: no wording column among %v in sheet %s",
			ErrNoHeaderRow, rows[headerIdx], sheet)
	}

	var out []RequirementRow
	lastRequirement := ""
	for i := headerIdx + 1; i < len(rows); i++ {
		if rowIsEmpty(rows[i]) {
			continue
		}
		if struckRed(f, sheet, i, len(rows[i])) {
			continue
		}

		row := buildRow(rows[i], cols)
		if row.Requirement == "" {
			row.Requirement = lastRequirement
		} else {
			lastRequirement = row.Requirement
		}

		// Rows explicitly marked not applicable are not checked at all.
		if spec := strings.ToUpper(strings.TrimSpace(row.Specification)); spec == "N/A" || spec == "NONE" || spec == "-" {
			continue
		}
		if row.Wording == "" && row.Requirement == "" {
			continue
		}

		if len(row.Languages) == 0 {
			row.Languages = languagesFromRemark(row.Remark, row.Wording)
		}
		out = append(out, row)
	}
	return out, nil
}

// partCodesFromFilename finds the allow-listed part codes embedded in a
// document filename, ignoring case, spaces, and commas.
func partCodesFromFilename(documentPath string) []string {
	base := strings.ToUpper(filepath.Base(documentPath))
	base = strings.NewReplacer(" ", "", ",", "").Replace(base)

	var codes []string
	for _, code := range allowedPartCodes {
		if strings.Contains(base, code) {
			codes = append(codes, code)
		}
	}
	return codes
}

// matchSheet returns the first sheet whose normalized name starts with one
// of the detected part codes.
func matchSheet(sheets, codes []string) (string, error) {
	for _, sheet := range sheets {
		normalized := strings.ToUpper(strings.ReplaceAll(sheet, " ", ""))
		for _, code := range codes {
			if strings.HasPrefix(normalized, code) {
				return sheet, nil
			}
		}
	}
	return "", fmt.Errorf("%w: codes %v, sheets %v", ErrNoMatchingSheet, codes, sheets)
}

// findHeaderRow returns the first row within the scan window holding at
// least two non-empty cells.
func findHeaderRow(rows [][]string) (int, bool) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		filled := 0
		for _, cell := range rows[i] {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
		if filled >= 2 {
			return i, true
		}
	}
	return 0, false
}

// resolveColumns fuzzy-matches header cells onto known roles. Checklist
// workbooks vary in header wording and language, so matching is by keyword
// containment on a squashed lowercase form.
func resolveColumns(header []string) columns {
	cols := columns{
		wording: -1, language: -1, spec: -1, requirement: -1,
		remark: -1, panel: -1, procedure: -1, images: -1, manual: -1,
	}

	for i, cell := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cell), " ", ""))
		key = strings.ReplaceAll(key, " ", "")
		if key == "" {
			continue
		}

		switch {
		case containsAny(key, "term", "exactwording", "wording", "symbol", "ข้อความ"):
			setIfUnset(&cols.wording, i)
		case containsAny(key, "language", "lang", "ภาษา"):
			setIfUnset(&cols.language, i)
		case containsAny(key, "specification", "spec", "ข้อกำหนด"):
			setIfUnset(&cols.spec, i)
		case containsAny(key, "requirement", "รายการ"):
			setIfUnset(&cols.requirement, i)
		case containsAny(key, "remark", "note", "หมายเหตุ"):
			setIfUnset(&cols.remark, i)
		case containsAny(key, "panel", "package"):
			setIfUnset(&cols.panel, i)
		case containsAny(key, "procedure", "วิธี"):
			setIfUnset(&cols.procedure, i)
		case containsAny(key, "image", "picture", "reference", "รูป"):
			setIfUnset(&cols.images, i)
		case containsAny(key, "manual", "checkby"):
			setIfUnset(&cols.manual, i)
		}
	}
	return cols
}

func containsAny(s string, keys ...string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func setIfUnset(col *int, i int) {
	if *col < 0 {
		*col = i
	}
}

// buildRow assembles one RequirementRow from a sheet row.
func buildRow(cells []string, cols columns) RequirementRow {
	row := RequirementRow{
		Requirement:   cellAt(cells, cols.requirement),
		Specification: cellAt(cells, cols.spec),
		Wording:       cellAt(cells, cols.wording),
		Remark:        cellAt(cells, cols.remark),
		PackagePanel:  cellAt(cells, cols.panel),
		Procedure:     cellAt(cells, cols.procedure),
	}

	if imgs := cellAt(cells, cols.images); imgs != "" {
		for _, part := range strings.FieldsFunc(imgs, func(r rune) bool { return r == '\n' || r == ',' }) {
			if part = strings.TrimSpace(part); part != "" {
				row.ReferenceImages = append(row.ReferenceImages, part)
			}
		}
	}

	if manual := strings.ToLower(cellAt(cells, cols.manual)); manual != "" {
		row.ManualHint = strings.Contains(manual, "manual") || manual == "yes" || manual == "y"
	}

	if lang := cellAt(cells, cols.language); lang != "" {
		for _, part := range strings.Split(lang, ",") {
			if part = strings.TrimSpace(part); part != "" {
				row.Languages = append(row.Languages, part)
			}
		}
	}
	return row
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func rowIsEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// struckRed reports whether any cell in the row is struck through in red,
// the reviewers' convention for "requirement withdrawn".
func struckRed(f *excelize.File, sheet string, rowIdx, width int) bool {
	for col := 0; col < width; col++ {
		axis, err := excelize.CoordinatesToCellName(col+1, rowIdx+1)
		if err != nil {
			continue
		}
		styleID, err := f.GetCellStyle(sheet, axis)
		if err != nil || styleID == 0 {
			continue
		}
		style, err := f.GetStyle(styleID)
		if err != nil || style == nil || style.Font == nil {
			continue
		}
		if style.Font.Strike && isRed(style.Font.Color) {
			return true
		}
	}
	return false
}

// isRed matches the red the reviewers use, with or without an alpha prefix.
func isRed(color string) bool {
	c := strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	return c == "FF0000"
}

// languagesFromRemark pulls declared languages out of remark lines shaped
// like "term = language". Only lines whose left side mentions the wording
// count.
func languagesFromRemark(remark, wording string) []string {
	if remark == "" {
		return nil
	}

	var langs []string
	target := strings.ToLower(strings.TrimSpace(wording))
	for _, line := range strings.Split(remark, "\n") {
		left, right, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		if target != "" && !strings.Contains(strings.ToLower(left), target) {
			continue
		}
		if lang := strings.TrimSpace(right); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}
