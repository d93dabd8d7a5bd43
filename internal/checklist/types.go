// Package checklist loads requirement rows from the compliance workbook:
// sheet selection by part code, header detection, struck-through row
// filtering, fuzzy column resolution, and language extraction. The matching
// engine receives fully resolved RequirementRows and never touches the
// workbook itself.
package checklist

import "errors"

// Sentinel errors callers branch on.
var (
	// ErrNoMatchingSheet means no worksheet name starts with a part code
	// found in the document filename.
	ErrNoMatchingSheet = errors.New("no sheet matches a part code from the document filename")
	// ErrNoHeaderRow means no usable header structure was found in the
	// selected sheet.
	ErrNoHeaderRow = errors.New("no header row found")
	// ErrNoPartCode means the document filename carries no allow-listed
	// part code to select a sheet with.
	ErrNoPartCode = errors.New("no part code in document filename")
)

// RequirementRow is one checklist requirement with all fields resolved.
// The engine treats it as a read-only view into the checklist.
type RequirementRow struct {
	Requirement     string
	Specification   string
	Wording         string
	Remark          string
	PackagePanel    string
	Procedure       string
	ReferenceImages []string
	ManualHint      bool
	Languages       []string
}
