package report

import (
	"log/slog"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/checklist"
	"github.com/dsotools/signcheck/internal/match"
	"github.com/dsotools/signcheck/internal/terms"
)

// ResultRecord is one output unit per (requirement, term) pair.
type ResultRecord struct {
	Requirement   string
	Term          string
	Specification string
	PackagePanel  string
	Procedure     string
	Result        match.Result
}

// Runner drives the check: route each row, expand its wording into terms,
// evaluate the verified ones, and emit one record per term.
type Runner struct {
	engine *match.Engine
	logger *slog.Logger
}

// NewRunner creates a Runner around a matching engine.
func NewRunner(engine *match.Engine, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{engine: engine, logger: logger}
}

// Check evaluates every checklist row against the document's artwork pages.
func (r *Runner) Check(doc *artwork.Document, rows []checklist.RequirementRow) []ResultRecord {
	var records []ResultRecord
	for _, row := range rows {
		if ShouldSkip(row) {
			r.logger.Debug("row skipped", "requirement", row.Requirement)
			continue
		}
		records = append(records, r.checkRow(doc, row)...)
	}
	r.logger.Info("check complete", "rows", len(rows), "records", len(records))
	return records
}

func (r *Runner) checkRow(doc *artwork.Document, row checklist.RequirementRow) []ResultRecord {
	classification := Classify(row)
	variants := terms.Expand(row.Wording, row.Languages)

	if classification == match.ClassManual {
		return manualRecords(row, variants)
	}

	var records []ResultRecord
	for _, group := range groupByOrigin(variants) {
		res := r.engine.Evaluate(doc, group.variants, match.ParseSpec(row.Specification))
		res.Classification = match.ClassVerified
		r.logger.Debug("term evaluated",
			"requirement", row.Requirement, "term", group.origin,
			"found", res.Found, "matched", res.Matched)
		records = append(records, ResultRecord{
			Requirement:   row.Requirement,
			Term:          group.origin,
			Specification: row.Specification,
			PackagePanel:  row.PackagePanel,
			Procedure:     row.Procedure,
			Result:        res,
		})
	}

	if len(records) == 0 {
		// No checkable wording yet classified Verified: surface the row
		// rather than dropping it silently.
		records = append(records, ResultRecord{
			Requirement:   row.Requirement,
			Term:          row.Wording,
			Specification: row.Specification,
			PackagePanel:  row.PackagePanel,
			Procedure:     row.Procedure,
			Result: match.Result{
				Classification: match.ClassVerified,
				Notes:          []string{"no checkable wording"},
			},
		})
	}
	return records
}

// manualRecords emits manual rows untouched by matching. Manual results
// never carry style or size notes.
func manualRecords(row checklist.RequirementRow, variants []terms.Variant) []ResultRecord {
	record := func(term string) ResultRecord {
		return ResultRecord{
			Requirement:   row.Requirement,
			Term:          term,
			Specification: row.Specification,
			PackagePanel:  row.PackagePanel,
			Procedure:     row.Procedure,
			Result: match.Result{
				Classification: match.ClassManual,
				Notes:          []string{"manual check required"},
			},
		}
	}

	groups := groupByOrigin(variants)
	if len(groups) == 0 {
		return []ResultRecord{record(row.Wording)}
	}
	records := make([]ResultRecord, 0, len(groups))
	for _, g := range groups {
		records = append(records, record(g.origin))
	}
	return records
}

// termGroup is one term (a wording line) with its expanded variants.
type termGroup struct {
	origin   string
	variants []terms.Variant
}

// groupByOrigin groups variants by the wording line they came from,
// preserving first-seen order.
func groupByOrigin(variants []terms.Variant) []termGroup {
	var groups []termGroup
	index := map[string]int{}
	for _, v := range variants {
		i, ok := index[v.Origin]
		if !ok {
			i = len(groups)
			index[v.Origin] = i
			groups = append(groups, termGroup{origin: v.Origin})
		}
		groups[i].variants = append(groups[i].variants, v)
	}
	return groups
}
