package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dsotools/signcheck/internal/artwork"
	"github.com/dsotools/signcheck/internal/checklist"
	"github.com/dsotools/signcheck/internal/match"
)

func warningDoc(sizeMM float64) *artwork.Document {
	return &artwork.Document{Pages: []artwork.Page{{
		Number:    1,
		IsArtwork: true,
		Items: []artwork.TextItem{{
			Text:      "WARNING: CHOKING HAZARD",
			Source:    artwork.SourceNative,
			Bold:      artwork.TriTrue,
			Underline: artwork.TriTrue,
			Italic:    artwork.TriFalse,
			SizeMM:    sizeMM,
			Level:     artwork.LevelLine,
			Page:      1,
		}},
	}}}
}

func newRunner() *Runner {
	return NewRunner(match.NewEngine(match.DefaultPolicy()), nil)
}

func TestClassifyManualKeywords(t *testing.T) {
	tests := []struct {
		name string
		row  checklist.RequirementRow
		want match.Classification
	}{
		{"plain wording", checklist.RequirementRow{Requirement: "Warning statement", Wording: "WARNING"}, match.ClassVerified},
		{"explicit hint", checklist.RequirementRow{Requirement: "Warning statement", Wording: "WARNING", ManualHint: true}, match.ClassManual},
		{"logo keyword", checklist.RequirementRow{Requirement: "Brand logo placement", Wording: "ACME"}, match.ClassManual},
		{"thai symbol keyword", checklist.RequirementRow{Requirement: "สัญลักษณ์รีไซเคิล"}, match.ClassManual},
		{"underline spec", checklist.RequirementRow{Requirement: "Warning", Wording: "WARNING", Specification: "Underline"}, match.ClassManual},
		{"images without wording", checklist.RequirementRow{Requirement: "Panel front", ReferenceImages: []string{"a.png"}}, match.ClassManual},
		{"images with trademark cue", checklist.RequirementRow{Requirement: "Quality seal ®", Wording: "QUALITY", ReferenceImages: []string{"a.png"}}, match.ClassManual},
		{"images with plain wording", checklist.RequirementRow{Requirement: "Warning area", Wording: "WARNING", ReferenceImages: []string{"a.png"}}, match.ClassVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.row))
		})
	}
}

func TestScenarioLionMarkIsManual(t *testing.T) {
	row := checklist.RequirementRow{
		Requirement:     "Lion Mark",
		ReferenceImages: []string{"lion_mark.png"},
	}
	require.Equal(t, match.ClassManual, Classify(row))

	records := newRunner().Check(warningDoc(2.1), []checklist.RequirementRow{row})
	require.Len(t, records, 1)
	assert.Equal(t, match.ClassManual, records[0].Result.Classification)
	assert.False(t, records[0].Result.Found)
	assert.Equal(t, []string{"manual check required"}, records[0].Result.Notes,
		"manual rows carry no style or size notes")
}

func TestShouldSkip(t *testing.T) {
	assert.True(t, ShouldSkip(checklist.RequirementRow{Requirement: "Warning statement", Wording: "Please refer to template"}))
	assert.True(t, ShouldSkip(checklist.RequirementRow{Specification: "Remark only"}))
	assert.False(t, ShouldSkip(checklist.RequirementRow{Requirement: "Warning statement", Wording: "WARNING", Remark: "Please refer to template v2"}),
		"a remark pointing elsewhere must not drop the requirement")
	assert.False(t, ShouldSkip(checklist.RequirementRow{Requirement: "Warning statement"}))
}

func TestCheckVerifiedRowPasses(t *testing.T) {
	rows := []checklist.RequirementRow{{
		Requirement:   "Warning statement",
		Wording:       "WARNING: CHOKING HAZARD",
		Specification: "Bold, ≥2.0mm",
	}}

	records := newRunner().Check(warningDoc(2.1), rows)
	require.Len(t, records, 1)
	assert.Equal(t, match.ClassVerified, records[0].Result.Classification)
	assert.True(t, records[0].Result.Found)
	assert.True(t, records[0].Result.Matched)
	assert.Equal(t, []int{1}, records[0].Result.Pages)
}

func TestCheckOneRecordPerTerm(t *testing.T) {
	rows := []checklist.RequirementRow{{
		Requirement: "Warnings",
		Wording:     "WARNING: CHOKING HAZARD\nAGE 3+",
	}}

	records := newRunner().Check(warningDoc(2.1), rows)
	require.Len(t, records, 2)
	assert.Equal(t, "WARNING: CHOKING HAZARD", records[0].Term)
	assert.Equal(t, "AGE 3+", records[1].Term)
	assert.True(t, records[0].Result.Found)
	assert.False(t, records[1].Result.Found)
}

func TestCheckSkipsAdministrativeRows(t *testing.T) {
	rows := []checklist.RequirementRow{
		{Requirement: "Notes", Specification: "Remark only"},
		{Requirement: "Template pointer", Wording: "Please refer to template"},
		{Requirement: "Warning statement", Wording: "WARNING: CHOKING HAZARD", Remark: "Please refer to template v2"},
	}

	records := newRunner().Check(warningDoc(2.1), rows)
	require.Len(t, records, 1)
	assert.Equal(t, "Warning statement", records[0].Requirement)
}

func TestCombineByRequirement(t *testing.T) {
	records := []ResultRecord{
		{
			Requirement: "Warnings", Specification: "Bold", Term: "WARNING",
			Result: match.Result{Found: true, Matched: true, Pages: []int{1}, Classification: match.ClassVerified},
		},
		{
			Requirement: "Warnings", Specification: "Bold", Term: "AGE 3+",
			Result: match.Result{Found: true, Matched: false, Pages: []int{2}, Notes: []string{"expected bold, matched text is regular weight"}, Classification: match.ClassVerified},
		},
		{
			Requirement: "Lion Mark", Term: "",
			Result: match.Result{Classification: match.ClassManual, Notes: []string{"manual check required"}},
		},
	}

	rows := CombineByRequirement(records)
	require.Len(t, rows, 2)

	assert.Equal(t, "WARNING\nAGE 3+", rows[0].Terms)
	assert.Equal(t, "1, 2", rows[0].Pages)
	assert.Equal(t, "Pass\nFound, style/size deviation", rows[0].Status)

	assert.Equal(t, "Manual", rows[1].Status)
	assert.Equal(t, "-", rows[1].Pages)
}

func TestCombineIsViewOnly(t *testing.T) {
	records := []ResultRecord{
		{Requirement: "A", Term: "x", Result: match.Result{Found: true}},
		{Requirement: "A", Term: "y", Result: match.Result{Found: false}},
	}
	_ = CombineByRequirement(records)
	assert.Equal(t, "x", records[0].Term, "combining must not mutate records")
	assert.True(t, records[0].Result.Found)
}

func TestExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	records := []ResultRecord{{
		Requirement:   "Warning statement",
		Term:          "WARNING: CHOKING HAZARD",
		Specification: "Bold",
		Result: match.Result{
			Found: true, Matched: true, Pages: []int{1},
			MaxSizeMM: 2.1, HasSize: true,
			Classification: match.ClassVerified,
		},
	}}

	require.NoError(t, Export(path, records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Warning statement", rows[1][0])
	assert.Equal(t, "TRUE", rows[1][4])
	assert.Equal(t, "2.10", rows[1][7])
}
