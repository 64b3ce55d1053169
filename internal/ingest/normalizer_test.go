package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

func defaultSchema(t *testing.T) models.GradeSchema {
	t.Helper()
	schema, known := GetSchema("unknown level")
	require.False(t, known)
	return schema
}

func subjectNames(record *models.StudentRecord) []string {
	names := make([]string, 0, len(record.Subjects))
	for _, s := range record.Subjects {
		names = append(names, s.DisplayName)
	}
	return names
}

func TestIngestCoreSubjectIncludedWithValidScore(t *testing.T) {
	row := models.RawRow{
		"__EMPTY_2":               "Amina Bello",
		"mathematics_total_score": 78.0,
		"mathematics_grade":       "B3",
		"french_total_score":      "N/A",
		"french_visible":          "N",
	}
	result := Ingest([]models.RawRow{row}, defaultSchema(t), nil, nil)

	require.Equal(t, 1, result.Store.Len())
	record, ok := result.Store.Get("Amina Bello")
	require.True(t, ok)
	require.Len(t, record.Subjects, 1)
	assert.Equal(t, "Mathematics", record.Subjects[0].DisplayName)
	assert.Equal(t, 78.0, record.Subjects[0].Assessment.Total)
	assert.Equal(t, "B3", record.Subjects[0].Assessment.LetterGrade)
	assert.Equal(t, "B3", LetterGrade(record.Subjects[0].Assessment.Total))
	assert.NotContains(t, subjectNames(record), "French")
}

func TestIngestOptionalSubjectVisible(t *testing.T) {
	row := models.RawRow{
		"__EMPTY_2":               "Amina Bello",
		"mathematics_total_score": 78.0,
		"french_total_score":      82.0,
		"french_visible":          "Y",
	}
	result := Ingest([]models.RawRow{row}, defaultSchema(t), nil, nil)

	record, ok := result.Store.Get("Amina Bello")
	require.True(t, ok)
	names := subjectNames(record)
	require.Contains(t, names, "French")
	for _, subject := range record.Subjects {
		if subject.Key == "french" {
			assert.Equal(t, 82.0, subject.Assessment.Total)
		}
	}
}

func TestIngestOptionalSubjectVisibilityColumnAbsent(t *testing.T) {
	// Exports that omit the visibility column entirely treat the subject as
	// always shown: the score condition alone decides.
	row := models.RawRow{
		"__EMPTY_2":               "Amina Bello",
		"mathematics_total_score": 78.0,
		"french_total_score":      82.0,
	}
	result := Ingest([]models.RawRow{row}, defaultSchema(t), nil, nil)

	record, ok := result.Store.Get("Amina Bello")
	require.True(t, ok)
	assert.Contains(t, subjectNames(record), "French")
}

func TestIngestOptionalSubjectHiddenDespiteScore(t *testing.T) {
	row := models.RawRow{
		"__EMPTY_2":          "Amina Bello",
		"french_total_score": 82.0,
		"french_visible":     "N",
	}
	result := Ingest([]models.RawRow{row}, defaultSchema(t), nil, nil)

	record, ok := result.Store.Get("Amina Bello")
	require.True(t, ok)
	assert.Empty(t, record.Subjects)
}

func TestIngestCoreSubjectExcludedOnInvalidScore(t *testing.T) {
	for _, score := range []any{nil, "", "  ", "N/A"} {
		row := models.RawRow{
			"names":                   "Tunde Okafor",
			"mathematics_total_score": score,
		}
		result := Ingest([]models.RawRow{row}, defaultSchema(t), nil, nil)
		record, ok := result.Store.Get("Tunde Okafor")
		require.True(t, ok)
		assert.Emptyf(t, record.Subjects, "score %v must exclude the subject", score)
	}
}

func TestIngestSkipsRowsWithoutStudentName(t *testing.T) {
	rows := []models.RawRow{
		{"mathematics_total_score": 70.0},
		{"names": nil, "mathematics_total_score": 70.0},
		{"names": 42.0, "mathematics_total_score": 70.0},
		{"names": "   "},
		{"names": "Chen Wei", "mathematics_total_score": 70.0},
	}
	result := Ingest(rows, defaultSchema(t), nil, nil)

	assert.Equal(t, 1, result.Store.Len())
	assert.Equal(t, 5, result.Stats.RowsTotal)
	assert.Equal(t, 4, result.Stats.RowsSkipped)
}

func TestIngestAppendsAcrossRows(t *testing.T) {
	// A student recurring across rows appends subjects from both rows; the
	// engine does not dedupe logical keys, it only counts repeats.
	rows := []models.RawRow{
		{"names": "Chen Wei", "mathematics_total_score": 90.0},
		{"names": "Chen Wei", "english_language_total_score": 75.0},
		{"names": "Chen Wei", "mathematics_total_score": 60.0},
	}
	result := Ingest(rows, defaultSchema(t), nil, nil)

	record, ok := result.Store.Get("Chen Wei")
	require.True(t, ok)
	require.Len(t, record.Subjects, 3)
	assert.Equal(t, "mathematics", record.Subjects[0].Key)
	assert.Equal(t, 90.0, record.Subjects[0].Assessment.Total)
	assert.Equal(t, "english_language", record.Subjects[1].Key)
	assert.Equal(t, "mathematics", record.Subjects[2].Key)
	assert.Equal(t, 60.0, record.Subjects[2].Assessment.Total)
	assert.Equal(t, 1, result.Stats.DuplicateSubjects)
}

func TestIngestResolvesConfiguredDisplayName(t *testing.T) {
	configs := []models.SubjectConfig{
		{GradeLevel: "JSS 2", SubjectName: "General Mathematics", DisplayOrder: 1, Active: true},
	}
	row := models.RawRow{"names": "Amina Bello", "mathematics_total_score": 78.0}
	schema, known := GetSchema("JSS 2")
	require.True(t, known)
	result := Ingest([]models.RawRow{row}, schema, configs, nil)

	record, ok := result.Store.Get("Amina Bello")
	require.True(t, ok)
	require.Len(t, record.Subjects, 1)
	assert.Equal(t, "General Mathematics", record.Subjects[0].DisplayName)
}

func TestIngestFallsBackToCandidateNameWithoutConfig(t *testing.T) {
	configs := []models.SubjectConfig{
		{GradeLevel: "JSS 2", SubjectName: "Fine Arts", DisplayOrder: 1, Active: true},
	}
	row := models.RawRow{"names": "Amina Bello", "mathematics_total_score": 78.0}
	result := Ingest([]models.RawRow{row}, defaultSchema(t), configs, nil)

	record, _ := result.Store.Get("Amina Bello")
	require.Len(t, record.Subjects, 1)
	assert.Equal(t, "Mathematics", record.Subjects[0].DisplayName)
}

func TestIngestExtractsAssessmentTuple(t *testing.T) {
	row := models.RawRow{
		"names":                   "Amina Bello",
		"mathematics_ca_one":      "8",
		"mathematics_ca_two":      "9",
		"mathematics_ca_three":    "7.5",
		"mathematics_ca_four":     10.0,
		"mathematics_exam":        "43.5",
		"mathematics_total_score": "78",
		"mathematics_grade":       "B3",
		"mathematics_position":    "4",
		"mathematics_remark":      "Very Good",
		"mathematics_css_average": "65.2",
	}
	result := Ingest([]models.RawRow{row}, defaultSchema(t), nil, nil)

	record, _ := result.Store.Get("Amina Bello")
	require.Len(t, record.Subjects, 1)
	got := record.Subjects[0].Assessment
	assert.Equal(t, models.AssessmentTuple{
		CAOne: 8, CATwo: 9, CAThree: 7.5, CAFour: 10,
		Exam: 43.5, Total: 78, LetterGrade: "B3",
		Position: 4, Remark: "Very Good", CohortAverage: 65.2,
	}, got)
	assert.Zero(t, result.Stats.ParseFailures)
}

func TestIngestDefaultsAndCountsParseFailures(t *testing.T) {
	row := models.RawRow{
		"names":                   "Amina Bello",
		"mathematics_total_score": "seventy",
		"mathematics_exam":        "forty",
		"sch_opened":              "abc",
		"times_present":           "110",
	}
	result := Ingest([]models.RawRow{row}, defaultSchema(t), nil, nil)

	record, _ := result.Store.Get("Amina Bello")
	// "seventy" is present and non-empty, so the subject is included with the
	// substituted default total.
	require.Len(t, record.Subjects, 1)
	assert.Zero(t, record.Subjects[0].Assessment.Total)
	assert.Zero(t, record.Subjects[0].Assessment.Exam)
	assert.Zero(t, record.Term.SchoolOpened)
	assert.Equal(t, 110, record.Term.TimesPresent)
	assert.Equal(t, 3, result.Stats.ParseFailures)
}

func TestIngestTermAttributesFromFirstRow(t *testing.T) {
	rows := []models.RawRow{
		{
			"names":           "Amina Bello",
			"sch_opened":      "120",
			"times_present":   "115",
			"times_absent":    "5",
			"teacher_comment": "Hard working",
			"head_comment":    "Keep it up",
			"effort":          "A",
			"behaviour":       "B",
		},
		{"names": "Amina Bello", "sch_opened": "999"},
	}
	result := Ingest(rows, defaultSchema(t), nil, nil)

	record, _ := result.Store.Get("Amina Bello")
	assert.Equal(t, 120, record.Term.SchoolOpened)
	assert.Equal(t, 115, record.Term.TimesPresent)
	assert.Equal(t, 5, record.Term.TimesAbsent)
	assert.Equal(t, "Hard working", record.Term.TeacherComment)
	assert.Equal(t, "Keep it up", record.Term.HeadComment)
	assert.Equal(t, "A", record.Term.Effort)
	assert.Equal(t, "B", record.Term.Behaviour)
	assert.Equal(t, "120", record.Raw.String("", "sch_opened"))
}

func TestIngestPreservesFirstSeenOrder(t *testing.T) {
	rows := []models.RawRow{
		{"names": "Charlie", "mathematics_total_score": 50.0},
		{"names": "Alice", "mathematics_total_score": 60.0},
		{"names": "Bob", "mathematics_total_score": 70.0},
		{"names": "Alice", "english_language_total_score": 80.0},
	}
	result := Ingest(rows, defaultSchema(t), nil, nil)

	records := result.Store.All()
	require.Len(t, records, 3)
	assert.Equal(t, "Charlie", records[0].DisplayName)
	assert.Equal(t, "Alice", records[1].DisplayName)
	assert.Equal(t, "Bob", records[2].DisplayName)
}
