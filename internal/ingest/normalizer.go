package ingest

import (
	"strings"

	"go.uber.org/zap"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

// Column fallback chains for row-level fields. The name chain accepts the
// semantic key or the positional placeholder some exports produce when the
// name column's header cell is blank.
var (
	nameColumns           = []string{"names", "student_name", "__EMPTY_2"}
	schOpenedColumns      = []string{"sch_opened", "no_of_times_sch_opened"}
	timesPresentColumns   = []string{"times_present", "no_of_times_present"}
	timesAbsentColumns    = []string{"times_absent", "no_of_times_absent"}
	teacherCommentColumns = []string{"teacher_comment", "class_teacher_comment"}
	headCommentColumns    = []string{"head_comment", "head_teacher_comment"}
	effortColumns         = []string{"effort"}
	behaviourColumns      = []string{"behaviour", "behavior"}
)

// naScore is the sentinel exports write for an unscored subject.
const naScore = "N/A"

// Stats aggregates recoverable anomalies for one run. Individual numeric
// parse failures are substituted with defaults and only counted here.
type Stats struct {
	RowsTotal         int `json:"rows_total"`
	RowsSkipped       int `json:"rows_skipped"`
	ParseFailures     int `json:"parse_failures"`
	DuplicateSubjects int `json:"duplicate_subjects"`
}

// Result is the output of one ingestion run.
type Result struct {
	Store *RecordStore
	Stats Stats
}

// Ingest folds raw rows into per-student records under the given schema and
// configuration snapshot. Rows are processed strictly in order; rows without
// a usable student name are skipped silently. The configuration snapshot is
// fetched once by the caller, never re-fetched per row.
func Ingest(rows []models.RawRow, schema models.GradeSchema, configs []models.SubjectConfig, logger *zap.Logger) *Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	result := &Result{Store: NewRecordStore()}
	for _, row := range rows {
		result.Stats.RowsTotal++
		name, ok := studentName(row)
		if !ok {
			result.Stats.RowsSkipped++
			continue
		}
		record, exists := result.Store.Get(name)
		if !exists {
			record = newRecord(name, row, &result.Stats)
			result.Store.Put(record)
		}
		appendSubjects(record, row, schema, configs, &result.Stats)
	}
	logger.Debug("ingest complete",
		zap.String("grade_level", schema.GradeLevel),
		zap.Int("students", result.Store.Len()),
		zap.Int("rows_skipped", result.Stats.RowsSkipped),
		zap.Int("parse_failures", result.Stats.ParseFailures),
	)
	return result
}

// studentName extracts the identity key. Only string cells count: blank rows
// and separator rows carry nil or numeric cells here and are expected in
// real exports.
func studentName(row models.RawRow) (string, bool) {
	raw, ok := row.Value(nameColumns...)
	if !ok {
		return "", false
	}
	name, isString := raw.(string)
	name = strings.TrimSpace(name)
	if !isString || name == "" {
		return "", false
	}
	return name, true
}

func newRecord(name string, row models.RawRow, stats *Stats) *models.StudentRecord {
	record := &models.StudentRecord{DisplayName: name, Raw: row}
	var failed bool
	if record.Term.SchoolOpened, failed = row.Int(0, schOpenedColumns...); failed {
		stats.ParseFailures++
	}
	if record.Term.TimesPresent, failed = row.Int(0, timesPresentColumns...); failed {
		stats.ParseFailures++
	}
	if record.Term.TimesAbsent, failed = row.Int(0, timesAbsentColumns...); failed {
		stats.ParseFailures++
	}
	record.Term.TeacherComment = row.String("", teacherCommentColumns...)
	record.Term.HeadComment = row.String("", headCommentColumns...)
	record.Term.Effort = row.String("", effortColumns...)
	record.Term.Behaviour = row.String("", behaviourColumns...)
	return record
}

// appendSubjects evaluates every schema entry against the row. Subjects from
// later rows for the same student append without checking for duplicate
// logical keys; the duplicate count is surfaced in Stats so callers can see
// multi-term exports.
func appendSubjects(record *models.StudentRecord, row models.RawRow, schema models.GradeSchema, configs []models.SubjectConfig, stats *Stats) {
	for _, entry := range schema.Entries {
		cols := entry.Columns()
		if !shouldInclude(row, entry, cols) {
			continue
		}
		tuple := extractAssessment(row, cols, stats)
		score := models.SubjectScore{
			Key:         entry.Key,
			DisplayName: resolveDisplayName(entry, configs),
			Assessment:  tuple,
		}
		if hasSubjectKey(record, entry.Key) {
			stats.DuplicateSubjects++
		}
		record.Subjects = append(record.Subjects, score)
	}
}

// shouldInclude applies the inclusion rule: core subjects need a valid score;
// optional subjects additionally need the visibility flag when the export
// carries a visibility column at all. Exports that omit the column for
// always-shown subjects fall back to the score condition alone.
func shouldInclude(row models.RawRow, entry models.SubjectSchemaEntry, cols models.SubjectColumns) bool {
	valid := hasValidScore(row, cols.Total)
	if !entry.Optional {
		return valid
	}
	if row.Has(cols.Visible) {
		return valid && row.String("", cols.Visible) == "Y"
	}
	return valid
}

func hasValidScore(row models.RawRow, totalColumn string) bool {
	raw, ok := row.Value(totalColumn)
	if !ok || raw == nil {
		return false
	}
	if s, isString := raw.(string); isString {
		trimmed := strings.TrimSpace(s)
		return trimmed != "" && trimmed != naScore
	}
	return true
}

func extractAssessment(row models.RawRow, cols models.SubjectColumns, stats *Stats) models.AssessmentTuple {
	var tuple models.AssessmentTuple
	numeric := []struct {
		dst *float64
		col string
	}{
		{&tuple.CAOne, cols.CAOne},
		{&tuple.CATwo, cols.CATwo},
		{&tuple.CAThree, cols.CAThree},
		{&tuple.CAFour, cols.CAFour},
		{&tuple.Exam, cols.Exam},
		{&tuple.Total, cols.Total},
		{&tuple.CohortAverage, cols.CSSAverage},
	}
	for _, field := range numeric {
		value, failed := row.Float(0, field.col)
		if failed {
			stats.ParseFailures++
		}
		*field.dst = value
	}
	var failed bool
	if tuple.Position, failed = row.Int(0, cols.Position); failed {
		stats.ParseFailures++
	}
	tuple.LetterGrade = row.String("", cols.Grade)
	tuple.Remark = row.String("", cols.Remark)
	return tuple
}

// resolveDisplayName prefers a configured canonical name that fuzzy-matches
// any candidate (case-insensitive substring in either direction), falling
// back to the first candidate verbatim when no configuration matches.
func resolveDisplayName(entry models.SubjectSchemaEntry, configs []models.SubjectConfig) string {
	for _, config := range configs {
		configured := strings.ToLower(strings.TrimSpace(config.SubjectName))
		if configured == "" {
			continue
		}
		for _, candidate := range entry.CandidateNames {
			lower := strings.ToLower(candidate)
			if strings.Contains(lower, configured) || strings.Contains(configured, lower) {
				return config.SubjectName
			}
		}
	}
	return entry.CandidateNames[0]
}

func hasSubjectKey(record *models.StudentRecord, key string) bool {
	for _, subject := range record.Subjects {
		if subject.Key == key {
			return true
		}
	}
	return false
}
