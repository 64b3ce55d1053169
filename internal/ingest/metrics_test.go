package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

func recordWithTotals(totals ...float64) *models.StudentRecord {
	record := &models.StudentRecord{DisplayName: "Test Student"}
	for _, total := range totals {
		record.Subjects = append(record.Subjects, models.SubjectScore{
			Key:        "subject",
			Assessment: models.AssessmentTuple{Total: total},
		})
	}
	return record
}

func TestCumulativeScoreSkipsUnscored(t *testing.T) {
	record := recordWithTotals(90, 0, 70)
	assert.Equal(t, 160.0, CumulativeScore(record))
}

func TestStudentsAverageCountsScoredOnly(t *testing.T) {
	record := recordWithTotals(90, 0, 70)
	assert.Equal(t, 80.0, StudentsAverage(record))
}

func TestStudentsAverageZeroSubjects(t *testing.T) {
	assert.Zero(t, StudentsAverage(recordWithTotals()))
	assert.Zero(t, StudentsAverage(recordWithTotals(0, 0)))
}

func TestLetterGradeBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A1"}, {91, "A1"},
		{90.9, "B2"}, {81, "B2"},
		{80.5, "B3"}, {71, "B3"},
		{70, "C4"}, {65, "C4"},
		{64, "C5"}, {60, "C5"},
		{59.9, "C6"}, {50, "C6"},
		{49, "D7"}, {45, "D7"},
		{44, "E8"}, {40, "E8"},
		{39.9, "F9"}, {0, "F9"},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, LetterGrade(tc.score), "score %v", tc.score)
	}
}

func TestLetterGradeTotalOverAllReals(t *testing.T) {
	valid := map[string]bool{
		"A1": true, "B2": true, "B3": true, "C4": true, "C5": true,
		"C6": true, "D7": true, "E8": true, "F9": true,
	}
	for _, score := range []float64{-1000, -0.5, 0, 39.999, 40, 99.9, 100, 150, 1e9} {
		assert.Truef(t, valid[LetterGrade(score)], "score %v", score)
	}
	assert.Equal(t, "F9", LetterGrade(-42))
	assert.Equal(t, "A1", LetterGrade(250))
}
