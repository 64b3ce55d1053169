package ingest

import "github.com/schoolsuite/reportcard-api/internal/models"

// Derived cohort metrics are recomputed on demand by renderers, never cached
// on the record, so a record mutated mid-run can not serve stale values.

// CumulativeScore sums subject totals greater than zero.
func CumulativeScore(record *models.StudentRecord) float64 {
	var sum float64
	for _, subject := range record.Subjects {
		if subject.Assessment.Total > 0 {
			sum += subject.Assessment.Total
		}
	}
	return sum
}

// StudentsAverage divides the cumulative score by the count of scored
// subjects, returning 0 for a student with none.
func StudentsAverage(record *models.StudentRecord) float64 {
	count := 0
	for _, subject := range record.Subjects {
		if subject.Assessment.Total > 0 {
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return CumulativeScore(record) / float64(count)
}

// LetterGrade bands a percentage score. Total over all real inputs; anything
// below 40, including negatives, lands on F9.
func LetterGrade(score float64) string {
	switch {
	case score >= 91:
		return "A1"
	case score >= 81:
		return "B2"
	case score >= 71:
		return "B3"
	case score >= 65:
		return "C4"
	case score >= 60:
		return "C5"
	case score >= 50:
		return "C6"
	case score >= 45:
		return "D7"
	case score >= 40:
		return "E8"
	default:
		return "F9"
	}
}
