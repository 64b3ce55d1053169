package models

import "time"

// SubjectConfig is one operator-approved canonical subject name for a grade
// level. DisplayOrder is assigned max+1 per grade on insert; rows are never
// deleted, only deactivated.
type SubjectConfig struct {
	ID           string    `db:"id" json:"id"`
	GradeLevel   string    `db:"grade_level" json:"grade_level"`
	SubjectName  string    `db:"subject_name" json:"subject_name"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
