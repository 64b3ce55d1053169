package models

import "time"

// ReportArchive is the metadata row stored alongside each rendered report
// card artifact.
type ReportArchive struct {
	ID          string    `db:"id" json:"id"`
	StudentName string    `db:"student_name" json:"student_name"`
	ClassTag    string    `db:"class_tag" json:"class_tag"`
	GradeTag    string    `db:"grade_tag" json:"grade_tag"`
	FilePath    string    `db:"file_path" json:"file_path"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// ArchiveFilter narrows archive listings.
type ArchiveFilter struct {
	ClassTag string
	GradeTag string
	Page     int
	PageSize int
}
