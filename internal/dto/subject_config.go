package dto

// CreateSubjectConfigRequest adds a canonical subject name to a grade level.
type CreateSubjectConfigRequest struct {
	GradeLevel  string `json:"grade_level" validate:"required,min=2"`
	SubjectName string `json:"subject_name" validate:"required,min=2"`
}

// DetectSubjectsRequest asks which subjects a spreadsheet's headers carry.
type DetectSubjectsRequest struct {
	ClassName string   `json:"class_name" validate:"required"`
	Headers   []string `json:"headers" validate:"required,min=1"`
}

// DetectedSubject is one subject found in uploaded headers.
type DetectedSubject struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// DetectSubjectsResponse reports header detection results for a class label.
type DetectSubjectsResponse struct {
	ClassName    string            `json:"class_name"`
	GradeLevel   string            `json:"grade_level"`
	KnownGrade   bool              `json:"known_grade"`
	Subjects     []DetectedSubject `json:"subjects"`
	ScoreColumns []string          `json:"score_columns"`
}
