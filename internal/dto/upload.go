package dto

// UploadSummary is returned after a result spreadsheet has been normalized.
type UploadSummary struct {
	ClassName            string   `json:"class_name"`
	GradeLevel           string   `json:"grade_level"`
	KnownGrade           bool     `json:"known_grade"`
	Students             int      `json:"students"`
	RowsTotal            int      `json:"rows_total"`
	RowsSkipped          int      `json:"rows_skipped"`
	ParseFailures        int      `json:"parse_failures"`
	DuplicateSubjects    int      `json:"duplicate_subjects"`
	DetectedSubjects     []string `json:"detected_subjects"`
	UnconfiguredSubjects []string `json:"unconfigured_subjects"`
	ConfigStoreDegraded  bool     `json:"config_store_degraded"`
	ReportsQueued        int      `json:"reports_queued"`
	Warnings             []string `json:"warnings,omitempty"`
}
