package models

// AssessmentTuple is one subject's scored result for one student in one term.
// Total is the authoritative score; the CA components and exam score are
// supplementary. Numeric fields default to 0 and the remark to "" when the
// export leaves them blank.
type AssessmentTuple struct {
	CAOne         float64 `json:"ca_one"`
	CATwo         float64 `json:"ca_two"`
	CAThree       float64 `json:"ca_three"`
	CAFour        float64 `json:"ca_four"`
	Exam          float64 `json:"exam"`
	Total         float64 `json:"total"`
	LetterGrade   string  `json:"letter_grade"`
	Position      int     `json:"position"`
	Remark        string  `json:"remark"`
	CohortAverage float64 `json:"cohort_average"`
}

// SubjectScore pairs a resolved display name with its assessment for one
// logical subject key.
type SubjectScore struct {
	Key         string          `json:"key"`
	DisplayName string          `json:"display_name"`
	Assessment  AssessmentTuple `json:"assessment"`
}

// TermAttributes carries the term-level fields extracted from the first row
// seen for a student. Blank attendance and remark cells take documented
// defaults rather than signalling missingness.
type TermAttributes struct {
	SchoolOpened   int    `json:"school_opened"`
	TimesPresent   int    `json:"times_present"`
	TimesAbsent    int    `json:"times_absent"`
	TeacherComment string `json:"teacher_comment"`
	HeadComment    string `json:"head_comment"`
	Effort         string `json:"effort"`
	Behaviour      string `json:"behaviour"`
}

// StudentRecord is the merged per-student output of one ingestion run.
// Subjects append in row order crossed with schema entry order; a student
// recurring across rows appends again without deduplication. Raw retains the
// first row encountered for secondary field lookups (student id, term name,
// academic year).
type StudentRecord struct {
	DisplayName string         `json:"display_name"`
	Subjects    []SubjectScore `json:"subjects"`
	Term        TermAttributes `json:"term"`
	Raw         RawRow         `json:"-"`
}
