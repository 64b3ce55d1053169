package models

// SubjectSchemaEntry declares one subject inside a grade-level schema. Key is
// the logical identifier the export derives its column family from
// ("mathematics" -> "mathematics_total_score" and friends). Optional subjects
// are included only when the row marks them visible; core subjects are
// included whenever they carry a valid score.
type SubjectSchemaEntry struct {
	Key            string
	CandidateNames []string
	Optional       bool
}

// SubjectColumns is the derived column family for one schema entry.
type SubjectColumns struct {
	Total      string
	CAOne      string
	CATwo      string
	CAThree    string
	CAFour     string
	Exam       string
	Grade      string
	Position   string
	CSSAverage string
	Remark     string
	Visible    string
}

// Columns derives the spreadsheet column names for this entry's key.
func (e SubjectSchemaEntry) Columns() SubjectColumns {
	return SubjectColumns{
		Total:      e.Key + "_total_score",
		CAOne:      e.Key + "_ca_one",
		CATwo:      e.Key + "_ca_two",
		CAThree:    e.Key + "_ca_three",
		CAFour:     e.Key + "_ca_four",
		Exam:       e.Key + "_exam",
		Grade:      e.Key + "_grade",
		Position:   e.Key + "_position",
		CSSAverage: e.Key + "_css_average",
		Remark:     e.Key + "_remark",
		Visible:    e.Key + "_visible",
	}
}

// GradeSchema is the active subject table for one ingestion run. Entry order
// is significant: it fixes the per-student subject order in the output.
type GradeSchema struct {
	GradeLevel string
	Entries    []SubjectSchemaEntry
}
