package ingest

import "strings"

// headerFragments are the substrings that mark a column as subject-related.
// Scanning is advisory: the result is merged with DetectSubjects into the
// "detected subjects" report shown to the operator.
var headerFragments = []string{
	"total_score",
	"_ca",
	"exam",
	"grade",
	"position",
	"css_average",
	"remark",
	"_visible",
	"mathematics",
	"english",
	"science",
	"french",
	"civic",
	"social",
	"studies",
}

// ScanHeaders returns the headers containing any known subject-field
// fragment. Empty input yields an empty slice.
func ScanHeaders(headers []string) []string {
	matched := make([]string, 0, len(headers))
	for _, header := range headers {
		lower := strings.ToLower(header)
		for _, fragment := range headerFragments {
			if strings.Contains(lower, fragment) {
				matched = append(matched, header)
				break
			}
		}
	}
	return matched
}

// DetectSubjects reports which of the grade level's subjects appear to be
// present in the headers, in schema order. A subject matches when any of its
// candidate names (case-insensitive substring, underscore-stripped variant
// included) occurs in any header. This is heuristic discovery independent of
// persisted configuration: it reports what could be configured, not what is.
func DetectSubjects(headers []string, gradeLevel string) []string {
	schema, _ := GetSchema(gradeLevel)
	lowered := make([]string, len(headers))
	for i, header := range headers {
		lowered[i] = strings.ToLower(header)
	}
	detected := make([]string, 0, len(schema.Entries))
	for _, entry := range schema.Entries {
		if subjectInHeaders(entry.CandidateNames, lowered) {
			detected = append(detected, entry.CandidateNames[0])
		}
	}
	return detected
}

func subjectInHeaders(candidates []string, loweredHeaders []string) bool {
	for _, candidate := range candidates {
		fragment := strings.ToLower(candidate)
		underscored := strings.ReplaceAll(fragment, " ", "_")
		for _, header := range loweredHeaders {
			if strings.Contains(header, fragment) || strings.Contains(header, underscored) {
				return true
			}
			if stripped := strings.ReplaceAll(header, "_", " "); strings.Contains(stripped, fragment) {
				return true
			}
		}
	}
	return false
}
