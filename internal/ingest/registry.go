package ingest

import (
	"strings"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

// The registry is deliberately data, not code: adding a grade level is a new
// table entry. Entry order fixes the subject order in every student record
// produced under that schema.

var juniorEntries = []models.SubjectSchemaEntry{
	{Key: "mathematics", CandidateNames: []string{"Mathematics", "Maths"}},
	{Key: "english_language", CandidateNames: []string{"English Language", "English"}},
	{Key: "basic_science", CandidateNames: []string{"Basic Science", "Integrated Science"}},
	{Key: "basic_technology", CandidateNames: []string{"Basic Technology", "Intro Tech"}},
	{Key: "social_studies", CandidateNames: []string{"Social Studies"}},
	{Key: "civic_education", CandidateNames: []string{"Civic Education", "Civics"}},
	{Key: "business_studies", CandidateNames: []string{"Business Studies"}},
	{Key: "computer_studies", CandidateNames: []string{"Computer Studies", "ICT"}},
	{Key: "physical_health_education", CandidateNames: []string{"Physical and Health Education", "PHE"}},
	{Key: "agricultural_science", CandidateNames: []string{"Agricultural Science", "Agric"}},
	{Key: "french", CandidateNames: []string{"French"}, Optional: true},
	{Key: "creative_arts", CandidateNames: []string{"Creative Arts", "Cultural and Creative Arts"}, Optional: true},
	{Key: "home_economics", CandidateNames: []string{"Home Economics"}, Optional: true},
	{Key: "music", CandidateNames: []string{"Music"}, Optional: true},
	{Key: "christian_religious_studies", CandidateNames: []string{"Christian Religious Studies", "CRS"}, Optional: true},
	{Key: "islamic_religious_studies", CandidateNames: []string{"Islamic Religious Studies", "IRS"}, Optional: true},
}

var seniorEntries = []models.SubjectSchemaEntry{
	{Key: "mathematics", CandidateNames: []string{"Mathematics", "General Mathematics"}},
	{Key: "english_language", CandidateNames: []string{"English Language", "English"}},
	{Key: "civic_education", CandidateNames: []string{"Civic Education", "Civics"}},
	{Key: "biology", CandidateNames: []string{"Biology"}},
	{Key: "economics", CandidateNames: []string{"Economics"}},
	{Key: "physics", CandidateNames: []string{"Physics"}, Optional: true},
	{Key: "chemistry", CandidateNames: []string{"Chemistry"}, Optional: true},
	{Key: "further_mathematics", CandidateNames: []string{"Further Mathematics", "Further Maths"}, Optional: true},
	{Key: "literature_in_english", CandidateNames: []string{"Literature in English", "Literature"}, Optional: true},
	{Key: "government", CandidateNames: []string{"Government"}, Optional: true},
	{Key: "geography", CandidateNames: []string{"Geography"}, Optional: true},
	{Key: "accounting", CandidateNames: []string{"Financial Accounting", "Accounting"}, Optional: true},
	{Key: "commerce", CandidateNames: []string{"Commerce"}, Optional: true},
	{Key: "agricultural_science", CandidateNames: []string{"Agricultural Science", "Agric"}, Optional: true},
	{Key: "technical_drawing", CandidateNames: []string{"Technical Drawing"}, Optional: true},
	{Key: "french", CandidateNames: []string{"French"}, Optional: true},
	{Key: "christian_religious_studies", CandidateNames: []string{"Christian Religious Studies", "CRS"}, Optional: true},
	{Key: "islamic_religious_studies", CandidateNames: []string{"Islamic Religious Studies", "IRS"}, Optional: true},
}

// defaultEntries covers exports whose class label matches no configured
// bucket. It is a superset chosen so common subjects still resolve.
var defaultEntries = []models.SubjectSchemaEntry{
	{Key: "mathematics", CandidateNames: []string{"Mathematics", "Maths"}},
	{Key: "english_language", CandidateNames: []string{"English Language", "English"}},
	{Key: "basic_science", CandidateNames: []string{"Basic Science", "Integrated Science"}},
	{Key: "social_studies", CandidateNames: []string{"Social Studies"}},
	{Key: "civic_education", CandidateNames: []string{"Civic Education", "Civics"}},
	{Key: "computer_studies", CandidateNames: []string{"Computer Studies", "ICT"}},
	{Key: "agricultural_science", CandidateNames: []string{"Agricultural Science", "Agric"}},
	{Key: "french", CandidateNames: []string{"French"}, Optional: true},
	{Key: "creative_arts", CandidateNames: []string{"Creative Arts"}, Optional: true},
	{Key: "home_economics", CandidateNames: []string{"Home Economics"}, Optional: true},
	{Key: "christian_religious_studies", CandidateNames: []string{"Christian Religious Studies", "CRS"}, Optional: true},
	{Key: "islamic_religious_studies", CandidateNames: []string{"Islamic Religious Studies", "IRS"}, Optional: true},
}

var gradeSchemas = map[string][]models.SubjectSchemaEntry{
	"JSS 1": juniorEntries,
	"JSS 2": juniorEntries,
	"JSS 3": juniorEntries,
	"SSS 1": seniorEntries,
	"SSS 2": seniorEntries,
	"SSS 3": seniorEntries,
}

// knownPrefixes must stay in sync with the gradeSchemas keys: BaseGradeLevel
// normalizes class labels against these before lookup.
var knownPrefixes = []string{"JSS", "SSS", "JS", "SS", "GRADE", "YEAR", "PRIMARY", "BASIC"}

// GetSchema returns the subject table for a grade level. Unrecognized levels
// fall back to the default schema rather than erroring; known reports whether
// the level matched a configured bucket.
func GetSchema(gradeLevel string) (schema models.GradeSchema, known bool) {
	if entries, ok := gradeSchemas[gradeLevel]; ok {
		return models.GradeSchema{GradeLevel: gradeLevel, Entries: entries}, true
	}
	return models.GradeSchema{GradeLevel: gradeLevel, Entries: defaultEntries}, false
}

// BaseGradeLevel strips division suffixes from a class label ("JSS 2A",
// "JSS 2 B", "Grade 7 A") and yields the base grade key used for schema and
// configuration lookup. Labels with no known prefix pass through trimmed.
func BaseGradeLevel(className string) string {
	trimmed := strings.TrimSpace(className)
	upper := strings.ToUpper(trimmed)
	for _, prefix := range knownPrefixes {
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		rest := upper[len(prefix):]
		rest = strings.TrimLeft(rest, " -_")
		digits := leadingDigits(rest)
		if digits == "" {
			continue
		}
		return canonicalPrefix(prefix) + " " + digits
	}
	return trimmed
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

func canonicalPrefix(prefix string) string {
	switch prefix {
	case "JSS", "JS":
		return "JSS"
	case "SSS", "SS":
		return "SSS"
	case "GRADE":
		return "Grade"
	case "YEAR":
		return "Year"
	case "PRIMARY":
		return "Primary"
	case "BASIC":
		return "Basic"
	}
	return prefix
}
