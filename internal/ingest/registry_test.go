package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseGradeLevel(t *testing.T) {
	cases := []struct {
		className string
		want      string
	}{
		{"JSS 2", "JSS 2"},
		{"JSS 2A", "JSS 2"},
		{"JSS 2 B", "JSS 2"},
		{"jss 3a", "JSS 3"},
		{"SSS 1 Science", "SSS 1"},
		{"SS 2", "SSS 2"},
		{"Grade 7 A", "Grade 7"},
		{"Year 9B", "Year 9"},
		{"  JSS 1 ", "JSS 1"},
		{"Blue Room", "Blue Room"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, BaseGradeLevel(tc.className), "class %q", tc.className)
	}
}

func TestBaseGradeLevelIsStableUnderRepeat(t *testing.T) {
	for _, class := range []string{"JSS 2A", "SSS 3 C", "Grade 7 A"} {
		base := BaseGradeLevel(class)
		assert.Equal(t, base, BaseGradeLevel(base))
	}
}

func TestGetSchemaKnownLevels(t *testing.T) {
	for _, level := range []string{"JSS 1", "JSS 2", "JSS 3", "SSS 1", "SSS 2", "SSS 3"} {
		schema, known := GetSchema(level)
		require.Truef(t, known, "level %q", level)
		assert.Equal(t, level, schema.GradeLevel)
		assert.NotEmpty(t, schema.Entries)
	}
}

func TestGetSchemaFallsBackToDefault(t *testing.T) {
	schema, known := GetSchema("Grade 7")
	assert.False(t, known)
	assert.NotEmpty(t, schema.Entries)
}

func TestSchemaEntriesWellFormed(t *testing.T) {
	levels := []string{"JSS 2", "SSS 1", "anything else"}
	for _, level := range levels {
		schema, _ := GetSchema(level)
		seenKeys := make(map[string]bool)
		seenColumns := make(map[string]bool)
		for _, entry := range schema.Entries {
			require.NotEmpty(t, entry.CandidateNames, "entry %s", entry.Key)
			require.Falsef(t, seenKeys[entry.Key], "duplicate key %s in %s", entry.Key, level)
			seenKeys[entry.Key] = true
			cols := entry.Columns()
			for _, col := range []string{cols.Total, cols.CAOne, cols.CATwo, cols.CAThree, cols.CAFour, cols.Exam, cols.Grade, cols.Position, cols.CSSAverage, cols.Remark, cols.Visible} {
				require.Falsef(t, seenColumns[col], "column collision %s in %s", col, level)
				seenColumns[col] = true
			}
		}
	}
}
