package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSubjects = []string{"CS", "CSE", "MATH", "PHYS"}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ParsedQuery
	}{
		{
			name: "single code with suffix",
			raw:  "CS 106A",
			expected: ParsedQuery{
				Codes: []CourseCode{{Subject: "CS", Number: 106, Suffix: "A"}},
			},
		},
		{
			name: "code without space or suffix case-insensitive",
			raw:  "cs106a",
			expected: ParsedQuery{
				Codes: []CourseCode{{Subject: "CS", Number: 106, Suffix: "A"}},
			},
		},
		{
			name: "longer subject wins over its prefix",
			raw:  "CSE 8A",
			expected: ParsedQuery{
				Codes: []CourseCode{{Subject: "CSE", Number: 8, Suffix: "A"}},
			},
		},
		{
			name: "bare subject mention",
			raw:  "MATH",
			expected: ParsedQuery{
				Subjects: []string{"MATH"},
			},
		},
		{
			name: "bare subjects deduplicated",
			raw:  "cs CS",
			expected: ParsedQuery{
				Subjects: []string{"CS"},
			},
		},
		{
			name: "code plus bare subject plus text",
			raw:  "MATH 51 cs linear algebra",
			expected: ParsedQuery{
				Codes:     []CourseCode{{Subject: "MATH", Number: 51}},
				Subjects:  []string{"CS"},
				Remaining: "linear algebra",
			},
		},
		{
			name: "free text only",
			raw:  "intro to programming",
			expected: ParsedQuery{
				Remaining: "intro to programming",
			},
		},
		{
			name: "embedded subject is not a match",
			raw:  "PHYSICS",
			expected: ParsedQuery{
				Remaining: "PHYSICS",
			},
		},
		{
			name: "code followed by instructor text",
			raw:  "CS 106A sahami",
			expected: ParsedQuery{
				Codes:     []CourseCode{{Subject: "CS", Number: 106, Suffix: "A"}},
				Remaining: "sahami",
			},
		},
		{
			name:     "whitespace collapses",
			raw:      "  data   structures  ",
			expected: ParsedQuery{Remaining: "data structures"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseQuery(tc.raw, testSubjects)
			assert.Equal(t, tc.expected.Codes, got.Codes)
			assert.Equal(t, tc.expected.Subjects, got.Subjects)
			assert.Equal(t, tc.expected.Remaining, got.Remaining)
		})
	}
}

func TestParseQueryEmpty(t *testing.T) {
	assert.True(t, ParseQuery("", testSubjects).IsEmpty())
	assert.True(t, ParseQuery("   ", testSubjects).IsEmpty())
	assert.False(t, ParseQuery("CS", testSubjects).IsEmpty())
}

func TestParseQueryNoSubjects(t *testing.T) {
	// Without known subjects nothing structured can be recognized.
	got := ParseQuery("CS 106A", nil)
	assert.Empty(t, got.Codes)
	assert.Empty(t, got.Subjects)
	assert.Equal(t, "CS 106A", got.Remaining)
}
