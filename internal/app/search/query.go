package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CourseCode is a structured course-code mention parsed from free text,
// e.g. "CS 106A" becomes {CS, 106, A}.
type CourseCode struct {
	Subject string
	Number  int
	Suffix  string // empty when the query gave no suffix
}

// ParsedQuery is the result of splitting raw query text into structured
// course-code mentions, bare subject mentions, and leftover free text.
type ParsedQuery struct {
	Codes     []CourseCode
	Subjects  []string // bare subject mentions with no trailing number, deduplicated
	Remaining string   // leftover free text with whitespace collapsed
}

// IsEmpty reports whether the query carried no usable text at all.
func (p ParsedQuery) IsEmpty() bool {
	return len(p.Codes) == 0 && len(p.Subjects) == 0 && p.Remaining == ""
}

// ParseQuery splits raw free text against the list of known subject codes.
// Subjects are tried longest-first so "CSE 8A" parses as a CSE code instead of
// a CS match followed by garbage. Matched spans are cut out right-to-left,
// then a lighter pass collects bare subject mentions from the remainder.
// Pure function over its two inputs.
func ParseQuery(raw string, subjects []string) ParsedQuery {
	text := strings.TrimSpace(raw)
	parsed := ParsedQuery{}
	if text == "" {
		return parsed
	}

	if len(subjects) > 0 {
		alternatives := subjectAlternatives(subjects)

		codeRe := regexp.MustCompile(`(?i)(` + alternatives + `) ?([0-9]+)([a-z0-9-]{1,5})?`)
		var spans [][2]int
		for _, m := range codeRe.FindAllStringSubmatchIndex(text, -1) {
			if !boundedBySpace(text, m[0], m[1]) {
				continue
			}
			number, err := strconv.Atoi(text[m[4]:m[5]])
			if err != nil {
				continue
			}
			code := CourseCode{
				Subject: strings.ToUpper(text[m[2]:m[3]]),
				Number:  number,
			}
			if m[6] >= 0 {
				code.Suffix = strings.ToUpper(text[m[6]:m[7]])
			}
			parsed.Codes = append(parsed.Codes, code)
			spans = append(spans, [2]int{m[0], m[1]})
		}
		text = removeSpans(text, spans)

		bareRe := regexp.MustCompile(`(?i)(` + alternatives + `)`)
		seen := make(map[string]struct{})
		spans = spans[:0]
		for _, m := range bareRe.FindAllStringSubmatchIndex(text, -1) {
			if !boundedBySpace(text, m[0], m[1]) {
				continue
			}
			subject := strings.ToUpper(text[m[0]:m[1]])
			if _, dup := seen[subject]; !dup {
				seen[subject] = struct{}{}
				parsed.Subjects = append(parsed.Subjects, subject)
			}
			spans = append(spans, [2]int{m[0], m[1]})
		}
		text = removeSpans(text, spans)
	}

	parsed.Remaining = strings.Join(strings.Fields(text), " ")
	return parsed
}

// subjectAlternatives builds the alternation body of the subject regex,
// longest code first so the regex engine prefers "CSE" over "CS".
func subjectAlternatives(subjects []string) string {
	ordered := make([]string, len(subjects))
	copy(ordered, subjects)
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	quoted := make([]string, len(ordered))
	for i, s := range ordered {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}

// boundedBySpace reports whether the [start,end) span is delimited by
// whitespace or string edges on both sides.
func boundedBySpace(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if !unicode.IsSpace(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// removeSpans cuts the given spans out of text, right-to-left so earlier
// indices stay valid. A single space replaces each span to keep the
// surrounding words separated.
func removeSpans(text string, spans [][2]int) string {
	for i := len(spans) - 1; i >= 0; i-- {
		text = text[:spans[i][0]] + " " + text[spans[i][1]:]
	}
	return text
}
