package usecases

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

// coursePatterns are tried in order; the first match wins.
var coursePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Degree\s*/\s*Branch\s*[:\-]\s*(.+)`),
	regexp.MustCompile(`(?i)Degree\s*[:\-]\s*(.+)`),
	regexp.MustCompile(`(?i)Course\s*Name\s*[:\-]\s*(.+)`),
	regexp.MustCompile(`(?i)Course\s*Name\s*(.+)`),
	regexp.MustCompile(`(?i)Degree\s*/\s*Branch\s*(.+)`),
}

const maxHeadingLen = 160

// IsCourseNameQuery reports whether query asks for a course name.
func IsCourseNameQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(q, "course name") ||
		(strings.Contains(q, "what") && strings.Contains(q, "course"))
}

// ExtractCourseName scans evidence in rank order. For each item the labelled
// patterns are tried first, then the first mostly upper-case line of at
// least two words.
func ExtractCourseName(evidence []domain.EvidenceItem) (string, bool) {
	for i := range evidence {
		text := evidence[i].Chunk.Text
		if text == "" {
			continue
		}
		if name, ok := matchPatterns(text); ok {
			return name, true
		}
		if line, ok := upperCaseLine(text); ok {
			return line, true
		}
	}
	return "", false
}

func matchPatterns(text string) (string, bool) {
	for _, re := range coursePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		val := strings.TrimSpace(m[1])
		if j := strings.IndexAny(val, "\r\n"); j >= 0 {
			val = val[:j]
		}
		val = strings.TrimRight(val, " \t\r\n")
		if val != "" {
			return val, true
		}
	}
	return "", false
}

func upperCaseLine(text string) (string, bool) {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || len(strings.Fields(line)) < 2 {
			continue
		}
		var letters, upper int
		for _, r := range line {
			if unicode.IsLetter(r) {
				letters++
				if unicode.IsUpper(r) {
					upper++
				}
			}
		}
		if letters > 0 && float64(upper)/float64(letters) > 0.5 && utf8.RuneCountInString(line) < maxHeadingLen {
			return line, true
		}
	}
	return "", false
}
