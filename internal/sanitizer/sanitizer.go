// Package sanitizer removes prompt-injection markers from ingested text.
//
// Sanitisation is line oriented and runs once per document before chunking,
// so every stored chunk, and therefore every prompt built from chunks, is
// free of lines that look like embedded chat roles or override instructions.
package sanitizer

import "strings"

// markers are matched against the trimmed, lower-cased start of each line.
var markers = []string{
	"system:",
	"assistant:",
	"user:",
	"ignore",
	"do not follow",
	"disregard",
	"forget previous",
	"new instructions",
}

// IsInjection reports whether a single line carries an injection marker.
func IsInjection(line string) bool {
	l := strings.ToLower(strings.TrimSpace(line))
	for _, m := range markers {
		if strings.HasPrefix(l, m) {
			return true
		}
	}
	return false
}

// Sanitize drops every line that carries an injection marker.
// Remaining lines are kept unchanged and in order.
func Sanitize(text string) string {
	out, _ := sanitize(text)
	return out
}

// SanitizeCount is Sanitize that also reports how many lines were dropped.
func SanitizeCount(text string) (string, int) {
	return sanitize(text)
}

func sanitize(text string) (string, int) {
	if text == "" {
		return "", 0
	}
	lines := splitLines(text)
	kept := lines[:0]
	dropped := 0
	for _, l := range lines {
		if IsInjection(l) {
			dropped++
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n"), dropped
}

// splitLines splits on \n, \r\n and \r without keeping terminators.
// A trailing terminator does not produce an empty final line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
