package bm25

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold strips accents and replaces punctuation and symbols with spaces.
var fold = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}),
	norm.NFC,
)

// Tokenize strips punctuation and accents, lower-cases, splits on
// whitespace and stems each token.
func Tokenize(text string) []string {
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}
	fields := strings.Fields(strings.ToLower(folded))
	out := fields[:0]
	for _, f := range fields {
		if s := Stem(f); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Stem returns the Porter2 stem of an English word. Stop words are kept
// as they are so that short queries still match on them.
func Stem(word string) string {
	return english.Stem(word, false)
}
