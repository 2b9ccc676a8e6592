package lexicon

import (
	"strings"
	"unicode"

	"github.com/liteblogging/cipher-solver/alphabet"
)

// Tokenize splits text into maximal runs of alphabet letters, folded
// to lowercase. Every run is returned, in order of appearance,
// including repeats. All other characters act as separators.
func Tokenize(text string, alph *alphabet.Alphabet) []string {
	words := []string{}
	var cur strings.Builder
	for _, r := range text {
		if alph.Contains(r) {
			cur.WriteRune(unicode.ToLower(r))
			continue
		}
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

// ParseWords returns the distinct words of the text, in order of first
// appearance. The order is deterministic so that downstream search is
// reproducible.
func ParseWords(text string, alph *alphabet.Alphabet) []string {
	seen := map[string]bool{}
	words := []string{}
	for _, w := range Tokenize(text, alph) {
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}
