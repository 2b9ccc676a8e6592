// Package lexicon holds the dictionary index a solve runs against:
// the alphabet, a pattern to words multi-map, and per-word
// frequencies. A Dictionary is immutable once loaded and may be
// shared by reference across concurrent solves.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/liteblogging/cipher-solver/alphabet"
)

type Dictionary struct {
	alph         *alphabet.Alphabet
	patternWords map[Pattern][]string
	freqs        map[string]float64
}

func NewDictionary(alph *alphabet.Alphabet) *Dictionary {
	return &Dictionary{
		alph:         alph,
		patternWords: make(map[Pattern][]string),
		freqs:        make(map[string]float64),
	}
}

// Add inserts a word with its frequency. The word is folded to
// lowercase and must consist only of alphabet letters. Adding a word
// twice keeps the larger frequency. Pattern buckets are kept sorted by
// descending frequency, ties broken lexicographically, so candidate
// iteration order is deterministic and tries likely words first.
func (d *Dictionary) Add(word string, freq float64) error {
	if word == "" {
		return fmt.Errorf("empty word")
	}
	if freq < 0 {
		return fmt.Errorf("negative frequency for %q", word)
	}
	word = strings.ToLower(word)
	for _, r := range word {
		if !d.alph.Contains(r) {
			return fmt.Errorf("word %q: %w", word, alphabet.ErrLetterNotFound)
		}
	}

	if old, ok := d.freqs[word]; ok {
		if freq > old {
			d.freqs[word] = freq
			d.resort(PatternOf(word))
		}
		return nil
	}
	d.freqs[word] = freq

	p := PatternOf(word)
	d.patternWords[p] = append(d.patternWords[p], word)
	d.resort(p)
	return nil
}

func (d *Dictionary) resort(p Pattern) {
	bucket := d.patternWords[p]
	sort.Slice(bucket, func(i, j int) bool {
		fi, fj := d.freqs[bucket[i]], d.freqs[bucket[j]]
		if fi != fj {
			return fi > fj
		}
		return bucket[i] < bucket[j]
	})
}

func (d *Dictionary) Alphabet() *alphabet.Alphabet {
	return d.alph
}

// WordsForPattern returns the dictionary words sharing the pattern, in
// descending frequency order. The caller must not modify the returned
// slice.
func (d *Dictionary) WordsForPattern(p Pattern) []string {
	return d.patternWords[p]
}

// Frequency returns the word's frequency, or 0 if absent.
func (d *Dictionary) Frequency(word string) float64 {
	return d.freqs[word]
}

func (d *Dictionary) HasWord(word string) bool {
	_, ok := d.freqs[word]
	return ok
}

func (d *Dictionary) NumWords() int {
	return len(d.freqs)
}

// Load reads a word-frequency list, one "word frequency" pair per
// line. Blank lines and lines starting with '#' are skipped; malformed
// lines are logged and skipped rather than aborting the load.
func Load(r io.Reader, alph *alphabet.Alphabet) (*Dictionary, error) {
	d := NewDictionary(alph)
	s := bufio.NewScanner(r)
	lno := 0
	for s.Scan() {
		lno++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			log.Warn().Int("line", lno).Msg("skipping malformed dictionary line")
			continue
		}
		freq, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			log.Warn().Int("line", lno).Str("freq", fields[1]).Msg("skipping bad frequency")
			continue
		}
		if err := d.Add(fields[0], freq); err != nil {
			log.Warn().Int("line", lno).Err(err).Msg("skipping word")
			continue
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	log.Debug().Int("words", d.NumWords()).Msg("dictionary loaded")
	return d, nil
}

// LoadFile reads a word-frequency list from a file.
func LoadFile(path string, alph *alphabet.Alphabet) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, alph)
}
