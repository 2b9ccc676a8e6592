package alphabet

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
)

// A letter is internally represented by a small integer index into its
// alphabet; 'a' is 0, 'b' is 1, and so on for the English alphabet.
// The solver's letter domains and word candidates operate on these
// indices rather than on runes; the dictionary stores plain strings
// and a returned Cipher holds runes.
const (
	// MaxAlphabetSize must stay below 64 so that a LetterSet fits in a
	// 64-bit integer.
	MaxAlphabetSize = 62
)

// MachineLetter is the machine-only representation of a letter.
type MachineLetter uint8

// MachineWord is a word in machine representation.
type MachineWord []MachineLetter

// An Alphabet maps user-visible runes (like 'q') to their
// MachineLetter counterparts and back. It is immutable after
// construction and safe to share across concurrent solves.
type Alphabet struct {
	vals    map[rune]MachineLetter
	letters []rune
}

var ErrLetterNotFound = errors.New("letter not in alphabet")

// New builds an alphabet from the given runes. The runes are folded to
// lowercase, deduplicated, and sorted, so the machine ordering is
// stable regardless of input order.
func New(runes []rune) (*Alphabet, error) {
	seen := map[rune]bool{}
	letters := []rune{}
	for _, r := range runes {
		r = unicode.ToLower(r)
		if !seen[r] {
			seen[r] = true
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return nil, errors.New("empty alphabet")
	}
	if len(letters) > MaxAlphabetSize {
		return nil, fmt.Errorf("alphabet too large (%d > %d)", len(letters), MaxAlphabetSize)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	vals := make(map[rune]MachineLetter, len(letters))
	for idx, r := range letters {
		vals[r] = MachineLetter(idx)
	}
	return &Alphabet{vals: vals, letters: letters}, nil
}

// English returns the standard a-z alphabet.
func English() *Alphabet {
	runes := make([]rune, 26)
	for i := 0; i < 26; i++ {
		runes[i] = rune('a' + i)
	}
	a, err := New(runes)
	if err != nil {
		panic(err)
	}
	return a
}

// NumLetters returns the number of letters in this alphabet.
func (a *Alphabet) NumLetters() int {
	return len(a.letters)
}

// Val returns the machine value of a rune, folding case. It returns
// ErrLetterNotFound for runes outside the alphabet.
func (a *Alphabet) Val(r rune) (MachineLetter, error) {
	ml, ok := a.vals[unicode.ToLower(r)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrLetterNotFound, r)
	}
	return ml, nil
}

// Contains reports whether the rune, folded to lowercase, is an
// alphabet letter.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.vals[unicode.ToLower(r)]
	return ok
}

// Letter returns the rune for a machine letter.
func (a *Alphabet) Letter(ml MachineLetter) rune {
	return a.letters[ml]
}

// Letters returns the alphabet's runes in machine order. The caller
// must not modify the returned slice.
func (a *Alphabet) Letters() []rune {
	return a.letters
}

// ToMachineWord converts a string to machine representation. Every
// rune must be an alphabet letter.
func (a *Alphabet) ToMachineWord(word string) (MachineWord, error) {
	mw := make(MachineWord, 0, len(word))
	for _, r := range word {
		ml, err := a.Val(r)
		if err != nil {
			return nil, err
		}
		mw = append(mw, ml)
	}
	return mw, nil
}

// UserVisible converts a machine word back to a string.
func (mw MachineWord) UserVisible(a *Alphabet) string {
	runes := make([]rune, len(mw))
	for i, ml := range mw {
		runes[i] = a.Letter(ml)
	}
	return string(runes)
}
