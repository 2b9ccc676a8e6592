package solver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"

	"github.com/liteblogging/cipher-solver/alphabet"
	"github.com/liteblogging/cipher-solver/lexicon"
)

// Mapping is one cipher entry: ciphertext letter From decodes to
// plaintext letter To.
type Mapping struct {
	From rune
	To   rune
}

// Cipher is a complete substitution key, ordered by ciphertext letter
// ascending.
type Cipher []Mapping

func (c Cipher) String() string {
	parts := lo.Map(c, func(m Mapping, _ int) string {
		return fmt.Sprintf("%c=%c", m.From, m.To)
	})
	return strings.Join(parts, " ")
}

// Solution is one decoding of the ciphertext.
type Solution struct {
	Plaintext     string
	Cipher        Cipher
	MeanFrequency float64
}

// errNotInjective marks a fully determined node whose letter mapping
// reuses a plaintext letter for two ciphertext letters. Such a node
// survives domain pruning (the shared letter stays inside both
// domains) but is not a substitution cipher, so the branch is simply
// abandoned.
var errNotInjective = errors.New("mapping not injective")

const unmapped = -1

// assemble turns a fully determined WC into a Solution. A conflicting
// mapping for a single ciphertext letter cannot survive pruning, so
// hitting one is reported as an internal error.
func (st *solveState) assemble(wc wordCandidates) (Solution, error) {
	n := st.alph.NumLetters()
	key := make([]int16, n)
	for i := range key {
		key[i] = unmapped
	}

	for i, cands := range wc {
		cand := cands[0]
		cw := st.words[i].letters
		if len(cand) != len(cw) {
			return Solution{}, fmt.Errorf("%w: zipping %q against a candidate of length %d",
				ErrInternal, st.words[i].text, len(cand))
		}
		for pos, cl := range cw {
			pl := int16(cand[pos])
			if key[cl] == unmapped {
				key[cl] = pl
			} else if key[cl] != pl {
				return Solution{}, fmt.Errorf("%w: letter %q mapped to both %q and %q",
					ErrInternal, st.alph.Letter(cl),
					st.alph.Letter(alphabet.MachineLetter(key[cl])), st.alph.Letter(alphabet.MachineLetter(pl)))
			}
		}
	}

	var used alphabet.LetterSet
	injective := true
	st.present.Each(func(ml alphabet.MachineLetter) {
		pl := alphabet.MachineLetter(key[ml])
		if used.Has(pl) {
			injective = false
		}
		used = used.Add(pl)
	})
	if !injective {
		return Solution{}, errNotInjective
	}

	var sb strings.Builder
	for _, r := range st.ciphertext {
		if st.alph.Contains(r) {
			ml, _ := st.alph.Val(r)
			sb.WriteRune(st.alph.Letter(alphabet.MachineLetter(key[ml])))
		} else {
			sb.WriteRune(r)
		}
	}
	plaintext := sb.String()

	cipher := make(Cipher, 0, st.present.Count())
	st.present.Each(func(ml alphabet.MachineLetter) {
		cipher = append(cipher, Mapping{
			From: st.alph.Letter(ml),
			To:   st.alph.Letter(alphabet.MachineLetter(key[ml])),
		})
	})

	return Solution{
		Plaintext:     plaintext,
		Cipher:        cipher,
		MeanFrequency: st.meanFrequency(plaintext),
	}, nil
}

// meanFrequency averages the dictionary frequency over every word of
// the plaintext, counting repeats; absent words count as zero.
func (st *solveState) meanFrequency(plaintext string) float64 {
	words := lexicon.Tokenize(plaintext, st.alph)
	if len(words) == 0 {
		return 0
	}
	total := lo.SumBy(words, func(w string) float64 {
		return st.dict.Frequency(w)
	})
	return total / float64(len(words))
}

// solutionSet accumulates solutions in discovery order, deduplicated
// by plaintext.
type solutionSet struct {
	solutions []Solution
	seen      map[uint64]bool
}

func newSolutionSet() *solutionSet {
	return &solutionSet{seen: map[uint64]bool{}}
}

// add records the solution unless its plaintext was already found.
func (ss *solutionSet) add(sol Solution) bool {
	h := xxhash.Sum64String(sol.Plaintext)
	if ss.seen[h] {
		return false
	}
	ss.seen[h] = true
	ss.solutions = append(ss.solutions, sol)
	return true
}

func (ss *solutionSet) size() int {
	return len(ss.solutions)
}

// ranked returns the solutions sorted by descending mean frequency,
// ties keeping discovery order.
func (ss *solutionSet) ranked() []Solution {
	out := ss.solutions
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanFrequency > out[j].MeanFrequency
	})
	return out
}
