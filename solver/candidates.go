package solver

import (
	"github.com/liteblogging/cipher-solver/alphabet"
	"github.com/liteblogging/cipher-solver/lexicon"
)

// cipherWord is one distinct ciphertext word, kept in machine
// representation for the duration of a solve.
type cipherWord struct {
	text    string
	letters alphabet.MachineWord
}

// wordCandidates is the search state: for each ciphertext word (index
// parallel to solveState.words) the dictionary words that could still
// be its plaintext. Candidate lists only ever shrink along a search
// path. The inner machine words are immutable and shared between
// nodes; the outer slice is owned by its node.
type wordCandidates [][]alphabet.MachineWord

// initialCandidates builds WC0 from the dictionary's pattern index.
// Any word whose pattern is unknown gets an empty candidate list; the
// driver short-circuits on that.
func (st *solveState) initialCandidates() wordCandidates {
	wc := make(wordCandidates, len(st.words))
	for i, cw := range st.words {
		dictWords := st.dict.WordsForPattern(lexicon.PatternOf(cw.text))
		cands := make([]alphabet.MachineWord, 0, len(dictWords))
		for _, dw := range dictWords {
			mw, err := st.alph.ToMachineWord(dw)
			if err != nil {
				// Dictionary words are validated on Add.
				continue
			}
			cands = append(cands, mw)
		}
		wc[i] = cands
	}
	return wc
}

// prune drops every candidate with a letter outside the current
// domains. It returns false if any word loses all its candidates,
// which makes the node infeasible.
func (st *solveState) prune(wc wordCandidates, domains []alphabet.LetterSet) (wordCandidates, bool) {
	out := make(wordCandidates, len(wc))
	for i, cands := range wc {
		kept := cands
		changed := false
		for j, cand := range cands {
			ok := true
			for pos, cl := range st.words[i].letters {
				if !domains[cl].Has(cand[pos]) {
					ok = false
					break
				}
			}
			if ok {
				if changed {
					kept = append(kept, cand)
				}
				continue
			}
			if !changed {
				// First rejection: copy the prefix we already accepted.
				changed = true
				kept = make([]alphabet.MachineWord, j, len(cands))
				copy(kept, cands[:j])
			}
		}
		if len(kept) == 0 {
			return nil, false
		}
		out[i] = kept
	}
	return out, true
}

// firstMulti returns the index of the first word with more than one
// candidate, or -1 if the node is fully determined.
func firstMulti(wc wordCandidates) int {
	for i, cands := range wc {
		if len(cands) > 1 {
			return i
		}
	}
	return -1
}
