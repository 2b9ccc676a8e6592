package solver

import (
	"github.com/liteblogging/cipher-solver/alphabet"
)

// computeDomains derives the letter-candidate map from a WC node:
// for each ciphertext letter, the set of plaintext letters it could
// still map to. Arc consistency first, then pigeonhole elimination
// iterated to fixpoint.
func (st *solveState) computeDomains(wc wordCandidates) []alphabet.LetterSet {
	domains := make([]alphabet.LetterSet, st.alph.NumLetters())
	full := alphabet.FullSet(st.alph)
	st.present.Each(func(ml alphabet.MachineLetter) {
		domains[ml] = full
	})

	// Intersect, per ciphertext word, the union over its candidates of
	// the letters seen at each position. Repeated letters in a word
	// contribute the same union at every occurrence, so one pass over
	// positions is enough.
	for i, cands := range wc {
		cw := st.words[i].letters
		for pos, cl := range cw {
			var allowed alphabet.LetterSet
			for _, cand := range cands {
				allowed = allowed.Add(cand[pos])
			}
			domains[cl] = domains[cl].Intersect(allowed)
		}
	}

	st.pigeonhole(domains)
	return domains
}

// pigeonhole applies Hall-style elimination until nothing changes: if
// n ciphertext letters share one identical domain of at most n
// plaintext letters, those letters are claimed and removed from every
// other domain. A domain smaller than its group (a Hall violation) is
// treated the same way; word pruning rejects the node afterwards.
// Converges within |alphabet| rounds since every round that changes
// anything strictly shrinks some domain.
func (st *solveState) pigeonhole(domains []alphabet.LetterSet) {
	for {
		changed := false

		// Group present letters by their exact domain, in ascending
		// letter order for reproducibility.
		groups := map[alphabet.LetterSet][]alphabet.MachineLetter{}
		order := []alphabet.LetterSet{}
		st.present.Each(func(ml alphabet.MachineLetter) {
			d := domains[ml]
			if _, ok := groups[d]; !ok {
				order = append(order, d)
			}
			groups[d] = append(groups[d], ml)
		})

		for _, d := range order {
			members := groups[d]
			if d.Empty() || len(members) < d.Count() {
				continue
			}
			// The group claims its domain exclusively.
			inGroup := make(map[alphabet.MachineLetter]bool, len(members))
			for _, ml := range members {
				inGroup[ml] = true
			}
			st.present.Each(func(ml alphabet.MachineLetter) {
				if inGroup[ml] {
					return
				}
				next := domains[ml].Minus(d)
				if next != domains[ml] {
					domains[ml] = next
					changed = true
				}
			})
		}

		if !changed {
			return
		}
	}
}
