// Package solver implements the constraint-propagation search at the
// heart of the cryptogram solver. Given a ciphertext enciphered with a
// monoalphabetic substitution cipher and a dictionary, it returns up
// to a requested number of candidate plaintexts ranked by mean word
// frequency.
//
// The search keeps, per ciphertext word, the dictionary words sharing
// its letter-repetition pattern, narrows per-letter domains by arc
// consistency and pigeonhole elimination, prunes word candidates
// against the domains, and branches depth-first when no word is
// uniquely determined.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/liteblogging/cipher-solver/alphabet"
	"github.com/liteblogging/cipher-solver/lexicon"
)

var (
	// ErrInvalidInput is returned for an empty ciphertext or a
	// non-positive solution cap.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal is returned when a solver invariant breaks. It is
	// never returned for well-formed inputs against a well-formed
	// dictionary.
	ErrInternal = errors.New("internal solver error")
)

// Stats describes the work one solve performed.
type Stats struct {
	NodesExpanded int
	MaxStackDepth int
	Elapsed       time.Duration
}

// A Solver holds the dictionary to decode against. It carries no
// per-call state; a single Solver may serve concurrent solves.
type Solver struct {
	dict *lexicon.Dictionary
}

func NewSolver(dict *lexicon.Dictionary) *Solver {
	return &Solver{dict: dict}
}

// solveState is the per-call state: released when Solve returns.
type solveState struct {
	dict       *lexicon.Dictionary
	alph       *alphabet.Alphabet
	ciphertext string
	words      []cipherWord
	// present is the set of ciphertext letters appearing in the input.
	present alphabet.LetterSet
}

func newSolveState(dict *lexicon.Dictionary, ciphertext string) (*solveState, error) {
	alph := dict.Alphabet()
	tokens := lexicon.ParseWords(ciphertext, alph)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: ciphertext has no words", ErrInvalidInput)
	}
	st := &solveState{
		dict:       dict,
		alph:       alph,
		ciphertext: ciphertext,
	}
	for _, tok := range tokens {
		mw, err := alph.ToMachineWord(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		st.words = append(st.words, cipherWord{text: tok, letters: mw})
		for _, ml := range mw {
			st.present = st.present.Add(ml)
		}
	}
	return st, nil
}

// Solve decodes ciphertext against the dictionary, returning up to
// maxSolutions distinct plaintexts sorted by descending mean word
// frequency. A timeout of 0 means no deadline; on timeout (or ctx
// cancellation) the solutions found so far are returned without
// error. An empty result is a normal outcome, not an error.
//
// Input is folded to lowercase for matching; plaintext letters are
// emitted lowercase and all non-alphabet characters of the ciphertext
// are preserved verbatim.
func (s *Solver) Solve(ctx context.Context, ciphertext string, maxSolutions int, timeout time.Duration) ([]Solution, error) {
	sols, _, err := s.SolveWithStats(ctx, ciphertext, maxSolutions, timeout)
	return sols, err
}

// SolveWithStats is Solve plus counters describing the search.
func (s *Solver) SolveWithStats(ctx context.Context, ciphertext string, maxSolutions int, timeout time.Duration) ([]Solution, Stats, error) {
	start := time.Now()
	stats := Stats{}

	if maxSolutions <= 0 {
		return nil, stats, fmt.Errorf("%w: max solutions must be positive, got %d", ErrInvalidInput, maxSolutions)
	}

	st, err := newSolveState(s.dict, ciphertext)
	if err != nil {
		return nil, stats, err
	}

	wc0 := st.initialCandidates()
	found := newSolutionSet()

	var deadline time.Time
	if timeout > 0 {
		deadline = start.Add(timeout)
	}
	expired := func() bool {
		if ctx.Err() != nil {
			return true
		}
		return !deadline.IsZero() && !time.Now().Before(deadline)
	}

	feasible := true
	for _, cands := range wc0 {
		if len(cands) == 0 {
			feasible = false
			break
		}
	}

	stack := []wordCandidates{}
	if feasible {
		stack = append(stack, wc0)
	}

	for len(stack) > 0 && found.size() < maxSolutions {
		if expired() {
			log.Debug().Dur("elapsed", time.Since(start)).Msg("solve deadline reached")
			break
		}
		if len(stack) > stats.MaxStackDepth {
			stats.MaxStackDepth = len(stack)
		}
		wc := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]
		stats.NodesExpanded++

		domains := st.computeDomains(wc)
		wc, ok := st.prune(wc, domains)
		if !ok {
			continue
		}

		if firstMulti(wc) >= 0 {
			children := partition(wc)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
			continue
		}

		// One pruning pass can leave every word with a single candidate
		// while two words still give a letter different images; one more
		// pass over the determined node rejects such a branch.
		if wc, ok = st.prune(wc, st.computeDomains(wc)); !ok {
			continue
		}

		sol, err := st.assemble(wc)
		if err != nil {
			if errors.Is(err, errNotInjective) {
				continue
			}
			return nil, stats, err
		}
		found.add(sol)
	}

	stats.Elapsed = time.Since(start)
	log.Debug().
		Int("solutions", found.size()).
		Int("nodes", stats.NodesExpanded).
		Int("maxDepth", stats.MaxStackDepth).
		Dur("elapsed", stats.Elapsed).
		Msg("solve finished")

	return found.ranked(), stats, nil
}

// LetterDomain lists the plaintext letters one ciphertext letter could
// still map to.
type LetterDomain struct {
	Letter     rune
	Candidates string
}

// InitialDomains reports the letter domains of the ciphertext after
// propagation over the initial word candidates, ordered by ciphertext
// letter. It is a diagnostic for the shell, not part of the search.
func (s *Solver) InitialDomains(ciphertext string) ([]LetterDomain, error) {
	st, err := newSolveState(s.dict, ciphertext)
	if err != nil {
		return nil, err
	}
	domains := st.computeDomains(st.initialCandidates())

	out := make([]LetterDomain, 0, st.present.Count())
	st.present.Each(func(ml alphabet.MachineLetter) {
		out = append(out, LetterDomain{
			Letter:     st.alph.Letter(ml),
			Candidates: domains[ml].UserVisible(st.alph),
		})
	})
	return out, nil
}
