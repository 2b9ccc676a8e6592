package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/liteblogging/cipher-solver/alphabet"
	"github.com/liteblogging/cipher-solver/lexicon"
)

func testDict(t *testing.T, words map[string]float64) *lexicon.Dictionary {
	t.Helper()
	d := lexicon.NewDictionary(alphabet.English())
	for w, f := range words {
		if err := d.Add(w, f); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func plaintexts(sols []Solution) []string {
	out := make([]string, len(sols))
	for i, s := range sols {
		out[i] = s.Plaintext
	}
	return out
}

func TestTrivialIdentity(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"cat": 1, "dog": 1})
	sols, err := NewSolver(d).Solve(context.Background(), "cat", 1, 0)
	is.NoErr(err)
	is.Equal(len(sols), 1)
	is.Equal(sols[0].Plaintext, "cat")
	is.Equal(sols[0].Cipher, Cipher{{'a', 'a'}, {'c', 'c'}, {'t', 't'}})
	is.Equal(sols[0].MeanFrequency, 1.0)
}

func TestSimpleShift(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"hello": 5, "world": 4})
	sols, err := NewSolver(d).Solve(context.Background(), "ifmmp xpsme", 10, 0)
	is.NoErr(err)
	is.Equal(len(sols), 1)
	is.Equal(sols[0].Plaintext, "hello world")
	is.Equal(sols[0].MeanFrequency, 4.5)
	is.Equal(sols[0].Cipher, Cipher{
		{'e', 'd'}, {'f', 'e'}, {'i', 'h'}, {'m', 'l'},
		{'p', 'o'}, {'s', 'r'}, {'x', 'w'},
	})
}

func TestMultipleSolutionsRanked(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"noon": 10, "peep": 3, "deed": 1})
	sols, err := NewSolver(d).Solve(context.Background(), "xyyx", 10, 0)
	is.NoErr(err)
	is.Equal(plaintexts(sols), []string{"noon", "peep", "deed"})
	is.True(sols[0].MeanFrequency > sols[1].MeanFrequency)
	is.True(sols[1].MeanFrequency > sols[2].MeanFrequency)
}

func TestPigeonholeInfeasible(t *testing.T) {
	// Three ciphertext letters confined to a two-letter domain: every
	// branch dies in pruning and the search ends with no solutions.
	is := is.New(t)
	d := testDict(t, map[string]float64{"ab": 1, "ba": 1})
	sols, stats, err := NewSolver(d).SolveWithStats(context.Background(), "xy yz zx", 10, 0)
	is.NoErr(err)
	is.Equal(len(sols), 0)
	is.True(stats.NodesExpanded < 50)
}

func TestTimeoutReturnsPartial(t *testing.T) {
	is := is.New(t)
	words := map[string]float64{}
	pool := []string{"abc", "bcd", "cde", "def", "efg", "fgh", "ghi", "hij",
		"ijk", "jkl", "klm", "lmn", "mno", "nop", "opq", "pqr", "qrs", "rst"}
	for i, w := range pool {
		words[w] = float64(i + 1)
	}
	d := testDict(t, words)
	sols, err := NewSolver(d).Solve(context.Background(), "abc def ghi jkl", 3, time.Nanosecond)
	is.NoErr(err)
	is.True(len(sols) <= 3)
}

func TestNonAlphabetCharactersPreserved(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"hello": 5, "world": 4})
	sols, err := NewSolver(d).Solve(context.Background(), "ifmmp, xpsme!", 10, 0)
	is.NoErr(err)
	is.Equal(len(sols), 1)
	is.Equal(sols[0].Plaintext, "hello, world!")
}

func TestUppercaseInputFolded(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"hello": 5, "world": 4})
	sols, err := NewSolver(d).Solve(context.Background(), "Ifmmp Xpsme", 10, 0)
	is.NoErr(err)
	is.Equal(len(sols), 1)
	is.Equal(sols[0].Plaintext, "hello world")
}

func TestInvalidInput(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"cat": 1})
	s := NewSolver(d)

	_, err := s.Solve(context.Background(), "cat", 0, 0)
	is.True(errors.Is(err, ErrInvalidInput))

	_, err = s.Solve(context.Background(), "cat", -3, 0)
	is.True(errors.Is(err, ErrInvalidInput))

	_, err = s.Solve(context.Background(), "123 ... !!!", 5, 0)
	is.True(errors.Is(err, ErrInvalidInput))
}

func TestEmptyDictionary(t *testing.T) {
	is := is.New(t)
	d := lexicon.NewDictionary(alphabet.English())
	sols, err := NewSolver(d).Solve(context.Background(), "qwerty", 5, 0)
	is.NoErr(err)
	is.Equal(len(sols), 0)
}

func TestDeterminism(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{
		"noon": 10, "peep": 3, "deed": 1, "that": 7, "high": 2,
	})
	s := NewSolver(d)
	first, err := s.Solve(context.Background(), "xyyx stus", 10, 0)
	is.NoErr(err)
	for i := 0; i < 3; i++ {
		again, err := s.Solve(context.Background(), "xyyx stus", 10, 0)
		is.NoErr(err)
		is.Equal(again, first)
	}
}

func TestMaxSolutionsMonotone(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"noon": 10, "peep": 3, "deed": 1})
	s := NewSolver(d)

	one, err := s.Solve(context.Background(), "xyyx", 1, 0)
	is.NoErr(err)
	three, err := s.Solve(context.Background(), "xyyx", 3, 0)
	is.NoErr(err)

	is.Equal(len(one), 1)
	is.Equal(len(three), 3)
	// Everything found under the smaller cap is still found under the
	// larger one.
	found := map[string]bool{}
	for _, s := range three {
		found[s.Plaintext] = true
	}
	for _, s := range one {
		is.True(found[s.Plaintext])
	}
}

func TestSharedWordConstrainsBoth(t *testing.T) {
	// "ab" and "ba" reverse each other; the shared letters force a
	// consistent assignment across both ciphertext words.
	is := is.New(t)
	d := testDict(t, map[string]float64{"on": 5, "no": 4, "it": 3, "ti": 1})
	sols, err := NewSolver(d).Solve(context.Background(), "xy yx", 10, 0)
	is.NoErr(err)
	is.Equal(plaintexts(sols), []string{"on no", "no on", "it ti", "ti it"})
}

func TestCandidateSoundness(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{
		"noon": 10, "peep": 3, "deed": 1, "on": 5, "no": 4,
	})
	sols, err := NewSolver(d).Solve(context.Background(), "xyyx, xy!", 10, 0)
	is.NoErr(err)
	is.True(len(sols) > 0)

	for _, sol := range sols {
		// Applying the cipher to the ciphertext reproduces the plaintext.
		key := map[rune]rune{}
		seen := map[rune]bool{}
		for _, m := range sol.Cipher {
			key[m.From] = m.To
			is.True(!seen[m.To]) // injective
			seen[m.To] = true
		}
		applied := []rune{}
		for _, r := range "xyyx, xy!" {
			if to, ok := key[r]; ok {
				applied = append(applied, to)
			} else {
				applied = append(applied, r)
			}
		}
		is.Equal(string(applied), sol.Plaintext)

		// Every plaintext word is a dictionary word.
		for _, w := range lexicon.Tokenize(sol.Plaintext, d.Alphabet()) {
			is.True(d.HasWord(w))
		}
	}
}

func TestNonInjectiveBranchDropped(t *testing.T) {
	// Ciphertext "ab cd" cannot decode against {to, go} under a
	// bijection: both b and d would have to become o. Domain pruning
	// alone does not catch this (o stays in both domains), so the
	// assembler must drop the branch rather than emit a non-injective
	// key or fail.
	is := is.New(t)
	d := testDict(t, map[string]float64{"to": 5, "go": 4})
	sols, err := NewSolver(d).Solve(context.Background(), "ab cd", 10, 0)
	is.NoErr(err)
	is.Equal(len(sols), 0)
}

func TestContextCancellation(t *testing.T) {
	is := is.New(t)
	d := testDict(t, map[string]float64{"noon": 10, "peep": 3, "deed": 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sols, err := NewSolver(d).Solve(ctx, "xyyx", 10, 0)
	is.NoErr(err)
	is.Equal(len(sols), 0)
}
