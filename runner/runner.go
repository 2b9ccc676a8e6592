// Package runner solves batches of cryptograms against one shared
// dictionary. The dictionary is read-only, so the only per-item state
// is each solve's own stack; items run concurrently up to a worker
// limit.
package runner

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/liteblogging/cipher-solver/lexicon"
	"github.com/liteblogging/cipher-solver/solver"
)

// Result pairs one input ciphertext with its solve outcome. Err is
// per-item: a bad line does not fail the batch.
type Result struct {
	Ciphertext string
	Solutions  []solver.Solution
	Err        error
}

type Runner struct {
	dict         *lexicon.Dictionary
	maxSolutions int
	timeout      time.Duration
	workers      int
}

func New(dict *lexicon.Dictionary, maxSolutions int, timeout time.Duration) *Runner {
	return &Runner{
		dict:         dict,
		maxSolutions: maxSolutions,
		timeout:      timeout,
		workers:      runtime.NumCPU(),
	}
}

// SetWorkers overrides the concurrency limit. Values below 1 are
// clamped to 1.
func (r *Runner) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

// SolveAll solves every ciphertext, returning results in input order.
// Cancelling ctx stops the batch: items already solved keep their
// results, items being solved at that moment return the solutions
// found so far without error, and items not yet started report
// ctx.Err().
func (r *Runner) SolveAll(ctx context.Context, ciphertexts []string) []Result {
	results := make([]Result, len(ciphertexts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	s := solver.NewSolver(r.dict)
	for i, ct := range ciphertexts {
		results[i].Ciphertext = ct
		if gctx.Err() != nil {
			results[i].Err = gctx.Err()
			continue
		}
		g.Go(func() error {
			sols, err := s.Solve(gctx, ct, r.maxSolutions, r.timeout)
			results[i].Solutions = sols
			results[i].Err = err
			if err != nil {
				log.Warn().Err(err).Str("ciphertext", ct).Msg("batch item failed")
			}
			// Item errors stay on the item.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("batch aborted")
	}
	return results
}
