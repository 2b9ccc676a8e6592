package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/liteblogging/cipher-solver/alphabet"
	"github.com/liteblogging/cipher-solver/config"
	"github.com/liteblogging/cipher-solver/lexicon"
	"github.com/liteblogging/cipher-solver/solver"
)

var (
	ciphertext = flag.String("c", "", "solve a single ciphertext and exit")
	dictPath   = flag.String("dict", "", "path to the word-frequency list (overrides config)")
	maxSols    = flag.Int("max", 0, "maximum number of solutions (overrides config)")
	timeout    = flag.Duration("timeout", -1, "solve timeout, 0 for none (overrides config)")
	debug      = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if *dictPath != "" {
		cfg.DictionaryPath = *dictPath
	}
	if *maxSols > 0 {
		cfg.MaxSolutions = *maxSols
	}
	if *timeout >= 0 {
		cfg.SolveTimeout = *timeout
	}
	if *debug {
		cfg.Debug = true
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dict, err := lexicon.LoadFile(cfg.DictionaryPath, alphabet.English())
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DictionaryPath).Msg("loading dictionary")
	}
	log.Info().Int("words", dict.NumWords()).Msg("dictionary ready")

	if *ciphertext != "" {
		if err := solveOnce(dict, *ciphertext, cfg.MaxSolutions, cfg.SolveTimeout); err != nil {
			log.Fatal().Err(err).Msg("")
		}
		return
	}

	sh := newShell(dict, cfg.MaxSolutions, cfg.SolveTimeout)
	if err := sh.run(); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

func solveOnce(dict *lexicon.Dictionary, ct string, maxSolutions int, timeout time.Duration) error {
	sols, err := solver.NewSolver(dict).Solve(context.Background(), ct, maxSolutions, timeout)
	if err != nil {
		return err
	}
	if len(sols) == 0 {
		fmt.Println("no solutions found")
		return nil
	}
	for i, sol := range sols {
		fmt.Printf("%2d. %-40s  freq %.2f\n    %s\n", i+1, sol.Plaintext, sol.MeanFrequency, sol.Cipher)
	}
	return nil
}
