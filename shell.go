package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/liteblogging/cipher-solver/alphabet"
	"github.com/liteblogging/cipher-solver/lexicon"
	"github.com/liteblogging/cipher-solver/solver"
)

type shell struct {
	dict         *lexicon.Dictionary
	solver       *solver.Solver
	maxSolutions int
	timeout      time.Duration
}

func newShell(dict *lexicon.Dictionary, maxSolutions int, timeout time.Duration) *shell {
	return &shell{
		dict:         dict,
		solver:       solver.NewSolver(dict),
		maxSolutions: maxSolutions,
		timeout:      timeout,
	}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "solve <ciphertext> - search for plaintexts\n")
	io.WriteString(w, "letters <ciphertext> - show letter domains after propagation\n")
	io.WriteString(w, "max <n> - set the solution cap\n")
	io.WriteString(w, "timeout <duration> - set the solve timeout (0 for none)\n")
	io.WriteString(w, "load <path> - load a different dictionary\n")
	io.WriteString(w, "exit - quit\n")
}

func (sh *shell) run() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mcipher>\033[0m ",
		HistoryFile: "/tmp/cipher-solver-readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}
		line = strings.TrimSpace(line)
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "bye", "exit":
			return nil
		case "help":
			usage(l.Stderr())
		case "solve":
			sh.solve(l.Stdout(), arg)
		case "letters":
			sh.letters(l.Stdout(), arg)
		case "max":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				fmt.Fprintf(l.Stderr(), "bad solution cap %q\n", arg)
				continue
			}
			sh.maxSolutions = n
		case "timeout":
			d, err := time.ParseDuration(arg)
			if err != nil || d < 0 {
				fmt.Fprintf(l.Stderr(), "bad timeout %q\n", arg)
				continue
			}
			sh.timeout = d
		case "load":
			dict, err := lexicon.LoadFile(arg, alphabet.English())
			if err != nil {
				fmt.Fprintf(l.Stderr(), "load failed: %v\n", err)
				continue
			}
			sh.dict = dict
			sh.solver = solver.NewSolver(dict)
			fmt.Fprintf(l.Stdout(), "loaded %d words\n", dict.NumWords())
		default:
			fmt.Fprintf(l.Stderr(), "unknown command %q; try help\n", cmd)
		}
	}
}

func (sh *shell) solve(w io.Writer, ciphertext string) {
	if ciphertext == "" {
		fmt.Fprintln(w, "usage: solve <ciphertext>")
		return
	}
	sols, stats, err := sh.solver.SolveWithStats(
		context.Background(), ciphertext, sh.maxSolutions, sh.timeout)
	if err != nil {
		fmt.Fprintf(w, "solve failed: %v\n", err)
		return
	}
	log.Debug().Int("nodes", stats.NodesExpanded).Dur("elapsed", stats.Elapsed).Msg("")
	if len(sols) == 0 {
		fmt.Fprintln(w, "no solutions found")
		return
	}
	for i, sol := range sols {
		fmt.Fprintf(w, "%2d. %-40s  freq %.2f\n    %s\n", i+1, sol.Plaintext, sol.MeanFrequency, sol.Cipher)
	}
}

func (sh *shell) letters(w io.Writer, ciphertext string) {
	if ciphertext == "" {
		fmt.Fprintln(w, "usage: letters <ciphertext>")
		return
	}
	domains, err := sh.solver.InitialDomains(ciphertext)
	if err != nil {
		fmt.Fprintf(w, "failed: %v\n", err)
		return
	}
	for _, d := range domains {
		fmt.Fprintf(w, "%c: %s\n", d.Letter, d.Candidates)
	}
}
