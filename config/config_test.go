package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c, err := Load()
	is.NoErr(err)
	is.Equal(c.MaxSolutions, 10)
	is.Equal(c.SolveTimeout, time.Duration(0))
	is.Equal(c.Debug, false)
	is.True(c.DictionaryPath != "")
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("CIPHERSOLVER_MAX_SOLUTIONS", "3")
	t.Setenv("CIPHERSOLVER_SOLVE_TIMEOUT", "2s")
	c, err := Load()
	is.NoErr(err)
	is.Equal(c.MaxSolutions, 3)
	is.Equal(c.SolveTimeout, 2*time.Second)
}
