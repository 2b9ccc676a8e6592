// Package config loads settings for the cipher-solver binaries.
// Values come from defaults, an optional config file, and
// CIPHERSOLVER_-prefixed environment variables, in increasing order of
// precedence; command-line flags are layered on top by the caller.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// DictionaryPath points at a word-frequency list, one
	// "word frequency" pair per line.
	DictionaryPath string
	// MaxSolutions caps the number of distinct plaintexts per solve.
	MaxSolutions int
	// SolveTimeout bounds one solve's wall clock; 0 means no limit.
	SolveTimeout time.Duration
	Debug        bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("dictionary-path", "./data/words.txt")
	v.SetDefault("max-solutions", 10)
	v.SetDefault("solve-timeout", time.Duration(0))
	v.SetDefault("debug", false)

	v.SetEnvPrefix("CIPHERSOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("cipher-solver")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	c := &Config{
		DictionaryPath: v.GetString("dictionary-path"),
		MaxSolutions:   v.GetInt("max-solutions"),
		SolveTimeout:   v.GetDuration("solve-timeout"),
		Debug:          v.GetBool("debug"),
	}
	return c, nil
}
