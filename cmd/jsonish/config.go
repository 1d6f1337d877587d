package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joeshaw/envdecode"
)

// envConfig holds defaults taken from the environment. Flags override it.
type envConfig struct {
	// ENV: JSONISH_MAX_DEPTH
	MaxDepth int `env:"JSONISH_MAX_DEPTH,default=256"`
	// ENV: JSONISH_ALLOW_PARTIALS
	AllowPartials bool `env:"JSONISH_ALLOW_PARTIALS,default=false"`
	// ENV: JSONISH_LANG
	Lang string `env:"JSONISH_LANG,default=en"`
	// ENV: JSONISH_WORKERS (0 means one per CPU)
	Workers int `env:"JSONISH_WORKERS,default=0"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// readInputs returns the contents of every named file. "-" or no names at
// all reads stdin.
func readInputs(stdin io.Reader, names []string) ([]string, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		var (
			b   []byte
			err error
		)
		if n == "-" {
			b, err = io.ReadAll(stdin)
		} else {
			b, err = os.ReadFile(n)
		}
		if err != nil {
			return nil, fmt.Errorf("read input %s: %w", n, err)
		}
		out = append(out, string(b))
	}
	return out, nil
}
