package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/lkit"
)

// program is a YAML evaluation script: variable definitions applied in
// lexical order of name, then expression sources evaluated in order.
//
//	vars:
//	  x: 4
//	  start: "'2013-07-15 10:45:25'"
//	exprs:
//	  - (+ x 1)
//	  - (< start '2014-01-01')
type program struct {
	Vars  map[string]string `yaml:"vars"`
	Exprs []string          `yaml:"exprs"`
}

// loadProgram reads a program file, defines its variables on p, and
// returns its expression sources.
func loadProgram(p *lkit.Parser, name string) ([]string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var prog program
	if err := yaml.Unmarshal(data, &prog); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	for vn, text := range prog.Vars {
		v, ok := lkit.Literal(text)
		if !ok {
			return nil, fmt.Errorf("%s: var %s: %q is not a literal", name, vn, text)
		}
		p.SetVariable(vn, v)
	}
	slog.Debug("loaded program",
		slog.String("file", name),
		slog.Int("vars", len(prog.Vars)),
		slog.Int("exprs", len(prog.Exprs)))
	return prog.Exprs, nil
}
