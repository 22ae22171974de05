// Package lang implements the automaton configuration language: a lexer, a
// recursive-descent parser, an exhaustive validator and a canonical
// formatter. Load is the one-stop entry point, text in, simulation-ready
// model out.
package lang

import (
	"os"

	"github.com/pkg/errors"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
)

// Load parses and validates configuration text. The error is a *LexError,
// a *ParseError or a ValidationErrors list; nil means the model is safe to
// hand to the simulation.
func Load(src string) (*core.Model, error) {
	m, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads and loads a configuration file.
func LoadFile(path string) (*core.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	m, err := Load(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return m, nil
}
