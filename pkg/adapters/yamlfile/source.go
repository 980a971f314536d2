// Package yamlfile loads pattern definitions from a YAML file.
//
// The file format keeps transition tables declarative:
//
//	patterns:
//	  - name: ID
//	    accept: [1]
//	    rules:
//	      - { from: 0, symbol: a-z, to: 1 }
//	      - { from: 1, symbol: a-z, to: 1 }
//	  - name: PAROPEN
//	    accept: [1]
//	    rules:
//	      - { from: 0, symbol: "(", to: 1 }
//
// A symbol is a single character or an inclusive range "lo-hi". The
// symbols field expands to one rule per character, for sets that are not
// contiguous (e.g. symbols: " '").
package yamlfile

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type fileDef struct {
	Patterns []patternDef `mapstructure:"patterns"`
}

type patternDef struct {
	Name   string    `mapstructure:"name"`
	Accept []int     `mapstructure:"accept"`
	Rules  []ruleDef `mapstructure:"rules"`
}

type ruleDef struct {
	From    int    `mapstructure:"from"`
	Symbol  string `mapstructure:"symbol"`
	Symbols string `mapstructure:"symbols"`
	To      int    `mapstructure:"to"`
}

// Load reads and parses a pattern file. The returned source preserves file
// order as lexer priority order.
func Load(path string) (*memory.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	src, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("pattern file %s: %w", path, err)
	}
	return src, nil
}

// Parse decodes YAML pattern definitions.
func Parse(data []byte) (*memory.Source, error) {
	// Decode to a generic map first, then map into typed defs. This keeps
	// the YAML surface loose (unknown keys are ignored) while field
	// handling stays declarative.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	var def fileDef
	if err := mapstructure.Decode(raw, &def); err != nil {
		return nil, fmt.Errorf("invalid pattern definition: %w", err)
	}

	if len(def.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns defined")
	}

	patterns := make([]domain.Pattern, 0, len(def.Patterns))
	for _, pd := range def.Patterns {
		p, err := expand(pd)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return memory.NewSource(patterns...), nil
}

func expand(pd patternDef) (domain.Pattern, error) {
	if pd.Name == "" {
		return domain.Pattern{}, fmt.Errorf("pattern without a name")
	}
	if len(pd.Accept) == 0 {
		return domain.Pattern{}, fmt.Errorf("pattern %q: no accepting states", pd.Name)
	}

	b := dsl.New(pd.Name)
	for i, rd := range pd.Rules {
		from := domain.StateID(rd.From)
		to := domain.StateID(rd.To)

		switch {
		case rd.Symbol != "" && rd.Symbols != "":
			return domain.Pattern{}, fmt.Errorf("pattern %q rule %d: symbol and symbols are mutually exclusive", pd.Name, i)

		case rd.Symbols != "":
			b.Symbols(from, rd.Symbols, to)

		case rd.Symbol != "":
			runes := []rune(rd.Symbol)
			switch {
			case len(runes) == 1:
				b.Rule(from, runes[0], to)
			case len(runes) == 3 && runes[1] == '-' && runes[0] <= runes[2]:
				b.Range(from, runes[0], runes[2], to)
			default:
				return domain.Pattern{}, fmt.Errorf("pattern %q rule %d: symbol must be one character or a lo-hi range, got %q", pd.Name, i, rd.Symbol)
			}

		default:
			return domain.Pattern{}, fmt.Errorf("pattern %q rule %d: missing symbol", pd.Name, i)
		}
	}

	for _, s := range pd.Accept {
		b.Accept(domain.StateID(s))
	}

	return b.Build(), nil
}
