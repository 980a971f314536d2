package espalier

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/pkg/adapters/yamlfile"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
	"github.com/aretw0/espalier/pkg/lexer"
	"github.com/aretw0/espalier/pkg/ports"
)

// Version is the library version, surfaced by the CLI and the MCP server.
const Version = "0.2.0"

type config struct {
	source ports.PatternSource
	logger *slog.Logger
	hooks  domain.Hooks
}

// Option defines a functional option for configuring New.
type Option func(*config)

// WithSource injects a custom pattern source, bypassing the default YAML
// file loading.
func WithSource(source ports.PatternSource) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithLogger sets a structured logger for the lexer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks on the lexer.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// New initializes a longest-match lexer.
// By default it loads pattern definitions from the YAML file at
// patternsPath. If WithSource is provided, patternsPath can be empty.
func New(patternsPath string, opts ...Option) (*lexer.Lexer, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	if c.source == nil {
		if patternsPath == "" {
			return nil, fmt.Errorf("patternsPath is required when no custom source is provided")
		}
		source, err := yamlfile.Load(patternsPath)
		if err != nil {
			return nil, err
		}
		c.source = source
	}

	patterns, err := Patterns(c.source)
	if err != nil {
		return nil, err
	}

	var lexOpts []lexer.Option
	if c.logger != nil {
		lexOpts = append(lexOpts, lexer.WithLogger(c.logger))
	}
	lexOpts = append(lexOpts, lexer.WithHooks(c.hooks))

	return lexer.New(patterns, lexOpts...)
}

// Patterns materializes every pattern of a source in priority order.
func Patterns(source ports.PatternSource) ([]domain.Pattern, error) {
	names, err := source.ListPatterns()
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}

	patterns := make([]domain.Pattern, 0, len(names))
	for _, name := range names {
		p, err := source.GetPattern(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load pattern %q: %w", name, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// DefaultPatterns is the stock lisp-ish pattern set the CLI falls back to
// when no pattern file is given: identifiers, numbers, quoted strings,
// parentheses, spaces and the ">" operator.
func DefaultPatterns() []domain.Pattern {
	return []domain.Pattern{
		dsl.Alphabetic("ID"),
		dsl.Numeric("NUMBER"),
		dsl.QuotedString("STRING"),
		dsl.Literal("PAROPEN", "("),
		dsl.Literal("PARCLOSE", ")"),
		dsl.Literal("SPACE", " "),
		dsl.Literal("OPREL", ">"),
	}
}
