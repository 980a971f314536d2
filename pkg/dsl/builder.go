package dsl

import "github.com/aretw0/espalier/pkg/domain"

// Builder accumulates transition rules for a single pattern.
type Builder struct {
	pattern domain.Pattern
}

// New creates a builder for a named pattern.
func New(name string) *Builder {
	return &Builder{
		pattern: domain.Pattern{Name: name},
	}
}

// Rule adds a single (from, symbol, to) transition.
func (b *Builder) Rule(from domain.StateID, symbol rune, to domain.StateID) *Builder {
	b.pattern.Rules = append(b.pattern.Rules, domain.Rule{From: from, Symbol: symbol, To: to})
	return b
}

// Range adds one transition per symbol in the inclusive range [lo, hi].
func (b *Builder) Range(from domain.StateID, lo, hi rune, to domain.StateID) *Builder {
	for c := lo; c <= hi; c++ {
		b.Rule(from, c, to)
	}
	return b
}

// Symbols adds one transition per character of symbols.
func (b *Builder) Symbols(from domain.StateID, symbols string, to domain.StateID) *Builder {
	for _, c := range symbols {
		b.Rule(from, c, to)
	}
	return b
}

// Accept marks states as accepting. Duplicates are harmless; they collapse
// at machine construction.
func (b *Builder) Accept(states ...domain.StateID) *Builder {
	b.pattern.Accept = append(b.pattern.Accept, states...)
	return b
}

// Build returns the accumulated pattern definition.
func (b *Builder) Build() domain.Pattern {
	return b.pattern
}
