package dsl

import "github.com/aretw0/espalier/pkg/domain"

// Stock patterns for common lexical categories. These match what a small
// lisp-ish tokenizer needs and double as the default pattern set of the CLI.

// Alphabetic accepts one or more lowercase letters.
func Alphabetic(name string) domain.Pattern {
	return New(name).
		Range(0, 'a', 'z', 1).
		Range(1, 'a', 'z', 1).
		Accept(1).
		Build()
}

// Numeric accepts one or more decimal digits.
func Numeric(name string) domain.Pattern {
	return New(name).
		Range(0, '0', '9', 1).
		Range(1, '0', '9', 1).
		Accept(1).
		Build()
}

// QuotedString accepts a double-quoted string of lowercase letters, digits,
// spaces and single quotes.
func QuotedString(name string) domain.Pattern {
	return New(name).
		Rule(0, '"', 1).
		Range(1, 'a', 'z', 1).
		Range(1, '0', '9', 1).
		Symbols(1, " '", 1).
		Rule(1, '"', 2).
		Accept(2).
		Build()
}

// Literal accepts exactly the given text, one state per character.
func Literal(name, text string) domain.Pattern {
	b := New(name)
	state := domain.StateID(0)
	for _, c := range text {
		b.Rule(state, c, state+1)
		state++
	}
	return b.Accept(state).Build()
}
