/*
Package espalier is a deterministic finite automaton (DFA) simulator with
stepwise undo, plus a longest-match lexer composed from independent automata.

The core primitive is automaton.Machine: feed it one symbol at a time, query
acceptance, and roll back any number of steps exactly. Everything else in
the repository — the lexer, the HTTP and MCP adapters, the CLI — is a thin
consumer of that primitive.

# Concept

A machine is built once from a flat transition table and an accepting set.
Undefined transitions move it into an absorbing trap; every step (trapped or
not) is recorded so rollback stays strictly symmetric with step count. That
symmetry is what makes longest-match tokenization work: run one machine per
pattern in lockstep, stop when all trap, rewind together until one accepts.

# Usage

Initialize a lexer from a YAML pattern file, or inject patterns directly:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/espalier"
	)

	func main() {
		lex, err := espalier.New("patterns.yaml")
		if err != nil {
			log.Fatal(err)
		}

		tokens, err := lex.Scan(context.Background(), "(define x 42)")
		if err != nil {
			log.Fatal(err)
		}
		for _, tok := range tokens {
			fmt.Printf("%s %q\n", tok.Category, tok.Lexeme)
		}
	}

For direct machine control (stepping, rollback, sessions over HTTP), use
pkg/automaton and the adapters under pkg/adapters.
*/
package espalier
