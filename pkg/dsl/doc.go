/*
Package dsl provides a fluent builder for defining automata in Go code.

It removes the noise of writing flat transition lists by hand:

	pattern := dsl.New("ID").
		Range(0, 'a', 'z', 1).
		Range(1, 'a', 'z', 1).
		Accept(1).
		Build()

The package also ships the stock patterns (identifiers, numbers, quoted
strings, literals) used by the CLI and the test corpus.
*/
package dsl
