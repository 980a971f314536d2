/*
Package lexer composes independent DFA machines into a longest-match
tokenizer.

One machine runs per candidate pattern. Each input symbol is fed to every
machine in lockstep until all of them trap; the machines are then rolled
back symbol by symbol until one accepts again. The longest accepted prefix
wins, with ties broken by pattern order (first listed wins).

The lexer is a thin consumer of pkg/automaton: all the interesting
guarantees (trap absorption, exact step/rollback symmetry) live there.
*/
package lexer
