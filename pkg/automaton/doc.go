/*
Package automaton implements the deterministic finite automaton (DFA)
simulator at the core of Espalier.

A Machine is built once from a flat transition list and an accepting set,
then driven one symbol at a time. Every step can be undone: the machine
keeps a history of prior positions so a caller can roll back to any
previously visited point of the input. This is what makes longest-match
lexing cheap — feed symbols until every candidate traps, then rewind to the
longest accepted prefix (see pkg/lexer).

A machine is exclusively owned by one caller; it is a plain value with no
shared state and no locking. Run one Machine per pattern.
*/
package automaton
