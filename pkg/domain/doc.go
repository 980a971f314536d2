/*
Package domain contains the core domain models for the Espalier engine.

It defines the fundamental entities of the simulator: transition Rules,
Patterns, the machine Position (live state or trap), and the Snapshot used
for persistence. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Rule: A single (from, symbol, to) transition of an automaton.
  - Pattern: A named automaton definition (rules + accepting states).
  - Position: The runtime location of a machine (Live state or Trapped).
  - Snapshot: A serializable capture of position + history for a session.
  - Token: A lexeme/category pair produced by the longest-match lexer.
*/
package domain
