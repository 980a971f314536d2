package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrPatternNotFound is returned when a pattern name is not known to a source.
var ErrPatternNotFound = errors.New("pattern not found")

// ErrNoMatch is returned by the lexer when no pattern accepts any prefix of
// the remaining input. It is an input problem, not an engine failure.
var ErrNoMatch = errors.New("no pattern matches input")

// AmbiguityError reports a (state, symbol) key that resolves to more than
// one destination. The transition table describes an NFA, which the engine
// does not support; this is a construction bug in the caller's tables, not
// a runtime condition to recover from.
type AmbiguityError struct {
	State        StateID
	Symbol       rune
	Destinations []StateID
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous transition from state %d on %q: %d destinations %v (expected exactly one for a DFA)",
		e.State, e.Symbol, len(e.Destinations), e.Destinations)
}
