package domain

import "fmt"

// StateID identifies a state of an automaton. State 0 is always the
// implicit start state.
type StateID int

// StartState is the position every machine occupies after construction
// or a reset.
const StartState StateID = 0

// Position is the current location of a machine: either a concrete live
// state or the absorbing trap reached through an undefined transition.
// The zero value is Live(0), the start position.
type Position struct {
	// State is the identifier of the live state. Meaningless when Trapped.
	State StateID `json:"state"`

	// Trapped marks the absorbing failure position. A trapped machine
	// ignores further input until rolled back or reset.
	Trapped bool `json:"trapped,omitempty"`
}

// Live returns a position at the given state.
func Live(state StateID) Position {
	return Position{State: state}
}

// Trap returns the trapped position.
func Trap() Position {
	return Position{Trapped: true}
}

// IsLive reports whether the position is a concrete state.
func (p Position) IsLive() bool {
	return !p.Trapped
}

func (p Position) String() string {
	if p.Trapped {
		return "Trap"
	}
	return fmt.Sprintf("State(%d)", p.State)
}
