package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// key addresses the transition table.
type key struct {
	state  domain.StateID
	symbol rune
}

// Machine is a resettable DFA simulator with stepwise undo.
//
// The transition table and accepting set are fixed at construction. The
// mutable half — current position and history — is driven by Step, Rollback
// and Reset, and can be captured with Snapshot for persistence.
type Machine struct {
	delta     map[key][]domain.StateID
	accepting map[domain.StateID]struct{}
	name      string

	pos     domain.Position
	history []domain.Position
}

// Option configures a Machine.
type Option func(*Machine)

// WithName tags the machine with its pattern name. Purely diagnostic; it
// flows into snapshots and step events.
func WithName(name string) Option {
	return func(m *Machine) {
		m.name = name
	}
}

// New builds a machine from a flat transition list and an accepting set.
// The machine starts at Live(0) with empty history.
//
// Malformed input is not rejected here: rules sharing a (from, symbol) key
// accumulate into the same table entry, and the ambiguity surfaces only if
// that key is ever looked up during a Step. A table with unused ambiguous
// keys never fails.
func New(rules []domain.Rule, accept []domain.StateID, opts ...Option) *Machine {
	m := &Machine{
		delta:     make(map[key][]domain.StateID, len(rules)),
		accepting: make(map[domain.StateID]struct{}, len(accept)),
		pos:       domain.Live(domain.StartState),
	}

	for _, r := range rules {
		k := key{state: r.From, symbol: r.Symbol}
		m.delta[k] = append(m.delta[k], r.To)
	}
	for _, s := range accept {
		m.accepting[s] = struct{}{}
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// FromPattern builds a machine from a pattern definition, carrying its name.
func FromPattern(p domain.Pattern) *Machine {
	return New(p.Rules, p.Accept, WithName(p.Name))
}

// Name returns the pattern name the machine was built with ("" if none).
func (m *Machine) Name() string {
	return m.name
}

// Step feeds one input symbol and returns the post-step acceptance.
//
// The pre-step position is always pushed onto history — including steps
// taken while already trapped — so Rollback stays strictly symmetric with
// the step count. A live machine moves to the rule's destination, or to the
// trap when no rule covers (state, symbol). A trapped machine stays trapped
// without a table lookup.
//
// A (state, symbol) key with more than one destination means the table
// describes an NFA; Step returns *domain.AmbiguityError and the position
// does not advance. There is nothing to recover from — fix the table.
func (m *Machine) Step(symbol rune) (bool, error) {
	m.history = append(m.history, m.pos)

	if m.pos.IsLive() {
		dests, ok := m.delta[key{state: m.pos.State, symbol: symbol}]
		switch {
		case !ok:
			m.pos = domain.Trap()
		case len(dests) == 1:
			m.pos = domain.Live(dests[0])
		default:
			return false, &domain.AmbiguityError{
				State:        m.pos.State,
				Symbol:       symbol,
				Destinations: dests,
			}
		}
	}

	return m.Accepted(), nil
}

// Rollback undoes the most recent Step, restoring the previous position.
// With empty history it is a no-op: there is nothing to undo at the
// start-of-input boundary.
func (m *Machine) Rollback() {
	if n := len(m.history); n > 0 {
		m.pos = m.history[n-1]
		m.history = m.history[:n-1]
	}
}

// Accepted reports whether the current position is an accepting state.
// The trap is never accepted. Pure query.
func (m *Machine) Accepted() bool {
	if m.pos.Trapped {
		return false
	}
	_, ok := m.accepting[m.pos.State]
	return ok
}

// Trapped reports whether the machine is in the absorbing trap. Pure query.
func (m *Machine) Trapped() bool {
	return m.pos.Trapped
}

// Reset returns the machine to Live(0) with empty history, ready for a
// fresh input without reconstruction. The transition table and accepting
// set are untouched.
func (m *Machine) Reset() {
	m.pos = domain.Live(domain.StartState)
	m.history = nil
}

// Position returns the current position.
func (m *Machine) Position() domain.Position {
	return m.pos
}

// Depth returns the number of undoable steps since the last reset.
func (m *Machine) Depth() int {
	return len(m.history)
}

// Snapshot captures position + history for persistence. The returned value
// is detached from the machine.
func (m *Machine) Snapshot() *domain.Snapshot {
	history := make([]domain.Position, len(m.history))
	copy(history, m.history)
	return &domain.Snapshot{
		Pattern:  m.name,
		Position: m.pos,
		History:  history,
	}
}

// Restore replaces position and history from a snapshot, detaching from the
// caller's slice. The transition table is not part of a snapshot; callers
// are responsible for restoring onto a machine built from the same pattern.
func (m *Machine) Restore(snap *domain.Snapshot) {
	m.pos = snap.Position
	m.history = make([]domain.Position, len(snap.History))
	copy(m.history, snap.History)
}

// String renders the accepting set and transition table for debugging.
func (m *Machine) String() string {
	keys := make([]key, 0, len(m.delta))
	for k := range m.delta {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].state != keys[j].state {
			return keys[i].state < keys[j].state
		}
		return keys[i].symbol < keys[j].symbol
	})

	accept := make([]int, 0, len(m.accepting))
	for s := range m.accepting {
		accept = append(accept, int(s))
	}
	sort.Ints(accept)

	var sb strings.Builder
	fmt.Fprintf(&sb, "automaton %q\n", m.name)
	fmt.Fprintf(&sb, "accept: %v\n", accept)
	sb.WriteString("delta:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "  (%d, %q) -> %v\n", k.state, k.symbol, m.delta[k])
	}
	return sb.String()
}
