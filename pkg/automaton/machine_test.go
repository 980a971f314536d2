package automaton_test

import (
	"testing"

	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// aStarB accepts a*b: loop on 'a' in state 0, 'b' moves to accepting state 1.
func aStarB() *automaton.Machine {
	return automaton.New([]domain.Rule{
		{From: 0, Symbol: 'a', To: 0},
		{From: 0, Symbol: 'b', To: 1},
	}, []domain.StateID{1})
}

func feed(t *testing.T, m *automaton.Machine, input string) {
	t.Helper()
	for _, c := range input {
		_, err := m.Step(c)
		require.NoError(t, err)
	}
}

func TestMachine_BasicAcceptance(t *testing.T) {
	m := aStarB()

	feed(t, m, "aaaaaab")
	assert.True(t, m.Accepted())

	m.Reset()
	feed(t, m, "abb")
	assert.False(t, m.Accepted(), "second 'b' traps from state 1")
	assert.True(t, m.Trapped())
}

func TestMachine_TrapIsAbsorbing(t *testing.T) {
	m := aStarB()

	feed(t, m, "abb")
	require.True(t, m.Trapped())

	// Further input is ignored but still recorded in history.
	depth := m.Depth()
	feed(t, m, "aaa")
	assert.True(t, m.Trapped())
	assert.Equal(t, depth+3, m.Depth())
}

func TestMachine_RollbackSymmetry(t *testing.T) {
	m := aStarB()

	feed(t, m, "aaabb") // last 'b' traps
	require.True(t, m.Trapped())
	require.Equal(t, 5, m.Depth())

	for i := 0; i < 5; i++ {
		m.Rollback()
	}
	assert.Equal(t, domain.Live(0), m.Position())
	assert.Equal(t, 0, m.Depth())
}

func TestMachine_RollbackToLongestAcceptedPrefix(t *testing.T) {
	m := aStarB()

	input := "aaabb"
	lexeme := []rune{}
	wasAccepted := false

	for _, c := range input {
		lexeme = append(lexeme, c)
		accepted, err := m.Step(c)
		require.NoError(t, err)
		if accepted {
			wasAccepted = true
		}
		if m.Trapped() {
			break
		}
	}
	require.True(t, wasAccepted)

	for !m.Accepted() {
		m.Rollback()
		lexeme = lexeme[:len(lexeme)-1]
	}
	assert.Equal(t, "aaab", string(lexeme))
}

func TestMachine_RollbackAtStartIsNoop(t *testing.T) {
	m := aStarB()

	m.Rollback()
	m.Rollback()
	assert.Equal(t, domain.Live(0), m.Position())
	assert.Equal(t, 0, m.Depth())
}

func TestMachine_ResetIdempotence(t *testing.T) {
	m := aStarB()

	feed(t, m, "abbbb")
	m.Reset()
	m.Reset()
	assert.Equal(t, domain.Live(0), m.Position())
	assert.Equal(t, 0, m.Depth())
	assert.False(t, m.Trapped())

	// Table survives a reset.
	feed(t, m, "ab")
	assert.True(t, m.Accepted())
}

func TestMachine_QueriesArePure(t *testing.T) {
	m := aStarB()
	feed(t, m, "aab")

	pos := m.Position()
	depth := m.Depth()
	for i := 0; i < 3; i++ {
		_ = m.Accepted()
		_ = m.Trapped()
	}
	assert.Equal(t, pos, m.Position())
	assert.Equal(t, depth, m.Depth())
}

func TestMachine_Determinism(t *testing.T) {
	run := func() []domain.Position {
		m := aStarB()
		var trace []domain.Position
		for _, c := range "aababb" {
			_, err := m.Step(c)
			require.NoError(t, err)
			trace = append(trace, m.Position())
		}
		return trace
	}

	assert.Equal(t, run(), run())
}

func TestMachine_AmbiguityIsLazy(t *testing.T) {
	// (0,'x') has two destinations; the machine is still usable as long as
	// that key is never looked up.
	m := automaton.New([]domain.Rule{
		{From: 0, Symbol: 'a', To: 1},
		{From: 0, Symbol: 'x', To: 1},
		{From: 0, Symbol: 'x', To: 2},
	}, []domain.StateID{1})

	accepted, err := m.Step('a')
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestMachine_AmbiguityErrorOnLookup(t *testing.T) {
	m := automaton.New([]domain.Rule{
		{From: 0, Symbol: 'x', To: 1},
		{From: 0, Symbol: 'x', To: 2},
	}, []domain.StateID{1})

	_, err := m.Step('x')
	require.Error(t, err)

	var ambErr *domain.AmbiguityError
	require.ErrorAs(t, err, &ambErr)
	assert.Equal(t, domain.StateID(0), ambErr.State)
	assert.Equal(t, 'x', ambErr.Symbol)
	assert.Len(t, ambErr.Destinations, 2)

	// The position did not advance, and the recorded step is still undoable.
	assert.Equal(t, domain.Live(0), m.Position())
	assert.Equal(t, 1, m.Depth())
	m.Rollback()
	assert.Equal(t, 0, m.Depth())
}

func TestMachine_SnapshotRestore(t *testing.T) {
	m := automaton.FromPattern(domain.Pattern{
		Name: "AB",
		Rules: []domain.Rule{
			{From: 0, Symbol: 'a', To: 0},
			{From: 0, Symbol: 'b', To: 1},
		},
		Accept: []domain.StateID{1},
	})
	feed(t, m, "aab")

	snap := m.Snapshot()
	assert.Equal(t, "AB", snap.Pattern)
	assert.Equal(t, domain.Live(1), snap.Position)
	assert.Len(t, snap.History, 3)

	// Mutating the machine does not affect the snapshot, and vice versa.
	m.Reset()
	require.Equal(t, 0, m.Depth())

	m.Restore(snap)
	assert.Equal(t, domain.Live(1), m.Position())
	assert.Equal(t, 3, m.Depth())
	assert.True(t, m.Accepted())

	m.Rollback()
	assert.Len(t, snap.History, 3, "snapshot detached from machine")
}

func TestMachine_NumericPattern(t *testing.T) {
	var rules []domain.Rule
	for _, d := range "0123456789" {
		rules = append(rules,
			domain.Rule{From: 0, Symbol: d, To: 1},
			domain.Rule{From: 1, Symbol: d, To: 1},
		)
	}
	m := automaton.New(rules, []domain.StateID{1})

	for _, input := range []string{"1234", "123455677", "0123"} {
		feed(t, m, input)
		assert.True(t, m.Accepted(), "input %q", input)
		m.Reset()
	}
}

func TestMachine_StringDump(t *testing.T) {
	m := automaton.FromPattern(domain.Pattern{
		Name:   "AB",
		Rules:  []domain.Rule{{From: 0, Symbol: 'a', To: 0}, {From: 0, Symbol: 'b', To: 1}},
		Accept: []domain.StateID{1},
	})

	out := m.String()
	assert.Contains(t, out, `automaton "AB"`)
	assert.Contains(t, out, "accept: [1]")
	assert.Contains(t, out, `(0, 'a') -> [0]`)
	assert.Contains(t, out, `(0, 'b') -> [1]`)
}
