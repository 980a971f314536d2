package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid_Basic(t *testing.T) {
	p := dsl.New("AB").
		Rule(0, 'a', 0).
		Rule(0, 'b', 1).
		Accept(1).
		Build()

	out := graph.GenerateMermaid(p, nil)

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, `s0(("0"))`, "start state is a circle")
	assert.Contains(t, out, `s1["1"]`)
	assert.Contains(t, out, `s0 -- "a" --> s0`)
	assert.Contains(t, out, `s0 -- "b" --> s1`)
	assert.Contains(t, out, "class s1 accept;")
	assert.NotContains(t, out, "trap", "no trap node without an overlay that visited it")
}

func TestGenerateMermaid_CollapsesRanges(t *testing.T) {
	p := dsl.Alphabetic("ID")

	out := graph.GenerateMermaid(p, nil)
	assert.Contains(t, out, `s0 -- "a-z" --> s1`)
	assert.Contains(t, out, `s1 -- "a-z" --> s1`)
}

func TestGenerateMermaid_MixedSymbols(t *testing.T) {
	p := dsl.New("X").
		Rule(0, 'a', 1).
		Rule(0, 'b', 1).
		Rule(0, 'x', 1).
		Accept(1).
		Build()

	out := graph.GenerateMermaid(p, nil)
	// Two consecutive symbols stay listed, not ranged.
	assert.Contains(t, out, `s0 -- "a b x" --> s1`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	p := dsl.New("AB").
		Rule(0, 'a', 0).
		Rule(0, 'b', 1).
		Accept(1).
		Build()

	out := graph.GenerateMermaid(p, &graph.Overlay{
		Visited: []domain.Position{domain.Live(0), domain.Live(0), domain.Live(1)},
		Current: domain.Trap(),
	})

	assert.Contains(t, out, `trap["trap"]`)
	assert.Contains(t, out, "class s0 visited;")
	assert.Contains(t, out, "class s1 visited;")
	assert.Contains(t, out, "class trap current;")

	// Duplicate history entries style once.
	assert.Equal(t, 1, strings.Count(out, "class s0 visited;"))
}
