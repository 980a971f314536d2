// Package graph renders automaton transition tables as Mermaid diagrams.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// Overlay contains dynamic session state to visualize on the graph.
type Overlay struct {
	Visited []domain.Position
	Current domain.Position
}

// edgeKey groups rules that share endpoints so their symbols collapse into
// one labeled arrow.
type edgeKey struct {
	from domain.StateID
	to   domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart (graph LR) for a pattern.
// Styling:
//   - Start state 0: ((Circle))
//   - Accepting states: classDef accept
//   - Trap: drawn only when an overlay visited it (the trap has no identity
//     in the table itself)
//
// Overlay styles (Visited/Current) are applied when provided.
func GenerateMermaid(p domain.Pattern, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	accepting := make(map[domain.StateID]bool, len(p.Accept))
	for _, s := range p.Accept {
		accepting[s] = true
	}

	// Collect states and group edges.
	stateSet := map[domain.StateID]bool{domain.StartState: true}
	edges := make(map[edgeKey][]rune)
	for _, r := range p.Rules {
		stateSet[r.From] = true
		stateSet[r.To] = true
		k := edgeKey{from: r.From, to: r.To}
		edges[k] = append(edges[k], r.Symbol)
	}

	states := make([]domain.StateID, 0, len(stateSet))
	for s := range stateSet {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	for _, s := range states {
		opener, closer := "[", "]"
		if s == domain.StartState {
			opener, closer = "((", "))" // Circle
		}
		fmt.Fprintf(&sb, "    s%d%s\"%d\"%s\n", s, opener, s, closer)
	}

	keys := make([]edgeKey, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})

	for _, k := range keys {
		label := collapseSymbols(edges[k])
		fmt.Fprintf(&sb, "    s%d -- \"%s\" --> s%d\n", k.from, label, k.to)
	}

	// Trap node only exists when a session actually fell into it.
	trapVisited := overlay != nil && (overlay.Current.Trapped || anyTrapped(overlay.Visited))
	if trapVisited {
		sb.WriteString("    trap[\"trap\"]\n")
	}

	// Accepting styles
	sb.WriteString("\n    classDef accept fill:#dcfce7,stroke:#15803d,stroke-width:2px,color:#000;\n")
	acceptIDs := make([]domain.StateID, 0, len(accepting))
	for s := range accepting {
		acceptIDs = append(acceptIDs, s)
	}
	sort.Slice(acceptIDs, func(i, j int) bool { return acceptIDs[i] < acceptIDs[j] })
	for _, s := range acceptIDs {
		fmt.Fprintf(&sb, "    class s%d accept;\n", s)
	}

	// Overlay styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, pos := range overlay.Visited {
			id := nodeID(pos)
			if !visitedSet[id] {
				visitedSet[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}
		fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.Current))
	}

	return sb.String()
}

func nodeID(pos domain.Position) string {
	if pos.Trapped {
		return "trap"
	}
	return fmt.Sprintf("s%d", pos.State)
}

func anyTrapped(positions []domain.Position) bool {
	for _, pos := range positions {
		if pos.Trapped {
			return true
		}
	}
	return false
}

// collapseSymbols renders a symbol set compactly: consecutive runs become
// ranges ("a-z"), loners stay single. Quotes are escaped for Mermaid labels.
func collapseSymbols(symbols []rune) string {
	if len(symbols) == 0 {
		return ""
	}

	sorted := make([]rune, len(symbols))
	copy(sorted, symbols)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var parts []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		switch {
		case start == prev:
			parts = append(parts, escapeSymbol(start))
		case prev == start+1:
			parts = append(parts, escapeSymbol(start), escapeSymbol(prev))
		default:
			parts = append(parts, fmt.Sprintf("%s-%s", escapeSymbol(start), escapeSymbol(prev)))
		}
	}

	for _, c := range sorted[1:] {
		if c == prev {
			continue // duplicate rule, same symbol
		}
		if c == prev+1 {
			prev = c
			continue
		}
		flush()
		start, prev = c, c
	}
	flush()

	return strings.Join(parts, " ")
}

func escapeSymbol(c rune) string {
	switch c {
	case '"':
		return "#quot;"
	case ' ':
		return "␣"
	default:
		return string(c)
	}
}
