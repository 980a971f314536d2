package automaton

import (
	"sort"

	"github.com/aretw0/espalier/pkg/domain"
)

// Ambiguities eagerly scans a rule list for (state, symbol) keys with more
// than one destination.
//
// The Machine itself validates lazily: an ambiguous key only fails when it
// is looked up during a Step, and a table with unused ambiguous keys never
// fails. This helper is the opt-in eager check behind `espalier validate`,
// for catching NFA tables before deployment.
func Ambiguities(rules []domain.Rule) []domain.AmbiguityError {
	grouped := make(map[key][]domain.StateID)
	for _, r := range rules {
		k := key{state: r.From, symbol: r.Symbol}
		grouped[k] = append(grouped[k], r.To)
	}

	var out []domain.AmbiguityError
	for k, dests := range grouped {
		if len(dests) > 1 {
			out = append(out, domain.AmbiguityError{
				State:        k.state,
				Symbol:       k.symbol,
				Destinations: dests,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
