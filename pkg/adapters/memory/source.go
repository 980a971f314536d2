package memory

import "github.com/aretw0/espalier/pkg/domain"

// Source implements ports.PatternSource over a fixed pattern list.
// Order is preserved; it is the lexer priority order.
type Source struct {
	order    []string
	patterns map[string]domain.Pattern
}

// NewSource creates a source from the given patterns.
func NewSource(patterns ...domain.Pattern) *Source {
	s := &Source{
		patterns: make(map[string]domain.Pattern, len(patterns)),
	}
	for _, p := range patterns {
		if _, seen := s.patterns[p.Name]; !seen {
			s.order = append(s.order, p.Name)
		}
		s.patterns[p.Name] = p
	}
	return s
}

// GetPattern returns the definition for a named pattern.
func (s *Source) GetPattern(name string) (domain.Pattern, error) {
	p, ok := s.patterns[name]
	if !ok {
		return domain.Pattern{}, domain.ErrPatternNotFound
	}
	return p, nil
}

// ListPatterns returns all pattern names in priority order.
func (s *Source) ListPatterns() ([]string, error) {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

// All returns the pattern definitions in priority order.
func (s *Source) All() []domain.Pattern {
	out := make([]domain.Pattern, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.patterns[name])
	}
	return out
}
