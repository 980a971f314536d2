package ports

import "github.com/aretw0/espalier/pkg/domain"

// PatternSource supplies pattern definitions by name.
type PatternSource interface {
	// GetPattern returns the definition for a named pattern.
	// Returns domain.ErrPatternNotFound if the name is unknown.
	GetPattern(name string) (domain.Pattern, error)

	// ListPatterns returns all known pattern names in priority order.
	ListPatterns() ([]string, error)
}
