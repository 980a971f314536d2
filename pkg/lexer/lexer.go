package lexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/domain"
)

// Lexer tokenizes input against a prioritized list of patterns.
// It owns one machine per pattern; machines are never shared between
// patterns, each carries its own history (required for lockstep rollback).
type Lexer struct {
	patterns []domain.Pattern
	machines []*automaton.Machine
	hooks    domain.Hooks
	logger   *slog.Logger
}

// Option configures the Lexer.
type Option func(*Lexer)

// WithLogger sets a structured logger for token-level debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) {
		l.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(l *Lexer) {
		l.hooks = hooks
	}
}

// New creates a lexer for the given patterns. Pattern order is priority
// order: when two patterns accept prefixes of equal length, the first
// listed wins.
func New(patterns []domain.Pattern, opts ...Option) (*Lexer, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("lexer requires at least one pattern")
	}

	l := &Lexer{
		patterns: patterns,
		machines: make([]*automaton.Machine, len(patterns)),
		logger:   logging.NewNop(),
	}
	for i, p := range patterns {
		l.machines[i] = automaton.FromPattern(p)
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Patterns returns the pattern names in priority order.
func (l *Lexer) Patterns() []string {
	names := make([]string, len(l.patterns))
	for i, p := range l.patterns {
		names[i] = p.Name
	}
	return names
}

// Next recognizes the single longest token at the start of input.
// It returns the token and the number of runes consumed.
//
// When no pattern ever accepts, the error wraps domain.ErrNoMatch; an
// *domain.AmbiguityError means one of the pattern tables is not a DFA.
func (l *Lexer) Next(ctx context.Context, input []rune) (domain.Token, int, error) {
	tok, n, err := l.next(ctx, input, 0)
	if err != nil {
		return domain.Token{}, 0, err
	}
	return tok, n, nil
}

// Scan tokenizes the whole input. It stops at the first NO_MATCH position
// or ambiguity, returning the tokens recognized so far alongside the error.
func (l *Lexer) Scan(ctx context.Context, input string) ([]domain.Token, error) {
	runes := []rune(input)
	var tokens []domain.Token

	pos := 0
	for pos < len(runes) {
		if err := ctx.Err(); err != nil {
			return tokens, err
		}

		tok, n, err := l.next(ctx, runes, pos)
		if err != nil {
			return tokens, fmt.Errorf("scan at offset %d: %w", pos, err)
		}
		tokens = append(tokens, tok)
		pos += n
	}

	return tokens, nil
}

// next runs the accept-then-rollback protocol on runes[start:].
func (l *Lexer) next(ctx context.Context, runes []rune, start int) (domain.Token, int, error) {
	for _, m := range l.machines {
		m.Reset()
	}

	// Forward phase: feed every machine until all of them trap (or the
	// input runs out). Track whether any machine was ever accepted.
	wasAccepted := false
	length := 0
	for i := start; i < len(runes); i++ {
		c := runes[i]
		allTrapped := true

		for j, m := range l.machines {
			trappedBefore := m.Trapped()
			accepted, err := m.Step(c)
			if err != nil {
				return domain.Token{}, 0, fmt.Errorf("pattern %q: %w", l.patterns[j].Name, err)
			}

			l.emitStep(ctx, l.patterns[j].Name, c, m, accepted, !trappedBefore && m.Trapped())
			if accepted {
				wasAccepted = true
			}
			allTrapped = allTrapped && m.Trapped()
		}

		length++
		if allTrapped {
			break
		}
	}

	if !wasAccepted {
		return domain.Token{}, 0, fmt.Errorf("%w: %q", domain.ErrNoMatch, preview(runes[start:]))
	}

	// Rollback phase: shrink the candidate lexeme in lockstep across all
	// machines until some machine accepts again. Trapped machines roll back
	// too, or the group desynchronizes. Termination is guaranteed because
	// some prefix was accepted during the forward phase.
	for {
		category := ""
		for j, m := range l.machines {
			if m.Accepted() {
				if category == "" {
					category = l.patterns[j].Name
				}
			} else {
				m.Rollback()
			}
		}

		if category != "" {
			tok := domain.Token{
				Category: category,
				Lexeme:   string(runes[start : start+length]),
				Offset:   start,
			}
			l.emitToken(ctx, tok)
			return tok, length, nil
		}
		length--
	}
}

func (l *Lexer) emitStep(ctx context.Context, pattern string, symbol rune, m *automaton.Machine, accepted, newlyTrapped bool) {
	if l.hooks.OnStep == nil && l.hooks.OnTrap == nil {
		return
	}
	e := &domain.StepEvent{
		Pattern:  pattern,
		Symbol:   symbol,
		Position: m.Position(),
		Accepted: accepted,
	}
	if l.hooks.OnStep != nil {
		l.hooks.OnStep(ctx, e)
	}
	if newlyTrapped && l.hooks.OnTrap != nil {
		l.hooks.OnTrap(ctx, e)
	}
}

func (l *Lexer) emitToken(ctx context.Context, tok domain.Token) {
	l.logger.DebugContext(ctx, "token emitted",
		"category", tok.Category,
		"lexeme", tok.Lexeme,
		"offset", tok.Offset,
	)
	if l.hooks.OnToken != nil {
		l.hooks.OnToken(ctx, &domain.TokenEvent{Token: tok})
	}
}

// preview truncates input for error messages.
func preview(runes []rune) string {
	const max = 16
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}
