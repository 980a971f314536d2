package domain

import "context"

// StepEvent describes a single symbol fed to a machine.
type StepEvent struct {
	// Pattern is the name of the pattern the machine runs ("" when the
	// machine was built without one).
	Pattern string

	// Symbol is the input character.
	Symbol rune

	// Position is the post-step location.
	Position Position

	// Accepted is the post-step acceptance.
	Accepted bool
}

// TokenEvent describes a token emitted by the lexer.
type TokenEvent struct {
	Token Token
}

// Hooks are optional observability callbacks. Nil hooks are skipped; they
// must not mutate engine state.
type Hooks struct {
	// OnStep fires after every symbol fed to any machine.
	OnStep func(ctx context.Context, e *StepEvent)

	// OnTrap fires when a step moves a machine into the trap (not on steps
	// taken while already trapped).
	OnTrap func(ctx context.Context, e *StepEvent)

	// OnToken fires when the lexer emits a token.
	OnToken func(ctx context.Context, e *TokenEvent)
}
