package lexer_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
	"github.com/aretw0/espalier/pkg/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// schemePatterns is the pattern set of the lisp-ish tokenizer used across
// the scan tests, in priority order.
func schemePatterns() []domain.Pattern {
	return []domain.Pattern{
		dsl.Alphabetic("ID"),
		dsl.Numeric("NUMBER"),
		dsl.QuotedString("STRING"),
		dsl.Literal("PAROPEN", "("),
		dsl.Literal("PARCLOSE", ")"),
		dsl.Literal("SPACE", " "),
		dsl.Literal("OPREL", ">"),
	}
}

func TestLexer_RequiresPatterns(t *testing.T) {
	_, err := lexer.New(nil)
	require.Error(t, err)
}

func TestLexer_LongestMatchAcrossTwoPatterns(t *testing.T) {
	// IF accepts exactly "if"; ID accepts any lowercase run. On "ifa" both
	// trap after the third symbol, and the longest accepted prefix is the
	// full three-rune identifier.
	l, err := lexer.New([]domain.Pattern{
		dsl.Literal("IF", "if"),
		dsl.Alphabetic("ID"),
	})
	require.NoError(t, err)

	tok, n, err := l.Next(context.Background(), []rune("ifa"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "ID", tok.Category)
	assert.Equal(t, "ifa", tok.Lexeme)
}

func TestLexer_FirstListedWinsTies(t *testing.T) {
	// Both patterns accept the same lexeme; priority order decides.
	l, err := lexer.New([]domain.Pattern{
		dsl.Literal("IF", "if"),
		dsl.Alphabetic("ID"),
	})
	require.NoError(t, err)

	tok, _, err := l.Next(context.Background(), []rune("if "))
	require.NoError(t, err)
	assert.Equal(t, "IF", tok.Category)
	assert.Equal(t, "if", tok.Lexeme)
}

func TestLexer_Next(t *testing.T) {
	l, err := lexer.New(schemePatterns())
	require.NoError(t, err)

	cases := []struct {
		input    string
		category string
		lexeme   string
	}{
		{"hellow x y", "ID", "hellow"},
		{"(hellow", "PAROPEN", "("},
		{"123456789 x", "NUMBER", "123456789"},
		{`"aaaaaab" x`, "STRING", `"aaaaaab"`},
	}

	for _, tc := range cases {
		tok, n, err := l.Next(context.Background(), []rune(tc.input))
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.category, tok.Category, "input %q", tc.input)
		assert.Equal(t, tc.lexeme, tok.Lexeme, "input %q", tc.input)
		assert.Equal(t, len([]rune(tc.lexeme)), n)
	}
}

func TestLexer_ScanSource(t *testing.T) {
	l, err := lexer.New(schemePatterns())
	require.NoError(t, err)

	source := "(define (myfn x y) (if (> x y) x y))"
	tokens, err := l.Scan(context.Background(), source)
	require.NoError(t, err)

	// Tokens must tile the input exactly.
	rebuilt := ""
	for _, tok := range tokens {
		assert.Equal(t, len([]rune(rebuilt)), tok.Offset)
		rebuilt += tok.Lexeme
	}
	assert.Equal(t, source, rebuilt)

	assert.Equal(t, domain.Token{Category: "PAROPEN", Lexeme: "(", Offset: 0}, tokens[0])
	assert.Equal(t, domain.Token{Category: "ID", Lexeme: "define", Offset: 1}, tokens[1])
}

func TestLexer_NoMatch(t *testing.T) {
	l, err := lexer.New(schemePatterns())
	require.NoError(t, err)

	_, err = l.Scan(context.Background(), "abc!def")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoMatch)
	assert.Contains(t, err.Error(), "offset 3")
}

func TestLexer_EmptyInput(t *testing.T) {
	l, err := lexer.New(schemePatterns())
	require.NoError(t, err)

	tokens, err := l.Scan(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestLexer_AmbiguousPatternSurfaces(t *testing.T) {
	bad := dsl.New("BAD").Rule(0, 'x', 1).Rule(0, 'x', 2).Accept(1).Build()
	l, err := lexer.New([]domain.Pattern{bad})
	require.NoError(t, err, "ambiguity is lazy: construction succeeds")

	_, _, err = l.Next(context.Background(), []rune("x"))
	var ambErr *domain.AmbiguityError
	require.ErrorAs(t, err, &ambErr)
}

func TestLexer_Hooks(t *testing.T) {
	var steps, traps, tokens atomic.Int64

	l, err := lexer.New(schemePatterns(), lexer.WithHooks(domain.Hooks{
		OnStep:  func(ctx context.Context, e *domain.StepEvent) { steps.Add(1) },
		OnTrap:  func(ctx context.Context, e *domain.StepEvent) { traps.Add(1) },
		OnToken: func(ctx context.Context, e *domain.TokenEvent) { tokens.Add(1) },
	}))
	require.NoError(t, err)

	_, err = l.Scan(context.Background(), "abc 12")
	require.NoError(t, err)

	assert.Equal(t, int64(3), tokens.Load())
	assert.Positive(t, steps.Load())
	assert.Positive(t, traps.Load())
}

func TestLexer_ScanHonorsContext(t *testing.T) {
	l, err := lexer.New(schemePatterns())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Scan(ctx, "abc")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLexer_Patterns(t *testing.T) {
	l, err := lexer.New(schemePatterns())
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "NUMBER", "STRING", "PAROPEN", "PARCLOSE", "SPACE", "OPREL"}, l.Patterns())
}
