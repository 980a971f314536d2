package espalier_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := `
patterns:
  - name: WORD
    accept: [1]
    rules:
      - { from: 0, symbol: a-z, to: 1 }
      - { from: 1, symbol: a-z, to: 1 }
  - name: SPACE
    accept: [1]
    rules:
      - { from: 0, symbols: " ", to: 1 }
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := espalier.New(path)
	require.NoError(t, err)

	tokens, err := lex.Scan(context.Background(), "hello world")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "WORD", tokens[0].Category)
	assert.Equal(t, "hello", tokens[0].Lexeme)
}

func TestNew_RequiresPathOrSource(t *testing.T) {
	_, err := espalier.New("")
	require.Error(t, err)
}

func TestNew_WithSource(t *testing.T) {
	source := memory.NewSource(espalier.DefaultPatterns()...)

	lex, err := espalier.New("", espalier.WithSource(source))
	require.NoError(t, err)

	tokens, err := lex.Scan(context.Background(), `(define (myfn x y) (if (> x y) x y))`)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens)

	rebuilt := ""
	for _, tok := range tokens {
		rebuilt += tok.Lexeme
	}
	assert.Equal(t, `(define (myfn x y) (if (> x y) x y))`, rebuilt)
}
