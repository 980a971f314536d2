package memory_test

import (
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySource(t *testing.T) {
	src := memory.NewSource(
		dsl.Alphabetic("ID"),
		dsl.Numeric("NUMBER"),
	)

	names, err := src.ListPatterns()
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "NUMBER"}, names, "priority order preserved")

	p, err := src.GetPattern("NUMBER")
	require.NoError(t, err)
	assert.Equal(t, "NUMBER", p.Name)

	_, err = src.GetPattern("missing")
	assert.ErrorIs(t, err, domain.ErrPatternNotFound)

	all := src.All()
	require.Len(t, all, 2)
	assert.Equal(t, "ID", all[0].Name)
}
