package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LoadOrStart(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	snap, err := m.LoadOrStart(ctx, "s1", "ID")
	require.NoError(t, err)
	assert.Equal(t, "ID", snap.Pattern)
	assert.Equal(t, domain.Live(0), snap.Position)
	assert.Empty(t, snap.History)

	// Second call loads the existing session; the pattern argument is
	// ignored once the ID is reserved.
	again, err := m.LoadOrStart(ctx, "s1", "NUMBER")
	require.NoError(t, err)
	assert.Equal(t, "ID", again.Pattern)
}

func TestManager_LoadMissing(t *testing.T) {
	m := session.NewManager(memory.NewStore())

	_, err := m.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_Update(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := m.LoadOrStart(ctx, "s1", "ID")
	require.NoError(t, err)

	snap, err := m.Update(ctx, "s1", func(s *domain.Snapshot) error {
		s.History = append(s.History, s.Position)
		s.Position = domain.Live(1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Live(1), snap.Position)

	loaded, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.Live(1), loaded.Position)
	assert.Len(t, loaded.History, 1)
}

func TestManager_UpdateIsSerialized(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := m.LoadOrStart(ctx, "s1", "ID")
	require.NoError(t, err)

	// Concurrent read-modify-write cycles must not lose increments.
	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Update(ctx, "s1", func(s *domain.Snapshot) error {
				s.History = append(s.History, s.Position)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, loaded.History, workers)
}

func TestManager_Delete(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := m.LoadOrStart(ctx, "s1", "ID")
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "s1"))
	_, err = m.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_List(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := m.LoadOrStart(ctx, "a", "ID")
	require.NoError(t, err)
	_, err = m.LoadOrStart(ctx, "b", "ID")
	require.NoError(t, err)

	sessions, err := m.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, sessions)
}
