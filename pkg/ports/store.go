package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// SessionStore defines the interface for persisting machine snapshots.
// This allows interactive stepping sessions to survive process restarts.
type SessionStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the active session IDs.
	List(ctx context.Context) ([]string, error)
}
