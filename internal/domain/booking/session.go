package booking

import (
	"context"
	"time"
)

// SessionStore keeps wizard snapshots between requests. Load returns
// ErrSessionNotFound for unknown or expired ids. Every save refreshes ttl.
type SessionStore interface {
	Save(ctx context.Context, id string, s Snapshot, ttl time.Duration) error
	// SaveIfExists overwrites a live session only; a removed or expired
	// one yields ErrSessionNotFound and stays removed.
	SaveIfExists(ctx context.Context, id string, s Snapshot, ttl time.Duration) error
	Load(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string) error

	// Lock takes the per-session submit mark. It reports false while
	// another holder has it. The mark expires after ttl.
	Lock(ctx context.Context, id string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, id string) error
}
