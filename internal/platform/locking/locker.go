package locking

import (
	"context"
	"fmt"
)

// GlobalIngestKey serializes stat ingestion across the whole deployment.
const GlobalIngestKey = "global_ingest"

// LeagueKey derives the advisory-lock key that serializes mutating
// operations scoped to one league.
func LeagueKey(leagueID int64) string {
	return fmt.Sprintf("league_%d", leagueID)
}

// Lease is a held lock. Release is idempotent and must be called (usually
// deferred) as soon as the protected work finishes.
type Lease interface {
	Release(ctx context.Context)
}

// Locker acquires exclusive, non-blocking advisory locks by key. TryAcquire
// never waits: it either returns a lease or reports that the key is held
// elsewhere. The implementation is chosen by configuration, not by
// inspecting the storage backend.
type Locker interface {
	TryAcquire(ctx context.Context, key string) (Lease, bool, error)
}
