package port

import "context"

// SnapshotCache defines the interface for publishing the latest cycle
// snapshot to a shared cache, so other tools on the host can read the most
// recent health state without re-sampling. Optional.
type SnapshotCache interface {
	// StoreLatest stores the given snapshot under the well-known latest key
	StoreLatest(ctx context.Context, snapshot interface{}) error

	// Close closes the cache connection
	Close() error
}
