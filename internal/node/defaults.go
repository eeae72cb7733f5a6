package node

import "time"

const (
	// pruneDepth is how far below the tip a cached block may sit before it is
	// evicted; the indexing services have durably persisted anything that old.
	pruneDepth = 100

	statsInterval = 5 * time.Second

	saveTimeout = 30 * time.Second
)
