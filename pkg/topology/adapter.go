package topology

import (
	"github.com/cairnfs/cairn/pkg/types"
)

// Adapter is the read-only view of the topology registry consumed by
// the scheduler core. It is the only polymorphic dependency of the
// placement engine; the registry itself lives outside this module.
//
// Implementations must be safe for concurrent readers. Returned maps
// and slices are owned by the caller: the scheduler mutates scatter
// maps while simulating migrations.
type Adapter interface {
	// GetChunkServerInfo looks up a chunkserver by ID. The second
	// return value reports whether the lookup hit.
	GetChunkServerInfo(id string) (types.ChunkServer, bool)

	// GetStandardZoneNumInLogicalPool returns the minimum number of
	// distinct zones a copyset in the pool must span. Values <= 0
	// indicate a missing pool or a configuration error.
	GetStandardZoneNumInLogicalPool(poolID string) int

	// GetChunkServerScatterMap returns the scatter counter map of a
	// chunkserver: for every other chunkserver it co-hosts at least
	// one copyset with, the number of copysets they share. The
	// scatter-width is the size of this map.
	GetChunkServerScatterMap(id string) map[string]int

	// GetCopySetInfos returns all copysets in the topology.
	GetCopySetInfos() []types.CopySet
}
