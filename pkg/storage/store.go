package storage

import (
	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

// Store persists topology snapshots for the placement engine's
// tooling. The engine itself never writes topology; the store backs
// the CLI's imported topologies and offline analysis.
type Store interface {
	// Chunkservers
	PutChunkServer(cs *types.ChunkServer) error
	GetChunkServer(id string) (*types.ChunkServer, error)
	ListChunkServers() ([]*types.ChunkServer, error)
	DeleteChunkServer(id string) error

	// Logical pools
	PutLogicalPool(pool *types.LogicalPool) error
	GetLogicalPool(id string) (*types.LogicalPool, error)
	ListLogicalPools() ([]*types.LogicalPool, error)
	DeleteLogicalPool(id string) error

	// Copysets
	PutCopySet(cs *types.CopySet) error
	GetCopySet(poolID, copySetID string) (*types.CopySet, error)
	ListCopySets() ([]*types.CopySet, error)
	DeleteCopySet(poolID, copySetID string) error

	// Snapshot materializes the stored topology as an immutable
	// snapshot the scheduler can evaluate against.
	Snapshot() (*topology.Snapshot, error)

	// Utility
	Close() error
}
