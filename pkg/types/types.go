package types

import (
	"fmt"
	"time"
)

// UnsetID is the sentinel for an absent chunkserver in one-sided
// migration evaluations (add-only or remove-only).
const UnsetID = ""

// ChunkServer represents a storage node hosting copyset replicas.
// It is owned and mutated by the topology registry; the scheduler
// only ever reads snapshots of it.
type ChunkServer struct {
	ID            string
	ZoneID        string
	PoolID        string
	Address       string
	State         ChunkServerState
	LastHeartbeat time.Time
}

// ChunkServerState represents the operational state of a chunkserver
type ChunkServerState string

const (
	ChunkServerOnline         ChunkServerState = "online"
	ChunkServerPendingOffline ChunkServerState = "pending-offline"
	ChunkServerOffline        ChunkServerState = "offline"
)

// IsOffline reports whether the chunkserver is fully offline. A
// pending-offline node still serves reads and still counts as a
// migration source or target.
func (c *ChunkServer) IsOffline() bool {
	return c.State == ChunkServerOffline
}

// Zone is a fault domain grouping chunkservers. Copysets must span a
// minimum number of distinct zones, configured per logical pool.
type Zone struct {
	ID     string
	PoolID string
}

// LogicalPool is a placement domain carrying its own zone-count and
// scatter-width policy.
type LogicalPool struct {
	ID         string
	ReplicaNum int

	// StandardZoneNum is the minimum number of distinct zones a
	// copyset in this pool must span. Zero or negative is a
	// configuration error and fails every migration closed.
	StandardZoneNum int

	// MinScatterWidth is the floor of the scatter-width band.
	MinScatterWidth int

	// ScatterWidthRange is the fractional tolerance above
	// MinScatterWidth; the band ceiling is
	// MinScatterWidth * (1 + ScatterWidthRange).
	ScatterWidthRange float64
}

// Peer is a replica placement fact within a copyset: which
// chunkserver holds the replica and which zone that chunkserver is in.
type Peer struct {
	ChunkServerID string
	ZoneID        string
}

// CopySet is a fixed-size replica group, identified by its logical
// pool and copyset ID. Peer chunkserver IDs are unique within the set.
type CopySet struct {
	PoolID string
	ID     string
	Peers  []Peer
}

// Key returns the pool-qualified copyset identifier.
func (c *CopySet) Key() string {
	return fmt.Sprintf("%s/%s", c.PoolID, c.ID)
}

// PeerIDs returns the chunkserver IDs of all peers.
func (c *CopySet) PeerIDs() []string {
	ids := make([]string, 0, len(c.Peers))
	for _, p := range c.Peers {
		ids = append(ids, p.ChunkServerID)
	}
	return ids
}

// HasPeer reports whether the copyset holds a replica on the given
// chunkserver.
func (c *CopySet) HasPeer(chunkServerID string) bool {
	for _, p := range c.Peers {
		if p.ChunkServerID == chunkServerID {
			return true
		}
	}
	return false
}

// MigrationCandidate is an ephemeral proposal to move one replica of
// a copyset from SourceID to TargetID. Candidates are evaluated and
// discarded; they are never persisted.
type MigrationCandidate struct {
	CopySet  CopySet
	SourceID string
	TargetID string
}
